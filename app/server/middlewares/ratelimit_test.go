package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCounter stands in for redis: an in-process INCR counter with
// programmable failures. Only the commands the limiter issues are overridden.
type fakeCounter struct {
	redis.Cmdable

	count     int64
	incrErr   error
	expireErr error

	ttlSet  bool
	deleted bool
}

func (f *fakeCounter) Incr(_ context.Context, _ string) *redis.IntCmd {
	if f.incrErr != nil {
		return redis.NewIntResult(0, f.incrErr)
	}
	f.count++
	return redis.NewIntResult(f.count, nil)
}

func (f *fakeCounter) Expire(_ context.Context, _ string, _ time.Duration) *redis.BoolCmd {
	if f.expireErr != nil {
		return redis.NewBoolResult(false, f.expireErr)
	}
	f.ttlSet = true
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCounter) Del(_ context.Context, _ ...string) *redis.IntCmd {
	f.deleted = true
	f.count = 0
	return redis.NewIntResult(1, nil)
}

func limitedRequest(t *testing.T, rdb redis.Cmdable, max int) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RateLimit(rdb, zap.NewNop(), max, time.Minute)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	return rec
}

func TestRateLimit_EnforcesWindow(t *testing.T) {
	rdb := &fakeCounter{}

	for i := 0; i < 3; i++ {
		rec := limitedRequest(t, rdb, 3)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d is under the limit", i+1)
	}
	assert.True(t, rdb.ttlSet, "first hit must start the window")

	rec := limitedRequest(t, rdb, 3)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")
}

func TestRateLimit_CounterErrorFailsOpen(t *testing.T) {
	rdb := &fakeCounter{incrErr: errors.New("connection refused")}

	rec := limitedRequest(t, rdb, 1)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_ExpireErrorDropsCounter(t *testing.T) {
	rdb := &fakeCounter{expireErr: errors.New("connection reset")}

	// The counter would otherwise live forever and throttle the IP
	// permanently, so a failed EXPIRE deletes it and lets the request pass.
	rec := limitedRequest(t, rdb, 1)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, rdb.deleted)

	rdb.expireErr = nil
	rec = limitedRequest(t, rdb, 1)
	assert.Equal(t, http.StatusOK, rec.Code, "a fresh window starts once redis recovers")
	assert.True(t, rdb.ttlSet)
}
