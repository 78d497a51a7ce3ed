package users

import (
	"context"
	"fmt"
	"sync"

	"github.com/MarcosGomesDev/FileStreamAPI/app/server/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Memory is an in-memory Directory with the same semantics as the Postgres
// one. Used by tests and local runs without a database.
type Memory struct {
	mu       sync.RWMutex
	byID     map[uuid.UUID]models.User
	hashCost int
}

var _ Directory = (*Memory)(nil)

func NewMemory(hashCost int) *Memory {
	return &Memory{
		byID:     make(map[uuid.UUID]models.User),
		hashCost: hashCost,
	}
}

func (m *Memory) Create(_ context.Context, name, email, rawPassword string) (*models.User, error) {
	email = NormalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), m.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.byID {
		if u.Email == email {
			return nil, ErrEmailTaken
		}
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: string(hash),
	}
	m.byID[user.ID] = user

	return &user, nil
}

func (m *Memory) FindByID(_ context.Context, id string) (*models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.byID[uid]
	if !ok {
		return nil, ErrNotFound
	}

	return &user, nil
}

func (m *Memory) FindByEmail(_ context.Context, email string) (*models.User, error) {
	email = NormalizeEmail(email)

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.byID {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}

	return nil, ErrNotFound
}

func (m *Memory) Update(_ context.Context, id string, patch *Patch) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byID[uid]
	if !ok {
		return ErrNotFound
	}

	if err := applyPatch(&user, patch, m.hashCost); err != nil {
		return err
	}
	m.byID[uid] = user

	return nil
}
