package config

type Config struct {
	System struct {
		IsProd                bool   // production mode switch
		Listen                string // listen address
		DBConnectionString    string // Postgres connection string
		RedisConnectionString string // Redis connection string, used by the auth rate limiter
	}
	Security struct {
		SignatureSecretKey string // JWT signing secret; rotating it invalidates existing sessions
		HashCost           int    // bcrypt cost for stored passwords
	}
	Storage struct {
		Provider          string // storage backend: "dropbox" or "s3"
		S3Endpoint        string // base endpoint of the S3-compatible store
		S3Region          string
		S3Bucket          string
		DropboxAPIURL     string // overridable for tests
		DropboxContentURL string
	}
}
