package inits

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/MarcosGomesDev/FileStreamAPI/app/server/config"
)

// Config maps environment variables into the process-wide configuration.
// Everything is read once at startup and treated as immutable afterwards.
func Config() (cfg *config.Config, err error) {
	cfg = &config.Config{}

	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":1323" // default listen address
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	if redisconn, exist := os.LookupEnv("REDIS_CONN"); !exist {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	} else {
		cfg.System.RedisConnectionString = redisconn
	}

	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); !exist {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	} else {
		cfg.Security.SignatureSecretKey = sigsk
	}

	if costStr, exist := os.LookupEnv("HASH_COST"); !exist {
		cfg.Security.HashCost = 14 // matches the hashes already in the user table
	} else if cost, err := strconv.Atoi(costStr); err != nil {
		return nil, fmt.Errorf("invalid HASH_COST: %w", err)
	} else {
		cfg.Security.HashCost = cost
	}

	if provider, exist := os.LookupEnv("STORAGE_PROVIDER"); !exist {
		cfg.Storage.Provider = "dropbox"
	} else {
		cfg.Storage.Provider = strings.ToLower(provider)
	}

	switch cfg.Storage.Provider {
	case "dropbox":
		if apiURL, exist := os.LookupEnv("DROPBOX_API_URL"); !exist {
			cfg.Storage.DropboxAPIURL = "https://api.dropboxapi.com"
		} else {
			cfg.Storage.DropboxAPIURL = apiURL
		}
		if contentURL, exist := os.LookupEnv("DROPBOX_CONTENT_URL"); !exist {
			cfg.Storage.DropboxContentURL = "https://content.dropboxapi.com"
		} else {
			cfg.Storage.DropboxContentURL = contentURL
		}
	case "s3":
		if endpoint, exist := os.LookupEnv("S3_ENDPOINT"); !exist {
			return nil, fmt.Errorf("S3_ENDPOINT environment variable not set")
		} else {
			cfg.Storage.S3Endpoint = strings.TrimRight(endpoint, "/")
		}
		if region, exist := os.LookupEnv("S3_REGION"); !exist {
			cfg.Storage.S3Region = "us-east-1"
		} else {
			cfg.Storage.S3Region = region
		}
		if bucket, exist := os.LookupEnv("S3_BUCKET"); !exist {
			return nil, fmt.Errorf("S3_BUCKET environment variable not set")
		} else {
			cfg.Storage.S3Bucket = bucket
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_PROVIDER: %s", cfg.Storage.Provider)
	}

	return cfg, nil
}
