package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const dotEnvFile = ".env"

// parseEnv overlays values from environment variables. Variables defined in
// the .env file at path are used when the process environment does not set
// them; a missing file is not an error.
//
// Recognised variables:
//
//	HTTP_ADDR (or PORT)  bind address
//	STORAGE_BACKEND      postgres | mongo | memory
//	DATABASE_DSN         PostgreSQL DSN
//	MONGO_URI            MongoDB URI
//	MONGO_DATABASE       MongoDB database name
//	JWT_SECRET           token signing secret
//	TOKEN_TTL            token lifetime, e.g. "24h"
//	BCRYPT_COST          bcrypt cost factor
//	CORS_ORIGINS         comma separated list of allowed origins
//	LOG_BACKEND          slog | zap
//	LOG_LEVEL            debug | info | warn | error
//	DEBUG                expose internal error details
//	EXPORT_ENABLED       enable task export
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
func parseEnv(config *Config, path string) {
	fileValues, err := godotenv.Read(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("read %s: %w", path, err))
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileValues[key]
		return v, ok
	}

	if err := applyEnv(config, lookup); err != nil {
		panic(err)
	}
}

func applyEnv(config *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("PORT"); ok && v != "" {
		config.EndpointAddrHTTP = ":" + v
	}
	str("HTTP_ADDR", &config.EndpointAddrHTTP)
	str("STORAGE_BACKEND", &config.StorageBackend)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("MONGO_URI", &config.MongoURI)
	str("MONGO_DATABASE", &config.MongoDatabase)
	str("JWT_SECRET", &config.SecretKey)
	str("LOG_BACKEND", &config.LogBackend)
	str("LOG_LEVEL", &config.LogLevel)
	str("S3_ROOT_USER", &config.S3RootUser)
	str("S3_ROOT_PASSWORD", &config.S3RootPassword)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)

	if v, ok := lookup("TOKEN_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TOKEN_TTL: %w", err)
		}
		config.TokenValidityDuration = d
	}

	if v, ok := lookup("BCRYPT_COST"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BCRYPT_COST: %w", err)
		}
		config.PasswordHashCost = n
	}

	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		config.AllowedOrigins = splitList(v)
	}

	for key, dst := range map[string]*bool{"DEBUG": &config.Debug, "EXPORT_ENABLED": &config.ExportEnabled} {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
