package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
	"github.com/dmitrijs2005/taskkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the config file. Durations accept
// "24h" or integer nanoseconds. Zero values leave the current setting alone.
type FileConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	StorageBackend        string         `json:"storage_backend" yaml:"storage_backend"`
	DatabaseDSN           string         `json:"database_dsn" yaml:"database_dsn"`
	MongoURI              string         `json:"mongo_uri" yaml:"mongo_uri"`
	MongoDatabase         string         `json:"mongo_database" yaml:"mongo_database"`
	SecretKey             string         `json:"secret_key" yaml:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration" yaml:"token_validity_duration"`
	PasswordHashCost      int            `json:"password_hash_cost" yaml:"password_hash_cost"`
	AllowedOrigins        []string       `json:"allowed_origins" yaml:"allowed_origins"`
	LogBackend            string         `json:"log_backend" yaml:"log_backend"`
	LogLevel              string         `json:"log_level" yaml:"log_level"`
	Debug                 *bool          `json:"debug" yaml:"debug"`
	ExportEnabled         *bool          `json:"export_enabled" yaml:"export_enabled"`
	S3RootUser            string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region              string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
}

// parseFile loads the file named by -c/-config, if any, and overlays it on
// config. Files ending in .yaml or .yml are read as YAML, anything else as
// JSON. An unreadable or invalid file panics.
func parseFile(config *Config) {

	path := flagx.ConfigFileFlag()

	// nothing to load
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.applyTo(config)
}

func (c *FileConfig) applyTo(config *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	set(&config.StorageBackend, c.StorageBackend)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.MongoURI, c.MongoURI)
	set(&config.MongoDatabase, c.MongoDatabase)
	set(&config.SecretKey, c.SecretKey)
	set(&config.LogBackend, c.LogBackend)
	set(&config.LogLevel, c.LogLevel)
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.PasswordHashCost != 0 {
		config.PasswordHashCost = c.PasswordHashCost
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.Debug != nil {
		config.Debug = *c.Debug
	}
	if c.ExportEnabled != nil {
		config.ExportEnabled = *c.ExportEnabled
	}
}
