package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/veritaslab/veritas/internal/flagx"
)

// JsonConfig is the DTO used for reading JSON configuration files. Duration
// fields are strings in time.ParseDuration syntax ("24h", "450ms"). Empty
// fields leave the current Config value in place.
type JsonConfig struct {
	EndpointAddr            string `json:"endpoint_addr"`
	DatabaseDSN             string `json:"database_dsn"`
	SecretKey               string `json:"secret_key"`
	SessionValidityDuration string `json:"session_validity_duration"`
	DefaultIterations       int    `json:"default_iterations"`
	LookupDelay             string `json:"lookup_delay"`
	UplinkBaseURL           string `json:"uplink_base_url"`
	UplinkCredential        string `json:"uplink_credential"`
	UplinkModel             string `json:"uplink_model"`
	S3RootUser              string `json:"s3_root_user"`
	S3RootPassword          string `json:"s3_root_password"`
	S3Bucket                string `json:"s3_bucket"`
	S3Region                string `json:"s3_region"`
	S3BaseEndpoint          string `json:"s3_base_endpoint"`
	FrontendURL             string `json:"frontend_url"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags. When no file is named, nothing is loaded. An unreadable
// or malformed file panics: a config file that exists but cannot be applied
// must not be silently skipped.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlayString(&config.EndpointAddr, c.EndpointAddr)
	overlayString(&config.DatabaseDSN, c.DatabaseDSN)
	overlayString(&config.SecretKey, c.SecretKey)
	overlayDuration(&config.SessionValidityDuration, c.SessionValidityDuration)
	if c.DefaultIterations > 0 {
		config.DefaultIterations = c.DefaultIterations
	}
	overlayDuration(&config.LookupDelay, c.LookupDelay)
	overlayString(&config.UplinkBaseURL, c.UplinkBaseURL)
	overlayString(&config.UplinkCredential, c.UplinkCredential)
	overlayString(&config.UplinkModel, c.UplinkModel)
	overlayString(&config.S3RootUser, c.S3RootUser)
	overlayString(&config.S3RootPassword, c.S3RootPassword)
	overlayString(&config.S3Bucket, c.S3Bucket)
	overlayString(&config.S3Region, c.S3Region)
	overlayString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	overlayString(&config.FrontendURL, c.FrontendURL)
}

func overlayString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func overlayDuration(dst *time.Duration, v string) {
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
