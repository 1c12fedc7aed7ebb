package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first; its absence is not an error.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString(&config.EndpointAddr, "VERITAS_ADDR")
	setString(&config.DatabaseDSN, "VERITAS_DATABASE_DSN")
	setString(&config.SecretKey, "VERITAS_SECRET_KEY")
	setDuration(&config.SessionValidityDuration, "VERITAS_SESSION_VALIDITY")
	setInt(&config.DefaultIterations, "VERITAS_KDF_ITERATIONS")
	setDuration(&config.LookupDelay, "VERITAS_LOOKUP_DELAY")
	setString(&config.UplinkBaseURL, "VERITAS_UPLINK_URL")
	setString(&config.UplinkCredential, "VERITAS_UPLINK_CREDENTIAL")
	setString(&config.UplinkModel, "VERITAS_UPLINK_MODEL")
	setString(&config.S3RootUser, "VERITAS_S3_USER")
	setString(&config.S3RootPassword, "VERITAS_S3_PASSWORD")
	setString(&config.S3Bucket, "VERITAS_S3_BUCKET")
	setString(&config.S3Region, "VERITAS_S3_REGION")
	setString(&config.S3BaseEndpoint, "VERITAS_S3_ENDPOINT")
	setString(&config.FrontendURL, "VERITAS_FRONTEND_URL")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
