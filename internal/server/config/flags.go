package config

import (
	"flag"
	"os"
	"time"

	"github.com/veritaslab/veritas/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   session token HMAC secret
//	-i int      PBKDF2 iterations for new registrations
//	-v int      session validity, hours
//	-k string   uplink analysis engine base URL
//	-m string   uplink model identifier
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint
//
// os.Args is first filtered to the flags handled here (flagx.FilterArgs) so
// other components can define their own flags without collisions.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-d", "-s", "-i", "-v", "-k", "-m", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.IntVar(&config.DefaultIterations, "i", config.DefaultIterations, "kdf iterations for new registrations")

	sessionValidityHours := fs.Int("v", int(config.SessionValidityDuration.Hours()), "session validity (in hours)")

	fs.StringVar(&config.UplinkBaseURL, "k", config.UplinkBaseURL, "uplink base URL")
	fs.StringVar(&config.UplinkModel, "m", config.UplinkModel, "uplink model")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidityHours) * time.Hour
}
