package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Session tokens are signed JWTs whose lifetime is
// clamped to 1–24 hours; a process restart invalidates every active session
// because the registry that tracks them lives in memory.
type Config struct {
	Env        string // application environment (e.g. "dev", "prod")
	Port       string // HTTP port to listen on
	DBUser     string // database username
	DBPass     string // database password (optional)
	DBHost     string // database host address
	DBPort     string // database port number
	DBName     string // database name
	JWTSecret  string // secret used to sign session tokens
	SessionTTL int    // session token time-to-live in hours (1–24)
	BcryptCost int    // bcrypt cost for password hashing

	// AllowRootCategoryVideos controls whether a video may attach directly
	// to a root (parentless) category. Earlier deployments allowed it,
	// later ones restricted uploads to subcategories.
	AllowRootCategoryVideos bool

	SMTPHost string // SMTP server for verification mail
	SMTPPort int    // SMTP port
	SMTPUser string // SMTP username, also the From address
	SMTPPass string // SMTP password

	S3Bucket    string // object store bucket for video/image blobs
	S3Region    string // object store region
	S3Endpoint  string // optional custom endpoint (S3-compatible stores)
	S3PublicURL string // public base URL for uploaded objects
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:        must("APP_ENV"),
		Port:       must("APP_PORT"),
		DBUser:     must("DB_USER"),
		DBPass:     os.Getenv("DB_PASS"), // empty allowed
		DBHost:     must("DB_HOST"),
		DBPort:     must("DB_PORT"),
		DBName:     must("DB_NAME"),
		JWTSecret:  must("JWT_SECRET"),
		SessionTTL: mustInt("SESSION_TTL_HOURS"),
		BcryptCost: mustInt("BCRYPT_COST"),

		AllowRootCategoryVideos: envBool("VIDEO_ALLOW_ROOT_CATEGORY", false),

		SMTPHost: envStr("SMTP_HOST", ""),
		SMTPPort: envInt("SMTP_PORT", 587),
		SMTPUser: envStr("SMTP_USER", ""),
		SMTPPass: envStr("SMTP_PASS", ""),

		S3Bucket:    envStr("S3_BUCKET", ""),
		S3Region:    envStr("S3_REGION", "us-east-1"),
		S3Endpoint:  envStr("S3_ENDPOINT", ""),
		S3PublicURL: envStr("S3_PUBLIC_URL", ""),
	}
	if cfg.SessionTTL < 1 {
		cfg.SessionTTL = 1
	}
	if cfg.SessionTTL > 24 {
		cfg.SessionTTL = 24
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
