package config

import "time"

const (
	BackendREST = "rest"
	BackendS3   = "s3"
)

// Config holds runtime settings for the gophmedia CLI.
//
// Units: RequestTimeout, OnlineCheckInterval and S3PresignExpiry are
// time.Duration values; MaxUploadSize is in bytes (0 disables the check).
type Config struct {
	Backend             string
	APIBaseURL          string
	APIToken            string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration

	SiteID   int64
	DBPath   string
	PageSize int

	MaxUploadSize     int64
	AllowedExtensions []string

	S3Bucket        string
	S3Region        string
	S3BaseEndpoint  string
	S3AccessKey     string
	S3SecretKey     string
	S3PresignExpiry time.Duration

	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Backend = BackendREST
	c.APIBaseURL = "https://public-api.wordpress.com/rest/v1.1"
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 10 * time.Second
	c.DBPath = "gophmedia.db"
	c.PageSize = 20
	c.MaxUploadSize = 100 << 20
	c.AllowedExtensions = []string{
		"jpg", "jpeg", "png", "gif", "webp",
		"mp4", "mov", "webm", "mp3", "m4a", "wav", "ogg",
		"pdf", "doc", "docx", "ppt", "pptx", "xls", "xlsx", "odt",
	}
	c.S3Region = "us-east-1"
	c.S3PresignExpiry = 15 * time.Minute
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
