package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/gophmedia/internal/flagx"
	"github.com/dmitrijs2005/gophmedia/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals use
// timex.Duration so they can be given as "3s" or as integer nanoseconds.
type JsonConfig struct {
	Backend             string         `json:"backend"`
	APIBaseURL          string         `json:"api_base_url"`
	APIToken            string         `json:"api_token"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`

	SiteID   int64  `json:"site_id"`
	DBPath   string `json:"db_path"`
	PageSize int    `json:"page_size"`

	MaxUploadSize     int64    `json:"max_upload_size"`
	AllowedExtensions []string `json:"allowed_extensions"`

	S3Bucket        string         `json:"s3_bucket"`
	S3Region        string         `json:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
	S3AccessKey     string         `json:"s3_access_key"`
	S3SecretKey     string         `json:"s3_secret_key"`
	S3PresignExpiry timex.Duration `json:"s3_presign_expiry"`

	LogLevel string `json:"log_level"`
}

// parseJson overlays Config with the values set in the JSON file named by -c
// or -config. Absent keys keep their current value. Read and decode errors
// panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.Backend, jc.Backend)
	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.APIToken, jc.APIToken)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)

	if jc.SiteID != 0 {
		cfg.SiteID = jc.SiteID
	}
	setString(&cfg.DBPath, jc.DBPath)
	if jc.PageSize != 0 {
		cfg.PageSize = jc.PageSize
	}

	if jc.MaxUploadSize != 0 {
		cfg.MaxUploadSize = jc.MaxUploadSize
	}
	if jc.AllowedExtensions != nil {
		cfg.AllowedExtensions = jc.AllowedExtensions
	}

	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setDuration(&cfg.S3PresignExpiry, jc.S3PresignExpiry)

	setString(&cfg.LogLevel, jc.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
