package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DataPath           string // metadata.json and albums.json live here
	MediaPath          string // raw blob directory (local backend)
	MaxFileSize        int64  // per-file upload cap in bytes
	MaxFilesPerUpload  int
	AllowedImageTypes  []string
	AllowedVideoTypes  []string
	CompressThreshold  int64 // images above this byte size are re-encoded
	MaxImageDimension  int   // longest edge after re-encode
	JPEGQuality        int
	StorageBackend     string // "local" or "gcs"
	GCSBucketName      string
	GCSObjectPrefix    string
	GCSCredentialsPath string
	GCSCredentialsJSON string // raw JSON string, preferred for containerized deploys
	BedrockRegion      string // empty disables the image analysis collaborator
	BedrockModelID     string
	AllowedOrigins     []string
	APIKeys            []string // empty disables API key auth
	RateLimitRPS       float64
	RateLimitBurst     int

	CacheTTL             time.Duration
	CacheCleanupInterval time.Duration
}

// Load reads configuration from environment variables and .env file.
// It loads the .env file if present, then populates the Config struct.
// Returns an error if the configuration is invalid.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dataPath := getEnv("DATA_PATH", "./data")

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DataPath:          dataPath,
		MediaPath:         getEnv("MEDIA_PATH", filepath.Join(dataPath, "media")),
		MaxFileSize:       getInt64Env("MAX_FILE_SIZE", 50*1024*1024),
		MaxFilesPerUpload: getIntEnv("MAX_FILES_PER_UPLOAD", 20),
		AllowedImageTypes: getList("ALLOWED_IMAGE_TYPES", []string{
			"image/jpeg",
			"image/png",
			"image/webp",
			"image/heic",
			"image/dng",
			"image/x-adobe-dng",
		}),
		AllowedVideoTypes: getList("ALLOWED_VIDEO_TYPES", []string{
			"video/mp4",
			"video/webm",
			"video/mov",
			"video/quicktime",
		}),
		CompressThreshold:  getInt64Env("COMPRESS_THRESHOLD", 2*1024*1024),
		MaxImageDimension:  getIntEnv("MAX_IMAGE_DIMENSION", 2048),
		JPEGQuality:        getIntEnv("JPEG_QUALITY", 85),
		StorageBackend:     getEnv("STORAGE_BACKEND", "local"),
		GCSBucketName:      getEnv("GCS_BUCKET_NAME", ""),
		GCSObjectPrefix:    getEnv("GCS_OBJECT_PREFIX", "media/"),
		GCSCredentialsPath: getEnv("GCS_CREDENTIALS_PATH", ""),
		GCSCredentialsJSON: getEnv("GCS_CREDENTIALS_JSON", ""),
		BedrockRegion:      getEnv("BEDROCK_REGION", ""),
		BedrockModelID:     getEnv("BEDROCK_MODEL_ID", "amazon.nova-lite-v1:0"),
		AllowedOrigins:     getList("ALLOWED_ORIGINS", []string{"*"}),
		APIKeys:            getList("API_KEYS", []string{}),
		RateLimitRPS:       getFloatEnv("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 20),

		CacheTTL:             getDurationEnv("CACHE_TTL", 15*time.Minute),
		CacheCleanupInterval: getDurationEnv("CACHE_CLEANUP_INTERVAL", 5*time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive")
	}
	if c.MaxFilesPerUpload <= 0 {
		return fmt.Errorf("MAX_FILES_PER_UPLOAD must be positive")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("JPEG_QUALITY must be between 1 and 100")
	}
	if c.MaxImageDimension <= 0 {
		return fmt.Errorf("MAX_IMAGE_DIMENSION must be positive")
	}
	switch c.StorageBackend {
	case "local":
	case "gcs":
		if c.GCSBucketName == "" {
			return fmt.Errorf("GCS_BUCKET_NAME is required when STORAGE_BACKEND=gcs")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be \"local\" or \"gcs\", got %q", c.StorageBackend)
	}
	return nil
}

// MetadataFilePath returns the location of the media record collection.
func (c *Config) MetadataFilePath() string {
	return filepath.Join(c.DataPath, "metadata.json")
}

// AlbumsFilePath returns the location of the album record collection.
func (c *Config) AlbumsFilePath() string {
	return filepath.Join(c.DataPath, "albums.json")
}

// IsAllowedType reports whether the MIME type is in the upload allow-list.
func (c *Config) IsAllowedType(mimeType string) bool {
	return slices.Contains(c.AllowedImageTypes, mimeType) ||
		slices.Contains(c.AllowedVideoTypes, mimeType)
}

// Retrieves an environment variable or returns a default value if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// Retrieves an integer from environment variable or returns a default value.
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// Retrieves a 64-bit integer from environment variable or returns a default value.
func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

// Retrieves a float from environment variable or returns a default value.
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// Retrieves a duration from environment variable or returns a default value.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// Retrieves a comma-separated list from environment variable or returns a default value.
func getList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}
