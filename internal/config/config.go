package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	DatabaseDriver    string
	DatabaseURL       string
	JWTSecret         string
	JWTIssuer         string
	SessionTTLSeconds int64
	CookieSecure      bool

	AdminEmail        string
	AdminPassword     string
	AdminPasswordHash string
	LoginMaxAttempts  int

	GeminiAPIKey     string
	GeminiTextModel  string
	GeminiImageModel string

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryFolderPrefix string
	MediaStoragePath       string

	ProjectDefaultLocation string
	CorsOrigins            []string
	TrustedProxies         []string
	Port                   string

	LogDir           string
	LogRetentionDays int
	LogLevel         string
	LogFormat        string
}

func Load() Config {
	cfg := LoadWithoutSecrets()
	cfg.JWTSecret = mustEnv("JWT_SECRET")
	return cfg
}

// LoadWithoutSecrets reads everything except the values only the HTTP server
// needs, so CLI commands like migrate and seed run without JWT_SECRET.
func LoadWithoutSecrets() Config {
	return Config{
		DatabaseDriver:    strings.ToLower(envOr("DATABASE_DRIVER", "sqlite")),
		DatabaseURL:       envOr("DATABASE_URL", "data/site.db"),
		JWTSecret:         envOr("JWT_SECRET", ""),
		JWTIssuer:         envOr("JWT_ISSUER", "sitecms"),
		SessionTTLSeconds: int64(envOrInt("SESSION_TTL_SECONDS", 43200)),
		CookieSecure:      envOrBool("COOKIE_SECURE", false),

		AdminEmail:        strings.ToLower(envOr("ADMIN_EMAIL", "")),
		AdminPassword:     envOr("ADMIN_PASSWORD", ""),
		AdminPasswordHash: envOr("ADMIN_PASSWORD_HASH", ""),
		LoginMaxAttempts:  envOrInt("LOGIN_MAX_ATTEMPTS", 5),

		GeminiAPIKey:     envOr("GEMINI_API_KEY", ""),
		GeminiTextModel:  envOr("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),
		GeminiImageModel: envOr("GEMINI_IMAGE_MODEL", "gemini-2.0-flash-preview-image-generation"),

		CloudinaryCloudName:    envOr("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:       envOr("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret:    envOr("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolderPrefix: envOr("CLOUDINARY_FOLDER_PREFIX", "website"),
		MediaStoragePath:       envOr("MEDIA_STORAGE_PATH", "storage/media"),

		ProjectDefaultLocation: envOr("PROJECT_DEFAULT_LOCATION", "Athens"),
		CorsOrigins:            parseCSV(envOr("CORS_ORIGINS", "")),
		TrustedProxies:         parseCSV(envOr("TRUSTED_PROXIES", "")),
		Port:                   envOr("PORT", "8080"),

		LogDir:           envOr("LOG_DIR", "storage/logs"),
		LogRetentionDays: envOrInt("LOG_RETENTION_DAYS", 7),
		LogLevel:         envOr("LOG_LEVEL", "info"),
		LogFormat:        envOr("LOG_FORMAT", "text"),
	}
}

// CloudinaryEnabled reports whether all three Cloudinary credentials are set.
func (c Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
