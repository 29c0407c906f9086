package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage keys shared by the session store and the API client.
const (
	TokenKey        = "restaurante_token"
	UserKey         = "restaurante_user"
	RememberKey     = "restaurante_remember"
	RefreshTokenKey = "restaurante_refresh_token"
)

// TestCredentials is the fixed dev-mode login pair. With DEV_MODE enabled
// these credentials produce a local session without touching the network.
type TestCredentials struct {
	Email    string
	Password string
	UserID   string
	Name     string
	Role     string
}

type Config struct {
	Env            string
	Port           string
	APIBaseURL     string
	APITimeout     time.Duration
	DevMode        bool
	StorageBackend string // memory | file | redis
	StorageFile    string
	RedisURL       string
	JWTSecret      string
	DBPath         string
	TestCreds      TestCredentials
}

// Load reads configuration from the environment, honoring a local .env
// file when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:            getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		APIBaseURL:     getEnv("API_BASE_URL", "https://api.seurestaurante.com"),
		APITimeout:     getDuration("API_TIMEOUT", 10*time.Second),
		DevMode:        getBool("DEV_MODE", true),
		StorageBackend: getEnv("STORAGE_BACKEND", "file"),
		StorageFile:    getEnv("STORAGE_FILE", "restaurante_storage.json"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-only-secret"),
		DBPath:         getEnv("DB_PATH", "restaurante.db"),
		TestCreds: TestCredentials{
			Email:    "teste@restaurante.com",
			Password: "123456",
			UserID:   "1",
			Name:     "Usuário Teste",
			Role:     "customer",
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
