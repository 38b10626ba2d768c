package config

import (
	"os"
	"strconv"

	"milyoner_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	// Question generation (Gemini proxy)
	GeminiAPIKey string
	GeminiModel  string

	// Redis rate limiter (optional; middleware fails open without it)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Rate limits
	APIRateLimit  int
	AuthRateLimit int
	QuizRateLimit int

	// Bank interest job
	InterestEnabled bool
}

// Load reads configuration from the environment (.env supported).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-3-flash-preview"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:         port,
		DatabaseURL:     dbURL,
		JWTSecret:       jwtSecret,
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     model,
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         redisDB,
		APIRateLimit:    envInt("API_RATE_LIMIT", 60),
		AuthRateLimit:   envInt("AUTH_RATE_LIMIT", 5),
		QuizRateLimit:   envInt("QUIZ_RATE_LIMIT", 60),
		InterestEnabled: os.Getenv("BANK_INTEREST_ENABLED") != "false",
	}
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
