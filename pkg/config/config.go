package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Redis       RedisConfig
	Recommender RecommenderConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
	TTL       time.Duration
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// RecommenderConfig carries the tuning constants of the dish ranker.
type RecommenderConfig struct {
	PresentIfContains         float64
	PresentIfMissing          float64
	UnavailablePenalty        float64
	DislikedIngredientPenalty float64
	SimilarityWeight          float64
	LikedDishBoost            float64
	DefaultTopN               int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	jwtTTLHours, err := getEnvInt("JWT_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}

	topN, err := getEnvInt("RECO_DEFAULT_TOP_N", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Menu Recommender API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: []string{getEnv("CORS_ORIGIN", "http://localhost:3000")},
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "menu_reco"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
			TTL:       time.Duration(jwtTTLHours) * time.Hour,
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Recommender: RecommenderConfig{
			DefaultTopN: topN,
		},
	}

	floats := []struct {
		key  string
		def  float64
		dest *float64
	}{
		{"RECO_PRESENT_IF_CONTAINS", 0.8, &cfg.Recommender.PresentIfContains},
		{"RECO_PRESENT_IF_MISSING", 0.1, &cfg.Recommender.PresentIfMissing},
		{"RECO_UNAVAILABLE_PENALTY", 0.2, &cfg.Recommender.UnavailablePenalty},
		{"RECO_DISLIKED_INGREDIENT_PENALTY", 0.1, &cfg.Recommender.DislikedIngredientPenalty},
		{"RECO_SIMILARITY_WEIGHT", 1.0, &cfg.Recommender.SimilarityWeight},
		{"RECO_LIKED_DISH_BOOST", 1.3, &cfg.Recommender.LikedDishBoost},
	}
	for _, f := range floats {
		v, err := getEnvFloat(f.key, f.def)
		if err != nil {
			return nil, err
		}
		*f.dest = v
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
