package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string
	MySQLDSN      string
	JWTSecret     string
	CORSOrigin    string
	SessionCookie string
	SwaggerHost   string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: skipping .env: %v", err)
	}

	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8081"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/subhub?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:3000"),
		SessionCookie: getEnv("SESSION_COOKIE", "token"),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
