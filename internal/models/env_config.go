package models

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type EnvConfig struct {
	DatabaseURL   string
	MigrationsURL string
	Port          string
	SessionTTL    time.Duration
	BcryptCost    int
	Debug         bool
}

// ReadEnvConfig reads DAILYREPORT_* variables, after loading a .env file
// from the working directory when there is one.
func ReadEnvConfig() EnvConfig {
	_ = godotenv.Load()

	debug := os.Getenv("DAILYREPORT_DEBUG") == "true"
	port := getEnv("DAILYREPORT_PORT", "23495")
	migrations := getEnv("DAILYREPORT_MIGRATIONS", "file://migrations")

	sessionTTL, err := time.ParseDuration(os.Getenv("DAILYREPORT_SESSION_TTL"))
	if err != nil || sessionTTL <= 0 {
		fmt.Println("Using default value for DAILYREPORT_SESSION_TTL")
		sessionTTL = 24 * time.Hour
	}

	bcryptCost, err := strconv.Atoi(os.Getenv("DAILYREPORT_BCRYPT_COST"))
	if err != nil || bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost + 2
		if debug {
			bcryptCost = bcrypt.MinCost
		}
	}

	return EnvConfig{
		DatabaseURL:   os.Getenv("DAILYREPORT_DATABASE_URL"),
		MigrationsURL: migrations,
		Port:          port,
		SessionTTL:    sessionTTL,
		BcryptCost:    bcryptCost,
		Debug:         debug,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
