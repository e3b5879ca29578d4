package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env            string
	Port           string
	DatabaseURL    string
	RedisURL       string
	SecuritiesPath string // CSV seed for the security catalog
	APIBaseURL     string // base URL the console talks to
	CORSSuffix     string // allowed browser origin suffix, empty allows none
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = "titulos.db"
	}

	apiBase := strings.TrimRight(viper.GetString("API_BASE_URL"), "/")
	if apiBase == "" {
		apiBase = "http://localhost:" + port
	}

	secPath := viper.GetString("SECURITIES_PATH")
	if secPath == "" {
		secPath = "data/titulos.csv"
	}

	return &Config{
		Env:            env,
		Port:           port,
		DatabaseURL:    dbURL,
		RedisURL:       viper.GetString("REDIS_URL"),
		SecuritiesPath: secPath,
		APIBaseURL:     apiBase,
		CORSSuffix:     viper.GetString("CORS_ALLOWED_SUFFIX"),
	}, nil
}
