package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppPort           string
	AppTimezone       string
	TranslationFolder string
	DbDriver          string
	DbHost            string
	DbPort            string
	DbUser            string
	DbPassword        string
	DbName            string
	DbParams          string
	DatabaseURL       string
	LocalDbPath       string
	AnthropicAPIKey   string
	AnthropicModel    string
	AnthropicBaseURL  string
	AnalysisTimeout   time.Duration
	ReviewEnabled     bool
	ReviewHour        int
	GitRepoPath       string
	TrustedProxies    []string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	databaseURL := getEnv("DATABASE_URL", "")
	driver := strings.ToLower(getEnv("DB_DRIVER", ""))
	if driver == "" {
		driver = DriverMySQL
		if databaseURL != "" {
			driver = DriverPostgres
		}
	}

	return &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		AppTimezone:       getEnv("APP_TIMEZONE", "Asia/Seoul"),
		TranslationFolder: getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
		DbDriver:          driver,
		DbHost:            getEnv("MYSQL_HOST", "db"),
		DbPort:            getEnv("MYSQL_PORT", "3306"),
		DbUser:            getEnv("MYSQL_USER", "tasks"),
		DbPassword:        getEnv("MYSQL_PASSWORD", "tasks"),
		DbName:            getEnv("MYSQL_DATABASE", "tasks"),
		DbParams:          getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		DatabaseURL:       databaseURL,
		LocalDbPath:       getEnv("LOCAL_DB_PATH", "tasks-local.db"),
		AnthropicAPIKey:   getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:    getEnv("ANTHROPIC_MODEL", ""),
		AnthropicBaseURL:  getEnv("ANTHROPIC_BASE_URL", ""),
		AnalysisTimeout:   getDuration("ANALYSIS_TIMEOUT", 30*time.Second),
		ReviewEnabled:     getBool("REVIEW_ENABLED", true),
		ReviewHour:        getInt("REVIEW_HOUR", 18),
		GitRepoPath:       getEnv("GIT_REPO_PATH", "."),
		TrustedProxies:    parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
	}
}

// Location resolves AppTimezone, falling back to UTC when the zone is unknown.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.AppTimezone)
	if err != nil {
		return time.UTC, err
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

func getBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
