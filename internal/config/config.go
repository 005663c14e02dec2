package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/magiconair/properties"
)

// Property keys read from the properties file.
const (
	KeyCoachName        = "coach.name"
	KeyTeamName         = "team.name"
	KeyCoachType        = "coach.type"
	KeyScanBasePackages = "scan.basePackages"
)

// DefaultPropertiesFile is used when APP_PROPERTIES is not set.
const DefaultPropertiesFile = "application.properties"

// TeamProperties holds the values rendered by the team info endpoint.
// Values are passed through untouched; a missing key is an empty string.
type TeamProperties struct {
	CoachName string
	TeamName  string
}

// ComponentConfig controls which component packages the container scans
// and which coach is served by the workout endpoints.
type ComponentConfig struct {
	BasePackages []string
	CoachType    string
}

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	AutoMigrate        bool
}

// Enabled reports whether a database host was configured.
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from the properties file and environment variables.
type AppConfig struct {
	AppHost     string
	Port        string
	LogLevel    string
	Environment string
	Team        TeamProperties
	Components  ComponentConfig
	Database    DatabaseConfig
}

// Load reads configuration from the properties file and environment variables.
// A .env file is loaded into the environment by importing _ "github.com/joho/godotenv/autoload".
// Environment variables take precedence over properties.
func Load() (*AppConfig, error) {
	props, err := ReadProperties(getEnv("APP_PROPERTIES", DefaultPropertiesFile))
	if err != nil {
		return nil, err
	}
	return FromProperties(props), nil
}

// FromProperties builds the configuration from an already parsed property set,
// layering environment variables on top.
func FromProperties(props map[string]string) *AppConfig {
	return &AppConfig{
		AppHost:     getEnv("APP_HOST", "localhost:8080"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Environment: getEnv("ENVIRONMENT", "production"),
		Team: TeamProperties{
			CoachName: getEnv("COACH_NAME", props[KeyCoachName]),
			TeamName:  getEnv("TEAM_NAME", props[KeyTeamName]),
		},
		Components: ComponentConfig{
			BasePackages: getEnvList("SCAN_BASE_PACKAGES", props[KeyScanBasePackages]),
			CoachType:    getEnv("COACH_TYPE", props[KeyCoachType]),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", true),
		},
	}
}

// ReadProperties parses a Java style properties file. A missing file yields an empty set.
// Values are returned as written: ${...} references are not expanded.
func ReadProperties(path string) (map[string]string, error) {
	l := &properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
		IgnoreMissing:    true,
	}
	p, err := l.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read properties %s: %w", path, err)
	}
	return p.Map(), nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvList splits a comma separated value, dropping blank entries.
func getEnvList(key, def string) []string {
	raw := getEnv(key, def)
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
