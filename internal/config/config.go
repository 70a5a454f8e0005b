package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvProduction is the environment name that hides internal error details.
const EnvProduction = "production"

var defaultCORSOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"http://localhost:5175",
	"http://localhost:5176",
}

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	Env         string
	ListenAddr  string
	Port        string
	DatabaseURL string
	GinMode     string
	CORSOrigins []string
}

// IsProduction reports whether the service runs in production mode.
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// LoadDotEnv reads a .env file into the process environment when one exists.
// Variables already set win over the file.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	existing := make([]string, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Load 从环境变量读取应用配置，并为缺失项提供默认值。
func Load() AppConfig {
	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "development"
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "5000"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		databaseURL = "blog.db"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "debug"
		if strings.EqualFold(env, EnvProduction) {
			ginMode = "release"
		}
	}

	return AppConfig{
		Env:         env,
		ListenAddr:  listenAddr,
		Port:        port,
		DatabaseURL: databaseURL,
		GinMode:     ginMode,
		CORSOrigins: parseOrigins(os.Getenv("CORS_ORIGINS")),
	}
}

func parseOrigins(raw string) []string {
	origins := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		return append([]string(nil), defaultCORSOrigins...)
	}
	return origins
}
