package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/akeren/creatorchain/internal/log"
	"github.com/akeren/creatorchain/pkg/utils"
	"github.com/joho/godotenv"
)

const (
	AppEnvKey  = "APP_ENV"
	EnvFileKey = "ENV_FILE"
)

// migratableEnvs are the environments where the server may create tables on boot.
var migratableEnvs = map[string]bool{
	"":            true,
	"dev":         true,
	"development": true,
	"local":       true,
	"test":        true,
	"testing":     true,
}

// envFiles returns the dotenv files to load, ENV_FILE first when it names a list.
func envFiles() []string {
	raw := utils.GetEnvTrimmed(EnvFileKey)
	if raw == "" {
		return []string{".env"}
	}

	var files []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	return files
}

// InitializeEnvFile loads dotenv files without overriding variables that are
// already set. Missing files are not an error.
func InitializeEnvFile(logger *log.Logger) {
	if utils.GetEnvBool("SKIP_DOTENV", false) {
		logger.Info("Skipping .env file load (SKIP_DOTENV=true)")
		return
	}

	var loaded []string
	for _, file := range envFiles() {
		err := godotenv.Load(file)
		switch {
		case err == nil:
			loaded = append(loaded, file)
		case errors.Is(err, os.ErrNotExist):
			logger.Debug("Env file not found", "file", file)
		default:
			logger.Warn("Failed to load env file", "file", file, "error", err.Error())
		}
	}

	if len(loaded) == 0 {
		logger.Info("No env file loaded; using process environment")
		return
	}
	logger.Info("Environment variables loaded", "files", loaded)
}

// GetValueFromEnvironmentVariable keeps explicitly empty values, unlike the
// trimmed helpers in pkg/utils.
func GetValueFromEnvironmentVariable(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func GetAppEnv() string {
	return strings.ToLower(utils.GetEnvTrimmed(AppEnvKey))
}

func ValidateAutoMigrateAllowed(appEnv string) error {
	env := strings.ToLower(strings.TrimSpace(appEnv))
	if migratableEnvs[env] {
		return nil
	}
	return fmt.Errorf("--auto-migrate is not allowed when %s=%q (allowed: \"\", dev, development, local, test, testing)", AppEnvKey, env)
}
