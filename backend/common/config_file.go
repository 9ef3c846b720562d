package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/ini.v1"
)

const defaultConfigTemplate = "PORT=3000\nSQLITE_PATH=data/filedrop.db\nBASE_URL=http://localhost:3000\nJWT_SECRET=%s\n"

// InitConfig merges an optional ini config file into the package-level
// settings. Non-empty file values override environment defaults; a missing
// file is created with defaults.
func InitConfig() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("get user home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".config", "filedrop", "config.ini")
	if err := ensureConfigFile(configPath); err != nil {
		return err
	}

	configMap, err := parseIniConfig(configPath)
	if err != nil {
		return err
	}

	if err := applyConfigMap(configMap); err != nil {
		return fmt.Errorf("apply config file %s: %w", configPath, err)
	}

	return nil
}

func ensureConfigFile(configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory %s: %w", configDir, err)
	}

	configFile, err := os.OpenFile(configPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return fmt.Errorf("create config file %s: %w", configPath, err)
	}
	defer configFile.Close()

	if _, err := configFile.WriteString(fmt.Sprintf(defaultConfigTemplate, uuid.New().String())); err != nil {
		return fmt.Errorf("write default config file %s: %w", configPath, err)
	}

	return nil
}

func parseIniConfig(path string) (map[string]string, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("parse ini config %s: %w", path, err)
	}

	configMap := make(map[string]string)
	for _, section := range cfg.Sections() {
		for _, key := range section.Keys() {
			configKey := strings.ToUpper(strings.TrimSpace(key.Name()))
			if configKey == "" {
				continue
			}
			configMap[configKey] = strings.TrimSpace(key.Value())
		}
	}

	return configMap, nil
}

func applyConfigMap(configMap map[string]string) error {
	stringSettings := map[string]*string{
		"SQLITE_PATH":          &SQLitePath,
		"BASE_URL":             &BaseURL,
		"JWT_SECRET":           &JWTSecret,
		"JWT_REFRESH_SECRET":   &JWTRefreshSecret,
		"CRON_SECRET":          &CronSecret,
		"FREE_PLAN_NAME":       &DefaultPlanName,
		"S3_ENDPOINT":          &S3Endpoint,
		"S3_REGION":            &S3Region,
		"S3_BUCKET":            &S3Bucket,
		"S3_ACCESS_KEY_ID":     &S3AccessKeyID,
		"S3_SECRET_ACCESS_KEY": &S3SecretAccessKey,
	}
	for key, target := range stringSettings {
		if configValue, ok := configMap[key]; ok && configValue != "" {
			*target = configValue
		}
	}

	if configValue, ok := configMap["PORT"]; ok && configValue != "" {
		portInt, err := strconv.Atoi(configValue)
		if err != nil {
			return fmt.Errorf("invalid value for PORT: %w", err)
		}
		*Port = portInt
	}

	return nil
}
