package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	DevelopmentEnv = "development"
	ProductionEnv  = "production"
)

// InitEnvironmentVariables loads dir/.env.<goEnv>. A missing file is not an error in
// production, where variables come from the host.
func InitEnvironmentVariables(dir, goEnv string) error {
	if goEnv == "" {
		goEnv = DevelopmentEnv
	}

	envFile := filepath.Join(dir, fmt.Sprintf(".env.%s", goEnv))

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			if goEnv != ProductionEnv {
				log.Debugf("InitEnvironmentVariables: %s not found, using process environment", envFile)
			}
			return nil
		}

		return fmt.Errorf("failed to stat %s file: %w", envFile, err)
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to load %s file: %w", envFile, err)
	}

	log.Debugf("InitEnvironmentVariables: loaded %s", envFile)
	return nil
}

func GetEnv(key string) (string, error) {
	value, found := os.LookupEnv(key)
	if !found || value == "" {
		return "", fmt.Errorf("%s not set", key)
	}

	return value, nil
}
