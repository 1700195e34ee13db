package app

import (
	"os"
	"path/filepath"

	"github.com/xxxsen/alloyctl/internal/config"
)

const (
	// EnvFileFlag is the flag name used to point at an explicit dotenv file.
	EnvFileFlag = "env-file"

	defaultEnvName = ".env"
	userEnvName    = ".alloyctl.env"
)

// loadConfig resolves dotenv files by precedence: the explicit path, the
// working directory, then the user's home directory.
func loadConfig(explicit string) (*config.Config, error) {
	searchPaths := make([]string, 0, 3)
	if explicit != "" {
		searchPaths = append(searchPaths, explicit)
	}
	if wd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(wd, defaultEnvName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, userEnvName))
	}
	return config.Load(searchPaths...)
}
