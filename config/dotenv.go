package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// LoadDotenv loads a .env file once per process. ENV_FILE names an explicit
// file; otherwise .env is looked up from the working directory upwards until a
// go.mod or .git marks the project root. NO_DOTENV=1 disables loading.
// Variables already set in the environment are never overwritten.
func LoadDotenv() {
	dotenvOnce.Do(loadDotenv)
}

func loadDotenv() {
	if os.Getenv("NO_DOTENV") == "1" {
		return
	}
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		_ = godotenv.Load(envFile)
		return
	}

	dir, err := os.Getwd()
	if err != nil {
		_ = godotenv.Load()
		return
	}
	for i := 0; i < 8; i++ {
		if p := filepath.Join(dir, ".env"); fileExists(p) {
			_ = godotenv.Load(p)
			return
		}
		if fileExists(filepath.Join(dir, "go.mod")) || fileExists(filepath.Join(dir, ".git")) {
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
