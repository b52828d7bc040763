package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

const defaultDotEnv = ".env"

// LoadDotEnv copies variables from path (".env" when empty) into the process
// environment. Variables already set win, and a missing file is ignored.
func LoadDotEnv(path string) error {
	if path == "" {
		path = defaultDotEnv
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
