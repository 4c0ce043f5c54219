package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read by LoadEnv when no path is given.
const DefaultEnvFile = ".env"

// LoadEnv loads variables from a dotenv file into the process environment.
// Variables already set take precedence. An empty path reads DefaultEnvFile
// if it exists; a named file must exist.
func LoadEnv(path string) error {
	if path == "" {
		if _, err := os.Stat(DefaultEnvFile); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// EnvPrefix returns the variable prefix for a kind name:
// "Band" -> "ONTOPY_BAND_", "Music Group" -> "ONTOPY_MUSIC_GROUP_".
func EnvPrefix(kind string) string {
	var b strings.Builder
	b.WriteString("ONTOPY_")
	for _, r := range kind {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteByte('_')
		}
	}
	b.WriteByte('_')
	return b.String()
}

// ApplyEnv overrides endpoint credentials from the environment.
// lookup is usually os.LookupEnv.
func (f *File) ApplyEnv(lookup func(string) (string, bool)) {
	for i := range f.Kinds {
		prefix := EnvPrefix(f.Kinds[i].Name)
		if v, ok := lookup(prefix + "USERNAME"); ok {
			f.Kinds[i].Endpoint.Username = v
		}
		if v, ok := lookup(prefix + "PASSWORD"); ok {
			f.Kinds[i].Endpoint.Password = v
		}
	}
}
