package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Load reads a secret value from a file and trims surrounding whitespace.
// The name is only used to give context in error messages. An error is
// returned when the file is missing or holds nothing but whitespace, so a
// blank credential can never silently reach the backend.
func Load(name, file string) (string, error) {
	if name = strings.TrimSpace(name); name == "" {
		name = "secret"
	}

	if file = strings.TrimSpace(file); file == "" {
		return "", fmt.Errorf("%s is not configured", name)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
	}

	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("%s file %q is empty", name, file)
	}

	return secret, nil
}
