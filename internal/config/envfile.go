package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// EnvFileName is the KEY=VALUE file next to config.yaml. Its WIKIMARK_*
// variables apply when the process environment leaves them unset.
const EnvFileName = "env"

// ReadEnvFile reads KEY=VALUE lines. A missing file yields no variables.
// Blank lines and # comments are skipped, an "export " prefix is allowed
// and matching quotes around a value are stripped.
func ReadEnvFile(path string) (map[string]string, error) {
	vars := map[string]string{}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return vars, nil
		}
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if key, value, ok := parseEnvLine(line); ok {
			vars[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return vars, nil
}

func parseEnvLine(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	value = strings.TrimSpace(value)
	if key == "" {
		return "", "", false
	}
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}

// lookupEnv prefers the process environment over the env file.
func lookupEnv(file map[string]string, key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return file[key]
}
