package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Player    string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("HANGBOT_SERVER", "http://localhost:8080"),
		Player:    os.Getenv("HANGBOT_PLAYER"),
		Output:    getEnvOrDefault("HANGBOT_OUTPUT", "text"),
		Verbose:   false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
