// Package config reads service configuration from the environment.
package config

import "os"

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// Port returns the listen address, e.g. ":8080".
func Port() string {
	if port, ok := os.LookupEnv("APP_PORT"); ok {
		return port
	}
	return ":8080"
}

// DatabaseURL returns the postgres connection string for highscores, or
// "" when highscores are disabled.
func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// SavesPath returns the sqlite file holding saved games.
func SavesPath() string {
	if path, ok := os.LookupEnv("APP_SAVES_PATH"); ok {
		return path
	}
	return "saves.db"
}

// LogFile returns the rotating engine log destination, or "" for none.
func LogFile() string {
	return os.Getenv("APP_LOG_FILE")
}
