package config

import "github.com/spf13/viper"

// DefaultDatabasePath is used when DATABASE_PATH is not set.
const DefaultDatabasePath = "./shelfmark.db"

type (
	// Config is built once by the composition root and passed by
	// reference; there is no package-level settings state.
	Config struct {
		HTTP
		Database
		Global
		OpenLibrary
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	OpenLibrary struct {
		Enabled bool
		BaseURL string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8374)
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("openlibrary_enabled", true)
	v.SetDefault("openlibrary_base_url", "https://openlibrary.org")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		OpenLibrary: OpenLibrary{
			Enabled: v.GetBool("OPENLIBRARY_ENABLED"),
			BaseURL: v.GetString("OPENLIBRARY_BASE_URL"),
		},
	}
}
