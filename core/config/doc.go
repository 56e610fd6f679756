// Package config provides configuration management for the catalog service.
//
// It utilizes Viper for loading configuration from environment variables and
// a .env file (loaded via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port)
//   - Database: MySQL/sqlite connection details
//   - Log: Logging level and format
//   - Storage: S3/MinIO credentials and bucket settings for feed snapshots
//   - Feed: External feed source selection and credentials
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
