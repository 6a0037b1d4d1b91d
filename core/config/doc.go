// Package config provides configuration management for the CLI.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - AIS: cluster gateway endpoint and request timeout
//   - S3: credentials and endpoint for the S3-compatibility client
//   - Log: logging level and format
//
// Environment variables map to nested keys with underscores, so AIS_ENDPOINT
// sets ais.endpoint and LOG_LEVEL sets log.level.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.AIS.Endpoint)
package config
