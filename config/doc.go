// Package config loads service configuration from config.yml, .env files and
// environment variables using viper and godotenv.
//
// Environment variables are matched against nested keys by splitting on
// underscores, so AUTH_SECRET populates auth.secret and
// DATABASE_MAX_OPEN_CONNS populates database.max_open_conns.
package config
