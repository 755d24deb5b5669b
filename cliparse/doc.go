// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: "sqlite" (default) or "postgres"
  - DatabaseURL: File path or connection string (default: quickvote.db for sqlite)
  - JWTSecret: HMAC secret for signing session tokens (required)
  - AllowedOrigin: CORS origin (default: *)

# CLI Flags

	-p           Server port
	-t           Database type
	-d           Database URL
	-jwt-secret  JWT signing secret
	-origin      Allowed CORS origin

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_TYPE  → -t
	DATABASE_URL   → -d
	JWT_SECRET     → -jwt-secret
	ALLOWED_ORIGIN → -origin

CLI flags take precedence over environment variables. LoadDotEnv reads a
.env file first without overriding anything already exported.

# Validation

ParseFlags returns an error if:

  - JWT_SECRET is missing
  - DATABASE_TYPE is not sqlite or postgres
  - postgres is selected without DATABASE_URL
  - PORT is not a number

# Example

	// In main.go
	if err := cliparse.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg)
	// ...
	mux := router.NewRouter(conn, cfg)
*/
package cliparse
