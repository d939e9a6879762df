// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8000)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - DatabaseURL: Connection string (defaulted for sqlite, required for postgres)
  - AllowedOrigins: CORS allowlist (default: http://localhost:5173)

# CLI Flags

	-p       Server port
	-d       Database URL
	-t       Database type
	-origins Comma-separated allowed CORS origins

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	ALLOWED_ORIGINS → -origins

CLI flags take precedence over environment variables.
*/
package cliparse
