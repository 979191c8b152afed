// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment.

# Precedence

CLI flags win over environment variables; a local .env file (loaded via
godotenv) sits below the real environment.

# Settings

Required:

  - DATABASE_URL (-d): PostgreSQL connection string
  - ADMIN_TOKEN (--admin-token): Bearer token for moderator endpoints
  - VISITOR_SALT (--visitor-salt): Secret for visitor identity HMAC

Optional:

  - PORT (-p): Server port (default: 3319)
  - PERIOD_DAYS (--period-days): Voting period length (default: 30)
  - SELECT_COUNT (--select-count): Ballot size per selection (default: 5)
*/
package cliparse
