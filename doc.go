// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the QuickVote API server.

QuickVote runs multiple-choice surveys and polls. Admins create surveys and
read results; participants answer them. Closed or running surveys can be
analyzed into trends, insights and recommendations, and exported as a
plain-text report.

# Starting the Server

The server reads a .env file, then environment variables or CLI flags:

	JWT_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -jwt-secret ...

# Configuration

Required settings:

  - JWT_SECRET (-jwt-secret): Secret shared with the sign-in service
  - DATABASE_URL (-d): Only when DATABASE_TYPE is postgres

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - ALLOWED_ORIGIN (-origin): CORS origin (default: *)

# Architecture

  - handlers: HTTP request handlers (surveys, responses, results)
  - analysis: Survey analytics and the text report
  - importer: Question sheets from .xlsx and .csv
  - router: Route definitions using Go 1.22+ routing
  - middleware: Auth, CORS, logging, JSON helpers
  - models: Request/response types
  - auth: JWT session tokens
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
