// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the QuickVote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Survey management (admin or superadmin):

	POST   /surveys            - Create survey
	POST   /surveys/import     - Parse an .xlsx/.csv question sheet
	PUT    /surveys/{id}       - Edit an unanswered open survey
	POST   /surveys/{id}/close - Stop accepting answers
	DELETE /surveys/{id}       - Remove survey and answers
	GET    /surveys/{id}/results - Tallies and roster
	GET    /surveys/{id}/report  - Plain-text analysis export

Any signed-in caller:

	GET  /surveys                   - List visible surveys
	GET  /surveys/{id}              - Questions and options
	POST /surveys/{id}/responses    - Submit or change answers
	GET  /surveys/{id}/my-responses - Caller's answers
	GET  /surveys/{id}/analysis     - Analysis report

Every survey route is wrapped in WithLogging and RequireAuth; admin routes
add RequireRole. The bearer token is verified with cfg.JWTSecret.
*/
package router
