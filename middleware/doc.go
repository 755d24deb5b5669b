// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms).

# Authentication

RequireAuth verifies the bearer token and stores the claims in the request
context. RequireRole must be nested inside it:

	admin := middleware.RequireAuth(m, middleware.RequireRole(h.CreateSurvey,
		models.RoleAdmin, models.RoleSuperAdmin))

	claims, _ := middleware.ClaimsFromContext(r.Context())

Missing or invalid tokens get 401, a wrong role gets 403.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigin, mux),
	}

With "*" the request origin is echoed back and credentials are allowed.
Content-Disposition is exposed so browsers can read report filenames.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
	err := middleware.ParseJSONBody(r, &req)

Error bodies look like {"error": "Not Found", "message": "Survey not found"}.

# Client IP

GetClientIP checks X-Forwarded-For, X-Real-IP, then RemoteAddr.
*/
package middleware
