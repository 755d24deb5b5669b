// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth issues and verifies session tokens.

# Tokens

Tokens are HS256 JWTs signed with the configured JWT_SECRET. The subject is
the caller's lowercased email and the role claim is one of admin,
superadmin or participant:

	m := auth.NewManager(cfg.JWTSecret)
	token, err := m.Issue("owner@example.com", models.RoleAdmin)
	claims, err := m.Parse(token)

Tokens expire after DefaultTTL. Parse rejects non-HMAC signing methods,
expired tokens and unknown roles with ErrInvalidToken.

# Headers

BearerToken pulls the token out of an Authorization header:

	token, err := auth.BearerToken(r.Header.Get("Authorization"))

Admins and superadmins own the surveys they create. Every role may answer
surveys.
*/
package auth
