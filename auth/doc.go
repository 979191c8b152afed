// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth handles visitor identity derivation and admin credentials.

# Visitor Identity

Visitors are anonymous. The client generates an opaque token once and sends
it with every vote; IdentityKey folds it through a salted HMAC so the stored
identifier can't be reversed into the original token:

	key, err := auth.IdentityKey(token, cfg.VisitorSalt)

The same token always yields the same key, which is what makes the
one-vote-per-day constraint enforceable.

# Admin Access

Moderator endpoints are protected by a single shared token compared in
constant time:

	if err := auth.ValidateAdminToken(auth.BearerToken(header), cfg.AdminToken); err != nil {
		// 401
	}

# IP Hashing

HashIP produces a salted, truncated hash for privacy-preserving abuse
tracking. Raw IP addresses are never persisted.
*/
package auth
