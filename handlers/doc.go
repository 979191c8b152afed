// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package handlers contains the HTTP handlers for the campaign API.
//
// Public endpoints cover submission, the ballot, voting, and aggregate
// stats. Admin endpoints (moderation, selection, period lifecycle) check
// the Bearer token on every request; there is no session state. Handlers
// translate between HTTP and the campaign engine and map its error types
// to status codes.
package handlers
