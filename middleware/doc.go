// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package middleware provides HTTP middleware and response helpers:
// request logging, JSON encoding, CORS, and client IP extraction behind
// reverse proxies.
package middleware
