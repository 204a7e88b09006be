// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Eliel Filho

// Package client is a typed HTTP client for the treino API.
//
// It owns the token pair lifecycle on the caller's behalf: credentials are
// kept in a pluggable [TokenStorage], the bearer header is injected on every
// authenticated call, and a 401 triggers exactly one transparent
// refresh-and-retry before the session is declared expired.
package client
