// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared by the platform packages:
server timing, rate limiting, header names and Redis key prefixes.

Values that operators tune per environment live in config instead.
*/
package constants

import "time"

// AppName is reported to Postgres as application_name.
const AppName = "talento-api"

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout must exceed GlobalRequestTimeout so timed-out handlers can still answer.
	DefaultWriteTimeout = 35 * time.Second

	// DefaultIdleTimeout is how long a keep-alive connection may sit unused.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests get to finish on SIGTERM.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

// Rate and burst come from config; these govern the bucket bookkeeping.
const (
	// RateLimitCleanupInterval is how often idle client buckets are swept.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its bucket is dropped.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderOrigin        = "Origin"
	HeaderRetryAfter    = "Retry-After"
	HeaderXRequestID    = "X-Request-ID"

	ContentTypeJSON = "application/json; charset=utf-8"
)

// MaxRequestBodyBytes caps decoded JSON bodies. Party and artist payloads are a few hundred bytes.
const MaxRequestBodyBytes = 64 << 10

// # Redis Prefixes

const (
	// RedisPrefixPartyList keys the wholesale party list of one kind.
	RedisPrefixPartyList = "party:list:"
)
