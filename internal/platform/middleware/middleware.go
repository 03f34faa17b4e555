// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware holds the HTTP chain that wraps every back-office route.

Order used by the API server:

  - RequestID, then StructuredLogger, so every log line has a correlation id.
  - RateLimit and PanicRecovery guard the process.
  - CORS answers browser preflights for the back-office origin.
  - Authenticate and RequireRole gate the /api/v1 tree.

Every rejection is written through respond.Error so clients always see the same
error envelope.
*/
package middleware

import (
	"net"
	"net/http"
)

// RealIP returns the host part of the peer address. Proxy headers are only
// honoured when the server rewrites RemoteAddr from them first.
func RealIP(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
