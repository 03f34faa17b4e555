// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/talento/internal/platform/apperr"
	"github.com/taibuivan/talento/internal/platform/constants"
	"github.com/taibuivan/talento/internal/platform/respond"
)

// AppConfig is the part of the configuration CORS depends on.
type AppConfig interface {
	IsDevelopment() bool
	OriginSuffix() string
}

// CORS lets the back-office web app call the API from its own origin.
//
// Development accepts any origin. Elsewhere the origin must end in the
// configured suffix; an empty suffix accepts none. A preflight from a refused
// origin gets 403 so the browser reports a clear failure.
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			header := writer.Header()
			header.Add("Vary", constants.HeaderOrigin)

			suffix := cfg.OriginSuffix()
			isAllowed := cfg.IsDevelopment() || (suffix != "" && strings.HasSuffix(origin, suffix))
			isPreflight := request.Method == http.MethodOptions && request.Header.Get("Access-Control-Request-Method") != ""

			if !isAllowed {
				if isPreflight {
					respond.Error(writer, request, apperr.Forbidden("Origin not allowed"))
					return
				}
				next.ServeHTTP(writer, request)
				return
			}

			header.Set("Access-Control-Allow-Origin", origin)
			header.Set("Access-Control-Allow-Credentials", "true")
			header.Set("Access-Control-Expose-Headers", constants.HeaderXRequestID+", "+constants.HeaderRetryAfter)

			if isPreflight {
				header.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization, "+constants.HeaderXRequestID)
				header.Set("Access-Control-Max-Age", "300")
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
