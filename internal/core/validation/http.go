// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validation exposes the server-side field checks to the back-office UI
// so forms can flag bad input before submitting.
package validation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/talento/internal/platform/middleware"
	requestutil "github.com/taibuivan/talento/internal/platform/request"
	"github.com/taibuivan/talento/internal/platform/respond"
	"github.com/taibuivan/talento/internal/platform/sec"
	"github.com/taibuivan/talento/internal/platform/validate"
	"github.com/taibuivan/talento/pkg/iban"
)

// IBANResult reports whether an IBAN passes the checksum and its compact form.
type IBANResult struct {
	Valid      bool   `json:"valid"`
	Normalized string `json:"normalized"`
}

// PercentageResult reports whether a value is an acceptable share.
type PercentageResult struct {
	Valid bool `json:"valid"`
}

// Handler serves the stateless validation endpoints.
type Handler struct{}

// NewHandler constructs a validation [Handler].
func NewHandler() *Handler {
	return &Handler{}
}

// Routes returns a [chi.Router] configured with validation endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAgent))

	router.Post("/iban", handler.checkIBAN)
	router.Post("/percentage", handler.checkPercentage)

	return router
}

/*
POST /api/v1/validate/iban.

Request (Body):
  - iban: string (any spacing or case)

Response:
  - 200: IBANResult
*/
func (handler *Handler) checkIBAN(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		IBAN string `json:"iban"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, IBANResult{
		Valid:      iban.Valid(input.IBAN),
		Normalized: iban.Normalize(input.IBAN),
	})
}

/*
POST /api/v1/validate/percentage.

Request (Body):
  - value: number

Response:
  - 200: PercentageResult
*/
func (handler *Handler) checkPercentage(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Value float64 `json:"value"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, PercentageResult{Valid: validate.PctOK(input.Value)})
}
