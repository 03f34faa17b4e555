// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package economics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/talento/internal/platform/middleware"
	requestutil "github.com/taibuivan/talento/internal/platform/request"
	"github.com/taibuivan/talento/internal/platform/respond"
	"github.com/taibuivan/talento/internal/platform/sec"
)

// Handler implements the HTTP layer for economics rules.
type Handler struct {
	service *Service
}

// NewHandler constructs a new economics [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with economics endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAgent))

	router.Get("/", handler.listRules)
	router.Get("/{id}", handler.getRule)
	router.Post("/", handler.createRule)
	router.Patch("/{id}", handler.updateRule)

	router.With(middleware.RequireRole(sec.RoleManager)).Delete("/{id}", handler.deleteRule)

	return router
}

/*
GET /api/v1/economics?owner_type=&owner_id=.

Response:
  - 200: []Rule
  - 400: Validation (unknown owner type or malformed id)
*/
func (handler *Handler) listRules(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()
	owner := Owner{
		Type: OwnerType(queryParams.Get("owner_type")),
		ID:   queryParams.Get("owner_id"),
	}

	rules, err := handler.service.ListRules(request.Context(), owner)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, rules)
}

func (handler *Handler) getRule(writer http.ResponseWriter, request *http.Request) {
	rule, err := handler.service.GetRule(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, rule)
}

/*
POST /api/v1/economics.

Response:
  - 201: Rule
  - 400: Validation (percentage outside 0..100)
  - 404: Owner not found
  - 422: Concept total would exceed 100
*/
func (handler *Handler) createRule(writer http.ResponseWriter, request *http.Request) {
	var input Rule
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateRule(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateRule(writer http.ResponseWriter, request *http.Request) {
	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	rule, err := handler.service.UpdateRule(request.Context(), requestutil.ID(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, rule)
}

func (handler *Handler) deleteRule(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteRule(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
