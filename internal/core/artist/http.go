// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/talento/internal/platform/middleware"
	requestutil "github.com/taibuivan/talento/internal/platform/request"
	"github.com/taibuivan/talento/internal/platform/respond"
	"github.com/taibuivan/talento/internal/platform/sec"
	"github.com/taibuivan/talento/pkg/convert"
	"github.com/taibuivan/talento/pkg/pagination"
)

// Handler serves /api/v1/artists.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes lets agents read and edit the roster; deleting needs a manager.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAgent))

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	router.Route("/{id}", func(item chi.Router) {
		item.Get("/", handler.get)
		item.Patch("/", handler.update)
		item.With(middleware.RequireRole(sec.RoleManager)).Delete("/", handler.delete)
	})

	return router
}

// GET /artists?q=&active=&page=&limit=
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		Query:  query.Get("q"),
		Active: convert.OptionalBool(query.Get("active")),
	}

	artists, total, err := handler.service.ListArtists(request.Context(), filter, page.Limit, page.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, artists, page.Meta(total))
}

// GET /artists/{id}
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	artist, err := handler.service.GetArtist(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, artist)
}

// POST /artists, 201 with the stored artist.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	artist, err := handler.service.CreateArtist(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, artist)
}

// PATCH /artists/{id}
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	artist, err := handler.service.UpdateArtist(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, artist)
}

// DELETE /artists/{id}, managers only.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteArtist(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
