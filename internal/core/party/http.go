// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Party HTTP interface.

# Routing Strategy

  - Agents: search, detail, duplicate check, create-or-reuse and edits.
  - Managers: archiving.

The router expects middleware.Authenticate to run before it is mounted.
*/

package party

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

// # Handler Implementation

// Handler implements the HTTP layer for party operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new party [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with party endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAgent))

	router.Get("/", handler.listParties)
	router.Post("/", handler.createOrReuseParty)
	router.Post("/match", handler.matchParty)
	router.Get("/{id}", handler.getParty)
	router.Patch("/{id}", handler.updateParty)

	router.With(middleware.RequireRole(sec.RoleManager)).Delete("/{id}", handler.archiveParty)

	return router
}

/*
GET /api/v1/parties.

Description: Lists parties with accent-insensitive search.

Request:
  - kind: string (collaborator | provider, optional)
  - q: string (search over nick, legal name, tax id, email)
  - owner: string (linked artist UUID)
  - active: bool
  - limit, page: int

Response:
  - 200: []Party: Paginated list
*/
func (handler *Handler) listParties(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Kind:  Kind(queryParams.Get("kind")),
		Query: queryParams.Get("q"),
	}

	filter.OwnerID = convert.OptionalString(queryParams.Get("owner"))
	filter.Active = convert.OptionalBool(queryParams.Get("active"))

	parties, total, err := handler.service.ListParties(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, parties, paginationParams.Meta(total))
}

/*
GET /api/v1/parties/{id}.

Response:
  - 200: Party
  - 404: ErrNotFound
*/
func (handler *Handler) getParty(writer http.ResponseWriter, request *http.Request) {
	party, err := handler.service.GetParty(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, party)
}

/*
POST /api/v1/parties/match.

Description: Runs the duplicate check for a draft without creating anything.

Request (Body):
  - Draft JSON object

Response:
  - 200: Resolution
  - 400: Validation (no kind, or nothing to search on)
*/
func (handler *Handler) matchParty(writer http.ResponseWriter, request *http.Request) {
	var draft Draft
	if err := requestutil.DecodeJSON(request, &draft); err != nil {
		respond.Error(writer, request, err)
		return
	}

	resolution, err := handler.service.MatchParty(request.Context(), draft)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, resolution)
}

/*
POST /api/v1/parties.

Description: Creates a party unless an equivalent one exists, in which case the
existing party is returned (and linked to the draft's owner when unlinked).

Request (Body):
  - Draft JSON object

Response:
  - 201: Resolution (decision = create)
  - 200: Resolution (decision = reuse)
  - 400: Validation
*/
func (handler *Handler) createOrReuseParty(writer http.ResponseWriter, request *http.Request) {
	var draft Draft
	if err := requestutil.DecodeJSON(request, &draft); err != nil {
		respond.Error(writer, request, err)
		return
	}

	resolution, err := handler.service.CreateOrReuseParty(request.Context(), draft)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if resolution.Decision == DecisionCreate {
		respond.Created(writer, resolution)
		return
	}
	respond.OK(writer, resolution)
}

/*
PATCH /api/v1/parties/{id}.

Request (Body):
  - Patch JSON object (nil = untouched, "" = clear)

Response:
  - 200: Party
  - 400: Validation
  - 404: ErrNotFound
  - 409: Conflict (would duplicate another party)
*/
func (handler *Handler) updateParty(writer http.ResponseWriter, request *http.Request) {
	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	party, err := handler.service.UpdateParty(request.Context(), requestutil.ID(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, party)
}

/*
DELETE /api/v1/parties/{id}.

Response:
  - 204: Archived
  - 404: ErrNotFound
*/
func (handler *Handler) archiveParty(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.ArchiveParty(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
