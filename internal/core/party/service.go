// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package party

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/taibuivan/talento/internal/platform/validate"
	"github.com/taibuivan/talento/pkg/slice"
	"github.com/taibuivan/talento/pkg/textnorm"
)

// # Service Layer

// Service orchestrates party listing, deduplicated creation and edits.
type Service struct {
	repo     Repository
	resolver *Resolver
	cache    ListCache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewService constructs a new party [Service]. A nil cache disables list caching.
func NewService(repo Repository, cache ListCache, cacheTTL time.Duration, logger *slog.Logger) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &Service{
		repo:     repo,
		resolver: NewResolver(repo, logger),
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// # Search

/*
ListParties returns the parties matching filter, sorted by display name.

Description: Rows are fetched wholesale per kind and filtered in process so the
search box is accent-insensitive. A blank query returns the unfiltered list.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Party: One page of results
  - int: Total matching count
  - error: Validation or retrieval errors
*/
func (service *Service) ListParties(context context.Context, filter Filter, limit, offset int) ([]*Party, int, error) {
	kinds := Kinds
	if filter.Kind != "" {
		if !filter.Kind.Valid() {
			return nil, 0, validate.FieldError(FieldKind, "Must be one of: collaborator, provider")
		}
		kinds = []Kind{filter.Kind}
	}

	var all []*Party
	for _, kind := range kinds {
		parties, err := service.listKind(context, kind)
		if err != nil {
			return nil, 0, err
		}
		all = append(all, parties...)
	}

	matched := slice.Filter(all, func(p *Party) bool {
		if filter.OwnerID != nil && (p.LinkedOwnerID == nil || *p.LinkedOwnerID != *filter.OwnerID) {
			return false
		}
		if filter.Active != nil && p.IsActive != *filter.Active {
			return false
		}
		return true
	})
	matched = textnorm.Filter(matched, filter.Query, (*Party).SearchFields)

	sortByDisplayName(matched)

	return slice.Window(matched, offset, limit), len(matched), nil
}

// listKind reads one kind through the cache. Cache failures fall back to the store.
func (service *Service) listKind(context context.Context, kind Kind) ([]*Party, error) {
	cached, hit, err := service.cache.Get(context, kind)
	if err != nil {
		service.logger.Warn("party_cache_read_failed", slog.String("kind", string(kind)), slog.Any("error", err))
	}
	if hit {
		return cached, nil
	}

	parties, err := service.repo.ListByKind(context, kind)
	if err != nil {
		return nil, err
	}

	if err := service.cache.Set(context, kind, parties, service.cacheTTL); err != nil {
		service.logger.Warn("party_cache_write_failed", slog.String("kind", string(kind)), slog.Any("error", err))
	}
	return parties, nil
}

/*
GetParty retrieves a party by its UUID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Party: Hydrated entity
  - error: ErrNotFound if missing
*/
func (service *Service) GetParty(context context.Context, id string) (*Party, error) {
	return service.repo.FindByID(context, id)
}

// # Create-or-Reuse

// MatchParty runs the duplicate check for draft without writing.
func (service *Service) MatchParty(context context.Context, draft Draft) (Resolution, error) {
	return service.resolver.Match(context, draft)
}

/*
CreateOrReuseParty returns an existing matching party or creates a new one.

Parameters:
  - context: context.Context
  - draft: Draft

Returns:
  - Resolution: reuse or create, with PartyID set
  - error: Validation or persistence failures
*/
func (service *Service) CreateOrReuseParty(context context.Context, draft Draft) (Resolution, error) {
	resolution, err := service.resolver.CreateOrReuse(context, draft)
	if err != nil {
		return Resolution{}, err
	}

	// A reuse may have linked the party to an owner, which changes list output too
	service.invalidate(context, draft.Kind)
	return resolution, nil
}

// # Edits

/*
UpdateParty applies a partial update.

Description: Kind may change. Both the old and the new kind lists are invalidated.

Parameters:
  - context: context.Context
  - id: string
  - patch: Patch

Returns:
  - *Party: Updated entity
  - error: Validation (including clearing the last identifying field),
    ErrNotFound, CONFLICT or persistence failures
*/
func (service *Service) UpdateParty(context context.Context, id string, patch Patch) (*Party, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !patch.KeepsIdentity(current) {
		return nil, validate.FieldError(FieldDisplayNick, "A party needs a nick, legal name, tax id or email")
	}

	updated, err := service.repo.Update(context, id, patch)
	if err != nil {
		return nil, err
	}

	service.invalidate(context, current.Kind, updated.Kind)
	service.logger.Info("party_updated", slog.String("party_id", id))
	return updated, nil
}

/*
ArchiveParty soft-deletes a party.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: ErrNotFound if missing
*/
func (service *Service) ArchiveParty(context context.Context, id string) error {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}

	service.invalidate(context, current.Kind)
	service.logger.Warn("party_archived", slog.String("party_id", id))
	return nil
}

// invalidate drops list caches; failures only cost a stale page until the TTL expires.
func (service *Service) invalidate(context context.Context, kinds ...Kind) {
	if err := service.cache.Invalidate(context, kinds...); err != nil {
		service.logger.Warn("party_cache_invalidate_failed", slog.Any("error", err))
	}
}

// validatePatch applies the same field rules as a draft to the fields being set.
func validatePatch(patch Patch) error {
	validator := &validate.Validator{}

	if patch.IsEmpty() {
		validator.Custom(FieldKind, true, "Nothing to update")
		return validator.Err()
	}

	if patch.Kind != nil {
		validator.Custom(FieldKind, !patch.Kind.Valid(), "Must be one of: collaborator, provider")
	}
	if patch.DisplayNick != nil {
		validator.MaxLen(FieldDisplayNick, *patch.DisplayNick, 200)
	}
	if patch.LegalName != nil {
		validator.MaxLen(FieldLegalName, *patch.LegalName, 300)
	}
	if patch.TaxID != nil {
		validator.MaxLen(FieldTaxID, *patch.TaxID, 32)
	}
	if patch.Email != nil && strings.TrimSpace(*patch.Email) != "" {
		validator.Email(FieldEmail, *patch.Email)
	}
	if patch.Phone != nil {
		validator.MaxLen(FieldPhone, *patch.Phone, 40)
	}
	if patch.LinkedOwnerID != nil && *patch.LinkedOwnerID != "" {
		validator.UUID(FieldLinkedOwnerID, *patch.LinkedOwnerID)
	}

	return validator.Err()
}

// sortByDisplayName orders parties alphabetically on their normalized display name.
func sortByDisplayName(parties []*Party) {
	sort.SliceStable(parties, func(i, j int) bool {
		left, right := textnorm.Normalize(parties[i].DisplayName()), textnorm.Normalize(parties[j].DisplayName())
		if left != right {
			return left < right
		}
		return parties[i].ID < parties[j].ID
	})
}
