// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package party

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/talento/internal/platform/apperr"
	"github.com/taibuivan/talento/internal/platform/dberr"
	"github.com/taibuivan/talento/internal/platform/validate"
	"github.com/taibuivan/talento/pkg/pointer"
	"github.com/taibuivan/talento/pkg/textnorm"
	"github.com/taibuivan/talento/pkg/uuid"
)

// # Duplicate Detection

// Resolver decides whether a draft party already exists.
//
// # Selection Policy
//
// The first candidate, in store order, whose nick, legal name, tax id or email
// contains the corresponding draft value wins. There is no scoring; see DESIGN.md.
//
// Resolver holds no state between calls and never caches candidates.
type Resolver struct {
	repo   Repository
	logger *slog.Logger
}

// NewResolver constructs a [Resolver] over repo.
func NewResolver(repo Repository, logger *slog.Logger) *Resolver {
	return &Resolver{repo: repo, logger: logger}
}

/*
Match runs the duplicate check without writing anything.

Parameters:
  - context: context.Context
  - draft: Draft

Returns:
  - Resolution: reuse (with the existing party) or create
  - error: validation failures for an empty draft, or store errors (retryable)
*/
func (resolver *Resolver) Match(context context.Context, draft Draft) (Resolution, error) {
	if err := validateDraftScope(draft); err != nil {
		return Resolution{}, err
	}
	return resolver.match(context, draft)
}

/*
CreateOrReuse links to an existing party when the draft matches one, and inserts
a new party otherwise.

Description: A uniqueness conflict on insert means another user created the same
party between our check and our insert. It is recovered by searching again and
reusing the winner; the raw conflict is never returned.

Parameters:
  - context: context.Context
  - draft: Draft

Returns:
  - Resolution: reuse or create, always with PartyID set
  - error: validation, store, or unresolvable conflict errors
*/
func (resolver *Resolver) CreateOrReuse(context context.Context, draft Draft) (Resolution, error) {
	if err := validateDraft(draft); err != nil {
		return Resolution{}, err
	}

	resolution, err := resolver.match(context, draft)
	if err != nil {
		return Resolution{}, err
	}

	if resolution.Decision == DecisionReuse {
		return resolver.reuse(context, draft, resolution)
	}

	party := newParty(draft)
	err = resolver.repo.Insert(context, party)
	if err == nil {
		resolver.logger.Info("party_created",
			slog.String("party_id", party.ID),
			slog.String("kind", string(party.Kind)),
		)
		return Resolution{Decision: DecisionCreate, PartyID: party.ID, Party: party}, nil
	}

	if !dberr.IsUniqueViolation(err) {
		return Resolution{}, err
	}

	// The unique indexes are kind-wide, so search kind-wide too
	widened := draft
	widened.ScopeToOwner = false

	resolution, lookupErr := resolver.match(context, widened)
	if lookupErr != nil {
		return Resolution{}, lookupErr
	}

	if resolution.Decision != DecisionReuse {
		resolver.logger.Warn("party_insert_conflict",
			slog.String("kind", string(draft.Kind)),
			slog.Any("error", err),
		)
		return Resolution{}, apperr.Conflict("A matching party was created concurrently but could not be found; retry the search")
	}

	resolver.logConflict(draft, resolution.Party, err)
	return resolver.reuse(context, draft, resolution)
}

// logConflict tells a lost race apart from an owner-scoped search that missed a
// party already linked to another artist. Only the race is unexpected.
func (resolver *Resolver) logConflict(draft Draft, winner *Party, err error) {
	if draft.ScopeToOwner && winner != nil && pointer.Val(winner.LinkedOwnerID) != pointer.Val(draft.LinkedOwnerID) {
		resolver.logger.Info("party_owner_scope_collision",
			slog.String("party_id", winner.ID),
			slog.String("kind", string(draft.Kind)),
		)
		return
	}

	resolver.logger.Warn("party_insert_conflict",
		slog.String("kind", string(draft.Kind)),
		slog.Any("error", err),
	)
}

// match queries the store and applies the client-side re-filter.
func (resolver *Resolver) match(context context.Context, draft Draft) (Resolution, error) {
	candidates, err := resolver.repo.FindByPattern(context, draft.Scope(), draft.Patterns())
	if err != nil {
		return Resolution{}, err
	}

	if found := FirstMatch(candidates, draft); found != nil {
		return Resolution{Decision: DecisionReuse, PartyID: found.ID, Party: found}, nil
	}

	return Resolution{Decision: DecisionCreate}, nil
}

// reuse links an unlinked party to the draft's owner when one was given.
func (resolver *Resolver) reuse(context context.Context, draft Draft, resolution Resolution) (Resolution, error) {
	existing := resolution.Party
	if draft.LinkedOwnerID != nil && *draft.LinkedOwnerID != "" && existing != nil && existing.LinkedOwnerID == nil {
		linked, err := resolver.repo.Update(context, existing.ID, Patch{LinkedOwnerID: draft.LinkedOwnerID})
		if err != nil {
			return Resolution{}, err
		}
		resolution.Party = linked
	}

	resolver.logger.Info("party_reused",
		slog.String("party_id", resolution.PartyID),
		slog.String("kind", string(draft.Kind)),
	)
	return resolution, nil
}

// FirstMatch returns the first candidate that a human would consider the same
// party as draft, or nil.
//
// Each identifying field is compared with its counterpart only: the candidate
// value must contain the draft value after normalization. Empty draft fields
// are skipped.
func FirstMatch(candidates []*Party, draft Draft) *Party {
	nick := textnorm.NormalizePtr(draft.DisplayNick)
	name := textnorm.NormalizePtr(draft.LegalName)
	taxID := NormalizeTaxID(pointer.Val(draft.TaxID))
	email := textnorm.NormalizePtr(draft.Email)

	for _, candidate := range candidates {
		if candidate == nil || candidate.IsDeleted {
			continue
		}
		switch {
		case nick != "" && textnorm.Matches(nick, pointer.Val(candidate.DisplayNick)):
			return candidate
		case name != "" && textnorm.Matches(name, pointer.Val(candidate.LegalName)):
			return candidate
		case taxID != "" && strings.Contains(NormalizeTaxID(pointer.Val(candidate.TaxID)), taxID):
			return candidate
		case email != "" && textnorm.Matches(email, pointer.Val(candidate.Email)):
			return candidate
		}
	}
	return nil
}

// newParty builds the row to insert from a draft.
func newParty(draft Draft) *Party {
	return &Party{
		ID:            uuid.New(),
		Kind:          draft.Kind,
		DisplayNick:   pointer.Trimmed(draft.DisplayNick),
		LegalName:     pointer.Trimmed(draft.LegalName),
		TaxID:         compactTaxID(draft.TaxID),
		Email:         pointer.Trimmed(draft.Email),
		Phone:         pointer.Trimmed(draft.Phone),
		LinkedOwnerID: pointer.Trimmed(draft.LinkedOwnerID),
		IsActive:      true,
	}
}

// validateDraftScope checks what a search needs: a kind and something to search on.
func validateDraftScope(draft Draft) error {
	validator := &validate.Validator{}
	validator.OneOf(FieldKind, string(draft.Kind), string(KindCollaborator), string(KindProvider))
	validator.Custom(FieldDisplayNick, !draft.HasIdentity(), "Provide a nick, legal name, tax id or email")
	validator.Custom(FieldLinkedOwnerID, draft.ScopeToOwner && pointer.Val(draft.LinkedOwnerID) == "", "Required when scope_to_owner is set")
	return validator.Err()
}

// validateDraft checks a draft that may be inserted.
func validateDraft(draft Draft) error {
	if err := validateDraftScope(draft); err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.
		MaxLen(FieldDisplayNick, pointer.Val(draft.DisplayNick), 200).
		MaxLen(FieldLegalName, pointer.Val(draft.LegalName), 300).
		MaxLen(FieldTaxID, pointer.Val(draft.TaxID), 32).
		MaxLen(FieldPhone, pointer.Val(draft.Phone), 40)

	if email := pointer.Val(draft.Email); strings.TrimSpace(email) != "" {
		validator.Email(FieldEmail, email)
	}
	if owner := pointer.Val(draft.LinkedOwnerID); owner != "" {
		validator.UUID(FieldLinkedOwnerID, owner)
	}

	return validator.Err()
}

// compactTaxID stores tax ids in [NormalizeTaxID] form; blank becomes nil.
func compactTaxID(s *string) *string {
	if s == nil {
		return nil
	}
	value := NormalizeTaxID(*s)
	if value == "" {
		return nil
	}
	return &value
}
