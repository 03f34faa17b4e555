// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package party

import (
	"context"
	"time"
)

// # Party Data Access

// Repository defines the data access contract for parties.
type Repository interface {

	/*
		FindByPattern runs one approximate search per pattern inside scope and
		returns the union of the hits, keyed by party ID.

		Parameters:
		  - context: context.Context
		  - scope: Scope (kind, optional owner)
		  - patterns: []FieldPattern (normalized values)

		Returns:
		  - []*Party: Candidates in first-seen order, archived rows excluded
		  - error: Database retrieval failures
	*/
	FindByPattern(context context.Context, scope Scope, patterns []FieldPattern) ([]*Party, error)

	/*
		FindByID retrieves a party by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Party: Hydrated entity
		  - error: ErrNotFound if missing or archived
	*/
	FindByID(context context.Context, id string) (*Party, error)

	/*
		ListByKind returns every non-archived party of a kind.

		Parameters:
		  - context: context.Context
		  - kind: Kind

		Returns:
		  - []*Party: All rows of the kind
		  - error: Database retrieval failures
	*/
	ListByKind(context context.Context, kind Kind) ([]*Party, error)

	/*
		Insert persists a new party.

		Parameters:
		  - context: context.Context
		  - party: *Party (ID assigned by the caller)

		Returns:
		  - error: CONFLICT AppError on a uniqueness violation, or persistence failures
	*/
	Insert(context context.Context, party *Party) error

	/*
		Update applies a partial update and returns the updated row.

		Parameters:
		  - context: context.Context
		  - id: string
		  - patch: Patch

		Returns:
		  - *Party: Updated entity
		  - error: ErrNotFound, CONFLICT, or persistence failures
	*/
	Update(context context.Context, id string, patch Patch) (*Party, error)

	/*
		SoftDelete archives a party (isdeleted = true, isactive = false).

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: ErrNotFound if already archived or missing
	*/
	SoftDelete(context context.Context, id string) error
}

// # List Cache

// ListCache holds the wholesale per-kind list behind the search box.
//
// It is only consulted by [Service.ListParties]. The duplicate check always reads
// the repository.
type ListCache interface {
	Get(context context.Context, kind Kind) ([]*Party, bool, error)
	Set(context context.Context, kind Kind, parties []*Party, ttl time.Duration) error
	Invalidate(context context.Context, kinds ...Kind) error
}

// NopCache is a [ListCache] that never hits.
type NopCache struct{}

func (NopCache) Get(context.Context, Kind) ([]*Party, bool, error) { return nil, false, nil }
func (NopCache) Set(context.Context, Kind, []*Party, time.Duration) error { return nil }
func (NopCache) Invalidate(context.Context, ...Kind) error { return nil }

// unionByID appends the parties of next that are not yet in seen, keeping order.
func unionByID(result []*Party, seen map[string]struct{}, next []*Party) []*Party {
	for _, p := range next {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		result = append(result, p)
	}
	return result
}
