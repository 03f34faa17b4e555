// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package party_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/talento/internal/core/party"
	"github.com/taibuivan/talento/internal/platform/dberr"
	"github.com/taibuivan/talento/pkg/textnorm"
)

// memoryRepository mirrors the Postgres store: LIKE-style containment on the
// normalized columns, creation-order results and the kind-wide unique indexes.
type memoryRepository struct {
	mu      sync.Mutex
	rows    []*party.Party
	clock   time.Time
	calls   map[string]int
	findErr error

	// hidden rows exist for uniqueness but are invisible to searches.
	hidden map[string]bool

	// beforeInsert runs inside Insert before uniqueness is checked, to simulate
	// a concurrent writer winning the race.
	beforeInsert func(repo *memoryRepository)
}

func newMemoryRepository(rows ...*party.Party) *memoryRepository {
	repo := &memoryRepository{
		clock: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		calls: make(map[string]int),
	}
	for _, row := range rows {
		repo.add(row)
	}
	return repo
}

func (repo *memoryRepository) add(row *party.Party) {
	repo.clock = repo.clock.Add(time.Minute)
	if row.CreatedAt.IsZero() {
		row.CreatedAt = repo.clock
		row.UpdatedAt = repo.clock
	}
	repo.rows = append(repo.rows, row)
}

func (repo *memoryRepository) FindByPattern(_ context.Context, scope party.Scope, patterns []party.FieldPattern) ([]*party.Party, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.calls["FindByPattern"]++

	if repo.findErr != nil {
		return nil, repo.findErr
	}

	seen := make(map[string]bool)
	var result []*party.Party
	for _, pattern := range patterns {
		for _, row := range repo.rows {
			if row.Kind != scope.Kind || row.IsDeleted || seen[row.ID] || repo.hidden[row.ID] {
				continue
			}
			if scope.OwnerID != nil && (row.LinkedOwnerID == nil || *row.LinkedOwnerID != *scope.OwnerID) {
				continue
			}
			if strings.Contains(columnValue(row, pattern.Field), pattern.Value) {
				seen[row.ID] = true
				result = append(result, clone(row))
			}
		}
	}
	return result, nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*party.Party, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.calls["FindByID"]++

	for _, row := range repo.rows {
		if row.ID == id && !row.IsDeleted {
			return clone(row), nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *memoryRepository) ListByKind(_ context.Context, kind party.Kind) ([]*party.Party, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.calls["ListByKind"]++

	var result []*party.Party
	for _, row := range repo.rows {
		if row.Kind == kind && !row.IsDeleted {
			result = append(result, clone(row))
		}
	}
	return result, nil
}

func (repo *memoryRepository) Insert(_ context.Context, p *party.Party) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.calls["Insert"]++

	if repo.beforeInsert != nil {
		hook := repo.beforeInsert
		repo.beforeInsert = nil
		hook(repo)
	}

	if repo.violatesUnique(p, "") {
		return dberr.Wrap(&pgconn.PgError{Code: "23505", ConstraintName: "party_kind_nick_key"}, "insert_party")
	}

	repo.add(clone(p))
	p.CreatedAt, p.UpdatedAt = repo.clock, repo.clock
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, id string, patch party.Patch) (*party.Party, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.calls["Update"]++

	for _, row := range repo.rows {
		if row.ID != id || row.IsDeleted {
			continue
		}

		next := clone(row)
		if patch.Kind != nil {
			next.Kind = *patch.Kind
		}
		if patch.DisplayNick != nil {
			next.DisplayNick = blank(*patch.DisplayNick)
		}
		if patch.LegalName != nil {
			next.LegalName = blank(*patch.LegalName)
		}
		if patch.TaxID != nil {
			next.TaxID = blank(party.NormalizeTaxID(*patch.TaxID))
		}
		if patch.Email != nil {
			next.Email = blank(*patch.Email)
		}
		if patch.Phone != nil {
			next.Phone = blank(*patch.Phone)
		}
		if patch.LinkedOwnerID != nil {
			next.LinkedOwnerID = blank(*patch.LinkedOwnerID)
		}
		if patch.IsActive != nil {
			next.IsActive = *patch.IsActive
		}

		if repo.violatesUnique(next, id) {
			return nil, dberr.Wrap(&pgconn.PgError{Code: "23505"}, "update_party")
		}

		*row = *next
		return clone(row), nil
	}
	return nil, dberr.ErrNotFound
}

func (repo *memoryRepository) SoftDelete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.calls["SoftDelete"]++

	for _, row := range repo.rows {
		if row.ID == id && !row.IsDeleted {
			row.IsDeleted, row.IsActive = true, false
			return nil
		}
	}
	return dberr.ErrNotFound
}

// violatesUnique mimics the partial unique indexes on (kind, nick), (kind, legal
// name) and (kind, taxid).
func (repo *memoryRepository) violatesUnique(p *party.Party, selfID string) bool {
	for _, row := range repo.rows {
		if row.ID == selfID || row.IsDeleted || row.Kind != p.Kind {
			continue
		}
		if p.DisplayNick != nil && row.DisplayNick != nil &&
			textnorm.Normalize(*p.DisplayNick) == textnorm.Normalize(*row.DisplayNick) {
			return true
		}
		if p.LegalName != nil && row.LegalName != nil &&
			textnorm.Normalize(*p.LegalName) == textnorm.Normalize(*row.LegalName) {
			return true
		}
		if p.TaxID != nil && row.TaxID != nil && *p.TaxID == *row.TaxID {
			return true
		}
	}
	return false
}

func columnValue(row *party.Party, field string) string {
	switch field {
	case party.FieldDisplayNick:
		return textnorm.NormalizePtr(row.DisplayNick)
	case party.FieldLegalName:
		return textnorm.NormalizePtr(row.LegalName)
	case party.FieldTaxID:
		return party.NormalizeTaxID(deref(row.TaxID))
	case party.FieldEmail:
		return strings.ToLower(deref(row.Email))
	}
	return ""
}

func clone(p *party.Party) *party.Party {
	copied := *p
	return &copied
}

func blank(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// memoryCache is a [party.ListCache] that records its traffic.
type memoryCache struct {
	mu          sync.Mutex
	lists       map[party.Kind][]*party.Party
	gets, sets  int
	invalidated []party.Kind
	failReads   bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{lists: make(map[party.Kind][]*party.Party)}
}

func (cache *memoryCache) Get(_ context.Context, kind party.Kind) ([]*party.Party, bool, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.gets++

	if cache.failReads {
		return nil, false, errors.New("cache down")
	}
	parties, ok := cache.lists[kind]
	return parties, ok, nil
}

func (cache *memoryCache) Set(_ context.Context, kind party.Kind, parties []*party.Party, _ time.Duration) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.sets++
	cache.lists[kind] = parties
	return nil
}

func (cache *memoryCache) Invalidate(_ context.Context, kinds ...party.Kind) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	for _, kind := range kinds {
		delete(cache.lists, kind)
		cache.invalidated = append(cache.invalidated, kind)
	}
	return nil
}
