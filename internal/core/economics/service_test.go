// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package economics_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/talento/internal/core/economics"
	"github.com/taibuivan/talento/internal/platform/apperr"
	"github.com/taibuivan/talento/internal/platform/dberr"
	"github.com/taibuivan/talento/pkg/pointer"
)

const (
	artistID = "0192a7c4-0000-7000-8000-0000000000a1"
	partyID  = "0192a7c4-0000-7000-8000-0000000000b1"
	ghostID  = "0192a7c4-0000-7000-8000-0000000000ff"
)

// memoryRepository serializes every budget check behind one mutex, which is
// stricter than the per-budget advisory lock but equivalent for tests.
type memoryRepository struct {
	mu    sync.Mutex
	rules map[string]*economics.Rule
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rules: make(map[string]*economics.Rule)}
}

func (repo *memoryRepository) ListByOwner(_ context.Context, owner economics.Owner) ([]*economics.Rule, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	rules := []*economics.Rule{}
	for _, rule := range repo.rules {
		if rule.Owner() == owner {
			copied := *rule
			rules = append(rules, &copied)
		}
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Concept < rules[j].Concept })
	return rules, nil
}

func (repo *memoryRepository) GetRule(_ context.Context, id string) (*economics.Rule, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	rule, ok := repo.rules[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *rule
	return &copied, nil
}

func (repo *memoryRepository) InsertRule(_ context.Context, rule *economics.Rule, check economics.BudgetCheck) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if err := check(repo.allocated(rule, "")); err != nil {
		return err
	}
	copied := *rule
	repo.rules[rule.ID] = &copied
	return nil
}

func (repo *memoryRepository) UpdateRule(_ context.Context, rule *economics.Rule, check economics.BudgetCheck) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.rules[rule.ID]; !ok {
		return dberr.ErrNotFound
	}
	if err := check(repo.allocated(rule, rule.ID)); err != nil {
		return err
	}
	copied := *rule
	repo.rules[rule.ID] = &copied
	return nil
}

func (repo *memoryRepository) DeleteRule(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.rules[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repo.rules, id)
	return nil
}

func (repo *memoryRepository) allocated(rule *economics.Rule, excludeID string) float64 {
	var sum float64
	for id, existing := range repo.rules {
		if id != excludeID && existing.Owner() == rule.Owner() && existing.Concept == rule.Concept {
			sum += existing.Percentage
		}
	}
	return sum
}

type knownOwners map[economics.Owner]bool

func (owners knownOwners) ResolveOwner(_ context.Context, owner economics.Owner) error {
	if owners[owner] {
		return nil
	}
	return apperr.NotFound("Owner")
}

func newService() (*economics.Service, *memoryRepository) {
	repo := newMemoryRepository()
	owners := knownOwners{
		{Type: economics.OwnerArtist, ID: artistID}: true,
		{Type: economics.OwnerParty, ID: partyID}:   true,
	}
	return economics.NewService(repo, owners, slog.New(slog.NewJSONHandler(io.Discard, nil))), repo
}

func rule(ownerType economics.OwnerType, ownerID, concept string, pct float64) *economics.Rule {
	return &economics.Rule{OwnerType: ownerType, OwnerID: ownerID, Concept: concept, Percentage: pct}
}

/*
TestService_CreateRule_Budget enforces the per-concept ceiling.
*/
func TestService_CreateRule_Budget(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()

	require.NoError(t, service.CreateRule(ctx, rule(economics.OwnerArtist, artistID, "Live", 60)))
	require.NoError(t, service.CreateRule(ctx, rule(economics.OwnerArtist, artistID, "live", 40)))

	// Concept is normalized, so "LIVE " shares the same budget
	err := service.CreateRule(ctx, rule(economics.OwnerArtist, artistID, "LIVE ", 0.01))
	assert.True(t, apperr.IsCode(err, apperr.CodeUnprocessable))

	// Other concepts and other owners have their own budget
	require.NoError(t, service.CreateRule(ctx, rule(economics.OwnerArtist, artistID, "streaming", 100)))
	require.NoError(t, service.CreateRule(ctx, rule(economics.OwnerParty, partyID, "live", 100)))
}

/*
TestService_CreateRule_FloatSums accepts thirds that add up to exactly 100.
*/
func TestService_CreateRule_FloatSums(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()

	for _, pct := range []float64{33.33, 33.33, 33.34} {
		require.NoError(t, service.CreateRule(ctx, rule(economics.OwnerArtist, artistID, "merch", pct)))
	}
}

/*
TestService_CreateRule_Validation rejects malformed rules before touching the store.
*/
func TestService_CreateRule_Validation(t *testing.T) {
	tests := []struct {
		name string
		rule *economics.Rule
		code string
	}{
		{"negative_percentage", rule(economics.OwnerArtist, artistID, "live", -1), apperr.CodeValidation},
		{"over_hundred", rule(economics.OwnerArtist, artistID, "live", 100.5), apperr.CodeValidation},
		{"nan", rule(economics.OwnerArtist, artistID, "live", math.NaN()), apperr.CodeValidation},
		{"empty_concept", rule(economics.OwnerArtist, artistID, "  ", 10), apperr.CodeValidation},
		{"unknown_owner_type", rule("label", artistID, "live", 10), apperr.CodeValidation},
		{"malformed_owner_id", rule(economics.OwnerArtist, "abc", "live", 10), apperr.CodeValidation},
		{"missing_owner", rule(economics.OwnerArtist, ghostID, "live", 10), apperr.CodeNotFound},
		{"negative_base", &economics.Rule{
			OwnerType: economics.OwnerArtist, OwnerID: artistID, Concept: "live", Percentage: 10,
			BaseAmount: pointer.To(-5.0),
		}, apperr.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newService()

			err := service.CreateRule(context.Background(), tt.rule)

			assert.True(t, apperr.IsCode(err, tt.code), "got %v", err)
			assert.Empty(t, repo.rules)
		})
	}
}

/*
TestService_UpdateRule re-checks the budget excluding the rule being edited.
*/
func TestService_UpdateRule(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()

	first := rule(economics.OwnerArtist, artistID, "live", 70)
	second := rule(economics.OwnerArtist, artistID, "live", 20)
	require.NoError(t, service.CreateRule(ctx, first))
	require.NoError(t, service.CreateRule(ctx, second))

	t.Run("raise_within_budget", func(t *testing.T) {
		updated, err := service.UpdateRule(ctx, first.ID, economics.Patch{Percentage: pointer.To(80.0)})
		require.NoError(t, err)
		assert.Equal(t, 80.0, updated.Percentage)
	})

	t.Run("raise_past_budget", func(t *testing.T) {
		_, err := service.UpdateRule(ctx, second.ID, economics.Patch{Percentage: pointer.To(25.0)})
		assert.True(t, apperr.IsCode(err, apperr.CodeUnprocessable))
	})

	t.Run("move_to_other_concept", func(t *testing.T) {
		updated, err := service.UpdateRule(ctx, second.ID, economics.Patch{Concept: pointer.To("Streaming"), Percentage: pointer.To(90.0)})
		require.NoError(t, err)
		assert.Equal(t, "streaming", updated.Concept)
	})

	t.Run("set_and_clear_base_amount", func(t *testing.T) {
		updated, err := service.UpdateRule(ctx, first.ID, economics.Patch{BaseAmount: pointer.To(1500.0)})
		require.NoError(t, err)
		assert.Equal(t, 1500.0, *updated.BaseAmount)

		updated, err = service.UpdateRule(ctx, first.ID, economics.Patch{ClearBaseAmount: true})
		require.NoError(t, err)
		assert.Nil(t, updated.BaseAmount)
	})

	t.Run("invalid_percentage", func(t *testing.T) {
		_, err := service.UpdateRule(ctx, first.ID, economics.Patch{Percentage: pointer.To(101.0)})
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})

	t.Run("empty_patch", func(t *testing.T) {
		_, err := service.UpdateRule(ctx, first.ID, economics.Patch{})
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := service.UpdateRule(ctx, ghostID, economics.Patch{Percentage: pointer.To(1.0)})
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})
}

/*
TestService_ConcurrentCreates never lets parallel writers overshoot the budget.
*/
func TestService_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	service, repo := newService()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = service.CreateRule(ctx, rule(economics.OwnerParty, partyID, "booking", 30))
		}()
	}
	wg.Wait()

	rules, err := repo.ListByOwner(ctx, economics.Owner{Type: economics.OwnerParty, ID: partyID})
	require.NoError(t, err)
	assert.Len(t, rules, 3)
}

/*
TestService_ListAndDelete covers listing by owner and removal.
*/
func TestService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()
	owner := economics.Owner{Type: economics.OwnerArtist, ID: artistID}

	created := rule(economics.OwnerArtist, artistID, "live", 10)
	require.NoError(t, service.CreateRule(ctx, created))

	rules, err := service.ListRules(ctx, owner)
	require.NoError(t, err)
	require.Len(t, rules, 1)

	_, err = service.ListRules(ctx, economics.Owner{Type: "label", ID: artistID})
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

	require.NoError(t, service.DeleteRule(ctx, created.ID))
	assert.True(t, apperr.IsCode(service.DeleteRule(ctx, created.ID), apperr.CodeNotFound))
}
