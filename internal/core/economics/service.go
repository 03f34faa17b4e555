// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package economics

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/taibuivan/talento/internal/platform/apperr"
	"github.com/taibuivan/talento/internal/platform/validate"
	"github.com/taibuivan/talento/pkg/textnorm"
	"github.com/taibuivan/talento/pkg/uuid"
)

// # Service Layer

// Service validates and stores economics rules.
type Service struct {
	repo   Repository
	owners OwnerResolver
	logger *slog.Logger
}

// NewService constructs a new economics [Service].
func NewService(repo Repository, owners OwnerResolver, logger *slog.Logger) *Service {
	return &Service{repo: repo, owners: owners, logger: logger}
}

/*
ListRules returns the rules of one owner.

Parameters:
  - context: context.Context
  - owner: Owner

Returns:
  - []*Rule: Ordered by concept
  - error: Validation or retrieval errors
*/
func (service *Service) ListRules(context context.Context, owner Owner) ([]*Rule, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}
	return service.repo.ListByOwner(context, owner)
}

// GetRule retrieves one rule.
func (service *Service) GetRule(context context.Context, id string) (*Rule, error) {
	return service.repo.GetRule(context, id)
}

/*
CreateRule validates and stores a new rule.

Description: The owner must exist, the percentage must be a valid share, and the
owner's total for the concept must stay within [MaxShare].

Parameters:
  - context: context.Context
  - rule: *Rule (ID and timestamps are assigned here)

Returns:
  - error: Validation, NotFound (owner), Unprocessable (budget) or persistence failures
*/
func (service *Service) CreateRule(context context.Context, rule *Rule) error {
	rule.Concept = textnorm.Normalize(rule.Concept)

	if err := validateOwner(rule.Owner()); err != nil {
		return err
	}
	if err := validateRule(rule); err != nil {
		return err
	}

	if err := service.owners.ResolveOwner(context, rule.Owner()); err != nil {
		return err
	}

	rule.ID = uuid.New()
	if err := service.repo.InsertRule(context, rule, budgetCheck(rule)); err != nil {
		return err
	}

	service.logger.Info("economics_rule_created",
		slog.String("rule_id", rule.ID),
		slog.String("owner_type", string(rule.OwnerType)),
		slog.String("owner_id", rule.OwnerID),
		slog.String("concept", rule.Concept),
		slog.Float64("percentage", rule.Percentage),
	)
	return nil
}

/*
UpdateRule applies a partial update.

Parameters:
  - context: context.Context
  - id: string
  - patch: Patch

Returns:
  - *Rule: Updated entity
  - error: Validation, NotFound, Unprocessable (budget) or persistence failures
*/
func (service *Service) UpdateRule(context context.Context, id string, patch Patch) (*Rule, error) {
	if patch.IsEmpty() {
		return nil, validate.FieldError(FieldPercentage, "Nothing to update")
	}
	if patch.Concept != nil {
		concept := textnorm.Normalize(*patch.Concept)
		patch.Concept = &concept
	}

	current, err := service.repo.GetRule(context, id)
	if err != nil {
		return nil, err
	}

	updated := patch.Apply(*current)
	if err := validateRule(&updated); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateRule(context, &updated, budgetCheck(&updated)); err != nil {
		return nil, err
	}

	service.logger.Info("economics_rule_updated",
		slog.String("rule_id", id),
		slog.Float64("percentage", updated.Percentage),
	)
	return &updated, nil
}

// DeleteRule removes a rule.
func (service *Service) DeleteRule(context context.Context, id string) error {
	if err := service.repo.DeleteRule(context, id); err != nil {
		return err
	}

	service.logger.Warn("economics_rule_deleted", slog.String("rule_id", id))
	return nil
}

// budgetCheck rejects a write that would push the concept total past MaxShare.
func budgetCheck(rule *Rule) BudgetCheck {
	return func(allocated float64) error {
		if allocated+rule.Percentage > MaxShare+shareTolerance {
			return apperr.Unprocessable(fmt.Sprintf(
				"Shares for %q would total %s%%; at most %s%% is left",
				rule.Concept, formatPct(allocated+rule.Percentage), formatPct(math.Max(0, MaxShare-allocated)),
			))
		}
		return nil
	}
}

func validateOwner(owner Owner) error {
	validator := &validate.Validator{}
	validator.Custom(FieldOwnerType, !owner.Type.Valid(), "Must be one of: artist, party")
	validator.Required(FieldOwnerID, owner.ID)
	if owner.ID != "" {
		validator.UUID(FieldOwnerID, owner.ID)
	}
	return validator.Err()
}

func validateRule(rule *Rule) error {
	validator := &validate.Validator{}
	validator.
		Required(FieldConcept, rule.Concept).
		MaxLen(FieldConcept, rule.Concept, 60).
		Percentage(FieldPercentage, rule.Percentage)

	if rule.BaseAmount != nil {
		amount := *rule.BaseAmount
		validator.Custom(FieldBaseAmount, math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0, "Must be a non-negative amount")
	}

	return validator.Err()
}

func formatPct(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
