// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package economics

import "context"

// BudgetCheck receives the percentage already allocated to the rule's owner and
// concept, excluding the rule itself, and returns an error to abort the write.
type BudgetCheck func(allocated float64) error

// Repository defines the data access contract for economics rules.
type Repository interface {

	/*
		ListByOwner returns an owner's rules ordered by concept, then creation.

		Parameters:
		  - context: context.Context
		  - owner: Owner

		Returns:
		  - []*Rule: Possibly empty
		  - error: Database retrieval failures
	*/
	ListByOwner(context context.Context, owner Owner) ([]*Rule, error)

	/*
		GetRule retrieves a rule by its UUID.

		Returns:
		  - *Rule: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	GetRule(context context.Context, id string) (*Rule, error)

	/*
		InsertRule persists rule after check accepts the current allocation.

		Parameters:
		  - context: context.Context
		  - rule: *Rule (ID assigned by the caller)
		  - check: BudgetCheck

		Returns:
		  - error: the check's error, or persistence failures
	*/
	InsertRule(context context.Context, rule *Rule, check BudgetCheck) error

	/*
		UpdateRule overwrites concept, percentage and base amount after check
		accepts the allocation of the rule's (possibly new) concept.

		Returns:
		  - error: ErrNotFound, the check's error, or persistence failures
	*/
	UpdateRule(context context.Context, rule *Rule, check BudgetCheck) error

	/*
		DeleteRule removes a rule permanently.

		Returns:
		  - error: ErrNotFound if missing
	*/
	DeleteRule(context context.Context, id string) error
}

// OwnerResolver confirms that a rule's owner exists.
type OwnerResolver interface {
	ResolveOwner(context context.Context, owner Owner) error
}
