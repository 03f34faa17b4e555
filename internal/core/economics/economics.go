// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package economics stores the revenue-sharing rules attached to artists and
parties.

# Budget Invariant

For a given owner and concept, the percentages of all rules add up to at most
100. The check runs inside the store's budget lock so two concurrent edits
cannot overshoot together.
*/
package economics

import "time"

// # Owners

// OwnerType names the table a rule's owner lives in.
type OwnerType string

const (
	OwnerArtist OwnerType = "artist"
	OwnerParty  OwnerType = "party"
)

// Valid reports whether t is a known owner type.
func (t OwnerType) Valid() bool {
	return t == OwnerArtist || t == OwnerParty
}

// Owner identifies whose economics a rule belongs to.
type Owner struct {
	Type OwnerType `json:"owner_type"`
	ID   string    `json:"owner_id"`
}

// # Core Entities

// Rule is one revenue share: Percentage of Concept goes to the owner,
// optionally on top of a fixed BaseAmount.
type Rule struct {
	ID         string    `json:"id"` // UUIDv7
	OwnerType  OwnerType `json:"owner_type"`
	OwnerID    string    `json:"owner_id"`
	Concept    string    `json:"concept"` // stored normalized ("live", "streaming")
	Percentage float64   `json:"percentage"`
	BaseAmount *float64  `json:"base_amount,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Owner returns the rule's owner key.
func (r *Rule) Owner() Owner {
	return Owner{Type: r.OwnerType, ID: r.OwnerID}
}

// Patch carries a partial update. Owner is immutable.
type Patch struct {
	Concept    *string  `json:"concept"`
	Percentage *float64 `json:"percentage"`
	BaseAmount *float64 `json:"base_amount"`

	// ClearBaseAmount removes the base amount; BaseAmount is ignored when set.
	ClearBaseAmount bool `json:"clear_base_amount"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Concept == nil && p.Percentage == nil && p.BaseAmount == nil && !p.ClearBaseAmount
}

// Apply returns a copy of rule with the patch applied.
func (p Patch) Apply(rule Rule) Rule {
	if p.Concept != nil {
		rule.Concept = *p.Concept
	}
	if p.Percentage != nil {
		rule.Percentage = *p.Percentage
	}
	if p.ClearBaseAmount {
		rule.BaseAmount = nil
	} else if p.BaseAmount != nil {
		value := *p.BaseAmount
		rule.BaseAmount = &value
	}
	return rule
}

// # Field Identifiers

const (
	FieldOwnerType  = "owner_type"
	FieldOwnerID    = "owner_id"
	FieldConcept    = "concept"
	FieldPercentage = "percentage"
	FieldBaseAmount = "base_amount"
)

// MaxShare is the ceiling for the summed percentages of one owner and concept.
const MaxShare = 100.0

// shareTolerance absorbs float error in sums such as 33.33 + 33.33 + 33.34.
const shareTolerance = 1e-9
