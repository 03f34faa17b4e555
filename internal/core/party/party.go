// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package party manages the agency's third parties: collaborators and providers
that work with, or are paid through, an artist.

# Core Responsibility

  - Registry: Defines the [Party] entity and its lifecycle flags.
  - Deduplication: [Resolver] decides whether a draft is an existing party
    (reuse) or a new one (create) before anything is inserted.
  - Search: accent- and case-insensitive filtering over the full party list.

Parties are never hard-deleted during normal flow; archiving flips IsDeleted.
*/
package party

import (
	"strings"
	"time"
	"unicode"

	"github.com/taibuivan/talento/pkg/pointer"
	"github.com/taibuivan/talento/pkg/textnorm"
)

// # Party Enums

// Kind tags what a party does for the agency.
type Kind string

const (
	KindCollaborator Kind = "collaborator"
	KindProvider     Kind = "provider"
)

// Kinds lists every valid [Kind] in display order.
var Kinds = []Kind{KindCollaborator, KindProvider}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindCollaborator || k == KindProvider
}

// # Core Entities

// Party is a person or company acting as an artist's collaborator or provider.
type Party struct {
	ID            string    `json:"id"` // UUIDv7
	Kind          Kind      `json:"kind"`
	DisplayNick   *string   `json:"display_nick,omitempty"`
	LegalName     *string   `json:"legal_name,omitempty"`
	TaxID         *string   `json:"tax_id,omitempty"`
	Email         *string   `json:"email,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	LinkedOwnerID *string   `json:"linked_owner_id,omitempty"`
	IsActive      bool      `json:"is_active"`
	IsDeleted     bool      `json:"is_deleted"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DisplayName is the nick when present, otherwise the legal name.
func (p *Party) DisplayName() string {
	if p.DisplayNick != nil && strings.TrimSpace(*p.DisplayNick) != "" {
		return *p.DisplayNick
	}
	if p.LegalName != nil {
		return *p.LegalName
	}
	return ""
}

// SearchFields returns the text a search box query is matched against.
func (p *Party) SearchFields() []string {
	return []string{pointer.Val(p.DisplayNick), pointer.Val(p.LegalName), pointer.Val(p.TaxID), pointer.Val(p.Email)}
}

// # Create-or-Reuse

// Draft is the staff input for a party that may or may not exist yet.
type Draft struct {
	Kind          Kind    `json:"kind"`
	DisplayNick   *string `json:"display_nick"`
	LegalName     *string `json:"legal_name"`
	TaxID         *string `json:"tax_id"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	LinkedOwnerID *string `json:"linked_owner_id"`

	// ScopeToOwner restricts the duplicate search to parties linked to LinkedOwnerID.
	ScopeToOwner bool `json:"scope_to_owner"`
}

// HasIdentity reports whether the draft carries at least one field the duplicate
// check can search on.
func (d Draft) HasIdentity() bool {
	return len(d.Patterns()) > 0
}

// Patterns returns one search pattern per non-empty identifying field, in the
// order the store is queried: nick, legal name, tax id, email.
func (d Draft) Patterns() []FieldPattern {
	candidates := []FieldPattern{
		{Field: FieldDisplayNick, Value: textnorm.NormalizePtr(d.DisplayNick)},
		{Field: FieldLegalName, Value: textnorm.NormalizePtr(d.LegalName)},
		{Field: FieldTaxID, Value: NormalizeTaxID(pointer.Val(d.TaxID))},
		{Field: FieldEmail, Value: emailPattern(d.Email)},
	}

	patterns := make([]FieldPattern, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Value != "" {
			patterns = append(patterns, candidate)
		}
	}
	return patterns
}

// Scope returns the search scope implied by the draft.
func (d Draft) Scope() Scope {
	scope := Scope{Kind: d.Kind}
	if d.ScopeToOwner {
		scope.OwnerID = d.LinkedOwnerID
	}
	return scope
}

// Decision is the outcome of a duplicate check.
type Decision string

const (
	DecisionReuse  Decision = "reuse"
	DecisionCreate Decision = "create"
)

// Resolution is the discriminated result of create-or-reuse.
//
// PartyID is set for [DecisionReuse], and for [DecisionCreate] once the row has
// been inserted. Party carries the record when one was loaded or written.
type Resolution struct {
	Decision Decision `json:"decision"`
	PartyID  string   `json:"party_id,omitempty"`
	Party    *Party   `json:"party,omitempty"`
}

// # Search & Filtering

// FieldPattern is one approximate search against a single column.
// Value is already normalized.
type FieldPattern struct {
	Field string
	Value string
}

// Scope limits a pattern search to one kind and, optionally, one owner.
type Scope struct {
	Kind    Kind
	OwnerID *string
}

// Filter holds parameters for listing parties.
type Filter struct {
	Kind    Kind    `json:"kind"`
	Query   string  `json:"q"`
	OwnerID *string `json:"owner"`
	Active  *bool   `json:"active"`
}

// Patch carries a partial update. Nil fields are left untouched; an empty
// string clears the column.
type Patch struct {
	Kind          *Kind   `json:"kind"`
	DisplayNick   *string `json:"display_nick"`
	LegalName     *string `json:"legal_name"`
	TaxID         *string `json:"tax_id"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	LinkedOwnerID *string `json:"linked_owner_id"`
	IsActive      *bool   `json:"is_active"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Kind == nil && p.DisplayNick == nil && p.LegalName == nil && p.TaxID == nil &&
		p.Email == nil && p.Phone == nil && p.LinkedOwnerID == nil && p.IsActive == nil
}

// emailPattern lowercases only: the store compares against lower(email), which
// keeps accents in internationalised local parts.
func emailPattern(email *string) string {
	return strings.ToLower(strings.TrimSpace(pointer.Val(email)))
}

// KeepsIdentity reports whether current, once p is applied, still carries a
// field the duplicate check can match on.
func (p Patch) KeepsIdentity(current *Party) bool {
	merged := Draft{
		DisplayNick: current.DisplayNick,
		LegalName:   current.LegalName,
		TaxID:       current.TaxID,
		Email:       current.Email,
	}
	if p.DisplayNick != nil {
		merged.DisplayNick = p.DisplayNick
	}
	if p.LegalName != nil {
		merged.LegalName = p.LegalName
	}
	if p.TaxID != nil {
		merged.TaxID = p.TaxID
	}
	if p.Email != nil {
		merged.Email = p.Email
	}
	return merged.HasIdentity()
}

// # Field Identifiers

const (
	FieldKind          = "kind"
	FieldDisplayNick   = "display_nick"
	FieldLegalName     = "legal_name"
	FieldTaxID         = "tax_id"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldLinkedOwnerID = "linked_owner_id"
)

// NormalizeTaxID uppercases a tax identifier and drops separators
// ("b-1234.567 8" → "B12345678").
func NormalizeTaxID(s string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s))
}
