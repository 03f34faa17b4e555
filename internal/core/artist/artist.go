// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package artist manages the agency's roster: the artists that parties and
// economics rules are attached to.
package artist

import "time"

// Artist is a represented performer and the payee of their own economics.
type Artist struct {
	ID        string     `json:"id"` // UUIDv7
	StageName string     `json:"stage_name"`
	LegalName *string    `json:"legal_name,omitempty"`
	TaxID     *string    `json:"tax_id,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	IBAN      *string    `json:"iban,omitempty"` // stored normalized
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"` // soft-delete tracker
}

// Input is the editable part of an artist as sent by the back-office forms.
//
// On update, a nil IsActive keeps the current status; every other field
// replaces the stored value.
type Input struct {
	StageName string  `json:"stage_name"`
	LegalName *string `json:"legal_name"`
	TaxID     *string `json:"tax_id"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	IBAN      *string `json:"iban"`
	IsActive  *bool   `json:"is_active"`
}

// apply copies input onto artist.
func (input Input) apply(artist *Artist) {
	artist.StageName = input.StageName
	artist.LegalName = input.LegalName
	artist.TaxID = input.TaxID
	artist.Email = input.Email
	artist.Phone = input.Phone
	artist.IBAN = input.IBAN
	if input.IsActive != nil {
		artist.IsActive = *input.IsActive
	}
}

// Filter holds the parameters for a paginated artist search.
type Filter struct {
	Query  string // ILIKE against stage and legal name
	Active *bool
}

const (
	FieldStageName = "stage_name"
	FieldLegalName = "legal_name"
	FieldTaxID     = "tax_id"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldIBAN      = "iban"
)
