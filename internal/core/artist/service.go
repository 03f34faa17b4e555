// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/talento/internal/platform/validate"
	"github.com/taibuivan/talento/pkg/iban"
	"github.com/taibuivan/talento/pkg/pointer"
	"github.com/taibuivan/talento/pkg/uuid"
)

// Service manages the roster.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs an artist [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListArtists returns one page of the roster matching filter.
func (service *Service) ListArtists(context context.Context, filter Filter, limit, offset int) ([]*Artist, int, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	return service.repo.List(context, filter, limit, offset)
}

// GetArtist returns one artist, or ErrNotFound. Economics uses it to check rule owners.
func (service *Service) GetArtist(context context.Context, id string) (*Artist, error) {
	return service.repo.FindByID(context, id)
}

/*
CreateArtist adds an artist to the roster.

Description: Text fields are trimmed (blank optional fields become null) and
the IBAN is stored in its compact upper-case form. New artists are active
unless the input says otherwise.

Parameters:
  - context: context.Context
  - input: Input

Returns:
  - *Artist: Stored entity with id and timestamps
  - error: Validation or persistence failures
*/
func (service *Service) CreateArtist(context context.Context, input Input) (*Artist, error) {
	artist := &Artist{ID: uuid.New(), IsActive: true}
	input.apply(artist)
	normalize(artist)

	if err := validateArtist(artist); err != nil {
		return nil, err
	}
	if err := service.repo.Insert(context, artist); err != nil {
		return nil, err
	}

	service.logger.Info("artist_created",
		slog.String("artist_id", artist.ID),
		slog.String("stage_name", artist.StageName),
	)
	return artist, nil
}

/*
UpdateArtist replaces the editable fields of an artist.

Parameters:
  - context: context.Context
  - id: string
  - input: Input (nil is_active keeps the current status)

Returns:
  - *Artist: Updated entity
  - error: Validation, ErrNotFound or persistence failures
*/
func (service *Service) UpdateArtist(context context.Context, id string, input Input) (*Artist, error) {
	artist, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	input.apply(artist)
	normalize(artist)

	if err := validateArtist(artist); err != nil {
		return nil, err
	}
	if err := service.repo.Update(context, artist); err != nil {
		return nil, err
	}

	service.logger.Info("artist_updated", slog.String("artist_id", id))
	return artist, nil
}

// DeleteArtist soft-deletes an artist. Parties linked to it keep their link until edited.
func (service *Service) DeleteArtist(context context.Context, id string) error {
	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Warn("artist_deleted", slog.String("artist_id", id))
	return nil
}

// normalize trims text fields, blanks become nil, and the IBAN is compacted.
func normalize(artist *Artist) {
	artist.StageName = strings.TrimSpace(artist.StageName)
	artist.LegalName = pointer.Trimmed(artist.LegalName)
	artist.TaxID = pointer.Trimmed(artist.TaxID)
	artist.Email = pointer.Trimmed(artist.Email)
	artist.Phone = pointer.Trimmed(artist.Phone)

	artist.IBAN = pointer.Trimmed(artist.IBAN)
	if artist.IBAN != nil {
		artist.IBAN = pointer.To(iban.Normalize(*artist.IBAN))
	}
}

func validateArtist(artist *Artist) error {
	validator := &validate.Validator{}
	validator.
		Required(FieldStageName, artist.StageName).
		MaxLen(FieldStageName, artist.StageName, 200).
		MaxLen(FieldLegalName, pointer.Val(artist.LegalName), 300).
		MaxLen(FieldTaxID, pointer.Val(artist.TaxID), 32).
		MaxLen(FieldPhone, pointer.Val(artist.Phone), 40)

	if artist.Email != nil {
		validator.Email(FieldEmail, *artist.Email)
	}
	if artist.IBAN != nil {
		validator.IBAN(FieldIBAN, *artist.IBAN)
	}

	return validator.Err()
}
