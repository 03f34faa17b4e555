// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/talento/internal/core/artist"
	"github.com/taibuivan/talento/internal/platform/apperr"
	"github.com/taibuivan/talento/internal/platform/dberr"
	"github.com/taibuivan/talento/pkg/pointer"
)

type memoryRepository struct {
	rows map[string]*artist.Artist
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: make(map[string]*artist.Artist)}
}

func (repo *memoryRepository) List(_ context.Context, f artist.Filter, limit, offset int) ([]*artist.Artist, int, error) {
	var matched []*artist.Artist
	for _, a := range repo.rows {
		if f.Query != "" && !strings.Contains(strings.ToLower(a.StageName), strings.ToLower(f.Query)) {
			continue
		}
		if f.Active != nil && a.IsActive != *f.Active {
			continue
		}
		matched = append(matched, a)
	}
	total := len(matched)
	if offset >= total {
		return []*artist.Artist{}, total, nil
	}
	return matched[offset:min(offset+limit, total)], total, nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*artist.Artist, error) {
	a, ok := repo.rows[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (repo *memoryRepository) Insert(_ context.Context, a *artist.Artist) error {
	copied := *a
	repo.rows[a.ID] = &copied
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, a *artist.Artist) error {
	if _, ok := repo.rows[a.ID]; !ok {
		return dberr.ErrNotFound
	}
	copied := *a
	repo.rows[a.ID] = &copied
	return nil
}

func (repo *memoryRepository) SoftDelete(_ context.Context, id string) error {
	if _, ok := repo.rows[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repo.rows, id)
	return nil
}

func newService() (*artist.Service, *memoryRepository) {
	repo := newMemoryRepository()
	return artist.NewService(repo, slog.New(slog.NewJSONHandler(io.Discard, nil))), repo
}

/*
TestService_CreateArtist normalizes input and assigns an id.
*/
func TestService_CreateArtist(t *testing.T) {
	service, repo := newService()

	created, err := service.CreateArtist(context.Background(), artist.Input{
		StageName: "  Rosalía  ",
		Email:     pointer.To("management@rosalia.example"),
		IBAN:      pointer.To("es91 2100 0418 4502 0005 1332"),
		Phone:     pointer.To("   "),
	})
	require.NoError(t, err)

	stored := repo.rows[created.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "Rosalía", stored.StageName)
	assert.Equal(t, "ES9121000418450200051332", *stored.IBAN)
	assert.Nil(t, stored.Phone)
	assert.True(t, stored.IsActive)
	assert.Len(t, created.ID, 36)
}

/*
TestService_CreateArtist_Validation rejects bad IBANs, emails and empty names.
*/
func TestService_CreateArtist_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input artist.Input
		field string
	}{
		{"missing_stage_name", artist.Input{StageName: "  "}, artist.FieldStageName},
		{"bad_iban_checksum", artist.Input{StageName: "Bad Bunny", IBAN: pointer.To("ES9121000418450200051333")}, artist.FieldIBAN},
		{"bad_iban_shape", artist.Input{StageName: "Bad Bunny", IBAN: pointer.To("not-an-iban")}, artist.FieldIBAN},
		{"bad_email", artist.Input{StageName: "Bad Bunny", Email: pointer.To("bunny")}, artist.FieldEmail},
		{"email_too_long", artist.Input{StageName: "Bad Bunny", Email: pointer.To(strings.Repeat("b", 250) + "@x.es")}, artist.FieldEmail},
		{"long_name", artist.Input{StageName: strings.Repeat("a", 201)}, artist.FieldStageName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newService()

			_, err := service.CreateArtist(context.Background(), tt.input)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperr.CodeValidation, appErr.Code)
			require.Len(t, appErr.Details, 1)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
			assert.Empty(t, repo.rows)
		})
	}
}

/*
TestService_UpdateAndDelete covers the rest of the artist lifecycle.
*/
func TestService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()

	created, err := service.CreateArtist(ctx, artist.Input{StageName: "C. Tangana"})
	require.NoError(t, err)

	updated, err := service.UpdateArtist(ctx, created.ID, artist.Input{StageName: "C. Tangana", LegalName: pointer.To("Antón Álvarez")})
	require.NoError(t, err)
	assert.True(t, updated.IsActive, "nil is_active keeps the current status")

	paused, err := service.UpdateArtist(ctx, created.ID, artist.Input{StageName: "C. Tangana", IsActive: pointer.To(false)})
	require.NoError(t, err)
	assert.False(t, paused.IsActive)
	assert.Nil(t, paused.LegalName, "fields are replaced, not merged")

	got, err := service.GetArtist(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.NoError(t, service.DeleteArtist(ctx, created.ID))
	assert.True(t, apperr.IsCode(service.DeleteArtist(ctx, created.ID), apperr.CodeNotFound))

	_, err = service.UpdateArtist(ctx, "missing", artist.Input{StageName: "x"})
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}
