// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"

	"github.com/taibuivan/talento/internal/core/artist"
	"github.com/taibuivan/talento/internal/core/economics"
	"github.com/taibuivan/talento/internal/core/party"
	"github.com/taibuivan/talento/internal/platform/apperr"
)

// ArtistLookup is the slice of [artist.Service] the owner check needs.
type ArtistLookup interface {
	GetArtist(context context.Context, id string) (*artist.Artist, error)
}

// PartyLookup is the slice of [party.Service] the owner check needs.
type PartyLookup interface {
	GetParty(context context.Context, id string) (*party.Party, error)
}

// OwnerDirectory satisfies [economics.OwnerResolver] by asking the domain that
// owns each kind of rule owner.
type OwnerDirectory struct {
	artists ArtistLookup
	parties PartyLookup
}

// NewOwnerDirectory wires the artist and party lookups into an [OwnerDirectory].
func NewOwnerDirectory(artists ArtistLookup, parties PartyLookup) *OwnerDirectory {
	return &OwnerDirectory{artists: artists, parties: parties}
}

/*
ResolveOwner confirms that owner refers to a live artist or party.

Returns:
  - error: the lookup's ErrNotFound, or a validation error for an unknown owner type
*/
func (directory *OwnerDirectory) ResolveOwner(context context.Context, owner economics.Owner) error {
	switch owner.Type {
	case economics.OwnerArtist:
		_, err := directory.artists.GetArtist(context, owner.ID)
		return err
	case economics.OwnerParty:
		_, err := directory.parties.GetParty(context, owner.ID)
		return err
	default:
		return apperr.ValidationError("Unknown owner type", apperr.FieldError{Field: economics.FieldOwnerType, Message: "Must be one of: artist, party"})
	}
}
