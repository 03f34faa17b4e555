// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/talento/internal/platform/database/schema"
	"github.com/taibuivan/talento/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over core.artist.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed roster store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	col          = schema.CoreArtist
	artistSelect = strings.Join(col.SelectColumns(), ", ")
)

/*
List runs the roster search.

Description: The query matches stage or legal name with ILIKE. Count and page
are read in one round trip with a window function; an offset past the end
falls back to a plain count so the total is still reported.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Artist: One page, never nil
  - int: Total matching rows
  - error: Database failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Artist, int, error) {
	conditions := []string{col.DeletedAt + " IS NULL"}
	var args []any

	if filter.Query != "" {
		args = append(args, "%"+escapeLike(filter.Query)+"%")
		conditions = append(conditions, fmt.Sprintf("(%s ILIKE $%d OR %s ILIKE $%d)",
			col.StageName, len(args), col.LegalName, len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", col.IsActive, len(args)))
	}

	where := strings.Join(conditions, " AND ")
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER ()
		FROM %s
		WHERE %s
		ORDER BY %s ASC, %s ASC
		LIMIT $%d OFFSET $%d
	`, artistSelect, col.Table, where, col.StageName, col.ID, len(args)+1, len(args)+2)

	rows, err := repository.db.Query(context, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_artists")
	}
	defer rows.Close()

	artists := []*Artist{}
	total := 0
	for rows.Next() {
		artist := &Artist{}
		if err := rows.Scan(append(scanTargets(artist), &total)...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_artist")
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_artists")
	}

	if len(artists) == 0 && offset > 0 {
		countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, col.Table, where)
		if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, "count_artists")
		}
	}
	return artists, total, nil
}

// FindByID returns one non-deleted artist.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Artist, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		artistSelect, col.Table, col.ID, col.DeletedAt)

	artist := &Artist{}
	if err := repository.db.QueryRow(context, query, id).Scan(scanTargets(artist)...); err != nil {
		return nil, dberr.Wrap(err, "get_artist")
	}
	return artist, nil
}

// Insert stores a new artist and fills in its timestamps.
func (repository *PostgresRepository) Insert(context context.Context, artist *Artist) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s
	`,
		col.Table, col.ID, col.StageName, col.LegalName, col.TaxID, col.Email, col.Phone, col.IBAN, col.IsActive,
		col.CreatedAt, col.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, writeArgs(artist)...).Scan(&artist.CreatedAt, &artist.UpdatedAt)
	return dberr.Wrap(err, "create_artist")
}

// Update writes every editable column and refreshes UpdatedAt.
func (repository *PostgresRepository) Update(context context.Context, artist *Artist) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET (%s, %s, %s, %s, %s, %s, %s, %s) = ($2, $3, $4, $5, $6, $7, $8, NOW())
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s, %s
	`,
		col.Table, col.StageName, col.LegalName, col.TaxID, col.Email, col.Phone, col.IBAN, col.IsActive, col.UpdatedAt,
		col.ID, col.DeletedAt,
		col.CreatedAt, col.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, writeArgs(artist)...).Scan(&artist.CreatedAt, &artist.UpdatedAt)
	return dberr.Wrap(err, "update_artist")
}

// SoftDelete stamps deletedat and deactivates the artist.
func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW(), %s = false, %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		col.Table, col.DeletedAt, col.IsActive, col.UpdatedAt, col.ID, col.DeletedAt)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_artist")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// scanTargets returns pointers in [schema.CoreArtistTable.SelectColumns] order.
func scanTargets(artist *Artist) []any {
	return []any{
		&artist.ID, &artist.StageName, &artist.LegalName, &artist.TaxID, &artist.Email, &artist.Phone,
		&artist.IBAN, &artist.IsActive, &artist.CreatedAt, &artist.UpdatedAt,
	}
}

// writeArgs returns $1..$8 for Insert and Update.
func writeArgs(artist *Artist) []any {
	return []any{
		artist.ID, artist.StageName, artist.LegalName, artist.TaxID, artist.Email, artist.Phone,
		artist.IBAN, artist.IsActive,
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
