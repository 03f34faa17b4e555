// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package party

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/talento/internal/platform/database/schema"
	"github.com/taibuivan/talento/internal/platform/dberr"
	"github.com/taibuivan/talento/pkg/pointer"
	"github.com/taibuivan/talento/pkg/textnorm"
)

// maxCandidatesPerField caps each pattern search; a draft that hits more rows
// than this is too vague to be a duplicate check anyway.
const maxCandidatesPerField = 50

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed party store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var partySelect = strings.Join(schema.CoreParty.SelectColumns(), ", ")

// # Party Retrieval

/*
FindByPattern runs one LIKE search per pattern and unions the hits by ID.

Description: Nick and legal name are matched against their normalized shadow
columns, so the search is already accent-insensitive at the source. Each search
is ordered by creation time so the oldest record is seen first.

Parameters:
  - context: context.Context
  - scope: Scope
  - patterns: []FieldPattern

Returns:
  - []*Party: Candidates in first-seen order
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByPattern(context context.Context, scope Scope, patterns []FieldPattern) ([]*Party, error) {
	seen := make(map[string]struct{})
	var result []*Party

	for _, pattern := range patterns {
		column, ok := patternColumn(pattern.Field)
		if !ok || pattern.Value == "" {
			continue
		}

		var queryBuilder strings.Builder
		queryBuilder.WriteString(fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE %s = $1 AND %s = false AND %s LIKE $2 ESCAPE '\'
		`, partySelect, schema.CoreParty.Table, schema.CoreParty.Kind, schema.CoreParty.IsDeleted, column))

		args := []any{string(scope.Kind), "%" + escapeLike(pattern.Value) + "%"}

		if scope.OwnerID != nil {
			queryBuilder.WriteString(fmt.Sprintf(" AND %s = $3", schema.CoreParty.LinkedOwnerID))
			args = append(args, *scope.OwnerID)
		}

		queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC, %s ASC LIMIT %d",
			schema.CoreParty.CreatedAt, schema.CoreParty.ID, maxCandidatesPerField))

		hits, err := repository.query(context, "find_party_by_"+pattern.Field, queryBuilder.String(), args...)
		if err != nil {
			return nil, err
		}
		result = unionByID(result, seen, hits)
	}

	return result, nil
}

/*
FindByID retrieves a single non-archived party by primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Party: Hydrated entity
  - error: ErrNotFound if missing
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Party, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = false`,
		partySelect, schema.CoreParty.Table, schema.CoreParty.ID, schema.CoreParty.IsDeleted)

	party, err := scanParty(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_party_by_id")
	}
	return party, nil
}

/*
ListByKind returns every non-archived party of a kind, oldest first.

Parameters:
  - context: context.Context
  - kind: Kind

Returns:
  - []*Party: All rows
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListByKind(context context.Context, kind Kind) ([]*Party, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = false ORDER BY %s ASC, %s ASC`,
		partySelect, schema.CoreParty.Table, schema.CoreParty.Kind, schema.CoreParty.IsDeleted,
		schema.CoreParty.CreatedAt, schema.CoreParty.ID)

	return repository.query(context, "list_parties", query, string(kind))
}

// # Party Mutation

/*
Insert persists a new party along with its normalized shadow columns.

Parameters:
  - context: context.Context
  - party: *Party

Returns:
  - error: CONFLICT on a unique index hit, or persistence failures
*/
func (repository *PostgresRepository) Insert(context context.Context, party *Party) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, false, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CoreParty.Table,
		schema.CoreParty.ID, schema.CoreParty.Kind,
		schema.CoreParty.DisplayNick, schema.CoreParty.DisplayNickNorm,
		schema.CoreParty.LegalName, schema.CoreParty.LegalNameNorm,
		schema.CoreParty.TaxID, schema.CoreParty.Email, schema.CoreParty.Phone,
		schema.CoreParty.LinkedOwnerID, schema.CoreParty.IsActive, schema.CoreParty.IsDeleted,
		schema.CoreParty.CreatedAt, schema.CoreParty.UpdatedAt,
		schema.CoreParty.CreatedAt, schema.CoreParty.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		party.ID, string(party.Kind),
		party.DisplayNick, normOrNil(party.DisplayNick),
		party.LegalName, normOrNil(party.LegalName),
		party.TaxID, party.Email, party.Phone,
		party.LinkedOwnerID, party.IsActive,
	).Scan(&party.CreatedAt, &party.UpdatedAt)

	return dberr.Wrap(err, "insert_party")
}

/*
Update applies the non-nil fields of patch.

Description: An empty string clears a column. Nick and legal name updates
rewrite their normalized shadow columns in the same statement.

Parameters:
  - context: context.Context
  - id: string
  - patch: Patch

Returns:
  - *Party: Updated entity
  - error: ErrNotFound, CONFLICT or persistence failures
*/
func (repository *PostgresRepository) Update(context context.Context, id string, patch Patch) (*Party, error) {
	if patch.IsEmpty() {
		return repository.FindByID(context, id)
	}

	set := &setBuilder{args: []any{id}}

	if patch.Kind != nil {
		set.add(schema.CoreParty.Kind, string(*patch.Kind))
	}
	if patch.DisplayNick != nil {
		value := pointer.Trimmed(patch.DisplayNick)
		set.add(schema.CoreParty.DisplayNick, value)
		set.add(schema.CoreParty.DisplayNickNorm, normOrNil(value))
	}
	if patch.LegalName != nil {
		value := pointer.Trimmed(patch.LegalName)
		set.add(schema.CoreParty.LegalName, value)
		set.add(schema.CoreParty.LegalNameNorm, normOrNil(value))
	}
	if patch.TaxID != nil {
		set.add(schema.CoreParty.TaxID, compactTaxID(patch.TaxID))
	}
	if patch.Email != nil {
		set.add(schema.CoreParty.Email, pointer.Trimmed(patch.Email))
	}
	if patch.Phone != nil {
		set.add(schema.CoreParty.Phone, pointer.Trimmed(patch.Phone))
	}
	if patch.LinkedOwnerID != nil {
		set.add(schema.CoreParty.LinkedOwnerID, pointer.Trimmed(patch.LinkedOwnerID))
	}
	if patch.IsActive != nil {
		set.add(schema.CoreParty.IsActive, *patch.IsActive)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s, %s = NOW()
		WHERE %s = $1 AND %s = false
		RETURNING %s
	`,
		schema.CoreParty.Table, strings.Join(set.clauses, ", "), schema.CoreParty.UpdatedAt,
		schema.CoreParty.ID, schema.CoreParty.IsDeleted, partySelect,
	)

	party, err := scanParty(repository.db.QueryRow(context, query, set.args...))
	if err != nil {
		return nil, dberr.Wrap(err, "update_party")
	}
	return party, nil
}

/*
SoftDelete archives a party.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: ErrNotFound if nothing was archived
*/
func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = true, %s = false, %s = NOW() WHERE %s = $1 AND %s = false`,
		schema.CoreParty.Table, schema.CoreParty.IsDeleted, schema.CoreParty.IsActive, schema.CoreParty.UpdatedAt,
		schema.CoreParty.ID, schema.CoreParty.IsDeleted,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "archive_party")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Helpers

// query runs a multi-row party select.
func (repository *PostgresRepository) query(context context.Context, action, query string, args ...any) ([]*Party, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	var parties []*Party
	for rows.Next() {
		party, err := scanParty(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_party")
		}
		parties = append(parties, party)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return parties, nil
}

// scanParty reads one row in [schema.CorePartyTable.SelectColumns] order.
func scanParty(row pgx.Row) (*Party, error) {
	party := &Party{}
	var kind string
	err := row.Scan(
		&party.ID, &kind, &party.DisplayNick, &party.LegalName, &party.TaxID, &party.Email, &party.Phone,
		&party.LinkedOwnerID, &party.IsActive, &party.IsDeleted, &party.CreatedAt, &party.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	party.Kind = Kind(kind)
	return party, nil
}

// patternColumn maps a pattern field onto the column it is searched against.
func patternColumn(field string) (string, bool) {
	switch field {
	case FieldDisplayNick:
		return schema.CoreParty.DisplayNickNorm, true
	case FieldLegalName:
		return schema.CoreParty.LegalNameNorm, true
	case FieldTaxID:
		return schema.CoreParty.TaxID, true
	case FieldEmail:
		return "lower(" + schema.CoreParty.Email + ")", true
	default:
		return "", false
	}
}

// setBuilder accumulates "column = $n" clauses; $1 is reserved for the ID.
type setBuilder struct {
	clauses []string
	args    []any
}

func (b *setBuilder) add(column string, value any) {
	b.args = append(b.args, value)
	b.clauses = append(b.clauses, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

// escapeLike escapes LIKE metacharacters in a user-supplied value.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// normOrNil returns the normalized shadow value for an optional column.
func normOrNil(s *string) *string {
	value := textnorm.NormalizePtr(s)
	if value == "" {
		return nil
	}
	return &value
}
