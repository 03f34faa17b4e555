// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package economics

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/talento/internal/platform/database/schema"
	"github.com/taibuivan/talento/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
//
// Budget checks run in a transaction holding pg_advisory_xact_lock on the
// owner and concept, which serializes writers of the same budget only.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed economics store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var ruleSelect = strings.Join(schema.CoreEconomicsRule.Columns(), ", ")

// ListByOwner returns an owner's rules.
func (repository *PostgresRepository) ListByOwner(context context.Context, owner Owner) ([]*Rule, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 ORDER BY %s ASC, %s ASC`,
		ruleSelect, schema.CoreEconomicsRule.Table,
		schema.CoreEconomicsRule.OwnerType, schema.CoreEconomicsRule.OwnerID,
		schema.CoreEconomicsRule.Concept, schema.CoreEconomicsRule.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, string(owner.Type), owner.ID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_economics_rules")
	}
	defer rows.Close()

	rules := []*Rule{}
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_economics_rule")
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_economics_rules")
	}
	return rules, nil
}

// GetRule retrieves a rule by primary key.
func (repository *PostgresRepository) GetRule(context context.Context, id string) (*Rule, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		ruleSelect, schema.CoreEconomicsRule.Table, schema.CoreEconomicsRule.ID)

	rule, err := scanRule(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_economics_rule")
	}
	return rule, nil
}

// InsertRule stores rule once check accepts the allocation.
func (repository *PostgresRepository) InsertRule(context context.Context, rule *Rule, check BudgetCheck) error {
	return pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		allocated, err := lockAndSum(context, tx, rule, "")
		if err != nil {
			return err
		}
		if err := check(allocated); err != nil {
			return err
		}

		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			RETURNING %s, %s
		`,
			schema.CoreEconomicsRule.Table,
			schema.CoreEconomicsRule.ID, schema.CoreEconomicsRule.OwnerType, schema.CoreEconomicsRule.OwnerID,
			schema.CoreEconomicsRule.Concept, schema.CoreEconomicsRule.Percentage, schema.CoreEconomicsRule.BaseAmount,
			schema.CoreEconomicsRule.CreatedAt, schema.CoreEconomicsRule.UpdatedAt,
			schema.CoreEconomicsRule.CreatedAt, schema.CoreEconomicsRule.UpdatedAt,
		)

		err = tx.QueryRow(context, query,
			rule.ID, string(rule.OwnerType), rule.OwnerID, rule.Concept, rule.Percentage, rule.BaseAmount,
		).Scan(&rule.CreatedAt, &rule.UpdatedAt)
		return dberr.Wrap(err, "insert_economics_rule")
	})
}

// UpdateRule overwrites the mutable columns once check accepts the allocation.
func (repository *PostgresRepository) UpdateRule(context context.Context, rule *Rule, check BudgetCheck) error {
	return pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		allocated, err := lockAndSum(context, tx, rule, rule.ID)
		if err != nil {
			return err
		}
		if err := check(allocated); err != nil {
			return err
		}

		query := fmt.Sprintf(`
			UPDATE %s
			SET %s = $2, %s = $3, %s = $4, %s = NOW()
			WHERE %s = $1
			RETURNING %s, %s
		`,
			schema.CoreEconomicsRule.Table,
			schema.CoreEconomicsRule.Concept, schema.CoreEconomicsRule.Percentage, schema.CoreEconomicsRule.BaseAmount,
			schema.CoreEconomicsRule.UpdatedAt, schema.CoreEconomicsRule.ID,
			schema.CoreEconomicsRule.CreatedAt, schema.CoreEconomicsRule.UpdatedAt,
		)

		err = tx.QueryRow(context, query, rule.ID, rule.Concept, rule.Percentage, rule.BaseAmount).
			Scan(&rule.CreatedAt, &rule.UpdatedAt)
		return dberr.Wrap(err, "update_economics_rule")
	})
}

// DeleteRule removes a rule.
func (repository *PostgresRepository) DeleteRule(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreEconomicsRule.Table, schema.CoreEconomicsRule.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_economics_rule")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// lockAndSum takes the budget lock and returns the percentage already allocated
// to the rule's owner and concept, not counting excludeID.
func lockAndSum(context context.Context, tx pgx.Tx, rule *Rule, excludeID string) (float64, error) {
	lockKey := string(rule.OwnerType) + ":" + rule.OwnerID + ":" + rule.Concept
	if _, err := tx.Exec(context, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, lockKey); err != nil {
		return 0, dberr.Wrap(err, "lock_economics_budget")
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(%s), 0)
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3 AND %s::text <> $4
	`,
		schema.CoreEconomicsRule.Percentage, schema.CoreEconomicsRule.Table,
		schema.CoreEconomicsRule.OwnerType, schema.CoreEconomicsRule.OwnerID, schema.CoreEconomicsRule.Concept,
		schema.CoreEconomicsRule.ID,
	)

	var allocated float64
	if err := tx.QueryRow(context, query, string(rule.OwnerType), rule.OwnerID, rule.Concept, excludeID).Scan(&allocated); err != nil {
		return 0, dberr.Wrap(err, "sum_economics_budget")
	}
	return allocated, nil
}

func scanRule(row pgx.Row) (*Rule, error) {
	rule := &Rule{}
	var ownerType string
	err := row.Scan(&rule.ID, &ownerType, &rule.OwnerID, &rule.Concept, &rule.Percentage, &rule.BaseAmount,
		&rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rule.OwnerType = OwnerType(ownerType)
	return rule, nil
}
