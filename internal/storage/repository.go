// Package storage is the SQLite backend of the store port. The document
// semantics stay the same as the JSON file: Load reads the whole state,
// Save rewrites it inside one transaction.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"financeiro/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (core.State, error) {
	var st core.State

	var kind, nickname string
	err := s.db.QueryRowContext(ctx, `SELECT kind, nickname FROM profile WHERE id = 1`).
		Scan(&kind, &nickname)
	switch {
	case err == sql.ErrNoRows:
		return core.State{}, nil
	case err != nil:
		return core.State{}, fmt.Errorf("load profile: %w", err)
	}
	st.Profile = core.ProfileKind(kind)
	st.Nickname = nickname

	if err := s.loadParticipants(ctx, &st); err != nil {
		return core.State{}, err
	}
	if err := s.loadFixedCosts(ctx, &st); err != nil {
		return core.State{}, err
	}
	if err := s.loadExpenses(ctx, &st); err != nil {
		return core.State{}, err
	}
	return st, nil
}

func (s *SQLiteStore) loadParticipants(ctx context.Context, st *core.State) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, income_cents FROM participants ORDER BY position`)
	if err != nil {
		return fmt.Errorf("load participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var income sql.NullInt64
		if err := rows.Scan(&name, &income); err != nil {
			return fmt.Errorf("scan participant: %w", err)
		}
		st.Participants = append(st.Participants, name)
		if income.Valid {
			if st.Incomes == nil {
				st.Incomes = make(map[string]core.Money)
			}
			st.Incomes[name] = core.Money{Cents: income.Int64}
		}
	}
	return rows.Err()
}

func (s *SQLiteStore) loadFixedCosts(ctx context.Context, st *core.State) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, item, cents FROM fixed_costs ORDER BY label, item`)
	if err != nil {
		return fmt.Errorf("load fixed costs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var label, item string
		var cents int64
		if err := rows.Scan(&label, &item, &cents); err != nil {
			return fmt.Errorf("scan fixed cost: %w", err)
		}
		if st.FixedCosts == nil {
			st.FixedCosts = make(map[string]core.FixedCost)
		}
		if item == "" {
			st.FixedCosts[label] = core.FixedCost{Amount: core.Money{Cents: cents}}
			continue
		}
		fc := st.FixedCosts[label]
		fc.Items = append(fc.Items, core.FixedCostItem{Name: item, Amount: core.Money{Cents: cents}})
		st.FixedCosts[label] = fc
	}
	return rows.Err()
}

func (s *SQLiteStore) loadExpenses(ctx context.Context, st *core.State) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT day, participant, category, cents FROM expenses ORDER BY id`)
	if err != nil {
		return fmt.Errorf("load expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dayStr, participant, category string
		var cents int64
		if err := rows.Scan(&dayStr, &participant, &category, &cents); err != nil {
			return fmt.Errorf("scan expense: %w", err)
		}
		day, err := core.ParseDate(dayStr)
		if err != nil {
			return fmt.Errorf("parse expense day %q: %w", dayStr, err)
		}
		if st.Expenses == nil {
			st.Expenses = make(core.Ledger)
		}
		if st.Expenses[day] == nil {
			st.Expenses[day] = make(map[string][]core.Entry)
		}
		st.Expenses[day][participant] = append(st.Expenses[day][participant],
			core.Entry{Category: category, Amount: core.Money{Cents: cents}})
	}
	return rows.Err()
}

func (s *SQLiteStore) Save(ctx context.Context, st core.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"profile", "participants", "fixed_costs", "expenses"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if st.Profile != "" || st.Nickname != "" {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO profile (id, kind, nickname) VALUES (1, ?, ?)`,
			string(st.Profile), st.Nickname)
		if err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
	}

	for i, name := range st.Participants {
		var income sql.NullInt64
		if m, ok := st.Incomes[name]; ok {
			income = sql.NullInt64{Int64: m.Cents, Valid: true}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO participants (name, position, income_cents) VALUES (?, ?, ?)`,
			name, i, income)
		if err != nil {
			return fmt.Errorf("save participant %q: %w", name, err)
		}
	}

	for label, fc := range st.FixedCosts {
		if !fc.IsGroup() {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO fixed_costs (label, item, cents) VALUES (?, '', ?)`,
				label, fc.Amount.Cents)
			if err != nil {
				return fmt.Errorf("save fixed cost %q: %w", label, err)
			}
			continue
		}
		for _, item := range fc.Items {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO fixed_costs (label, item, cents) VALUES (?, ?, ?)`,
				label, item.Name, item.Amount.Cents)
			if err != nil {
				return fmt.Errorf("save fixed cost %q/%q: %w", label, item.Name, err)
			}
		}
	}

	for day, byName := range st.Expenses {
		for participant, entries := range byName {
			for _, e := range entries {
				_, err = tx.ExecContext(ctx,
					`INSERT INTO expenses (day, participant, category, cents) VALUES (?, ?, ?, ?)`,
					day.String(), participant, e.Category, e.Amount.Cents)
				if err != nil {
					return fmt.Errorf("save expense for %q on %s: %w", participant, day, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}
