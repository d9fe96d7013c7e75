package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"moneybags/internal/core"

	_ "modernc.org/sqlite"
)

// SQLite persists the ledger in a local SQLite database. Save replaces the
// whole snapshot in one transaction; insertion order is preserved by the
// autoincrement id.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLite, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the three snapshot tables concurrently and assembles the ledger.
func (s *SQLite) Load(ctx context.Context) (*core.Ledger, error) {
	var (
		rates    map[string]core.Rate
		invoices []core.Invoice
		costs    []core.Cost
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rates, err = s.loadRates(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		invoices, err = s.loadInvoices(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		costs, err = s.loadCosts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	ledger := core.NewLedger()
	ledger.Rates = rates
	ledger.Invoices = invoices
	ledger.Costs = costs
	return ledger, nil
}

func (s *SQLite) loadRates(ctx context.Context) (map[string]core.Rate, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, rate_cents FROM rates`)
	if err != nil {
		return nil, fmt.Errorf("query rates: %w", err)
	}
	defer rows.Close()

	rates := make(map[string]core.Rate)
	for rows.Next() {
		var (
			name  string
			cents int64
		)
		if err := rows.Scan(&name, &cents); err != nil {
			return nil, fmt.Errorf("scan rate: %w", err)
		}
		rates[name] = core.Rate{Rate: core.Money{Cents: cents}}
	}
	return rates, rows.Err()
}

func (s *SQLite) loadInvoices(ctx context.Context) ([]core.Invoice, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, amount_cents, rate_cents, customer FROM invoices ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []core.Invoice
	for rows.Next() {
		var (
			inv       core.Invoice
			rateCents sql.NullInt64
		)
		if err := rows.Scan(&inv.Date, &inv.Amount.Cents, &rateCents, &inv.Customer); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		if rateCents.Valid {
			inv.Rate = &core.Rate{Rate: core.Money{Cents: rateCents.Int64}}
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (s *SQLite) loadCosts(ctx context.Context) ([]core.Cost, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, amount_cents, name FROM costs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query costs: %w", err)
	}
	defer rows.Close()

	var costs []core.Cost
	for rows.Next() {
		var c core.Cost
		if err := rows.Scan(&c.Date, &c.Amount.Cents, &c.Name); err != nil {
			return nil, fmt.Errorf("scan cost: %w", err)
		}
		costs = append(costs, c)
	}
	return costs, rows.Err()
}

// Save replaces the stored snapshot with the given ledger.
func (s *SQLite) Save(ctx context.Context, ledger *core.Ledger) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"rates", "invoices", "costs"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for name, rate := range ledger.Rates {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO rates (name, rate_cents) VALUES (?, ?)`,
			name, rate.Rate.Cents); err != nil {
			return fmt.Errorf("insert rate %q: %w", name, err)
		}
	}

	for _, inv := range ledger.Invoices {
		var rateCents sql.NullInt64
		if inv.Rate != nil {
			rateCents = sql.NullInt64{Int64: inv.Rate.Rate.Cents, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO invoices (date, amount_cents, rate_cents, customer) VALUES (?, ?, ?, ?)`,
			inv.Date, inv.Amount.Cents, rateCents, inv.Customer); err != nil {
			return fmt.Errorf("insert invoice: %w", err)
		}
	}

	for _, c := range ledger.Costs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO costs (date, amount_cents, name) VALUES (?, ?, ?)`,
			c.Date, c.Amount.Cents, c.Name); err != nil {
			return fmt.Errorf("insert cost: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Ledger saved to SQLite",
		"invoices", len(ledger.Invoices),
		"costs", len(ledger.Costs),
		"rates", len(ledger.Rates))
	return nil
}
