package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"deal-underwriter/domain"
)

const listingsSchema = `
CREATE TABLE IF NOT EXISTS listings (
	street_number  TEXT NOT NULL,
	street_name    TEXT NOT NULL,
	town           TEXT NOT NULL,
	units          INTEGER NOT NULL,
	list_price     REAL NOT NULL,
	days_on_market INTEGER NOT NULL,
	gross_rents    REAL,
	taxes          REAL,
	PRIMARY KEY (street_number, street_name, town)
)`

// SQLiteListingSource reads listings from a SQLite database.
type SQLiteListingSource struct {
	db *sql.DB
}

// NewSQLiteListingSource opens (creating if needed) the database at path.
// Paths starting with "file:" are passed to the driver untouched, which is
// how tests use in-memory databases.
func NewSQLiteListingSource(path string) (*SQLiteListingSource, error) {
	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		path = absPath
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open listings database: %w", err)
	}
	// Keep a single connection so in-memory databases are shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(listingsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create listings schema: %w", err)
	}

	return &SQLiteListingSource{db: db}, nil
}

func (s *SQLiteListingSource) LoadListings(ctx context.Context) ([]domain.Listing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT street_number, street_name, town, units, list_price, days_on_market, gross_rents, taxes
		FROM listings`)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var (
			l          domain.Listing
			grossRents sql.NullFloat64
			taxes      sql.NullFloat64
		)
		if err := rows.Scan(
			&l.StreetNumber,
			&l.StreetName,
			&l.Town,
			&l.Units,
			&l.ListPrice,
			&l.DaysOnMarket,
			&grossRents,
			&taxes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		if grossRents.Valid {
			v := grossRents.Float64
			l.GrossRents = &v
		}
		if taxes.Valid {
			v := taxes.Float64
			l.Taxes = &v
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listings: %w", err)
	}

	return listings, nil
}

// ReplaceListings swaps the table contents for listings in one transaction.
func (s *SQLiteListingSource) ReplaceListings(ctx context.Context, listings []domain.Listing) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM listings`); err != nil {
		return fmt.Errorf("failed to clear listings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listings (street_number, street_name, town, units, list_price, days_on_market, gross_rents, taxes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range listings {
		if _, err := stmt.ExecContext(ctx,
			l.StreetNumber,
			l.StreetName,
			l.Town,
			l.Units,
			l.ListPrice,
			l.DaysOnMarket,
			nullableFloat(l.GrossRents),
			nullableFloat(l.Taxes),
		); err != nil {
			return fmt.Errorf("failed to insert listing %q: %w", domain.FullAddress(l.StreetNumber, l.StreetName), err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteListingSource) Close() error {
	return s.db.Close()
}

func nullableFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
