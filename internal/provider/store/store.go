package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmarulanda/marqueteria/internal/provider"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const uniqueViolation = "23505"

// mapUniqueViolation converts a Postgres unique-key error into the domain
// duplicate error, naming the field from the violated constraint.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}

	field := "name"
	if strings.Contains(pgErr.ConstraintName, "nit") {
		field = "NIT"
	}

	return &provider.DuplicateError{Field: field}
}

const selectProviderColumns = `
	id, name, nit, phone, contact, email, address, category, active,
	created_at, updated_at
`

type scanner interface {
	Scan(dest ...any) error
}

func scanProvider(s scanner) (*provider.Provider, error) {
	var p provider.Provider

	if err := s.Scan(
		&p.ID, &p.Name, &p.NIT, &p.Phone, &p.Contact, &p.Email,
		&p.Address, &p.Category, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *Store) CreateProvider(ctx context.Context, p *provider.Provider) error {
	query := `
		INSERT INTO providers (name, nit, phone, contact, email, address,
			category, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.Name, p.NIT, p.Phone, p.Contact, p.Email, p.Address,
		p.Category, p.Active,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if dup := mapUniqueViolation(err); dup != err {
			return dup
		}

		return fmt.Errorf("creating provider: %w", err)
	}

	return nil
}

func (s *Store) GetProvider(ctx context.Context, id uuid.UUID) (*provider.Provider, error) {
	query := `SELECT ` + selectProviderColumns + ` FROM providers WHERE id = $1`

	p, err := scanProvider(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, provider.ErrNotFound
		}

		return nil, fmt.Errorf("getting provider: %w", err)
	}

	return p, nil
}

func (s *Store) ListProviders(ctx context.Context) ([]*provider.Provider, error) {
	query := `SELECT ` + selectProviderColumns + ` FROM providers ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing providers: %w", err)
	}
	defer rows.Close()

	var providers []*provider.Provider

	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning provider: %w", err)
		}

		providers = append(providers, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating provider rows: %w", err)
	}

	return providers, nil
}

func (s *Store) UpdateProvider(ctx context.Context, p *provider.Provider) error {
	query := `
		UPDATE providers
		SET name = $1, nit = $2, phone = $3, contact = $4, email = $5,
			address = $6, category = $7, active = $8, updated_at = NOW()
		WHERE id = $9
	`

	res, err := s.db.ExecContext(ctx, query,
		p.Name, p.NIT, p.Phone, p.Contact, p.Email,
		p.Address, p.Category, p.Active, p.ID,
	)
	if err != nil {
		if dup := mapUniqueViolation(err); dup != err {
			return dup
		}

		return fmt.Errorf("updating provider: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return provider.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteProvider(ctx context.Context, id uuid.UUID) error {
	// Materials and movements keep their rows; their supplier reference is
	// nulled by the FK.
	res, err := s.db.ExecContext(ctx, `DELETE FROM providers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting provider: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return provider.ErrNotFound
	}

	return nil
}
