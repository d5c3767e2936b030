package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minoru856-crypto/ai-shigeki/internal/roster"
)

// ErrImportNotFound is returned when no import has the requested ID.
var ErrImportNotFound = errors.New("import not found")

// RosterStore persists the active roster and the import history.
type RosterStore interface {
	// ReplaceRoster swaps the stored employees for employees and records
	// rec, atomically.
	ReplaceRoster(ctx context.Context, rec ImportRecord, employees []roster.Employee) error
	ListEmployees(ctx context.Context) ([]roster.Employee, error)
	ListImports(ctx context.Context, limit int) ([]ImportRecord, error)
	GetImport(ctx context.Context, id uuid.UUID) (ImportRecord, error)
	ClearEmployees(ctx context.Context) (int64, error)
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS roster_imports (
	id              UUID PRIMARY KEY,
	file_name       TEXT NOT NULL,
	encoding        TEXT NOT NULL,
	header_row      INTEGER NOT NULL,
	header_detected BOOLEAN NOT NULL,
	resplit         TEXT NOT NULL DEFAULT '',
	employee_count  INTEGER NOT NULL,
	ip_address      TEXT NOT NULL DEFAULT '',
	user_agent      TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS employees (
	import_id  UUID NOT NULL REFERENCES roster_imports(id) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	code       TEXT NOT NULL,
	name       TEXT NOT NULL,
	department TEXT NOT NULL,
	role       TEXT NOT NULL,
	raw_info   TEXT NOT NULL,
	PRIMARY KEY (import_id, position)
);`

// employeeCopyColumns lists the employees columns in the order
// employeeCopyRow returns values.
var employeeCopyColumns = []string{
	"import_id", "position", "code", "name", "department", "role", "raw_info",
}

func employeeCopyRow(importID pgtype.UUID, position int, e roster.Employee) []any {
	return []any{importID, int32(position), e.Code, e.Name, e.Department, e.Role, e.RawInfo}
}

// PgStore is the PostgreSQL RosterStore.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore returns a store backed by pool.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// EnsureSchema creates the roster tables if they do not exist.
func (s *PgStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// ReplaceRoster deletes the current employees, bulk-loads the new ones with
// COPY and records the import, in one transaction.
func (s *PgStore) ReplaceRoster(ctx context.Context, rec ImportRecord, employees []roster.Employee) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	if err := insertImport(ctx, tx, rec); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM employees WHERE import_id <> $1`, toPgUUID(rec.ID)); err != nil {
		return fmt.Errorf("delete employees: %w", err)
	}

	importID := toPgUUID(rec.ID)
	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"employees"},
		employeeCopyColumns,
		pgx.CopyFromSlice(len(employees), func(i int) ([]any, error) {
			return employeeCopyRow(importID, i, employees[i]), nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy employees: %w", err)
	}
	if int(n) != len(employees) {
		return fmt.Errorf("copy employees: wrote %d of %d rows", n, len(employees))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertImport(ctx context.Context, db DBTX, rec ImportRecord) error {
	_, err := db.Exec(ctx, `
		INSERT INTO roster_imports (
			id, file_name, encoding, header_row, header_detected, resplit,
			employee_count, ip_address, user_agent, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		toPgUUID(rec.ID), rec.FileName, rec.Encoding, rec.HeaderRow, rec.HeaderDetected,
		rec.Resplit, rec.EmployeeCount, rec.IPAddress, rec.UserAgent, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert import: %w", err)
	}
	return nil
}

// ListEmployees returns the active roster in source order.
func (s *PgStore) ListEmployees(ctx context.Context) ([]roster.Employee, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT code, name, department, role, raw_info
		FROM employees
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	employees, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (roster.Employee, error) {
		var e roster.Employee
		err := row.Scan(&e.Code, &e.Name, &e.Department, &e.Role, &e.RawInfo)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

const importColumns = `id, file_name, encoding, header_row, header_detected, resplit,
	employee_count, ip_address, user_agent, created_at`

func scanImport(row pgx.Row) (ImportRecord, error) {
	var (
		rec ImportRecord
		id  pgtype.UUID
	)
	err := row.Scan(&id, &rec.FileName, &rec.Encoding, &rec.HeaderRow, &rec.HeaderDetected,
		&rec.Resplit, &rec.EmployeeCount, &rec.IPAddress, &rec.UserAgent, &rec.CreatedAt)
	if err != nil {
		return ImportRecord{}, err
	}
	rec.ID = uuid.UUID(id.Bytes)
	return rec, nil
}

// ListImports returns the most recent imports first.
func (s *PgStore) ListImports(ctx context.Context, limit int) ([]ImportRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+importColumns+` FROM roster_imports ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	imports, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ImportRecord, error) {
		return scanImport(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	return imports, nil
}

// GetImport returns one import, or ErrImportNotFound.
func (s *PgStore) GetImport(ctx context.Context, id uuid.UUID) (ImportRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+importColumns+` FROM roster_imports WHERE id = $1`, toPgUUID(id))
	rec, err := scanImport(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return ImportRecord{}, fmt.Errorf("%w: %s", ErrImportNotFound, id)
	}
	if err != nil {
		return ImportRecord{}, fmt.Errorf("get import: %w", err)
	}
	return rec, nil
}

// ClearEmployees deletes the active roster and reports how many rows went.
// Import history is kept.
func (s *PgStore) ClearEmployees(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM employees`)
	if err != nil {
		return 0, fmt.Errorf("clear employees: %w", err)
	}
	return tag.RowsAffected(), nil
}

func toPgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}
