package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/minoru856-crypto/ai-shigeki/internal/roster"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// ImportRecord describes one stored roster import.
type ImportRecord struct {
	ID             uuid.UUID `json:"id"`
	FileName       string    `json:"fileName"`
	Encoding       string    `json:"encoding"`
	HeaderRow      int       `json:"headerRow"`
	HeaderDetected bool      `json:"headerDetected"`
	Resplit        string    `json:"resplit,omitempty"`
	EmployeeCount  int       `json:"employeeCount"`
	IPAddress      string    `json:"ipAddress,omitempty"`
	UserAgent      string    `json:"userAgent,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ImportResult is returned by a successful ImportRoster call.
type ImportResult struct {
	Import     ImportRecord         `json:"import"`
	Mapping    roster.HeaderMapping `json:"mapping"`
	Headers    []string             `json:"headers"`
	Sample     []roster.Employee    `json:"sample"`
	DurationMS int64                `json:"durationMs"`
}

// SampleSize caps ImportResult.Sample.
const SampleSize = 5

// newImportRecord fills an ImportRecord from an extraction result.
func newImportRecord(ctx context.Context, fileName string, res *roster.Result) ImportRecord {
	return ImportRecord{
		ID:             uuid.New(),
		FileName:       fileName,
		Encoding:       res.Encoding,
		HeaderRow:      res.HeaderRow,
		HeaderDetected: res.HeaderDetected,
		Resplit:        res.Resplit,
		EmployeeCount:  len(res.Employees),
		IPAddress:      GetIPAddressFromContext(ctx),
		UserAgent:      GetUserAgentFromContext(ctx),
		CreatedAt:      time.Now().UTC(),
	}
}
