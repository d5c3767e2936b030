package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/minoru856-crypto/ai-shigeki/internal/logging"
	"github.com/minoru856-crypto/ai-shigeki/internal/roster"
)

// DefaultImportTimeout bounds one import from slot acquisition to commit.
const DefaultImportTimeout = 2 * time.Minute

// DefaultImportListLimit is used when ListImports gets a non-positive limit.
const DefaultImportListLimit = 20

// MaxImportListLimit caps ListImports.
const MaxImportListLimit = 200

// Service owns the active roster: it runs the extractor over uploads and
// keeps the store in step.
type Service struct {
	store         RosterStore
	extractor     *roster.Extractor
	limiter       *ImportLimiter
	importTimeout time.Duration
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithImportTimeout bounds each ImportRoster call. Non-positive values keep
// DefaultImportTimeout.
func WithImportTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.importTimeout = d
		}
	}
}

// NewService wires a store, an extractor and an import limiter together.
func NewService(store RosterStore, extractor *roster.Extractor, limiter *ImportLimiter, opts ...ServiceOption) *Service {
	if extractor == nil {
		extractor = roster.NewExtractor(roster.DefaultSynonyms(), roster.DefaultHeaderScanRows)
	}
	if limiter == nil {
		limiter = NewImportLimiter(0, 0)
	}
	s := &Service{
		store:         store,
		extractor:     extractor,
		limiter:       limiter,
		importTimeout: DefaultImportTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ImportRoster extracts employees from data and makes them the active
// roster. A file that yields no employees leaves the stored roster as is.
func (s *Service) ImportRoster(ctx context.Context, fileName string, data []byte) (*ImportResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.importTimeout)
	defer cancel()

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	start := time.Now()
	logger := logging.WithFields(ctx, "file", fileName, "bytes", len(data))

	res, err := s.extractor.Extract(data, fileName)
	if err != nil {
		logger.Warn("roster extraction failed", "error", err)
		return nil, err
	}

	rec := newImportRecord(ctx, fileName, res)
	if err := s.store.ReplaceRoster(ctx, rec, res.Employees); err != nil {
		logger.Error("roster store failed", "import_id", rec.ID, "error", err)
		return nil, fmt.Errorf("store roster: %w", err)
	}

	elapsed := time.Since(start)
	logger.Info("roster imported",
		"import_id", rec.ID,
		"employees", rec.EmployeeCount,
		"encoding", rec.Encoding,
		"header_row", rec.HeaderRow,
		"header_detected", rec.HeaderDetected,
		"resplit", rec.Resplit,
		"duration_ms", elapsed.Milliseconds(),
	)

	sample := res.Employees
	if len(sample) > SampleSize {
		sample = sample[:SampleSize]
	}
	return &ImportResult{
		Import:     rec,
		Mapping:    res.Mapping,
		Headers:    res.Headers,
		Sample:     sample,
		DurationMS: elapsed.Milliseconds(),
	}, nil
}

// PreviewRoster runs the extractor without touching the store.
func (s *Service) PreviewRoster(fileName string, data []byte) (*roster.Result, error) {
	return s.extractor.Extract(data, fileName)
}

// ListEmployees returns the active roster in source order.
func (s *Service) ListEmployees(ctx context.Context) ([]roster.Employee, error) {
	return s.store.ListEmployees(ctx)
}

// EmployeeContext renders the active roster as the plain-text block the
// answer service puts in front of the model: one line per employee, the
// name followed by the row summary.
func (s *Service) EmployeeContext(ctx context.Context) (string, error) {
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return "", err
	}
	return FormatEmployeeContext(employees), nil
}

// FormatEmployeeContext renders employees the way EmployeeContext does.
func FormatEmployeeContext(employees []roster.Employee) string {
	if len(employees) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# 社員名簿 (%d名)\n", len(employees))
	for _, e := range employees {
		fmt.Fprintf(&b, "- %s: %s\n", e.Name, e.RawInfo)
	}
	return b.String()
}

// ListImports returns recent imports, newest first.
func (s *Service) ListImports(ctx context.Context, limit int) ([]ImportRecord, error) {
	switch {
	case limit <= 0:
		limit = DefaultImportListLimit
	case limit > MaxImportListLimit:
		limit = MaxImportListLimit
	}
	return s.store.ListImports(ctx, limit)
}

// GetImport looks up one import by its ID string.
func (s *Service) GetImport(ctx context.Context, id string) (ImportRecord, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ImportRecord{}, fmt.Errorf("%w: %s", ErrImportNotFound, id)
	}
	return s.store.GetImport(ctx, parsed)
}

// ClearRoster deletes every stored employee. Import history is kept.
func (s *Service) ClearRoster(ctx context.Context) (int64, error) {
	n, err := s.store.ClearEmployees(ctx)
	if err != nil {
		return 0, err
	}
	logging.FromContext(ctx).Info("roster cleared", "employees", n)
	return n, nil
}

// WaitForImports blocks until running imports finish or ctx ends.
func (s *Service) WaitForImports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// ImportLimiterStatus reports import slot usage.
func (s *Service) ImportLimiterStatus() ImportLimiterStatus {
	return s.limiter.Status()
}
