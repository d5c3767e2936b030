package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minoru856-crypto/ai-shigeki/internal/roster"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error", nil, ""},
		{"extraction empty", fmt.Errorf("roster.csv: %w", roster.ErrExtractionEmpty), "ROS001"},
		{"legacy workbook", fmt.Errorf("%w: legacy .xls", roster.ErrUnsupportedFormat), "ROS002"},
		{"damaged workbook", fmt.Errorf("%w: zip: not a valid zip file", roster.ErrInvalidWorkbook), "ROS003"},
		{"max bytes reader", errors.New("http: request body too large"), "FILE001"},
		{"bad csv", errors.New("invalid csv: bare quote"), "FILE002"},
		{"missing form file", errors.New("no file provided"), "FILE004"},
		{"empty upload", roster.ErrEmptyFile, "FILE005"},
		{"duplicate", errors.New("ERROR: duplicate key value violates unique constraint"), "DB001"},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connection refused"), "DB003"},
		{"slots busy", ErrTooManyImports, "IMP001"},
		{"unknown import", fmt.Errorf("%w: 42", ErrImportNotFound), "IMP002"},
		{"cancelled", errors.New("context canceled"), "IMP003"},
		{"rate limit", errors.New("rate limit exceeded"), "RATE001"},
		{"case insensitive", errors.New("DEADLOCK detected"), "DB006"},
		{"unknown", errors.New("something odd"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, MapError(tt.err).Code)
		})
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(roster.ErrEmptyFile)

	assert.Equal(t, "The uploaded file is empty (Code: FILE005). Upload a roster file with at least one employee", got)
	assert.Empty(t, FormatUserError(nil))
}

func TestIsUserFacing(t *testing.T) {
	assert.False(t, IsUserFacing(nil))
	assert.True(t, IsUserFacing(ErrTooManyImports))
	assert.False(t, IsUserFacing(errors.New("random internal error xyz")))
}

func TestNewUserError(t *testing.T) {
	assert.Nil(t, NewUserError(nil))

	techErr := fmt.Errorf("copy employees: %w", errors.New("connection reset by peer"))
	userErr := NewUserError(techErr)

	assert.Equal(t, "Database connection was interrupted", userErr.Error())
	assert.Equal(t, "DB004", userErr.User.Code)
	assert.ErrorIs(t, userErr, techErr)
}
