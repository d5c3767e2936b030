package templates

import (
	"strconv"

	"github.com/minoru856-crypto/ai-shigeki/internal/core"
)

func importedAt(rec core.ImportRecord) string {
	return rec.CreatedAt.Local().Format("2006-01-02 15:04")
}

// headerRowLabel shows the 1-based header row, or 推定 when the columns
// were assumed by position.
func headerRowLabel(rec core.ImportRecord) string {
	if !rec.HeaderDetected {
		return "推定"
	}
	return strconv.Itoa(rec.HeaderRow + 1)
}
