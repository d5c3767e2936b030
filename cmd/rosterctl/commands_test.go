package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minoru856-crypto/ai-shigeki/internal/roster"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExtract_JSON(t *testing.T) {
	path := writeFile(t, "roster.csv", "社員番号,氏名,部署\n7,佐藤,人事\n")

	out, err := execute(t, "extract", path)
	require.NoError(t, err)

	var res roster.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Employees, 1)
	assert.Equal(t, "佐藤", res.Employees[0].Name)
	assert.Equal(t, roster.RoleGeneral, res.Employees[0].Role)
}

func TestExtract_ContextAndTable(t *testing.T) {
	path := writeFile(t, "roster.csv", "社員番号,氏名,部署\n7,佐藤,人事\n")

	out, err := execute(t, "extract", "--format", "context", path)
	require.NoError(t, err)
	assert.Equal(t, "# 社員名簿 (1名)\n- 佐藤: 社員番号: 7, 氏名: 佐藤, 部署: 人事\n", out)

	out, err = execute(t, "extract", "-f", "table", path)
	require.NoError(t, err)
	assert.Contains(t, out, "CODE")
	assert.Contains(t, out, "佐藤")
	assert.Contains(t, out, "employees=1")
}

func TestExtract_CustomSynonyms(t *testing.T) {
	syn := writeFile(t, "syn.yaml", "name: [お名前]\nrole: [グレード]\n")
	path := writeFile(t, "roster.csv", "お名前,グレード\n伊藤,G3\n")

	out, err := execute(t, "extract", "--synonyms", syn, "-f", "table", path)

	require.NoError(t, err)
	assert.Contains(t, out, "G3")
}

func TestExtract_Errors(t *testing.T) {
	_, err := execute(t, "extract")
	assert.Error(t, err, "file argument required")

	path := writeFile(t, "roster.csv", "社員番号,氏名\n1,田中\n")
	_, err = execute(t, "extract", "--format", "xml", path)
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "extract", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorContains(t, err, "read roster")

	empty := writeFile(t, "memo.txt", "hello\n")
	_, err = execute(t, "extract", empty)
	assert.ErrorIs(t, err, roster.ErrExtractionEmpty)
}

func TestSynonyms(t *testing.T) {
	out, err := execute(t, "synonyms")
	require.NoError(t, err)

	parsed, err := roster.ParseSynonyms(bytes.NewReader([]byte(out)))
	require.NoError(t, err)
	assert.Equal(t, roster.DefaultSynonyms(), parsed)
}
