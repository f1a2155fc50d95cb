package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestImportThenReport(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "students.db"))
	t.Setenv("SERVER_UPLOAD_PATH", filepath.Join(dir, "uploads"))
	t.Setenv("LOG_LEVEL", "error")
	configFile := filepath.Join(dir, "missing.yaml")

	out := runCLI(t, "migrate", "--config", configFile)
	assert.Contains(t, out, "Applied migration 001")

	out = runCLI(t, "migrate", "--config", configFile)
	assert.Contains(t, out, "Schema is up to date")

	csvPath := filepath.Join(dir, "students.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"student_id,first_name,last_name,email,intake,cgpa,gender,level,status\n"+
			"STU001,John,Doe,john@email.com,Fall24,3.6,Female,P1,Active\n"+
			"STU002,Jane,Smith,jane@email.com,Fall24,2.2,Male,P2,Inactive\n"+
			"STU001,Dup,Row,dup@email.com,Fall24,3.0,Male,P1,Active\n"), 0o644))

	out = runCLI(t, "import", csvPath, "--config", configFile)
	assert.Contains(t, out, "Bulk upload complete. 2 students added.")
	assert.Contains(t, out, "line 4 STU001 skipped-duplicate")

	var stats struct {
		Total    int64 `json:"total"`
		Active   int64 `json:"active"`
		Inactive int64 `json:"inactive"`
	}
	require.NoError(t, json.Unmarshal([]byte(runCLI(t, "stats", "--config", configFile)), &stats))
	assert.EqualValues(t, 2, stats.Total)
	assert.EqualValues(t, 1, stats.Active)
	assert.EqualValues(t, 1, stats.Inactive)

	var summary map[string]struct {
		Total    int `json:"total"`
		DeanList int `json:"deanList"`
	}
	require.NoError(t, json.Unmarshal([]byte(runCLI(t, "summary", "--config", configFile)), &summary))
	assert.Equal(t, 2, summary["Fall24"].Total)
	assert.Equal(t, 1, summary["Fall24"].DeanList)
}
