// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/voc2yolo/internal/ledger"
	"github.com/pdiddy/voc2yolo/pkg/types"
)

// recordRun writes one run into a fresh ledger and returns the ledger path
// and run id.
func recordRun(t *testing.T) (string, int64) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runs.db")
	l, err := ledger.Open(path)
	require.NoError(t, err)
	defer l.Close()

	started := time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)
	id, err := l.Record(context.Background(), types.RunReport{
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		Config:     types.ConvertConfig{XMLDir: "data/xml", LabelDir: "data/labels"},
		Converted:  1,
		NoImage:    1,
		Classes:    []string{"cat", "dog"},
		Files: []types.FileResult{
			{XMLFile: "a.xml", Image: "a.jpg", LabelPath: "data/labels/a.txt", Objects: 2, Status: types.FileConverted},
			{XMLFile: "b.xml", Image: "b.jpg", Status: types.FileNoImage, Error: "image not found"},
		},
	})
	require.NoError(t, err)
	return path, id
}

// executeHistory runs the history subcommand. Every flag is passed
// explicitly because cobra keeps flag values between executions.
func executeHistory(t *testing.T, ledgerPath string, runID int64, jsonOutput bool) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{"history",
		"--ledger", ledgerPath,
		"--limit", "20",
		"--run", strconv.FormatInt(runID, 10),
		"--json=" + strconv.FormatBool(jsonOutput),
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestHistory_Table(t *testing.T) {
	path, _ := recordRun(t)

	out, err := executeHistory(t, path, 0, false)
	require.NoError(t, err)

	assert.Contains(t, out, "Converted")
	assert.Contains(t, out, "2026-06-01 09:30:00")
	assert.Contains(t, out, "data/xml")
}

func TestHistory_JSON(t *testing.T) {
	path, id := recordRun(t)

	out, err := executeHistory(t, path, 0, true)
	require.NoError(t, err)

	var runs []ledger.Run
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, 1, runs[0].Converted)
	assert.Equal(t, 1, runs[0].NoImage)
	assert.Equal(t, 2, runs[0].Classes)
}

func TestHistory_Run(t *testing.T) {
	path, id := recordRun(t)

	out, err := executeHistory(t, path, id, false)
	require.NoError(t, err)

	assert.Contains(t, out, "Classes:")
	assert.Contains(t, out, "  0  cat")
	assert.Contains(t, out, "  1  dog")
	assert.Contains(t, out, "a.xml")
	assert.Contains(t, out, "(image not found)")
}

func TestHistory_RunJSON(t *testing.T) {
	path, id := recordRun(t)

	out, err := executeHistory(t, path, id, true)
	require.NoError(t, err)

	var got struct {
		Run     int64              `json:"run"`
		Classes []string           `json:"classes"`
		Files   []types.FileResult `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, id, got.Run)
	assert.Equal(t, []string{"cat", "dog"}, got.Classes)
	assert.Len(t, got.Files, 2)
}

func TestHistory_RunNotFound(t *testing.T) {
	path, _ := recordRun(t)

	_, err := executeHistory(t, path, 99, false)
	assert.ErrorContains(t, err, "run 99 not found")
}

func TestHistory_MissingLedger(t *testing.T) {
	_, err := executeHistory(t, filepath.Join(t.TempDir(), "none.db"), 0, false)
	assert.ErrorContains(t, err, "none.db")
}
