package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	buddy "github.com/xgzlucario/BuddySim"
)

const scenarioScript = `[
	{"id": 1, "name": "A", "size": 65, "op": "Request"},
	{"id": 2, "name": "B", "size": 30, "op": "Request"},
	{"id": 3, "name": "C", "size": 94, "op": "Request"},
	{"id": 4, "name": "D", "size": 34, "op": "Request"},
	{"id": 5, "name": "E", "size": 136, "op": "Request"},
	{"id": 4, "op": "Release"}
]`

const failingScript = `[
	{"id": 9, "op": "Release"},
	{"id": 1, "name": "A", "size": 2000, "op": "Request"}
]`

// resetFlags restores every flag to its default.
func resetFlags(t *testing.T) {
	t.Helper()
	verbose = false
	quiet = false
	jsonOut = false
	capacity = buddy.DefaultOptions.Capacity
	chunk = buddy.DefaultOptions.ChunkSize
	strategy = buddy.DefaultOptions.Strategy.String()
	runHistory = false
	runDump = ""
	batchWorkers = 0
	genWorkload = buddy.DefaultWorkload
}

// writeScript writes src to a temporary script file
func writeScript(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	// drain concurrently so large outputs do not fill the pipe.
	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	return string(<-done), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}
