// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestNewCommandLoggerJSONWhenNotTerminal(t *testing.T) {
	var output bytes.Buffer
	logger := NewCommandLogger(&output, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("loaded content", "projects", 6)

	var record map[string]any
	if err := json.Unmarshal(output.Bytes(), &record); err != nil {
		t.Fatalf("output is not a single JSON record: %v\n%s", err, output.String())
	}
	if record["msg"] != "loaded content" || record["projects"] != float64(6) {
		t.Errorf("record = %v", record)
	}
}
