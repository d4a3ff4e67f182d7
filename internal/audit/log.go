// Package audit keeps an append-only history of update runs.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/boiler/boiler/internal/render"
)

type RunRecord struct {
	Timestamp time.Time       `json:"timestamp"`
	RunID     string          `json:"run_id"`
	Root      string          `json:"root"`
	Identity  string          `json:"identity"`
	DryRun    bool            `json:"dry_run,omitempty"`
	Detectors []string        `json:"detectors"`
	Actions   []string        `json:"actions"`
	Counts    map[string]int  `json:"counts"`
	Changes   []render.Change `json:"changes,omitempty"`
	Duration  string          `json:"duration"`
}

type AuditLog struct {
	logPath string
}

// NewAuditLog keeps the log inside .git when root is a git checkout so it
// never shows up as an untracked file.
func NewAuditLog(root string) *AuditLog {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".boiler_runs.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "boiler_runs.jsonl")
	}
	return &AuditLog{logPath: logPath}
}

func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns the records newest first. Lines that fail to decode
// are skipped.
func (a *AuditLog) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record RunRecord
		if err := decoder.Decode(&record); err != nil {
			continue
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (a *AuditLog) LogRun(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = uuid.NewString()
	}

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// DeleteRecord removes the record at index, counted newest first as in
// LoadHistory.
func (a *AuditLog) DeleteRecord(index int) error {
	records, err := a.LoadHistory()
	if err != nil {
		return err
	}

	if index < 0 || index >= len(records) {
		return fmt.Errorf("invalid index: %d", index)
	}

	records = append(records[:index], records[index+1:]...)

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	f, err := os.Create(a.logPath)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to write audit record: %w", err)
		}
	}
	return nil
}

// CreateRunRecord summarizes a finished run. Only changed files are listed
// individually; unchanged ones appear in the counts.
func CreateRunRecord(root, identity string, dryRun bool, detectors, actions []string, changes []render.Change, duration time.Duration) RunRecord {
	counts := map[string]int{}
	var changed []render.Change
	for _, c := range changes {
		counts[string(c.Status)]++
		if c.Status != render.Unchanged {
			changed = append(changed, c)
		}
	}
	return RunRecord{
		Timestamp: time.Now(),
		Root:      root,
		Identity:  identity,
		DryRun:    dryRun,
		Detectors: detectors,
		Actions:   actions,
		Counts:    counts,
		Changes:   changed,
		Duration:  duration.String(),
	}
}
