package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of one processed file.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusSkipped  Status = "skipped"
	StatusError    Status = "error"
)

// Record is one run entry: a single file processed by a single batch run.
// Every record carries its own run ID so reruns of the same file stay
// distinguishable in the log.
type Record struct {
	RunID      string    `json:"run_id"`
	File       string    `json:"file"`
	Output     string    `json:"output,omitempty"`
	Status     Status    `json:"status"`
	Message    string    `json:"message,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// RunLog appends run records to a JSONL file, one object per line.
type RunLog struct {
	f   *os.File
	enc *json.Encoder
}

// OpenRunLog opens (or creates) the run log at path for appending.
func OpenRunLog(path string) (*RunLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("batch.OpenRunLog: %w", err)
	}
	return &RunLog{f: f, enc: json.NewEncoder(f)}, nil
}

// Append writes one record.
func (l *RunLog) Append(rec Record) error {
	if err := l.enc.Encode(rec); err != nil {
		return fmt.Errorf("RunLog.Append: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (l *RunLog) Close() error { return l.f.Close() }

// NewRecord starts a record for a file, stamped with a fresh run ID.
func NewRecord(file string) Record {
	return Record{
		RunID:     uuid.NewString(),
		File:      file,
		StartedAt: time.Now().UTC(),
	}
}

// finish closes out a record with its outcome.
func (r Record) finish(status Status, message string) Record {
	r.Status = status
	r.Message = message
	r.FinishedAt = time.Now().UTC()
	return r
}

// ReadRunLog loads all records from a run log file, oldest first.
func ReadRunLog(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("batch.ReadRunLog: %w", err)
	}
	defer f.Close()

	var records []Record
	dec := json.NewDecoder(f)
	for dec.More() {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("batch.ReadRunLog: decoding: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
