package engine

import (
	"encoding/json"
	"os"
	"sync"
)

// AuditEvent is one JSONL record describing a validation run for a file.
// Issue details are deliberately excluded: excerpts live in the report, and
// the scanner redacts credential material before they get there.
type AuditEvent struct {
	Timestamp  string   `json:"timestamp"`
	RunID      string   `json:"run_id,omitempty"`
	Path       string   `json:"path"`
	Passed     bool     `json:"passed"`
	Critical   int      `json:"critical"`
	High       int      `json:"high"`
	Medium     int      `json:"medium"`
	Low        int      `json:"low"`
	IssueTypes []string `json:"issue_types,omitempty"`
}

// AuditLog appends events to a JSONL file behind a mutex.
type AuditLog struct {
	file *os.File
	mu   sync.Mutex
}

func OpenAuditLog(path string) (*AuditLog, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	return &AuditLog{file: file}, nil
}

func (l *AuditLog) Log(event AuditEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = l.file.Write(data)
	return err
}

func (l *AuditLog) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
