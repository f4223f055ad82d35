package iofetch

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"time"
)

// checkpointEntry is one line of the append-only checkpoint log. Data
// carries the fetched payload so an interrupted run can be resumed
// without losing completed records; it is empty for records that were
// processed but yielded nothing.
type checkpointEntry struct {
	ID   string          `json:"id"`
	At   string          `json:"at"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Checkpoint is an append-only JSONL log of completed records. The log
// is read once at startup; afterwards each completed record appends one
// line, so a kill at any point loses at most the record in flight.
type Checkpoint struct {
	file    *os.File
	done    map[string]json.RawMessage
	ordered []string
}

// OpenCheckpoint loads the existing log at path (if any) and opens it
// for appending.
func OpenCheckpoint(path string) (*Checkpoint, error) {
	cp := &Checkpoint{done: make(map[string]json.RawMessage)}

	if bs, err := os.ReadFile(path); err == nil {
		scanner := bufio.NewScanner(bytes.NewReader(bs))
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			var entry checkpointEntry
			if err := json.Unmarshal(line, &entry); err != nil {
				// A torn last line from a killed run is expected.
				continue
			}
			if _, ok := cp.done[entry.ID]; !ok {
				cp.ordered = append(cp.ordered, entry.ID)
			}
			cp.done[entry.ID] = entry.Data
		}
	} else if !os.IsNotExist(err) {
		return nil, CheckpointError(path, err)
	}

	file, err := os.OpenFile(path,
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, CheckpointError(path, err)
	}
	cp.file = file
	return cp, nil
}

// Done reports whether a record was already completed.
func (cp *Checkpoint) Done(id string) bool {
	_, ok := cp.done[id]
	return ok
}

// Mark records a completed record and its payload. Pass nil data for
// records that were processed but produced nothing.
func (cp *Checkpoint) Mark(id string, data any) error {
	entry := checkpointEntry{
		ID: id,
		At: time.Now().Format(time.RFC3339),
	}
	if data != nil {
		bs, err := json.Marshal(data)
		if err != nil {
			return CheckpointError(cp.file.Name(), err)
		}
		entry.Data = bs
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return CheckpointError(cp.file.Name(), err)
	}
	if _, err := cp.file.Write(append(line, '\n')); err != nil {
		return CheckpointError(cp.file.Name(), err)
	}

	if _, ok := cp.done[id]; !ok {
		cp.ordered = append(cp.ordered, id)
	}
	cp.done[id] = entry.Data
	return nil
}

// Count returns the number of completed records.
func (cp *Checkpoint) Count() int {
	return len(cp.done)
}

// Each visits completed records in completion order.
func (cp *Checkpoint) Each(fn func(id string, data json.RawMessage)) {
	for _, id := range cp.ordered {
		fn(id, cp.done[id])
	}
}

// Close closes the underlying log file.
func (cp *Checkpoint) Close() error {
	if cp.file != nil {
		return cp.file.Close()
	}
	return nil
}
