/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package logtest

import (
	"sync"
	"time"

	"github.com/ssgreg/logf"

	"github.com/acronis/go-lrumap/log"
)

// RecordedEntry represents recorded entry which was logged.
type RecordedEntry struct {
	Fields []log.Field
	Level  log.Level
	Time   time.Time
	Text   string
}

// FindField tries to find field in logging entry by key.
func (re *RecordedEntry) FindField(key string) (*log.Field, bool) {
	for i := range re.Fields {
		if re.Fields[i].Key == key {
			return &re.Fields[i], true
		}
	}
	return nil, false
}

type recordingEntryWriter struct {
	mu      sync.RWMutex
	entries []RecordedEntry
}

//nolint:gocritic
func (ew *recordingEntryWriter) WriteEntry(e logf.Entry) {
	fields := make([]log.Field, 0, len(e.Fields)+len(e.DerivedFields))
	fields = append(fields, e.DerivedFields...)
	fields = append(fields, e.Fields...)

	ew.mu.Lock()
	defer ew.mu.Unlock()
	ew.entries = append(ew.entries, RecordedEntry{
		Fields: fields,
		Level:  convertLogfLevelToLevel(e.Level),
		Time:   e.Time,
		Text:   e.Text,
	})
}

// Recorder is an implementation of log.FieldLogger that
// records all logged entries for later inspection in tests.
type Recorder struct {
	*log.LogfAdapter
	entryWriter *recordingEntryWriter
}

var _ log.FieldLogger = (*Recorder)(nil)

// NewRecorder returns an initialized Recorder. All levels including debug are recorded.
func NewRecorder() *Recorder {
	ew := &recordingEntryWriter{}
	return &Recorder{&log.LogfAdapter{Logger: logf.NewLogger(logf.LevelDebug, ew)}, ew}
}

// With returns a new Recorder with the given additional fields that shares recorded entries with the parent.
func (r *Recorder) With(fs ...log.Field) log.FieldLogger {
	return &Recorder{r.LogfAdapter.With(fs...).(*log.LogfAdapter), r.entryWriter}
}

// Entries returns all recorded logging entries.
func (r *Recorder) Entries() []RecordedEntry {
	r.entryWriter.mu.RLock()
	defer r.entryWriter.mu.RUnlock()
	return append([]RecordedEntry{}, r.entryWriter.entries...)
}

// FindEntry tries to find the first recorded logging entry with the given message.
func (r *Recorder) FindEntry(msg string) (RecordedEntry, bool) {
	entries := r.FindAllEntries(msg)
	if len(entries) == 0 {
		return RecordedEntry{}, false
	}
	return entries[0], true
}

// FindAllEntries returns all recorded logging entries with the given message.
func (r *Recorder) FindAllEntries(msg string) []RecordedEntry {
	r.entryWriter.mu.RLock()
	defer r.entryWriter.mu.RUnlock()
	var found []RecordedEntry
	for _, entry := range r.entryWriter.entries {
		if entry.Text == msg {
			found = append(found, entry)
		}
	}
	return found
}

// Reset resets all recorded logs.
func (r *Recorder) Reset() {
	r.entryWriter.mu.Lock()
	r.entryWriter.entries = nil
	r.entryWriter.mu.Unlock()
}

func convertLogfLevelToLevel(value logf.Level) log.Level {
	switch value {
	case logf.LevelError:
		return log.LevelError
	case logf.LevelWarn:
		return log.LevelWarn
	case logf.LevelDebug:
		return log.LevelDebug
	}
	return log.LevelInfo
}
