package history

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"pkt.systems/pslog"
)

// Transcript is a Sink that writes every event as one JSON object per line.
// A transcript is an audit trail only. It is never loaded back into a Log.
type Transcript struct {
	path   string
	file   *os.File
	writer *json.Encoder
	err    error
	log    pslog.Logger
}

// NewTranscript writes events to w.
func NewTranscript(w io.Writer) *Transcript {
	return &Transcript{writer: json.NewEncoder(w)}
}

// OpenTranscript appends events to the file at path. The file and its
// directory are created when the first event arrives.
func OpenTranscript(path string, log pslog.Logger) *Transcript {
	return &Transcript{path: path, log: log}
}

// HandleEvent implements Sink. After the first write error, further events
// are dropped and the error is reported by Err and Close.
func (t *Transcript) HandleEvent(ev Event) {
	if t.err != nil {
		return
	}
	if err := t.initFile(); err != nil {
		t.fail(err)
		return
	}
	if err := writeEvent(t.writer, ev); err != nil {
		t.fail(err)
	}
}

// Err returns the first write error.
func (t *Transcript) Err() error {
	return t.err
}

// Close closes the underlying file, if the transcript opened one.
func (t *Transcript) Close() error {
	if t.file == nil {
		return t.err
	}
	err := t.file.Close()
	t.file = nil
	if t.log != nil {
		t.log.Debug("transcript closed", "path", t.path, "err", err)
	}
	if t.err != nil {
		return t.err
	}
	return err
}

func (t *Transcript) fail(err error) {
	t.err = err
	if t.log != nil {
		t.log.Warn("transcript write failed", "path", t.path, "err", err)
	}
}

func (t *Transcript) initFile() error {
	if t.writer != nil {
		return nil // already open
	}

	if err := os.MkdirAll(filepath.Dir(t.path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(t.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	if t.log != nil {
		t.log.Info("transcript opened", "path", t.path)
	}
	t.file = f
	t.writer = json.NewEncoder(f)
	return nil
}

// ReadTranscript decodes all events of a transcript, in order.
func ReadTranscript(r io.Reader) ([]Event, error) {
	var (
		dec    = json.NewDecoder(r)
		events []Event
	)
	dec.DisallowUnknownFields()
	for {
		ev, err := readEvent(dec)
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
}
