// Package state holds what the window shows: the selected file and the
// outcome of the last count attempt.
package state

import (
	"fmt"

	"wordcounter/internal/errors"
)

// Phase is where the model stands in the select/count cycle.
type Phase int

const (
	Idle Phase = iota
	FileSelected
	Counted
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case FileSelected:
		return "file_selected"
	case Counted:
		return "counted"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Reader is the read side of the model, used for rendering.
type Reader interface {
	Phase() Phase
	FilePath() string
	CanCount() bool
	Count() (int, bool)
	ErrorMessage() (string, bool)
}

// Model holds the selected path and at most one of a count or an error
// message.
type Model struct {
	phase    Phase
	filePath string
	count    int
	errMsg   string
}

func New() *Model {
	return &Model{phase: Idle}
}

// SelectFile records a newly picked file and clears the previous outcome.
// An empty path means the picker was cancelled and changes nothing.
func (m *Model) SelectFile(path string) {
	if path == "" {
		return
	}
	m.filePath = path
	m.count = 0
	m.errMsg = ""
	m.phase = FileSelected
}

// CanCount reports whether a file has been selected.
func (m *Model) CanCount() bool {
	return m.filePath != ""
}

// Apply records the result of a count attempt. A non-nil err wins over n.
// Without a selected file it does nothing.
func (m *Model) Apply(n int, err error) {
	if !m.CanCount() {
		return
	}
	if err != nil {
		m.count = 0
		m.errMsg = message(err)
		m.phase = Failed
		return
	}
	m.count = n
	m.errMsg = ""
	m.phase = Counted
}

// message is the text shown to the user for err.
func message(err error) string {
	if errors.IsUnsupportedFormat(err) {
		return errors.UnsupportedFormatMessage
	}
	return err.Error()
}

// Getters
func (m *Model) Phase() Phase {
	return m.phase
}

func (m *Model) FilePath() string {
	return m.filePath
}

// Count returns the last successful count.
func (m *Model) Count() (int, bool) {
	return m.count, m.phase == Counted
}

// ErrorMessage returns the message of the last failed attempt.
func (m *Model) ErrorMessage() (string, bool) {
	return m.errMsg, m.phase == Failed
}
