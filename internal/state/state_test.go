package state_test

import (
	"testing"

	"wordcounter/internal/errors"
	"wordcounter/internal/state"

	"github.com/stretchr/testify/assert"
)

// assertExclusive checks that count and error are never both present.
func assertExclusive(t *testing.T, m state.Reader) {
	t.Helper()
	_, hasCount := m.Count()
	_, hasErr := m.ErrorMessage()
	assert.False(t, hasCount && hasErr, "count and error both present in phase %s", m.Phase())
}

func TestNewModel(t *testing.T) {
	m := state.New()
	assert.Equal(t, state.Idle, m.Phase())
	assert.Empty(t, m.FilePath())
	assert.False(t, m.CanCount())

	_, hasCount := m.Count()
	_, hasErr := m.ErrorMessage()
	assert.False(t, hasCount)
	assert.False(t, hasErr)
}

func TestSelectFile(t *testing.T) {
	m := state.New()
	m.SelectFile("/docs/a.txt")

	assert.Equal(t, state.FileSelected, m.Phase())
	assert.Equal(t, "/docs/a.txt", m.FilePath())
	assert.True(t, m.CanCount())
	assertExclusive(t, m)
}

func TestCancelledPickKeepsState(t *testing.T) {
	m := state.New()
	m.SelectFile("")
	assert.Equal(t, state.Idle, m.Phase())
	assert.False(t, m.CanCount())

	m.SelectFile("/docs/a.txt")
	m.Apply(5, nil)
	m.SelectFile("")

	assert.Equal(t, state.Counted, m.Phase())
	assert.Equal(t, "/docs/a.txt", m.FilePath())
	n, ok := m.Count()
	assert.True(t, ok)
	assert.Equal(t, 5, n)
}

func TestApply(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		m := state.New()
		m.SelectFile("/docs/a.txt")
		m.Apply(5, nil)

		assert.Equal(t, state.Counted, m.Phase())
		n, ok := m.Count()
		assert.True(t, ok)
		assert.Equal(t, 5, n)
		assertExclusive(t, m)
	})

	t.Run("zero is a count", func(t *testing.T) {
		m := state.New()
		m.SelectFile("/docs/empty.txt")
		m.Apply(0, nil)

		n, ok := m.Count()
		assert.True(t, ok)
		assert.Zero(t, n)
	})

	t.Run("failure", func(t *testing.T) {
		m := state.New()
		m.SelectFile("/docs/a.docx")
		m.Apply(0, errors.NewCountError("invalid archive", "/docs/a.docx", "docx", errors.ArchiveError, nil))

		assert.Equal(t, state.Failed, m.Phase())
		msg, ok := m.ErrorMessage()
		assert.True(t, ok)
		assert.Equal(t, "invalid archive", msg)
		assertExclusive(t, m)
	})

	t.Run("unsupported format message", func(t *testing.T) {
		m := state.New()
		m.SelectFile("/docs/a.md")
		m.Apply(0, errors.Wrap(errors.NewCountError(errors.UnsupportedFormatMessage, "/docs/a.md", "md", errors.UnsupportedFormat, nil), "dispatch"))

		msg, ok := m.ErrorMessage()
		assert.True(t, ok)
		assert.Equal(t, errors.UnsupportedFormatMessage, msg)
	})

	t.Run("failure then success clears error", func(t *testing.T) {
		m := state.New()
		m.SelectFile("/docs/a.txt")
		m.Apply(0, errors.New("boom"))
		m.Apply(3, nil)

		_, hasErr := m.ErrorMessage()
		assert.False(t, hasErr)
		n, ok := m.Count()
		assert.True(t, ok)
		assert.Equal(t, 3, n)
	})

	t.Run("ignored without a file", func(t *testing.T) {
		m := state.New()
		m.Apply(7, nil)
		assert.Equal(t, state.Idle, m.Phase())
		_, ok := m.Count()
		assert.False(t, ok)
	})
}

func TestSelectingNewFileClearsOutcome(t *testing.T) {
	m := state.New()
	m.SelectFile("/docs/a.txt")
	m.Apply(5, nil)
	m.SelectFile("/docs/b.pdf")

	assert.Equal(t, state.FileSelected, m.Phase())
	assert.Equal(t, "/docs/b.pdf", m.FilePath())
	_, hasCount := m.Count()
	_, hasErr := m.ErrorMessage()
	assert.False(t, hasCount)
	assert.False(t, hasErr)

	m.Apply(0, errors.New("boom"))
	m.SelectFile("/docs/c.txt")
	_, hasErr = m.ErrorMessage()
	assert.False(t, hasErr)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", state.Idle.String())
	assert.Equal(t, "file_selected", state.FileSelected.String())
	assert.Equal(t, "counted", state.Counted.String())
	assert.Equal(t, "failed", state.Failed.String())
	assert.Equal(t, "phase(9)", state.Phase(9).String())
}
