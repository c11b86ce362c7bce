package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusModel(t *testing.T) {
	data := &StatusData{
		Backend:   "sqlite",
		Location:  "/tmp/doc.db",
		Mode:      "markdown",
		Title:     "Plan",
		Words:     4,
		Chars:     12,
		Keys:      []StoredKey{{Key: "editor-markdown", Bytes: 12, Value: "# Plan\none two"}},
		LastSaved: time.Now().Add(-time.Minute),
		LogLines:  []string{"INFO document saved"},
	}
	m := InitStatusModel(func() (*StatusData, error) { return data, nil }, 0)
	assert.Contains(t, m.View(), "Reading store")

	updated, cmd := m.Update(StatusMsg{Data: data})
	assert.Nil(t, cmd, "no refresh without an interval")
	view := updated.View()
	assert.Contains(t, view, "sqlite")
	assert.Contains(t, view, "Plan")
	assert.Contains(t, view, "4 words • 12 chars")
	assert.Contains(t, view, "editor-markdown")
	assert.Contains(t, view, "INFO document saved")
	assert.NotContains(t, view, "auto-refresh")
}

func TestStatusModelRefreshes(t *testing.T) {
	calls := 0
	load := func() (*StatusData, error) {
		calls++
		return &StatusData{}, nil
	}
	m := InitStatusModel(load, time.Second)

	updated, cmd := m.Update(StatusMsg{Data: &StatusData{}})
	require.NotNil(t, cmd, "schedules the next refresh")
	assert.Contains(t, updated.View(), "Nothing saved yet")
	assert.Contains(t, updated.View(), "auto-refresh: 1s")

	_, cmd = updated.Update(TickMsg(time.Now()))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.IsType(t, StatusMsg{}, msg)
	assert.Equal(t, 1, calls)
}

func TestStatusModelError(t *testing.T) {
	m := InitStatusModel(nil, 0)
	updated, _ := m.Update(StatusMsg{Err: errors.New("store offline")})
	assert.Contains(t, updated.View(), "store offline")

	_, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "a b", preview("a\n  b", 10))
	assert.Equal(t, "abc…", preview("abcdef", 4))
	assert.Equal(t, "ééé", preview("ééé", 3))
}

func TestDiffModel(t *testing.T) {
	m := InitDiffModel("Diff", func() DiffMsg {
		return DiffMsg{Content: "-old\n+new", Changed: true}
	})

	cmd := m.Init()
	require.NotNil(t, cmd)
	updated, _ := m.Update(cmd())
	assert.Contains(t, updated.View(), "+new")

	updated, _ = m.Update(DiffMsg{})
	assert.Contains(t, updated.View(), "would not change")

	updated, _ = m.Update(DiffMsg{Err: errors.New("no store")})
	assert.Contains(t, updated.View(), "no store")
}

func TestTaskModel(t *testing.T) {
	m := InitTaskModel("Importing...", nil)
	assert.Contains(t, m.View(), "Importing...")

	updated, cmd := m.Update(TaskMsg{Result: &TaskResult{Summary: "Imported notes.md", Detail: "markdown"}})
	require.NotNil(t, cmd)
	view := updated.View()
	assert.Contains(t, view, "Imported notes.md")
	assert.Contains(t, view, "markdown")
	assert.NoError(t, updated.(taskModel).Err())

	updated, _ = m.Update(TaskMsg{Err: errors.New("unsupported file")})
	assert.Contains(t, updated.View(), "unsupported file")
	assert.Error(t, updated.(taskModel).Err())
}
