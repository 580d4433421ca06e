package shell

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/1broseidon/anshos/internal/apps"
	"github.com/1broseidon/anshos/internal/prefs"
)

// TodoItem is one saved Task Master entry, stored as a JSON array under
// prefs.KeyTodos.
type TodoItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// WindowContent returns the lines drawn inside appID's window. Task Master
// and Notepad show their saved data; every other application, and those two
// when nothing usable is saved, show the registered widget.
func (c *Chrome) WindowContent(appID apps.ID) []string {
	var lines []string
	switch appID {
	case apps.Todo:
		lines = c.todoLines()
	case apps.Notepad:
		lines = c.notepadLines()
	}
	if len(lines) > 0 {
		return lines
	}
	d, err := c.registry.Resolve(appID)
	if err != nil || d.Widget == nil {
		return nil
	}
	return d.Widget.Lines()
}

func (c *Chrome) todoLines() []string {
	raw, ok := c.saved(prefs.KeyTodos)
	if !ok {
		return nil
	}
	var todos []TodoItem
	if err := json.Unmarshal([]byte(raw), &todos); err != nil {
		c.logger.Warn("ignoring unreadable task list", "key", prefs.KeyTodos, "error", err)
		return nil
	}
	if len(todos) == 0 {
		return nil
	}

	done := 0
	lines := []string{"Task Master", ""}
	for _, todo := range todos {
		mark := "[ ]"
		if todo.Completed {
			mark = "[x]"
			done++
		}
		lines = append(lines, mark+" "+todo.Text)
	}
	lines = append(lines, "", fmt.Sprintf("%d of %d done", done, len(todos)))
	return lines
}

func (c *Chrome) notepadLines() []string {
	raw, ok := c.saved(prefs.KeyNotepad)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
}

func (c *Chrome) saved(key string) (string, bool) {
	value, ok, err := c.store.Get(key)
	if err != nil {
		c.logger.Warn("failed to read saved application data", "key", key, "error", err)
		return "", false
	}
	return value, ok
}
