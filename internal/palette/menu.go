package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Entry is a node of the launcher menu. Entries with children open a
// submenu; leaves carry an action.
type Entry struct {
	Label    string
	Action   string
	Icon     string
	Meta     string
	IsHeader bool
	IsActive bool
	Children []Entry
}

const (
	backAction    = "__back__"
	submenuPrefix = "__submenu__:"
	rootPrompt    = "anshos"
)

// Menu walks an entry tree one level at a time.
type Menu struct {
	backend Backend
	root    []Entry
}

func NewMenu(backend Backend, root []Entry) *Menu {
	return &Menu{backend: backend, root: root}
}

// Show returns the action of the chosen leaf, or ErrCancelled when the
// launcher is closed at the top level.
func (m *Menu) Show() (string, error) {
	return m.show(m.root, nil)
}

func (m *Menu) show(entries []Entry, path []string) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("menu: no items to show")
	}

	prompt := rootPrompt
	if len(path) > 0 {
		prompt = path[len(path)-1]
	}

	for {
		items := make([]Item, 0, len(entries)+1)
		if len(path) > 0 {
			items = append(items, Item{Label: "← Back", Action: backAction, Icon: "go-previous"})
		}
		for i, e := range entries {
			item := Item{
				Label:    e.Label,
				Action:   e.Action,
				Icon:     e.Icon,
				Meta:     e.Meta,
				IsHeader: e.IsHeader,
				IsActive: e.IsActive,
			}
			if len(e.Children) > 0 {
				item.Label += " →"
				item.Action = submenuPrefix + strconv.Itoa(i)
			}
			items = append(items, item)
		}

		chosen, err := m.backend.Show(prompt, items)
		if err != nil {
			return "", err
		}
		// dmenu and wofi cannot make headers unselectable.
		if chosen.IsHeader || chosen.Action == "" {
			continue
		}
		if chosen.Action == backAction {
			return "", ErrCancelled
		}
		if rest, ok := strings.CutPrefix(chosen.Action, submenuPrefix); ok {
			idx, err := strconv.Atoi(rest)
			if err != nil || idx < 0 || idx >= len(entries) {
				continue
			}
			action, err := m.show(entries[idx].Children, append(path[:len(path):len(path)], entries[idx].Label))
			if errors.Is(err, ErrCancelled) {
				continue
			}
			return action, err
		}
		return chosen.Action, nil
	}
}
