package palette

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

// launcher drives any program speaking the dmenu protocol: rows on stdin,
// the selection on stdout.
type launcher struct {
	command string
	// byIndex launchers print the selected row number instead of its text.
	byIndex bool
	markup  bool
	icons   bool
	// rowProps enables rofi's "\0key\x1fvalue" row properties.
	rowProps bool
}

func newLauncher(name string) (*launcher, bool) {
	switch name {
	case "rofi":
		return &launcher{command: "rofi", byIndex: true, markup: true, icons: true, rowProps: true}, true
	case "fuzzel":
		return &launcher{command: "fuzzel", byIndex: true, icons: true}, true
	case "wofi":
		return &launcher{command: "wofi", markup: true, icons: true}, true
	case "dmenu":
		return &launcher{command: "dmenu"}, true
	}
	return nil, false
}

func (l *launcher) Name() string { return l.command }

func (l *launcher) Show(prompt string, items []Item) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("palette: no items to show")
	}
	rows := make([]Item, len(items))
	copy(rows, items)
	if !l.byIndex {
		disambiguate(rows)
	}

	cmd := exec.Command(l.command, l.args(prompt, rows)...)
	cmd.Stdin = strings.NewReader(l.input(rows))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	selection := strings.TrimSpace(string(out))
	if err != nil {
		if selection == "" && isCancelExit(err) {
			return Item{}, ErrCancelled
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Item{}, fmt.Errorf("%s failed: %s", l.command, msg)
		}
		return Item{}, fmt.Errorf("%s failed: %w", l.command, err)
	}
	if selection == "" {
		return Item{}, ErrCancelled
	}
	return l.parse(selection, rows)
}

func (l *launcher) args(prompt string, rows []Item) []string {
	switch l.command {
	case "rofi":
		args := []string{"-dmenu", "-i", "-format", "i", "-no-custom"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		args = append(args, "-markup-rows", "-show-icons")
		var active []string
		selected := -1
		for i, row := range rows {
			if row.IsHeader {
				continue
			}
			if selected < 0 {
				selected = i
			}
			if row.IsActive {
				active = append(active, strconv.Itoa(i))
			}
		}
		if len(active) > 0 {
			args = append(args, "-a", strings.Join(active, ","))
		}
		if selected >= 0 {
			args = append(args, "-selected-row", strconv.Itoa(selected))
		}
		return args
	case "fuzzel":
		args := []string{"--dmenu", "--index"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}
		return args
	case "wofi":
		args := []string{"--dmenu", "--allow-markup", "--allow-images"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}
		return args
	default:
		args := []string{"-i"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		return args
	}
}

func (l *launcher) input(rows []Item) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = l.row(row)
	}
	return strings.Join(lines, "\n")
}

func (l *launcher) row(item Item) string {
	text := cleanLabel(item.Label)
	if l.markup {
		text = html.EscapeString(text)
		if item.IsHeader {
			text = "<b>" + text + "</b>"
		}
	}
	if !l.rowProps {
		return text
	}

	var props []string
	if item.IsHeader {
		props = append(props, "nonselectable", "true")
	}
	if item.Icon != "" && l.icons {
		props = append(props, "icon", cleanProp(item.Icon))
	}
	if item.Meta != "" {
		props = append(props, "meta", cleanProp(item.Meta))
	}
	if len(props) == 0 {
		return text
	}
	// One NUL, then key/value pairs separated by \x1f.
	return text + "\x00" + strings.Join(props, "\x1f")
}

func (l *launcher) parse(selection string, rows []Item) (Item, error) {
	if l.byIndex {
		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 0 || idx >= len(rows) {
				return Item{}, fmt.Errorf("palette: index %d out of range", idx)
			}
			return rows[idx], nil
		}
	}
	for _, row := range rows {
		if cleanLabel(row.Label) == selection {
			return row, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

// disambiguate suffixes repeated labels so text matching stays unique.
func disambiguate(rows []Item) {
	seen := make(map[string]int)
	for i := range rows {
		if rows[i].IsHeader {
			continue
		}
		key := cleanLabel(rows[i].Label)
		if key == "" {
			continue
		}
		if n := seen[key]; n > 0 {
			rows[i].Label = fmt.Sprintf("%s (%d)", key, n+1)
		}
		seen[key]++
	}
}

func cleanLabel(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\r", " ", "\n", " ").Replace(s))
}

func cleanProp(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\x00", " ", "\x1f", " ", "\r", " ", "\n", " ").Replace(s))
}

// isCancelExit reports the exit codes launchers use for Escape (1) and
// Ctrl+C (130).
func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	code := exitErr.ExitCode()
	return code == 1 || code == 130
}
