package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/anshos/internal/apps"
	"github.com/1broseidon/anshos/internal/prefs"
	"github.com/1broseidon/anshos/internal/shell"
	"github.com/1broseidon/anshos/internal/wm"
)

var fixedNow = time.Date(2026, time.October, 19, 15, 4, 0, 0, time.UTC)

func newTestModel(t *testing.T) (model, *wm.Manager, *shell.Chrome) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := apps.Default()

	n := 0
	opts := wm.DefaultOptions()
	opts.NewID = func() string {
		n++
		return fmt.Sprintf("w%d", n)
	}
	opts.Logger = logger
	mgr := wm.NewManager(registry, opts)

	chrome := shell.NewChrome(mgr, registry, prefs.NewMemory(), shell.Credentials{User: "user"}, logger)
	require.NoError(t, chrome.Login("user", ""))

	m := newModel(Options{
		Manager:    mgr,
		Registry:   registry,
		Chrome:     chrome,
		CellWidth:  10,
		CellHeight: 20,
		Now:        func() time.Time { return fixedNow },
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, mgr, chrome
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWindowSizeSetsWorkArea(t *testing.T) {
	_, mgr, _ := newTestModel(t)
	assert.Equal(t, wm.Rect{X: 0, Y: 0, Width: 1000, Height: 580}, mgr.WorkArea())
}

func TestIconDoubleClickLaunches(t *testing.T) {
	m, mgr, _ := newTestModel(t)

	m = update(t, m, press(3, 1))
	assert.Equal(t, 0, mgr.Len(), "single click only selects")
	assert.Equal(t, apps.Calculator, m.selectedIcon)

	m = update(t, m, press(3, 1))
	require.Equal(t, 1, mgr.Len())
	w, ok := mgr.Focused()
	require.True(t, ok)
	assert.Equal(t, apps.Calculator, w.AppID)
	assert.Equal(t, apps.ID(""), m.selectedIcon)
}

func TestIconClicksFarApartDoNotLaunch(t *testing.T) {
	m, mgr, _ := newTestModel(t)
	clock := fixedNow
	m.now = func() time.Time { return clock }

	m = update(t, m, press(3, 1))
	clock = clock.Add(2 * time.Second)
	update(t, m, press(3, 1))
	assert.Equal(t, 0, mgr.Len())
}

func TestTitleBarDragMovesWindow(t *testing.T) {
	m, mgr, chrome := newTestModel(t)
	id, err := chrome.OpenApp(apps.Calculator)
	require.NoError(t, err)

	// Calculator sits at (100,50): cells (10,2), 32 columns wide.
	m = update(t, m, press(15, 2))
	assert.Equal(t, wm.DragDragging, mgr.DragPhase())

	m = update(t, m, motion(25, 5))
	w, err := mgr.Window(id)
	require.NoError(t, err)
	assert.Equal(t, wm.Point{X: 200, Y: 110}, w.Position)

	update(t, m, release(25, 5))
	assert.Equal(t, wm.DragIdle, mgr.DragPhase())
}

func TestBodyPressFocusesWithoutDrag(t *testing.T) {
	m, mgr, chrome := newTestModel(t)
	calc, err := chrome.OpenApp(apps.Calculator)
	require.NoError(t, err)
	_, err = chrome.OpenApp(apps.Todo)
	require.NoError(t, err)

	update(t, m, press(11, 10))

	w, ok := mgr.Focused()
	require.True(t, ok)
	assert.Equal(t, calc, w.ID)
	assert.Equal(t, wm.DragIdle, mgr.DragPhase())
}

func TestTitleBarButtons(t *testing.T) {
	t.Run("minimize", func(t *testing.T) {
		m, mgr, chrome := newTestModel(t)
		id, err := chrome.OpenApp(apps.Calculator)
		require.NoError(t, err)

		update(t, m, press(36, 2))
		w, err := mgr.Window(id)
		require.NoError(t, err)
		assert.True(t, w.Minimized)
	})

	t.Run("maximize then close", func(t *testing.T) {
		m, mgr, chrome := newTestModel(t)
		id, err := chrome.OpenApp(apps.Calculator)
		require.NoError(t, err)

		m = update(t, m, press(38, 2))
		w, err := mgr.Window(id)
		require.NoError(t, err)
		assert.True(t, w.Maximized)
		assert.Equal(t, wm.Point{X: 100, Y: 50}, w.Position, "geometry kept while maximized")

		// Maximized, the window fills the work area and its close button
		// moves to column 98 of row 0.
		update(t, m, press(98, 0))
		assert.Equal(t, 0, mgr.Len())
	})

	t.Run("maximized title bar does not drag", func(t *testing.T) {
		m, mgr, chrome := newTestModel(t)
		id, err := chrome.OpenApp(apps.Calculator)
		require.NoError(t, err)
		require.NoError(t, mgr.ToggleMaximize(id))

		update(t, m, press(20, 0))
		assert.Equal(t, wm.DragIdle, mgr.DragPhase())
	})
}

func TestTaskbarClickCyclesApplication(t *testing.T) {
	m, mgr, _ := newTestModel(t)

	m = update(t, m, press(10, 29))
	w, ok := mgr.ByApp(apps.Calculator)
	require.True(t, ok)
	assert.False(t, w.Minimized)

	m = update(t, m, press(10, 29))
	w, _ = mgr.ByApp(apps.Calculator)
	assert.True(t, w.Minimized)

	update(t, m, press(10, 29))
	w, _ = mgr.ByApp(apps.Calculator)
	assert.False(t, w.Minimized)
	assert.Equal(t, 1, mgr.Len())
}

func TestStartMenu(t *testing.T) {
	t.Run("open app", func(t *testing.T) {
		m, mgr, chrome := newTestModel(t)

		m = update(t, m, press(0, 29))
		require.True(t, chrome.StartMenuOpen())

		// Menu spans rows 18..28: header, eight apps, separator, log out.
		update(t, m, press(2, 20))
		assert.False(t, chrome.StartMenuOpen())
		_, ok := mgr.ByApp(apps.Todo)
		assert.True(t, ok)
	})

	t.Run("log out", func(t *testing.T) {
		m, mgr, chrome := newTestModel(t)
		_, err := chrome.OpenApp(apps.Paint)
		require.NoError(t, err)

		m = update(t, m, press(0, 29))
		m = update(t, m, press(2, 28))
		assert.True(t, chrome.Locked())
		assert.Equal(t, 0, mgr.Len())
		assert.NotNil(t, m.login)
	})

	t.Run("click elsewhere closes", func(t *testing.T) {
		m, _, chrome := newTestModel(t)
		m = update(t, m, press(0, 29))
		update(t, m, press(80, 10))
		assert.False(t, chrome.StartMenuOpen())
	})

	t.Run("keyboard", func(t *testing.T) {
		m, mgr, chrome := newTestModel(t)

		m = update(t, m, runes("s"))
		require.True(t, chrome.StartMenuOpen())
		m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
		assert.Equal(t, 1, m.menuIndex)
		update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		_, ok := mgr.ByApp(apps.Todo)
		assert.True(t, ok)
		assert.False(t, chrome.StartMenuOpen())
	})
}

func TestWindowKeys(t *testing.T) {
	m, mgr, chrome := newTestModel(t)
	calc, err := chrome.OpenApp(apps.Calculator)
	require.NoError(t, err)
	todo, err := chrome.OpenApp(apps.Todo)
	require.NoError(t, err)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	w, _ := mgr.Focused()
	assert.Equal(t, calc, w.ID, "tab wraps to the first window")

	m = update(t, m, runes("m"))
	w, _ = mgr.Focused()
	assert.Equal(t, todo, w.ID, "minimizing calculator leaves todo on top")

	m = update(t, m, runes("f"))
	w, _ = mgr.Window(todo)
	assert.True(t, w.Maximized)

	update(t, m, runes("x"))
	_, err = mgr.Window(todo)
	assert.ErrorIs(t, err, wm.ErrWindowNotFound)
	assert.Equal(t, 1, mgr.Len())
}

func TestThemeKeys(t *testing.T) {
	m, _, chrome := newTestModel(t)

	m = update(t, m, runes("w"))
	assert.Equal(t, "Mountain Lake", chrome.Theme().Wallpaper.Name)

	update(t, m, runes("c"))
	assert.Equal(t, "Blue", chrome.Theme().TaskbarColor.Name)
}

func TestLockIgnoresDesktopInput(t *testing.T) {
	m, mgr, chrome := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	require.True(t, chrome.Locked())
	require.NotNil(t, m.login)

	m = update(t, m, press(3, 1))
	update(t, m, press(3, 1))
	assert.Equal(t, 0, mgr.Len())
}

func TestPortraitShowsRotateNotice(t *testing.T) {
	m, mgr, _ := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 30})

	assert.Contains(t, m.View(), "rotate")

	m = update(t, m, press(3, 1))
	update(t, m, press(3, 1))
	assert.Equal(t, 0, mgr.Len())
}

func TestPaintDesktop(t *testing.T) {
	m, _, chrome := newTestModel(t)
	_, err := chrome.OpenApp(apps.Calculator)
	require.NoError(t, err)

	c := m.paint(m.frame())

	taskbar := c.row(29)
	assert.True(t, strings.HasPrefix(taskbar, startButtonLabel))
	assert.Contains(t, taskbar, "3:04 PM  10/19/2026")
	assert.Equal(t, styleTaskbarFocused, c.styleAt(10, 29))

	assert.Contains(t, c.row(2), "Calculator")
	assert.Equal(t, 'x', []rune(c.row(2))[40])
	assert.Equal(t, styleTitleFocused, c.styleAt(15, 2))
	assert.Contains(t, c.row(1), "[=]", "icons above the window stay visible")
}

func TestPaintShowsSavedNote(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := apps.Default()
	mgr := wm.NewManager(registry, wm.DefaultOptions())
	store := prefs.NewMemory()
	require.NoError(t, store.Set(prefs.KeyNotepad, "meeting at noon\nbring slides"))
	chrome := shell.NewChrome(mgr, registry, store, shell.Credentials{User: "user"}, logger)
	require.NoError(t, chrome.Login("user", ""))

	m := newModel(Options{Manager: mgr, Registry: registry, Chrome: chrome, CellWidth: 10, CellHeight: 20, Now: func() time.Time { return fixedNow }})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	_, err := chrome.OpenApp(apps.Notepad)
	require.NoError(t, err)

	c := m.paint(m.frame())
	// Notepad opens at (100,50): title on row 2, body from row 3.
	assert.Contains(t, c.row(3), "meeting at noon")
	assert.Contains(t, c.row(4), "bring slides")
}
