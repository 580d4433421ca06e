package shell

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/anshos/internal/apps"
	"github.com/1broseidon/anshos/internal/prefs"
	"github.com/1broseidon/anshos/internal/wm"
)

func newTestChrome(t *testing.T) (*Chrome, *wm.Manager) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts := wm.DefaultOptions()
	opts.Logger = logger
	mgr := wm.NewManager(apps.Default(), opts)
	c := NewChrome(mgr, apps.Default(), prefs.NewMemory(), Credentials{User: "ansh", PIN: "1234"}, logger)
	return c, mgr
}

func loggedIn(t *testing.T) (*Chrome, *wm.Manager) {
	t.Helper()
	c, mgr := newTestChrome(t)
	require.NoError(t, c.Login("ansh", "1234"))
	return c, mgr
}

func TestLogin(t *testing.T) {
	c, _ := newTestChrome(t)
	assert.True(t, c.Locked())

	assert.ErrorIs(t, c.Login("ansh", "0000"), ErrBadCredentials)
	assert.ErrorIs(t, c.Login("guest", "1234"), ErrBadCredentials)
	assert.True(t, c.Locked())

	require.NoError(t, c.Login("ansh", "1234"))
	assert.False(t, c.Locked())
	assert.Equal(t, "ansh", c.User())
}

func TestLogin_EmptyPinAcceptsAny(t *testing.T) {
	mgr := wm.NewManager(apps.Default(), wm.DefaultOptions())
	c := NewChrome(mgr, apps.Default(), nil, Credentials{}, nil)

	require.NoError(t, c.Login("anyone", ""))
	assert.False(t, c.Locked())
}

func TestLocked_RefusesCommands(t *testing.T) {
	c, mgr := newTestChrome(t)

	_, err := c.OpenApp(apps.Calculator)
	assert.ErrorIs(t, err, ErrLocked)
	_, err = c.ClickTaskbar(apps.Calculator)
	assert.ErrorIs(t, err, ErrLocked)
	assert.ErrorIs(t, c.ToggleStartMenu(), ErrLocked)
	assert.ErrorIs(t, c.SetWallpaper("Neon City"), ErrLocked)
	assert.ErrorIs(t, c.SetTaskbarColor("Red"), ErrLocked)
	assert.Equal(t, 0, mgr.Len())
}

func TestOpenApp_ClosesStartMenu(t *testing.T) {
	c, mgr := loggedIn(t)
	require.NoError(t, c.ToggleStartMenu())
	require.True(t, c.StartMenuOpen())

	id, err := c.OpenApp(apps.Notepad)
	require.NoError(t, err)

	assert.False(t, c.StartMenuOpen())
	w, err := mgr.Window(id)
	require.NoError(t, err)
	assert.Equal(t, apps.Notepad, w.AppID)
}

func TestOpenApp_UnknownApplication(t *testing.T) {
	c, _ := loggedIn(t)
	_, err := c.OpenApp(apps.ID("solitaire"))
	assert.ErrorIs(t, err, apps.ErrUnknownApplication)
}

func TestClickTaskbar_TogglesOpenApplication(t *testing.T) {
	c, mgr := loggedIn(t)

	id, err := c.ClickTaskbar(apps.Timer)
	require.NoError(t, err)
	assert.Equal(t, 1, mgr.Len())

	again, err := c.ClickTaskbar(apps.Timer)
	require.NoError(t, err)
	assert.Equal(t, id, again)
	w, _ := mgr.Window(id)
	assert.True(t, w.Minimized)

	_, err = c.ClickTaskbar(apps.Timer)
	require.NoError(t, err)
	w, _ = mgr.Window(id)
	assert.False(t, w.Minimized)
	assert.Equal(t, 1, mgr.Len())
}

func TestTaskbar_Indicators(t *testing.T) {
	c, mgr := loggedIn(t)
	calc, _ := c.OpenApp(apps.Calculator)
	todo, _ := c.OpenApp(apps.Todo)
	require.NoError(t, mgr.ToggleMinimize(todo))

	entries := c.Taskbar()
	require.Len(t, entries, apps.Default().Len())

	byApp := map[apps.ID]TaskbarEntry{}
	for _, e := range entries {
		byApp[e.AppID] = e
	}
	assert.True(t, byApp[apps.Calculator].Open)
	assert.True(t, byApp[apps.Calculator].Focused)
	assert.Equal(t, calc, byApp[apps.Calculator].WindowID)
	assert.True(t, byApp[apps.Todo].Open)
	assert.True(t, byApp[apps.Todo].Minimized)
	assert.False(t, byApp[apps.Todo].Focused)
	assert.False(t, byApp[apps.Paint].Open)
	assert.Equal(t, apps.Calculator, entries[0].AppID)
}

func TestLogout_ClearsWindowsAndLocks(t *testing.T) {
	c, mgr := loggedIn(t)
	_, _ = c.OpenApp(apps.Calculator)
	_, _ = c.OpenApp(apps.Snake)
	require.NoError(t, c.ToggleStartMenu())

	c.Logout()

	assert.True(t, c.Locked())
	assert.False(t, c.StartMenuOpen())
	assert.Empty(t, mgr.Windows())
	assert.Equal(t, 0, mgr.Counter())
	assert.Empty(t, c.User())
}

func TestLock_KeepsWindows(t *testing.T) {
	c, mgr := loggedIn(t)
	_, _ = c.OpenApp(apps.Paint)

	c.Lock()

	assert.True(t, c.Locked())
	assert.Equal(t, 1, mgr.Len())
}

func TestTheme_DefaultsAndPersistence(t *testing.T) {
	store := prefs.NewMemory()
	mgr := wm.NewManager(apps.Default(), wm.DefaultOptions())
	c := NewChrome(mgr, apps.Default(), store, Credentials{}, nil)
	require.NoError(t, c.Login("", ""))

	assert.Equal(t, DefaultTheme(), c.Theme())

	require.NoError(t, c.SetWallpaper("neon city"))
	require.NoError(t, c.SetTaskbarColor("Purple"))

	theme := c.Theme()
	assert.Equal(t, "Neon City", theme.Wallpaper.Name)
	assert.Equal(t, "Purple", theme.TaskbarColor.Name)

	v, ok, _ := store.Get(prefs.KeyWallpaper)
	assert.True(t, ok)
	assert.Equal(t, "Neon City", v)
}

func TestTheme_RejectsUnknownOptions(t *testing.T) {
	c, _ := loggedIn(t)
	assert.ErrorIs(t, c.SetWallpaper("Beach"), ErrUnknownThemeOption)
	assert.ErrorIs(t, c.SetTaskbarColor("Green"), ErrUnknownThemeOption)
}

func TestTheme_IgnoresStaleStoredValue(t *testing.T) {
	store := prefs.NewMemory()
	require.NoError(t, store.Set(prefs.KeyTaskbarColor, "bg-slate-900/60"))
	c := NewChrome(wm.NewManager(apps.Default(), wm.DefaultOptions()), apps.Default(), store, Credentials{}, nil)

	assert.Equal(t, DefaultTheme().TaskbarColor, c.Theme().TaskbarColor)
}

func TestClock(t *testing.T) {
	now := time.Date(2024, time.March, 5, 15, 7, 0, 0, time.UTC)
	tm, date := Clock(now)
	assert.Equal(t, "3:07 PM", tm)
	assert.Equal(t, "3/5/2024", date)
}

func TestNeedsRotation(t *testing.T) {
	assert.True(t, NeedsRotation(390, 844))
	assert.False(t, NeedsRotation(1280, 800))
}

func TestPalettes(t *testing.T) {
	assert.Len(t, Wallpapers(), 4)
	assert.Len(t, TaskbarColors(), 5)
	assert.Equal(t, "Default Abstract", DefaultTheme().Wallpaper.Name)
	assert.Equal(t, "Slate", DefaultTheme().TaskbarColor.Name)
}

func chromeWithStore(t *testing.T, store prefs.Store) *Chrome {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mgr := wm.NewManager(apps.Default(), wm.DefaultOptions())
	return NewChrome(mgr, apps.Default(), store, Credentials{User: "ansh"}, logger)
}

func TestWindowContent_SavedTasks(t *testing.T) {
	store := prefs.NewMemory()
	require.NoError(t, store.Set(prefs.KeyTodos,
		`[{"id":"a1","text":"buy milk","completed":true},{"id":"b2","text":"ship release","completed":false}]`))
	c := chromeWithStore(t, store)

	assert.Equal(t, []string{
		"Task Master",
		"",
		"[x] buy milk",
		"[ ] ship release",
		"",
		"1 of 2 done",
	}, c.WindowContent(apps.Todo))
}

func TestWindowContent_SavedNote(t *testing.T) {
	store := prefs.NewMemory()
	require.NoError(t, store.Set(prefs.KeyNotepad, "first line\r\nsecond line"))
	c := chromeWithStore(t, store)

	assert.Equal(t, []string{"first line", "second line"}, c.WindowContent(apps.Notepad))
}

func TestWindowContent_FallsBackToWidget(t *testing.T) {
	store := prefs.NewMemory()
	require.NoError(t, store.Set(prefs.KeyTodos, "not json"))
	require.NoError(t, store.Set(prefs.KeyNotepad, "   "))
	c := chromeWithStore(t, store)

	for _, id := range []apps.ID{apps.Todo, apps.Notepad, apps.Calculator} {
		d, err := apps.Default().Resolve(id)
		require.NoError(t, err)
		assert.Equal(t, d.Widget.Lines(), c.WindowContent(id), "app %s", id)
	}
}
