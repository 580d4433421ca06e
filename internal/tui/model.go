package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"

	"github.com/1broseidon/anshos/internal/apps"
	"github.com/1broseidon/anshos/internal/shell"
	"github.com/1broseidon/anshos/internal/wm"
)

const doubleClickInterval = 500 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// model is the root bubbletea model for the desktop.
type model struct {
	mgr         *wm.Manager
	chrome      *shell.Chrome
	registry    *apps.Registry
	keys        KeyMap
	cell        wm.Size
	now         func() time.Time
	defaultUser string

	width  int
	height int
	clock  time.Time

	login    *loginForm
	loginErr string

	menuIndex     int
	selectedIcon  apps.ID
	lastIconClick time.Time
	showHelp      bool
	status        string
}

func newModel(opts Options) model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	cell := wm.Size{Width: opts.CellWidth, Height: opts.CellHeight}
	if cell.Width <= 0 {
		cell.Width = 10
	}
	if cell.Height <= 0 {
		cell.Height = 20
	}
	m := model{
		mgr:         opts.Manager,
		chrome:      opts.Chrome,
		registry:    opts.Registry,
		keys:        DefaultKeyMap(),
		cell:        cell,
		now:         now,
		defaultUser: opts.DefaultUser,
		clock:       now(),
	}
	if m.chrome.Locked() {
		m.login = newLoginForm(m.defaultUser)
	}
	return m
}

func (m model) frame() frame {
	return frame{
		cols:     m.width,
		rows:     m.height,
		cell:     m.cell,
		workArea: m.mgr.WorkArea(),
		stacking: m.mgr.Stacking(),
		icons:    m.chrome.DesktopIcons(),
		menuOpen: m.chrome.StartMenuOpen(),
	}
}

func (m model) rotated() bool {
	return shell.NeedsRotation(m.width*m.cell.Width, m.height*m.cell.Height)
}

// report records a failed command for the taskbar. Missing windows are
// routine (a window closed under the pointer) and are not shown.
func (m *model) report(err error) {
	if err == nil || errors.Is(err, wm.ErrWindowNotFound) {
		return
	}
	m.status = err.Error()
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	if m.login != nil {
		return tea.Batch(tick(), m.login.form.Init())
	}
	return tick()
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		f := m.frame()
		m.mgr.SetWorkArea(wm.WorkArea(f.layoutSize(), m.cell.Height))
		return m, nil
	case tickMsg:
		m.clock = time.Time(msg)
		return m, tick()
	}

	if m.chrome.Locked() {
		return m.updateLogin(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if m.rotated() {
			return m, nil
		}
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.login == nil {
		m.login = newLoginForm(m.defaultUser)
		return m, m.login.form.Init()
	}

	form, cmd := m.login.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.login.form = f
	}

	switch m.login.form.State {
	case huh.StateCompleted:
		if err := m.chrome.Login(m.login.user, m.login.pin); err != nil {
			m.loginErr = "Invalid user or PIN"
			m.login = newLoginForm(m.login.user)
			return m, m.login.form.Init()
		}
		m.login = nil
		m.loginErr = ""
		m.status = ""
		return m, nil
	case huh.StateAborted:
		m.login = newLoginForm(m.defaultUser)
		return m, m.login.form.Init()
	}
	return m, cmd
}

func (m model) lock() (tea.Model, tea.Cmd) {
	user := m.chrome.User()
	if user == "" {
		user = m.defaultUser
	}
	m.chrome.Lock()
	m.login = newLoginForm(user)
	return m, m.login.form.Init()
}

func (m model) logout() (tea.Model, tea.Cmd) {
	m.chrome.Logout()
	m.selectedIcon = ""
	m.menuIndex = 0
	m.login = newLoginForm(m.defaultUser)
	return m, m.login.form.Init()
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Lock):
		return m.lock()
	}

	if m.chrome.StartMenuOpen() {
		return m.handleMenuKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.StartMenu):
		m.menuIndex = 0
		m.report(m.chrome.ToggleStartMenu())
	case key.Matches(msg, m.keys.CycleWindows):
		m.cycleWindows()
	case key.Matches(msg, m.keys.CloseWindow):
		if w, ok := m.mgr.Focused(); ok {
			m.report(m.mgr.Close(w.ID))
		}
	case key.Matches(msg, m.keys.Minimize):
		if w, ok := m.mgr.Focused(); ok {
			m.report(m.mgr.ToggleMinimize(w.ID))
		}
	case key.Matches(msg, m.keys.Maximize):
		if w, ok := m.mgr.Focused(); ok {
			m.report(m.mgr.ToggleMaximize(w.ID))
		}
	case key.Matches(msg, m.keys.NextWallpaper):
		m.report(m.nextWallpaper())
	case key.Matches(msg, m.keys.NextTaskbar):
		m.report(m.nextTaskbarColor())
	}
	return m, nil
}

func (m model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := len(m.chrome.DesktopIcons())
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case key.Matches(msg, m.keys.Down):
		if m.menuIndex < last {
			m.menuIndex++
		}
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.StartMenu):
		m.chrome.CloseStartMenu()
	case key.Matches(msg, m.keys.Select):
		if m.menuIndex == last {
			return m.logout()
		}
		icons := m.chrome.DesktopIcons()
		_, err := m.chrome.OpenApp(icons[m.menuIndex].ID)
		m.report(err)
	}
	return m, nil
}

// cycleWindows focuses the window created after the focused one, wrapping
// around. Minimized windows are included and restored when reached.
func (m *model) cycleWindows() {
	windows := m.mgr.Windows()
	if len(windows) == 0 {
		return
	}
	next := 0
	if top, ok := wm.Topmost(windows); ok {
		for i, w := range windows {
			if w.ID == top.ID {
				next = (i + 1) % len(windows)
				break
			}
		}
	}
	m.report(m.mgr.Focus(windows[next].ID))
}

func (m *model) nextWallpaper() error {
	current := m.chrome.Theme().Wallpaper.Name
	options := shell.Wallpapers()
	for i, w := range options {
		if w.Name == current {
			return m.chrome.SetWallpaper(options[(i+1)%len(options)].Name)
		}
	}
	return m.chrome.SetWallpaper(options[0].Name)
}

func (m *model) nextTaskbarColor() error {
	current := m.chrome.Theme().TaskbarColor.Name
	options := shell.TaskbarColors()
	for i, c := range options {
		if c.Name == current {
			return m.chrome.SetTaskbarColor(options[(i+1)%len(options)].Name)
		}
	}
	return m.chrome.SetTaskbarColor(options[0].Name)
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	f := m.frame()

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.mgr.DragPhase() == wm.DragDragging {
			m.mgr.Drag(f.pointer(msg.X, msg.Y))
		}
		return m, nil
	case tea.MouseActionRelease:
		m.mgr.Release()
		return m, nil
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
	default:
		return m, nil
	}

	m.status = ""
	t := f.hitTest(msg.X, msg.Y)
	switch t.kind {
	case targetStartButton, targetMenu, targetMenuApp, targetMenuLogout:
	default:
		m.chrome.CloseStartMenu()
	}

	switch t.kind {
	case targetStartButton:
		m.menuIndex = 0
		m.report(m.chrome.ToggleStartMenu())
	case targetTaskbarApp:
		_, err := m.chrome.ClickTaskbar(t.appID)
		m.report(err)
	case targetMenuApp:
		_, err := m.chrome.OpenApp(t.appID)
		m.report(err)
	case targetMenuLogout:
		return m.logout()
	case targetWindow:
		m.report(m.mgr.Press(t.windowID, f.pointer(msg.X, msg.Y), t.region))
		switch t.button {
		case buttonMinimize:
			m.report(m.mgr.ToggleMinimize(t.windowID))
		case buttonMaximize:
			m.report(m.mgr.ToggleMaximize(t.windowID))
		case buttonClose:
			m.report(m.mgr.Close(t.windowID))
		}
	case targetIcon:
		now := m.now()
		if m.selectedIcon == t.appID && now.Sub(m.lastIconClick) <= doubleClickInterval {
			_, err := m.chrome.OpenApp(t.appID)
			m.report(err)
			m.selectedIcon = ""
			break
		}
		m.selectedIcon = t.appID
		m.lastIconClick = now
	case targetDesktop:
		m.selectedIcon = ""
	}
	return m, nil
}
