package shell

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownThemeOption is returned when a wallpaper or taskbar colour is
// not in the fixed palette.
var ErrUnknownThemeOption = errors.New("unknown theme option")

// Wallpaper is a selectable desktop background.
type Wallpaper struct {
	Name string
	URL  string
	// Color is the solid colour used where images cannot be drawn.
	Color string
}

// TaskbarColor is a selectable taskbar tint.
type TaskbarColor struct {
	Name  string
	Color string
}

// Theme is the persisted look of the desktop.
type Theme struct {
	Wallpaper    Wallpaper
	TaskbarColor TaskbarColor
}

var wallpapers = []Wallpaper{
	{Name: "Default Abstract", URL: "https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe", Color: "#1e1b4b"},
	{Name: "Mountain Lake", URL: "https://images.unsplash.com/photo-1472214103451-9374bd1c798e", Color: "#164e63"},
	{Name: "Neon City", URL: "https://images.unsplash.com/photo-1514525253440-b393452e6178", Color: "#4a044e"},
	{Name: "Minimal Dark", URL: "https://images.unsplash.com/photo-1507608616759-54f48f0af0ee", Color: "#111827"},
}

var taskbarColors = []TaskbarColor{
	{Name: "Slate", Color: "#0f172a"},
	{Name: "Blue", Color: "#1e3a8a"},
	{Name: "Purple", Color: "#581c87"},
	{Name: "Red", Color: "#7f1d1d"},
	{Name: "Black", Color: "#000000"},
}

// Wallpapers returns the wallpaper palette in display order.
func Wallpapers() []Wallpaper {
	return append([]Wallpaper(nil), wallpapers...)
}

// TaskbarColors returns the taskbar colour palette in display order.
func TaskbarColors() []TaskbarColor {
	return append([]TaskbarColor(nil), taskbarColors...)
}

// DefaultTheme is the look of a fresh installation.
func DefaultTheme() Theme {
	return Theme{Wallpaper: wallpapers[0], TaskbarColor: taskbarColors[0]}
}

func findWallpaper(name string) (Wallpaper, error) {
	for _, w := range wallpapers {
		if strings.EqualFold(w.Name, strings.TrimSpace(name)) {
			return w, nil
		}
	}
	return Wallpaper{}, fmt.Errorf("%w: wallpaper %q", ErrUnknownThemeOption, name)
}

func findTaskbarColor(name string) (TaskbarColor, error) {
	for _, c := range taskbarColors {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return TaskbarColor{}, fmt.Errorf("%w: taskbar colour %q", ErrUnknownThemeOption, name)
}
