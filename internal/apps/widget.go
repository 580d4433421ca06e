package apps

// Widget is the content hosted inside an application window. The set of
// implementations is closed; the registry binds one to each id so callers
// never dispatch on runtime types.
type Widget interface {
	// Lines returns the static content drawn inside the window body.
	Lines() []string
	widget()
}

type staticWidget struct {
	lines []string
}

func (w staticWidget) Lines() []string {
	out := make([]string, len(w.lines))
	copy(out, w.lines)
	return out
}

func (staticWidget) widget() {}

func widgetFor(id ID) Widget {
	switch id {
	case Calculator:
		return staticWidget{lines: []string{
			"                 0",
			" C   ±   %   ÷",
			" 7   8   9   ×",
			" 4   5   6   -",
			" 1   2   3   +",
			" 0       .   =",
		}}
	case Todo:
		return staticWidget{lines: []string{
			"Task Master",
			"",
			"No tasks yet. Get productive!",
		}}
	case Timer:
		return staticWidget{lines: []string{
			"  work",
			"  25:00",
			"",
			"  [ start ]  [ reset ]",
		}}
	case Notepad:
		return staticWidget{lines: []string{
			"Start typing...",
		}}
	case Paint:
		return staticWidget{lines: []string{
			"brush: 5   colour: #000000",
			"",
			"[ clear ]",
		}}
	case Terminal:
		return staticWidget{lines: []string{
			"AnshOS v1.0.0 [Snapshot]",
			`Type "help" for a list of commands.`,
			"user@anshos:~$ ",
		}}
	case Snake:
		return staticWidget{lines: []string{
			"Score: 0",
			"",
			"Press start to play",
		}}
	case Settings:
		return staticWidget{lines: []string{
			"Desktop Wallpaper",
			"Taskbar Color",
		}}
	default:
		return staticWidget{lines: []string{"Error"}}
	}
}
