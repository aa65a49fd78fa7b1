package tui

import "github.com/charmbracelet/bubbles/key"

// GlobalKeys are always active.
type GlobalKeys struct {
	Quit   key.Binding
	Help   key.Binding
	Ingest key.Binding
	Tab1   key.Binding
	Tab2   key.Binding
	Tab3   key.Binding
	Tab4   key.Binding
	Tab5   key.Binding
}

var globalKeys = GlobalKeys{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+q"),
		key.WithHelp("Ctrl+q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+h"),
		key.WithHelp("Ctrl+h", "help"),
	),
	Ingest: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("Ctrl+n", "new task"),
	),
	Tab1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "Pipeline"),
	),
	Tab2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "Logs"),
	),
	Tab3: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "Pending"),
	),
	Tab4: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "Stats"),
	),
	Tab5: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "Settings"),
	),
}

// ListKeys navigate any vertical list.
type ListKeys struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding
}

var listKeys = ListKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("j/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/k", "navigate"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
}

// SubTabKeys cycle a tab's sub-tabs.
type SubTabKeys struct {
	Next key.Binding
	Prev key.Binding
}

var subTabKeys = SubTabKeys{
	Next: key.NewBinding(
		key.WithKeys("tab", "]"),
		key.WithHelp("Tab", "next sub-tab"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "["),
		key.WithHelp("Shift+Tab", "prev sub-tab"),
	),
}

// SheetKeys are active while the bottom sheet is open.
type SheetKeys struct {
	Expand   key.Binding
	Collapse key.Binding
	Close    key.Binding
}

var sheetKeys = SheetKeys{
	Expand: key.NewBinding(
		key.WithKeys("K", "pgup"),
		key.WithHelp("K", "expand"),
	),
	Collapse: key.NewBinding(
		key.WithKeys("J", "pgdown"),
		key.WithHelp("J", "collapse"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("Esc", "close"),
	),
}

// LogFilterKeys are active on the Logs tab.
type LogFilterKeys struct {
	Search      key.Binding
	CycleStatus key.Binding
	CycleAgent  key.Binding
}

var logFilterKeys = LogFilterKeys{
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	CycleStatus: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status filter"),
	),
	CycleAgent: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "agent filter"),
	),
}

// PendingKeys are active on the Pending tab.
type PendingKeys struct {
	Respond    key.Binding
	Approve    key.Binding
	Debug      key.Binding
	AttachImg  key.Binding
	RemoveImg  key.Binding
	Submit     key.Binding
	CancelEdit key.Binding
}

var pendingKeys = PendingKeys{
	Respond: key.NewBinding(
		key.WithKeys("r", "enter"),
		key.WithHelp("r", "respond"),
	),
	Approve: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "approve"),
	),
	Debug: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "release gate"),
	),
	AttachImg: key.NewBinding(
		key.WithKeys("ctrl+a"),
		key.WithHelp("Ctrl+a", "attach image"),
	),
	RemoveImg: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("Ctrl+x", "remove image"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("Ctrl+s", "send"),
	),
	CancelEdit: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
}

// SettingsViewKeys are active on the Settings tab.
type SettingsViewKeys struct {
	CycleValue key.Binding
	Save       key.Binding
	Add        key.Binding
	Delete     key.Binding
	Restart    key.Binding
	N8NStart   key.Binding
	N8NStop    key.Binding
	N8NRestart key.Binding
	ToggleDbg  key.Binding
}

var settingsViewKeys = SettingsViewKeys{
	CycleValue: key.NewBinding(
		key.WithKeys("left", "right", "h", "l"),
		key.WithHelp("h/l", "change adapter"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("Ctrl+s", "save"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add repo"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete repo"),
	),
	Restart: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "restart backend"),
	),
	N8NStart: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start n8n"),
	),
	N8NStop: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "stop n8n"),
	),
	N8NRestart: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restart n8n"),
	),
	ToggleDbg: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "toggle debug mode"),
	),
}

// OverlayKeys are active when an overlay form is shown.
type OverlayKeys struct {
	Save   key.Binding
	Cancel key.Binding
	Tab    key.Binding
}

var overlayKeys = OverlayKeys{
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("Ctrl+s", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next field"),
	),
}
