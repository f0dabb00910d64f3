package platform

// Event is one display-server notification delivered to the window manager.
type Event interface {
	eventName() string
}

// WindowCreated is sent when a new child of the root window appears.
type WindowCreated struct {
	ID WindowID
}

// WindowDestroyed is sent when a child of the root window is destroyed.
type WindowDestroyed struct {
	ID WindowID
}

// KeyPress is a grabbed key chord. Target is the root child under the
// pointer, or 0.
type KeyPress struct {
	Modifiers uint16
	Keycode   uint8
	Target    WindowID
}

// ButtonPress is a grabbed pointer button press with root-relative pointer
// coordinates.
type ButtonPress struct {
	Modifiers uint16
	Button    uint8
	Target    WindowID
	RootX     int
	RootY     int
}

// Motion is a pointer motion with root-relative coordinates.
type Motion struct {
	RootX int
	RootY int
}

// ButtonRelease ends any pointer gesture.
type ButtonRelease struct{}

func (WindowCreated) eventName() string   { return "window_created" }
func (WindowDestroyed) eventName() string { return "window_destroyed" }
func (KeyPress) eventName() string        { return "key_press" }
func (ButtonPress) eventName() string     { return "button_press" }
func (Motion) eventName() string          { return "motion" }
func (ButtonRelease) eventName() string   { return "button_release" }

// EventName returns a short stable name for logging.
func EventName(ev Event) string {
	if ev == nil {
		return "nil"
	}
	return ev.eventName()
}
