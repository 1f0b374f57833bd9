package views

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"photo-viewer/internal/eventbus"
)

var modifierKeys = map[fyne.KeyName]bool{
	desktop.KeyShiftLeft:    true,
	desktop.KeyShiftRight:   true,
	desktop.KeyControlLeft:  true,
	desktop.KeyControlRight: true,
	desktop.KeyAltLeft:      true,
	desktop.KeyAltRight:     true,
	desktop.KeySuperLeft:    true,
	desktop.KeySuperRight:   true,
}

// modifierState tracks which modifier keys are held so that plain arrow keys
// can be told apart from modified ones
type modifierState struct {
	pressed map[fyne.KeyName]bool
}

func newModifierState() *modifierState {
	return &modifierState{pressed: make(map[fyne.KeyName]bool)}
}

func (m *modifierState) keyDown(ev *fyne.KeyEvent) {
	if modifierKeys[ev.Name] {
		m.pressed[ev.Name] = true
	}
}

func (m *modifierState) keyUp(ev *fyne.KeyEvent) {
	delete(m.pressed, ev.Name)
}

// reset forgets every held key. Key-up events are not delivered while the
// window is unfocused.
func (m *modifierState) reset() {
	clear(m.pressed)
}

func (m *modifierState) held() bool {
	return len(m.pressed) > 0
}

// navigationTopic maps an unmodified arrow key to a navigation event
func navigationTopic(key fyne.KeyName, modified bool) (eventbus.Topic, bool) {
	if modified {
		return "", false
	}
	switch key {
	case fyne.KeyLeft:
		return eventbus.Previous, true
	case fyne.KeyRight:
		return eventbus.Next, true
	default:
		return "", false
	}
}

func shortcut(key fyne.KeyName) *desktop.CustomShortcut {
	return &desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault}
}
