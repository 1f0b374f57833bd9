package views

import (
	"image"
	"sync"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-viewer/internal/controllers"
	"photo-viewer/internal/eventbus"
	"photo-viewer/internal/logger"
	"photo-viewer/internal/models"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(e eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func (p *recordingPublisher) last() eventbus.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

func newTestView(t *testing.T) (*MainView, *recordingPublisher, *bool) {
	t.Helper()
	test.NewApp()
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)

	pub := &recordingPublisher{}
	quit := false
	view := NewMainView(w, pub, logger.Nop(), func() { quit = true })
	return view, pub, &quit
}

func menuItem(t *testing.T, w fyne.Window, menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, m := range w.MainMenu().Items {
		if m.Label != menu {
			continue
		}
		for _, item := range m.Items {
			if item.Label == label {
				return item
			}
		}
	}
	t.Fatalf("menu item %s > %s not found", menu, label)
	return nil
}

func TestMainView_Menus(t *testing.T) {
	view, _, _ := newTestView(t)
	w := view.window

	labels := map[string][]string{}
	for _, m := range w.MainMenu().Items {
		for _, item := range m.Items {
			if !item.IsSeparator {
				labels[m.Label] = append(labels[m.Label], item.Label)
			}
		}
	}

	assert.Equal(t, []string{"Open…", "Open Folder…", "Save As…", "Quit"}, labels["File"])
	assert.Equal(t, []string{"Rotate 90° Left", "Rotate 90° Right"}, labels["Rotate"])
	assert.Equal(t, []string{"Hue", "Saturation", "Brightness", "Contrast", "Restore to Original"}, labels["Color Adjust"])
}

func TestMainView_RotateMenuPublishes(t *testing.T) {
	view, pub, _ := newTestView(t)

	menuItem(t, view.window, "Rotate", "Rotate 90° Left").Action()
	assert.Equal(t, eventbus.RotateLeft, pub.last().Topic)

	menuItem(t, view.window, "Rotate", "Rotate 90° Right").Action()
	assert.Equal(t, eventbus.RotateRight, pub.last().Topic)
}

func TestMainView_ColorMenuShowsPanel(t *testing.T) {
	view, pub, _ := newTestView(t)

	menuItem(t, view.window, "Color Adjust", "Contrast").Action()
	assert.True(t, view.colors.Visible())

	menuItem(t, view.window, "Color Adjust", "Restore to Original").Action()
	assert.Equal(t, eventbus.RestoreColors, pub.last().Topic)
}

func TestMainView_ArrowKeysNavigate(t *testing.T) {
	view, pub, _ := newTestView(t)
	onKey := view.window.Canvas().OnTypedKey()
	require.NotNil(t, onKey)

	onKey(&fyne.KeyEvent{Name: fyne.KeyRight})
	assert.Equal(t, eventbus.Next, pub.last().Topic)

	onKey(&fyne.KeyEvent{Name: fyne.KeyLeft})
	assert.Equal(t, eventbus.Previous, pub.last().Topic)
}

func TestMainView_FocusLossReleasesModifiers(t *testing.T) {
	view, pub, _ := newTestView(t)
	onKey := view.window.Canvas().OnTypedKey()
	require.NotNil(t, onKey)

	view.modifiers.keyDown(&fyne.KeyEvent{Name: desktop.KeyControlLeft})
	onKey(&fyne.KeyEvent{Name: fyne.KeyRight})
	assert.Zero(t, pub.count())

	lifecycle, ok := fyne.CurrentApp().Lifecycle().(interface{ OnExitedForeground() func() })
	require.True(t, ok)
	require.NotNil(t, lifecycle.OnExitedForeground())
	lifecycle.OnExitedForeground()()

	onKey(&fyne.KeyEvent{Name: fyne.KeyRight})
	assert.Equal(t, eventbus.Next, pub.last().Topic)
}

func TestMainView_QuitMenuPublishesAndQuitRunsCallback(t *testing.T) {
	view, pub, quit := newTestView(t)

	menuItem(t, view.window, "File", "Quit").Action()
	assert.Equal(t, eventbus.Quit, pub.last().Topic)
	assert.False(t, *quit, "quitting is left to the controller")

	view.Quit()
	assert.True(t, *quit)
}

func TestMainView_SliderChangePublishes(t *testing.T) {
	view, pub, _ := newTestView(t)

	view.colors.Slider(models.Hue).SetValue(0.4)

	e := pub.last()
	assert.Equal(t, eventbus.SetColor, e.Topic)
	assert.Equal(t, models.Hue, e.Param)
	assert.InDelta(t, 0.4, e.Value, 0.001)
}

func TestMainView_ControllerUpdates(t *testing.T) {
	view, pub, _ := newTestView(t)
	published := len(pub.events)

	view.SetColorSliders(models.ColorAdjust{Brightness: 0.2})
	view.ShowImage(image.NewNRGBA(image.Rect(0, 0, 2, 2)))
	view.SetBusy(true)
	view.SetNavigation(true, false)
	view.SetStatus(controllers.Status{State: controllers.Displayed, Name: "a.png", Index: 1, Count: 1})

	assert.Len(t, pub.events, published, "programmatic slider moves are not user events")
	assert.True(t, view.display.HasImage())
	assert.True(t, view.display.IsBusy())
	assert.Equal(t, "a.png", view.statusBar.GetName())
	assert.Equal(t, "a.png - "+AppTitle, view.window.Title())
}

func TestFilterExtensions(t *testing.T) {
	exts := filterExtensions()

	assert.Contains(t, exts, ".jpg")
	assert.Contains(t, exts, ".JPG")
	assert.Len(t, exts, 10)

	filter := storage.NewExtensionFileFilter(exts)
	assert.True(t, filter.Matches(storage.NewFileURI("/tmp/a.PNG")))
}
