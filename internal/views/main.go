package views

import (
	"fmt"
	"image"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"

	"photo-viewer/internal/controllers"
	"photo-viewer/internal/eventbus"
	"photo-viewer/internal/files"
	"photo-viewer/internal/logger"
	"photo-viewer/internal/models"
	"photo-viewer/internal/views/components"
)

const (
	AppTitle        = "Photo Viewer"
	defaultSaveName = "image.png"
)

type Publisher interface {
	Publish(event eventbus.Event)
}

// MainView is the viewer window. It turns user input into broker events and
// renders controller state; every method runs on the UI thread.
type MainView struct {
	window    fyne.Window
	publisher Publisher
	logger    logger.Logger
	quit      func()

	display   *components.ImageDisplay
	colors    *components.ColorPanel
	statusBar *components.StatusBar
	modifiers *modifierState
}

func NewMainView(window fyne.Window, publisher Publisher, log logger.Logger, quit func()) *MainView {
	view := &MainView{
		window:    window,
		publisher: publisher,
		logger:    log,
		quit:      quit,
		modifiers: newModifierState(),
	}

	view.initializeComponents()
	view.buildLayout()
	view.buildMenus()
	view.setupKeyboard()
	view.setupDragAndDrop()

	window.SetCloseIntercept(func() {
		view.send(eventbus.Quit)
	})
	return view
}

func (mv *MainView) initializeComponents() {
	mv.display = components.NewImageDisplay()
	mv.colors = components.NewColorPanel()
	mv.statusBar = components.NewStatusBar()

	mv.display.SetPreviousHandler(func() { mv.send(eventbus.Previous) })
	mv.display.SetNextHandler(func() { mv.send(eventbus.Next) })

	mv.colors.SetChangeHandler(func(param models.ColorParameter, value float64) {
		mv.publisher.Publish(eventbus.Event{Topic: eventbus.SetColor, Param: param, Value: value})
	})
	mv.colors.SetRestoreHandler(func() { mv.send(eventbus.RestoreColors) })
}

func (mv *MainView) buildLayout() {
	bottom := container.NewVBox(
		mv.colors.GetContainer(),
		mv.statusBar.GetContainer(),
	)
	mv.window.SetContent(container.NewBorder(nil, bottom, nil, nil, mv.display.GetContainer()))
	mv.window.SetTitle(AppTitle)
}

func (mv *MainView) buildMenus() {
	openItem := fyne.NewMenuItem("Open…", mv.ShowOpenDialog)
	openItem.Shortcut = shortcut(fyne.KeyO)
	saveItem := fyne.NewMenuItem("Save As…", mv.ShowSaveDialog)
	saveItem.Shortcut = shortcut(fyne.KeyS)
	quitItem := fyne.NewMenuItem("Quit", func() { mv.send(eventbus.Quit) })
	quitItem.Shortcut = shortcut(fyne.KeyQ)
	quitItem.IsQuit = true

	fileMenu := fyne.NewMenu("File",
		openItem,
		fyne.NewMenuItem("Open Folder…", mv.ShowFolderDialog),
		fyne.NewMenuItemSeparator(),
		saveItem,
		fyne.NewMenuItemSeparator(),
		quitItem,
	)

	rotateLeft := fyne.NewMenuItem("Rotate 90° Left", func() { mv.send(eventbus.RotateLeft) })
	rotateLeft.Shortcut = shortcut(fyne.KeyLeft)
	rotateRight := fyne.NewMenuItem("Rotate 90° Right", func() { mv.send(eventbus.RotateRight) })
	rotateRight.Shortcut = shortcut(fyne.KeyRight)
	rotateMenu := fyne.NewMenu("Rotate", rotateLeft, rotateRight)

	colorItems := make([]*fyne.MenuItem, 0, len(models.ColorParameters)+2)
	for _, param := range models.ColorParameters {
		colorItems = append(colorItems, fyne.NewMenuItem(string(param), func() {
			mv.ShowColorSlider(param)
		}))
	}
	colorItems = append(colorItems,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Restore to Original", func() { mv.send(eventbus.RestoreColors) }),
	)
	colorMenu := fyne.NewMenu("Color Adjust", colorItems...)

	mv.window.SetMainMenu(fyne.NewMainMenu(fileMenu, rotateMenu, colorMenu))

	for _, item := range []*fyne.MenuItem{openItem, saveItem, quitItem, rotateLeft, rotateRight} {
		action := item.Action
		mv.window.Canvas().AddShortcut(item.Shortcut, func(fyne.Shortcut) { action() })
	}
}

func (mv *MainView) setupKeyboard() {
	if deskCanvas, ok := mv.window.Canvas().(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(mv.modifiers.keyDown)
		deskCanvas.SetOnKeyUp(mv.modifiers.keyUp)
	}
	if app := fyne.CurrentApp(); app != nil {
		app.Lifecycle().SetOnExitedForeground(mv.modifiers.reset)
		app.Lifecycle().SetOnEnteredForeground(mv.modifiers.reset)
	}

	mv.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if topic, ok := navigationTopic(ev.Name, mv.modifiers.held()); ok {
			mv.send(topic)
		}
	})
}

func (mv *MainView) setupDragAndDrop() {
	mv.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		urls := make([]string, 0, len(uris))
		for _, uri := range uris {
			urls = append(urls, uri.String())
		}
		mv.logger.Debug("MainView", "items dropped", map[string]interface{}{
			"count": len(urls),
		})
		mv.publisher.Publish(eventbus.Event{Topic: eventbus.Drop, URLs: urls})
	})
}

func (mv *MainView) send(topic eventbus.Topic) {
	mv.publisher.Publish(eventbus.Event{Topic: topic})
}

// ShowOpenDialog lets the user pick an image file
func (mv *MainView) ShowOpenDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mv.logger.Error("MainView", err, nil)
			return
		}
		if reader == nil {
			return
		}
		url := reader.URI().String()
		reader.Close()

		mv.publisher.Publish(eventbus.Event{Topic: eventbus.Open, URLs: []string{url}})
	}, mv.window)

	d.SetFilter(storage.NewExtensionFileFilter(filterExtensions()))
	mv.startInHome(d)
	d.Show()
}

// ShowFolderDialog adds every image of a chosen folder
func (mv *MainView) ShowFolderDialog() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			mv.logger.Error("MainView", err, nil)
			return
		}
		if uri == nil {
			return
		}
		mv.publisher.Publish(eventbus.Event{Topic: eventbus.OpenFolder, Path: uri.Path()})
	}, mv.window)
}

// ShowSaveDialog asks for a destination for the rendered image
func (mv *MainView) ShowSaveDialog() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mv.logger.Error("MainView", err, nil)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		mv.publisher.Publish(eventbus.Event{Topic: eventbus.SaveAs, Path: path})
	}, mv.window)

	d.SetFileName(defaultSaveName)
	mv.startInHome(d)
	d.Show()
}

type locatable interface {
	SetLocation(fyne.ListableURI)
}

func (mv *MainView) startInHome(d locatable) {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	location, err := storage.ListerForURI(storage.NewFileURI(home))
	if err != nil {
		mv.logger.Debug("MainView", "home directory not listable", map[string]interface{}{
			"home": home,
		})
		return
	}
	d.SetLocation(location)
}

// ShowColorSlider reveals the color panel and focuses one slider
func (mv *MainView) ShowColorSlider(param models.ColorParameter) {
	mv.colors.Show()
	if slider := mv.colors.Slider(param); slider != nil {
		mv.window.Canvas().Focus(slider)
	}
}

func (mv *MainView) ShowImage(img image.Image) {
	mv.display.SetImage(img)
}

func (mv *MainView) SetBusy(busy bool) {
	mv.display.SetBusy(busy)
}

func (mv *MainView) SetColorSliders(adjust models.ColorAdjust) {
	mv.colors.SetValues(adjust)
}

func (mv *MainView) SetNavigation(canPrevious, canNext bool) {
	mv.display.SetNavigation(canPrevious, canNext)
}

func (mv *MainView) SetStatus(status controllers.Status) {
	name, position, detail := formatStatus(status)
	mv.statusBar.SetInfo(name, position, detail)

	if status.Count == 0 {
		mv.window.SetTitle(AppTitle)
		return
	}
	mv.window.SetTitle(fmt.Sprintf("%s - %s", status.Name, AppTitle))
}

func (mv *MainView) Quit() {
	if mv.quit != nil {
		mv.quit()
	}
}

// filterExtensions lists the admitted extensions in both cases since the
// dialog filter matches them exactly
func filterExtensions() []string {
	exts := make([]string, 0, len(files.ImageExtensions)*2)
	for _, ext := range files.ImageExtensions {
		exts = append(exts, ext, strings.ToUpper(ext))
	}
	return exts
}
