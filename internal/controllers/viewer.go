package controllers

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/google/uuid"

	"photo-viewer/internal/config"
	"photo-viewer/internal/eventbus"
	"photo-viewer/internal/files"
	"photo-viewer/internal/logger"
	"photo-viewer/internal/models"
	"photo-viewer/internal/pipeline"
	"photo-viewer/internal/render"
	"photo-viewer/internal/services"
)

type LoadState int

const (
	Idle LoadState = iota
	Loading
	Displayed
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Displayed:
		return "displayed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status is what the status bar shows about the current selection
type Status struct {
	State  LoadState
	Name   string
	Index  int
	Count  int
	Width  int
	Height int
	Exif   services.ExifSummary
}

// View is the part of the window the controller drives. All methods are
// called on the UI thread.
type View interface {
	ShowImage(img image.Image)
	SetBusy(busy bool)
	SetColorSliders(adjust models.ColorAdjust)
	SetNavigation(canPrevious, canNext bool)
	SetStatus(status Status)
	Quit()
}

type Submitter interface {
	Submit(task pipeline.Task, complete func(pipeline.Result)) error
	Stop() int
}

type Saver interface {
	SavePNG(ctx context.Context, path string, img image.Image) error
}

// ViewerController owns the image list, the render surface and the load
// state machine. Every method must run on the UI thread.
type ViewerController struct {
	list    *models.ImageList
	surface *render.Surface
	loader  Submitter
	saver   Saver
	view    View
	logger  logger.Logger
	ctx     context.Context

	stalePolicy string
	state       LoadState
	generation  uint64
	outstanding int

	displayedID uuid.UUID
	decoded     *services.DecodedImage
}

func NewViewerController(
	ctx context.Context,
	surface *render.Surface,
	loader Submitter,
	saver Saver,
	stalePolicy string,
	log logger.Logger,
) *ViewerController {
	if stalePolicy == "" {
		stalePolicy = config.StaleDiscard
	}
	return &ViewerController{
		list:        models.NewImageList(),
		surface:     surface,
		loader:      loader,
		saver:       saver,
		logger:      log,
		ctx:         ctx,
		stalePolicy: stalePolicy,
	}
}

func (vc *ViewerController) SetView(view View) {
	vc.view = view
	vc.syncView()
}

// Connect routes every viewer topic on the broker to its handler
func (vc *ViewerController) Connect(broker *eventbus.Broker) {
	routes := map[eventbus.Topic]eventbus.Handler{
		eventbus.Open:          func(e eventbus.Event) { vc.AddURLs(e.URLs) },
		eventbus.Drop:          func(e eventbus.Event) { vc.AddURLs(e.URLs) },
		eventbus.OpenFolder:    func(e eventbus.Event) { vc.OpenFolder(e.Path) },
		eventbus.Next:          func(eventbus.Event) { vc.Next() },
		eventbus.Previous:      func(eventbus.Event) { vc.Previous() },
		eventbus.RotateLeft:    func(eventbus.Event) { vc.RotateLeft() },
		eventbus.RotateRight:   func(eventbus.Event) { vc.RotateRight() },
		eventbus.SetColor:      func(e eventbus.Event) { vc.SetColor(e.Param, e.Value) },
		eventbus.RestoreColors: func(eventbus.Event) { vc.RestoreColors() },
		eventbus.SaveAs:        func(e eventbus.Event) { vc.SaveAs(e.Path) },
		eventbus.Quit:          func(eventbus.Event) { vc.Quit() },
	}
	for _, topic := range eventbus.Topics {
		handler, ok := routes[topic]
		if !ok {
			vc.logger.Warning("ViewerController", "topic has no route", map[string]interface{}{
				"topic": string(topic),
			})
			continue
		}
		broker.Connect(topic, handler)
	}
}

func (vc *ViewerController) List() *models.ImageList {
	return vc.list
}

func (vc *ViewerController) State() LoadState {
	return vc.state
}

func (vc *ViewerController) Outstanding() int {
	return vc.outstanding
}

// AddPaths admits local paths, typically from the command line
func (vc *ViewerController) AddPaths(paths []string) int {
	urls := make([]string, 0, len(paths))
	for _, path := range paths {
		url, err := files.ToURL(path)
		if err != nil {
			vc.logger.Error("ViewerController", err, map[string]interface{}{
				"path": path,
			})
			continue
		}
		urls = append(urls, url)
	}
	return vc.AddURLs(urls)
}

// AddURLs appends every admitted URL to the list and loads the last one added
func (vc *ViewerController) AddURLs(urls []string) int {
	added := 0
	for _, url := range urls {
		if !files.IsValidImageFile(url) {
			vc.logger.Debug("ViewerController", "skipping unsupported file", map[string]interface{}{
				"url": url,
			})
			continue
		}
		vc.list.AddImage(url)
		added++
	}

	if added > 0 {
		vc.logger.Info("ViewerController", "images added", map[string]interface{}{
			"added": added,
			"total": vc.list.Len(),
		})
		vc.loadCurrent()
	}
	return added
}

func (vc *ViewerController) OpenFolder(dir string) int {
	paths, err := files.ListImages(dir)
	if err != nil {
		vc.logger.Error("ViewerController", err, map[string]interface{}{
			"folder": dir,
		})
		return 0
	}
	return vc.AddPaths(paths)
}

func (vc *ViewerController) Next() {
	if vc.list.Len() == 0 || vc.list.IsAtEnd() {
		return
	}
	if err := vc.list.GoNext(); err != nil {
		vc.logger.Error("ViewerController", err, nil)
		return
	}
	vc.loadCurrent()
}

func (vc *ViewerController) Previous() {
	if vc.list.Len() == 0 || vc.list.IsAtBeginning() {
		return
	}
	if err := vc.list.GoPrevious(); err != nil {
		vc.logger.Error("ViewerController", err, nil)
		return
	}
	vc.loadCurrent()
}

func (vc *ViewerController) loadCurrent() {
	current, err := vc.list.Current()
	if err != nil {
		return
	}

	vc.generation++
	task := pipeline.Task{
		ImageID:    current.ID(),
		URL:        current.URL(),
		Generation: vc.generation,
	}

	if err := vc.loader.Submit(task, vc.complete); err != nil {
		vc.logger.Error("ViewerController", err, map[string]interface{}{
			"url": current.URL(),
		})
		return
	}

	vc.outstanding++
	vc.state = Loading
	vc.syncView()
}

func (vc *ViewerController) complete(result pipeline.Result) {
	vc.outstanding--
	stale := result.Task.Generation != vc.generation

	fields := map[string]interface{}{
		"url":        result.Task.URL,
		"generation": result.Task.Generation,
	}

	switch {
	case stale && vc.stalePolicy == config.StaleDiscard:
		vc.logger.Debug("ViewerController", "discarding stale completion", fields)
	case result.Err != nil:
		vc.logger.Error("ViewerController", result.Err, fields)
		if !stale {
			vc.state = Failed
		}
	default:
		vc.display(result)
	}

	vc.syncView()
}

func (vc *ViewerController) display(result pipeline.Result) {
	vc.surface.SetPixels(result.Image.Image)
	vc.decoded = result.Image
	vc.displayedID = result.Task.ImageID
	vc.state = Displayed

	// A completion carries the transforms of the image it was submitted for.
	info, err := vc.list.Find(result.Task.ImageID)
	if err != nil {
		vc.logger.Error("ViewerController", err, nil)
		return
	}

	vc.surface.ApplyRotation(info.Degrees(), vc.surface.Center())
	vc.surface.ApplyColorAdjust(info.ColorAdjust())
	if vc.view != nil {
		vc.view.SetColorSliders(info.ColorAdjust())
	}
	vc.refresh()

	vc.logger.Info("ViewerController", "image displayed", map[string]interface{}{
		"url":         result.Task.URL,
		"width":       result.Image.Width,
		"height":      result.Image.Height,
		"duration_ms": result.Duration.Milliseconds(),
	})
}

func (vc *ViewerController) RotateLeft() {
	vc.rotateBy(-90)
}

func (vc *ViewerController) RotateRight() {
	vc.rotateBy(90)
}

func (vc *ViewerController) rotateBy(delta float64) {
	current, err := vc.list.Current()
	if err != nil {
		return
	}
	current.AddDegrees(delta)
	vc.surface.ApplyRotation(current.Degrees(), vc.surface.Center())
	vc.refresh()
}

// SetColor changes one parameter of the live bundle and stores the bundle on
// the current image
func (vc *ViewerController) SetColor(param models.ColorParameter, value float64) {
	adjust, err := vc.surface.ColorAdjust().With(param, value)
	if err != nil {
		vc.logger.Error("ViewerController", err, nil)
		return
	}
	vc.applyColorAdjust(adjust)
}

func (vc *ViewerController) SetHue(v float64)        { vc.SetColor(models.Hue, v) }
func (vc *ViewerController) SetSaturation(v float64) { vc.SetColor(models.Saturation, v) }
func (vc *ViewerController) SetBrightness(v float64) { vc.SetColor(models.Brightness, v) }
func (vc *ViewerController) SetContrast(v float64)   { vc.SetColor(models.Contrast, v) }

func (vc *ViewerController) RestoreColors() {
	vc.applyColorAdjust(models.ColorAdjust{})
	if current, err := vc.list.Current(); err == nil {
		current.SetColorAdjust(models.ColorAdjust{})
	}
	if vc.view != nil {
		vc.view.SetColorSliders(models.ColorAdjust{})
	}
}

func (vc *ViewerController) applyColorAdjust(adjust models.ColorAdjust) {
	if adjust == vc.surface.ColorAdjust() {
		return
	}
	vc.surface.ApplyColorAdjust(adjust)
	if current, err := vc.list.Current(); err == nil {
		current.SetColorAdjust(adjust)
	}
	vc.refresh()
}

// SaveAs writes the rendered image as PNG. Failures are logged only.
func (vc *ViewerController) SaveAs(path string) {
	if !vc.surface.HasPixels() {
		vc.logger.Debug("ViewerController", "nothing to save", map[string]interface{}{
			"path": path,
		})
		return
	}

	img, err := vc.surface.SnapshotPixels()
	if err != nil {
		vc.logger.Error("ViewerController", err, map[string]interface{}{
			"path": path,
		})
		return
	}

	start := time.Now()
	if err := vc.saver.SavePNG(vc.ctx, path, img); err != nil {
		vc.logger.Error("ViewerController", err, map[string]interface{}{
			"path": path,
		})
		return
	}

	vc.logger.Info("ViewerController", "image saved", map[string]interface{}{
		"path":        path,
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

// Quit stops the loader queue and closes the window. A decode in flight is
// left to finish in the background.
func (vc *ViewerController) Quit() {
	vc.loader.Stop()
	if vc.view != nil {
		vc.view.Quit()
	}
}

func (vc *ViewerController) refresh() {
	if vc.view == nil {
		return
	}
	img, err := vc.surface.Preview()
	if err != nil {
		if !errors.Is(err, render.ErrNoImage) {
			vc.logger.Error("ViewerController", err, nil)
		}
		return
	}
	vc.view.ShowImage(img)
}

func (vc *ViewerController) syncView() {
	if vc.view == nil {
		return
	}

	vc.view.SetBusy(vc.outstanding > 0)

	count := vc.list.Len()
	vc.view.SetNavigation(count > 0 && !vc.list.IsAtBeginning(), count > 0 && !vc.list.IsAtEnd())

	status := Status{
		State: vc.state,
		Index: vc.list.CurrentIndex() + 1,
		Count: count,
	}
	if current, err := vc.list.Current(); err == nil {
		status.Name = files.DisplayName(current.URL())
		if vc.decoded != nil && vc.displayedID == current.ID() {
			status.Width = vc.decoded.Width
			status.Height = vc.decoded.Height
			status.Exif = vc.decoded.Exif
		}
	}
	vc.view.SetStatus(status)
}
