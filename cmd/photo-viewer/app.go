package main

import (
	"fmt"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"photo-viewer/internal/config"
	"photo-viewer/internal/controllers"
	"photo-viewer/internal/eventbus"
	"photo-viewer/internal/logger"
	"photo-viewer/internal/pipeline"
	"photo-viewer/internal/render"
	"photo-viewer/internal/services"
	"photo-viewer/internal/shutdown"
	"photo-viewer/internal/views"
)

const (
	AppID      = "io.github.photo-viewer"
	AppVersion = "1.0.0"

	eventQueueSize = 64
)

// Application holds the wired viewer for the lifetime of the process
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger
	config  *config.Config

	controller *controllers.ViewerController
	view       *views.MainView
	loader     *pipeline.Loader
	broker     *eventbus.Broker
	shutdown   *shutdown.Manager
}

func NewApplication(cfg *config.Config, log logger.Logger) (*Application, error) {
	engine, err := render.NewColorEngine(cfg.Render.ColorEngine)
	if err != nil {
		return nil, fmt.Errorf("color engine: %w", err)
	}

	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(views.AppTitle)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()

	shutdownMgr := shutdown.NewManager(log)
	// Closing the loader waits for a decode that may be a slow download.
	shutdownMgr.SetTimeout(max(shutdown.DefaultTimeout, cfg.Loader.HTTPTimeout))

	imageService := services.NewImageService(cfg.Loader.HTTPTimeout)
	loader := pipeline.NewLoader(imageService, fyne.Do, log)

	broker, err := eventbus.NewBroker(eventQueueSize, fyne.Do, log)
	if err != nil {
		loader.Close()
		return nil, err
	}

	surface := render.NewSurface(engine, cfg.Render.PreviewMaxEdge)
	controller := controllers.NewViewerController(
		shutdownMgr.Context(),
		surface,
		loader,
		imageService,
		cfg.Loader.StaleCompletions,
		log,
	)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     log,
		config:     cfg,
		controller: controller,
		loader:     loader,
		broker:     broker,
		shutdown:   shutdownMgr,
	}

	application.view = views.NewMainView(window, broker, log, fyneApp.Quit)
	controller.SetView(application.view)
	controller.Connect(broker)

	shutdownMgr.Register("loader", shutdown.Func(loader.Close))
	shutdownMgr.Register("broker", shutdown.Func(broker.Close))
	shutdownMgr.OnSignal(func() {
		broker.Send(eventbus.Quit)
	})

	log.Info("main", "application initialized", map[string]interface{}{
		"version":      AppVersion,
		"go_version":   runtime.Version(),
		"color_engine": surface.EngineName(),
		"stale_policy": cfg.Loader.StaleCompletions,
		"window_size":  fmt.Sprintf("%.0fx%.0f", cfg.Window.Width, cfg.Window.Height),
	})

	return application, nil
}

// Run shows the window, queues the command-line files and blocks until the
// app quits
func (a *Application) Run(paths []string) error {
	a.shutdown.Listen()

	if len(paths) > 0 {
		a.fyneApp.Lifecycle().SetOnStarted(func() {
			added := a.controller.AddPaths(paths)
			a.logger.Info("main", "command line files queued", map[string]interface{}{
				"requested": len(paths),
				"added":     added,
			})
		})
	}
	a.window.Show()

	a.fyneApp.Run()

	a.logger.Info("main", "event loop finished", map[string]interface{}{
		"pending_loads": a.loader.Pending(),
	})
	a.shutdown.Shutdown()

	select {
	case <-a.loader.Done():
	default:
		a.logger.Warning("main", "loader worker still running at exit", nil)
	}
	a.logger.Info("main", "application terminated", nil)
	return nil
}
