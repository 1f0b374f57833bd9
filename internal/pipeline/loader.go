package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"photo-viewer/internal/logger"
	"photo-viewer/internal/services"
)

var ErrQueueClosed = errors.New("loader queue is closed")

// Dispatcher runs fn on the UI thread. fyne.Do in production.
type Dispatcher func(fn func())

// Immediate runs fn on the calling goroutine
func Immediate(fn func()) { fn() }

// Decoder turns an image URL into pixels
type Decoder interface {
	Decode(ctx context.Context, url string) (*services.DecodedImage, error)
}

// Task identifies one decode request. Generation increases with every new
// selection so late completions can be recognized.
type Task struct {
	ImageID    uuid.UUID
	URL        string
	Generation uint64
}

type Result struct {
	Task     Task
	Image    *services.DecodedImage
	Err      error
	Duration time.Duration
}

type job struct {
	task     Task
	complete func(Result)
}

// Loader decodes images on a single worker goroutine fed by an unbounded FIFO
// queue. Completions are handed to the dispatcher in submission order.
type Loader struct {
	decoder  Decoder
	dispatch Dispatcher
	logger   logger.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []job
	running bool
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewLoader(decoder Decoder, dispatch Dispatcher, log logger.Logger) *Loader {
	if dispatch == nil {
		dispatch = Immediate
	}
	ctx, cancel := context.WithCancel(context.Background())

	l := &Loader{
		decoder:  decoder,
		dispatch: dispatch,
		logger:   log,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	l.cond = sync.NewCond(&l.mu)

	go l.run()
	return l
}

// Submit appends a task to the queue. It never blocks on decoding.
func (l *Loader) Submit(task Task, complete func(Result)) error {
	if complete == nil {
		return fmt.Errorf("completion callback is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrQueueClosed
	}

	l.queue = append(l.queue, job{task: task, complete: complete})
	l.cond.Signal()

	l.logger.Debug("Loader", "task queued", map[string]interface{}{
		"image_id":   task.ImageID.String(),
		"generation": task.Generation,
		"queued":     len(l.queue),
	})
	return nil
}

// Pending counts queued tasks plus the one being decoded
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.queue)
	if l.running {
		n++
	}
	return n
}

// Stop stops accepting tasks and abandons the queued ones without waiting for
// the task in flight. It returns the number of abandoned tasks.
func (l *Loader) Stop() int {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return 0
	}
	l.closed = true
	abandoned := len(l.queue)
	l.queue = nil
	l.cond.Broadcast()
	l.mu.Unlock()

	l.logger.Info("Loader", "loader stopped", map[string]interface{}{
		"abandoned": abandoned,
	})
	return abandoned
}

// Close stops the loader and waits for the task in flight to finish decoding
func (l *Loader) Close() {
	l.Stop()
	<-l.done
	l.cancel()
}

func (l *Loader) Done() <-chan struct{} {
	return l.done
}

func (l *Loader) run() {
	defer close(l.done)

	for {
		j, ok := l.next()
		if !ok {
			return
		}

		start := time.Now()
		img, err := l.decoder.Decode(l.ctx, j.task.URL)
		result := Result{
			Task:     j.task,
			Image:    img,
			Err:      err,
			Duration: time.Since(start),
		}

		l.mu.Lock()
		l.running = false
		l.mu.Unlock()

		if err != nil {
			l.logger.Debug("Loader", "decode failed", map[string]interface{}{
				"image_id": j.task.ImageID.String(),
				"error":    err.Error(),
			})
		} else {
			l.logger.Debug("Loader", "decode finished", map[string]interface{}{
				"image_id":    j.task.ImageID.String(),
				"duration_ms": result.Duration.Milliseconds(),
			})
		}

		complete := j.complete
		l.dispatch(func() {
			complete(result)
		})
	}
}

func (l *Loader) next() (job, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for len(l.queue) == 0 && !l.closed {
		l.cond.Wait()
	}
	if l.closed {
		return job{}, false
	}

	j := l.queue[0]
	l.queue[0] = job{}
	l.queue = l.queue[1:]
	l.running = true
	return j, true
}
