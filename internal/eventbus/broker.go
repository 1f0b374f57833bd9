package eventbus

import (
	"fmt"
	"sync"

	messagebus "github.com/vardius/message-bus"

	"photo-viewer/internal/logger"
)

// busTopic is the only message-bus topic; routing happens in the handler
// table so that all events are delivered in publish order.
const busTopic = "viewer-events"

type Handler func(Event)

// Broker routes view events to controller handlers on the UI thread
type Broker struct {
	bus      messagebus.MessageBus
	dispatch func(func())
	logger   logger.Logger

	mu       sync.RWMutex
	handlers map[Topic]Handler
	closed   bool
}

// NewBroker creates a broker whose handlers run through dispatch
func NewBroker(queueSize int, dispatch func(func()), log logger.Logger) (*Broker, error) {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}

	b := &Broker{
		bus:      messagebus.New(queueSize),
		dispatch: dispatch,
		logger:   log,
		handlers: make(map[Topic]Handler),
	}

	if err := b.bus.Subscribe(busTopic, b.deliver); err != nil {
		return nil, fmt.Errorf("failed to subscribe broker: %w", err)
	}
	return b, nil
}

// Connect registers the handler for topic, replacing any previous one
func (b *Broker) Connect(topic Topic, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = handler
}

func (b *Broker) Publish(event Event) {
	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()

	if closed {
		b.logger.Debug("Broker", "event dropped after close", map[string]interface{}{
			"topic": string(event.Topic),
		})
		return
	}

	b.logger.Debug("Broker", "event published", map[string]interface{}{
		"topic": string(event.Topic),
	})
	b.bus.Publish(busTopic, event)
}

// Send publishes a topic without payload
func (b *Broker) Send(topic Topic) {
	b.Publish(Event{Topic: topic})
}

func (b *Broker) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	b.bus.Close(busTopic)
}

func (b *Broker) deliver(event Event) {
	b.mu.RLock()
	handler, ok := b.handlers[event.Topic]
	b.mu.RUnlock()

	if !ok {
		b.logger.Warning("Broker", "no handler for topic", map[string]interface{}{
			"topic": string(event.Topic),
		})
		return
	}

	b.dispatch(func() {
		handler(event)
	})
}
