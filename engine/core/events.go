package core

import (
	"fmt"

	"github.com/spaghettifunk/anima-gl/engine/containers"
)

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01
	// Keyboard key pressed. Data: *KeyEvent
	EVENT_CODE_KEY_PRESSED EventCode = 0x02
	// Keyboard key released. Data: *KeyEvent
	EVENT_CODE_KEY_RELEASED EventCode = 0x03
	// Mouse button pressed. Data: *MouseEvent
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04
	// Mouse button released. Data: *MouseEvent
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05
	// Mouse moved. Data: *MouseEvent
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06
	// Mouse wheel. Data: *MouseEvent
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07
	// Resized/resolution changed from the OS. Data: *SystemEvent
	EVENT_CODE_RESIZED EventCode = 0x08
	// An asset file changed on disk. Data: *AssetEvent
	EVENT_CODE_ASSET_CHANGED EventCode = 0x09

	MAX_EVENT_CODE EventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

const defaultEventQueueSize = 1024

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   float64
	PosY   float64
	Scroll float64
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type AssetEvent struct {
	Path string
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	id       uint32
	callback FnOnEvent
}

// EventSystem dispatches engine events to registered listeners. Events fired
// with Fire are delivered immediately; events queued with Post are delivered
// on the next call to Dispatch, from the frame loop.
type EventSystem struct {
	registered map[EventCode][]registeredEvent
	queue      *containers.RingQueue[EventContext]
	nextID     uint32
}

func NewEventSystem(queueSize int) *EventSystem {
	if queueSize <= 0 {
		queueSize = defaultEventQueueSize
	}
	return &EventSystem{
		registered: make(map[EventCode][]registeredEvent),
		queue:      containers.NewRingQueue[EventContext](queueSize),
	}
}

// Register a callback for the given code. The returned id can be used to
// unregister it.
func (es *EventSystem) Register(code EventCode, onEvent FnOnEvent) (uint32, error) {
	if code >= MAX_MESSAGE_CODES {
		return 0, fmt.Errorf("event code %d out of range (max=%d)", code, MAX_MESSAGE_CODES)
	}
	if onEvent == nil {
		return 0, fmt.Errorf("nil callback for event code %d", code)
	}
	es.nextID++
	es.registered[code] = append(es.registered[code], registeredEvent{
		id:       es.nextID,
		callback: onEvent,
	})
	return es.nextID, nil
}

// Unregister removes a previously registered callback. Returns false if it was
// not found.
func (es *EventSystem) Unregister(code EventCode, id uint32) bool {
	events := es.registered[code]
	for i, e := range events {
		if e.id == id {
			es.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

// Fire delivers the event to listeners of its code. If a handler returns
// true the event is considered handled and is not passed on.
func (es *EventSystem) Fire(context EventContext) bool {
	for _, e := range es.registered[context.Type] {
		if e.callback(context) {
			return true
		}
	}
	return false
}

// Post queues the event for the next Dispatch.
func (es *EventSystem) Post(context EventContext) {
	if err := es.queue.Enqueue(context); err != nil {
		LogWarn("dropping event %d: %s", context.Type, err)
	}
}

// Dispatch fires all queued events in order and returns how many were fired.
func (es *EventSystem) Dispatch() int {
	n := 0
	for !es.queue.IsEmpty() {
		context, err := es.queue.Dequeue()
		if err != nil {
			break
		}
		es.Fire(context)
		n++
	}
	return n
}

// Shutdown drops all listeners and pending events.
func (es *EventSystem) Shutdown() error {
	es.registered = make(map[EventCode][]registeredEvent)
	for !es.queue.IsEmpty() {
		_, _ = es.queue.Dequeue()
	}
	return nil
}
