package nostr

import (
	"github.com/nbd-wtf/go-nostr"

	"github.com/HORNET-Storage/nostreats/lib/types"
)

// KindHandler files a single event into the batch. It returns false when the
// event was rejected.
type KindHandler func(event *nostr.Event, batch *types.Batch) bool

// Registry maps event kinds to their handlers. It is filled once and then only
// read, so a populated registry may be shared between goroutines.
type Registry struct {
	handlers map[int]KindHandler
}

func NewRegistry() *Registry {
	return &Registry{handlers: map[int]KindHandler{}}
}

func (r *Registry) RegisterHandler(kind int, handler KindHandler) {
	r.handlers[kind] = handler
}

func (r *Registry) GetHandler(kind int) KindHandler {
	handler, ok := r.handlers[kind]
	if !ok {
		return nil
	}
	return handler
}

// Classify runs every event through the handler for its kind. Events of
// unregistered kinds and events a handler rejects are counted as skipped.
func (r *Registry) Classify(events []*nostr.Event) *types.Batch {
	batch := &types.Batch{}
	for _, event := range events {
		if event == nil {
			batch.Skipped++
			continue
		}

		handler := r.GetHandler(event.Kind)
		if handler == nil || !handler(event, batch) {
			batch.Skipped++
		}
	}
	return batch
}
