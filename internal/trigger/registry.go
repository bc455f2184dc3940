package trigger

import (
	"sync"
)

// Registry holds the active trigger definitions.
// Thread-safe: every incoming event reads it and admin calls mutate it.
type Registry struct {
	mu       sync.RWMutex
	triggers map[string]*Trigger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		triggers: make(map[string]*Trigger),
	}
}

// Add registers a trigger. A duplicate id silently overwrites the
// existing definition; updates always replace the whole record.
func (r *Registry) Add(t *Trigger) error {
	if err := Validate(t); err != nil {
		return err
	}
	copied := *t
	copied.Conditions = append([]Condition(nil), t.Conditions...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.triggers[copied.ID] = &copied
	return nil
}

// Remove deletes a trigger by id. Returns false if no such trigger.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.triggers[id]; !ok {
		return false
	}
	delete(r.triggers, id)
	return true
}

// Get returns the trigger with the given id.
func (r *Registry) Get(id string) (*Trigger, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.triggers[id]
	return t, ok
}

// ActiveForEvent returns all active triggers registered for the given
// event type. The returned slice is owned by the caller.
func (r *Registry) ActiveForEvent(eventType string) []*Trigger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []*Trigger
	for _, t := range r.triggers {
		if t.Active && t.EventType == eventType {
			matched = append(matched, t)
		}
	}
	return matched
}

// Count returns the number of registered triggers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.triggers)
}

// List returns all registered triggers.
func (r *Registry) List() []*Trigger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Trigger, 0, len(r.triggers))
	for _, t := range r.triggers {
		out = append(out, t)
	}
	return out
}
