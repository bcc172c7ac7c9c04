package media

import (
	"sync"

	"github.com/jscyril/golang_video_player/api"
)

// Ref is an owned, nullable handle to the current media element.
// An empty Ref is a valid state: the element is not attached yet.
type Ref struct {
	mu sync.RWMutex
	el api.MediaElement
}

// NewRef creates an empty handle.
func NewRef() *Ref {
	return &Ref{}
}

// Set attaches el. A nil el clears the handle.
func (r *Ref) Set(el api.MediaElement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.el = el
}

// Clear detaches the current element, if any.
func (r *Ref) Clear() {
	r.Set(nil)
}

// Load returns the attached element and whether there is one.
func (r *Ref) Load() (api.MediaElement, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.el, r.el != nil
}
