package gameworld

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

var BeingNotFound = errors.New("being not found")

// Registry holds the visible beings by id. It is safe for concurrent use; the
// beings themselves are not, and are only touched by whoever renders them
// and whoever applies network updates, in turn.
type Registry struct {
	mu     sync.Mutex
	beings map[BeingID]*Being
}

func NewRegistry() *Registry {
	return &Registry{beings: make(map[BeingID]*Being)}
}

// Add adds b, replacing any being with the same id.
func (r *Registry) Add(b *Being) error {
	if b == nil {
		return errors.New("adding nil being")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.beings[b.ID] = b
	return nil
}

func (r *Registry) Remove(id BeingID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.beings, id)
}

func (r *Registry) Get(id BeingID) (*Being, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.beings[id]; ok {
		return b, nil
	}
	return nil, errors.Wrapf(BeingNotFound, "id %d", id)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.beings)
}

// Beings returns a snapshot of the visible beings sorted by Y, then by id,
// which is the order they are drawn in.
func (r *Registry) Beings() []*Being {
	r.mu.Lock()
	out := make([]*Being, 0, len(r.beings))
	for _, b := range r.beings {
		out = append(out, b)
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].ID < out[j].ID
	})
	return out
}
