package passpersist

import (
	"errors"
	"fmt"
)

// Access is the mode a binding is registered with
type Access int

const (
	ReadOnly Access = iota
	ReadWrite
)

// String returns the access mode as shown in MIB listings
func (a Access) String() string {
	if a == ReadWrite {
		return "read-write"
	}
	return "read-only"
}

// Provider yields the current value of a binding. Providers may mutate
// simulated counters as a side effect of being read.
type Provider func() (Value, error)

// Setter validates and applies a SET value. It returns false to reject.
type Setter func(value string) bool

// Binding associates an OID with the logic that reads and writes it
type Binding struct {
	OID    string
	Name   string
	Kind   Kind
	Access Access
	Get    Provider
	Set    Setter
}

// Writable reports whether SET requests may reach the setter
func (b Binding) Writable() bool {
	return b.Access == ReadWrite && b.Set != nil
}

var (
	ErrRegistrySealed = errors.New("registry is sealed")
	ErrDuplicateOID   = errors.New("duplicate OID")
	ErrDuplicateName  = errors.New("duplicate metric name")
	ErrInvalidOID     = errors.New("malformed OID")
	ErrNoProvider     = errors.New("binding has no provider")
	ErrNoSetter       = errors.New("read-write binding has no setter")
)

// Registry is an insertion-ordered mapping from OID to Binding.
// Once sealed, which happens when an Engine takes ownership, it never changes.
type Registry struct {
	order  []string
	byOID  map[string]Binding
	byName map[string]string
	sealed bool
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byOID:  make(map[string]Binding),
		byName: make(map[string]string),
	}
}

// Register adds a binding. Names are optional but unique when set.
func (r *Registry) Register(b Binding) error {
	if r.sealed {
		return ErrRegistrySealed
	}
	if !ValidOID(b.OID) {
		return fmt.Errorf("%w: %q", ErrInvalidOID, b.OID)
	}
	if _, exists := r.byOID[b.OID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateOID, b.OID)
	}
	if b.Get == nil {
		return fmt.Errorf("%w: %s", ErrNoProvider, b.OID)
	}
	if b.Access == ReadWrite && b.Set == nil {
		return fmt.Errorf("%w: %s", ErrNoSetter, b.OID)
	}
	if b.Name != "" {
		if _, exists := r.byName[b.Name]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateName, b.Name)
		}
		r.byName[b.Name] = b.OID
	}

	r.byOID[b.OID] = b
	r.order = append(r.order, b.OID)
	return nil
}

// Resolve looks up a binding by exact OID string
func (r *Registry) Resolve(oid string) (Binding, bool) {
	b, ok := r.byOID[oid]
	return b, ok
}

// Lookup finds a binding by its metric name (e.g. "cpuUsage")
func (r *Registry) Lookup(name string) (Binding, bool) {
	oid, ok := r.byName[name]
	if !ok {
		return Binding{}, false
	}
	return r.Resolve(oid)
}

// Bindings returns all bindings in registration order
func (r *Registry) Bindings() []Binding {
	out := make([]Binding, 0, len(r.order))
	for _, oid := range r.order {
		out = append(out, r.byOID[oid])
	}
	return out
}

// Len returns the number of registered OIDs
func (r *Registry) Len() int {
	return len(r.order)
}

// Seal freezes the registry against further registration
func (r *Registry) Seal() {
	r.sealed = true
}
