package types

import (
	"errors"
	"maps"
	"slices"
)

var ErrVariablesFrozen = errors.New("resolved variables are frozen")

// ResolvedVariables is the ordered name to value mapping produced by variable resolution.
// Insertion order is preserved so generated artifacts list variables in descriptor order.
// Once frozen the set rejects further writes.
type ResolvedVariables struct {
	order  []string
	values map[string]string
	frozen bool
}

func NewResolvedVariables() *ResolvedVariables {
	return &ResolvedVariables{values: make(map[string]string)}
}

func (r *ResolvedVariables) Set(name, value string) error {
	if r.frozen {
		return ErrVariablesFrozen
	}
	if _, ok := r.values[name]; !ok {
		r.order = append(r.order, name)
	}
	r.values[name] = value
	return nil
}

func (r *ResolvedVariables) Delete(name string) error {
	if r.frozen {
		return ErrVariablesFrozen
	}
	if _, ok := r.values[name]; !ok {
		return nil
	}
	delete(r.values, name)
	r.order = slices.DeleteFunc(r.order, func(n string) bool { return n == name })
	return nil
}

func (r *ResolvedVariables) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r *ResolvedVariables) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

func (r *ResolvedVariables) Names() []string {
	return slices.Clone(r.order)
}

func (r *ResolvedVariables) Len() int {
	return len(r.order)
}

// Map returns a copy of the values. Callers may mutate it freely.
func (r *ResolvedVariables) Map() map[string]string {
	return maps.Clone(r.values)
}

func (r *ResolvedVariables) Freeze() {
	r.frozen = true
}

func (r *ResolvedVariables) Frozen() bool {
	return r.frozen
}
