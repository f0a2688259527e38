package loader

import (
	"sort"
	"time"

	"component-loader/core/component"
)

// Instance is a live component created by a loader.
type Instance struct {
	Name      string              `json:"name"`
	TypeName  string              `json:"type"`
	CreatedAt time.Time           `json:"created_at"`
	Component component.Component `json:"-"`
}

// Instances is the per-loader registry of live components.
type Instances struct {
	byName  map[string]Instance
	perType map[string]int
}

// NewInstances creates an empty instance registry.
func NewInstances() *Instances {
	return &Instances{
		byName:  make(map[string]Instance),
		perType: make(map[string]int),
	}
}

// InUse implements LiveTypes.
func (r *Instances) InUse(typeName string) bool {
	return r.perType[typeName] > 0
}

// Get returns the instance called name.
func (r *Instances) Get(name string) (Instance, bool) {
	inst, ok := r.byName[name]
	return inst, ok
}

func (r *Instances) add(inst Instance) {
	r.byName[inst.Name] = inst
	r.perType[inst.TypeName]++
}

func (r *Instances) remove(name string) (Instance, bool) {
	inst, ok := r.byName[name]
	if !ok {
		return Instance{}, false
	}
	delete(r.byName, name)
	if r.perType[inst.TypeName]--; r.perType[inst.TypeName] <= 0 {
		delete(r.perType, inst.TypeName)
	}
	return inst, true
}

// List returns the live instances sorted by name.
func (r *Instances) List() []Instance {
	out := make([]Instance, 0, len(r.byName))
	for _, inst := range r.byName {
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Len returns the number of live instances.
func (r *Instances) Len() int {
	return len(r.byName)
}
