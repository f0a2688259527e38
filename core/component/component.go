package component

// Exported symbol names looked up in plugin libraries.
const (
	// SymbolFactories returns the full type name to factory table of a multi-component library.
	SymbolFactories = "ComponentFactories"
	// SymbolTypeNames optionally lists the type names of a multi-component library.
	SymbolTypeNames = "ComponentTypeNames"
	// SymbolCreate is the factory of a single-component library.
	SymbolCreate = "CreateComponent"
	// SymbolType returns the type name of a single-component library.
	SymbolType = "ComponentType"
)

// Component is a named unit of behavior created by a Factory.
type Component interface {
	// Name returns the instance name the component was created with.
	Name() string
}

// Factory creates a new component owned by the caller.
type Factory func(name string) (Component, error)

// FactoryMap maps type names to factories.
type FactoryMap map[string]Factory

// Constructor adapts a constructor without an error result to a Factory.
func Constructor(fn func(name string) Component) Factory {
	if fn == nil {
		return nil
	}
	return func(name string) (Component, error) {
		return fn(name), nil
	}
}

// Base is an embeddable helper holding the instance name.
type Base struct {
	name string
}

// NewBase returns a Base carrying name.
func NewBase(name string) Base {
	return Base{name: name}
}

// Name returns the instance name.
func (b Base) Name() string {
	return b.name
}
