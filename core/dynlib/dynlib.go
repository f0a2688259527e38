package dynlib

import (
	"errors"
	"fmt"
	"plugin"
	"sync"
)

var (
	// ErrSymbolNotFound is returned when a library does not export a symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrClosed is returned by lookups on a closed handle.
	ErrClosed = errors.New("library handle closed")
)

// Opener opens shared libraries.
type Opener interface {
	// Open loads the library at path.
	Open(path string) (Handle, error)
}

// Handle is an opened shared library.
type Handle interface {
	// Lookup resolves an exported symbol. Missing symbols wrap ErrSymbolNotFound.
	Lookup(symbol string) (any, error)
	// Close releases the handle.
	Close() error
}

// PluginOpener opens Go plugins built with -buildmode=plugin.
type PluginOpener struct{}

// NewPluginOpener creates an opener backed by the plugin package.
func NewPluginOpener() *PluginOpener {
	return &PluginOpener{}
}

// Open loads the plugin at path.
func (o *PluginOpener) Open(path string) (Handle, error) {
	if path == "" {
		return nil, fmt.Errorf("plugin path is empty")
	}
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open plugin %s: %w", path, err)
	}
	return &pluginHandle{path: path, plugin: p}, nil
}

type pluginHandle struct {
	mu     sync.Mutex
	path   string
	plugin *plugin.Plugin
}

func (h *pluginHandle) Lookup(symbol string) (any, error) {
	h.mu.Lock()
	p := h.plugin
	h.mu.Unlock()
	if p == nil {
		return nil, fmt.Errorf("lookup %s in %s: %w", symbol, h.path, ErrClosed)
	}
	sym, err := p.Lookup(symbol)
	if err != nil {
		return nil, fmt.Errorf("lookup %s in %s: %w: %v", symbol, h.path, ErrSymbolNotFound, err)
	}
	return sym, nil
}

func (h *pluginHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.plugin == nil {
		return fmt.Errorf("close %s: %w", h.path, ErrClosed)
	}
	h.plugin = nil
	return nil
}
