package mocks

import (
	"fmt"
	"sync"

	"component-loader/core/dynlib"
)

// Symbols is the exported symbol table of an in-memory library.
type Symbols map[string]any

// Opener is an in-memory dynlib.Opener keyed by file path.
type Opener struct {
	mu        sync.Mutex
	libraries map[string]Symbols
	failures  map[string]error

	// Opened counts successful opens per path.
	Opened map[string]int
	// Closed counts closes per path.
	Closed map[string]int
	// Lookups records every symbol looked up, in order, as "path:symbol".
	Lookups []string
}

// NewOpener creates an empty in-memory opener.
func NewOpener() *Opener {
	return &Opener{
		libraries: make(map[string]Symbols),
		failures:  make(map[string]error),
		Opened:    make(map[string]int),
		Closed:    make(map[string]int),
	}
}

// Add makes path openable with the given symbols.
func (o *Opener) Add(path string, symbols Symbols) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.libraries[path] = symbols
	delete(o.failures, path)
}

// Fail makes opening path return err.
func (o *Opener) Fail(path string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures[path] = err
}

// Open implements dynlib.Opener.
func (o *Opener) Open(path string) (dynlib.Handle, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err, ok := o.failures[path]; ok {
		return nil, err
	}
	symbols, ok := o.libraries[path]
	if !ok {
		return nil, fmt.Errorf("open %s: not a library", path)
	}
	o.Opened[path]++
	return &handle{opener: o, path: path, symbols: symbols}, nil
}

// OpenHandles returns opens minus closes for path.
func (o *Opener) OpenHandles(path string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Opened[path] - o.Closed[path]
}

type handle struct {
	opener  *Opener
	path    string
	symbols Symbols
	closed  bool
}

func (h *handle) Lookup(symbol string) (any, error) {
	h.opener.mu.Lock()
	defer h.opener.mu.Unlock()
	h.opener.Lookups = append(h.opener.Lookups, h.path+":"+symbol)
	if h.closed {
		return nil, dynlib.ErrClosed
	}
	sym, ok := h.symbols[symbol]
	if !ok {
		return nil, fmt.Errorf("lookup %s in %s: %w", symbol, h.path, dynlib.ErrSymbolNotFound)
	}
	return sym, nil
}

func (h *handle) Close() error {
	h.opener.mu.Lock()
	defer h.opener.mu.Unlock()
	if h.closed {
		return dynlib.ErrClosed
	}
	h.closed = true
	h.opener.Closed[h.path]++
	return nil
}
