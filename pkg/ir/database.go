package ir

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// ErrDuplicateObject is reported when a name would be finalized against a
// different, already registered definition.
var ErrDuplicateObject = errors.New("object database already contains an object")

// ObjectDatabase is the shared registry of resolved type definitions, keyed
// by fully qualified name. Each key carries an explicit state: Pending while
// a shallow placeholder occupies it during recursive resolution, Resolved
// once the final definition is written. Per-key operations are individually
// atomic; no cross-key transaction is ever required, so nested resolution
// frames may freely interleave reads and writes.
type ObjectDatabase struct {
	mu      sync.RWMutex
	objects map[string]*objectEntry
}

type objectEntry struct {
	pending bool
	def     ObjectDefinition
}

// NamedObject pairs a database key with its definition.
type NamedObject struct {
	Name   string
	Object ObjectDefinition
}

// NewObjectDatabase returns an empty registry.
func NewObjectDatabase() *ObjectDatabase {
	return &ObjectDatabase{objects: make(map[string]*objectEntry)}
}

// Contains reports whether name is registered, pending or resolved.
func (db *ObjectDatabase) Contains(name string) bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	_, ok := db.objects[name]
	return ok
}

// Pending reports whether name is occupied by an in-flight placeholder.
func (db *ObjectDatabase) Pending(name string) bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	e, ok := db.objects[name]
	return ok && e.pending
}

// Get returns a clone of the definition under name. While a resolution is in
// flight the clone is the shallow placeholder; callers that encounter it
// mid-cycle stop descending and reference the name as-is.
func (db *ObjectDatabase) Get(name string) (ObjectDefinition, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	e, ok := db.objects[name]
	if !ok {
		return ObjectDefinition{}, false
	}
	return e.def.Clone(), true
}

// Placeholder registers a shallow stand-in under name and marks the key
// pending. It fails with ErrDuplicateObject when the key is already taken:
// the caller must check first, so a failure means a second resolution of the
// same name is already in progress.
func (db *ObjectDatabase) Placeholder(name string, def ObjectDefinition) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.objects[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateObject, name)
	}
	db.objects[name] = &objectEntry{pending: true, def: def}
	return nil
}

// Finalize overwrites the pending placeholder under name with the completed
// definition. Finalizing a name that already resolved to a different
// definition is an error; re-finalizing the identical definition is a no-op.
func (db *ObjectDatabase) Finalize(name string, def ObjectDefinition) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if e, ok := db.objects[name]; ok && !e.pending && !reflect.DeepEqual(e.def, def) {
		return fmt.Errorf("%w: %s", ErrDuplicateObject, name)
	}
	db.objects[name] = &objectEntry{def: def}
	return nil
}

// Abort removes a pending placeholder after a failed resolution so the name
// never surfaces as a registered object. Resolved entries are left alone.
func (db *ObjectDatabase) Abort(name string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if e, ok := db.objects[name]; ok && e.pending {
		delete(db.objects, name)
	}
}

// Len returns the number of registered names.
func (db *ObjectDatabase) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.objects)
}

// Keys returns all registered names in sorted order.
func (db *ObjectDatabase) Keys() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	keys := make([]string, 0, len(db.objects))
	for k := range db.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Items returns every (name, definition) pair in sorted name order, cloned.
func (db *ObjectDatabase) Items() []NamedObject {
	keys := db.Keys()
	out := make([]NamedObject, 0, len(keys))
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, k := range keys {
		out = append(out, NamedObject{Name: k, Object: db.objects[k].def.Clone()})
	}
	return out
}

// PathDatabase is the registry of modeled operations keyed by operation
// name. Operations are created once and never mutated afterwards.
type PathDatabase struct {
	mu    sync.RWMutex
	paths map[string]PathDefinition
}

// NamedPath pairs an operation name with its definition.
type NamedPath struct {
	Name string
	Path PathDefinition
}

// NewPathDatabase returns an empty registry.
func NewPathDatabase() *PathDatabase {
	return &PathDatabase{paths: make(map[string]PathDefinition)}
}

// Insert registers a path definition, rejecting duplicate operation names.
func (db *PathDatabase) Insert(name string, def PathDefinition) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.paths[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateObject, name)
	}
	db.paths[name] = def
	return nil
}

// Get returns the path definition registered under name.
func (db *PathDatabase) Get(name string) (PathDefinition, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	def, ok := db.paths[name]
	return def, ok
}

// Len returns the number of registered operations.
func (db *PathDatabase) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.paths)
}

// Items returns every (name, definition) pair in sorted name order.
func (db *PathDatabase) Items() []NamedPath {
	db.mu.RLock()
	defer db.mu.RUnlock()
	keys := make([]string, 0, len(db.paths))
	for k := range db.paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]NamedPath, 0, len(keys))
	for _, k := range keys {
		out = append(out, NamedPath{Name: k, Path: db.paths[k]})
	}
	return out
}
