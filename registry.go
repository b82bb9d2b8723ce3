package dupe

import (
	"context"
	"reflect"
	"sync"

	clone "github.com/huandu/go-clone"
)

// cloneFunc duplicates a value of a single concrete type.
type cloneFunc func(v any) any

// registryEntry pairs a resolved clone function with the strategy it uses.
type registryEntry struct {
	fn       cloneFunc
	strategy Strategy
}

var (
	registry   = make(map[reflect.Type]registryEntry)
	customs    = make(map[reflect.Type]cloneFunc)
	registryMu sync.RWMutex
)

// Register installs a custom clone function for type T. It takes
// precedence over T's Clone method and the reflective fallback, but not
// over a direct AnyCloner implementation on the value itself.
//
// Register replaces any previously registered function for T and
// invalidates the cached strategy so the next duplication picks it up.
// Safe for concurrent use.
func Register[T any](fn func(T) T) {
	rt := reflect.TypeFor[T]()

	registryMu.Lock()
	defer registryMu.Unlock()
	customs[rt] = func(v any) any { return fn(v.(T)) }
	delete(registry, rt)
}

// Reset clears resolved strategies and registered clone functions.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[reflect.Type]registryEntry)
	customs = make(map[reflect.Type]cloneFunc)
}

// entryFor returns the cached clone function for rt or resolves a new one.
func entryFor(rt reflect.Type) registryEntry {
	// Fast path: read-lock cache check
	registryMu.RLock()
	if cached, ok := registry[rt]; ok {
		registryMu.RUnlock()
		return cached
	}
	registryMu.RUnlock()

	// Slow path: resolve and cache with write-lock
	registryMu.Lock()

	// Double-check pattern
	if cached, ok := registry[rt]; ok {
		registryMu.Unlock()
		return cached
	}

	entry, err := buildEntry(rt)
	if err != nil {
		registryMu.Unlock()
		// Tag misuse is a programming error, surfaced the first time the
		// broken type is duplicated. Check[T] reports it as an error
		// instead, ahead of time.
		panic(err)
	}

	registry[rt] = entry
	registryMu.Unlock()

	emitStrategyResolved(context.Background(), rt.String(), entry.strategy)
	return entry
}

// buildEntry resolves the duplication strategy for rt.
// Caller holds the registry write lock.
func buildEntry(rt reflect.Type) (registryEntry, error) {
	if fn, ok := customs[rt]; ok {
		return registryEntry{fn: fn, strategy: StrategyCustom}, nil
	}

	if fn, ok := methodCloneFunc(rt); ok {
		return registryEntry{fn: fn, strategy: StrategyMethod}, nil
	}

	plan, err := buildPolicyPlan(rt)
	if err != nil {
		return registryEntry{}, err
	}
	if plan != nil {
		return registryEntry{fn: plan.clone, strategy: StrategyPolicy}, nil
	}

	// clone.Slowly tolerates pointer cycles, which arbitrary fallback
	// types may contain.
	return registryEntry{fn: clone.Slowly, strategy: StrategyReflect}, nil
}

// methodCloneFunc builds a clone function around a `Clone() T` method on T,
// located through reflection. This is the blanket rule: every type that
// satisfies Cloner[T] is erased-duplicable with no per-type wiring.
//
// Only methods in rt's own method set qualify. A Clone method declared on
// *T duplicates through rt = *T, not through rt = T, because an interface
// holding a T value cannot reach pointer-receiver methods.
func methodCloneFunc(rt reflect.Type) (cloneFunc, bool) {
	m, ok := rt.MethodByName("Clone")
	if !ok {
		return nil, false
	}
	if m.Type.NumIn() != 1 || m.Type.NumOut() != 1 || m.Type.Out(0) != rt {
		return nil, false
	}

	idx := m.Index
	return func(v any) any {
		return reflect.ValueOf(v).Method(idx).Call(nil)[0].Interface()
	}, true
}
