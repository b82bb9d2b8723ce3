package dupe

import (
	"context"
	"reflect"
	"time"
)

// Clone duplicates a value whose concrete type is statically known.
// It is the sized entry point: dispatch is static and no erasure is
// involved, so it is exactly equivalent to calling v.Clone() directly.
func Clone[T Cloner[T]](v T) T {
	return v.Clone()
}

// CloneBox duplicates a value through an erased view. I is typically an
// interface type; the result has the same dynamic type as v, supports the
// same method set, and shares no storage with it. For a non-interface I
// the erasure is a no-op and CloneBox behaves like Clone.
//
// CloneBox never fails. A panic raised by the value's own Clone method
// propagates unchanged. A nil interface value yields the zero value of I.
func CloneBox[I any](v I) I {
	c := CloneAny(v)
	if c == nil {
		var zero I
		return zero
	}
	return c.(I)
}

// CloneAny is the untyped erased entry point underlying CloneBox.
//
// Dispatch order per concrete type:
//  1. a direct AnyCloner implementation (override, no reflection),
//  2. a clone function registered with Register,
//  3. a Clone method returning the type itself (the blanket bridge),
//  4. the reflective deep copy, honoring `clone` struct tags.
//
// The resolved strategy is cached per concrete type.
func CloneAny(v any) any {
	if v == nil {
		return nil
	}

	start := time.Now()

	if ac, ok := v.(AnyCloner); ok {
		out := ac.CloneAny()
		emitCloneComplete(context.Background(), reflect.TypeOf(v).String(), StrategyOverride, time.Since(start))
		return out
	}

	rt := reflect.TypeOf(v)
	entry := entryFor(rt)
	out := entry.fn(v)
	emitCloneComplete(context.Background(), rt.String(), entry.strategy, time.Since(start))
	return out
}

// ClonerOf erases a sized value into an AnyCloner view. The view's
// CloneAny is exactly "Clone, then erase the result": it exists for
// callers that need to hand a statically typed value to an API that
// consumes the erased capability.
func ClonerOf[T Cloner[T]](v T) AnyCloner {
	return clonerOf[T]{v: v}
}

type clonerOf[T Cloner[T]] struct {
	v T
}

func (c clonerOf[T]) CloneAny() any {
	return c.v.Clone()
}
