package dupe

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for duplication events.
var (
	SignalStrategyResolved = capitan.NewSignal("dupe.strategy.resolved", "Duplication strategy resolved for a type")
	SignalCloneComplete    = capitan.NewSignal("dupe.clone.complete", "Erased duplication finished")
	SignalSnapshotComplete = capitan.NewSignal("dupe.snapshot.complete", "Codec round-trip clone finished")
)

// Keys for typed event data.
var (
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeyStrategy    = capitan.NewStringKey("strategy")
	KeyContentType = capitan.NewStringKey("content_type")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitStrategyResolved emits an event when the registry resolves a strategy.
func emitStrategyResolved(ctx context.Context, typeName string, strategy Strategy) {
	capitan.Emit(ctx, SignalStrategyResolved,
		KeyTypeName.Field(typeName),
		KeyStrategy.Field(string(strategy)),
	)
}

// emitCloneComplete emits an event when an erased duplication finishes.
func emitCloneComplete(ctx context.Context, typeName string, strategy Strategy, duration time.Duration) {
	capitan.Emit(ctx, SignalCloneComplete,
		KeyTypeName.Field(typeName),
		KeyStrategy.Field(string(strategy)),
		KeyDuration.Field(duration),
	)
}

// emitSnapshotComplete emits an event when a snapshot clone finishes.
func emitSnapshotComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalSnapshotComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalSnapshotComplete, fields...)
	}
}
