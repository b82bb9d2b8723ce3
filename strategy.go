package dupe

// Strategy identifies how a concrete type is duplicated.
// The resolved strategy for a type is reported on the
// SignalStrategyResolved and SignalCloneComplete signals.
type Strategy string

const (
	// StrategyOverride means the type implements AnyCloner directly.
	StrategyOverride Strategy = "override"

	// StrategyCustom means a clone function was registered with Register.
	StrategyCustom Strategy = "custom"

	// StrategyMethod means the type has a Clone method returning its own
	// type, invoked through reflection.
	StrategyMethod Strategy = "method"

	// StrategyPolicy means the type is a struct with `clone` tags,
	// duplicated by the tag-aware reflective cloner.
	StrategyPolicy Strategy = "policy"

	// StrategyReflect means the plain reflective deep copy.
	StrategyReflect Strategy = "reflect"
)

// validStrategies contains all strategies the registry can resolve.
var validStrategies = map[Strategy]bool{
	StrategyOverride: true,
	StrategyCustom:   true,
	StrategyMethod:   true,
	StrategyPolicy:   true,
	StrategyReflect:  true,
}

// IsValidStrategy returns true if s is a known duplication strategy.
func IsValidStrategy(s Strategy) bool {
	return validStrategies[s]
}
