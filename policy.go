package dupe

import (
	"reflect"
	"slices"

	clone "github.com/huandu/go-clone"
	"github.com/zoobzio/sentinel"
)

func init() {
	// Register the clone tag with sentinel
	sentinel.Tag("clone")
}

// Policy represents a per-field duplication policy.
// Use these constants in struct tags: `clone:"shallow"`
type Policy string

const (
	// PolicyCopy deep-copies the field. This is the default and exists
	// only as the explicit spelling.
	PolicyCopy Policy = "copy"

	// PolicyShallow copies the field by assignment, sharing referents
	// with the original.
	PolicyShallow Policy = "shallow"

	// PolicySkip leaves the field at its zero value in the duplicate.
	PolicySkip Policy = "skip"
)

// validPolicies contains all valid clone tag values for validation.
var validPolicies = map[Policy]bool{
	PolicyCopy:    true,
	PolicyShallow: true,
	PolicySkip:    true,
}

// IsValidPolicy returns true if p is a known field policy.
func IsValidPolicy(p Policy) bool {
	return validPolicies[p]
}

// Check validates the `clone` tags of type T without duplicating anything.
// It returns nil when T carries no tags at all. Calling Check at startup
// catches tag misuse that would otherwise panic on first duplication.
func Check[T any]() error {
	rt := reflect.TypeFor[T]()
	if rt.Kind() == reflect.Struct {
		spec := sentinel.Scan[T]()
		return collectPolicyFields(&policyPlan{}, spec, nil, nil, "", map[reflect.Type]bool{rt: true})
	}
	_, err := buildPolicyPlan(rt)
	return err
}

// policyFieldPlan describes the adjustment for a single tagged field.
type policyFieldPlan struct {
	index      []int  // reflect.Value.FieldByIndex access path
	name       string // field name for error messages
	policy     Policy
	ptrIndices []int // positions in index where pointer dereference is needed
}

// policyPlan holds the tag adjustments for one struct type. The plan only
// records shallow and skip fields; deep copy is what the base pass already
// produces.
type policyPlan struct {
	isPtr  bool
	fields []policyFieldPlan
}

// buildPolicyPlan scans rt for `clone` tags and builds its plan.
// It returns (nil, nil) when rt is not a struct, or a struct with no
// tagged fields, meaning the plain reflective strategy applies.
func buildPolicyPlan(rt reflect.Type) (*policyPlan, error) {
	st := rt
	isPtr := false
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
		isPtr = true
	}
	if st.Kind() != reflect.Struct {
		return nil, nil
	}

	plan := &policyPlan{isPtr: isPtr}
	if err := collectPolicyFields(plan, scanType(st), nil, nil, "", map[reflect.Type]bool{st: true}); err != nil {
		return nil, err
	}
	if len(plan.fields) == 0 {
		return nil, nil
	}
	return plan, nil
}

// collectPolicyFields recursively gathers tagged fields and nested structs.
// seen holds the struct types already on the scan path, so self-referential
// types terminate.
func collectPolicyFields(plan *policyPlan, spec sentinel.Metadata, parentIndex, ptrIndices []int, namePrefix string, seen map[reflect.Type]bool) error {
	for _, field := range spec.Fields {
		fullIndex := append(append([]int{}, parentIndex...), field.Index...)
		fullName := field.Name
		if namePrefix != "" {
			fullName = namePrefix + "." + field.Name
		}

		if val, ok := field.Tags["clone"]; ok {
			policy := Policy(val)
			if !IsValidPolicy(policy) {
				return newPolicyError(ErrInvalidTag, fullName, val)
			}
			if policy != PolicyCopy {
				plan.fields = append(plan.fields, policyFieldPlan{
					index:      fullIndex,
					name:       fullName,
					policy:     policy,
					ptrIndices: ptrIndices,
				})
			}
			continue
		}

		// Recurse into untagged nested structs
		if field.Kind == sentinel.KindStruct {
			if seen[field.ReflectType] {
				continue
			}
			seen[field.ReflectType] = true
			if err := collectPolicyFields(plan, scanType(field.ReflectType), fullIndex, ptrIndices, fullName, seen); err != nil {
				return err
			}
			continue
		}

		// Recurse into untagged pointer-to-struct fields, recording the
		// crossing so apply can dereference (and skip nil) at clone time.
		if field.Kind == sentinel.KindPointer && field.ReflectType.Elem().Kind() == reflect.Struct {
			elem := field.ReflectType.Elem()
			if seen[elem] {
				continue
			}
			seen[elem] = true
			newPtrIndices := append(append([]int{}, ptrIndices...), len(fullIndex)-1)
			if err := collectPolicyFields(plan, scanType(elem), fullIndex, newPtrIndices, fullName, seen); err != nil {
				return err
			}
		}
	}

	return nil
}

// scanType returns sentinel metadata for a struct type, falling back to a
// direct reflect scan for types sentinel has not seen.
func scanType(rt reflect.Type) sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return spec
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseCloneTag(sf.Tag),
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		spec.Fields = append(spec.Fields, fm)
	}

	return spec
}

// parseCloneTag extracts the clone tag from a struct tag.
func parseCloneTag(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	if val, ok := tag.Lookup("clone"); ok {
		tags["clone"] = val
	}
	return tags
}

// clone duplicates v: a full deep copy first, then the tag adjustments.
func (p *policyPlan) clone(v any) any {
	if p.isPtr {
		out := clone.Slowly(v)
		src := reflect.ValueOf(v)
		if src.IsNil() {
			return out
		}
		p.apply(reflect.ValueOf(out).Elem(), src.Elem())
		return out
	}

	src := reflect.ValueOf(v)
	pv := reflect.New(src.Type())
	pv.Elem().Set(reflect.ValueOf(clone.Slowly(v)))
	p.apply(pv.Elem(), src)
	return pv.Elem().Interface()
}

// apply rewrites shallow and skip fields on the freshly copied dst.
func (p *policyPlan) apply(dst, src reflect.Value) {
	for _, f := range p.fields {
		field, ok := fieldByPlan(dst, f)
		if !ok {
			continue
		}
		switch f.policy {
		case PolicyShallow:
			orig, ok := fieldByPlan(src, f)
			if !ok {
				continue
			}
			field.Set(orig)
		case PolicySkip:
			field.SetZero()
		}
	}
}

// fieldByPlan walks a plan's index path, dereferencing at the recorded
// pointer crossings. A nil pointer on the path means the field does not
// exist in this value.
func fieldByPlan(rv reflect.Value, f policyFieldPlan) (reflect.Value, bool) {
	cur := rv
	for i, idx := range f.index {
		cur = cur.Field(idx)
		if slices.Contains(f.ptrIndices, i) {
			if cur.IsNil() {
				return reflect.Value{}, false
			}
			cur = cur.Elem()
		}
	}
	return cur, true
}
