package sparql

import (
	"fmt"
	"strings"
)

// ValidationResult contains lint findings for an expression.
//
// Lint findings do not stop serialization; an expression with warnings still
// serializes as long as it has a where clause. They point at queries that are
// likely to return nothing useful from an endpoint.
type ValidationResult struct {
	// IsValid is false when the expression cannot be serialized at all.
	IsValid bool

	// Warnings lists suspicious constructs. Empty when the query looks sound.
	Warnings []string
}

// Validate lints an expression.
//
// Checks:
//  1. Where clause present (otherwise IsValid is false)
//  2. Every projected variable is bound by a where or optional pattern
//  3. Every order by variable is bound
//  4. Every term formats
//
// Validate is a pure function with no side effects.
func Validate(e Expression) ValidationResult {
	v := &validator{
		warnings: []string{},
		bound:    map[string]bool{},
	}
	valid := len(e.where) > 0
	if !valid {
		v.addWarning("empty where clause - query cannot be serialized")
	}

	for _, p := range e.where {
		v.collect(p)
	}
	for _, p := range e.optional {
		v.collect(p)
	}

	for _, name := range e.selectVars {
		if !v.bound[name] {
			v.addWarning("projected variable %s is not bound by any pattern", name)
		}
	}
	for _, key := range e.orderBy {
		for _, name := range variablesIn(key) {
			if !v.bound[name] {
				v.addWarning("order by variable %s is not bound by any pattern", name)
			}
		}
	}

	return ValidationResult{
		IsValid:  valid && !v.formatFailed,
		Warnings: v.warnings,
	}
}

// validator accumulates warnings during traversal.
type validator struct {
	warnings     []string
	bound        map[string]bool
	formatFailed bool
}

func (v *validator) addWarning(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

// collect records the variables a pattern binds and checks its terms format.
func (v *validator) collect(p Pattern) {
	for _, t := range []Term{p.Subject, p.Predicate, p.Object} {
		if _, err := Format(t); err != nil {
			v.formatFailed = true
			v.addWarning("%v", err)
			continue
		}
		if name, ok := t.(Var); ok {
			v.bound[name.Name()] = true
		}
	}
}

// variablesIn extracts ?name tokens from an ordering key such as "desc(?x)".
func variablesIn(key string) []string {
	var names []string
	for _, field := range strings.FieldsFunc(key, func(r rune) bool {
		return r == '(' || r == ')' || r == ' ' || r == ','
	}) {
		if strings.HasPrefix(field, "?") && len(field) > 1 {
			names = append(names, field)
		}
	}
	return names
}
