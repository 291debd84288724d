package semantic

import "fmt"

// Sentinel errors and error types for pkg/semantic. Per spec.md §7,
// the CORE distinguishes invariant violations (malformed input from a
// collaborator, always a programming error) from normal search
// outcomes (no implementation found, represented by CostInfinite, not
// an error at all). The teacher's own pkg/minikanren favors plain
// errors.New/fmt.Errorf over wrapped error chains; this package
// follows the same style rather than reaching for github.com/pkg/errors,
// which is reserved for the collaborator packages that cross process
// boundaries (pkg/isa, pkg/resultcache).

// UndefinedFragmentError reports a LeafFragment referencing a name
// with no FragmentLibrary.Define entry.
type UndefinedFragmentError struct {
	Name string
}

func (e *UndefinedFragmentError) Error() string {
	return fmt.Sprintf("semantic: undefined fragment %q", e.Name)
}

// FragmentCycleError reports a fragment whose expansion recurses into
// itself.
type FragmentCycleError struct {
	Name  string
	Stack []string
}

func (e *FragmentCycleError) Error() string {
	return fmt.Sprintf("semantic: fragment cycle detected at %q (chain: %v)", e.Name, e.Stack)
}

// RuleArityError reports a rule pattern/template arity mismatch
// detected at load time.
type RuleArityError struct {
	RuleName string
	Detail   string
}

func (e *RuleArityError) Error() string {
	return fmt.Sprintf("semantic: rule %q: %s", e.RuleName, e.Detail)
}

// NestedDecompError reports a rule whose Decomp operator appears
// anywhere below the root, a placement
// original_source/InsnSelector/TransformationRules.cpp documents as
// producing undefined behavior and leaks; accgen-go rejects such rules
// at load time instead (DESIGN.md Open Question 1).
type NestedDecompError struct {
	RuleName string
}

func (e *NestedDecompError) Error() string {
	return fmt.Sprintf("semantic: rule %q: Decomp operator must be at the root", e.RuleName)
}
