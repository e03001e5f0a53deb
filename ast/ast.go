// Package ast contains the algebraic data model for the object language:
// well-formed formulas (Exp) and derivation-rule citations (Rule).
package ast

import (
	"fmt"
	"sort"
	"strings"
)

// Exp is a well-formed formula of the propositional + first-order
// language. Every variant is an immutable, owned tree (no sharing).
type Exp interface {
	// Marker method.
	isExp()

	// String returns the canonical rendering.
	String() string

	// Equals reports structural (syntactic) equality.
	Equals(Exp) bool
}

// Atom is an n-ary predicate applied to individual symbols. Individuals
// may be empty (a propositional atom).
type Atom struct {
	Predicate   string
	Individuals []string
}

func (Atom) isExp() {}

// String renders the predicate followed by its individuals, concatenated.
func (a Atom) String() string {
	return a.Predicate + strings.Join(a.Individuals, "")
}

// Equals reports whether u is the same atom.
func (a Atom) Equals(u Exp) bool {
	o, ok := u.(Atom)
	if !ok || a.Predicate != o.Predicate || len(a.Individuals) != len(o.Individuals) {
		return false
	}
	for i, ind := range a.Individuals {
		if ind != o.Individuals[i] {
			return false
		}
	}
	return true
}

// NewAtom is a convenience constructor.
func NewAtom(predicate string, individuals ...string) Atom {
	return Atom{Predicate: predicate, Individuals: individuals}
}

// Cond is the material conditional Antecedent → Consequent.
type Cond struct {
	Antecedent, Consequent Exp
}

func (Cond) isExp() {}

func (c Cond) String() string {
	return fmt.Sprintf("(%s → %s)", c.Antecedent.String(), c.Consequent.String())
}

// Equals reports whether u is the same conditional.
func (c Cond) Equals(u Exp) bool {
	o, ok := u.(Cond)
	return ok && c.Antecedent.Equals(o.Antecedent) && c.Consequent.Equals(o.Consequent)
}

// Iff is the biconditional Lhs ↔ Rhs.
type Iff struct {
	Lhs, Rhs Exp
}

func (Iff) isExp() {}

func (i Iff) String() string {
	return fmt.Sprintf("(%s ↔ %s)", i.Lhs.String(), i.Rhs.String())
}

// Equals reports whether u is the same biconditional.
func (i Iff) Equals(u Exp) bool {
	o, ok := u.(Iff)
	return ok && i.Lhs.Equals(o.Lhs) && i.Rhs.Equals(o.Rhs)
}

// And is the conjunction Lhs & Rhs.
type And struct {
	Lhs, Rhs Exp
}

func (And) isExp() {}

func (a And) String() string {
	return fmt.Sprintf("(%s & %s)", a.Lhs.String(), a.Rhs.String())
}

// Equals reports whether u is the same conjunction.
func (a And) Equals(u Exp) bool {
	o, ok := u.(And)
	return ok && a.Lhs.Equals(o.Lhs) && a.Rhs.Equals(o.Rhs)
}

// Or is the disjunction Lhs ∨ Rhs.
type Or struct {
	Lhs, Rhs Exp
}

func (Or) isExp() {}

func (o Or) String() string {
	return fmt.Sprintf("(%s ∨ %s)", o.Lhs.String(), o.Rhs.String())
}

// Equals reports whether u is the same disjunction.
func (o Or) Equals(u Exp) bool {
	v, ok := u.(Or)
	return ok && o.Lhs.Equals(v.Lhs) && o.Rhs.Equals(v.Rhs)
}

// Neg is the negation ¬Inner.
type Neg struct {
	Inner Exp
}

func (Neg) isExp() {}

func (n Neg) String() string {
	return "¬" + n.Inner.String()
}

// Equals reports whether u is the same negation.
func (n Neg) Equals(u Exp) bool {
	o, ok := u.(Neg)
	return ok && n.Inner.Equals(o.Inner)
}

// UnivGenr is the universal generalization (Variable)Form.
type UnivGenr struct {
	Variable string
	Form     Exp
}

func (UnivGenr) isExp() {}

func (g UnivGenr) String() string {
	return fmt.Sprintf("(%s)%s", g.Variable, g.Form.String())
}

// Equals reports whether u is the same universal generalization.
func (g UnivGenr) Equals(u Exp) bool {
	o, ok := u.(UnivGenr)
	return ok && g.Variable == o.Variable && g.Form.Equals(o.Form)
}

// ExistGenr is the existential generalization (∃Variable)Form.
type ExistGenr struct {
	Variable string
	Form     Exp
}

func (ExistGenr) isExp() {}

func (g ExistGenr) String() string {
	return fmt.Sprintf("(∃%s)%s", g.Variable, g.Form.String())
}

// Equals reports whether u is the same existential generalization.
func (g ExistGenr) Equals(u Exp) bool {
	o, ok := u.(ExistGenr)
	return ok && g.Variable == o.Variable && g.Form.Equals(o.Form)
}

// Falsum is the constant ⊥.
type Falsum struct{}

func (Falsum) isExp() {}

func (Falsum) String() string { return "⊥" }

// Equals reports whether u is also Falsum.
func (Falsum) Equals(u Exp) bool {
	_, ok := u.(Falsum)
	return ok
}

// Negated returns Neg(e).
func Negated(e Exp) Exp {
	return Neg{Inner: e}
}

// FreeVariables returns the set of identifiers appearing as individuals
// in atoms within e, minus those bound by an enclosing quantifier over
// that identifier. Bound variable names in quantifiers are not themselves
// free.
func FreeVariables(e Exp) map[string]bool {
	vars := make(map[string]bool)
	addFreeVariables(e, vars)
	return vars
}

func addFreeVariables(e Exp, out map[string]bool) {
	switch v := e.(type) {
	case Atom:
		for _, ind := range v.Individuals {
			out[ind] = true
		}
	case Cond:
		addFreeVariables(v.Antecedent, out)
		addFreeVariables(v.Consequent, out)
	case Iff:
		addFreeVariables(v.Lhs, out)
		addFreeVariables(v.Rhs, out)
	case And:
		addFreeVariables(v.Lhs, out)
		addFreeVariables(v.Rhs, out)
	case Or:
		addFreeVariables(v.Lhs, out)
		addFreeVariables(v.Rhs, out)
	case Neg:
		addFreeVariables(v.Inner, out)
	case UnivGenr:
		inner := make(map[string]bool)
		addFreeVariables(v.Form, inner)
		delete(inner, v.Variable)
		for k := range inner {
			out[k] = true
		}
	case ExistGenr:
		inner := make(map[string]bool)
		addFreeVariables(v.Form, inner)
		delete(inner, v.Variable)
		for k := range inner {
			out[k] = true
		}
	case Falsum:
		// no individuals
	}
}

// SetDifference returns the elements of a that are not in b.
func SetDifference(a, b map[string]bool) map[string]bool {
	diff := make(map[string]bool)
	for k := range a {
		if !b[k] {
			diff[k] = true
		}
	}
	return diff
}

// SortedKeys returns the keys of a string set in sorted order, for
// deterministic iteration (e.g. error messages, the unique-difference
// check in quantifier rules).
func SortedKeys(s map[string]bool) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// VarReplaced returns a new expression in which every *free* occurrence
// of the individual alpha is replaced with beta. Under a quantifier
// binding alpha, the inner form is returned unchanged: this is not a
// capture-avoiding (alpha-renaming) substitution in general, only
// sufficient for checking (not deriving) quantifier rules, whose side
// conditions independently guard against capture.
func VarReplaced(e Exp, alpha, beta string) Exp {
	switch v := e.(type) {
	case Atom:
		individuals := make([]string, len(v.Individuals))
		for i, ind := range v.Individuals {
			if ind == alpha {
				individuals[i] = beta
			} else {
				individuals[i] = ind
			}
		}
		return Atom{Predicate: v.Predicate, Individuals: individuals}
	case Cond:
		return Cond{Antecedent: VarReplaced(v.Antecedent, alpha, beta), Consequent: VarReplaced(v.Consequent, alpha, beta)}
	case Iff:
		return Iff{Lhs: VarReplaced(v.Lhs, alpha, beta), Rhs: VarReplaced(v.Rhs, alpha, beta)}
	case And:
		return And{Lhs: VarReplaced(v.Lhs, alpha, beta), Rhs: VarReplaced(v.Rhs, alpha, beta)}
	case Or:
		return Or{Lhs: VarReplaced(v.Lhs, alpha, beta), Rhs: VarReplaced(v.Rhs, alpha, beta)}
	case Neg:
		return Neg{Inner: VarReplaced(v.Inner, alpha, beta)}
	case UnivGenr:
		if v.Variable == alpha {
			return v
		}
		return UnivGenr{Variable: v.Variable, Form: VarReplaced(v.Form, alpha, beta)}
	case ExistGenr:
		if v.Variable == alpha {
			return v
		}
		return ExistGenr{Variable: v.Variable, Form: VarReplaced(v.Form, alpha, beta)}
	case Falsum:
		return v
	default:
		return e
	}
}
