// Package checker computes, for each row of a proof document, the set
// of premise lines it transitively depends on and whether its cited
// rule is satisfied by its own formula and the formulas of the rows it
// cites. Both computations are pure functions of the row slice: no
// row is ever consulted beyond what its own text and its rule's
// operands name.
package checker

import (
	"github.com/jangjunha/elementary-logic-validator/ast"
	"github.com/jangjunha/elementary-logic-validator/parse"
	"github.com/jangjunha/elementary-logic-validator/proof"
)

// Dependency is the set of premise-row numbers a row transitively
// rests on. Complete is false when the row's own rule, or some rule
// reached while tracing dependencies, fails to parse or cites a row
// that does not exist.
type Dependency struct {
	Complete bool
	Nums     map[int]bool
}

func incomplete() Dependency {
	return Dependency{Complete: false, Nums: map[int]bool{}}
}

func singleton(n int) Dependency {
	return Dependency{Complete: true, Nums: map[int]bool{n: true}}
}

func union(a, b Dependency) Dependency {
	nums := make(map[int]bool, len(a.Nums)+len(b.Nums))
	for n := range a.Nums {
		nums[n] = true
	}
	for n := range b.Nums {
		nums[n] = true
	}
	return Dependency{Complete: a.Complete && b.Complete, Nums: nums}
}

func without(d Dependency, excluded ...int) Dependency {
	nums := make(map[int]bool, len(d.Nums))
	for n := range d.Nums {
		nums[n] = true
	}
	for _, e := range excluded {
		delete(nums, e)
	}
	return Dependency{Complete: d.Complete, Nums: nums}
}

// cache memoizes per-row computation across the recursive dependency
// walk and the rule-validity checks, which both need parsed formulas
// and rules of arbitrary other rows.
type cache struct {
	rows  []proof.Row
	exps  map[int]ast.Exp
	expOK map[int]bool
	rules map[int]ast.Rule
	ruleOK map[int]bool
	deps  map[int]Dependency
	busy  map[int]bool
}

func newCache(rows []proof.Row) *cache {
	return &cache{
		rows:   rows,
		exps:   map[int]ast.Exp{},
		expOK:  map[int]bool{},
		rules:  map[int]ast.Rule{},
		ruleOK: map[int]bool{},
		deps:   map[int]Dependency{},
		busy:   map[int]bool{},
	}
}

func (c *cache) row(num int) (proof.Row, bool) {
	if num < 1 || num > len(c.rows) {
		return proof.Row{}, false
	}
	return c.rows[num-1], true
}

func (c *cache) formula(num int) (ast.Exp, bool) {
	if e, ok := c.expOK[num]; ok {
		return c.exps[num], e
	}
	r, exists := c.row(num)
	if !exists {
		c.expOK[num] = false
		return nil, false
	}
	e, err := parse.Formula(r.Sentence)
	ok := err == nil
	c.expOK[num] = ok
	if ok {
		c.exps[num] = e
	}
	return e, ok
}

func (c *cache) rule(num int) (ast.Rule, bool) {
	if e, ok := c.ruleOK[num]; ok {
		return c.rules[num], e
	}
	r, exists := c.row(num)
	if !exists {
		c.ruleOK[num] = false
		return nil, false
	}
	ru, err := parse.Rule(r.Rule)
	ok := err == nil
	c.ruleOK[num] = ok
	if ok {
		c.rules[num] = ru
	}
	return ru, ok
}

func (c *cache) isPremise(num int) bool {
	ru, ok := c.rule(num)
	if !ok {
		return false
	}
	_, isPremise := ru.(ast.Premise)
	return isPremise
}

// dependency returns the (possibly memoized) dependency of row num,
// per §4.4.1. A row whose rule fails to parse, or that is mid-computation
// on the current call stack (a citation cycle), is treated as incomplete.
func (c *cache) dependency(num int) Dependency {
	if d, ok := c.deps[num]; ok {
		return d
	}
	if c.busy[num] {
		return incomplete()
	}
	c.busy[num] = true
	d := c.computeDependency(num)
	delete(c.busy, num)
	c.deps[num] = d
	return d
}

func (c *cache) computeDependency(num int) Dependency {
	r, ok := c.rule(num)
	if !ok {
		return incomplete()
	}
	switch v := r.(type) {
	case ast.Premise:
		return singleton(num)
	case ast.AndIntro:
		return c.binary(v.K, v.L)
	case ast.AndExclude:
		return c.dependency(v.K)
	case ast.OrIntro:
		if v.L == nil {
			return c.dependency(v.K)
		}
		// §9: uses l directly, not l+1, despite the "l+1" wording in the
		// dependency-computation prose — the rule's own operand is the
		// line to union, not the line after it.
		return c.binary(v.K, *v.L)
	case ast.OrExclude:
		d := union(union(c.dependency(v.K), c.dependency(v.Left.Close)), c.dependency(v.Right.Close))
		return without(d, v.Left.Open, v.Right.Open)
	case ast.IfIntro:
		d := c.dependency(v.K1)
		if v.K0 != nil {
			return without(d, *v.K0)
		}
		return d
	case ast.IfExclude:
		return c.binary(v.K, v.L)
	case ast.IffIntro:
		return c.binary(v.K, v.L)
	case ast.IffExclude:
		return c.dependency(v.K)
	case ast.ExFalso:
		return c.dependency(v.K)
	case ast.NegIntro:
		return without(c.dependency(v.Sub.Close), v.Sub.Open)
	case ast.NegExclude:
		return without(c.dependency(v.Sub.Close), v.Sub.Open)
	case ast.UnivIntro:
		return c.dependency(v.K)
	case ast.UnivExclude:
		return c.dependency(v.K)
	case ast.ExistIntro:
		return c.dependency(v.K)
	case ast.ExistExclude:
		d := union(c.dependency(v.K), c.dependency(v.Sub.Close))
		return without(d, v.Sub.Open)
	default:
		return incomplete()
	}
}

func (c *cache) binary(k, l int) Dependency {
	if _, ok := c.row(k); !ok {
		return incomplete()
	}
	if _, ok := c.row(l); !ok {
		return incomplete()
	}
	return union(c.dependency(k), c.dependency(l))
}

// Check runs the full proof checker over rows and returns, for each
// row in order, its dependency and whether its cited rule is valid.
func Check(rows []proof.Row) (deps []Dependency, valid []bool) {
	c := newCache(rows)
	deps = make([]Dependency, len(rows))
	valid = make([]bool, len(rows))
	for i := range rows {
		num := i + 1
		deps[i] = c.dependency(num)
		valid[i] = c.ruleValid(num)
	}
	return deps, valid
}

func unorderedEqual(a, b, c, d ast.Exp) bool {
	return (a.Equals(c) && b.Equals(d)) || (a.Equals(d) && b.Equals(c))
}

func (c *cache) ruleValid(num int) bool {
	r, ok := c.rule(num)
	if !ok {
		return false
	}
	// A premise row is valid whatever its formula text, parseable or not.
	if _, isPremise := r.(ast.Premise); isPremise {
		return true
	}
	eRow, ok := c.formula(num)
	if !ok {
		return false
	}
	switch v := r.(type) {
	case ast.Premise:
		return true
	case ast.AndIntro:
		ek, ok1 := c.formula(v.K)
		el, ok2 := c.formula(v.L)
		if !ok1 || !ok2 {
			return false
		}
		return eRow.Equals(ast.And{Lhs: ek, Rhs: el})
	case ast.AndExclude:
		ek, ok := c.formula(v.K)
		if !ok {
			return false
		}
		and, isAnd := ek.(ast.And)
		if !isAnd {
			return false
		}
		return eRow.Equals(and.Lhs) || eRow.Equals(and.Rhs)
	case ast.OrIntro:
		or, isOr := eRow.(ast.Or)
		if !isOr {
			return false
		}
		ek, ok := c.formula(v.K)
		if !ok {
			return false
		}
		if v.L == nil {
			return ek.Equals(or.Lhs) || ek.Equals(or.Rhs)
		}
		el, ok := c.formula(*v.L)
		if !ok {
			return false
		}
		return unorderedEqual(ek, el, or.Lhs, or.Rhs)
	case ast.OrExclude:
		ek, ok := c.formula(v.K)
		if !ok {
			return false
		}
		or, isOr := ek.(ast.Or)
		if !isOr {
			return false
		}
		if !c.isPremise(v.Left.Open) || !c.isPremise(v.Right.Open) {
			return false
		}
		el0, ok1 := c.formula(v.Left.Open)
		em0, ok2 := c.formula(v.Right.Open)
		el1, ok3 := c.formula(v.Left.Close)
		em1, ok4 := c.formula(v.Right.Close)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return false
		}
		if !unorderedEqual(or.Lhs, or.Rhs, el0, em0) {
			return false
		}
		return eRow.Equals(el1) && eRow.Equals(em1)
	case ast.IfIntro:
		if v.K0 != nil {
			if !c.isPremise(*v.K0) {
				return false
			}
			ek0, ok1 := c.formula(*v.K0)
			ek1, ok2 := c.formula(v.K1)
			if !ok1 || !ok2 {
				return false
			}
			return eRow.Equals(ast.Cond{Antecedent: ek0, Consequent: ek1})
		}
		ek1, ok := c.formula(v.K1)
		if !ok {
			return false
		}
		cond, isCond := eRow.(ast.Cond)
		return isCond && cond.Consequent.Equals(ek1)
	case ast.IfExclude:
		ek, ok1 := c.formula(v.K)
		el, ok2 := c.formula(v.L)
		if !ok1 || !ok2 {
			return false
		}
		if _, isFalsum := eRow.(ast.Falsum); isFalsum {
			return ek.Equals(ast.Negated(el)) || el.Equals(ast.Negated(ek))
		}
		cond, isCond := ek.(ast.Cond)
		if isCond && cond.Antecedent.Equals(el) && eRow.Equals(cond.Consequent) {
			return true
		}
		cond, isCond = el.(ast.Cond)
		return isCond && cond.Antecedent.Equals(ek) && eRow.Equals(cond.Consequent)
	case ast.IffIntro:
		ek, ok1 := c.formula(v.K)
		el, ok2 := c.formula(v.L)
		if !ok1 || !ok2 {
			return false
		}
		ck, isCk := ek.(ast.Cond)
		cl, isCl := el.(ast.Cond)
		if !isCk || !isCl {
			return false
		}
		iff, isIff := eRow.(ast.Iff)
		if !isIff {
			return false
		}
		return unorderedEqual(iff.Lhs, iff.Rhs, ck.Antecedent, ck.Consequent) &&
			ck.Antecedent.Equals(cl.Consequent) && ck.Consequent.Equals(cl.Antecedent)
	case ast.IffExclude:
		ek, ok := c.formula(v.K)
		if !ok {
			return false
		}
		iff, isIff := ek.(ast.Iff)
		if !isIff {
			return false
		}
		cond, isCond := eRow.(ast.Cond)
		return isCond && unorderedEqual(cond.Antecedent, cond.Consequent, iff.Lhs, iff.Rhs)
	case ast.ExFalso:
		ek, ok := c.formula(v.K)
		if !ok {
			return false
		}
		_, isFalsum := ek.(ast.Falsum)
		return isFalsum
	case ast.NegIntro:
		ek1, ok := c.formula(v.Sub.Close)
		if !ok {
			return false
		}
		if _, isFalsum := ek1.(ast.Falsum); !isFalsum {
			return false
		}
		ek0, ok := c.formula(v.Sub.Open)
		if !ok {
			return false
		}
		return eRow.Equals(ast.Negated(ek0))
	case ast.NegExclude:
		ek1, ok := c.formula(v.Sub.Close)
		if !ok {
			return false
		}
		if _, isFalsum := ek1.(ast.Falsum); !isFalsum {
			return false
		}
		ek0, ok := c.formula(v.Sub.Open)
		if !ok {
			return false
		}
		neg, isNeg := ek0.(ast.Neg)
		return isNeg && eRow.Equals(neg.Inner)
	case ast.UnivIntro:
		genr, isGenr := eRow.(ast.UnivGenr)
		if !isGenr {
			return false
		}
		ek, ok := c.formula(v.K)
		if !ok {
			return false
		}
		beta, ok := uniqueDiff(ast.FreeVariables(ek), ast.FreeVariables(genr.Form))
		if !ok {
			return false
		}
		if !ast.VarReplaced(genr.Form, genr.Variable, beta).Equals(ek) {
			return false
		}
		return !c.freeInDependencyFormulas(beta, v.K)
	case ast.UnivExclude:
		ek, ok := c.formula(v.K)
		if !ok {
			return false
		}
		genr, isGenr := ek.(ast.UnivGenr)
		if !isGenr {
			return false
		}
		beta, ok := uniqueDiff(ast.FreeVariables(eRow), ast.FreeVariables(genr.Form))
		if !ok {
			return false
		}
		return ast.VarReplaced(genr.Form, genr.Variable, beta).Equals(eRow)
	case ast.ExistIntro:
		genr, isGenr := eRow.(ast.ExistGenr)
		if !isGenr {
			return false
		}
		ek, ok := c.formula(v.K)
		if !ok {
			return false
		}
		beta, ok := uniqueDiff(ast.FreeVariables(ek), ast.FreeVariables(genr.Form))
		if !ok {
			return false
		}
		return ast.VarReplaced(genr.Form, genr.Variable, beta).Equals(ek)
	case ast.ExistExclude:
		ek, ok := c.formula(v.K)
		if !ok {
			return false
		}
		genr, isGenr := ek.(ast.ExistGenr)
		if !isGenr {
			return false
		}
		if !c.isPremise(v.Sub.Open) {
			return false
		}
		el, ok := c.formula(v.Sub.Open)
		if !ok {
			return false
		}
		em, ok := c.formula(v.Sub.Close)
		if !ok {
			return false
		}
		diff := ast.SetDifference(ast.FreeVariables(el), ast.FreeVariables(genr.Form))
		diff = ast.SetDifference(diff, ast.FreeVariables(em))
		keys := ast.SortedKeys(diff)
		if len(keys) != 1 {
			return false
		}
		beta := keys[0]
		if !ast.VarReplaced(genr.Form, genr.Variable, beta).Equals(el) {
			return false
		}
		if !em.Equals(eRow) {
			return false
		}
		return !c.freeInRangeExcept(beta, v.Sub.Close, v.Sub.Open)
	default:
		return false
	}
}

// uniqueDiff returns the single element of a−b, failing if that set
// does not have exactly one element.
func uniqueDiff(a, b map[string]bool) (string, bool) {
	diff := ast.SetDifference(a, b)
	keys := ast.SortedKeys(diff)
	if len(keys) != 1 {
		return "", false
	}
	return keys[0], true
}

// freeInDependencyFormulas reports whether beta occurs free in any
// formula whose line number is in dependency(k).nums, treating an
// unparseable referenced formula as satisfying the condition (i.e.
// failing the check).
func (c *cache) freeInDependencyFormulas(beta string, k int) bool {
	d := c.dependency(k)
	if !d.Complete {
		return true
	}
	for n := range d.Nums {
		e, ok := c.formula(n)
		if !ok {
			return true
		}
		if ast.FreeVariables(e)[beta] {
			return true
		}
	}
	return false
}

// freeInRangeExcept reports whether beta occurs free in any formula
// whose line number is in dependency(m).nums, excluding except.
func (c *cache) freeInRangeExcept(beta string, m, except int) bool {
	d := c.dependency(m)
	if !d.Complete {
		return true
	}
	for n := range d.Nums {
		if n == except {
			continue
		}
		e, ok := c.formula(n)
		if !ok {
			return true
		}
		if ast.FreeVariables(e)[beta] {
			return true
		}
	}
	return false
}
