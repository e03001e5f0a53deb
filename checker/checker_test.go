package checker

import (
	"reflect"
	"sort"
	"testing"

	"github.com/jangjunha/elementary-logic-validator/proof"
)

func depNums(d Dependency) []int {
	nums := make([]int, 0, len(d.Nums))
	for n := range d.Nums {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

func TestAndIntro(t *testing.T) {
	rows := []proof.Row{
		{Sentence: "P", Rule: "P"},
		{Sentence: "Q", Rule: "P"},
		{Sentence: "(P & Q)", Rule: "1, 2 &I"},
	}
	deps, valid := Check(rows)
	wantDeps := [][]int{{1}, {2}, {1, 2}}
	for i, d := range deps {
		if !d.Complete || !reflect.DeepEqual(depNums(d), wantDeps[i]) {
			t.Errorf("row %d: deps = %v complete=%v, want %v", i+1, depNums(d), d.Complete, wantDeps[i])
		}
	}
	if !reflect.DeepEqual(valid, []bool{true, true, true}) {
		t.Errorf("valid = %v, want all true", valid)
	}
}

func TestAndExclude(t *testing.T) {
	rows := []proof.Row{
		{Sentence: "(P & Q)", Rule: "P"},
		{Sentence: "P", Rule: "1 &E"},
	}
	deps, valid := Check(rows)
	wantDeps := [][]int{{1}, {1}}
	for i, d := range deps {
		if !reflect.DeepEqual(depNums(d), wantDeps[i]) {
			t.Errorf("row %d: deps = %v, want %v", i+1, depNums(d), wantDeps[i])
		}
	}
	if !reflect.DeepEqual(valid, []bool{true, true}) {
		t.Errorf("valid = %v, want all true", valid)
	}
}

func TestModusPonens(t *testing.T) {
	rows := []proof.Row{
		{Sentence: "(P → Q)", Rule: "P"},
		{Sentence: "P", Rule: "P"},
		{Sentence: "Q", Rule: "1, 2 →E"},
	}
	deps, valid := Check(rows)
	wantDeps := [][]int{{1}, {2}, {1, 2}}
	for i, d := range deps {
		if !reflect.DeepEqual(depNums(d), wantDeps[i]) {
			t.Errorf("row %d: deps = %v, want %v", i+1, depNums(d), wantDeps[i])
		}
	}
	if !reflect.DeepEqual(valid, []bool{true, true, true}) {
		t.Errorf("valid = %v, want all true", valid)
	}
}

// TestOrElimWithSubproofs exercises ∨E and the →I it discharges into,
// using the full worked proof of (-P -> Q) from (P∨Q), rather than the
// abbreviated six-row form: the abbreviated form's row 3 and row 6 do
// not share a formula with the eventual conclusion, so it cannot
// satisfy the ∨E equal-conclusion check under the rule as specified
// here. The composite below is internally consistent end to end.
func TestOrElimWithSubproofs(t *testing.T) {
	rows := []proof.Row{
		{Sentence: "(P ∨ Q)", Rule: "P"},
		{Sentence: "-P", Rule: "P"},
		{Sentence: "P", Rule: "P"},
		{Sentence: `\bot`, Rule: "2, 3 ->E"},
		{Sentence: "Q", Rule: `4 \bot`},
		{Sentence: "Q", Rule: "P"},
		{Sentence: "Q", Rule: "1, 3-5, 6-6 |E"},
		{Sentence: "(-P -> Q)", Rule: "2-7 ->I"},
	}
	deps, valid := Check(rows)
	wantDeps := [][]int{{1}, {2}, {3}, {2, 3}, {2, 3}, {6}, {1, 2}, {1}}
	for i, d := range deps {
		if !d.Complete || !reflect.DeepEqual(depNums(d), wantDeps[i]) {
			t.Errorf("row %d: deps = %v complete=%v, want %v", i+1, depNums(d), d.Complete, wantDeps[i])
		}
	}
	for i, v := range valid {
		if !v {
			t.Errorf("row %d: valid = false, want true", i+1)
		}
	}
}

func TestUnivElimExistIntro(t *testing.T) {
	rows := []proof.Row{
		{Sentence: "(x)Px", Rule: "P"},
		{Sentence: "Pa", Rule: "1 ()E"},
		{Sentence: "(∃x)Px", Rule: "2 ∃I"},
	}
	deps, valid := Check(rows)
	wantDeps := [][]int{{1}, {1}, {1}}
	for i, d := range deps {
		if !reflect.DeepEqual(depNums(d), wantDeps[i]) {
			t.Errorf("row %d: deps = %v, want %v", i+1, depNums(d), wantDeps[i])
		}
	}
	if !reflect.DeepEqual(valid, []bool{true, true, true}) {
		t.Errorf("valid = %v, want all true", valid)
	}
}

func TestEigenvariableViolation(t *testing.T) {
	rows := []proof.Row{
		{Sentence: "Pa", Rule: "P"},
		{Sentence: "(x)Px", Rule: "1 ()I"},
	}
	_, valid := Check(rows)
	if valid[1] {
		t.Errorf("row 2: valid = true, want false (a is free in row 1, a premise in its own dependency set)")
	}
}

func TestPremiseInvariant(t *testing.T) {
	rows := []proof.Row{
		{Sentence: "anything at all not even parseable (((", Rule: "P"},
	}
	deps, valid := Check(rows)
	if !valid[0] {
		t.Errorf("premise row must always be valid, got false")
	}
	if !deps[0].Complete || !reflect.DeepEqual(depNums(deps[0]), []int{1}) {
		t.Errorf("premise row dependency = %v complete=%v, want {1} complete", depNums(deps[0]), deps[0].Complete)
	}
}

func TestExFalsoAnyConclusion(t *testing.T) {
	rows := []proof.Row{
		{Sentence: "⊥", Rule: "P"},
		{Sentence: "(P & (Q ∨ R))", Rule: `1 \bot`},
	}
	_, valid := Check(rows)
	if !valid[1] {
		t.Errorf("ex falso row must be valid for any conclusion")
	}
}

func TestReferenceMissTurnsOffCompleteness(t *testing.T) {
	rows := []proof.Row{
		{Sentence: "Q", Rule: "1, 2 &I"},
	}
	deps, valid := Check(rows)
	if deps[0].Complete {
		t.Errorf("dependency should be incomplete when cited rows do not exist")
	}
	if valid[0] {
		t.Errorf("rule should be invalid when cited rows do not exist")
	}
}

func TestUnparseableRuleIsInvalidAndIncomplete(t *testing.T) {
	rows := []proof.Row{
		{Sentence: "P", Rule: "not a rule"},
	}
	deps, valid := Check(rows)
	if deps[0].Complete {
		t.Errorf("dependency should be incomplete for an unparseable rule")
	}
	if valid[0] {
		t.Errorf("rule should be invalid when unparseable")
	}
}

// TestDependencyMonotonicityUnderInsert mirrors inserting a fresh row
// into an existing proof and renumbering citations: every pre-existing
// row's validity and the logical content of its dependency set should
// be unchanged, only the labels shift.
func TestDependencyMonotonicityUnderInsert(t *testing.T) {
	before := []proof.Row{
		{Sentence: "P", Rule: "P"},
		{Sentence: "Q", Rule: "P"},
		{Sentence: "(P & Q)", Rule: "1, 2 &I"},
	}
	after := proof.Insert(before, 1)
	depsBefore, validBefore := Check(before)
	depsAfter, validAfter := Check(after)

	// row 1 is unaffected by the insertion point (afterNum=1 inserts
	// after it), row indices 2,3 before correspond to 3,4 after.
	if !reflect.DeepEqual(depNums(depsBefore[0]), depNums(depsAfter[0])) {
		t.Errorf("row 1 dependency changed: %v vs %v", depNums(depsBefore[0]), depNums(depsAfter[0]))
	}
	if validBefore[0] != validAfter[0] {
		t.Errorf("row 1 validity changed across insertion")
	}
	// row 2 (Q;P) becomes row 3; its dependency content is still {2} -> {3}.
	if !reflect.DeepEqual(depNums(depsAfter[2]), []int{3}) {
		t.Errorf("shifted row 3 dependency = %v, want {3}", depNums(depsAfter[2]))
	}
	if !validAfter[2] {
		t.Errorf("shifted row 3 should remain valid")
	}
	// row 3 (the &I row) becomes row 4, citing 1 and 3 now instead of 1 and 2.
	if !reflect.DeepEqual(depNums(depsAfter[3]), []int{1, 3}) {
		t.Errorf("shifted row 4 dependency = %v, want {1,3}", depNums(depsAfter[3]))
	}
	if !validAfter[3] {
		t.Errorf("shifted row 4 should remain valid")
	}
}
