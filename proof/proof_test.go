package proof

import (
	"reflect"
	"testing"
)

func TestInsertRenumbersCitations(t *testing.T) {
	rows := []Row{
		{Sentence: "P", Rule: "P"},
		{Sentence: "Q", Rule: "P"},
		{Sentence: "(P & Q)", Rule: "1, 2 &I"},
	}
	got := Insert(rows, 1)
	want := []Row{
		{Sentence: "P", Rule: "P"},
		{},
		{Sentence: "Q", Rule: "P"},
		{Sentence: "(P & Q)", Rule: "1, 3 &I"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Insert(rows, 1) = %#v, want %#v", got, want)
	}
}

func TestInsertAtHead(t *testing.T) {
	rows := []Row{{Sentence: "P", Rule: "P"}}
	got := Insert(rows, 0)
	want := []Row{{}, {Sentence: "P", Rule: "P"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Insert(rows, 0) = %#v, want %#v", got, want)
	}
}

func TestInsertAtTail(t *testing.T) {
	rows := []Row{{Sentence: "P", Rule: "P"}}
	got := Insert(rows, 1)
	want := []Row{{Sentence: "P", Rule: "P"}, {}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Insert(rows, 1) = %#v, want %#v", got, want)
	}
}

func TestInsertPreservesNonNumericContext(t *testing.T) {
	rows := []Row{
		{Sentence: "P", Rule: "P"},
		{Sentence: "(∃x)Px", Rule: "P"},
		{Sentence: "Q", Rule: "2, 2-2 ∃E"},
	}
	got := Insert(rows, 1)
	if got[3].Rule != "3, 3-3 ∃E" {
		t.Errorf("Rule = %q, want %q", got[3].Rule, "3, 3-3 ∃E")
	}
}

func TestInsertLeavesLowNumbersUnchanged(t *testing.T) {
	rows := []Row{
		{Sentence: "P", Rule: "P"},
		{Sentence: "Q", Rule: "P"},
		{Sentence: "(P & Q)", Rule: "1, 2 &I"},
	}
	got := Insert(rows, 2)
	if got[3].Rule != "1, 2 &I" {
		t.Errorf("Rule = %q, want unchanged %q", got[3].Rule, "1, 2 &I")
	}
}

func TestDeleteDoesNotRenumber(t *testing.T) {
	rows := []Row{
		{Sentence: "P", Rule: "P"},
		{Sentence: "Q", Rule: "P"},
		{Sentence: "(P & Q)", Rule: "1, 2 &I"},
	}
	got := Delete(rows, 1)
	want := []Row{
		{Sentence: "Q", Rule: "P"},
		{Sentence: "(P & Q)", Rule: "1, 2 &I"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Delete(rows, 1) = %#v, want %#v (rule citations left dangling)", got, want)
	}
}

func TestChangeSentenceAndRule(t *testing.T) {
	rows := []Row{{Sentence: "P", Rule: "P"}}
	got := ChangeSentence(rows, 1, "Q")
	if got[0].Sentence != "Q" {
		t.Errorf("ChangeSentence: Sentence = %q, want %q", got[0].Sentence, "Q")
	}
	if rows[0].Sentence != "P" {
		t.Errorf("ChangeSentence mutated the original slice")
	}
	got2 := ChangeRule(rows, 1, "1 &E")
	if got2[0].Rule != "1 &E" {
		t.Errorf("ChangeRule: Rule = %q, want %q", got2[0].Rule, "1 &E")
	}
}
