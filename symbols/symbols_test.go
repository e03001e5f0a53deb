package symbols

import "testing"

func TestConsume(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		tag      Tag
		wantRest string
		wantOK   bool
	}{
		{"canonical or", "∨Q", Or, "Q", true},
		{"ascii or", "|Q", Or, "Q", true},
		{"canonical implies", "→Q", Implies, "Q", true},
		{"ascii implies", "->Q", Implies, "Q", true},
		{"canonical iff", "↔Q", Iff, "Q", true},
		{"ascii iff", "<->Q", Iff, "Q", true},
		{"canonical not", "¬Q", Not, "Q", true},
		{"ascii not", "-Q", Not, "Q", true},
		{"canonical exists", "∃x)", Exists, "x)", true},
		{"ascii exists", "]x)", Exists, "x)", true},
		{"canonical falsum", "⊥", FalsumTag, "", true},
		{"ascii falsum", `\bot`, FalsumTag, "", true},
		{"and has one spelling", "&P", And, "P", true},
		{"no match", "Q", Or, "Q", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rest, ok := Consume(test.s, test.tag)
			if ok != test.wantOK || rest != test.wantRest {
				t.Errorf("Consume(%q, %v) = (%q, %v), want (%q, %v)", test.s, test.tag, rest, ok, test.wantRest, test.wantOK)
			}
		})
	}
}

func TestIdentifierClassification(t *testing.T) {
	tests := []struct {
		sym            string
		wantConstant   bool
		wantVariable   bool
		wantPredicate  bool
	}{
		{"a", true, false, false},
		{"t", true, false, false},
		{"u", false, true, false},
		{"z", false, true, false},
		{"x_2", false, true, false},
		{"a_12", true, false, false},
		{"P", false, false, true},
		{"P_10", false, false, true},
		{"", false, false, false},
		{"a_", false, false, false},
		{"a_x", false, false, false},
	}
	for _, test := range tests {
		t.Run(test.sym, func(t *testing.T) {
			if got := IsIndividualConstant(test.sym); got != test.wantConstant {
				t.Errorf("IsIndividualConstant(%q) = %v, want %v", test.sym, got, test.wantConstant)
			}
			if got := IsIndividualVariable(test.sym); got != test.wantVariable {
				t.Errorf("IsIndividualVariable(%q) = %v, want %v", test.sym, got, test.wantVariable)
			}
			if got := IsPredicate(test.sym); got != test.wantPredicate {
				t.Errorf("IsPredicate(%q) = %v, want %v", test.sym, got, test.wantPredicate)
			}
		})
	}
}

func TestScanIndividual(t *testing.T) {
	tests := []struct {
		s        string
		wantTok  string
		wantRest string
		wantOK   bool
	}{
		{"xyz", "x", "yz", true},
		{"y_2a", "y_2", "a", true},
		{"Pxy", "", "Pxy", false},
		{"", "", "", false},
	}
	for _, test := range tests {
		tok, rest, ok := ScanIndividual(test.s)
		if tok != test.wantTok || rest != test.wantRest || ok != test.wantOK {
			t.Errorf("ScanIndividual(%q) = (%q, %q, %v), want (%q, %q, %v)",
				test.s, tok, rest, ok, test.wantTok, test.wantRest, test.wantOK)
		}
	}
}

func TestScanDimension(t *testing.T) {
	n, rest, ok := ScanDimension("^12xy")
	if !ok || n != 12 || rest != "xy" {
		t.Errorf("ScanDimension(^12xy) = (%d, %q, %v), want (12, \"xy\", true)", n, rest, ok)
	}
	if _, _, ok := ScanDimension("^"); ok {
		t.Errorf("ScanDimension(^) should fail with no digits")
	}
	if _, _, ok := ScanDimension("x"); ok {
		t.Errorf("ScanDimension(x) should fail without leading ^")
	}
}
