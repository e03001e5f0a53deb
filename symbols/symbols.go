// Package symbols recognizes the connective, quantifier, and identifier
// alphabets of the object language, with both Unicode and ASCII
// spellings of each connective. Parsers in package parse
// consume tokens through this package; the pretty-printer in package
// ast always emits the canonical spelling directly, never an alternate.
package symbols

import "strings"

// Tag names a connective or quantifier independent of which spelling
// was used to write it.
type Tag int

const (
	And Tag = iota
	Or
	Not
	Implies
	Iff
	Exists
	FalsumTag
)

// forms holds the canonical spelling first, then zero or more alternates,
// for each connective. Longer alternates are tried before shorter ones
// where one is a prefix of another (none currently overlap, but the
// ordering is kept explicit for that reason).
var forms = map[Tag][]string{
	And:       {"&"},
	Or:        {"∨", "|"},
	Not:       {"¬", "-"},
	Implies:   {"→", "->"},
	Iff:       {"↔", "<->"},
	Exists:    {"∃", "]"},
	FalsumTag: {"⊥", `\bot`},
}

// Canonical returns the single canonical spelling for tag.
func Canonical(tag Tag) string {
	return forms[tag][0]
}

// Consume tries every known spelling (canonical first) of tag at the
// start of s and returns the remainder after it, or ok=false if none
// matched.
func Consume(s string, tag Tag) (rest string, ok bool) {
	for _, form := range forms[tag] {
		if strings.HasPrefix(s, form) {
			return s[len(form):], true
		}
	}
	return s, false
}

// IsIndividualConstant reports whether sym is lexically an individual
// constant: head letter in a..t, optional _digits subscript.
func IsIndividualConstant(sym string) bool {
	if sym == "" {
		return false
	}
	head := sym[0]
	return head >= 'a' && head <= 't' && validSubscriptTail(sym[1:])
}

// IsIndividualVariable reports whether sym is lexically an individual
// variable: head letter in u..z, optional _digits subscript.
func IsIndividualVariable(sym string) bool {
	if sym == "" {
		return false
	}
	head := sym[0]
	return head >= 'u' && head <= 'z' && validSubscriptTail(sym[1:])
}

// IsIndividual reports whether sym is an individual symbol of either
// class.
func IsIndividual(sym string) bool {
	return IsIndividualConstant(sym) || IsIndividualVariable(sym)
}

// IsPredicate reports whether sym is lexically a predicate symbol:
// head letter A..Z, optional _digits subscript.
func IsPredicate(sym string) bool {
	if sym == "" {
		return false
	}
	head := sym[0]
	return head >= 'A' && head <= 'Z' && validSubscriptTail(sym[1:])
}

// validSubscriptTail reports whether tail is empty or a single
// "_digits" subscript, i.e. what may legally follow a symbol's head
// letter.
func validSubscriptTail(tail string) bool {
	if tail == "" {
		return true
	}
	if tail[0] != '_' || len(tail) < 2 {
		return false
	}
	for _, c := range tail[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
