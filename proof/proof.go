// Package proof models a proof document as an ordered sequence of rows
// and the pure edit operations performed on it: insertion (with
// citation renumbering), deletion, and in-place text replacement.
// Nothing here parses or validates a row's content; that is the job of
// package checker.
package proof

import (
	"strconv"
	"strings"
)

// Row is one line of a proof: a formula and a rule citation, both held
// as raw, possibly unparseable, text.
type Row struct {
	Sentence string
	Rule     string
}

// Insert returns a copy of rows with a new, empty row placed
// immediately after 1-based position afterNum, renumbering every
// citation operand in every row's rule text that refers to a line
// past the insertion point. afterNum == 0 inserts at the head.
//
// Renumbering scans each rule's text for maximal runs of decimal
// digits; any run whose value is strictly greater than afterNum is
// incremented by one. Non-numeric context (commas, dashes, rule tags)
// is preserved verbatim.
func Insert(rows []Row, afterNum int) []Row {
	out := make([]Row, 0, len(rows)+1)
	if afterNum == 0 {
		out = append(out, Row{})
	}
	for i, r := range rows {
		num := i + 1
		out = append(out, Row{Sentence: r.Sentence, Rule: renumber(r.Rule, afterNum)})
		if num == afterNum {
			out = append(out, Row{})
		}
	}
	if afterNum > len(rows) {
		out = append(out, Row{})
	}
	return out
}

// renumber increments every decimal literal in s that is strictly
// greater than afterNum.
func renumber(s string, afterNum int) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if isDigit(s[i]) {
			j := i
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			n, err := strconv.Atoi(s[i:j])
			if err == nil && n > afterNum {
				n++
			}
			b.WriteString(strconv.Itoa(n))
			i = j
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Delete returns a copy of rows with the 1-based row num removed.
// Citations in surviving rows are left untouched: a deletion does not
// renumber, so any citation that pointed at or past num is now
// dangling and will surface downstream as a broken reference, not as a
// silent relabeling.
func Delete(rows []Row, num int) []Row {
	if num < 1 || num > len(rows) {
		return append([]Row(nil), rows...)
	}
	out := make([]Row, 0, len(rows)-1)
	out = append(out, rows[:num-1]...)
	out = append(out, rows[num:]...)
	return out
}

// ChangeSentence returns a copy of rows with row num's formula text
// replaced.
func ChangeSentence(rows []Row, num int, sentence string) []Row {
	return withRow(rows, num, func(r Row) Row {
		r.Sentence = sentence
		return r
	})
}

// ChangeRule returns a copy of rows with row num's rule citation text
// replaced.
func ChangeRule(rows []Row, num int, rule string) []Row {
	return withRow(rows, num, func(r Row) Row {
		r.Rule = rule
		return r
	})
}

func withRow(rows []Row, num int, edit func(Row) Row) []Row {
	out := append([]Row(nil), rows...)
	if num < 1 || num > len(out) {
		return out
	}
	out[num-1] = edit(out[num-1])
	return out
}
