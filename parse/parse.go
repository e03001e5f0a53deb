// Package parse provides hand-rolled recursive-descent parsers for
// formulas and derivation-rule citations, plus a bounded memoization
// cache in front of each.
package parse

import (
	"fmt"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jangjunha/elementary-logic-validator/ast"
	"github.com/jangjunha/elementary-logic-validator/symbols"
)

// Error reports a parse failure against the full original input.
type Error struct {
	Input   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Input, e.Message)
}

const cacheSize = 64

var (
	formulaCache, _ = lru.New[string, formulaResult](cacheSize)
	ruleCache, _    = lru.New[string, ruleResult](cacheSize)
)

type formulaResult struct {
	exp Exp
	err *Error
}

type ruleResult struct {
	rule Rule
	err  *Error
}

// Exp and Rule are re-exported so callers need not import ast directly
// alongside this package.
type (
	Exp  = ast.Exp
	Rule = ast.Rule
)

// Formula parses s as a complete formula, trimming surrounding
// whitespace and requiring the entire input to be consumed.
func Formula(s string) (Exp, error) {
	if cached, ok := formulaCache.Get(s); ok {
		if cached.err != nil {
			return nil, cached.err
		}
		return cached.exp, nil
	}
	exp, err := parseFormulaUncached(s)
	formulaCache.Add(s, formulaResult{exp, errAsParse(err)})
	if err != nil {
		return nil, err
	}
	return exp, nil
}

func errAsParse(err error) *Error {
	if err == nil {
		return nil
	}
	pe, _ := err.(*Error)
	return pe
}

func parseFormulaUncached(s string) (Exp, error) {
	trimmed := strings.TrimSpace(s)
	exp, rest, ok := parseExp(trimmed)
	rest = skipSpace(rest)
	if !ok || rest != "" {
		return nil, &Error{Input: s, Message: "not a well-formed formula"}
	}
	return exp, nil
}

// FormatFormula renders e in canonical form.
func FormatFormula(e Exp) string {
	return e.String()
}

// Rule parses s as a complete derivation-rule citation.
func Rule(s string) (ast.Rule, error) {
	if cached, ok := ruleCache.Get(s); ok {
		if cached.err != nil {
			return nil, cached.err
		}
		return cached.rule, nil
	}
	rule, err := parseRuleUncached(s)
	ruleCache.Add(s, ruleResult{rule, errAsParse(err)})
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func parseRuleUncached(s string) (ast.Rule, error) {
	trimmed := strings.TrimSpace(s)
	rule, rest, ok := parseRule(trimmed)
	rest = skipSpace(rest)
	if !ok || rest != "" {
		return nil, &Error{Input: s, Message: "not a well-formed rule citation"}
	}
	return rule, nil
}

// FormatRule renders r in canonical form.
func FormatRule(r ast.Rule) string {
	return r.String()
}

func skipSpace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[i:]
}

// --- formula grammar ---

func parseExp(s string) (ast.Exp, string, bool) {
	return parseCondExp(s)
}

func parseCondExp(s string) (ast.Exp, string, bool) {
	if lhs, rest, ok := parseBoolExp(s); ok {
		afterArrow := skipSpace(rest)
		if tail, ok2 := symbols.Consume(afterArrow, symbols.Implies); ok2 {
			if rhs, rest2, ok3 := parseCondExp(skipSpace(tail)); ok3 {
				return ast.Cond{Antecedent: lhs, Consequent: rhs}, rest2, true
			}
		}
	}
	if lhs, rest, ok := parseBoolExp(s); ok {
		afterIff := skipSpace(rest)
		if tail, ok2 := symbols.Consume(afterIff, symbols.Iff); ok2 {
			if rhs, rest2, ok3 := parseCondExp(skipSpace(tail)); ok3 {
				return ast.Iff{Lhs: lhs, Rhs: rhs}, rest2, true
			}
		}
	}
	return parseBoolExp(s)
}

func parseBoolExp(s string) (ast.Exp, string, bool) {
	if lhs, rest, ok := parseFactor(s); ok {
		afterAnd := skipSpace(rest)
		if tail, ok2 := symbols.Consume(afterAnd, symbols.And); ok2 {
			if rhs, rest2, ok3 := parseBoolExp(skipSpace(tail)); ok3 {
				return ast.And{Lhs: lhs, Rhs: rhs}, rest2, true
			}
		}
	}
	if lhs, rest, ok := parseFactor(s); ok {
		afterOr := skipSpace(rest)
		if tail, ok2 := symbols.Consume(afterOr, symbols.Or); ok2 {
			if rhs, rest2, ok3 := parseBoolExp(skipSpace(tail)); ok3 {
				return ast.Or{Lhs: lhs, Rhs: rhs}, rest2, true
			}
		}
	}
	return parseFactor(s)
}

func parseFactor(s string) (ast.Exp, string, bool) {
	if e, rest, ok := parseAtom(s); ok {
		return e, rest, true
	}
	if rest, ok := symbols.Consume(s, symbols.FalsumTag); ok {
		return ast.Falsum{}, rest, true
	}
	if rest, ok := symbols.Consume(s, symbols.Not); ok {
		if inner, rest2, ok2 := parseFactor(skipSpace(rest)); ok2 {
			return ast.Neg{Inner: inner}, rest2, true
		}
	}
	if e, rest, ok := parseExistGenr(s); ok {
		return e, rest, true
	}
	if e, rest, ok := parseUnivGenr(s); ok {
		return e, rest, true
	}
	if e, rest, ok := parseParenExp(s); ok {
		return e, rest, true
	}
	return nil, s, false
}

func parseParenExp(s string) (ast.Exp, string, bool) {
	if !strings.HasPrefix(s, "(") {
		return nil, s, false
	}
	inner, rest, ok := parseExp(skipSpace(s[1:]))
	if !ok {
		return nil, s, false
	}
	rest = skipSpace(rest)
	if !strings.HasPrefix(rest, ")") {
		return nil, s, false
	}
	return inner, rest[1:], true
}

func parseUnivGenr(s string) (ast.Exp, string, bool) {
	if !strings.HasPrefix(s, "(") {
		return nil, s, false
	}
	v, rest, ok := symbols.ScanVariable(skipSpace(s[1:]))
	if !ok {
		return nil, s, false
	}
	rest = skipSpace(rest)
	if !strings.HasPrefix(rest, ")") {
		return nil, s, false
	}
	form, rest2, ok := parseFactor(skipSpace(rest[1:]))
	if !ok {
		return nil, s, false
	}
	return ast.UnivGenr{Variable: v, Form: form}, rest2, true
}

func parseExistGenr(s string) (ast.Exp, string, bool) {
	if !strings.HasPrefix(s, "(") {
		return nil, s, false
	}
	rest := skipSpace(s[1:])
	rest, ok := symbols.Consume(rest, symbols.Exists)
	if !ok {
		return nil, s, false
	}
	v, rest2, ok := symbols.ScanVariable(skipSpace(rest))
	if !ok {
		return nil, s, false
	}
	rest2 = skipSpace(rest2)
	if !strings.HasPrefix(rest2, ")") {
		return nil, s, false
	}
	form, rest3, ok := parseFactor(skipSpace(rest2[1:]))
	if !ok {
		return nil, s, false
	}
	return ast.ExistGenr{Variable: v, Form: form}, rest3, true
}

// parseAtom implements the predicate-then-individuals grammar of
// the grammar, including the explicit-count/implicit-greedy
// backtracking behavior at a "^digits" dimension marker: if the
// explicit count cannot be fully satisfied, the atom is returned with
// zero individuals and the marker is left unconsumed, rather than
// falling back to a partial greedy match past it.
func parseAtom(s string) (ast.Exp, string, bool) {
	pred, rest, ok := symbols.ScanPredicate(s)
	if !ok {
		return nil, s, false
	}
	if n, afterDim, ok := symbols.ScanDimension(rest); ok {
		if individuals, afterAll, ok := scanNIndividuals(afterDim, n); ok {
			return ast.NewAtom(pred, individuals...), afterAll, true
		}
	}
	individuals, afterAll := scanGreedyIndividuals(rest)
	return ast.NewAtom(pred, individuals...), afterAll, true
}

func scanNIndividuals(s string, n int) ([]string, string, bool) {
	individuals := make([]string, 0, n)
	cur := s
	for i := 0; i < n; i++ {
		tok, next, ok := symbols.ScanIndividual(skipSpace(cur))
		if !ok {
			return nil, s, false
		}
		individuals = append(individuals, tok)
		cur = next
	}
	return individuals, cur, true
}

func scanGreedyIndividuals(s string) ([]string, string) {
	var individuals []string
	cur := s
	for {
		trimmed := skipSpace(cur)
		tok, next, ok := symbols.ScanIndividual(trimmed)
		if !ok {
			break
		}
		individuals = append(individuals, tok)
		cur = next
	}
	return individuals, cur
}

// --- rule-citation grammar ---

func parseRule(s string) (ast.Rule, string, bool) {
	if s == "P" {
		return ast.Premise{}, "", true
	}
	if r, rest, ok := tryPair(s, "&", "I", func(k, l int) ast.Rule { return ast.AndIntro{K: k, L: l} }); ok {
		return r, rest, true
	}
	if r, rest, ok := trySingle(s, "&", "E", func(k int) ast.Rule { return ast.AndExclude{K: k} }); ok {
		return r, rest, true
	}
	if r, rest, ok := tryOrIntro(s); ok {
		return r, rest, true
	}
	if r, rest, ok := tryOrExclude(s); ok {
		return r, rest, true
	}
	if r, rest, ok := tryIfIntro(s); ok {
		return r, rest, true
	}
	if r, rest, ok := tryPair(s, "→", "E", func(k, l int) ast.Rule { return ast.IfExclude{K: k, L: l} }); ok {
		return r, rest, true
	}
	if r, rest, ok := tryPair(s, "↔", "I", func(k, l int) ast.Rule { return ast.IffIntro{K: k, L: l} }); ok {
		return r, rest, true
	}
	if r, rest, ok := trySingle(s, "↔", "E", func(k int) ast.Rule { return ast.IffExclude{K: k} }); ok {
		return r, rest, true
	}
	if r, rest, ok := tryExFalso(s); ok {
		return r, rest, true
	}
	if r, rest, ok := tryRangeTag(s, "¬", "I", func(rng ast.LineRange) ast.Rule { return ast.NegIntro{Sub: rng} }); ok {
		return r, rest, true
	}
	if r, rest, ok := tryRangeTag(s, "¬", "E", func(rng ast.LineRange) ast.Rule { return ast.NegExclude{Sub: rng} }); ok {
		return r, rest, true
	}
	if r, rest, ok := trySingle(s, "()", "I", func(k int) ast.Rule { return ast.UnivIntro{K: k} }); ok {
		return r, rest, true
	}
	if r, rest, ok := trySingle(s, "()", "E", func(k int) ast.Rule { return ast.UnivExclude{K: k} }); ok {
		return r, rest, true
	}
	if r, rest, ok := tryExistIntro(s); ok {
		return r, rest, true
	}
	if r, rest, ok := tryExistExclude(s); ok {
		return r, rest, true
	}
	return nil, s, false
}

// parseOperandTail trims trailing whitespace and a rule tag spelled as
// one of alt from the end of s, returning the remaining operand text.
// At least one whitespace character is required between the operand
// and the tag (the grammar's mandatory multispace1 separator); a tag
// glued directly onto its operand, e.g. "1,3&I", does not match.
func parseOperandTail(s string, alt ...string) (operands string, ok bool) {
	trimmed := strings.TrimRight(s, " \t")
	for _, a := range alt {
		if !strings.HasSuffix(trimmed, a) {
			continue
		}
		before := trimmed[:len(trimmed)-len(a)]
		if before == "" || !isSpaceOrTab(before[len(before)-1]) {
			continue
		}
		return strings.TrimRight(before, " \t"), true
	}
	return "", false
}

func isSpaceOrTab(c byte) bool { return c == ' ' || c == '\t' }

func tagAlternates(base, suffix string) []string {
	switch base + suffix {
	case "&I", "&E":
		return []string{base + suffix}
	case "∨I":
		return []string{"∨I", "|I"}
	case "∨E":
		return []string{"∨E", "|E"}
	case "→I":
		return []string{"→I", "->I"}
	case "→E":
		return []string{"→E", "->E"}
	case "↔I":
		return []string{"↔I", "<->I"}
	case "↔E":
		return []string{"↔E", "<->E"}
	case "¬I":
		return []string{"¬I", "-I"}
	case "¬E":
		return []string{"¬E", "-E"}
	case "()I":
		return []string{"()I"}
	case "()E":
		return []string{"()E"}
	case "∃I":
		return []string{"∃I", "]I"}
	case "∃E":
		return []string{"∃E", "]E"}
	default:
		return []string{base + suffix}
	}
}

func trySingle(s, base, suffix string, build func(int) ast.Rule) (ast.Rule, string, bool) {
	operands, ok := parseOperandTail(s, tagAlternates(base, suffix)...)
	if !ok {
		return nil, s, false
	}
	k, ok := parseInt(operands)
	if !ok {
		return nil, s, false
	}
	return build(k), "", true
}

func tryPair(s, base, suffix string, build func(int, int) ast.Rule) (ast.Rule, string, bool) {
	operands, ok := parseOperandTail(s, tagAlternates(base, suffix)...)
	if !ok {
		return nil, s, false
	}
	k, l, ok := parseIntPair(operands)
	if !ok {
		return nil, s, false
	}
	return build(k, l), "", true
}

func tryRangeTag(s, base, suffix string, build func(ast.LineRange) ast.Rule) (ast.Rule, string, bool) {
	operands, ok := parseOperandTail(s, tagAlternates(base, suffix)...)
	if !ok {
		return nil, s, false
	}
	rng, ok := parseRange(operands)
	if !ok {
		return nil, s, false
	}
	return build(rng), "", true
}

func tryExFalso(s string) (ast.Rule, string, bool) {
	operands, ok := parseOperandTail(s, symbols.Canonical(symbols.FalsumTag), `\bot`)
	if !ok {
		return nil, s, false
	}
	k, ok := parseInt(operands)
	if !ok {
		return nil, s, false
	}
	return ast.ExFalso{K: k}, "", true
}

func tryOrIntro(s string) (ast.Rule, string, bool) {
	operands, ok := parseOperandTail(s, tagAlternates("∨", "I")...)
	if !ok {
		return nil, s, false
	}
	if k, ok := parseInt(operands); ok {
		return ast.OrIntro{K: k}, "", true
	}
	if k, l, ok := parseIntPair(operands); ok {
		return ast.OrIntro{K: k, L: &l}, "", true
	}
	return nil, s, false
}

func tryOrExclude(s string) (ast.Rule, string, bool) {
	operands, ok := parseOperandTail(s, tagAlternates("∨", "E")...)
	if !ok {
		return nil, s, false
	}
	parts := splitTopLevel(operands)
	if len(parts) != 3 {
		return nil, s, false
	}
	k, ok := parseInt(parts[0])
	if !ok {
		return nil, s, false
	}
	left, ok := parseRange(parts[1])
	if !ok {
		return nil, s, false
	}
	right, ok := parseRange(parts[2])
	if !ok {
		return nil, s, false
	}
	return ast.OrExclude{K: k, Left: left, Right: right}, "", true
}

func tryIfIntro(s string) (ast.Rule, string, bool) {
	operands, ok := parseOperandTail(s, tagAlternates("→", "I")...)
	if !ok {
		return nil, s, false
	}
	if k, ok := parseInt(operands); ok {
		return ast.IfIntro{K1: k}, "", true
	}
	if rng, ok := parseRange(operands); ok {
		k0 := rng.Open
		return ast.IfIntro{K0: &k0, K1: rng.Close}, "", true
	}
	return nil, s, false
}

func tryExistIntro(s string) (ast.Rule, string, bool) {
	return trySingle(s, "∃", "I", func(k int) ast.Rule { return ast.ExistIntro{K: k} })
}

func tryExistExclude(s string) (ast.Rule, string, bool) {
	operands, ok := parseOperandTail(s, tagAlternates("∃", "E")...)
	if !ok {
		return nil, s, false
	}
	parts := splitTopLevel(operands)
	if len(parts) != 2 {
		return nil, s, false
	}
	k, ok := parseInt(parts[0])
	if !ok {
		return nil, s, false
	}
	rng, ok := parseRange(parts[1])
	if !ok {
		return nil, s, false
	}
	return ast.ExistExclude{K: k, Sub: rng}, "", true
}

func splitTopLevel(s string) []string {
	fields := strings.Split(s, ",")
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(f)
	}
	return out
}

func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseIntPair(s string) (int, int, bool) {
	parts := splitTopLevel(s)
	if len(parts) != 2 {
		return 0, 0, false
	}
	k, ok := parseInt(parts[0])
	if !ok {
		return 0, 0, false
	}
	l, ok := parseInt(parts[1])
	if !ok {
		return 0, 0, false
	}
	return k, l, true
}

func parseRange(s string) (ast.LineRange, bool) {
	s = strings.TrimSpace(s)
	i := strings.Index(s, "-")
	if i <= 0 || i == len(s)-1 {
		return ast.LineRange{}, false
	}
	open, ok := parseInt(s[:i])
	if !ok {
		return ast.LineRange{}, false
	}
	closeLine, ok := parseInt(s[i+1:])
	if !ok {
		return ast.LineRange{}, false
	}
	return ast.LineRange{Open: open, Close: closeLine}, true
}
