// Package interpreter provides functions for an interactive proof-editing
// shell and batch checker over the pure operations in packages proof,
// checker, and parse.
package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/multierr"

	"github.com/jangjunha/elementary-logic-validator/checker"
	"github.com/jangjunha/elementary-logic-validator/parse"
	"github.com/jangjunha/elementary-logic-validator/proof"
)

const rowSeparator = ";"

// Interpreter holds one proof document and exposes load, check, show,
// and row-edit commands over it.
type Interpreter struct {
	out  io.Writer
	rows []proof.Row
	path string
}

// New returns an interpreter with an empty document.
func New(out io.Writer) *Interpreter {
	return &Interpreter{out: out}
}

// Load replaces the current document with the rows parsed from the
// file at path, one row per non-blank line as "sentence ; rule".
// Malformed lines are skipped and accumulated into the returned error
// via multierr rather than aborting the whole load.
func (i *Interpreter) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var rows []proof.Row
	var errs error
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		row, err := parseRowLine(line)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return multierr.Append(errs, err)
	}
	i.rows = rows
	i.path = path
	fmt.Fprintf(i.out, "loaded %d row(s) from %s.\n", len(rows), path)
	return errs
}

func parseRowLine(line string) (proof.Row, error) {
	parts := strings.SplitN(line, rowSeparator, 2)
	if len(parts) != 2 {
		return proof.Row{}, fmt.Errorf("expected \"sentence %s rule\", got %q", rowSeparator, line)
	}
	return proof.Row{Sentence: strings.TrimSpace(parts[0]), Rule: strings.TrimSpace(parts[1])}, nil
}

// Rows returns a copy of the current document's rows.
func (i *Interpreter) Rows() []proof.Row {
	return append([]proof.Row(nil), i.rows...)
}

// Check runs the checker over the current document, prints one
// summary line per row (its sentence, rule, dependency set, and
// validity), and returns the per-row validity flags.
func (i *Interpreter) Check() []bool {
	deps, valid := checker.Check(i.rows)
	for idx, row := range i.rows {
		num := idx + 1
		fmt.Fprintf(i.out, "%2d. %-28s %-16s deps=%s valid=%v\n",
			num, row.Sentence, row.Rule, formatDependency(deps[idx]), valid[idx])
	}
	return valid
}

func formatDependency(d checker.Dependency) string {
	nums := make([]int, 0, len(d.Nums))
	for n := range d.Nums {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	parts := make([]string, len(nums))
	for j, n := range nums {
		parts[j] = strconv.Itoa(n)
	}
	set := "{" + strings.Join(parts, ",") + "}"
	if !d.Complete {
		return set + "(incomplete)"
	}
	return set
}

// Show prints the current document. arg "all" prints every row; a
// numeric arg prints the parsed formula and rule of just that row,
// surfacing any parse error.
func (i *Interpreter) Show(arg string) error {
	if arg == "all" || arg == "" {
		for idx, row := range i.rows {
			fmt.Fprintf(i.out, "%2d. %s %s %s\n", idx+1, row.Sentence, rowSeparator, row.Rule)
		}
		return nil
	}
	num, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("show: %q is neither \"all\" nor a row number", arg)
	}
	if num < 1 || num > len(i.rows) {
		return fmt.Errorf("show: row %d out of range (document has %d rows)", num, len(i.rows))
	}
	row := i.rows[num-1]
	exp, expErr := parse.Formula(row.Sentence)
	rule, ruleErr := parse.Rule(row.Rule)
	fmt.Fprintf(i.out, "%2d. sentence: %q\n", num, row.Sentence)
	if expErr != nil {
		fmt.Fprintf(i.out, "    parse error: %v\n", expErr)
	} else {
		fmt.Fprintf(i.out, "    parsed: %s\n", parse.FormatFormula(exp))
	}
	fmt.Fprintf(i.out, "    rule: %q\n", row.Rule)
	if ruleErr != nil {
		fmt.Fprintf(i.out, "    parse error: %v\n", ruleErr)
	} else {
		fmt.Fprintf(i.out, "    parsed: %s\n", parse.FormatRule(rule))
	}
	return nil
}

// Add inserts an empty row after the 1-based position afterNum,
// renumbering downstream citations.
func (i *Interpreter) Add(afterNum int) {
	i.rows = proof.Insert(i.rows, afterNum)
}

// Delete removes the 1-based row num without renumbering.
func (i *Interpreter) Delete(num int) {
	i.rows = proof.Delete(i.rows, num)
}

// ChangeSentence replaces row num's formula text.
func (i *Interpreter) ChangeSentence(num int, sentence string) {
	i.rows = proof.ChangeSentence(i.rows, num, sentence)
}

// ChangeRule replaces row num's rule citation text.
func (i *Interpreter) ChangeRule(num int, rule string) {
	i.rows = proof.ChangeRule(i.rows, num, rule)
}

const prompt = "el >"

func nextLine(rl *readline.Instance) (string, error) {
	line, err := rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ShowHelp prints the command summary.
func (i *Interpreter) ShowHelp() {
	fmt.Fprintln(i.out, `
:load <path>        loads a proof document, one "sentence ; rule" row per line
:check              prints dependency and validity for every row
:show all           prints the raw document
:show <num>         prints row num's parsed formula, rule, and any parse error
:add <after_num>    inserts an empty row after after_num, renumbering citations
:delete <num>       deletes row num (does not renumber)
:sentence <num> <text>   replaces row num's formula text
:rule <num> <text>       replaces row num's rule citation text
:help               display this help text
<Ctrl-D>            quit`)
}

// Loop runs an interactive readline shell until EOF.
func (i *Interpreter) Loop() error {
	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	i.ShowHelp()
	for {
		line, err := nextLine(rl)
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		switch {
		case line == ":help":
			i.ShowHelp()

		case strings.HasPrefix(line, ":load "):
			if err := i.Load(strings.TrimPrefix(line, ":load ")); err != nil {
				fmt.Fprintf(i.out, "load failed: %v\n", err)
			}

		case line == ":check":
			i.Check()

		case strings.HasPrefix(line, ":show"):
			if err := i.Show(strings.TrimSpace(strings.TrimPrefix(line, ":show"))); err != nil {
				fmt.Fprintf(i.out, "%v\n", err)
			}

		case strings.HasPrefix(line, ":add "):
			num, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, ":add ")))
			if err != nil {
				fmt.Fprintf(i.out, "add: %v\n", err)
				continue
			}
			i.Add(num)

		case strings.HasPrefix(line, ":delete "):
			num, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, ":delete ")))
			if err != nil {
				fmt.Fprintf(i.out, "delete: %v\n", err)
				continue
			}
			i.Delete(num)

		case strings.HasPrefix(line, ":sentence "):
			num, text, err := splitNumAndText(strings.TrimPrefix(line, ":sentence "))
			if err != nil {
				fmt.Fprintf(i.out, "sentence: %v\n", err)
				continue
			}
			i.ChangeSentence(num, text)

		case strings.HasPrefix(line, ":rule "):
			num, text, err := splitNumAndText(strings.TrimPrefix(line, ":rule "))
			if err != nil {
				fmt.Fprintf(i.out, "rule: %v\n", err)
				continue
			}
			i.ChangeRule(num, text)

		default:
			fmt.Fprintf(i.out, "unrecognized command: %q (try :help)\n", line)
		}
	}
}

func splitNumAndText(s string) (int, string, error) {
	parts := strings.SplitN(s, " ", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("expected \"<num> <text>\", got %q", s)
	}
	num, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", err
	}
	return num, parts[1], nil
}
