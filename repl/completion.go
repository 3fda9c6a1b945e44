package repl

import (
	"sort"
	"strings"

	"zpm/store"
)

var (
	statementKeywords = []string{"PRINT", "FOR", "ENDFOR"}
	replCommands      = []string{":help", ":vars", ":history", ":run", ":load", ":save", ":quit", ":exit"}
)

// StatementCompleter implements readline.AutoCompleter over keywords,
// REPL commands and the names currently held in the store.
type StatementCompleter struct {
	vars *store.Store
}

// NewStatementCompleter creates a completer reading names from vars
func NewStatementCompleter(vars *store.Store) *StatementCompleter {
	return &StatementCompleter{vars: vars}
}

// findWordBoundaries finds the start of the word ending at pos. Words
// are runs of anything but whitespace and ';'.
func (sc *StatementCompleter) findWordBoundaries(line []rune, pos int) (start, end int) {
	start = pos
	for start > 0 {
		r := line[start-1]
		if r == ' ' || r == '\t' || r == ';' {
			break
		}
		start--
	}
	return start, pos
}

// Candidates returns the sorted completions for a word prefix. Commands
// are offered only at the start of the line.
func (sc *StatementCompleter) Candidates(prefix string, atLineStart bool) []string {
	var pool []string
	if atLineStart && strings.HasPrefix(prefix, ":") {
		pool = replCommands
	} else {
		pool = append(pool, statementKeywords...)
		if sc.vars != nil {
			pool = append(pool, sc.vars.Names()...)
		}
	}

	seen := make(map[string]bool)
	var matches []string
	for _, candidate := range pool {
		if strings.HasPrefix(candidate, prefix) && candidate != prefix && !seen[candidate] {
			seen[candidate] = true
			matches = append(matches, candidate)
		}
	}
	sort.Strings(matches)
	return matches
}

// Do returns the suffixes completing the word under the cursor
func (sc *StatementCompleter) Do(line []rune, pos int) ([][]rune, int) {
	if pos > len(line) {
		pos = len(line)
	}
	start, end := sc.findWordBoundaries(line, pos)
	prefix := string(line[start:end])
	atLineStart := strings.TrimSpace(string(line[:start])) == ""

	var suggestions [][]rune
	for _, candidate := range sc.Candidates(prefix, atLineStart) {
		suggestions = append(suggestions, []rune(candidate[len(prefix):]))
	}
	return suggestions, len([]rune(prefix))
}
