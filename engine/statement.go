package engine

import (
	"strings"

	"zpm/errors"
	"zpm/store"
)

// StatementKind classifies a line of source
type StatementKind int

const (
	StatementAssignment StatementKind = iota
	StatementPrint
	StatementFor
)

// String returns the keyword-ish name of the kind, used in logs
func (k StatementKind) String() string {
	switch k {
	case StatementAssignment:
		return "assignment"
	case StatementPrint:
		return "print"
	case StatementFor:
		return "for"
	default:
		return "unknown"
	}
}

const (
	keywordPrint  = "PRINT"
	keywordFor    = "FOR"
	keywordEndFor = "ENDFOR"
)

// AssignmentOperators lists the operators recognised as the second token of an assignment
var AssignmentOperators = []string{"=", "+=", "-=", "*="}

// Statement is one classified line. It is built, executed and dropped;
// nothing keeps it between lines.
type Statement struct {
	Kind StatementKind
	// Line is the normalised source: trailing ';' removed and trimmed
	Line string
	// Name is the target variable of an assignment or PRINT
	Name string
	// Operator and Operand are set for assignments only
	Operator string
	Operand  string
}

// ForLoop is the parsed header and body of a FOR statement
type ForLoop struct {
	Count int32
	// Body holds the trimmed, non-empty commands between the count and the last ENDFOR
	Body []string
	// Trailer is whatever follows the last ENDFOR on the same line
	Trailer string
}

// ParseStatement classifies one line. Extra tokens after an assignment's
// operand are dropped, so an unquoted multi-word operand keeps its first word.
func ParseStatement(line string) (Statement, error) {
	line = normalizeLine(line)
	tokens := fields(line)

	head := ""
	if len(tokens) > 0 {
		head = tokens[0]
	}

	switch {
	case head == keywordPrint:
		if len(tokens) < 2 {
			return Statement{}, errors.NewSyntaxError("Invalid PRINT syntax")
		}
		return Statement{Kind: StatementPrint, Line: line, Name: tokens[1]}, nil

	case head == keywordFor:
		return Statement{Kind: StatementFor, Line: line}, nil

	case len(tokens) >= 3 && IsAssignmentOperator(tokens[1]):
		return Statement{
			Kind:     StatementAssignment,
			Line:     line,
			Name:     tokens[0],
			Operator: tokens[1],
			Operand:  tokens[2],
		}, nil

	default:
		return Statement{}, errors.NewUnknownCommandError(head)
	}
}

// ParseForLoop splits a normalised FOR line into count, body and trailer
func ParseForLoop(line string) (ForLoop, error) {
	parts := splitN(line, 3)
	if len(parts) < 3 {
		return ForLoop{}, errors.NewSyntaxError("Invalid FOR loop syntax")
	}

	count, ok := store.ParseInteger(parts[1])
	if !ok || count < 0 {
		return ForLoop{}, errors.NewSyntaxError("Invalid number of iterations").
			WithContext("count", parts[1])
	}

	// The last marker closes the loop, so ENDFOR may appear inside the body as data.
	end := strings.LastIndex(parts[2], keywordEndFor)
	if end < 0 {
		return ForLoop{}, errors.NewSyntaxError("Invalid FOR loop syntax")
	}

	var body []string
	for _, command := range strings.Split(parts[2][:end], ";") {
		if command = Trim(command); command != "" {
			body = append(body, command)
		}
	}

	return ForLoop{
		Count:   count,
		Body:    body,
		Trailer: Trim(parts[2][end+len(keywordEndFor):]),
	}, nil
}

// IsAssignmentOperator reports whether op is one of AssignmentOperators
func IsAssignmentOperator(op string) bool {
	for _, candidate := range AssignmentOperators {
		if op == candidate {
			return true
		}
	}
	return false
}

// normalizeLine trims the line and removes one trailing ';'
func normalizeLine(line string) string {
	line = Trim(line)
	if strings.HasSuffix(line, ";") {
		line = Trim(line[:len(line)-1])
	}
	return line
}

// isSpace matches the whitespace class used to separate tokens
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Trim strips ASCII control characters and spaces from both ends. A line
// that trims to nothing is blank.
func Trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}

func fields(s string) []string {
	return strings.FieldsFunc(s, isSpace)
}

// splitN splits s on whitespace runs into at most n parts; the last part
// keeps its inner whitespace untouched.
func splitN(s string, n int) []string {
	var parts []string
	for len(parts) < n-1 {
		s = strings.TrimLeftFunc(s, isSpace)
		if s == "" {
			return parts
		}
		end := strings.IndexFunc(s, isSpace)
		if end < 0 {
			return append(parts, s)
		}
		parts = append(parts, s[:end])
		s = s[end:]
	}

	if s = strings.TrimLeftFunc(s, isSpace); s != "" {
		parts = append(parts, s)
	}
	return parts
}
