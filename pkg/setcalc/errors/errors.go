// Package errors provides structured error types for the set calculator.
//
// Every failure a command can raise is a CalcError built from the catalog
// below. The interpreter loop renders them with PrettyString and keeps going;
// none of them is fatal to a session.
package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"sort"
	"strings"
	"text/template"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ErrorClass categorizes errors for filtering and templating.
type ErrorClass string

const (
	ClassFormat  ErrorClass = "format"  // Malformed tokens
	ClassIndex   ErrorClass = "index"   // Out of bounds
	ClassState   ErrorClass = "state"   // Registry full or protected
	ClassRange   ErrorClass = "range"   // Value outside allowed range
	ClassCommand ErrorClass = "command" // Unknown verbs
	ClassAnswer  ErrorClass = "answer"  // Bad y/n answers
	ClassIO      ErrorClass = "io"      // Batch files
	ClassArity   ErrorClass = "arity"   // Wrong number of input sets
)

// Catalog codes.
const (
	MalformedToken   = "FORMAT-0001"
	UnexpectedEnd    = "FORMAT-0002"
	IndexOutOfRange  = "INDEX-0001"
	CapacityExceeded = "STATE-0001"
	ProtectedEntry   = "STATE-0002"
	RangeError       = "RANGE-0001"
	InvalidCommand   = "CMD-0001"
	InvalidYesNo     = "ANSWER-0001"
	FileNotFound     = "IO-0001"
	EmptyFile        = "IO-0002"
	RecursiveRead    = "IO-0003"
	ArityMismatch    = "ARITY-0001"
	TooManyInputs    = "ARITY-0002"
)

// CalcError represents any failure raised while executing a command.
type CalcError struct {
	Class   ErrorClass     `json:"class"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Hints   []string       `json:"hints,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *CalcError) Error() string {
	return e.String()
}

// String returns the message followed by any hints, one per line.
func (e *CalcError) String() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	for _, hint := range e.Hints {
		sb.WriteString("\n  ")
		sb.WriteString(hint)
	}
	return sb.String()
}

// PrettyString returns the form printed by the interpreter after "ERROR : ".
func (e *CalcError) PrettyString() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	for i, hint := range e.Hints {
		sb.WriteString("\n  ")
		if i == 0 {
			sb.WriteString("hint: ")
		} else {
			sb.WriteString("  or: ")
		}
		sb.WriteString(hint)
	}
	return sb.String()
}

// ToJSON returns the error as JSON bytes.
func (e *CalcError) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Unwrap returns the underlying error, if any.
func (e *CalcError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a CalcError with the same code, so that
// errors.Is(err, errors.Sentinel(IndexOutOfRange)) works on rendered errors.
func (e *CalcError) Is(target error) bool {
	var t *CalcError
	if !stderrors.As(target, &t) {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithCause returns a copy of the error wrapping cause.
func (e *CalcError) WithCause(cause error) *CalcError {
	copy := *e
	copy.cause = cause
	return &copy
}

// WithHint returns a copy of the error with hint appended.
func (e *CalcError) WithHint(hint string) *CalcError {
	copy := *e
	copy.Hints = append(append([]string(nil), e.Hints...), hint)
	return &copy
}

// ErrorDef defines an error in the catalog.
type ErrorDef struct {
	Class    ErrorClass
	Template string
	Hints    []string
}

// ErrorCatalog maps error codes to their definitions.
var ErrorCatalog = map[string]ErrorDef{
	MalformedToken: {
		Class:    ClassFormat,
		Template: "Bad input of {{.What}}: '{{.Token}}' is not an integer.",
	},
	UnexpectedEnd: {
		Class:    ClassFormat,
		Template: "Unexpected end of input while reading {{.What}}.",
	},
	IndexOutOfRange: {
		Class:    ClassIndex,
		Template: "Operation #{{.Index}} doesn't exist.",
		Hints:    []string{"valid indices are 0 - {{.Last}}"},
	},
	CapacityExceeded: {
		Class:    ClassState,
		Template: "Cannot add new option - Not enough space available in list.",
		Hints:    []string{"use 'resize' to raise the limit (currently {{.Limit}})", "use 'del' to remove an operation"},
	},
	ProtectedEntry: {
		Class:    ClassState,
		Template: "Operation #{{.Index}} cannot be deleted from the list.",
		Hints:    []string{"operations 0 - 2 are built in"},
	},
	RangeError: {
		Class:    ClassRange,
		Template: "Input is out of range - range can be only between {{.Min}}-{{.Max}}.",
	},
	InvalidCommand: {
		Class:    ClassCommand,
		Template: "The entered command '{{.Command}}' doesn't exist.",
	},
	InvalidYesNo: {
		Class:    ClassAnswer,
		Template: "Answer invalid - expected one character ( y / n ).",
	},
	FileNotFound: {
		Class:    ClassIO,
		Template: "File '{{.Path}}' not exists.",
	},
	EmptyFile: {
		Class:    ClassIO,
		Template: "File '{{.Path}}' has no commands.",
	},
	RecursiveRead: {
		Class:    ClassIO,
		Template: "File '{{.Path}}' is already being read.",
	},
	ArityMismatch: {
		Class:    ClassArity,
		Template: "Operation needs {{.Want}} input set(s), got {{.Got}}.",
	},
	TooManyInputs: {
		Class:    ClassArity,
		Template: "Operation would need {{.Got}} input sets - at most {{.Max}} are allowed.",
		Hints:    []string{"combine operations that take fewer input sets"},
	},
}

// New creates a CalcError from the catalog.
// If the code is not found, creates a generic error with the message.
func New(code string, data map[string]any) *CalcError {
	def, ok := ErrorCatalog[code]
	if !ok {
		msg := code
		if data != nil {
			if m, ok := data["message"].(string); ok {
				msg = m
			}
		}
		return &CalcError{
			Class:   ClassCommand,
			Code:    code,
			Message: msg,
			Data:    data,
		}
	}

	msg := renderTemplate(def.Template, data)

	var hints []string
	for _, hintTmpl := range def.Hints {
		rendered := renderTemplate(hintTmpl, data)
		if rendered != "" {
			hints = append(hints, rendered)
		}
	}

	return &CalcError{
		Class:   def.Class,
		Code:    code,
		Message: msg,
		Hints:   hints,
		Data:    data,
	}
}

// Sentinel returns a bare error carrying only code, for use with errors.Is.
func Sentinel(code string) error {
	return &CalcError{Code: code}
}

// Is reports whether any error in err's chain carries code.
func Is(err error, code string) bool {
	return stderrors.Is(err, Sentinel(code))
}

// Code returns the catalog code of err, or "" if err is not a CalcError.
func Code(err error) string {
	var ce *CalcError
	if stderrors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// renderTemplate renders a Go template with the given data.
func renderTemplate(tmplStr string, data map[string]any) string {
	if data == nil {
		return tmplStr
	}

	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return tmplStr
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return tmplStr
	}

	return buf.String()
}

// FindClosestMatch returns the candidate that best matches input, or "".
func FindClosestMatch(input string, candidates []string) string {
	if input == "" || len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(input, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

// NewInvalidCommand creates an unknown-verb error with an optional
// "Did you mean" hint drawn from the known verbs.
func NewInvalidCommand(command string, verbs []string) *CalcError {
	err := New(InvalidCommand, map[string]any{"Command": command})
	if suggestion := FindClosestMatch(command, verbs); suggestion != "" {
		err.Hints = append(err.Hints, "Did you mean `"+suggestion+"`?")
	}
	err.Hints = append(err.Hints, "type 'help' for the list of available commands")
	return err
}
