package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestCalcError_String(t *testing.T) {
	tests := []struct {
		name     string
		err      *CalcError
		expected string
	}{
		{
			name:     "message only",
			err:      &CalcError{Message: "something went wrong"},
			expected: "something went wrong",
		},
		{
			name: "with hints",
			err: &CalcError{
				Message: "Operation #9 doesn't exist.",
				Hints:   []string{"valid indices are 0 - 2"},
			},
			expected: "Operation #9 doesn't exist.\n  valid indices are 0 - 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.String()
			if got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
			if tt.err.Error() != got {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), got)
			}
		})
	}
}

func TestCalcError_PrettyString(t *testing.T) {
	err := &CalcError{
		Message: "Cannot add new option - Not enough space available in list.",
		Hints:   []string{"use 'resize'", "use 'del'"},
	}
	want := "Cannot add new option - Not enough space available in list.\n  hint: use 'resize'\n    or: use 'del'"
	if got := err.PrettyString(); got != want {
		t.Errorf("PrettyString() = %q, want %q", got, want)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		data      map[string]any
		wantClass ErrorClass
		wantMsg   string
		wantHints int
	}{
		{
			name:      "index out of range",
			code:      IndexOutOfRange,
			data:      map[string]any{"Index": 7, "Last": 3},
			wantClass: ClassIndex,
			wantMsg:   "Operation #7 doesn't exist.",
			wantHints: 1,
		},
		{
			name:      "malformed token",
			code:      MalformedToken,
			data:      map[string]any{"What": "limit", "Token": "abc"},
			wantClass: ClassFormat,
			wantMsg:   "Bad input of limit: 'abc' is not an integer.",
		},
		{
			name:      "range",
			code:      RangeError,
			data:      map[string]any{"Min": 3, "Max": 100},
			wantClass: ClassRange,
			wantMsg:   "Input is out of range - range can be only between 3-100.",
		},
		{
			name:      "no data keeps template",
			code:      InvalidYesNo,
			wantClass: ClassAnswer,
			wantMsg:   "Answer invalid - expected one character ( y / n ).",
		},
		{
			name:      "unknown code",
			code:      "NOPE-0001",
			data:      map[string]any{"message": "custom"},
			wantClass: ClassCommand,
			wantMsg:   "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.data)
			if err.Class != tt.wantClass {
				t.Errorf("Class = %q, want %q", err.Class, tt.wantClass)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if len(err.Hints) != tt.wantHints {
				t.Errorf("got %d hints, want %d", len(err.Hints), tt.wantHints)
			}
		})
	}
}

func TestCatalogTemplatesRender(t *testing.T) {
	data := map[string]any{
		"What": "x", "Token": "y", "Index": 1, "Last": 2, "Limit": 3,
		"Min": 3, "Max": 100, "Command": "c", "Path": "p", "Want": 2, "Got": 1,
	}
	for code := range ErrorCatalog {
		err := New(code, data)
		if strings.Contains(err.Message, "{{") {
			t.Errorf("%s: template not rendered: %q", code, err.Message)
		}
		for _, hint := range err.Hints {
			if strings.Contains(hint, "{{") {
				t.Errorf("%s: hint template not rendered: %q", code, hint)
			}
		}
	}
}

func TestIs(t *testing.T) {
	err := New(ProtectedEntry, map[string]any{"Index": 1})
	wrapped := fmt.Errorf("deleting: %w", err)

	if !Is(wrapped, ProtectedEntry) {
		t.Error("expected wrapped error to match its code")
	}
	if Is(wrapped, IndexOutOfRange) {
		t.Error("expected no match for a different code")
	}
	if !stderrors.Is(wrapped, Sentinel(ProtectedEntry)) {
		t.Error("expected errors.Is to match the sentinel")
	}
	if Code(wrapped) != ProtectedEntry {
		t.Errorf("Code() = %q", Code(wrapped))
	}
	if Code(io.EOF) != "" {
		t.Error("expected empty code for foreign errors")
	}
}

func TestWithCause(t *testing.T) {
	err := New(UnexpectedEnd, map[string]any{"What": "limit"}).WithCause(io.EOF)
	if !stderrors.Is(err, io.EOF) {
		t.Error("expected cause to be reachable through errors.Is")
	}
	if !Is(err, UnexpectedEnd) {
		t.Error("expected code to survive WithCause")
	}
}

func TestWithHintDoesNotShareHints(t *testing.T) {
	base := New(CapacityExceeded, map[string]any{"Limit": 3})
	n := len(base.Hints)
	extended := base.WithHint("extra")
	if len(base.Hints) != n {
		t.Errorf("base hints changed: %v", base.Hints)
	}
	if len(extended.Hints) != n+1 || extended.Hints[n] != "extra" {
		t.Errorf("unexpected hints: %v", extended.Hints)
	}
}

func TestToJSON(t *testing.T) {
	err := New(FileNotFound, map[string]any{"Path": "cmds.txt"})
	data, jerr := err.ToJSON()
	if jerr != nil {
		t.Fatalf("ToJSON failed: %v", jerr)
	}
	var decoded map[string]any
	if jerr := json.Unmarshal(data, &decoded); jerr != nil {
		t.Fatalf("invalid JSON: %v", jerr)
	}
	if decoded["code"] != FileNotFound {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["class"] != string(ClassIO) {
		t.Errorf("class = %v", decoded["class"])
	}
}

func TestNewInvalidCommand(t *testing.T) {
	verbs := []string{"eval", "uni", "inter", "diff", "prod", "comp", "resize", "read", "del", "help", "exit"}

	tests := []struct {
		input      string
		suggestion string
	}{
		{"evl", "eval"},
		{"rsz", "resize"},
		{"qqq", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := NewInvalidCommand(tt.input, verbs)
			if err.Code != InvalidCommand {
				t.Errorf("Code = %q", err.Code)
			}
			if !strings.Contains(err.Message, tt.input) {
				t.Errorf("message %q does not name the command", err.Message)
			}
			hasSuggestion := false
			for _, h := range err.Hints {
				if strings.HasPrefix(h, "Did you mean") {
					hasSuggestion = true
					if !strings.Contains(h, "`"+tt.suggestion+"`") {
						t.Errorf("hint %q, want suggestion %q", h, tt.suggestion)
					}
				}
			}
			if hasSuggestion != (tt.suggestion != "") {
				t.Errorf("suggestion present = %v, hints %v", hasSuggestion, err.Hints)
			}
		})
	}
}
