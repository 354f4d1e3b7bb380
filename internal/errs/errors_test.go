package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestPredicates(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"input", &InputError{Path: "a.pdf", Err: base}, IsInput},
		{"render", &RenderError{Backend: "mupdf", Page: 3, Err: base}, IsRender},
		{"resource", &ResourceError{Op: "mkdir", Path: "out", Err: base}, IsResource},
		{"config", &ConfigError{Field: "quality", Reason: "out of range"}, IsConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.pred(tt.err) {
				t.Errorf("Predicate rejected its own type: %v", tt.err)
			}
			// Wrapping must not hide the type.
			wrapped := fmt.Errorf("compress document: %w", tt.err)
			if !tt.pred(wrapped) {
				t.Errorf("Predicate failed on wrapped error: %v", wrapped)
			}
		})
	}
}

func TestPredicatesRejectOtherTypes(t *testing.T) {
	err := &InputError{Path: "a.pdf", Err: errors.New("bad xref")}
	if IsRender(err) || IsResource(err) || IsConfig(err) {
		t.Error("Input error matched an unrelated predicate")
	}
	if IsInput(errors.New("plain")) {
		t.Error("Plain error matched the input predicate")
	}
}

func TestUnwrap(t *testing.T) {
	base := errors.New("disk full")
	err := &ResourceError{Op: "write", Path: "out/a.pdf", Err: base}
	if !errors.Is(err, base) {
		t.Error("Expected the cause to survive unwrapping")
	}
}

func TestErrorMessages(t *testing.T) {
	err := &RenderError{Backend: "mupdf", Page: 2, Err: errors.New("timeout")}
	want := "render error: backend mupdf page 2: timeout"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
