package labels

import (
	"strings"
	"testing"

	"github.com/zhubert/grove/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		wantErr bool
	}{
		{"simple", "fern", false},
		{"with digits", "fern2", false},
		{"with underscore", "my_feature", false},
		{"with hyphen", "fix-login", false},
		{"mixed case", "Fix-Login_2", false},
		{"single char", "x", false},
		{"empty", "", true},
		{"slash", "feature/login", true},
		{"space", "my feature", true},
		{"dots", "a..b", true},
		{"leading dash ok by charset", "-fern", false},
		{"tilde", "fern~1", true},
		{"colon", "a:b", true},
		{"unicode", "fërn", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.label)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.label, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.KindValidation) {
				t.Errorf("Validate(%q) kind = %v, want KindValidation", tt.label, errors.GetKind(err))
			}
		})
	}
}

func TestGenerateProducesValidLabels(t *testing.T) {
	for i := 0; i < 50; i++ {
		got := Generate(nil)
		if err := Validate(got); err != nil {
			t.Fatalf("Generate() = %q, fails validation: %v", got, err)
		}
		if !strings.Contains(got, "-") {
			t.Errorf("Generate() = %q, want adjective-noun form", got)
		}
	}
}

func TestGenerateAvoidsTaken(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		got := Generate(func(l string) bool { return seen[l] })
		if seen[got] {
			t.Fatalf("Generate() returned already-taken label %q", got)
		}
		seen[got] = true
	}
}

func TestGenerateFallsBackToSuffix(t *testing.T) {
	// Reject every plain draw so the numeric fallback must fire.
	got := Generate(func(l string) bool {
		return !strings.HasSuffix(l, "-2")
	})
	if !strings.HasSuffix(got, "-2") {
		t.Errorf("Generate() = %q, want numeric suffix fallback", got)
	}
	if err := Validate(got); err != nil {
		t.Errorf("fallback label %q fails validation: %v", got, err)
	}
}
