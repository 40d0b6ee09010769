package master

import (
	"testing"

	"github.com/coreindex/idxmaster/cmn"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name string
		want cmn.NameErrorKind
	}{
		{"logs-2024", 0},
		{"", cmn.NameEmpty},
		{"logs 2024", cmn.NameWhitespaceForbidden},
		{"logs,2024", cmn.NameCommaForbidden},
		{"logs#2024", cmn.NameHashForbidden},
		{"_logs", cmn.NameLeadingUnderscoreForbidden},
		{"LOGS", cmn.NameMustBeLowercase},
		{"logs/2024", cmn.NameIllegalFilesystemChar},
		{"logs:2024", cmn.NameIllegalFilesystemChar},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if tt.want == 0 {
				if err != nil {
					t.Fatalf("ValidateName(%q) = %v, want nil", tt.name, err)
				}
				return
			}
			invalid, ok := err.(*cmn.ErrInvalidIndexName)
			if !ok {
				t.Fatalf("ValidateName(%q) returned %T, want *cmn.ErrInvalidIndexName", tt.name, err)
			}
			if invalid.Reason != tt.want {
				t.Fatalf("ValidateName(%q) reason = %v, want %v", tt.name, invalid.Reason, tt.want)
			}
		})
	}
}

// TestValidateNameOrder pins the fixed check order: a name violating
// more than one rule always reports the earliest one.
func TestValidateNameOrder(t *testing.T) {
	err := ValidateName("_Logs Name") // leading underscore AND whitespace AND uppercase
	invalid, ok := err.(*cmn.ErrInvalidIndexName)
	if !ok {
		t.Fatalf("expected *cmn.ErrInvalidIndexName, got %T", err)
	}
	if invalid.Reason != cmn.NameWhitespaceForbidden {
		t.Fatalf("reason = %v, want %v (whitespace checked before underscore/case)", invalid.Reason, cmn.NameWhitespaceForbidden)
	}
}
