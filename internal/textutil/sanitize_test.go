package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "   ", ""},
		{"plain", "08DEC2025_MANIFEST.txt", "08DEC2025_MANIFEST.txt"},
		{"separators", "chalk 101/pass:2", "chalk_101-pass-2"},
		{"dropped", "  <TBD>?.csv ", "TBD.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestYesNo(t *testing.T) {
	if YesNo(true) != "yes" || YesNo(false) != "no" {
		t.Fatalf("unexpected YesNo output %q/%q", YesNo(true), YesNo(false))
	}
}
