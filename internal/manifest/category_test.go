package manifest

import "testing"

func TestResolve(t *testing.T) {
	mustJM := func(sub string) Category {
		c, err := JumpmasterCategory(sub)
		if err != nil {
			t.Fatalf("JumpmasterCategory(%q): %v", sub, err)
		}
		return c
	}
	mustNJ := func(sub string) Category {
		c, err := NonJumperCategory(sub)
		if err != nil {
			t.Fatalf("NonJumperCategory(%q): %v", sub, err)
		}
		return c
	}

	tests := []struct {
		name           string
		category       Category
		wantLabel      string
		wantNonExiting bool
	}{
		{"jumper", JumperCategory(), "J/A/NT", false},
		{"jumpmaster pj", mustJM("PJ"), "PJ", false},
		{"jumpmaster aj", mustJM("aj"), "AJ", false},
		{"jumpmaster static", mustJM("STATIC"), "STATIC", true},
		{"jumpmaster safety", mustJM("safety"), "SAFETY", true},
		{"non-jumper", mustNJ("NON-JUMPER"), "NON-JUMPER", true},
		{"pao", mustNJ("PAO"), "PAO", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			label, nonExiting := Resolve(tc.category, "J/A/NT")
			if label != tc.wantLabel || nonExiting != tc.wantNonExiting {
				t.Fatalf("Resolve = (%q, %v), want (%q, %v)", label, nonExiting, tc.wantLabel, tc.wantNonExiting)
			}
			if tc.category.NonExiting() != tc.wantNonExiting {
				t.Fatalf("NonExiting = %v, want %v", tc.category.NonExiting(), tc.wantNonExiting)
			}
		})
	}
}

func TestCategoryConstructorsRejectForeignSubTypes(t *testing.T) {
	if _, err := JumpmasterCategory("PAO"); err == nil {
		t.Fatal("expected jumpmaster PAO to be rejected")
	}
	if _, err := NonJumperCategory("SAFETY"); err == nil {
		t.Fatal("expected non-jumper SAFETY to be rejected")
	}
	if _, err := ParseCategory("jumper", "SAFETY"); err == nil {
		t.Fatal("expected jumper with sub-type to be rejected")
	}
	if _, err := ParseCategory("pilot", ""); err == nil {
		t.Fatal("expected unknown kind to be rejected")
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		kind, sub string
		want      string
	}{
		{"", "", "Jumper"},
		{"Jumper", "", "Jumper"},
		{"jm", "static", "Jumpmaster/STATIC"},
		{"Jumpmaster", "PJ", "Jumpmaster/PJ"},
		{"non-jumper", "", "NonJumper/NON-JUMPER"},
		{"non_jumper", "pao", "NonJumper/PAO"},
	}
	for _, tc := range tests {
		got, err := ParseCategory(tc.kind, tc.sub)
		if err != nil {
			t.Fatalf("ParseCategory(%q, %q): %v", tc.kind, tc.sub, err)
		}
		if got.String() != tc.want {
			t.Fatalf("ParseCategory(%q, %q) = %q, want %q", tc.kind, tc.sub, got, tc.want)
		}
	}
}

func TestCategoryTextRoundTrip(t *testing.T) {
	original, err := JumpmasterCategory(SubSafety)
	if err != nil {
		t.Fatalf("JumpmasterCategory: %v", err)
	}
	text, err := original.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var decoded Category
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%q): %v", text, err)
	}
	if decoded != original {
		t.Fatalf("expected %v, got %v", original, decoded)
	}
}
