package manifest

import (
	"fmt"
	"strings"
)

// CategoryKind is the top-level personnel type selected at admission.
type CategoryKind string

const (
	KindJumper     CategoryKind = "Jumper"
	KindJumpmaster CategoryKind = "Jumpmaster"
	KindNonJumper  CategoryKind = "NonJumper"
)

// Jumpmaster and non-jumper sub-types. The sub-type doubles as the label
// printed in the jump type column.
const (
	SubPJ        = "PJ"
	SubAJ        = "AJ"
	SubStatic    = "STATIC"
	SubSafety    = "SAFETY"
	SubNonJumper = "NON-JUMPER"
	SubPAO       = "PAO"
)

var (
	jumpmasterSubTypes = []string{SubPJ, SubAJ, SubStatic, SubSafety}
	nonJumperSubTypes  = []string{SubNonJumper, SubPAO}
)

// Category is a personnel type with its sub-type. The zero value is a plain
// jumper. Values are only built through the constructors, so a jumper with a
// jumpmaster sub-type cannot exist.
type Category struct {
	kind CategoryKind
	sub  string
}

// JumperCategory returns the regular paratrooper category.
func JumperCategory() Category { return Category{} }

// JumpmasterCategory returns a jumpmaster category for one of PJ, AJ, STATIC
// or SAFETY.
func JumpmasterCategory(sub string) (Category, error) {
	normalized, ok := matchSubType(sub, jumpmasterSubTypes)
	if !ok {
		return Category{}, fmt.Errorf("jumpmaster sub-type %q: expected one of %s", sub, strings.Join(jumpmasterSubTypes, ", "))
	}
	return Category{kind: KindJumpmaster, sub: normalized}, nil
}

// NonJumperCategory returns a non-jumper category for NON-JUMPER or PAO.
func NonJumperCategory(sub string) (Category, error) {
	normalized, ok := matchSubType(sub, nonJumperSubTypes)
	if !ok {
		return Category{}, fmt.Errorf("non-jumper sub-type %q: expected one of %s", sub, strings.Join(nonJumperSubTypes, ", "))
	}
	return Category{kind: KindNonJumper, sub: normalized}, nil
}

// ParseCategory builds a category from loosely formatted operator input such
// as ("jumpmaster", "safety") or ("non-jumper", "pao"). Jumpers take no
// sub-type.
func ParseCategory(kind, sub string) (Category, error) {
	switch normalizeKind(kind) {
	case "", "jumper":
		if strings.TrimSpace(sub) != "" {
			return Category{}, fmt.Errorf("jumper takes no sub-type, got %q", sub)
		}
		return JumperCategory(), nil
	case "jumpmaster", "jm":
		return JumpmasterCategory(sub)
	case "nonjumper":
		if strings.TrimSpace(sub) == "" {
			sub = SubNonJumper
		}
		return NonJumperCategory(sub)
	default:
		return Category{}, fmt.Errorf("unknown personnel category %q", kind)
	}
}

// Kind returns the top-level personnel type.
func (c Category) Kind() CategoryKind {
	if c.kind == "" {
		return KindJumper
	}
	return c.kind
}

// SubType returns the jumpmaster or non-jumper sub-type, empty for jumpers.
func (c Category) SubType() string { return c.sub }

// NonExiting reports whether personnel of this category stay aboard.
func (c Category) NonExiting() bool {
	_, nonExiting := Resolve(c, "")
	return nonExiting
}

// Equal reports whether both values name the same category and sub-type.
func (c Category) Equal(other Category) bool {
	return c.Kind() == other.Kind() && c.sub == other.sub
}

func (c Category) String() string {
	if c.sub == "" {
		return string(c.Kind())
	}
	return string(c.kind) + "/" + c.sub
}

// MarshalText encodes the category as "Kind" or "Kind/SUB".
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes the MarshalText form.
func (c *Category) UnmarshalText(text []byte) error {
	kind, sub, _ := strings.Cut(string(text), "/")
	parsed, err := ParseCategory(kind, sub)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Resolve maps a category and the jump type captured at intake to the label
// displayed on the manifest and the non-exiting flag. Jumpers keep their
// scanned jump type; jumpmasters and non-jumpers display their sub-type.
func Resolve(category Category, scannedJumpType string) (string, bool) {
	switch category.Kind() {
	case KindJumpmaster:
		return category.sub, category.sub == SubStatic || category.sub == SubSafety
	case KindNonJumper:
		return category.sub, true
	default:
		return scannedJumpType, false
	}
}

// JumpmasterSubTypes lists the accepted jumpmaster sub-types.
func JumpmasterSubTypes() []string { return append([]string(nil), jumpmasterSubTypes...) }

// NonJumperSubTypes lists the accepted non-jumper sub-types.
func NonJumperSubTypes() []string { return append([]string(nil), nonJumperSubTypes...) }

func normalizeKind(kind string) string {
	kind = strings.ToLower(strings.TrimSpace(kind))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(kind)
}

func matchSubType(value string, options []string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, option := range options {
		if strings.EqualFold(value, option) {
			return option, true
		}
	}
	return "", false
}
