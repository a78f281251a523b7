package manifest

import "strings"

// PersonnelRecord is one admitted roster entry.
//
// ScannedJumpType keeps the value captured at intake. JumpType is the label
// shown on the manifest; it starts as the category-resolved label and only
// changes through an explicit edit.
type PersonnelRecord struct {
	ID              string   `json:"id"`
	LastName        string   `json:"lastName"`
	FirstName       string   `json:"firstName"`
	MiddleInitial   string   `json:"middleInitial"`
	Grade           string   `json:"grade"`
	Organization    string   `json:"organization"`
	ScannedJumpType string   `json:"scannedJumpType"`
	JumpType        string   `json:"jumpType"`
	Chalk           string   `json:"chalk"`
	Pass            int      `json:"pass"`
	Door            Door     `json:"door,omitempty"`
	Category        Category `json:"category"`
}

// NonExiting reports whether the record stays aboard. It is derived from the
// category alone.
func (r PersonnelRecord) NonExiting() bool {
	return r.Category.NonExiting()
}

// FullName formats the name the way the form prints it: "Last, First MI".
func (r PersonnelRecord) FullName() string {
	name := strings.TrimSpace(r.LastName) + ", " + strings.TrimSpace(r.FirstName)
	if mi := strings.TrimSpace(r.MiddleInitial); mi != "" {
		name += " " + mi
	}
	return strings.TrimSpace(name)
}

// ChalkLabel returns the chalk, or the TBD placeholder when none was set.
func (r PersonnelRecord) ChalkLabel() string {
	return chalkLabel(r.Chalk)
}

// TBDChalk labels records admitted without a chalk.
const TBDChalk = "TBD"

func chalkLabel(chalk string) string {
	if trimmed := strings.TrimSpace(chalk); trimmed != "" {
		return trimmed
	}
	return TBDChalk
}
