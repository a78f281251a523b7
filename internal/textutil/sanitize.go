package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in an artifact name.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. Inner whitespace runs collapse to an underscore.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	replaced := strings.TrimSpace(fileNameReplacer.Replace(name))
	return strings.Join(strings.Fields(replaced), "_")
}

// YesNo renders a flag the way the spreadsheet backend expects it.
func YesNo(flag bool) string {
	return Ternary(flag, "yes", "no")
}
