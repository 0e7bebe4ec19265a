package gen

import (
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PascalCase converts a snake_case name to PascalCase. Characters after
// the first of each word are kept as is: "cim_info" gives "CimInfo" and
// "daily_360" gives "Daily360".
func PascalCase(name string) string {
	var b strings.Builder
	for _, w := range strings.Split(name, "_") {
		if w != "" {
			b.WriteString(inflect.Capitalize(w))
		}
	}
	return b.String()
}

// CamelCase is PascalCase with a lower-case first letter.
func CamelCase(name string) string {
	s := PascalCase(name)
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// DocName returns the words of a snake_case name: "cim_info" gives
// "cim info".
func DocName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// TitleName returns the title-cased words of a snake_case name:
// "cim_info" gives "Cim Info".
func TitleName(name string) string {
	return cases.Title(language.English, cases.NoLower).String(DocName(name))
}

// VersionName returns a version usable as an identifier segment: "1.5"
// gives "1_5".
func VersionName(version string) string {
	return strings.ReplaceAll(version, ".", "_")
}

// Plural returns the plural form of a snake_case name.
func Plural(name string) string {
	return inflect.Pluralize(name)
}
