package secretspec

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DeriveNames returns the output and environment variable names for a
// request. A mapped name is used verbatim for both. Otherwise the output
// name is the selector and the environment name is the selector with "."
// replaced by "__" and upper-cased using Unicode casing rules.
func DeriveNames(selector, mapName string, mapped bool) (outputName, envName string) {
	if mapped {
		return mapName, mapName
	}
	return selector, EnvName(selector)
}

// EnvName converts a selector such as "db.password" into "DB__PASSWORD".
func EnvName(selector string) string {
	return cases.Upper(language.Und).String(strings.ReplaceAll(selector, ".", "__"))
}
