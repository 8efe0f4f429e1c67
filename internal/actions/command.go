package actions

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// IssueCommand writes a workflow command line such as
// "::add-mask::value" or "::set-output name=key::value" to w.
func IssueCommand(w io.Writer, name string, props map[string]string, message string) error {
	var b strings.Builder
	b.WriteString("::")
	b.WriteString(name)

	if len(props) > 0 {
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteByte(' ')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(escapeProperty(props[k]))
		}
	}

	b.WriteString("::")
	b.WriteString(escapeData(message))
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("failed to write %s command: %w", name, err)
	}
	return nil
}

var (
	dataEscaper = strings.NewReplacer(
		"%", "%25",
		"\r", "%0D",
		"\n", "%0A",
	)
	propertyEscaper = strings.NewReplacer(
		"%", "%25",
		"\r", "%0D",
		"\n", "%0A",
		":", "%3A",
		",", "%2C",
	)
)

func escapeData(s string) string {
	return dataEscaper.Replace(s)
}

func escapeProperty(s string) string {
	return propertyEscaper.Replace(s)
}
