package reports

import _ "embed"

//go:embed about.md
var aboutMarkdown string

// AboutMarkdown returns the help text shown by both front ends
func AboutMarkdown() string {
	return aboutMarkdown
}
