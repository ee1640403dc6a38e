package output

import (
	"fmt"
	"strings"
)

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

// Banner renders the program banner shown at the start of a run.
func Banner(name, version string) string {
	title := StyleHeader.Render(fmt.Sprintf("%s %s", name, version))
	rule := StyleMuted.Render(strings.Repeat("═", 50))
	return fmt.Sprintf("%s\n%s", title, rule)
}
