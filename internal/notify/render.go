package notify

import (
	"fmt"
	"html"
	"unicode/utf8"
)

const noteExcerptLen = 60

func hlUser(name string) string {
	return `<strong class="hl-user">` + html.EscapeString(name) + `</strong>`
}

func hlProject(name string) string {
	return `<strong class="hl-project">` + html.EscapeString(name) + `</strong>`
}

func prioBadge(from, to string) string {
	return fmt.Sprintf(`<span class="prio-old">%s</span> → <span class="prio-new">%s</span>`,
		html.EscapeString(orNone(from)), html.EscapeString(orNone(to)))
}

func escape(s string) string { return html.EscapeString(s) }

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// excerpt truncates to noteExcerptLen characters, appending "..." when cut.
func excerpt(s string) string {
	if utf8.RuneCountInString(s) <= noteExcerptLen {
		return s
	}
	return string([]rune(s)[:noteExcerptLen]) + "..."
}
