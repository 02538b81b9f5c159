// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips dangerous markup from user-authored text
// before it is persisted. Content bodies and comments pass through here
// on every write.
package htmlsanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	policy *bluemonday.Policy
)

func ugc() *bluemonday.Policy {
	once.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class").OnElements("p", "span", "table", "tr", "td", "th")
		p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
		policy = p
	})
	return policy
}

// Sanitize returns s with scripts, event handlers, and unsafe protocols
// removed. Standard user-generated formatting (paragraphs, lists, links,
// images, tables, code blocks) survives.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc().Sanitize(s)
}
