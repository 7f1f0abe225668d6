package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// isBlankHTML reports whether s renders nothing visible. Editors leave
// markup such as "<p><br></p>" behind when a field is cleared.
func isBlankHTML(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	if !strings.Contains(s, "<") {
		return false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return false
	}
	if strings.TrimSpace(doc.Text()) != "" {
		return false
	}
	return doc.Find("img, video, iframe, svg").Length() == 0
}
