package shortcode

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/fdciabdul/go-safelink/pkg/safelink/links"
)

// [safelink id="123"]text[/safelink] or, in legacy form,
// [safelink url="https://..." title="..."]text[/safelink].
var (
	tagRe  = regexp.MustCompile(`(?s)\[safelink([^\]]*)\](.*?)\[/safelink\]`)
	attrRe = regexp.MustCompile(`(\w+)\s*=\s*"([^"]*)"`)
)

const (
	errMissingAttr = `<span style="color: red;">Error: ID or URL is required for SafeLink shortcode.</span>`
	errNotFound    = `<span style="color: red;">Error: SafeLink not found or inactive.</span>`
)

// Expander rewrites safelink shortcodes in content into anchors pointing at
// the cloaked /go/<slug> URL.
type Expander struct {
	links   *links.Store
	baseURL string
}

func NewExpander(store *links.Store, baseURL string) *Expander {
	return &Expander{links: store, baseURL: baseURL}
}

func (e *Expander) anchor(slug, inner string) string {
	href := strings.TrimSuffix(e.baseURL, "/") + "/go/" + slug
	return fmt.Sprintf(`<a href="%s" rel="nofollow" target="_blank">%s</a>`, html.EscapeString(href), inner)
}

// Expand replaces every safelink shortcode in content. ID mode links an
// existing active row; legacy URL mode ensures a row exists for the
// destination first (idempotent, so re-rendering the same embed does not
// insert again).
func (e *Expander) Expand(content string) string {
	return tagRe.ReplaceAllStringFunc(content, func(match string) string {
		parts := tagRe.FindStringSubmatch(match)
		attrs := parseAttrs(parts[1])
		inner := parts[2]

		if idStr, ok := attrs["id"]; ok && idStr != "" {
			id, err := strconv.ParseUint(idStr, 10, 32)
			if err != nil {
				return errNotFound
			}
			link, err := e.links.GetByID(uint(id))
			if err != nil || !link.IsActive() {
				return errNotFound
			}
			return e.anchor(link.Slug, inner)
		}

		url := attrs["url"]
		if url == "" {
			return errMissingAttr
		}
		link, err := e.links.EnsureForURL(url, attrs["title"])
		if err != nil {
			var verr *links.ValidationError
			if errors.As(err, &verr) {
				return errMissingAttr
			}
			return errNotFound
		}
		return e.anchor(link.Slug, inner)
	})
}

func parseAttrs(raw string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attrRe.FindAllStringSubmatch(raw, -1) {
		attrs[strings.ToLower(m[1])] = m[2]
	}
	return attrs
}
