package settings

import "github.com/microcosm-cc/bluemonday"

// adMarkupPolicy allows exactly the tags and attributes an AdSense snippet
// needs: script (async, src and the data-ad-* attributes) and ins (class,
// style and the data-ad-* attributes). Everything else, including event
// handler attributes, is stripped.
var adMarkupPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowURLSchemes("https")
	p.AllowElements("script", "ins")
	p.AllowAttrs("async", "src", "data-ad-client", "data-ad-slot", "data-ad-format").
		OnElements("script")
	p.AllowAttrs("class", "style", "data-ad-client", "data-ad-slot", "data-ad-format",
		"data-full-width-responsive").OnElements("ins")
	// script and ins are inert without this; the surviving content is still
	// limited to the attribute allow-list above.
	p.AllowUnsafe(true)
	return p
}()

// SanitizeAdMarkup strips every tag and attribute outside the ad allow-list
// from operator-supplied markup.
func SanitizeAdMarkup(markup string) string {
	return adMarkupPolicy.Sanitize(markup)
}
