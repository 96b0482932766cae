package render

import (
	"net/url"
	"strings"
)

// AvatarURL maps a seed to an avatar image reference of the form
// <base>/<style>/svg?seed=<seed>. The image is never fetched here.
func AvatarURL(baseURL, style, seed string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(baseURL, "/"))
	b.WriteByte('/')
	b.WriteString(url.PathEscape(style))
	b.WriteString("/svg?")
	b.WriteString(url.Values{"seed": []string{seed}}.Encode())
	return b.String()
}
