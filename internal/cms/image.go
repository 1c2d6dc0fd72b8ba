package cms

import (
	"strings"

	"github.com/tidwall/gjson"
)

// formatOrder is the fallback order among media formats when the original
// file URL is missing.
var formatOrder = []string{"large", "medium", "small", "thumbnail"}

// ImageResolver turns CMS media descriptors into displayable URLs.
type ImageResolver struct {
	// MediaURL is the origin relative media paths are served from.
	MediaURL string
}

// Resolve returns the URL for descriptor, or false when it names no image.
// Preferred formats, if given, are tried first in order. The descriptor may
// be a v4 relation ({"data": {"attributes": {...}}}), a flat media object,
// a list of media (first wins), a single format object, or a URL string.
func (ir ImageResolver) Resolve(descriptor gjson.Result, prefer ...string) (string, bool) {
	media := unwrapMedia(descriptor)
	if !media.Exists() {
		return "", false
	}

	if media.Type == gjson.String {
		return ir.absolute(media.String())
	}
	if !media.IsObject() {
		return "", false
	}

	for _, f := range prefer {
		if u, ok := ir.absolute(media.Get("formats." + f + ".url").String()); ok {
			return u, true
		}
	}
	if u, ok := ir.absolute(media.Get("url").String()); ok {
		return u, true
	}
	for _, f := range formatOrder {
		if u, ok := ir.absolute(media.Get("formats." + f + ".url").String()); ok {
			return u, true
		}
	}
	return "", false
}

func unwrapMedia(r gjson.Result) gjson.Result {
	if data := r.Get("data"); r.IsObject() && data.Exists() {
		r = data
	}
	if r.IsArray() {
		r = r.Get("0")
	}
	if attrs := r.Get("attributes"); r.IsObject() && attrs.IsObject() {
		r = attrs
	}
	if r.Type == gjson.Null {
		return gjson.Result{}
	}
	return r
}

func (ir ImageResolver) absolute(u string) (string, bool) {
	u = strings.TrimSpace(u)
	switch {
	case u == "":
		return "", false
	case strings.HasPrefix(u, "http://"), strings.HasPrefix(u, "https://"), strings.HasPrefix(u, "//"):
		return u, true
	case strings.HasPrefix(u, "/"):
		return strings.TrimRight(ir.MediaURL, "/") + u, true
	default:
		return strings.TrimRight(ir.MediaURL, "/") + "/" + u, true
	}
}
