package content

import (
	"strings"

	"golang.org/x/net/html"
)

// PlainText flattens CMS rich text to plain text. Markup is dropped and
// entities are decoded. Line breaks in the text survive, so markdown stays
// intact; runs of spaces within a line collapse to one and blank lines to
// a single separator. Strings without markup or entities are only trimmed.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// A strings.Reader only ends with io.EOF.
			return collapseSpace(b.String())

		case html.StartTagToken:
			tn, _ := z.TagName()
			switch tag := string(tn); {
			case isRawText(tag):
				skip++
			case tag == "br":
				b.WriteByte(' ')
			}

		case html.EndTagToken:
			tn, _ := z.TagName()
			tag := string(tn)
			switch {
			case isRawText(tag):
				if skip > 0 {
					skip--
				}
			case isBlock(tag):
				b.WriteByte(' ')
			}

		case html.SelfClosingTagToken:
			tn, _ := z.TagName()
			if string(tn) == "br" {
				b.WriteByte(' ')
			}

		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func isRawText(tag string) bool {
	return tag == "script" || tag == "style"
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "li", "br", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote":
		return true
	}
	return false
}

// collapseSpace collapses whitespace within each line, keeping leading
// indentation, and squeezes blank lines.
func collapseSpace(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, l := range lines {
		fields := strings.Fields(l)
		if len(fields) == 0 {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		indent := l[:len(l)-len(strings.TrimLeft(l, " \t"))]
		if len(out) == 0 {
			indent = ""
		}
		out = append(out, indent+strings.Join(fields, " "))
		blank = false
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
