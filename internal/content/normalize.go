package content

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// present reports whether a CMS value counts as supplied: it exists, is not
// null, and strings and lists are non-empty.
func present(r gjson.Result) bool {
	if !r.Exists() {
		return false
	}
	switch r.Type {
	case gjson.Null:
		return false
	case gjson.String:
		return strings.TrimSpace(r.Str) != ""
	case gjson.JSON:
		if r.IsArray() {
			return len(r.Array()) > 0
		}
		return r.IsObject()
	default:
		return true
	}
}

// text returns the plain text of a string or number value.
func text(r gjson.Result) (string, bool) {
	switch r.Type {
	case gjson.String:
		s := PlainText(r.Str)
		return s, s != ""
	case gjson.Number:
		return r.String(), true
	default:
		return "", false
	}
}

// textOr returns the text of r, or def when r is absent or not text.
func textOr(r gjson.Result, def string) string {
	if s, ok := text(r); ok {
		return s
	}
	return def
}

// firstText returns the text of the first candidate that has one.
func firstText(def string, candidates ...gjson.Result) string {
	for _, c := range candidates {
		if s, ok := text(c); ok {
			return s
		}
	}
	return def
}

// entries returns the elements of r when it is a non-empty list.
func entries(r gjson.Result) ([]gjson.Result, bool) {
	if !r.IsArray() {
		return nil, false
	}
	items := r.Array()
	return items, len(items) > 0
}

// paragraphKind enumerates the encodings a paragraph field has used.
type paragraphKind int

const (
	paragraphAbsent paragraphKind = iota
	paragraphText
	paragraphList
	paragraphFacts
)

// paragraph is a paragraph field matched to its encoding.
type paragraph struct {
	kind  paragraphKind
	text  string
	first gjson.Result
	facts gjson.Result
}

func matchParagraph(r gjson.Result) paragraph {
	if !present(r) {
		return paragraph{kind: paragraphAbsent}
	}
	switch {
	case r.Type == gjson.String:
		return paragraph{kind: paragraphText, text: r.Str}
	case r.IsArray():
		return paragraph{kind: paragraphList, first: r.Get("0")}
	case r.IsObject():
		return paragraph{kind: paragraphFacts, facts: r}
	default:
		return paragraph{kind: paragraphAbsent}
	}
}

// Paragraph normalizes a paragraph field: plain text is used as is, a list
// contributes its first entry, and a structured object is interpolated into
// the company sentence. Anything else, including an object missing one of
// its facts, yields def.
func Paragraph(r gjson.Result, def string) string {
	p := matchParagraph(r)
	var (
		s  string
		ok bool
	)
	switch p.kind {
	case paragraphText:
		s = PlainText(p.text)
		ok = s != ""
	case paragraphList:
		s, ok = text(p.first)
	case paragraphFacts:
		s, ok = agencySentence(p.facts)
	}
	if !ok {
		return def
	}
	return s
}

// agencySentence builds the company paragraph from its structured facts.
// Every fact is required.
func agencySentence(facts gjson.Result) (string, bool) {
	year, ok1 := text(facts.Get("establishment_year"))
	location, ok2 := text(facts.Get("location"))
	agencyType, ok3 := text(facts.Get("agency_type"))
	solutions, ok4 := stringList(facts.Get("solutions"))
	teamSize, ok5 := text(facts.Get("team_size"))
	government, ok6 := text(facts.Get("client_portfolio.retained_government_clients"))
	corporate, ok7 := text(facts.Get("client_portfolio.corporate_brands"))
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 || !ok6 || !ok7 {
		return "", false
	}

	lower := cases.Lower(language.English)
	return fmt.Sprintf(
		"Established in %s and based in %s, we are an %s delivering end-to-end solutions across %s. "+
			"With a growing team of %s passionate professionals, we proudly serve over %s retained government clients and %s corporate brands.",
		year, location, lower.String(agencyType), lower.String(strings.Join(solutions, ", ")),
		teamSize, government, corporate,
	), true
}

// stringList returns the non-empty texts of a list, or a single text as a
// one-element list.
func stringList(r gjson.Result) ([]string, bool) {
	if s, ok := text(r); ok {
		return []string{s}, true
	}
	items, ok := entries(r)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := text(item); ok {
			out = append(out, s)
		}
	}
	return out, len(out) > 0
}

// featuresKind enumerates the encodings a features field has used.
type featuresKind int

const (
	featuresAbsent featuresKind = iota
	featuresList
	featuresEncoded
)

func matchFeatures(r gjson.Result) featuresKind {
	switch {
	case !present(r):
		return featuresAbsent
	case r.IsArray():
		return featuresList
	case r.Type == gjson.String:
		return featuresEncoded
	default:
		return featuresAbsent
	}
}

// Features normalizes a service card's feature list. Lists are used
// directly; strings such as "['A', 'B']" are decoded. When nothing usable
// remains the result is a copy of def, never an empty or partial list.
func Features(r gjson.Result, def []string) []string {
	var (
		out []string
		ok  bool
	)
	switch matchFeatures(r) {
	case featuresList:
		out, ok = stringList(r)
	case featuresEncoded:
		out, ok = DecodeFeatures(r.Str)
	}
	if !ok {
		return slices.Clone(def)
	}
	return out
}

var featureStripper = strings.NewReplacer("[", "", "]", "", `"`, "")

// DecodeFeatures decodes a bracketed, comma separated list such as
// "['24/7 brand monitoring', 'Sentiment analysis']". Brackets and double
// quotes are stripped, the rest is split on commas, and each token is
// trimmed of spaces and surrounding single quotes. Input that is not
// bracketed or decodes to no tokens is rejected.
func DecodeFeatures(s string) ([]string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, false
	}

	var out []string
	for _, tok := range strings.Split(featureStripper.Replace(s), ",") {
		tok = strings.TrimSpace(tok)
		tok = strings.TrimPrefix(tok, "'")
		tok = strings.TrimSuffix(tok, "'")
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out, len(out) > 0
}

// Address normalizes an address that is either a list of line fragments,
// joined with ", ", or a single string.
func Address(r gjson.Result, def string) string {
	if lines, ok := entries(r); ok {
		parts := make([]string, 0, len(lines))
		for _, l := range lines {
			if s, ok := text(l); ok {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return def
		}
		return strings.Join(parts, ", ")
	}
	return textOr(r, def)
}
