package content

import (
	"slices"
	"testing"

	"github.com/tidwall/gjson"
)

var defaultFeatures = []string{"Feature 1", "Feature 2", "Feature 3", "Feature 4"}

const defaultParagraph = "Default paragraph."

const agencyFacts = `{
	"establishment_year": 2018,
	"location": "Kuala Lumpur",
	"agency_type": "Integrated Marketing Agency",
	"solutions": ["Digital", "Creative"],
	"team_size": 15,
	"client_portfolio": {"retained_government_clients": 20, "corporate_brands": 10}
}`

func TestPresent(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{raw: ``, want: false},
		{raw: `null`, want: false},
		{raw: `""`, want: false},
		{raw: `"   "`, want: false},
		{raw: `[]`, want: false},
		{raw: `"x"`, want: true},
		{raw: `0`, want: true},
		{raw: `false`, want: true},
		{raw: `["a"]`, want: true},
		{raw: `{}`, want: true},
	}
	for _, tt := range tests {
		if got := present(gjson.Parse(tt.raw)); got != tt.want {
			t.Errorf("present(%s) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParagraph(t *testing.T) {
	const sentence = "Established in 2018 and based in Kuala Lumpur, we are an integrated marketing agency " +
		"delivering end-to-end solutions across digital, creative. With a growing team of 15 passionate " +
		"professionals, we proudly serve over 20 retained government clients and 10 corporate brands."

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain string", raw: `"We build brands."`, want: "We build brands."},
		{name: "string with markup", raw: `"<p>We <b>build</b> brands.</p>"`, want: "We build brands."},
		{name: "list takes first", raw: `["First.", "Second."]`, want: "First."},
		{name: "structured facts", raw: agencyFacts, want: sentence},
		{
			name: "facts missing team size",
			raw: `{"establishment_year": 2018, "location": "Kuala Lumpur", "agency_type": "Integrated Marketing Agency",
				"solutions": ["Digital", "Creative"], "client_portfolio": {"retained_government_clients": 20, "corporate_brands": 10}}`,
			want: defaultParagraph,
		},
		{
			name: "facts missing portfolio count",
			raw: `{"establishment_year": 2018, "location": "Kuala Lumpur", "agency_type": "Agency", "solutions": ["Digital"],
				"team_size": 15, "client_portfolio": {"retained_government_clients": 20}}`,
			want: defaultParagraph,
		},
		{name: "facts with empty solutions", raw: `{"solutions": []}`, want: defaultParagraph},
		{name: "missing", raw: ``, want: defaultParagraph},
		{name: "null", raw: `null`, want: defaultParagraph},
		{name: "empty string", raw: `""`, want: defaultParagraph},
		{name: "empty list", raw: `[]`, want: defaultParagraph},
		{name: "list of non-text", raw: `[{"a": 1}]`, want: defaultParagraph},
		{name: "boolean", raw: `true`, want: defaultParagraph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Paragraph(gjson.Parse(tt.raw), defaultParagraph); got != tt.want {
				t.Errorf("Paragraph() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestParagraph_Idempotent(t *testing.T) {
	r := gjson.Parse(agencyFacts)
	if a, b := Paragraph(r, defaultParagraph), Paragraph(r, defaultParagraph); a != b {
		t.Errorf("Paragraph is not deterministic: %q vs %q", a, b)
	}
}

func TestDecodeFeatures(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   []string
		wantOK bool
	}{
		{
			name:   "single quoted python style",
			in:     "['24/7 brand monitoring', 'Sentiment analysis']",
			want:   []string{"24/7 brand monitoring", "Sentiment analysis"},
			wantOK: true,
		},
		{
			name:   "json style",
			in:     `["Media relations","Event PR"]`,
			want:   []string{"Media relations", "Event PR"},
			wantOK: true,
		},
		{
			name:   "apostrophe inside token survives",
			in:     "['Client's voice', 'Reach']",
			want:   []string{"Client's voice", "Reach"},
			wantOK: true,
		},
		{
			name:   "blank tokens dropped",
			in:     "[ 'A', , 'B', ]",
			want:   []string{"A", "B"},
			wantOK: true,
		},
		{name: "empty string", in: "", wantOK: false},
		{name: "not a list", in: "not-a-list", wantOK: false},
		{name: "empty brackets", in: "[]", wantOK: false},
		{name: "only quotes", in: "['', '']", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeFeatures(tt.in)
			if ok != tt.wantOK || !slices.Equal(got, tt.want) {
				t.Errorf("DecodeFeatures(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFeatures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "list", raw: `["A", "B"]`, want: []string{"A", "B"}},
		{name: "encoded string", raw: `"['24/7 brand monitoring', 'Sentiment analysis']"`, want: []string{"24/7 brand monitoring", "Sentiment analysis"}},
		{name: "empty string", raw: `""`, want: defaultFeatures},
		{name: "malformed string", raw: `"not-a-list"`, want: defaultFeatures},
		{name: "empty list", raw: `[]`, want: defaultFeatures},
		{name: "list of blanks", raw: `["", "  "]`, want: defaultFeatures},
		{name: "object", raw: `{"a": "b"}`, want: defaultFeatures},
		{name: "missing", raw: ``, want: defaultFeatures},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Features(gjson.Parse(tt.raw), defaultFeatures)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Features() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFeatures_DefaultIsCopy(t *testing.T) {
	got := Features(gjson.Parse(`""`), defaultFeatures)
	got[0] = "mutated"
	if defaultFeatures[0] != "Feature 1" {
		t.Fatal("Features must not alias the default list")
	}
}

func TestAddress(t *testing.T) {
	const def = "Default address"
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "lines joined", raw: `["B3-3A-13A Solaris Dutamas", "50480 Kuala Lumpur"]`, want: "B3-3A-13A Solaris Dutamas, 50480 Kuala Lumpur"},
		{name: "blank lines skipped", raw: `["Line 1", "", "Line 2"]`, want: "Line 1, Line 2"},
		{name: "string", raw: `"1 Jalan Dutamas"`, want: "1 Jalan Dutamas"},
		{name: "empty list", raw: `[]`, want: def},
		{name: "list of blanks", raw: `[""]`, want: def},
		{name: "empty string", raw: `""`, want: def},
		{name: "missing", raw: ``, want: def},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Address(gjson.Parse(tt.raw), def); got != tt.want {
				t.Errorf("Address() = %q, want %q", got, tt.want)
			}
		})
	}
}
