package model

// SEO holds the document title and meta description of a page.
type SEO struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Link is one navigation entry.
type Link struct {
	Path  string `json:"path" yaml:"path"`
	Label string `json:"label" yaml:"label"`
}

// Header is the site-wide top bar.
type Header struct {
	LogoText string `json:"logo_text" yaml:"logo_text"`
	NavLinks []Link `json:"nav_links" yaml:"nav_links"`
}

// ContactInfo is how visitors reach the company.
type ContactInfo struct {
	Address string `json:"address" yaml:"address"`
	Email   string `json:"email" yaml:"email"`
	Phone   string `json:"phone" yaml:"phone"`
}

// Footer is the site-wide bottom bar.
type Footer struct {
	CompanyName string      `json:"company_name" yaml:"company_name"`
	Copyright   string      `json:"copyright" yaml:"copyright"`
	QuickLinks  []Link      `json:"quick_links" yaml:"quick_links"`
	Contact     ContactInfo `json:"contact" yaml:"contact"`
}

// Chrome is the header and footer shared by every page.
type Chrome struct {
	Header Header `json:"header"`
	Footer Footer `json:"footer"`
}

// Tile is a small titled blurb.
type Tile struct {
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
}

// HomePage is the view model of the landing page.
type HomePage struct {
	SEO             SEO    `json:"seo" yaml:"seo"`
	Badge           string `json:"badge" yaml:"badge"`
	Title1          string `json:"title1" yaml:"title1"`
	Tagline         string `json:"tagline" yaml:"tagline"`
	Title2          string `json:"title2" yaml:"title2"`
	PrimaryCTA      string `json:"primary_cta" yaml:"primary_cta"`
	SecondaryCTA    string `json:"secondary_cta" yaml:"secondary_cta"`
	BackgroundImage string `json:"background_image" yaml:"background_image"`
	Tiles           []Tile `json:"tiles" yaml:"tiles"`
}

// Stat is a highlighted figure.
type Stat struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// TeamMember is one displayed person. Placeholder entries stand in when the
// CMS lists nobody.
type TeamMember struct {
	Name        string `json:"name" yaml:"name"`
	Title       string `json:"title" yaml:"title"`
	ImageURL    string `json:"image_url,omitempty" yaml:"image_url"`
	Placeholder bool   `json:"placeholder,omitempty" yaml:"placeholder"`
}

// AboutPage is the view model of the about page.
type AboutPage struct {
	SEO             SEO          `json:"seo" yaml:"seo"`
	Heading         string       `json:"heading" yaml:"heading"`
	Paragraph       string       `json:"paragraph" yaml:"paragraph"`
	Quote           string       `json:"quote" yaml:"quote"`
	BackgroundImage string       `json:"background_image" yaml:"background_image"`
	Stats           []Stat       `json:"stats" yaml:"stats"`
	Team            []TeamMember `json:"team" yaml:"team"`
}

// Slide is one card of the services carousel.
type Slide struct {
	Title           string   `json:"title" yaml:"title"`
	Description     string   `json:"description" yaml:"description"`
	Features        []string `json:"features" yaml:"features"`
	BackgroundImage string   `json:"background_image,omitempty" yaml:"background_image"`
}

// ServicesPage is the view model of the services page.
type ServicesPage struct {
	SEO     SEO     `json:"seo" yaml:"seo"`
	Heading string  `json:"heading" yaml:"heading"`
	Slides  []Slide `json:"slides" yaml:"slides"`
}

// FAQ is one question and its answer. Answers may contain markdown.
type FAQ struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Step is one stage of the working process.
type Step struct {
	Num   string `json:"num" yaml:"num"`
	Label string `json:"label" yaml:"label"`
	Note  string `json:"note" yaml:"note"`
}

// Process is the titled list of steps.
type Process struct {
	Title string `json:"title" yaml:"title"`
	Steps []Step `json:"steps" yaml:"steps"`
}

// Point is one reason to choose the company.
type Point struct {
	Label string `json:"label" yaml:"label"`
	Note  string `json:"note" yaml:"note"`
}

// WhyUs is the titled list of points.
type WhyUs struct {
	Title  string  `json:"title" yaml:"title"`
	Points []Point `json:"points" yaml:"points"`
}

// InfoPage is the view model of the quick info page.
type InfoPage struct {
	SEO             SEO     `json:"seo" yaml:"seo"`
	Heading         string  `json:"heading" yaml:"heading"`
	Lead            string  `json:"lead" yaml:"lead"`
	BackgroundImage string  `json:"background_image" yaml:"background_image"`
	FAQs            []FAQ   `json:"faqs" yaml:"faqs"`
	Process         Process `json:"process" yaml:"process"`
	WhyUs           WhyUs   `json:"why_us" yaml:"why_us"`
}

// ContactPage is the view model of the contact page.
type ContactPage struct {
	SEO     SEO         `json:"seo" yaml:"seo"`
	Heading string      `json:"heading" yaml:"heading"`
	Lead    string      `json:"lead" yaml:"lead"`
	Contact ContactInfo `json:"contact" yaml:"contact"`
}

// ErrorResponse is the JSON shape returned on failure.
type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}
