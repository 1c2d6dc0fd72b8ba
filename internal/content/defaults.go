package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/fourcetech/site/internal/model"
)

//go:embed defaults.yaml
var embeddedDefaults []byte

var errIncompleteDefaults = errors.New("defaults: incomplete document")

// AboutDefaults is the fallback content of the about page.
type AboutDefaults struct {
	model.AboutPage `yaml:",inline"`

	PlaceholderName  string `yaml:"placeholder_name"`
	PlaceholderTitle string `yaml:"placeholder_title"`
	UnnamedMember    string `yaml:"unnamed_member"`
}

// ServicesDefaults is the fallback content of the services page.
type ServicesDefaults struct {
	model.ServicesPage `yaml:",inline"`

	SlideTitle       string   `yaml:"slide_title"`
	SlideDescription string   `yaml:"slide_description"`
	Features         []string `yaml:"features"`
}

// InfoDefaults is the fallback content of the quick info page.
type InfoDefaults struct {
	model.InfoPage `yaml:",inline"`

	FAQPlaceholder model.FAQ `yaml:"faq_placeholder"`
}

// Defaults is the complete fallback document, one part per section.
type Defaults struct {
	Header   model.Header      `yaml:"header"`
	Footer   model.Footer      `yaml:"footer"`
	Home     model.HomePage    `yaml:"home"`
	About    AboutDefaults     `yaml:"about"`
	Services ServicesDefaults  `yaml:"services"`
	Info     InfoDefaults      `yaml:"info"`
	Contact  model.ContactPage `yaml:"contact"`
}

// EmbeddedDefaults returns the fallback document compiled into the binary.
func EmbeddedDefaults() *Defaults {
	d, err := ParseDefaults(embeddedDefaults)
	if err != nil {
		panic(fmt.Sprintf("embedded defaults: %v", err))
	}
	return d
}

// LoadDefaults reads a fallback document from path. An empty path selects
// the embedded document.
func LoadDefaults(path string) (*Defaults, error) {
	if path == "" {
		return ParseDefaults(embeddedDefaults)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("defaults: read %s: %w", path, err)
	}
	d, err := ParseDefaults(data)
	if err != nil {
		return nil, fmt.Errorf("defaults: %s: %w", path, err)
	}
	return d, nil
}

// ParseDefaults decodes and validates a YAML fallback document.
func ParseDefaults(data []byte) (*Defaults, error) {
	var d Defaults
	if err := yaml.UnmarshalStrict(data, &d); err != nil {
		return nil, fmt.Errorf("defaults: decode: %w", err)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// validate rejects documents that would leave a page without content the
// resolver depends on.
func (d *Defaults) validate() error {
	switch {
	case len(d.Header.NavLinks) == 0:
		return fmt.Errorf("%w: header.nav_links is empty", errIncompleteDefaults)
	case len(d.Services.Slides) == 0:
		return fmt.Errorf("%w: services.slides is empty", errIncompleteDefaults)
	case len(d.Services.Features) == 0:
		return fmt.Errorf("%w: services.features is empty", errIncompleteDefaults)
	case len(d.Info.FAQs) == 0:
		return fmt.Errorf("%w: info.faqs is empty", errIncompleteDefaults)
	case d.About.Paragraph == "":
		return fmt.Errorf("%w: about.paragraph is empty", errIncompleteDefaults)
	}
	return nil
}
