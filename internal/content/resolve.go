package content

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/fourcetech/site/internal/cms"
	"github.com/fourcetech/site/internal/model"
)

// teamLimit is the most team members the about page shows.
const teamLimit = 4

// Resolver overlays fallback content onto CMS documents. Every method is
// pure and total: the same document and defaults always give the same view
// model, and malformed input only ever degrades to defaults.
type Resolver struct {
	Images cms.ImageResolver
}

func (rv Resolver) image(r gjson.Result, def string, prefer ...string) string {
	if u, ok := rv.Images.Resolve(r, prefer...); ok {
		return u
	}
	return def
}

func resolveSEO(r gjson.Result, d model.SEO) model.SEO {
	return model.SEO{
		Title:       firstText(d.Title, r.Get("metaTitle"), r.Get("title")),
		Description: firstText(d.Description, r.Get("metaDescription"), r.Get("description")),
	}
}

// Home resolves the landing page.
func (rv Resolver) Home(doc cms.Document, d model.HomePage) model.HomePage {
	hero := doc.Get("hero")
	return model.HomePage{
		SEO:             resolveSEO(doc.Get("seo"), d.SEO),
		Badge:           textOr(hero.Get("badge"), d.Badge),
		Title1:          textOr(hero.Get("title1"), d.Title1),
		Tagline:         textOr(hero.Get("tagline"), d.Tagline),
		Title2:          textOr(hero.Get("title2"), d.Title2),
		PrimaryCTA:      d.PrimaryCTA,
		SecondaryCTA:    d.SecondaryCTA,
		BackgroundImage: rv.image(hero.Get("backgroundImage"), d.BackgroundImage),
		Tiles:           slices.Clone(d.Tiles),
	}
}

// About resolves the about page.
func (rv Resolver) About(doc cms.Document, d AboutDefaults) model.AboutPage {
	return model.AboutPage{
		SEO:             resolveSEO(doc.Get("seo"), d.SEO),
		Heading:         textOr(doc.Get("heading"), d.Heading),
		Paragraph:       Paragraph(doc.Get("paragraphs"), d.Paragraph),
		Quote:           textOr(doc.Get("quote"), d.Quote),
		BackgroundImage: rv.image(doc.Get("teamImage"), d.BackgroundImage),
		Stats:           resolveStats(doc.Get("stats"), d.Stats),
		Team:            rv.resolveTeam(doc.Get("teams"), d),
	}
}

func resolveStats(r gjson.Result, def []model.Stat) []model.Stat {
	items, ok := entries(r)
	if !ok {
		return slices.Clone(def)
	}
	out := make([]model.Stat, len(items))
	for i, item := range items {
		out[i] = model.Stat{
			Value: textOr(item.Get("value"), ""),
			Label: textOr(item.Get("label"), ""),
		}
	}
	return out
}

// resolveTeam shows at most teamLimit members, or numbered placeholders when
// the CMS lists nobody.
func (rv Resolver) resolveTeam(r gjson.Result, d AboutDefaults) []model.TeamMember {
	items, ok := entries(r)
	if !ok {
		out := make([]model.TeamMember, teamLimit)
		for i := range out {
			out[i] = model.TeamMember{
				Name:        fmt.Sprintf(d.PlaceholderName, i+1),
				Title:       d.PlaceholderTitle,
				Placeholder: true,
			}
		}
		return out
	}

	items = items[:min(len(items), teamLimit)]
	out := make([]model.TeamMember, len(items))
	for i, m := range items {
		out[i] = model.TeamMember{
			Name:     textOr(m.Get("Name"), d.UnnamedMember),
			Title:    textOr(m.Get("title"), ""),
			ImageURL: rv.image(m.Get("EmployeeImage"), "", "small", "thumbnail"),
		}
	}
	return out
}

// Services resolves the services page. CMS cards replace the default slides
// one for one; without cards the default slides are used.
func (rv Resolver) Services(doc cms.Document, d ServicesDefaults) model.ServicesPage {
	return model.ServicesPage{
		SEO:     resolveSEO(doc.Get("seo"), d.SEO),
		Heading: textOr(doc.Get("heading"), d.Heading),
		Slides:  rv.resolveSlides(doc.Get("cards"), d),
	}
}

func (rv Resolver) resolveSlides(r gjson.Result, d ServicesDefaults) []model.Slide {
	cards, ok := entries(r)
	if !ok {
		out := make([]model.Slide, len(d.Slides))
		for i, s := range d.Slides {
			s.Features = slices.Clone(s.Features)
			out[i] = s
		}
		return out
	}

	out := make([]model.Slide, len(cards))
	for i, card := range cards {
		out[i] = model.Slide{
			Title:           textOr(card.Get("title"), fmt.Sprintf(d.SlideTitle, i+1)),
			Description:     textOr(card.Get("description"), d.SlideDescription),
			Features:        Features(card.Get("features"), d.Features),
			BackgroundImage: rv.image(card.Get("backgroundImage"), ""),
		}
	}
	return out
}

// Info resolves the quick info page.
func (rv Resolver) Info(doc cms.Document, d InfoDefaults) model.InfoPage {
	process := doc.Get("process")
	whyUs := doc.Get("whyUs")
	return model.InfoPage{
		SEO:             resolveSEO(doc.Get("seo"), d.SEO),
		Heading:         textOr(doc.Get("heading"), d.Heading),
		Lead:            textOr(doc.Get("lead"), d.Lead),
		BackgroundImage: rv.image(doc.Get("backgroundImage"), d.BackgroundImage),
		FAQs:            resolveFAQs(doc.Get("faqs"), d),
		Process: model.Process{
			Title: textOr(process.Get("title"), d.Process.Title),
			Steps: resolveSteps(process.Get("steps"), d.Process.Steps),
		},
		WhyUs: model.WhyUs{
			Title:  textOr(whyUs.Get("title"), d.WhyUs.Title),
			Points: resolvePoints(whyUs.Get("points"), d.WhyUs.Points),
		},
	}
}

func resolveFAQs(r gjson.Result, d InfoDefaults) []model.FAQ {
	items, ok := entries(r)
	if !ok {
		return slices.Clone(d.FAQs)
	}
	out := make([]model.FAQ, len(items))
	for i, item := range items {
		out[i] = model.FAQ{
			Question: textOr(item.Get("question"), d.FAQPlaceholder.Question),
			Answer:   textOr(item.Get("answer"), d.FAQPlaceholder.Answer),
		}
	}
	return out
}

func resolveSteps(r gjson.Result, def []model.Step) []model.Step {
	items, ok := entries(r)
	if !ok {
		return slices.Clone(def)
	}
	out := make([]model.Step, len(items))
	for i, item := range items {
		out[i] = model.Step{
			Num:   textOr(item.Get("num"), strconv.Itoa(i+1)+"."),
			Label: textOr(item.Get("label"), ""),
			Note:  textOr(item.Get("note"), ""),
		}
	}
	return out
}

func resolvePoints(r gjson.Result, def []model.Point) []model.Point {
	items, ok := entries(r)
	if !ok {
		return slices.Clone(def)
	}
	out := make([]model.Point, len(items))
	for i, item := range items {
		out[i] = model.Point{
			Label: textOr(item.Get("label"), ""),
			Note:  textOr(item.Get("note"), ""),
		}
	}
	return out
}

// Header resolves the top bar from the global section. The CMS header is
// used only when it names a brand and at least one link; otherwise the whole
// default header is.
func (rv Resolver) Header(doc cms.Document, d model.Header) model.Header {
	header := doc.Get("header")
	brand := header.Get("brand")
	links, ok := entries(header.Get("navLinks"))
	var navLinks []model.Link
	if ok {
		navLinks = resolveLinks(links)
	}
	if !present(brand) || len(navLinks) == 0 {
		return model.Header{LogoText: d.LogoText, NavLinks: slices.Clone(d.NavLinks)}
	}

	return model.Header{
		LogoText: firstText(d.LogoText, brand.Get("logoText"), brand),
		NavLinks: navLinks,
	}
}

// Footer resolves the bottom bar from the global section.
func (rv Resolver) Footer(doc cms.Document, d model.Footer) model.Footer {
	footer := doc.Get("footer")
	if !present(footer) {
		out := d
		out.QuickLinks = slices.Clone(d.QuickLinks)
		return out
	}

	quick := slices.Clone(d.QuickLinks)
	if links, ok := entries(footer.Get("quickLinks")); ok {
		if resolved := resolveLinks(links); len(resolved) > 0 {
			quick = resolved
		}
	}

	return model.Footer{
		CompanyName: textOr(footer.Get("companyName"), d.CompanyName),
		Copyright:   textOr(footer.Get("copyright"), d.Copyright),
		QuickLinks:  quick,
		Contact:     resolveContact(footer.Get("contactInfo"), d.Contact),
	}
}

// Contact resolves the contact page. Contact details come from the footer of
// the global section; copy may be overridden by its contact member.
func (rv Resolver) Contact(doc cms.Document, d model.ContactPage, fallback model.ContactInfo) model.ContactPage {
	contact := doc.Get("contact")
	return model.ContactPage{
		SEO:     resolveSEO(contact.Get("seo"), d.SEO),
		Heading: textOr(contact.Get("heading"), d.Heading),
		Lead:    textOr(contact.Get("lead"), d.Lead),
		Contact: resolveContact(doc.Get("footer.contactInfo"), fallback),
	}
}

func resolveContact(r gjson.Result, d model.ContactInfo) model.ContactInfo {
	if !present(r) {
		return d
	}
	address := r.Get("addressLines")
	if !present(address) {
		address = r.Get("address")
	}
	return model.ContactInfo{
		Address: Address(address, d.Address),
		Email:   textOr(r.Get("email"), d.Email),
		Phone:   textOr(r.Get("phone"), d.Phone),
	}
}

// resolveLinks keeps entries that name a path; a missing label shows the path.
func resolveLinks(items []gjson.Result) []model.Link {
	out := make([]model.Link, 0, len(items))
	for _, item := range items {
		path, ok := text(item.Get("path"))
		if !ok {
			continue
		}
		out = append(out, model.Link{Path: path, Label: textOr(item.Get("label"), path)})
	}
	return out
}
