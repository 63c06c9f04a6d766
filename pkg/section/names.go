package section

import "fmt"

// Name identifies one independently fetched and rendered region of the page.
type Name string

const (
	Site    Name = "site"
	Header  Name = "header"
	Hero    Name = "hero"
	About   Name = "about"
	Pricing Name = "pricing"
	Contact Name = "contact"
	Footer  Name = "footer"
)

// Order is the fixed fetch and render order. Callers must not mutate it.
var Order = []Name{Site, Header, Hero, About, Pricing, Contact, Footer}

// Placeholder element identifiers that renderers locate in the page template.
const (
	PlaceholderLogo    = "logo-placeholder"
	PlaceholderNav     = "nav-placeholder"
	PlaceholderHero    = "hero"
	PlaceholderAbout   = "about"
	PlaceholderPricing = "pricing-container"
	PlaceholderContact = "contact"
	PlaceholderFooter  = "footer-container"
)

// Selectors used by the interaction wiring step.
const (
	SelectorMenuToggle  = ".mobile-menu-toggle"
	SelectorHeaderNav   = "#main-header nav ul"
	SelectorContactForm = "#contact form"
)

// FileName returns the document file name for the section, e.g. "hero.json".
func (n Name) FileName() string {
	return string(n) + ".json"
}

// Valid reports whether n is one of the known section names.
func (n Name) Valid() bool {
	for _, candidate := range Order {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseName converts a raw string into a Name.
func ParseName(raw string) (Name, error) {
	name := Name(raw)
	if !name.Valid() {
		return "", fmt.Errorf("section: unknown section %q", raw)
	}
	return name, nil
}
