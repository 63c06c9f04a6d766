package section

// Typed views over the section documents. Pointer fields distinguish an absent
// object from an empty one, which matters for the render fallbacks.

type SitePayload struct {
	Title           string `json:"site_title"`
	MetaDescription string `json:"meta_description"`
}

type HeaderPayload struct {
	Logo       *Logo     `json:"logo"`
	Navigation []NavItem `json:"navigation"`
}

type Logo struct {
	Type    string `json:"type"`
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Link    string `json:"link"`
	Content string `json:"content"`
}

type NavItem struct {
	Label string `json:"label"`
	Link  string `json:"link"`
}

type HeroPayload struct {
	Title           string     `json:"title"`
	Subtitle        string     `json:"subtitle"`
	BackgroundImage string     `json:"background_image"`
	CTAButton       *CTAButton `json:"cta_button"`
}

type CTAButton struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

type AboutPayload struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Images      []Image   `json:"images"`
	Carousel    *Carousel `json:"carousel"`
}

type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type Carousel struct {
	AutoplayDelayMS int `json:"autoplay_delay_ms"`
}

type PricingPayload struct {
	Title string        `json:"title"`
	Table *PricingTable `json:"table"`
	Note  string        `json:"note"`
}

// PricingTable cells are kept untyped so numeric prices render as written.
type PricingTable struct {
	Headers []any   `json:"headers"`
	Rows    [][]any `json:"rows"`
}

type ContactPayload struct {
	Title              string        `json:"title"`
	Info               []ContactInfo `json:"info"`
	Form               *ContactForm  `json:"form"`
	GoogleMapIframeSrc string        `json:"google_map_iframe_src"`
}

type ContactInfo struct {
	Type      string `json:"type"`
	IconClass string `json:"icon_class"`
	Text      string `json:"text"`
	Link      string `json:"link"`
}

type ContactForm struct {
	SubmitButtonText string `json:"submit_button_text"`
}

type FooterPayload struct {
	CompanyName   string       `json:"company_name"`
	TaxCode       string       `json:"tax_code"`
	Address       string       `json:"address"`
	SocialLinks   []SocialLink `json:"social_links"`
	CopyrightText string       `json:"copyright_text"`
}

type SocialLink struct {
	Platform  string `json:"platform"`
	URL       string `json:"url"`
	IconClass string `json:"icon_class"`
}
