package domain

// Hobby is one shortcut of the hobby row and of the story circles.
//
// Clicking it brings the element whose id equals TargetID into view.
// Color is a CSS class used by the pill row, Cover an image path used by
// the circular variant. Either may be empty.
type Hobby struct {
	ID       string
	Label    string
	Emoji    string
	TargetID string
	Color    string
	Cover    string
}

// Section is a static prose block of the page. Its ID doubles as the
// anchor hobbies scroll to.
type Section struct {
	ID    string
	Title string
	Body  string // markdown source

	// HTML is Body rendered and sanitised at load time.
	HTML string
}

// Hero is the page header.
type Hero struct {
	Title     string
	Tagline   string
	Signature string
	Links     []HeroLink
}

// HeroLink jumps to an anchor of the page.
type HeroLink struct {
	Label  string
	Anchor string
}
