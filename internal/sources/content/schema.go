package content

// Config is the root of a content file.
type Config struct {
	Hero     HeroEntry      `yaml:"hero"`
	Hobbies  []HobbyEntry   `yaml:"hobbies"`
	Cities   []CityEntry    `yaml:"cities"`
	Sections []SectionEntry `yaml:"sections"`
	Map      MapEntry       `yaml:"map"`
}

type HeroEntry struct {
	Title     string      `yaml:"title"`
	Tagline   string      `yaml:"tagline"`
	Signature string      `yaml:"signature,omitempty"`
	Links     []LinkEntry `yaml:"links,omitempty"`
}

type LinkEntry struct {
	Label  string `yaml:"label"`
	Anchor string `yaml:"anchor"`
}

// HobbyEntry: target defaults to id when omitted.
type HobbyEntry struct {
	ID     string `yaml:"id"`
	Label  string `yaml:"label"`
	Emoji  string `yaml:"emoji"`
	Target string `yaml:"target,omitempty"`
	Color  string `yaml:"color,omitempty"`
	Cover  string `yaml:"cover,omitempty"`
}

// CityEntry: position is [lat, lng].
type CityEntry struct {
	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	Emoji    string    `yaml:"emoji,omitempty"`
	Position []float64 `yaml:"position"`
	Photos   []string  `yaml:"photos,omitempty"`
	Blurb    string    `yaml:"blurb,omitempty"`
}

type SectionEntry struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type MapEntry struct {
	TileURL     string    `yaml:"tile_url"`
	Attribution string    `yaml:"attribution"`
	Center      []float64 `yaml:"center,omitempty"`
	Zoom        int       `yaml:"zoom,omitempty"`
	MinZoom     int       `yaml:"min_zoom,omitempty"`
	MaxZoom     int       `yaml:"max_zoom,omitempty"`
	Padding     *int      `yaml:"padding,omitempty"`
}
