package web

import (
	"encoding/json"
	"html/template"

	"github.com/yingnomad/remotelife/internal/domain"
)

// PageData feeds the full page.
type PageData struct {
	Title        string
	Description  string
	CanonicalURL string
	Version      string

	Hero     domain.Hero
	Hobbies  []*domain.Hobby
	Sections []*domain.Section
	Gallery  GalleryData
}

// GalleryData feeds the gallery fragment: the side panel and the lightbox.
type GalleryData struct {
	domain.GalleryView
	Cities []*domain.City
}

// NewPageData assembles the page from a catalog and the visitor's gallery view.
func NewPageData(c *domain.Catalog, view domain.GalleryView, siteURL, version string) PageData {
	return PageData{
		Title:        c.Hero.Title,
		Description:  c.Hero.Tagline,
		CanonicalURL: siteURL,
		Version:      version,
		Hero:         c.Hero,
		Hobbies:      c.Hobbies,
		Sections:     c.Sections,
		Gallery:      GalleryData{GalleryView: view, Cities: c.Cities},
	}
}

type personLD struct {
	Context      string   `json:"@context"`
	Type         string   `json:"@type"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty"`
	HomeLocation *placeLD `json:"homeLocation,omitempty"`
	Knows        []string `json:"knowsAbout,omitempty"`
}

type placeLD struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// JSONLD describes the page owner for search engines.
func (p PageData) JSONLD() template.JS {
	ld := personLD{
		Context:     "https://schema.org",
		Type:        "Person",
		Name:        p.Title,
		Description: p.Description,
		URL:         p.CanonicalURL,
	}
	if len(p.Gallery.Cities) > 0 {
		ld.HomeLocation = &placeLD{Type: "Place", Name: p.Gallery.Cities[0].Name}
	}
	for _, h := range p.Hobbies {
		ld.Knows = append(ld.Knows, h.Label)
	}
	b, err := json.Marshal(ld)
	if err != nil {
		return ""
	}
	return template.JS(b)
}
