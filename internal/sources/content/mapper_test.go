package content

import (
	"errors"
	"strings"
	"testing"

	"github.com/yingnomad/remotelife/internal/domain"
	"github.com/yingnomad/remotelife/internal/markdown"
)

func TestMapperMapEmbeddedCatalog(t *testing.T) {
	cfg, err := NewLoader("").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cat, err := NewMapper(markdown.NewRenderer()).MapCatalog(cfg)
	if err != nil {
		t.Fatalf("MapCatalog() error = %v", err)
	}

	if _, err := cat.ResolveAnchor("coffee"); err != nil {
		t.Error("coffee anchor should resolve")
	}
	for _, h := range cat.Hobbies {
		if _, err := cat.ResolveAnchor(h.TargetID); err != nil {
			t.Errorf("hobby %q targets missing anchor %q", h.ID, h.TargetID)
		}
	}

	paris, ok := cat.City("paris")
	if !ok {
		t.Fatal("paris missing")
	}
	if paris.Emoji != "📍" {
		t.Errorf("paris emoji = %q, want default pin", paris.Emoji)
	}
	if paris.HasPhotos() {
		t.Error("paris should have no photos")
	}

	zurich, _ := cat.City("zurich")
	if len(zurich.Photos) != 6 || zurich.Photos[0] != "/Zurich/IMG_1924.JPG" {
		t.Errorf("zurich photos = %v", zurich.Photos)
	}

	photo := cat.Sections[3]
	if !strings.Contains(photo.HTML, `href="#map"`) {
		t.Errorf("photo section HTML = %q, want link to #map", photo.HTML)
	}
	if cat.Map.Padding != 40 || cat.Map.DefaultZoom != 5 {
		t.Errorf("map settings = %+v", cat.Map)
	}
}

func TestMapperDefaultsHobbyTarget(t *testing.T) {
	cfg := Config{
		Hobbies:  []HobbyEntry{{ID: "beer", Label: "Beer"}},
		Sections: []SectionEntry{{ID: "beer", Title: "Beer", Body: "Seasonal taps."}},
	}

	cat, err := NewMapper(markdown.NewRenderer()).MapCatalog(cfg)
	if err != nil {
		t.Fatalf("MapCatalog() error = %v", err)
	}
	if cat.Hobbies[0].TargetID != "beer" {
		t.Errorf("TargetID = %q, want beer", cat.Hobbies[0].TargetID)
	}
}

func TestMapperRejectsBadPosition(t *testing.T) {
	cfg := Config{
		Cities: []CityEntry{{ID: "nowhere", Name: "Nowhere", Position: []float64{1}}},
	}

	_, err := NewMapper(markdown.NewRenderer()).MapCatalog(cfg)
	if !errors.Is(err, domain.ErrInvalidCatalog) {
		t.Errorf("MapCatalog() error = %v, want ErrInvalidCatalog", err)
	}
}

func TestMapperRejectsDuplicateCities(t *testing.T) {
	cfg := Config{
		Cities: []CityEntry{
			{ID: "nyc", Name: "New York", Position: []float64{40.7128, -74.0060}},
			{ID: "nyc", Name: "New York again", Position: []float64{40.7128, -74.0060}},
		},
	}

	_, err := NewMapper(markdown.NewRenderer()).MapCatalog(cfg)
	if !errors.Is(err, domain.ErrInvalidCatalog) {
		t.Errorf("MapCatalog() error = %v, want ErrInvalidCatalog", err)
	}
}
