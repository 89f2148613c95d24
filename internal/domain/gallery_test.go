package domain

import (
	"errors"
	"testing"
)

func testCities() []*City {
	return []*City{
		{ID: "paris", Name: "Paris, France", Position: LatLng{48.8566, 2.3522}},
		{ID: "zurich", Name: "Zurich, Switzerland", Position: LatLng{47.3769, 8.5417},
			Photos: []string{"/Zurich/a.jpg", "/Zurich/b.jpg", "/Zurich/c.jpg"}},
		{ID: "nyc", Name: "New York City, USA", Position: LatLng{40.7128, -74.0060},
			Photos: []string{"/NYC/a.jpg"}},
	}
}

func TestGallerySelect(t *testing.T) {
	g := NewGallery(testCities())

	tests := []struct {
		name      string
		cityID    string
		want      GalleryState
		wantPhase Phase
		wantErr   error
	}{
		{
			name:      "city with photos opens lightbox at first photo",
			cityID:    "zurich",
			want:      GalleryState{CityID: "zurich", Open: true, Index: 0},
			wantPhase: PhaseLightbox,
		},
		{
			name:      "city without photos is only selected",
			cityID:    "paris",
			want:      GalleryState{CityID: "paris"},
			wantPhase: PhaseCitySelected,
		},
		{
			name:      "unknown city",
			cityID:    "tokyo",
			want:      GalleryState{},
			wantPhase: PhaseIdle,
			wantErr:   ErrUnknownCity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.Select(GalleryState{}, tt.cityID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Select() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Select() = %+v, want %+v", got, tt.want)
			}
			if got.Phase() != tt.wantPhase {
				t.Errorf("Phase() = %v, want %v", got.Phase(), tt.wantPhase)
			}
		})
	}
}

func TestGallerySelectResetsIndex(t *testing.T) {
	g := NewGallery(testCities())
	st := GalleryState{CityID: "zurich", Open: true, Index: 2}

	got, err := g.Select(st, "nyc")
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got.Index != 0 || !got.Open {
		t.Errorf("Select() = %+v, want open at index 0", got)
	}
}

func TestGalleryWraparound(t *testing.T) {
	g := NewGallery(testCities())
	first := GalleryState{CityID: "zurich", Open: true, Index: 0}
	last := GalleryState{CityID: "zurich", Open: true, Index: 2}

	if got := g.Prev(first); got.Index != 2 {
		t.Errorf("Prev() from 0 = %d, want 2", got.Index)
	}
	if got := g.Next(last); got.Index != 0 {
		t.Errorf("Next() from last = %d, want 0", got.Index)
	}
	if got := g.Next(first); got.Index != 1 {
		t.Errorf("Next() from 0 = %d, want 1", got.Index)
	}

	single := GalleryState{CityID: "nyc", Open: true}
	if got := g.Next(single); got.Index != 0 {
		t.Errorf("Next() on single photo = %d, want 0", got.Index)
	}
	if got := g.Prev(single); got.Index != 0 {
		t.Errorf("Prev() on single photo = %d, want 0", got.Index)
	}
}

func TestGalleryStepWhileClosedIsNoop(t *testing.T) {
	g := NewGallery(testCities())
	st := GalleryState{CityID: "zurich", Index: 1}

	if got := g.Next(st); got != st {
		t.Errorf("Next() while closed = %+v, want %+v", got, st)
	}
	if got := g.Prev(st); got != st {
		t.Errorf("Prev() while closed = %+v, want %+v", got, st)
	}
}

func TestGalleryKey(t *testing.T) {
	g := NewGallery(testCities())
	open := GalleryState{CityID: "zurich", Open: true, Index: 0}
	closed := GalleryState{CityID: "zurich"}

	tests := []struct {
		name string
		from GalleryState
		key  string
		want GalleryState
	}{
		{"escape closes", open, KeyEscape, GalleryState{CityID: "zurich", Index: 0}},
		{"escape while closed", closed, KeyEscape, closed},
		{"escape while idle", GalleryState{}, KeyEscape, GalleryState{}},
		{"right arrow advances", open, KeyArrowRight, GalleryState{CityID: "zurich", Open: true, Index: 1}},
		{"left arrow wraps", open, KeyArrowLeft, GalleryState{CityID: "zurich", Open: true, Index: 2}},
		{"arrow while closed", closed, KeyArrowRight, closed},
		{"unrelated key", open, "Enter", open},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Key(tt.from, tt.key); got != tt.want {
				t.Errorf("Key(%q) = %+v, want %+v", tt.key, got, tt.want)
			}
		})
	}
}

func TestGalleryCloseReturnsToCitySelected(t *testing.T) {
	g := NewGallery(testCities())
	st, _ := g.Select(GalleryState{}, "zurich")
	st = g.Close(st)

	if st.Phase() != PhaseCitySelected {
		t.Errorf("Phase() after Close = %v, want %v", st.Phase(), PhaseCitySelected)
	}
	if st.CityID != "zurich" {
		t.Errorf("CityID after Close = %q, want zurich", st.CityID)
	}
}

func TestGalleryOpenPhoto(t *testing.T) {
	g := NewGallery(testCities())

	tests := []struct {
		name    string
		from    GalleryState
		index   int
		want    GalleryState
		wantErr error
	}{
		{"thumbnail of selected city", GalleryState{CityID: "zurich"}, 2, GalleryState{CityID: "zurich", Open: true, Index: 2}, nil},
		{"thumbnail strip while open", GalleryState{CityID: "zurich", Open: true}, 1, GalleryState{CityID: "zurich", Open: true, Index: 1}, nil},
		{"nothing selected", GalleryState{}, 0, GalleryState{}, ErrNoSelection},
		{"city without photos", GalleryState{CityID: "paris"}, 0, GalleryState{CityID: "paris"}, ErrNoPhotos},
		{"index too large", GalleryState{CityID: "zurich"}, 3, GalleryState{CityID: "zurich"}, ErrPhotoOutOfRange},
		{"negative index", GalleryState{CityID: "zurich"}, -1, GalleryState{CityID: "zurich"}, ErrPhotoOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.OpenPhoto(tt.from, tt.index)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("OpenPhoto() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("OpenPhoto() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGalleryNormalize(t *testing.T) {
	g := NewGallery(testCities())

	tests := []struct {
		name string
		in   GalleryState
		want GalleryState
	}{
		{"idle stays idle", GalleryState{}, GalleryState{}},
		{"removed city", GalleryState{CityID: "berlin", Open: true, Index: 4}, GalleryState{}},
		{"open without photos", GalleryState{CityID: "paris", Open: true}, GalleryState{CityID: "paris"}},
		{"index past the end", GalleryState{CityID: "zurich", Open: true, Index: 9}, GalleryState{CityID: "zurich", Open: true}},
		{"valid state", GalleryState{CityID: "zurich", Open: true, Index: 1}, GalleryState{CityID: "zurich", Open: true, Index: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGalleryView(t *testing.T) {
	g := NewGallery(testCities())

	v := g.View(GalleryState{CityID: "zurich", Open: true, Index: 1})
	if v.Phase != PhaseLightbox {
		t.Fatalf("Phase = %v, want lightbox", v.Phase)
	}
	if v.Photo != "/Zurich/b.jpg" || v.Number != 2 || v.Total != 3 {
		t.Errorf("View() photo=%q number=%d total=%d", v.Photo, v.Number, v.Total)
	}
	active := 0
	for _, th := range v.Thumbnails {
		if th.Active {
			active++
			if th.Index != 1 {
				t.Errorf("active thumbnail = %d, want 1", th.Index)
			}
		}
	}
	if active != 1 {
		t.Errorf("active thumbnails = %d, want 1", active)
	}

	idle := g.View(GalleryState{})
	if idle.City != nil || idle.Open {
		t.Errorf("idle View() = %+v", idle)
	}

	paris := g.View(GalleryState{CityID: "paris"})
	if paris.City == nil || paris.Open || len(paris.Thumbnails) != 0 {
		t.Errorf("paris View() = %+v", paris)
	}
}
