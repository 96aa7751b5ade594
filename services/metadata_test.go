package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDetectLocation(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantLat  float64
		wantLng  float64
		provider string
	}{
		{
			name:     "google maps at-path",
			url:      "https://www.google.com/maps/place/Eiffel+Tower/@48.858370,2.294481,17z",
			wantLat:  48.858370,
			wantLng:  2.294481,
			provider: "google_maps",
		},
		{
			name:     "google maps query coordinates",
			url:      "https://maps.google.com/?q=51.507351,-0.127758",
			wantLat:  51.507351,
			wantLng:  -0.127758,
			provider: "google_maps",
		},
		{
			name:     "openstreetmap hash",
			url:      "https://www.openstreetmap.org/#map=15/40.712800/-74.006000",
			wantLat:  40.7128,
			wantLng:  -74.006,
			provider: "openstreetmap",
		},
		{
			name:     "apple maps ll parameter",
			url:      "https://maps.apple.com/?ll=35.689500,139.691700&z=12",
			wantLat:  35.6895,
			wantLng:  139.6917,
			provider: "apple_maps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := DetectLocation(tt.url)
			if loc == nil {
				t.Fatalf("DetectLocation(%q) = nil, want location", tt.url)
			}
			if loc.Latitude != tt.wantLat || loc.Longitude != tt.wantLng {
				t.Errorf("coordinates = (%v, %v), want (%v, %v)", loc.Latitude, loc.Longitude, tt.wantLat, tt.wantLng)
			}
			if loc.Provider != tt.provider {
				t.Errorf("provider = %q, want %q", loc.Provider, tt.provider)
			}
		})
	}
}

func TestDetectLocationNonMapURLs(t *testing.T) {
	urls := []string{
		"https://example.com/articles/48.85,2.29",
		"https://www.google.com/search?q=restaurants",
		"https://maps.apple.com/?address=1+Infinite+Loop",
		"not a url at all",
	}
	for _, u := range urls {
		if loc := DetectLocation(u); loc != nil {
			t.Errorf("DetectLocation(%q) = %+v, want nil", u, loc)
		}
	}
}

func TestFetchMetadataOpenGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html><head>
<title>Plain Title</title>
<meta property="og:title" content="OG Title">
<meta property="og:description" content="OG description of the page.">
<meta name="description" content="Plain description.">
<meta property="og:image" content="https://cdn.example.com/hero.png">
<link rel="icon" href="/static/favicon.png">
</head><body>hello</body></html>`))
	}))
	defer srv.Close()

	meta := NewMetadataFetcher().FetchMetadata(context.Background(), srv.URL+"/page")
	if meta.Title != "OG Title" {
		t.Errorf("Title = %q, want %q", meta.Title, "OG Title")
	}
	if meta.Description != "OG description of the page." {
		t.Errorf("Description = %q, want og description", meta.Description)
	}
	if meta.Image != "https://cdn.example.com/hero.png" {
		t.Errorf("Image = %q, want og:image", meta.Image)
	}
	if meta.Favicon != srv.URL+"/static/favicon.png" {
		t.Errorf("Favicon = %q, want resolved %q", meta.Favicon, srv.URL+"/static/favicon.png")
	}
	if meta.IsLocation {
		t.Error("IsLocation = true for a non-map URL")
	}
}

func TestFetchMetadataPlainFallbacks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head>
<title>  Just a Title  </title>
<meta name="description" content="Only plain description.">
</head><body></body></html>`))
	}))
	defer srv.Close()

	meta := NewMetadataFetcher().FetchMetadata(context.Background(), srv.URL)
	if meta.Title != "Just a Title" {
		t.Errorf("Title = %q, want trimmed plain title", meta.Title)
	}
	if meta.Description != "Only plain description." {
		t.Errorf("Description = %q, want plain description", meta.Description)
	}
	if meta.Favicon != srv.URL+"/favicon.ico" {
		t.Errorf("Favicon = %q, want default /favicon.ico", meta.Favicon)
	}
}

func TestFetchMetadataUnreachableHost(t *testing.T) {
	meta := NewMetadataFetcher().FetchMetadata(context.Background(), "https://www.definitely-not-reachable.invalid/path")
	if meta == nil {
		t.Fatal("FetchMetadata returned nil")
	}
	if meta.Title != "definitely-not-reachable.invalid" {
		t.Errorf("Title = %q, want hostname fallback", meta.Title)
	}
}

func TestFetchMetadataNonHTTPScheme(t *testing.T) {
	meta := NewMetadataFetcher().FetchMetadata(context.Background(), "ftp://files.example.com/doc.pdf")
	if meta.Title != "files.example.com" {
		t.Errorf("Title = %q, want hostname fallback for non-http scheme", meta.Title)
	}
}

func TestFetchMetadataErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	meta := NewMetadataFetcher().FetchMetadata(context.Background(), srv.URL)
	if meta.Title != "127.0.0.1" {
		t.Errorf("Title = %q, want hostname fallback on 404", meta.Title)
	}
}

func TestFetchMetadataMapURL(t *testing.T) {
	meta := NewMetadataFetcher().FetchMetadata(context.Background(), "https://maps.apple.com/?ll=35.689500,139.691700")
	if !meta.IsLocation {
		t.Fatal("IsLocation = false for a map URL")
	}
	if meta.LocationData == nil || meta.LocationData.Provider != "apple_maps" {
		t.Errorf("LocationData = %+v, want apple_maps coordinates", meta.LocationData)
	}
}
