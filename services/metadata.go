package services

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Metadata is the best-effort page metadata for a URL. Fetch failures
// degrade to hostname-derived fallbacks; a save must never be blocked by a
// failed enrichment.
type Metadata struct {
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Image        string        `json:"image"`
	Favicon      string        `json:"favicon"`
	IsLocation   bool          `json:"is_location"`
	LocationData *LocationData `json:"location_data,omitempty"`
}

type LocationData struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Provider  string  `json:"provider"`
}

type MetadataFetcher struct {
	httpClient *http.Client
}

func NewMetadataFetcher() *MetadataFetcher {
	return &MetadataFetcher{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Known map-provider URL schemes carrying coordinates.
var (
	googleMapsAtRe = regexp.MustCompile(`/@(-?\d+\.\d+),(-?\d+\.\d+)`)
	coordQueryRe   = regexp.MustCompile(`[?&](?:q|query)=(-?\d+\.\d+),(-?\d+\.\d+)`)
	osmHashRe      = regexp.MustCompile(`#map=\d+/(-?\d+\.\d+)/(-?\d+\.\d+)`)
	appleMapsLLRe  = regexp.MustCompile(`[?&]ll=(-?\d+\.\d+),(-?\d+\.\d+)`)
	mapProviders   = []struct {
		host     string
		provider string
		patterns []*regexp.Regexp
	}{
		{"google.", "google_maps", []*regexp.Regexp{googleMapsAtRe, coordQueryRe}},
		{"openstreetmap.org", "openstreetmap", []*regexp.Regexp{osmHashRe}},
		{"maps.apple.com", "apple_maps", []*regexp.Regexp{appleMapsLLRe}},
	}
)

// DetectLocation pattern-matches a URL against known map-provider schemes
// and extracts coordinates when present.
func DetectLocation(rawURL string) *LocationData {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}

	host := strings.ToLower(parsed.Hostname())
	for _, candidate := range mapProviders {
		if !strings.Contains(host, candidate.host) {
			continue
		}
		for _, pattern := range candidate.patterns {
			if m := pattern.FindStringSubmatch(rawURL); m != nil {
				lat, latErr := strconv.ParseFloat(m[1], 64)
				lng, lngErr := strconv.ParseFloat(m[2], 64)
				if latErr != nil || lngErr != nil {
					continue
				}
				return &LocationData{Latitude: lat, Longitude: lng, Provider: candidate.provider}
			}
		}
	}
	return nil
}

// FetchMetadata fetches page metadata for a URL. It never returns an error:
// on any failure the result falls back to values derived from the hostname.
func (f *MetadataFetcher) FetchMetadata(ctx context.Context, rawURL string) *Metadata {
	meta := fallbackMetadata(rawURL)

	if loc := DetectLocation(rawURL); loc != nil {
		meta.IsLocation = true
		meta.LocationData = loc
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return meta
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return meta
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; BookSmart/1.0)")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return meta
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return meta
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return meta
	}

	parsePageMetadata(doc, meta)

	// Resolve a relative favicon against the page URL
	if meta.Favicon != "" {
		if faviconURL, err := parsed.Parse(meta.Favicon); err == nil {
			meta.Favicon = faviconURL.String()
		}
	}
	if meta.Favicon == "" {
		meta.Favicon = parsed.Scheme + "://" + parsed.Host + "/favicon.ico"
	}

	return meta
}

func fallbackMetadata(rawURL string) *Metadata {
	meta := &Metadata{}
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Hostname() != "" {
		meta.Title = strings.TrimPrefix(parsed.Hostname(), "www.")
	} else {
		meta.Title = rawURL
	}
	return meta
}

// parsePageMetadata walks the document and fills in Open Graph, Twitter
// card, and plain HTML fallbacks. Precedence: og/twitter tags, then plain
// <title>/<meta name=description>, then the hostname fallback already set.
func parsePageMetadata(doc *html.Node, meta *Metadata) {
	var ogTitle, plainTitle, ogDescription, plainDescription string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if n.FirstChild != nil && plainTitle == "" {
					plainTitle = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				name := getAttr(n, "name")
				if name == "" {
					name = getAttr(n, "property")
				}
				content := getAttr(n, "content")
				switch name {
				case "og:title", "twitter:title":
					if ogTitle == "" {
						ogTitle = content
					}
				case "og:description", "twitter:description":
					if ogDescription == "" {
						ogDescription = content
					}
				case "description":
					if plainDescription == "" {
						plainDescription = content
					}
				case "og:image", "twitter:image":
					if meta.Image == "" {
						meta.Image = content
					}
				}
			case "link":
				rel := strings.ToLower(getAttr(n, "rel"))
				if strings.Contains(rel, "icon") && meta.Favicon == "" {
					meta.Favicon = getAttr(n, "href")
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if ogTitle != "" {
		meta.Title = ogTitle
	} else if plainTitle != "" {
		meta.Title = plainTitle
	}
	if ogDescription != "" {
		meta.Description = ogDescription
	} else {
		meta.Description = plainDescription
	}
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}
