package services

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// ImportedBookmark is one record from a Netscape-format browser export:
// a title/URL pair plus the folder path it was nested under.
type ImportedBookmark struct {
	Title      string
	URL        string
	FolderPath []string
	AddedAt    time.Time
}

// ParseBookmarksHTML parses a Netscape bookmark HTML export (the format
// Chrome/Firefox/Edge/Safari all produce). <DT><H3> denotes a folder,
// <DT><A HREF=...> a bookmark, <DL> nests children.
func ParseBookmarksHTML(r io.Reader) ([]ImportedBookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var records []ImportedBookmark
	var folderPath []string
	var pendingFolder string
	havePending := false

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				name := textContent(n)
				if name != "" {
					pendingFolder = name
					havePending = true
				}
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}

				title := textContent(n)
				if title == "" {
					title = href
				}

				addedAt := time.Now()
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						addedAt = time.Unix(ts, 0)
					}
				}

				records = append(records, ImportedBookmark{
					Title:      title,
					URL:        href,
					FolderPath: append([]string(nil), folderPath...),
					AddedAt:    addedAt,
				})
				return

			case "dl":
				// A DL following an H3 holds that folder's children
				pushed := false
				if havePending {
					folderPath = append(folderPath, pendingFolder)
					havePending = false
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folderPath = folderPath[:len(folderPath)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return records, nil
}

// textContent returns the trimmed text content of a node.
func textContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}
