package services

import (
	"strings"
	"testing"
	"time"
)

const sampleBookmarksHTML = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com/" ADD_DATE="1700000000">Example</A>
    <DT><H3 ADD_DATE="1700000001">Work</H3>
    <DL><p>
        <DT><A HREF="https://go.dev/" ADD_DATE="1700000100">The Go Programming Language</A>
        <DT><H3>Docs</H3>
        <DL><p>
            <DT><A HREF="https://pkg.go.dev/net/http">net/http</A>
        </DL><p>
    </DL><p>
    <DT><A HREF="https://news.ycombinator.com/">Hacker News</A>
</DL><p>
`

func TestParseBookmarksHTML(t *testing.T) {
	records, err := ParseBookmarksHTML(strings.NewReader(sampleBookmarksHTML))
	if err != nil {
		t.Fatalf("ParseBookmarksHTML: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}

	first := records[0]
	if first.URL != "https://example.com/" || first.Title != "Example" {
		t.Errorf("first record = %q %q", first.Title, first.URL)
	}
	if len(first.FolderPath) != 0 {
		t.Errorf("top-level bookmark has folder path %v", first.FolderPath)
	}
	if !first.AddedAt.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("AddedAt = %v, want unix 1700000000", first.AddedAt)
	}

	second := records[1]
	if second.URL != "https://go.dev/" {
		t.Fatalf("second record URL = %q", second.URL)
	}
	if len(second.FolderPath) != 1 || second.FolderPath[0] != "Work" {
		t.Errorf("folder path = %v, want [Work]", second.FolderPath)
	}

	third := records[2]
	if third.URL != "https://pkg.go.dev/net/http" {
		t.Fatalf("third record URL = %q", third.URL)
	}
	if len(third.FolderPath) != 2 || third.FolderPath[0] != "Work" || third.FolderPath[1] != "Docs" {
		t.Errorf("nested folder path = %v, want [Work Docs]", third.FolderPath)
	}

	fourth := records[3]
	if fourth.URL != "https://news.ycombinator.com/" {
		t.Fatalf("fourth record URL = %q", fourth.URL)
	}
	if len(fourth.FolderPath) != 0 {
		t.Errorf("bookmark after closed folder has path %v", fourth.FolderPath)
	}
}

func TestParseBookmarksHTMLTitleFallback(t *testing.T) {
	records, err := ParseBookmarksHTML(strings.NewReader(
		`<DL><DT><A HREF="https://untitled.example.com/"></A></DL>`))
	if err != nil {
		t.Fatalf("ParseBookmarksHTML: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Title != "https://untitled.example.com/" {
		t.Errorf("Title = %q, want URL fallback", records[0].Title)
	}
}

func TestParseBookmarksHTMLSkipsAnchorsWithoutHref(t *testing.T) {
	records, err := ParseBookmarksHTML(strings.NewReader(
		`<DL><DT><A>no link here</A><DT><A HREF="https://kept.example.com/">Kept</A></DL>`))
	if err != nil {
		t.Fatalf("ParseBookmarksHTML: %v", err)
	}
	if len(records) != 1 || records[0].URL != "https://kept.example.com/" {
		t.Errorf("records = %+v, want only the href-bearing anchor", records)
	}
}

func TestParseBookmarksHTMLEmpty(t *testing.T) {
	records, err := ParseBookmarksHTML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseBookmarksHTML: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records from empty input, want 0", len(records))
	}
}
