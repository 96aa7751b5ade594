package usecase

import (
	"sort"
	"strings"

	"booksmart/model"
)

// Search match priorities, highest relevance first. A bookmark is assigned
// the single highest-ranked field that matched; lower-ranked fields are not
// checked once one matches. A literal URL or title hit outranks a tag hit.
const (
	matchURL = iota + 1
	matchTitle
	matchMetaDescription
	matchNoteContent
	matchCategory
	matchTag
	matchSummary
	matchTodoText
)

// SearchBookmarks filters and ranks bookmarks by a free-text query. An
// empty or whitespace-only query returns the input unchanged. Matches are
// stable-sorted by match priority, so equal-priority results keep their
// relative input order.
func SearchBookmarks(bookmarks []*model.Bookmark, notesByBookmark map[string][]*model.Note, todosByBookmark map[string][]*model.TodoItem, query string) []*model.Bookmark {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return bookmarks
	}

	type ranked struct {
		bookmark *model.Bookmark
		priority int
	}

	var matches []ranked
	for _, b := range bookmarks {
		priority := matchPriority(b, notesByBookmark[b.ID], todosByBookmark[b.ID], query)
		if priority == 0 {
			continue
		}
		matches = append(matches, ranked{bookmark: b, priority: priority})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].priority < matches[j].priority
	})

	result := make([]*model.Bookmark, len(matches))
	for i, m := range matches {
		result[i] = m.bookmark
	}
	return result
}

// matchPriority returns the priority of the highest-ranked field containing
// the query, or 0 when nothing matches. The query must already be
// lower-cased and trimmed.
func matchPriority(b *model.Bookmark, notes []*model.Note, todos []*model.TodoItem, query string) int {
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), query)
	}
	anyContains := func(values []string) bool {
		for _, v := range values {
			if contains(v) {
				return true
			}
		}
		return false
	}

	switch {
	case contains(b.URL):
		return matchURL
	case contains(b.Title):
		return matchTitle
	case contains(b.MetaDescription):
		return matchMetaDescription
	}

	for _, note := range notes {
		if contains(note.Content) {
			return matchNoteContent
		}
	}

	switch {
	case anyContains(b.Categories):
		return matchCategory
	case anyContains(b.Tags):
		return matchTag
	case contains(b.Summary):
		return matchSummary
	}

	for _, todo := range todos {
		if contains(todo.Text) {
			return matchTodoText
		}
	}

	return 0
}
