package usecase

import (
	"sort"
	"time"

	"booksmart/model"
)

// FolderGroup is a bucket of bookmarks assigned to one visible folder.
type FolderGroup struct {
	Folder    *model.Folder     `json:"folder"`
	Bookmarks []*model.Bookmark `json:"bookmarks"`
}

// CategoryGroup is a bucket of bookmarks sharing one category value.
type CategoryGroup struct {
	Category  string            `json:"category"`
	Bookmarks []*model.Bookmark `json:"bookmarks"`
}

// BookmarkGroups is the display structure for one tree level: one bucket
// per direct child folder of the current context, then the context's own
// bookmarks split into uncategorized and per-category buckets.
type BookmarkGroups struct {
	Folders       []FolderGroup     `json:"folders"`
	Uncategorized []*model.Bookmark `json:"uncategorized"`
	Categories    []CategoryGroup   `json:"categories"`
}

// FilterByTypes keeps bookmarks whose type is in the selected set. An empty
// set passes nothing: it is the UI's deliberate "unselect all" state, shown
// as zero results rather than treated as "no filter".
func FilterByTypes(bookmarks []*model.Bookmark, selectedTypes []model.BookmarkType) []*model.Bookmark {
	selected := make(map[model.BookmarkType]bool, len(selectedTypes))
	for _, t := range selectedTypes {
		selected[t] = true
	}

	var filtered []*model.Bookmark
	for _, b := range bookmarks {
		if selected[b.Type] {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// GroupBookmarks partitions the visible bookmarks for one tree level.
//
// Folder buckets are built for folders whose parent equals the current
// folder context (nil = board root), in the order the store returned them.
// Bookmarks assigned directly to the current context are split into an
// uncategorized bucket and one bucket per distinct category; a bookmark
// carrying N categories appears in all N buckets.
//
// Ordering rules: bookmarks within every bucket are newest first; category
// buckets are ordered by the earliest created_at among their members,
// ascending, so the category holding the oldest bookmark is listed first.
func GroupBookmarks(bookmarks []*model.Bookmark, folders []*model.Folder, currentFolderID *string) *BookmarkGroups {
	groups := &BookmarkGroups{}

	byFolder := make(map[string][]*model.Bookmark)
	var direct []*model.Bookmark
	for _, b := range bookmarks {
		if sameFolder(b.FolderID, currentFolderID) {
			direct = append(direct, b)
		} else if b.FolderID != nil {
			byFolder[*b.FolderID] = append(byFolder[*b.FolderID], b)
		}
	}

	for _, f := range folders {
		if !sameFolder(f.ParentFolderID, currentFolderID) {
			continue
		}
		bucket := byFolder[f.ID]
		sortNewestFirst(bucket)
		groups.Folders = append(groups.Folders, FolderGroup{Folder: f, Bookmarks: bucket})
	}

	groups.Uncategorized, groups.Categories = splitByCategory(direct)
	return groups
}

// splitByCategory partitions bookmarks into an uncategorized bucket and
// non-exclusive per-category buckets.
func splitByCategory(bookmarks []*model.Bookmark) ([]*model.Bookmark, []CategoryGroup) {
	var uncategorized []*model.Bookmark
	byCategory := make(map[string][]*model.Bookmark)

	for _, b := range bookmarks {
		if len(b.Categories) == 0 {
			uncategorized = append(uncategorized, b)
			continue
		}
		for _, category := range b.Categories {
			byCategory[category] = append(byCategory[category], b)
		}
	}

	sortNewestFirst(uncategorized)

	groups := make([]CategoryGroup, 0, len(byCategory))
	for category, bucket := range byCategory {
		sortNewestFirst(bucket)
		groups = append(groups, CategoryGroup{Category: category, Bookmarks: bucket})
	}

	// Order buckets by their oldest member, not alphabetically or by size
	sort.SliceStable(groups, func(i, j int) bool {
		return earliestCreatedAt(groups[i].Bookmarks).Before(earliestCreatedAt(groups[j].Bookmarks))
	})

	return uncategorized, groups
}

func sortNewestFirst(bookmarks []*model.Bookmark) {
	sort.SliceStable(bookmarks, func(i, j int) bool {
		return bookmarks[i].CreatedAt.After(bookmarks[j].CreatedAt)
	})
}

func earliestCreatedAt(bookmarks []*model.Bookmark) time.Time {
	if len(bookmarks) == 0 {
		return time.Time{}
	}
	earliest := bookmarks[0].CreatedAt
	for _, b := range bookmarks[1:] {
		if b.CreatedAt.Before(earliest) {
			earliest = b.CreatedAt
		}
	}
	return earliest
}

func sameFolder(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
