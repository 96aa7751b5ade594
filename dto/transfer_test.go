package dto

import (
	"errors"
	"testing"
)

func TestImportResultRecordCountsAllKinds(t *testing.T) {
	var result ImportResult

	// One board, two bookmarks, one note succeed; a folder and a todo fail.
	result.Record(nil)
	result.Record(nil)
	result.Record(errors.New("duplicate folder"))
	result.Record(nil)
	result.Record(nil)
	result.Record(errors.New("todo write failed"))

	if result.Imported != 4 {
		t.Errorf("Imported = %d, want 4", result.Imported)
	}
	if result.Failed != 2 {
		t.Errorf("Failed = %d, want 2", result.Failed)
	}
	if result.Imported+result.Failed != 6 {
		t.Errorf("totals = %d, want every record counted exactly once", result.Imported+result.Failed)
	}
	if len(result.Errors) != 2 {
		t.Errorf("Errors = %v, want one message per failure", result.Errors)
	}
}
