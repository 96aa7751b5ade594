package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"booksmart/model"
	"booksmart/usecase"
)

func typesParamContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestParseTypesParamAbsent(t *testing.T) {
	c := typesParamContext(t, "/api/boards/b1/bookmarks")
	if types := parseTypesParam(c); types != nil {
		t.Errorf("absent param parsed to %v, want nil (no filter)", types)
	}
}

func TestParseTypesParamExplicitEmpty(t *testing.T) {
	c := typesParamContext(t, "/api/boards/b1/bookmarks?types=")
	types := parseTypesParam(c)
	if types == nil {
		t.Fatal("explicit empty selection parsed to nil, want empty filter")
	}
	if len(types) != 0 {
		t.Errorf("explicit empty selection parsed to %v, want zero types", types)
	}
	if got := usecase.FilterByTypes([]*model.Bookmark{{ID: "x", Type: model.TypeLink}}, types); len(got) != 0 {
		t.Errorf("empty selection passed %d bookmarks, want 0", len(got))
	}
}

func TestParseTypesParamValues(t *testing.T) {
	c := typesParamContext(t, "/api/boards/b1/bookmarks?types=link,%20video,bogus")
	types := parseTypesParam(c)
	if len(types) != 2 || types[0] != model.TypeLink || types[1] != model.TypeVideo {
		t.Errorf("parsed %v, want [link video]", types)
	}
}
