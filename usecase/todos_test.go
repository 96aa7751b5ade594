package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"booksmart/model"
)

type fakeTodoStore struct {
	items     map[string]*model.TodoItem
	failWrite bool
}

func newFakeTodoStore() *fakeTodoStore {
	return &fakeTodoStore{items: make(map[string]*model.TodoItem)}
}

func (s *fakeTodoStore) CreateTodoItem(_ context.Context, item *model.TodoItem) error {
	s.items[item.ID] = item
	return nil
}

func (s *fakeTodoStore) GetBookmarkTodoItems(_ context.Context, bookmarkID, userID string) ([]*model.TodoItem, error) {
	var out []*model.TodoItem
	for _, item := range s.items {
		if item.BookmarkID == bookmarkID && item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *fakeTodoStore) GetTodoItem(_ context.Context, itemID, userID string) (*model.TodoItem, error) {
	item, ok := s.items[itemID]
	if !ok || item.UserID != userID {
		return nil, errors.New("todo item not found")
	}
	copied := *item
	return &copied, nil
}

func (s *fakeTodoStore) UpdateTodoText(_ context.Context, itemID, userID, text string) error {
	item, ok := s.items[itemID]
	if !ok || item.UserID != userID {
		return errors.New("todo item not found")
	}
	item.Text = text
	return nil
}

func (s *fakeTodoStore) SetTodoCompleted(_ context.Context, itemID, userID string, completed bool) error {
	if s.failWrite {
		return errors.New("write failed")
	}
	item, ok := s.items[itemID]
	if !ok || item.UserID != userID {
		return errors.New("todo item not found")
	}
	item.Completed = completed
	return nil
}

func (s *fakeTodoStore) DeleteTodoItem(_ context.Context, itemID, userID string) error {
	item, ok := s.items[itemID]
	if !ok || item.UserID != userID {
		return errors.New("todo item not found")
	}
	delete(s.items, itemID)
	return nil
}

func TestToggleCompleted(t *testing.T) {
	store := newFakeTodoStore()
	svc := NewTodosService(store)

	item, err := svc.CreateTodoItem(context.Background(), "u1", "bm1", "write tests")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	toggled, err := svc.ToggleCompleted(context.Background(), "u1", item.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !toggled.Completed {
		t.Error("expected item completed after first toggle")
	}

	toggled, err = svc.ToggleCompleted(context.Background(), "u1", item.ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if toggled.Completed {
		t.Error("expected item pending after second toggle")
	}
}

func TestToggleCompletedWriteFailureReturnsStoredState(t *testing.T) {
	store := newFakeTodoStore()
	svc := NewTodosService(store)

	item, err := svc.CreateTodoItem(context.Background(), "u1", "bm1", "flaky write")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	store.failWrite = true

	// The client has already flipped its checkbox optimistically; the
	// response must carry the stored state so it can snap back.
	got, err := svc.ToggleCompleted(context.Background(), "u1", item.ID)
	if err == nil {
		t.Fatal("expected toggle error")
	}
	if got == nil {
		t.Fatal("expected stored state alongside the error")
	}
	if got.Completed {
		t.Error("stored state should still be pending")
	}
}

func TestCreateTodoItemValidation(t *testing.T) {
	svc := NewTodosService(newFakeTodoStore())

	if _, err := svc.CreateTodoItem(context.Background(), "u1", "bm1", "   "); err == nil {
		t.Error("blank text must be rejected")
	}
	if _, err := svc.CreateTodoItem(context.Background(), "u1", "bm1", strings.Repeat("x", maxTodoTextLength+1)); err == nil {
		t.Error("oversized text must be rejected")
	}
}

func TestToggleCompletedUnknownItem(t *testing.T) {
	svc := NewTodosService(newFakeTodoStore())

	if _, err := svc.ToggleCompleted(context.Background(), "u1", "nope"); err == nil {
		t.Error("expected error for unknown item")
	}
}
