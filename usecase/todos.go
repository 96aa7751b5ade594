package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"booksmart/model"
)

const maxTodoTextLength = 500

// TodoStore is the persistence surface TodosService needs; repository.TodosRepo
// satisfies it.
type TodoStore interface {
	CreateTodoItem(ctx context.Context, item *model.TodoItem) error
	GetBookmarkTodoItems(ctx context.Context, bookmarkID string, userID string) ([]*model.TodoItem, error)
	GetTodoItem(ctx context.Context, itemID string, userID string) (*model.TodoItem, error)
	UpdateTodoText(ctx context.Context, itemID string, userID string, text string) error
	SetTodoCompleted(ctx context.Context, itemID string, userID string, completed bool) error
	DeleteTodoItem(ctx context.Context, itemID string, userID string) error
}

type TodosService struct {
	todos TodoStore
}

func NewTodosService(todos TodoStore) *TodosService {
	return &TodosService{todos: todos}
}

func (svc *TodosService) CreateTodoItem(ctx context.Context, userID, bookmarkID, text string) (*model.TodoItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("todo text is required")
	}
	if len(text) > maxTodoTextLength {
		return nil, errors.New("todo text is too long")
	}

	item := &model.TodoItem{
		ID:         uuid.New().String(),
		UserID:     userID,
		BookmarkID: bookmarkID,
		Text:       text,
		Completed:  false,
		CreatedAt:  time.Now(),
	}
	if err := svc.todos.CreateTodoItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (svc *TodosService) GetBookmarkTodoItems(ctx context.Context, userID, bookmarkID string) ([]*model.TodoItem, error) {
	return svc.todos.GetBookmarkTodoItems(ctx, bookmarkID, userID)
}

func (svc *TodosService) UpdateTodoText(ctx context.Context, userID, itemID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("todo text is required")
	}
	if len(text) > maxTodoTextLength {
		return errors.New("todo text is too long")
	}
	return svc.todos.UpdateTodoText(ctx, itemID, userID, text)
}

// ToggleCompleted flips a todo item's completed flag and returns the
// item's state after the attempt. Clients flip the checkbox optimistically
// before calling; when the write fails, the stored state is re-read and
// returned alongside the error so the client can snap back to it.
func (svc *TodosService) ToggleCompleted(ctx context.Context, userID, itemID string) (*model.TodoItem, error) {
	item, err := svc.todos.GetTodoItem(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	if err := svc.todos.SetTodoCompleted(ctx, itemID, userID, !item.Completed); err != nil {
		canonical, readErr := svc.todos.GetTodoItem(ctx, itemID, userID)
		if readErr != nil {
			return nil, err
		}
		return canonical, err
	}

	item.Completed = !item.Completed
	return item, nil
}

func (svc *TodosService) DeleteTodoItem(ctx context.Context, userID, itemID string) error {
	return svc.todos.DeleteTodoItem(ctx, itemID, userID)
}
