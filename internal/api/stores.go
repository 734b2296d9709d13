package api

import (
	"context"

	"github.com/dazeez1/blog-api/internal/models"
	"github.com/dazeez1/blog-api/internal/query"
)

// UserStore is the user persistence surface the handlers depend on.
// Implementations return (nil, nil) for absent records.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	FindAuthorLike(ctx context.Context, fragment string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

// PostStore is the post persistence surface the handlers depend on
type PostStore interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	GetWithComments(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
	IncrementViewCount(ctx context.Context, id int64) error
	List(ctx context.Context, f query.Filter, skip, limit int) ([]models.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]models.Post, int64, error)
}

// CommentStore is the comment persistence surface the handlers depend on
type CommentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	ListForPost(ctx context.Context, postID int64, skip, limit int) ([]models.Comment, int64, error)
	ListByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]models.Comment, int64, error)
}
