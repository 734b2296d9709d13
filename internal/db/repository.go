package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dazeez1/blog-api/internal/models"
	"github.com/dazeez1/blog-api/internal/query"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UserRepository provides user-related database operations
type UserRepository struct {
	*Repository
}

// NewUserRepository creates a new user repository
func NewUserRepository(repo *Repository) *UserRepository {
	return &UserRepository{Repository: repo}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindAuthorLike resolves a free-text fragment to at most one user by
// case-insensitive substring match against name or email
func (r *UserRepository) FindAuthorLike(ctx context.Context, fragment string) (*models.User, error) {
	var user models.User
	pattern := "%" + fragment + "%"
	if err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR email ILIKE ?", pattern, pattern).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// GetByID retrieves a post by ID with its author
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetWithComments retrieves a post by ID with its author and active
// comments, newest first
func (r *PostRepository) GetWithComments(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("is_active = ?", true).Order("created_at DESC")
		}).
		Preload("Comments.Author").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create creates a new post and its normalized tag rows
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		rows := models.TagRows(post.ID, post.Tags)
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// Update updates a post and rebuilds its tag rows
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(post).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		rows := models.TagRows(post.ID, post.Tags)
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// IncrementViewCount bumps a post's view counter in place, without touching
// the rest of the row or its tag rows
func (r *PostRepository) IncrementViewCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// Delete removes a post and its tag rows. Comments are left in place;
// they become unreachable through the post listing.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// List retrieves a page of posts matching the filter, with the total count
func (r *PostRepository) List(ctx context.Context, f query.Filter, skip, limit int) ([]models.Post, int64, error) {
	base := func() *gorm.DB {
		return applyClauses(r.db.WithContext(ctx).Model(&models.Post{}), f.Clauses)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := base().
		Preload("Author").
		Order(orderExpr(f.Sort)).
		Offset(skip).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListByAuthor retrieves a page of an author's posts, newest first,
// regardless of publish state
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]models.Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// CommentRepository provides comment-related database operations
type CommentRepository struct {
	*Repository
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(repo *Repository) *CommentRepository {
	return &CommentRepository{Repository: repo}
}

// GetByID retrieves a comment by ID with its author
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// Create creates a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

// Update updates a comment
func (r *CommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(comment).Error
}

// ListForPost retrieves a page of a post's active comments, newest first
func (r *CommentRepository) ListForPost(ctx context.Context, postID int64, skip, limit int) ([]models.Comment, int64, error) {
	cond := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ? AND is_active = ?", postID, true)

	var total int64
	if err := cond.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ? AND is_active = ?", postID, true).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// ListByAuthor retrieves a page of a user's active comments, newest first,
// with the parent post attached
func (r *CommentRepository) ListByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]models.Comment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("author_id = ? AND is_active = ?", authorID, true).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Post").
		Where("author_id = ? AND is_active = ?", authorID, true).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
