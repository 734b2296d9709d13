package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dazeez1/blog-api/internal/auth"
	"github.com/dazeez1/blog-api/internal/models"
	"github.com/dazeez1/blog-api/pkg/config"
	"github.com/dazeez1/blog-api/pkg/logging"
)

// CommentAPI handles comment lifecycle endpoints
type CommentAPI struct {
	comments CommentStore
	posts    PostStore
	cfg      config.APIConfig
	logger   *zap.Logger
}

// NewCommentAPI creates a new comment API
func NewCommentAPI(comments CommentStore, posts PostStore, cfg config.APIConfig) *CommentAPI {
	return &CommentAPI{
		comments: comments,
		posts:    posts,
		cfg:      cfg,
		logger:   logging.WithComponent("comment-api"),
	}
}

// CommentRequest is the request body for comment create and update
type CommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// Add handles POST /api/posts/:id/comments
func (a *CommentAPI) Add(c *gin.Context) {
	postID, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, ErrNotFound("Post not found"))
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()

	// The parent post must exist and be published. An unpublished post is
	// reported as missing so its existence is not leaked.
	post, err := a.posts.GetByID(ctx, postID)
	if err != nil {
		respondError(c, err)
		return
	}
	if post == nil || !post.IsPublished {
		respondError(c, ErrNotFound("Post not found"))
		return
	}

	actor, _ := auth.IdentityFrom(c)

	comment := &models.Comment{
		Content:  req.Content,
		AuthorID: actor.UserID,
		PostID:   postID,
		IsActive: true,
	}
	if err := a.comments.Create(ctx, comment); err != nil {
		respondError(c, err)
		return
	}

	// Reload to attach author details
	created, err := a.comments.GetByID(ctx, comment.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if created == nil {
		created = comment
	}

	a.logger.Info("Comment added", zap.Int64("comment_id", comment.ID), zap.Int64("post_id", postID))
	respondCreated(c, "Comment added successfully", gin.H{"comment": created})
}

// ListForPost handles GET /api/posts/:id/comments
func (a *CommentAPI) ListForPost(c *gin.Context) {
	postID, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, ErrNotFound("Post not found"))
		return
	}

	ctx := c.Request.Context()

	post, err := a.posts.GetByID(ctx, postID)
	if err != nil {
		respondError(c, err)
		return
	}
	if post == nil {
		respondError(c, ErrNotFound("Post not found"))
		return
	}

	page := ResolvePage(c.Query("page"), c.Query("limit"), a.cfg.CommentPageSize, a.cfg.MaxPageSize)

	comments, total, err := a.comments.ListForPost(ctx, postID, page.Skip, page.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondPaginated(c, comments, page.Page, page.Limit, total)
}

// MyComments handles GET /api/comments/my-comments
func (a *CommentAPI) MyComments(c *gin.Context) {
	actor, _ := auth.IdentityFrom(c)

	page := ResolvePage(c.Query("page"), c.Query("limit"), a.cfg.CommentPageSize, a.cfg.MaxPageSize)

	comments, total, err := a.comments.ListByAuthor(c.Request.Context(), actor.UserID, page.Skip, page.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondPaginated(c, comments, page.Page, page.Limit, total)
}

// Update handles PUT /api/comments/:id. Owner-only: admins cannot edit
// someone else's comment, though they can delete it.
func (a *CommentAPI) Update(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, ErrNotFound("Comment not found"))
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()

	comment, err := a.comments.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if comment == nil {
		respondError(c, ErrNotFound("Comment not found"))
		return
	}

	actor, _ := auth.IdentityFrom(c)
	if AuthorizeOwnerOnly(actor, comment.AuthorID) != Allow {
		respondError(c, ErrForbidden("Not authorized to update this comment"))
		return
	}

	comment.Content = req.Content
	if err := a.comments.Update(ctx, comment); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Comment updated successfully", gin.H{"comment": comment})
}

// Delete handles DELETE /api/comments/:id. Deletion is a soft flag; the
// row stays in place and drops out of listings.
func (a *CommentAPI) Delete(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, ErrNotFound("Comment not found"))
		return
	}

	ctx := c.Request.Context()

	comment, err := a.comments.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if comment == nil {
		respondError(c, ErrNotFound("Comment not found"))
		return
	}

	actor, _ := auth.IdentityFrom(c)
	if AuthorizeOwnerOrAdmin(actor, comment.AuthorID) != Allow {
		respondError(c, ErrForbidden("Not authorized to delete this comment"))
		return
	}

	comment.IsActive = false
	if err := a.comments.Update(ctx, comment); err != nil {
		respondError(c, err)
		return
	}

	a.logger.Info("Comment deleted", zap.Int64("comment_id", id), zap.Int64("actor_id", actor.UserID))
	respondOK(c, "Comment deleted successfully", gin.H{})
}
