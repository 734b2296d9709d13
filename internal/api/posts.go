package api

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dazeez1/blog-api/internal/auth"
	"github.com/dazeez1/blog-api/internal/cache"
	"github.com/dazeez1/blog-api/internal/models"
	"github.com/dazeez1/blog-api/internal/query"
	"github.com/dazeez1/blog-api/pkg/config"
	"github.com/dazeez1/blog-api/pkg/logging"
)

const postListVersionKey = "posts:ver"

// PostAPI handles post lifecycle endpoints
type PostAPI struct {
	posts  PostStore
	users  UserStore
	cache  *cache.Cache
	cfg    config.APIConfig
	logger *zap.Logger
}

// NewPostAPI creates a new post API
func NewPostAPI(posts PostStore, users UserStore, redisCache *cache.Cache, cfg config.APIConfig) *PostAPI {
	return &PostAPI{
		posts:  posts,
		users:  users,
		cache:  redisCache,
		cfg:    cfg,
		logger: logging.WithComponent("post-api"),
	}
}

// CreatePostRequest is the request body for POST /api/posts
type CreatePostRequest struct {
	Title   string   `json:"title" binding:"required,min=3,max=200"`
	Content string   `json:"content" binding:"required,min=10"`
	Tags    []string `json:"tags" binding:"omitempty,dive,max=20"`
}

// UpdatePostRequest is the request body for PUT /api/posts/:id.
// Absent fields keep their current value; author is immutable.
type UpdatePostRequest struct {
	Title   *string   `json:"title" binding:"omitempty,min=3,max=200"`
	Content *string   `json:"content" binding:"omitempty,min=10"`
	Tags    *[]string `json:"tags" binding:"omitempty,dive,max=20"`
}

// Create handles POST /api/posts
func (p *PostAPI) Create(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}

	actor, _ := auth.IdentityFrom(c)
	ctx := c.Request.Context()

	post := &models.Post{
		Title:       req.Title,
		Content:     req.Content,
		Tags:        models.NormalizeTags(req.Tags),
		AuthorID:    actor.UserID,
		IsPublished: true,
	}
	if err := p.posts.Create(ctx, post); err != nil {
		respondError(c, err)
		return
	}

	// Reload to attach author details
	created, err := p.posts.GetByID(ctx, post.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if created == nil {
		created = post
	}

	p.bumpListVersion()
	p.logger.Info("Post created", zap.Int64("post_id", post.ID), zap.Int64("author_id", actor.UserID))
	respondCreated(c, "Post created successfully", gin.H{"post": created})
}

// List handles GET /api/posts
func (p *PostAPI) List(c *gin.Context) {
	ctx := c.Request.Context()

	page := ResolvePage(c.Query("page"), c.Query("limit"), p.cfg.PostPageSize, p.cfg.MaxPageSize)
	sort := query.NewSort(c.Query("sortBy"), c.Query("sortOrder"))

	filter := query.PostFilter{
		PublishedOnly: true,
		Tags:          query.ParseTags(c.Query("tags")),
		Search:        c.Query("search"),
	}

	if author := c.Query("author"); author != "" {
		user, err := p.users.FindAuthorLike(ctx, author)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.Author = query.AuthorMatch{Queried: true, Found: user != nil}
		if user != nil {
			filter.Author.ID = user.ID
		}
	}

	// Anonymous listings are served from cache when available
	_, authed := auth.IdentityFrom(c)
	cacheKey := ""
	if p.cache != nil && !authed {
		cacheKey = p.listCacheKey(c, page)
		var cached PaginatedData
		if err := p.cache.GetJSON(cacheKey, &cached); err == nil {
			c.JSON(200, gin.H{"success": true, "data": cached})
			return
		}
	}

	posts, total, err := p.posts.List(ctx, filter.Build(sort), page.Skip, page.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	if cacheKey != "" {
		payload := PaginatedData{
			Items:      posts,
			Pagination: PaginationMeta(total, page.Page, page.Limit),
		}
		if err := p.cache.SetJSON(cacheKey, payload, p.cfg.ListCacheTTL); err != nil {
			p.logger.Warn("Failed to cache post listing", zap.Error(err))
		}
	}

	respondPaginated(c, posts, page.Page, page.Limit, total)
}

// MyPosts handles GET /api/posts/my-posts. Unlike the public listing it
// includes the caller's unpublished posts.
func (p *PostAPI) MyPosts(c *gin.Context) {
	actor, _ := auth.IdentityFrom(c)

	page := ResolvePage(c.Query("page"), c.Query("limit"), p.cfg.PostPageSize, p.cfg.MaxPageSize)

	posts, total, err := p.posts.ListByAuthor(c.Request.Context(), actor.UserID, page.Skip, page.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondPaginated(c, posts, page.Page, page.Limit, total)
}

// Get handles GET /api/posts/:id
func (p *PostAPI) Get(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, ErrNotFound("Post not found"))
		return
	}

	ctx := c.Request.Context()

	post, err := p.posts.GetWithComments(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if post == nil {
		respondError(c, ErrNotFound("Post not found"))
		return
	}

	// An unpublished post is indistinguishable from a missing one unless
	// the caller is its author
	actor, authed := auth.IdentityFrom(c)
	var actorPtr *auth.Identity
	if authed {
		actorPtr = &actor
	}
	if !CanViewPost(actorPtr, post) {
		respondError(c, ErrNotFound("Post not found"))
		return
	}

	// Best-effort view counter; the response echoes the bump without
	// re-reading the row
	if err := p.posts.IncrementViewCount(ctx, post.ID); err != nil {
		respondError(c, err)
		return
	}
	post.ViewCount++

	respondOK(c, "", gin.H{"post": post})
}

// Update handles PUT /api/posts/:id
func (p *PostAPI) Update(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, ErrNotFound("Post not found"))
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()

	post, err := p.posts.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if post == nil {
		respondError(c, ErrNotFound("Post not found"))
		return
	}

	actor, _ := auth.IdentityFrom(c)
	if AuthorizeOwnerOrAdmin(actor, post.AuthorID) != Allow {
		respondError(c, ErrForbidden("Not authorized to update this post"))
		return
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Tags != nil {
		post.Tags = models.NormalizeTags(*req.Tags)
	}

	if err := p.posts.Update(ctx, post); err != nil {
		respondError(c, err)
		return
	}

	p.bumpListVersion()
	respondOK(c, "Post updated successfully", gin.H{"post": post})
}

// Delete handles DELETE /api/posts/:id
func (p *PostAPI) Delete(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, ErrNotFound("Post not found"))
		return
	}

	ctx := c.Request.Context()

	post, err := p.posts.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if post == nil {
		respondError(c, ErrNotFound("Post not found"))
		return
	}

	actor, _ := auth.IdentityFrom(c)
	if AuthorizeOwnerOrAdmin(actor, post.AuthorID) != Allow {
		respondError(c, ErrForbidden("Not authorized to delete this post"))
		return
	}

	if err := p.posts.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	p.bumpListVersion()
	p.logger.Info("Post deleted", zap.Int64("post_id", id), zap.Int64("actor_id", actor.UserID))
	respondOK(c, "Post deleted successfully", gin.H{})
}

// listCacheKey derives the cache key for a public listing request. The key
// embeds a version counter bumped on every post mutation, so stale entries
// simply stop being addressed.
func (p *PostAPI) listCacheKey(c *gin.Context, page PageRequest) string {
	version, err := p.cache.Get(postListVersionKey)
	if err != nil {
		version = "0"
	}
	return cache.HashKey(
		"posts_list",
		version,
		fmt.Sprintf("%d", page.Page),
		fmt.Sprintf("%d", page.Limit),
		c.Query("author"),
		c.Query("tags"),
		c.Query("search"),
		c.Query("sortBy"),
		c.Query("sortOrder"),
	)
}

func (p *PostAPI) bumpListVersion() {
	if p.cache == nil {
		return
	}
	if _, err := p.cache.Incr(postListVersionKey); err != nil && err != cache.ErrCacheDisabled {
		p.logger.Warn("Failed to bump post list version", zap.Error(err))
	}
}

// parseID parses a numeric path parameter
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
