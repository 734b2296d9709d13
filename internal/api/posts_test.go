package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/dazeez1/blog-api/internal/models"
)

func seedPost(t *testing.T, env *testEnv, authorID int64, published bool) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       "Seeded post",
		Content:     "Seeded post content body",
		Tags:        models.TagList{"seed"},
		AuthorID:    authorID,
		IsPublished: published,
	}
	if err := env.posts.Create(context.Background(), post); err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return post
}

func TestCreatePostEchoesNormalizedTags(t *testing.T) {
	env := newTestEnv()
	user := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)

	w := env.do(t, http.MethodPost, "/api/posts", env.tokenFor(t, user), map[string]interface{}{
		"title":   "Tags are normalized",
		"content": "Content long enough to pass validation",
		"tags":    []string{"A", " b ", "A"},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	tags, ok := dataField(t, body, "data", "post", "tags").([]interface{})
	if !ok {
		t.Fatal("tags missing from response")
	}

	expected := []string{"a", "b", "a"}
	if len(tags) != len(expected) {
		t.Fatalf("tags = %v, want %v", tags, expected)
	}
	for i, tag := range expected {
		if tags[i] != tag {
			t.Errorf("tags[%d] = %v, want %q", i, tags[i], tag)
		}
	}
}

func TestCreatePostValidation(t *testing.T) {
	env := newTestEnv()
	user := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "title too short",
			body: map[string]interface{}{"title": "ab", "content": "Content long enough here"},
		},
		{
			name: "content too short",
			body: map[string]interface{}{"title": "A valid title", "content": "short"},
		},
		{
			name: "missing title",
			body: map[string]interface{}{"content": "Content long enough here"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/posts", env.tokenFor(t, user), tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
			}
			body := decodeBody(t, w)
			if body["success"] != false {
				t.Error("validation failure should have success=false")
			}
			if _, ok := body["errors"]; !ok {
				t.Error("validation failure should carry per-field errors")
			}
		})
	}
}

func TestCreatePostRequiresAuth(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/posts", "", map[string]interface{}{
		"title":   "A valid title",
		"content": "Content long enough here",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestGetPostIncrementsViewCount(t *testing.T) {
	env := newTestEnv()
	user := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	post := seedPost(t, env, user.ID, true)

	for i := 1; i <= 2; i++ {
		w := env.do(t, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		body := decodeBody(t, w)
		viewCount := dataField(t, body, "data", "post", "viewCount").(float64)
		if int(viewCount) != i {
			t.Errorf("fetch %d: viewCount = %v, want %d", i, viewCount, i)
		}
	}

	// The counter is persisted, not just echoed
	if got := env.posts.posts[post.ID].ViewCount; got != 2 {
		t.Errorf("stored viewCount = %d, want 2", got)
	}
}

func TestUnpublishedPostVisibility(t *testing.T) {
	env := newTestEnv()
	author := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	other := env.addUser(t, "Bob", "bob@example.com", models.RoleUser)
	admin := env.addUser(t, "Root", "root@example.com", models.RoleAdmin)
	post := seedPost(t, env, author.ID, false)
	path := fmt.Sprintf("/api/posts/%d", post.ID)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{
			name:   "author sees it",
			token:  env.tokenFor(t, author),
			status: http.StatusOK,
		},
		{
			name:   "other user gets 404",
			token:  env.tokenFor(t, other),
			status: http.StatusNotFound,
		},
		{
			name:   "anonymous gets 404",
			token:  "",
			status: http.StatusNotFound,
		},
		{
			// Admins get no read visibility over unpublished posts
			name:   "admin gets 404",
			token:  env.tokenFor(t, admin),
			status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodGet, path, tt.token, nil)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

func TestUpdatePostAuthorization(t *testing.T) {
	env := newTestEnv()
	author := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	other := env.addUser(t, "Bob", "bob@example.com", models.RoleUser)
	admin := env.addUser(t, "Root", "root@example.com", models.RoleAdmin)
	post := seedPost(t, env, author.ID, true)
	path := fmt.Sprintf("/api/posts/%d", post.ID)
	update := map[string]interface{}{"title": "Updated title"}

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{
			name:   "non-owner forbidden",
			token:  env.tokenFor(t, other),
			status: http.StatusForbidden,
		},
		{
			name:   "admin allowed",
			token:  env.tokenFor(t, admin),
			status: http.StatusOK,
		},
		{
			name:   "owner allowed",
			token:  env.tokenFor(t, author),
			status: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPut, path, tt.token, update)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.status, w.Body.String())
			}
		})
	}
}

func TestDeletePost(t *testing.T) {
	env := newTestEnv()
	author := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	admin := env.addUser(t, "Root", "root@example.com", models.RoleAdmin)
	post := seedPost(t, env, author.ID, true)
	path := fmt.Sprintf("/api/posts/%d", post.ID)

	w := env.do(t, http.MethodDelete, path, env.tokenFor(t, admin), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	if _, ok := env.posts.posts[post.ID]; ok {
		t.Error("post should be hard-deleted from the store")
	}

	// Deleting again is a 404
	w = env.do(t, http.MethodDelete, path, env.tokenFor(t, admin), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestListPostsExcludesUnpublished(t *testing.T) {
	env := newTestEnv()
	author := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	seedPost(t, env, author.ID, true)
	seedPost(t, env, author.ID, false)

	w := env.do(t, http.MethodGet, "/api/posts", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := decodeBody(t, w)
	items := dataField(t, body, "data", "items").([]interface{})
	if len(items) != 1 {
		t.Errorf("public listing returned %d posts, want 1", len(items))
	}
	total := dataField(t, body, "data", "pagination", "totalItems").(float64)
	if int(total) != 1 {
		t.Errorf("totalItems = %v, want 1", total)
	}
}

func TestListPostsUnmatchedAuthorYieldsNothing(t *testing.T) {
	env := newTestEnv()
	author := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	seedPost(t, env, author.ID, true)

	w := env.do(t, http.MethodGet, "/api/posts?author=nobody-matches-this", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := decodeBody(t, w)
	items := dataField(t, body, "data", "items").([]interface{})
	if len(items) != 0 {
		t.Errorf("unmatched author filter returned %d posts, want 0", len(items))
	}
}

func TestListPostsMatchedAuthorFilters(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	bob := env.addUser(t, "Bob", "bob@example.com", models.RoleUser)
	seedPost(t, env, alice.ID, true)
	seedPost(t, env, bob.ID, true)

	w := env.do(t, http.MethodGet, "/api/posts?author=ali", "", nil)
	body := decodeBody(t, w)
	items := dataField(t, body, "data", "items").([]interface{})
	if len(items) != 1 {
		t.Errorf("author filter returned %d posts, want 1", len(items))
	}
}

func TestListPostsPaginationMetadata(t *testing.T) {
	env := newTestEnv()
	author := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	for i := 0; i < 11; i++ {
		seedPost(t, env, author.ID, true)
	}

	w := env.do(t, http.MethodGet, "/api/posts", "", nil)
	body := decodeBody(t, w)

	items := dataField(t, body, "data", "items").([]interface{})
	if len(items) != 10 {
		t.Errorf("first page has %d items, want 10 (default limit)", len(items))
	}
	if got := dataField(t, body, "data", "pagination", "totalPages").(float64); int(got) != 2 {
		t.Errorf("totalPages = %v, want 2", got)
	}
	if got := dataField(t, body, "data", "pagination", "hasNextPage").(bool); !got {
		t.Error("hasNextPage should be true on the first of two pages")
	}
	if got := dataField(t, body, "data", "pagination", "hasPrevPage").(bool); got {
		t.Error("hasPrevPage should be false on the first page")
	}
}

func TestMyPostsIncludesUnpublished(t *testing.T) {
	env := newTestEnv()
	author := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	seedPost(t, env, author.ID, true)
	seedPost(t, env, author.ID, false)

	w := env.do(t, http.MethodGet, "/api/posts/my-posts", env.tokenFor(t, author), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := decodeBody(t, w)
	items := dataField(t, body, "data", "items").([]interface{})
	if len(items) != 2 {
		t.Errorf("my-posts returned %d posts, want 2 including unpublished", len(items))
	}
}

func TestGetPostBadID(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/api/posts/not-a-number", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
