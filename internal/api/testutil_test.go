package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dazeez1/blog-api/internal/auth"
	"github.com/dazeez1/blog-api/internal/models"
	"github.com/dazeez1/blog-api/internal/query"
	"github.com/dazeez1/blog-api/pkg/config"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  testSecret,
			TokenTTL:   time.Hour,
			BcryptCost: 4,
		},
		API: config.APIConfig{
			PostPageSize:    10,
			CommentPageSize: 20,
			MaxPageSize:     100,
			ListCacheTTL:    time.Second,
		},
	}
}

// fakeUserStore is an in-memory UserStore
type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	return s.users[id], nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) FindAuthorLike(_ context.Context, fragment string) (*models.User, error) {
	frag := strings.ToLower(fragment)
	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		u := s.users[id]
		if strings.Contains(strings.ToLower(u.Name), frag) ||
			strings.Contains(strings.ToLower(u.Email), frag) {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) Update(_ context.Context, user *models.User) error {
	s.users[user.ID] = user
	return nil
}

// fakePostStore is an in-memory PostStore with just enough filter support
// for the handler tests
type fakePostStore struct {
	posts  map[int64]*models.Post
	nextID int64
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: make(map[int64]*models.Post)}
}

func (s *fakePostStore) GetByID(_ context.Context, id int64) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	// Return a copy so handler-side mutations stay distinct from the
	// stored row, as with a real database
	cp := *post
	return &cp, nil
}

func (s *fakePostStore) GetWithComments(ctx context.Context, id int64) (*models.Post, error) {
	return s.GetByID(ctx, id)
}

func (s *fakePostStore) Create(_ context.Context, post *models.Post) error {
	s.nextID++
	post.ID = s.nextID
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	s.posts[post.ID] = post
	return nil
}

func (s *fakePostStore) Update(_ context.Context, post *models.Post) error {
	s.posts[post.ID] = post
	return nil
}

func (s *fakePostStore) Delete(_ context.Context, id int64) error {
	delete(s.posts, id)
	return nil
}

func (s *fakePostStore) IncrementViewCount(_ context.Context, id int64) error {
	if post, ok := s.posts[id]; ok {
		post.ViewCount++
	}
	return nil
}

func (s *fakePostStore) List(_ context.Context, f query.Filter, skip, limit int) ([]models.Post, int64, error) {
	matched := make([]models.Post, 0)
	for _, post := range s.posts {
		if postMatches(post, f.Clauses) {
			matched = append(matched, *post)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if f.Sort.Desc {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].ID < matched[j].ID
	})
	total := int64(len(matched))
	if skip >= len(matched) {
		return []models.Post{}, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (s *fakePostStore) ListByAuthor(_ context.Context, authorID int64, skip, limit int) ([]models.Post, int64, error) {
	matched := make([]models.Post, 0)
	for _, post := range s.posts {
		if post.AuthorID == authorID {
			matched = append(matched, *post)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	total := int64(len(matched))
	if skip >= len(matched) {
		return []models.Post{}, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func postMatches(post *models.Post, clauses []query.Clause) bool {
	for _, clause := range clauses {
		switch c := clause.(type) {
		case query.None:
			return false
		case query.Equals:
			switch c.Field {
			case "isPublished":
				if post.IsPublished != c.Value.(bool) {
					return false
				}
			case "author":
				if post.AuthorID != c.Value.(int64) {
					return false
				}
			}
		case query.In:
			found := false
			for _, want := range c.Values {
				for _, have := range post.Tags {
					if want == have {
						found = true
					}
				}
			}
			if !found {
				return false
			}
		case query.TextSearch:
			text := strings.ToLower(post.Title + " " + post.Content)
			if !strings.Contains(text, strings.ToLower(c.Query)) {
				return false
			}
		}
	}
	return true
}

// fakeCommentStore is an in-memory CommentStore
type fakeCommentStore struct {
	comments map[int64]*models.Comment
	nextID   int64
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: make(map[int64]*models.Comment)}
}

func (s *fakeCommentStore) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	return s.comments[id], nil
}

func (s *fakeCommentStore) Create(_ context.Context, comment *models.Comment) error {
	s.nextID++
	comment.ID = s.nextID
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	s.comments[comment.ID] = comment
	return nil
}

func (s *fakeCommentStore) Update(_ context.Context, comment *models.Comment) error {
	s.comments[comment.ID] = comment
	return nil
}

func (s *fakeCommentStore) ListForPost(_ context.Context, postID int64, skip, limit int) ([]models.Comment, int64, error) {
	matched := make([]models.Comment, 0)
	for _, comment := range s.comments {
		if comment.PostID == postID && comment.IsActive {
			matched = append(matched, *comment)
		}
	}
	return pageComments(matched, skip, limit)
}

func (s *fakeCommentStore) ListByAuthor(_ context.Context, authorID int64, skip, limit int) ([]models.Comment, int64, error) {
	matched := make([]models.Comment, 0)
	for _, comment := range s.comments {
		if comment.AuthorID == authorID && comment.IsActive {
			matched = append(matched, *comment)
		}
	}
	return pageComments(matched, skip, limit)
}

func pageComments(matched []models.Comment, skip, limit int) ([]models.Comment, int64, error) {
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	total := int64(len(matched))
	if skip >= len(matched) {
		return []models.Comment{}, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

// testEnv bundles an engine over fresh fakes
type testEnv struct {
	engine   *gin.Engine
	users    *fakeUserStore
	posts    *fakePostStore
	comments *fakeCommentStore
	issuer   *auth.TokenIssuer
}

func newTestEnv() *testEnv {
	users := newFakeUserStore()
	posts := newFakePostStore()
	comments := newFakeCommentStore()

	engine := gin.New()
	router := NewRouter(users, posts, comments, nil, testConfig())
	router.SetupRoutes(engine)

	return &testEnv{
		engine:   engine,
		users:    users,
		posts:    posts,
		comments: comments,
		issuer:   auth.NewTokenIssuer(testSecret, time.Hour),
	}
}

func (e *testEnv) addUser(t *testing.T, name, email, role string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Role: role, PasswordHash: "x"}
	if err := e.users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func (e *testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := e.issuer.Issue(user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func dataField(t *testing.T, body map[string]interface{}, keys ...string) interface{} {
	t.Helper()
	var cur interface{} = body
	for _, key := range keys {
		m, ok := cur.(map[string]interface{})
		if !ok {
			t.Fatalf("expected object at %q, got %T", key, cur)
		}
		cur, ok = m[key]
		if !ok {
			t.Fatalf("missing key %q in response", key)
		}
	}
	return cur
}
