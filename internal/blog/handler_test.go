package blog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/advisory-cms/internal/user"
)

type memStore struct {
	posts []*Post
}

func (m *memStore) List(_ context.Context, f Filter) ([]*Post, int, error) {
	var matched []*Post
	for _, p := range m.posts {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		matched = append(matched, p)
	}
	total := len(matched)
	end := min(f.Offset+f.Limit, total)
	if f.Offset >= total {
		return []*Post{}, total, nil
	}
	return matched[f.Offset:end], total, nil
}

func (m *memStore) Get(_ context.Context, ref string, publishedOnly bool) (*Post, error) {
	for _, p := range m.posts {
		if (p.ID.String() == ref || p.Slug == ref) && (!publishedOnly || p.Status == StatusPublished) {
			c := *p
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) Create(_ context.Context, p *Post) (*Post, error) {
	for _, existing := range m.posts {
		if existing.Slug == p.Slug {
			return nil, ErrDuplicateSlug
		}
	}
	c := *p
	c.ID = uuid.New()
	m.posts = append(m.posts, &c)
	out := c
	return &out, nil
}

func (m *memStore) Update(_ context.Context, p *Post) (*Post, error) {
	for i, existing := range m.posts {
		if existing.ID == p.ID {
			c := *p
			m.posts[i] = &c
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) Delete(_ context.Context, id uuid.UUID) error {
	for i, p := range m.posts {
		if p.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var writer = &user.User{ID: uuid.New(), Name: "Writer", Email: "writer@example.com", Role: user.RoleAdmin, IsActive: true}

func newTestRouter(svc *Service) http.Handler {
	h := NewHandler(svc, false)
	r := chi.NewRouter()
	r.Get("/blog", h.List)
	r.Get("/blog/{id}", h.Get)
	r.Post("/blog", h.Create)
	r.Put("/blog/{id}", h.Update)
	r.Delete("/blog/{id}", h.Delete)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string, actor *user.User) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if actor != nil {
		req = req.WithContext(user.NewContext(req.Context(), actor))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func TestService_PublishStampsOnce(t *testing.T) {
	svc := NewService(&memStore{})
	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return first }
	ctx := context.Background()

	title, excerpt, content := "Hello World", "e", "c"
	p, err := svc.Create(ctx, writer, Input{Title: &title, Excerpt: &excerpt, Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", p.Slug)
	assert.Equal(t, StatusDraft, p.Status)
	assert.Equal(t, DefaultCategory, p.Category)
	assert.Nil(t, p.PublishedAt)
	assert.Equal(t, "Writer", p.Author.Name)

	published := "published"
	p, err = svc.Update(ctx, p.ID, Input{Status: &published})
	require.NoError(t, err)
	require.NotNil(t, p.PublishedAt)
	assert.Equal(t, first, *p.PublishedAt)

	svc.now = func() time.Time { return first.Add(time.Hour) }
	newTitle := "Hello Again"
	p, err = svc.Update(ctx, p.ID, Input{Title: &newTitle, Status: &published})
	require.NoError(t, err)
	assert.Equal(t, first, *p.PublishedAt)
	assert.Equal(t, "hello-world", p.Slug, "existing slug is kept")

	long := strings.Repeat("x", MaxExcerptLen+1)
	_, err = svc.Update(ctx, p.ID, Input{Excerpt: &long})
	assert.ErrorIs(t, err, ErrExcerptTooLong)

	bad := "archived"
	_, err = svc.Update(ctx, p.ID, Input{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestHandler_VisibilityAndPaging(t *testing.T) {
	store := &memStore{}
	svc := NewService(store)
	ctx := context.Background()
	excerpt, content, published := "e", "c", "published"
	for _, title := range []string{"One", "Two", "Three"} {
		tt := title
		_, err := svc.Create(ctx, writer, Input{Title: &tt, Excerpt: &excerpt, Content: &content, Status: &published})
		require.NoError(t, err)
	}
	draftTitle := "Secret Draft"
	_, err := svc.Create(ctx, writer, Input{Title: &draftTitle, Excerpt: &excerpt, Content: &content})
	require.NoError(t, err)

	router := newTestRouter(svc)

	code, body := do(t, router, http.MethodGet, "/blog?limit=2&status=draft", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, body["count"])
	assert.EqualValues(t, 3, body["total"], "anonymous callers cannot ask for drafts")
	assert.EqualValues(t, 2, body["pages"])
	assert.EqualValues(t, 1, body["page"])

	_, body = do(t, router, http.MethodGet, "/blog?status=draft", "", writer)
	assert.EqualValues(t, 1, body["total"])

	_, body = do(t, router, http.MethodGet, "/blog", "", writer)
	assert.EqualValues(t, 4, body["total"])

	code, body = do(t, router, http.MethodGet, "/blog/secret-draft", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Blog post not found.", body["message"])

	code, body = do(t, router, http.MethodGet, "/blog/secret-draft", "", writer)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "writer@example.com", body["data"].(map[string]any)["author"].(map[string]any)["email"])
}

func TestHandler_Writes(t *testing.T) {
	router := newTestRouter(NewService(&memStore{}))

	code, body := do(t, router, http.MethodPost, "/blog", `{"title":"T"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = do(t, router, http.MethodPost, "/blog", `{"title":"T"}`, writer)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_FAILED", body["code"])

	code, body = do(t, router, http.MethodPost, "/blog", `{"title":"T","excerpt":"e","content":"c","tags":["a"]}`, writer)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Blog post created successfully.", body["message"])
	id := body["data"].(map[string]any)["id"].(string)

	code, body = do(t, router, http.MethodPost, "/blog", `{"title":"T","excerpt":"e","content":"c"}`, writer)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Blog post with this slug already exists.", body["message"])

	code, body = do(t, router, http.MethodPut, "/blog/"+id, `{"category":"Tax"}`, writer)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Tax", body["data"].(map[string]any)["category"])

	code, _ = do(t, router, http.MethodPut, "/blog/"+uuid.NewString(), `{}`, writer)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = do(t, router, http.MethodDelete, "/blog/"+id, "", writer)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Blog post deleted successfully.", body["message"])
}
