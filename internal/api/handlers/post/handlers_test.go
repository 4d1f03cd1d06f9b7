package post

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"Inkwell/internal/api/middleware"
	"Inkwell/internal/core/posts"
)

// MockPostService is a mock implementation of posts.Service
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) ListPosts(ctx context.Context) ([]*posts.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*posts.Post), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, id string) (*posts.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*posts.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, authorID string, req posts.CreatePostRequest) (*posts.Post, error) {
	args := m.Called(ctx, authorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*posts.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, id string, req posts.UpdatePostRequest) (*posts.Post, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*posts.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var fixedTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func samplePost() *posts.Post {
	return &posts.Post{
		ID:        "1",
		Title:     "Test Post",
		Content:   "Content",
		AuthorID:  "1",
		CreatedAt: fixedTime,
		UpdatedAt: fixedTime,
	}
}

// withURLParam attaches a chi route context so chi.URLParam works without a router
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func authed(req *http.Request) *http.Request {
	return req.WithContext(middleware.SetTestUserID(req.Context(), "1"))
}

func TestHandleGet_SerializesISOTimestamps(t *testing.T) {
	service := new(MockPostService)
	service.On("GetPost", mock.Anything, "1").Return(samplePost(), nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/posts/1", nil), "id", "1")
	rec := httptest.NewRecorder()
	NewGetHandler(service).HandleGet(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"id": "1",
		"title": "Test Post",
		"content": "Content",
		"authorId": "1",
		"createdAt": "2026-03-01T10:00:00Z",
		"updatedAt": "2026-03-01T10:00:00Z"
	}`, rec.Body.String())
}

func TestHandleGet_NotFound(t *testing.T) {
	service := new(MockPostService)
	service.On("GetPost", mock.Anything, "unknown").Return(nil, posts.ErrNotFound)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/posts/unknown", nil), "id", "unknown")
	rec := httptest.NewRecorder()
	NewGetHandler(service).HandleGet(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Post not found"}`, rec.Body.String())
}

func TestHandleList_EmptyArray(t *testing.T) {
	service := new(MockPostService)
	service.On("ListPosts", mock.Anything).Return([]*posts.Post{}, nil)

	rec := httptest.NewRecorder()
	NewListHandler(service).HandleList(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandleList_InternalErrorHidesDetails(t *testing.T) {
	service := new(MockPostService)
	service.On("ListPosts", mock.Anything).Return(nil, errors.New("pq: password authentication failed"))

	rec := httptest.NewRecorder()
	NewListHandler(service).HandleList(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestHandleCreate_Success(t *testing.T) {
	service := new(MockPostService)
	req := posts.CreatePostRequest{Title: "New Post", Content: "Content"}
	created := samplePost()
	created.Title = "New Post"
	service.On("CreatePost", mock.Anything, "1", req).Return(created, nil)

	body, _ := json.Marshal(req)
	httpReq := authed(httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body)))
	rec := httptest.NewRecorder()
	NewCreateHandler(service).HandleCreate(rec, httpReq)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var got posts.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "New Post", got.Title)
	assert.Equal(t, "1", got.AuthorID)
	service.AssertExpectations(t)
}

func TestHandleCreate_ValidationError(t *testing.T) {
	service := new(MockPostService)
	service.On("CreatePost", mock.Anything, "1", posts.CreatePostRequest{}).
		Return(nil, posts.ValidateCreateRequest(posts.CreatePostRequest{}))

	httpReq := authed(httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"title":"","content":""}`)))
	rec := httptest.NewRecorder()
	NewCreateHandler(service).HandleCreate(rec, httpReq)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"errors":{"title":"Title is required","content":"Content is required"}}`, rec.Body.String())
}

func TestHandleCreate_WrongFieldType(t *testing.T) {
	service := new(MockPostService)

	httpReq := authed(httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"title":42,"content":"c"}`)))
	rec := httptest.NewRecorder()
	NewCreateHandler(service).HandleCreate(rec, httpReq)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["errors"], "title")
	service.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCreate_MalformedJSON(t *testing.T) {
	service := new(MockPostService)

	httpReq := authed(httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"title":`)))
	rec := httptest.NewRecorder()
	NewCreateHandler(service).HandleCreate(rec, httpReq)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid request body"}`, rec.Body.String())
}

func TestHandleCreate_BodyTooLarge(t *testing.T) {
	service := new(MockPostService)

	large := `{"title":"t","content":"` + strings.Repeat("A", maxBodyBytes+1000) + `"}`
	httpReq := authed(httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(large)))
	rec := httptest.NewRecorder()
	NewCreateHandler(service).HandleCreate(rec, httpReq)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	service.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCreate_RequiresAuthContext(t *testing.T) {
	service := new(MockPostService)

	httpReq := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"title":"t","content":"c"}`))
	rec := httptest.NewRecorder()
	NewCreateHandler(service).HandleCreate(rec, httpReq)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}

func TestHandleUpdate_IgnoresImmutableFields(t *testing.T) {
	service := new(MockPostService)
	title, content := "Updated Post", "Updated Content"
	expected := posts.UpdatePostRequest{Title: &title, Content: &content}
	updated := samplePost()
	updated.Title, updated.Content = title, content
	service.On("UpdatePost", mock.Anything, "1", expected).Return(updated, nil)

	body := `{"id":"99","title":"Updated Post","content":"Updated Content","authorId":"7","createdAt":"2020-01-01T00:00:00Z"}`
	httpReq := withURLParam(authed(httptest.NewRequest(http.MethodPut, "/posts/1", strings.NewReader(body))), "id", "1")
	rec := httptest.NewRecorder()
	NewUpdateHandler(service).HandleUpdate(rec, httpReq)

	assert.Equal(t, http.StatusOK, rec.Code)
	service.AssertExpectations(t)
}

func TestHandleUpdate_NotFound(t *testing.T) {
	service := new(MockPostService)
	service.On("UpdatePost", mock.Anything, "unknown", mock.Anything).Return(nil, posts.ErrNotFound)

	httpReq := withURLParam(authed(httptest.NewRequest(http.MethodPut, "/posts/unknown", strings.NewReader(`{"title":"x"}`))), "id", "unknown")
	rec := httptest.NewRecorder()
	NewUpdateHandler(service).HandleUpdate(rec, httpReq)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Post not found"}`, rec.Body.String())
}

func TestHandleDelete(t *testing.T) {
	service := new(MockPostService)
	service.On("DeletePost", mock.Anything, "1").Return(nil)
	service.On("DeletePost", mock.Anything, "unknown").Return(posts.ErrNotFound)

	rec := httptest.NewRecorder()
	NewDeleteHandler(service).HandleDelete(rec, withURLParam(httptest.NewRequest(http.MethodDelete, "/posts/1", nil), "id", "1"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Post deleted"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	NewDeleteHandler(service).HandleDelete(rec, withURLParam(httptest.NewRequest(http.MethodDelete, "/posts/unknown", nil), "id", "unknown"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Post not found"}`, rec.Body.String())
}
