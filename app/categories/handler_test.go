package categories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veo1/shop-api/logger"
	"github.com/veo1/shop-api/models"
)

// --- Mock Repository ---

type MockCategoryRepo struct {
	Categories []models.Category
	Err        error
	// CreateErr simulates a store-level rejection that slipped past the pre-check.
	CreateErr error

	LastSaved     *models.Category
	LastUpdatedID uint
	LastDeletedID uint
	lastOffset    int
	lastLimit     int
}

func (m *MockCategoryRepo) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Categories {
		if c.ID == id {
			category := c
			return &category, nil
		}
	}
	return nil, models.ErrCategoryNotFound
}

func (m *MockCategoryRepo) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Categories {
		if c.Name == name {
			category := c
			return &category, nil
		}
	}
	return nil, models.ErrCategoryNotFound
}

func (m *MockCategoryRepo) ListCategories(ctx context.Context, offset, limit int) ([]models.Category, error) {
	m.lastOffset = offset
	m.lastLimit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Categories, nil
}

func (m *MockCategoryRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	m.LastSaved = category
	if m.CreateErr != nil {
		return m.CreateErr
	}
	category.ID = uint(len(m.Categories) + 1)
	m.Categories = append(m.Categories, *category)
	return nil
}

func (m *MockCategoryRepo) UpdateCategory(ctx context.Context, id uint, category *models.Category) error {
	m.LastUpdatedID = id
	for i := range m.Categories {
		if m.Categories[i].ID == id {
			m.Categories[i].Name = category.Name
		}
	}
	return nil
}

func (m *MockCategoryRepo) DeleteCategory(ctx context.Context, id uint) error {
	m.LastDeletedID = id
	for i := range m.Categories {
		if m.Categories[i].ID == id {
			m.Categories = append(m.Categories[:i], m.Categories[i+1:]...)
			break
		}
	}
	return nil
}

// --- Helpers ---

func newSeededRepo() *MockCategoryRepo {
	return &MockCategoryRepo{
		Categories: []models.Category{
			{ID: 1, Name: "Electronics"},
			{ID: 2, Name: "Books"},
		},
	}
}

func serve(repo *MockCategoryRepo, method, url, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	NewCategoryHandler(NewService(repo), logger.Nop()).Register(mux)

	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var errResp map[string]string
	err := json.NewDecoder(rec.Body).Decode(&errResp)
	assert.NoError(t, err)
	return errResp["error"]
}

// --- Tests: GET /categories/ ---

func TestHandleGetAll(t *testing.T) {
	testCases := []struct {
		name               string
		url                string
		mockRepoSetup      func() *MockCategoryRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCall      func(t *testing.T, repo *MockCategoryRepo)
	}{
		{
			name:               "Success with multiple categories",
			url:                "/categories/",
			mockRepoSetup:      newSeededRepo,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []CategoryResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, 2)
				assert.Equal(t, uint(1), resp[0].ID)
				assert.Equal(t, "Books", resp[1].Name)
			},
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Equal(t, 0, repo.lastOffset)
				assert.Equal(t, 100, repo.lastLimit)
			},
		},
		{
			name: "Success with empty list",
			url:  "/categories",
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{Categories: []models.Category{}}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `[]`, rec.Body.String())
			},
		},
		{
			name:               "Skip and limit are forwarded",
			url:                "/categories/?skip=3&limit=7",
			mockRepoSetup:      newSeededRepo,
			expectedStatusCode: http.StatusOK,
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Equal(t, 3, repo.lastOffset)
				assert.Equal(t, 7, repo.lastLimit)
			},
		},
		{
			name: "Repository error",
			url:  "/categories/",
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{Err: errors.New("db down")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "internal server error", decodeError(t, rec))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()

			// Act
			rec := serve(mockRepo, "GET", tc.url, "")

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}

// --- Tests: POST /categories/ ---

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		mockRepoSetup      func() *MockCategoryRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCall      func(t *testing.T, repo *MockCategoryRepo)
	}{
		{
			name:               "Success",
			requestBody:        `{"name":"Accessories"}`,
			mockRepoSetup:      newSeededRepo,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"id":3,"name":"Accessories"}`, rec.Body.String())
			},
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.NotNil(t, repo.LastSaved)
				assert.Equal(t, "Accessories", repo.LastSaved.Name)
			},
		},
		{
			name:               "Name already registered",
			requestBody:        `{"name":"Electronics"}`,
			mockRepoSetup:      newSeededRepo,
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Category already registered", decodeError(t, rec))
			},
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Nil(t, repo.LastSaved, "CreateCategory should not be called for a taken name")
			},
		},
		{
			name:        "Unique constraint wins a race",
			requestBody: `{"name":"Toys"}`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{CreateErr: models.ErrDuplicate}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Category already registered", decodeError(t, rec))
			},
		},
		{
			name:               "Invalid JSON body",
			requestBody:        `{invalid json`,
			mockRepoSetup:      newSeededRepo,
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Invalid JSON body", decodeError(t, rec))
			},
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Nil(t, repo.LastSaved, "CreateCategory should not be called with invalid JSON")
			},
		},
		{
			name:               "Missing name",
			requestBody:        `{}`,
			mockRepoSetup:      newSeededRepo,
			expectedStatusCode: http.StatusUnprocessableEntity,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "name is required", decodeError(t, rec))
			},
		},
		{
			name:        "Repository error on create",
			requestBody: `{"name":"Toys"}`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{CreateErr: errors.New("insert failed")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.NotNil(t, repo.LastSaved, "CreateCategory should have been called")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()

			// Act
			rec := serve(mockRepo, "POST", "/categories/", tc.requestBody)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}

// --- Tests: GET|PUT|DELETE /categories/{id} ---

func TestHandleByID(t *testing.T) {
	testCases := []struct {
		name               string
		method             string
		url                string
		requestBody        string
		expectedStatusCode int
		expectedBody       string
		checkRepoCall      func(t *testing.T, repo *MockCategoryRepo)
	}{
		{
			name:               "Get existing",
			method:             "GET",
			url:                "/categories/2",
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"id":2,"name":"Books"}`,
		},
		{
			name:               "Get missing",
			method:             "GET",
			url:                "/categories/9",
			expectedStatusCode: http.StatusNotFound,
			expectedBody:       `{"error":"Category not found"}`,
		},
		{
			name:               "Get with invalid id",
			method:             "GET",
			url:                "/categories/abc",
			expectedStatusCode: http.StatusBadRequest,
			expectedBody:       `{"error":"Invalid id"}`,
		},
		{
			name:               "Update renames",
			method:             "PUT",
			url:                "/categories/1",
			requestBody:        `{"name":"Gadgets"}`,
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"id":1,"name":"Gadgets"}`,
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Equal(t, uint(1), repo.LastUpdatedID)
			},
		},
		{
			name:               "Update keeping its own name",
			method:             "PUT",
			url:                "/categories/1",
			requestBody:        `{"name":"Electronics"}`,
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"id":1,"name":"Electronics"}`,
		},
		{
			name:               "Update to another category's name",
			method:             "PUT",
			url:                "/categories/1",
			requestBody:        `{"name":"Books"}`,
			expectedStatusCode: http.StatusBadRequest,
			expectedBody:       `{"error":"Category already registered"}`,
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Zero(t, repo.LastUpdatedID, "UpdateCategory should not be called")
			},
		},
		{
			name:               "Update missing",
			method:             "PUT",
			url:                "/categories/9",
			requestBody:        `{"name":"Ghost"}`,
			expectedStatusCode: http.StatusNotFound,
			expectedBody:       `{"error":"Category not found"}`,
		},
		{
			name:               "Delete returns the deleted category",
			method:             "DELETE",
			url:                "/categories/1",
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"id":1,"name":"Electronics"}`,
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Equal(t, uint(1), repo.LastDeletedID)
				assert.Len(t, repo.Categories, 1)
			},
		},
		{
			name:               "Delete missing",
			method:             "DELETE",
			url:                "/categories/9",
			expectedStatusCode: http.StatusNotFound,
			expectedBody:       `{"error":"Category not found"}`,
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Zero(t, repo.LastDeletedID, "DeleteCategory should not be called")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := newSeededRepo()

			// Act
			rec := serve(mockRepo, tc.method, tc.url, tc.requestBody)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	mockRepo := newSeededRepo()

	rec := serve(mockRepo, "DELETE", "/categories/2", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(mockRepo, "GET", "/categories/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
