package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veo1/shop-api/app/middleware"
	"github.com/veo1/shop-api/logger"
	"github.com/veo1/shop-api/models"
	"github.com/veo1/shop-api/models/modelstest"
)

type client struct {
	t *testing.T
	h http.Handler
}

func newClient(t *testing.T) *client {
	return &client{t: t, h: NewRouter(modelstest.DB(t), logger.Nop())}
}

func (c *client) do(method, url, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	return rec
}

// id decodes the "id" field of a successful response.
func (c *client) id(rec *httptest.ResponseRecorder) uint {
	c.t.Helper()
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	var v struct {
		ID uint `json:"id"`
	}
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v.ID
}

func TestShopScenario(t *testing.T) {
	c := newClient(t)

	catID := c.id(c.do("POST", "/categories/", `{"name":"Electronics"}`))
	prodID := c.id(c.do("POST", "/products/",
		`{"name":"Phone","description":"cool phone","price":10000,"category_id":`+itoa(catID)+`}`))
	custID := c.id(c.do("POST", "/customers/", `{"username":"alice","password":"s3cret"}`))

	rec := c.do("POST", "/orders/",
		`{"customer_id":`+itoa(custID)+`,"product_id":`+itoa(prodID)+`,"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var order struct {
		TotalPrice float64 `json:"total_price"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, 20000.0, order.TotalPrice)

	rec = c.do("DELETE", "/categories/"+itoa(catID), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = c.do("GET", "/products/"+itoa(prodID), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"id":`+itoa(prodID)+`,"name":"Phone","description":"cool phone","price":10000,"category_id":`+itoa(catID)+`}`,
		rec.Body.String())

	rec = c.do("GET", "/catalog", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"total":1,"products":[{"id":1,"name":"Phone","description":"cool phone","price":10000,"category":{"id":0,"name":""}}]}`,
		rec.Body.String())

	rec = c.do("GET", "/customers/"+itoa(custID), "")
	assert.JSONEq(t, `{"id":1,"username":"alice"}`, rec.Body.String())
}

func TestConflictsAndMissingReferences(t *testing.T) {
	c := newClient(t)
	c.id(c.do("POST", "/categories", `{"name":"Books"}`))

	testCases := []struct {
		name               string
		method             string
		url                string
		body               string
		expectedStatusCode int
		expectedBody       string
	}{
		{
			name:               "Duplicate category",
			method:             "POST",
			url:                "/categories/",
			body:               `{"name":"Books"}`,
			expectedStatusCode: http.StatusBadRequest,
			expectedBody:       `{"error":"Category already registered"}`,
		},
		{
			name:               "Product in missing category",
			method:             "POST",
			url:                "/products/",
			body:               `{"name":"Novel","description":"","price":5,"category_id":99}`,
			expectedStatusCode: http.StatusNotFound,
			expectedBody:       `{"error":"Category not found"}`,
		},
		{
			name:               "Product in category id zero",
			method:             "POST",
			url:                "/products/",
			body:               `{"name":"Novel","price":5,"category_id":0}`,
			expectedStatusCode: http.StatusNotFound,
			expectedBody:       `{"error":"Category not found"}`,
		},
		{
			name:               "Product in negative category id",
			method:             "POST",
			url:                "/products/",
			body:               `{"name":"Novel","price":5,"category_id":-1}`,
			expectedStatusCode: http.StatusNotFound,
			expectedBody:       `{"error":"Category not found"}`,
		},
		{
			name:               "Order for customer id zero",
			method:             "POST",
			url:                "/orders/",
			body:               `{"customer_id":0,"product_id":0,"quantity":1}`,
			expectedStatusCode: http.StatusNotFound,
			expectedBody:       `{"error":"Customer not found"}`,
		},
		{
			name:               "Price with too many decimals",
			method:             "POST",
			url:                "/products/",
			body:               `{"name":"Novel","price":10.555,"category_id":1}`,
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedBody:       `{"error":"price must have at most 2 decimal places"}`,
		},
		{
			name:               "Order for missing customer",
			method:             "POST",
			url:                "/orders/",
			body:               `{"customer_id":99,"product_id":99,"quantity":1}`,
			expectedStatusCode: http.StatusNotFound,
			expectedBody:       `{"error":"Customer not found"}`,
		},
		{
			name:               "Missing order",
			method:             "GET",
			url:                "/orders/7",
			expectedStatusCode: http.StatusNotFound,
			expectedBody:       `{"error":"Order not found"}`,
		},
		{
			name:               "Delete missing category",
			method:             "DELETE",
			url:                "/categories/7",
			expectedStatusCode: http.StatusNotFound,
			expectedBody:       `{"error":"Category not found"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := c.do(tc.method, tc.url, tc.body)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
		})
	}
}

func TestPagination(t *testing.T) {
	c := newClient(t)
	for _, name := range []string{"a", "b", "c"} {
		c.id(c.do("POST", "/categories/", `{"name":"`+name+`"}`))
	}

	rec := c.do("GET", "/categories/?skip=1&limit=1", "")
	assert.JSONEq(t, `[{"id":2,"name":"b"}]`, rec.Body.String())

	rec = c.do("GET", "/categories/?skip=5", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	c := newClient(t)

	rec := c.do("GET", "/categories/", "")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestHealthz(t *testing.T) {
	db := modelstest.DB(t)
	h := NewRouter(db, logger.Nop())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	require.NoError(t, models.Close(db))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
