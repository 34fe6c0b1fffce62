package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var response Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestAPIResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("SuccessResponse", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		SuccessResponse(c, http.StatusOK, "Success message", map[string]string{"key": "value"})

		assert.Equal(t, http.StatusOK, w.Code)
		response := decode(t, w)
		assert.True(t, response.Success)
		assert.Equal(t, "Success message", response.Message)
		assert.NotNil(t, response.Data)
		assert.Nil(t, response.Error)
	})

	t.Run("ErrorResponse", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		ErrorResponse(c, http.StatusBadRequest, "TEST_ERROR", "Test error message", map[string]string{"field": "error"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		response := decode(t, w)
		assert.False(t, response.Success)
		require.NotNil(t, response.Error)
		assert.Equal(t, "TEST_ERROR", response.Error.Code)
		assert.Equal(t, "Test error message", response.Error.Message)
		assert.NotNil(t, response.Error.Details)
	})

	t.Run("BadRequestResponse", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		BadRequestResponse(c, "stake is required")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		response := decode(t, w)
		assert.Equal(t, "VALIDATION_ERROR", response.Error.Code)
		assert.Equal(t, "stake is required", response.Error.Details)
	})

	t.Run("NotFoundResponse", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		NotFoundResponse(c, "Game")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Game not found", decode(t, w).Error.Message)
	})

	t.Run("CreatedResponse", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		CreatedResponse(c, "Bet placed", gin.H{"potential_payout": 300})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, decode(t, w).Success)
	})

	t.Run("PaginatedResponse", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		PaginatedResponse(c, "Bets", []int{1, 2}, NewPaginationMeta(1, 2, 5))

		response := decode(t, w)
		meta, ok := response.Meta.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(3), meta["total_pages"])
		assert.Equal(t, true, meta["has_next"])
		assert.Equal(t, false, meta["has_prev"])
	})
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(3, 10, 30)
	assert.Equal(t, 3, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	empty := NewPaginationMeta(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
}

func TestPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query       string
		wantPage    int
		wantPerPage int
	}{
		{"", 1, 20},
		{"?page=3&per_page=50", 3, 50},
		{"?page=-1&per_page=500", 1, 20},
		{"?page=abc", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/bets"+tt.query, http.NoBody)

			page, perPage := Pagination(c)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPerPage, perPage)
		})
	}
}
