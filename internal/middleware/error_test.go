package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazario_back_end/internal/apierror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveError(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/test", handler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return w, got
}

func TestErrorHandler(t *testing.T) {
	t.Run("émet le statut et le message portés par l'erreur", func(t *testing.T) {
		w, got := serveError(t, func(c *gin.Context) {
			Fail(c, apierror.BadRequest("Missing required fields"))
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, got["success"])
		assert.Equal(t, "Missing required fields", got["message"])
	})

	t.Run("une erreur sans statut retombe sur un 500 générique", func(t *testing.T) {
		w, got := serveError(t, func(c *gin.Context) {
			Fail(c, errors.New("panne interne quelconque"))
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal Server Error", got["message"])
	})

	t.Run("ne touche pas une réponse déjà écrite", func(t *testing.T) {
		w, got := serveError(t, func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, got["success"])
	})

	t.Run("la dernière erreur déposée l'emporte", func(t *testing.T) {
		w, got := serveError(t, func(c *gin.Context) {
			_ = c.Error(apierror.NotFound("Shop not found"))
			Fail(c, apierror.BadRequest("Invalid shop ID"))
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid shop ID", got["message"])
	})
}
