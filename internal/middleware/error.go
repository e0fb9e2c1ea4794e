package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bazario_back_end/internal/apierror"
)

// ErrorHandler est l'entonnoir unique de réponse d'erreur : tous les handlers
// déposent leurs erreurs via c.Error et la réponse {success:false, message}
// est émise ici, avec le statut porté par l'erreur (500 par défaut).
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := http.StatusInternalServerError
		message := "Internal Server Error"

		var apiErr *apierror.Error
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode()
			message = apiErr.Message
		}

		if status >= http.StatusInternalServerError {
			log.Printf("❌ Erreur serveur sur %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}

		c.JSON(status, gin.H{
			"success": false,
			"message": message,
		})
	}
}

// Fail dépose l'erreur dans le contexte gin et interrompt la chaîne. Les
// handlers ne doivent jamais écrire eux-mêmes une réponse d'erreur.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
