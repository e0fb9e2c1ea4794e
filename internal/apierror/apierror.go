// Package apierror porte le code HTTP sur l'erreur elle-même, pour que le
// middleware de réponse centralisé n'ait qu'une seule forme à émettre.
package apierror

import "net/http"

// Error est une erreur applicative avec son statut HTTP. Statut absent ⇒ 500.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// StatusCode retourne le statut porté, ou 500 s'il n'a pas été renseigné.
func (e *Error) StatusCode() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// New construit une erreur applicative.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// BadRequest — entrée manquante ou malformée.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// NotFound — entité référencée absente.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Unauthorized — credential manquant, invalide ou expiré.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Internal — échec d'un service amont (Mongo, MinIO, SMTP, Stripe).
func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}
