package user

import (
	"net/http"
	"time"

	"github.com/shayrooms/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already registered")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
)

// Provider tags which authentication backend owns the credential material.
type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderGoogle Provider = "google"
)

// User represents a registered customer or staff member. The booking core
// consumes this read-only; mutation happens only through the auth endpoints.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
	Provider     Provider
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
