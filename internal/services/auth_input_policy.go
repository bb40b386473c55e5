package services

import (
	"strings"

	"github.com/dataglance/tably/internal/models"
)

// NormalizeEmail trims and lowercases an address; email is the natural key for
// accounts and is always stored and looked up in this form.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

type RegistrationInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func NormalizeRegistrationInput(name string, email string, password string, role string) (RegistrationInput, error) {
	input := RegistrationInput{
		Name:     strings.TrimSpace(name),
		Email:    NormalizeEmail(email),
		Password: password,
		Role:     strings.TrimSpace(role),
	}
	if input.Name == "" || input.Email == "" || input.Password == "" || input.Role == "" {
		return RegistrationInput{}, ErrValidation
	}
	if !models.ValidRole(input.Role) {
		return RegistrationInput{}, ErrValidation
	}
	return input, nil
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeEmail(emailRaw)
	if email == "" || passwordRaw == "" {
		return "", "", ErrValidation
	}
	return email, passwordRaw, nil
}
