package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dataglance/tably/internal/mail"
	"github.com/dataglance/tably/internal/models"
	"github.com/dataglance/tably/internal/security"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Failure classes reported to the request boundary. Handlers map these to HTTP
// statuses; anything else is a generic internal failure.
var (
	ErrValidation           = errors.New("invalid input")
	ErrDuplicateEmail       = errors.New("email already in use")
	ErrNotFound             = errors.New("account not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
	ErrDelivery             = errors.New("failed to send email")
)

const (
	resetCodeDigits = 6
	resetCodeTTL    = 5 * time.Minute
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
}

// AuthService owns account credentials and the OTP recovery sub-state. No other
// component reads or writes the recovery-challenge fields.
type AuthService struct {
	users  AuthUserRepository
	mailer mail.Mailer
	now    func() time.Time
}

func NewAuthService(users AuthUserRepository, mailer mail.Mailer) *AuthService {
	return &AuthService{users: users, mailer: mailer, now: time.Now}
}

// WithClock substitutes the time source; tests use it to cross the expiry
// boundary deterministically.
func (service *AuthService) WithClock(now func() time.Time) *AuthService {
	service.now = now
	return service
}

func (service *AuthService) Register(name string, email string, password string, role string) (models.User, error) {
	input, err := NormalizeRegistrationInput(name, email, password, role)
	if err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(input.Email)
	if err != nil {
		return models.User{}, fmt.Errorf("check email uniqueness: %w", err)
	}
	if exists {
		return models.User{}, ErrDuplicateEmail
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(passwordHash),
		Role:         input.Role,
		CreatedAt:    service.now().UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		// Unique index race: two concurrent registrations for the same email.
		return models.User{}, ErrDuplicateEmail
	}
	return user, nil
}

func (service *AuthService) Login(email string, password string) (models.User, error) {
	normalizedEmail, plainPassword, err := NormalizeCredentialsInput(email, password)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.findAccount(normalizedEmail)
	if err != nil {
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(plainPassword)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("load account: %w", err)
	}
	return user, nil
}

func (service *AuthService) UpdateProfile(userID uint, name string) (models.User, error) {
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return models.User{}, ErrValidation
	}

	user, err := service.FindByID(userID)
	if err != nil {
		return models.User{}, err
	}

	user.Name = trimmedName
	if err := service.users.Save(&user); err != nil {
		return models.User{}, fmt.Errorf("save account: %w", err)
	}
	return user, nil
}

// RequestPasswordReset starts a recovery cycle: a fresh 6-digit code replaces
// any outstanding challenge, is persisted, and is then sent to the account's
// email. The code travels only over the side channel, never in the response.
// When two requests race, last write wins and only the newest code is valid.
func (service *AuthService) RequestPasswordReset(email string) error {
	normalizedEmail := NormalizeEmail(email)
	if normalizedEmail == "" {
		return ErrValidation
	}

	user, err := service.findAccount(normalizedEmail)
	if err != nil {
		return err
	}

	code, err := security.NumericCode(resetCodeDigits)
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}

	user.SetRecoveryChallenge(models.RecoveryChallenge{
		Code:      code,
		ExpiresAt: service.now().Add(resetCodeTTL).UTC(),
	})
	if err := service.users.Save(&user); err != nil {
		return fmt.Errorf("persist reset challenge: %w", err)
	}

	subject := "Password Reset OTP"
	body := fmt.Sprintf("Your OTP for password reset is: %s. It is valid for 5 minutes.", code)
	if err := service.mailer.Send(user.Email, subject, body); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}

// VerifyResetCode checks the outstanding challenge without consuming it; the
// same code stays valid for the subsequent reset call. Absent, mismatched and
// expired challenges are deliberately indistinguishable to the caller.
func (service *AuthService) VerifyResetCode(email string, code string) error {
	_, err := service.matchChallenge(email, code)
	return err
}

// ResetPassword consumes a matching challenge: the new password hash replaces
// the old one and both challenge fields are cleared in the same write, so the
// code cannot be replayed. A failed match leaves the account untouched.
func (service *AuthService) ResetPassword(email string, code string, newPassword string) error {
	if newPassword == "" {
		return ErrValidation
	}

	user, err := service.matchChallenge(email, code)
	if err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	user.PasswordHash = string(passwordHash)
	user.ClearRecoveryChallenge()
	if err := service.users.Save(&user); err != nil {
		return fmt.Errorf("persist password reset: %w", err)
	}
	return nil
}

func (service *AuthService) matchChallenge(email string, code string) (models.User, error) {
	normalizedEmail := NormalizeEmail(email)
	if normalizedEmail == "" {
		return models.User{}, ErrValidation
	}

	user, err := service.findAccount(normalizedEmail)
	if err != nil {
		return models.User{}, err
	}

	challenge := user.RecoveryChallenge()
	if challenge == nil || !challenge.Matches(strings.TrimSpace(code), service.now()) {
		return models.User{}, ErrInvalidOrExpiredCode
	}
	return user, nil
}

func (service *AuthService) findAccount(normalizedEmail string) (models.User, error) {
	user, err := service.users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("load account: %w", err)
	}
	return user, nil
}
