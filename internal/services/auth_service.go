package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"alshop/internal/apperr"
	"alshop/internal/models"
	"alshop/internal/repositories"
	"alshop/pkg/mailer"
)

// otpTTL is how long a password-reset code stays valid.
const otpTTL = 5 * time.Minute

// AuthService handles registration, login, token issuance and the
// OTP-based password-reset flow.
type AuthService struct {
	userRepo  repositories.UserRepository
	resetRepo repositories.PasswordResetRepository
	mail      mailer.Mailer
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repositories.UserRepository,
	resetRepo repositories.PasswordResetRepository,
	mail mailer.Mailer,
	jwtSecret string,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		mail:      mail,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  24 * time.Hour,
	}
}

// Register creates a new account with a hashed password and the user role.
func (s *AuthService) Register(name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperr.Validationf("name, email and password are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Dependencyf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by email and password and returns a signed token
// plus the account. Credential failures are indistinguishable on purpose.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", nil, apperr.Forbiddenf("invalid credentials")
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.Forbiddenf("invalid credentials")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// AdminLogin is Login plus a role gate for the admin panel.
func (s *AuthService) AdminLogin(email, password string) (string, *models.User, error) {
	token, user, err := s.Login(email, password)
	if err != nil {
		return "", nil, err
	}
	if !user.IsAdmin() {
		return "", nil, apperr.Forbiddenf("account does not have administrative access")
	}
	return token, user, nil
}

// ValidateToken parses and validates a token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// ForgotPassword issues a 6-digit OTP with a short TTL and mails it.
// Unknown emails succeed silently so the endpoint cannot be used to probe
// for accounts.
func (s *AuthService) ForgotPassword(email string) error {
	if email == "" {
		return apperr.Validationf("email is required")
	}

	if _, err := s.userRepo.GetByEmail(email); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			log.Printf("[auth] password reset requested for unknown email")
			return nil
		}
		return err
	}

	otp := fmt.Sprintf("%06d", rand.Intn(1000000))
	reset := &models.PasswordReset{
		Email:     email,
		OTP:       otp,
		ExpiresAt: time.Now().Add(otpTTL),
		Verified:  false,
	}
	if err := s.resetRepo.Upsert(reset); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"<h1>AL-Shop password reset</h1><p>Your verification code is <strong>%s</strong>.</p><p>It expires in 5 minutes. Do not share it.</p>",
		otp,
	)
	if err := s.mail.Send(email, "AL-Shop password reset code", body); err != nil {
		return apperr.Dependencyf("failed to send reset mail: %v", err)
	}
	return nil
}

// VerifyOTP checks the submitted code and marks the challenge verified.
func (s *AuthService) VerifyOTP(email, otp string) error {
	if email == "" || otp == "" {
		return apperr.Validationf("email and otp are required")
	}

	reset, err := s.resetRepo.GetByEmailAndOTP(email, otp)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Validationf("invalid verification code")
		}
		return err
	}
	if reset.Expired(time.Now()) {
		if err := s.resetRepo.DeleteByEmail(email); err != nil {
			log.Printf("[auth] failed to purge expired reset for %s: %v", email, err)
		}
		return apperr.Validationf("verification code expired, request a new one")
	}
	if reset.Verified {
		return apperr.Validationf("verification code already used")
	}

	reset.Verified = true
	return s.resetRepo.Save(reset)
}

// ResetPassword sets a new password for an email with a verified,
// unexpired challenge, then purges the challenge.
func (s *AuthService) ResetPassword(email, newPassword string) error {
	if email == "" || newPassword == "" {
		return apperr.Validationf("email and new password are required")
	}

	reset, err := s.resetRepo.GetVerifiedByEmail(email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Validationf("invalid or unverified password reset session")
		}
		return err
	}
	if reset.Expired(time.Now()) {
		if err := s.resetRepo.DeleteByEmail(email); err != nil {
			log.Printf("[auth] failed to purge expired reset for %s: %v", email, err)
		}
		return apperr.Validationf("password reset session expired, request a new one")
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			if purgeErr := s.resetRepo.DeleteByEmail(email); purgeErr != nil {
				log.Printf("[auth] failed to purge reset for %s: %v", email, purgeErr)
			}
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Dependencyf("failed to hash password: %v", err)
	}
	user.Password = string(hashed)
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	return s.resetRepo.DeleteByEmail(email)
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     now.Add(s.tokenTTL).Unix(),
		"iat":     now.Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperr.Dependencyf("failed to sign token: %v", err)
	}
	return signed, nil
}
