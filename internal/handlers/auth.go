package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusnet/backend/internal/apperrors"
	"github.com/campusnet/backend/internal/models"
	"github.com/campusnet/backend/internal/repositories"
)

// AuthHandler handles authentication-related HTTP requests. Provider tokens
// are exchanged for a local session JWT; a password path exists for local
// development.
type AuthHandler struct {
	userRepository repositories.UserRepository
	providerAuth   *auth.Client
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, providerAuth *auth.Client, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		providerAuth:   providerAuth,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
	g.POST("/provider-login", h.ProviderLogin)
}

// Signup handles local user registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperrors.New(apperrors.Validation, "invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, apperrors.Wrap(apperrors.Validation, err.Error(), err))
	}

	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return fail(c, apperrors.New(apperrors.Conflict, "email already registered"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, apperrors.Wrap(apperrors.Internal, "failed to hash password", err))
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Username: strings.ToLower(req.Username),
		Password: string(hashedPassword),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return fail(c, err)
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return fail(c, apperrors.Wrap(apperrors.Internal, "failed to generate token", err))
	}
	return c.JSON(http.StatusCreated, echo.Map{"token": token, "user": user})
}

// SignIn handles local user authentication with email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperrors.New(apperrors.Validation, "invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, apperrors.Wrap(apperrors.Validation, err.Error(), err))
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		return fail(c, apperrors.New(apperrors.Unauthorized, "invalid email or password"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return fail(c, apperrors.New(apperrors.Unauthorized, "invalid email or password"))
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return fail(c, apperrors.Wrap(apperrors.Internal, "failed to generate token", err))
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

// ProviderLogin verifies the identity provider's ID token, creates the local
// user row on first sign-in and issues a session JWT.
func (h *AuthHandler) ProviderLogin(c echo.Context) error {
	var req models.ProviderLoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperrors.New(apperrors.Validation, "invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, apperrors.Wrap(apperrors.Validation, err.Error(), err))
	}

	token, err := h.providerAuth.VerifyIDToken(context.Background(), req.IDToken)
	if err != nil {
		return fail(c, apperrors.Wrap(apperrors.Unauthorized, "invalid provider ID token", err))
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)

	user, err := h.userRepository.GetUserByFirebaseUID(token.UID)
	if err != nil {
		if apperrors.KindOf(err) != apperrors.NotFound {
			return fail(c, err)
		}
		user, err = h.firstSignIn(token.UID, email, name)
		if err != nil {
			return fail(c, err)
		}
	}

	sessionJWT, err := h.generateJWT(user)
	if err != nil {
		return fail(c, apperrors.Wrap(apperrors.Internal, "failed to generate token", err))
	}
	return c.JSON(http.StatusOK, echo.Map{"token": sessionJWT, "user": user})
}

// firstSignIn links the provider identity to an existing row by email or
// creates the user with a username derived from the email.
func (h *AuthHandler) firstSignIn(providerUID, email, name string) (*models.User, error) {
	if user, err := h.userRepository.GetUserByEmail(email); err == nil {
		user.FirebaseUID = providerUID
		if err := h.userRepository.UpdateUser(user); err != nil {
			return nil, err
		}
		return user, nil
	}

	username, err := h.availableUsername(email)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:        name,
		Email:       email,
		Username:    username,
		FirebaseUID: providerUID,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// availableUsername derives a username from the email local part, suffixing
// an opaque ID when the name is taken.
func (h *AuthHandler) availableUsername(email string) (string, error) {
	base := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	base = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			return r
		}
		return -1
	}, base)
	if base == "" {
		base = "user"
	}

	if _, err := h.userRepository.GetUserByUsername(base); err != nil {
		return base, nil
	}
	suffix, err := models.NewID()
	if err != nil {
		return "", apperrors.Wrap(apperrors.Internal, "failed to generate username", err)
	}
	return base + "_" + strings.ToLower(suffix[:6]), nil
}

// generateJWT generates a session JWT for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
