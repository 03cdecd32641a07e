package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/ankitkhedar12/trading-journal/src/database"
	"github.com/ankitkhedar12/trading-journal/src/logger"
	"github.com/ankitkhedar12/trading-journal/src/model"
	"github.com/ankitkhedar12/trading-journal/src/security"
	"github.com/ankitkhedar12/trading-journal/src/security/validation"
	"github.com/ankitkhedar12/trading-journal/src/utils"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func sendJSONError(w http.ResponseWriter, message string, statusCode int) {
	utils.SendJSONError(w, message, statusCode)
}

type AuthHandler struct {
	authService *security.AuthService
}

func NewAuthHandler(authService *security.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	creds.Email = strings.ToLower(validation.SanitizeText(creds.Email))
	creds.Password = strings.TrimSpace(creds.Password)

	if !emailRegex.MatchString(creds.Email) {
		sendJSONError(w, "Invalid email format", http.StatusBadRequest)
		return
	}
	if len(creds.Password) < 6 {
		sendJSONError(w, "Password must be at least 6 characters long", http.StatusBadRequest)
		return
	}

	_, err := model.GetUserByEmail(database.DB, creds.Email)
	if err == nil {
		sendJSONError(w, "Email already registered", http.StatusConflict)
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		logger.FromContext(r.Context()).Error("Error checking email uniqueness", "error", err)
		sendJSONError(w, "Failed to process registration", http.StatusInternalServerError)
		return
	}

	user := &model.User{Email: creds.Email}
	if err := user.HashPassword(creds.Password); err != nil {
		logger.FromContext(r.Context()).Error("Failed to hash password", "error", err)
		sendJSONError(w, "Failed to process registration", http.StatusInternalServerError)
		return
	}
	if err := user.CreateUser(database.DB); err != nil {
		logger.FromContext(r.Context()).Error("Failed to create user", "error", err)
		sendJSONError(w, "Failed to process registration", http.StatusInternalServerError)
		return
	}

	logger.FromContext(r.Context()).Info("User registered", "userID", user.ID)
	utils.SendJSON(w, map[string]any{"id": user.ID, "email": user.Email}, http.StatusCreated)
}

func (h *AuthHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))

	user, err := model.GetUserByEmail(database.DB, creds.Email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.FromContext(r.Context()).Error("Error fetching user on login", "error", err)
		}
		sendJSONError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if err := user.CheckPassword(creds.Password); err != nil {
		sendJSONError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.authService.GenerateToken(user.ID, user.Email)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to generate access token", "userID", user.ID, "error", err)
		sendJSONError(w, "Failed to complete login", http.StatusInternalServerError)
		return
	}

	logger.FromContext(r.Context()).Info("User logged in", "userID", user.ID)
	utils.SendJSON(w, map[string]any{
		"access_token": token,
		"user": map[string]any{
			"id":    user.ID,
			"email": user.Email,
		},
	}, http.StatusOK)
}

// LogoutUserHandler exists for API symmetry; tokens are stateless, so the
// client discards its copy.
func (h *AuthHandler) LogoutUserHandler(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, map[string]string{"message": "logged out"}, http.StatusOK)
}
