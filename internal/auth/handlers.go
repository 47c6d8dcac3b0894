package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/foodsphere/server/internal/entities"
)

// Response messages are part of the public contract; clients match on them.
const (
	msgRegistered         = "User registered successfully"
	msgUserExists         = "User already exists"
	msgLoginSuccessful    = "Login successful"
	msgInvalidCredentials = "Invalid email or password"
	msgInvalidBody        = "invalid request body"
)

// AuditLogger records auth outcomes without blocking the request.
type AuditLogger interface {
	LogAsync(event *entities.AuditEvent)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

type failureResponse struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message"`
}

// AuthController handles authentication-related HTTP endpoints.
type AuthController struct {
	service    *Service
	middleware *Middleware
	auditor    AuditLogger
}

// NewAuthController creates a new authentication controller. auditor may be nil.
func NewAuthController(service *Service, middleware *Middleware, auditor AuditLogger) *AuthController {
	return &AuthController{
		service:    service,
		middleware: middleware,
		auditor:    auditor,
	}
}

// RegisterRoutes registers authentication routes on a router or group.
// The middleware Handler must already be installed on the router.
func (ac *AuthController) RegisterRoutes(routes gin.IRoutes) {
	routes.POST("/register", ac.Register)
	routes.POST("/login", ac.Login)
	routes.GET("/me", ac.middleware.RequireAuth(), ac.Me)
}

// Register handles POST /register.
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, failureResponse{Success: boolPtr(false), Message: msgInvalidBody})
		return
	}

	_, err := ac.service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	ac.audit(c, entities.AuditEventRegister, req.Email, err)

	switch {
	case err == nil:
		c.JSON(http.StatusCreated, registerResponse{Success: true, Message: msgRegistered})
	case errors.Is(err, ErrDuplicateUser):
		c.JSON(http.StatusBadRequest, failureResponse{Success: boolPtr(false), Message: msgUserExists})
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, failureResponse{Success: boolPtr(false), Message: err.Error()})
	default:
		log.Printf("Internal error (register): %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Login handles POST /login.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, failureResponse{Message: msgInvalidBody})
		return
	}

	token, err := ac.service.Login(c.Request.Context(), req.Email, req.Password)
	ac.audit(c, entities.AuditEventLogin, req.Email, err)

	switch {
	case err == nil:
		c.JSON(http.StatusOK, loginResponse{Success: true, Message: msgLoginSuccessful, Token: token})
	case errors.Is(err, ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, failureResponse{Message: msgInvalidCredentials})
	default:
		log.Printf("Internal error (login): %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Me handles GET /me and returns the caller's profile and when their token expires.
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.service.GetUserByEmail(c.Request.Context(), GetEmail(c))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Printf("Internal error (me): %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	resp := gin.H{
		"email": user.Email,
		"name":  user.Name,
	}
	if claims := GetClaims(c); claims != nil && claims.ExpiresAt != nil {
		resp["tokenExpiresAt"] = claims.ExpiresAt.Time.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}

// audit records the outcome of an auth attempt. Passwords are never included.
func (ac *AuthController) audit(c *gin.Context, eventType entities.AuditEventType, email string, err error) {
	if ac.auditor == nil {
		return
	}

	event := &entities.AuditEvent{
		EventType: eventType,
		Action:    auditAction(eventType, err),
		Email:     email,
		IPAddress: c.ClientIP(),
		UserAgent: truncate(c.Request.UserAgent(), 500),
		Status:    entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
	}

	switch eventType {
	case entities.AuditEventRegister:
		event.Description = "Registration attempt"
	case entities.AuditEventLogin:
		event.Description = "Login attempt"
	}

	ac.auditor.LogAsync(event)
}

func auditAction(eventType entities.AuditEventType, err error) string {
	action := string(eventType)
	switch {
	case err == nil:
		return action
	case errors.Is(err, ErrDuplicateUser):
		return action + "_duplicate"
	case errors.Is(err, ErrInvalidCredentials):
		return action + "_invalid_credentials"
	case errors.Is(err, ErrInvalidInput):
		return action + "_invalid_input"
	default:
		return action + "_error"
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

func boolPtr(b bool) *bool {
	return &b
}
