package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dazeez1/blog-api/internal/auth"
	"github.com/dazeez1/blog-api/internal/models"
	"github.com/dazeez1/blog-api/pkg/logging"
)

// AuthAPI handles registration, login and profile endpoints
type AuthAPI struct {
	users      UserStore
	issuer     *auth.TokenIssuer
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthAPI creates a new auth API
func NewAuthAPI(users UserStore, issuer *auth.TokenIssuer, bcryptCost int) *AuthAPI {
	return &AuthAPI{
		users:      users,
		issuer:     issuer,
		bcryptCost: bcryptCost,
		logger:     logging.WithComponent("auth-api"),
	}
}

// SignupRequest is the request body for POST /api/auth/signup
type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the request body for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the request body for PUT /api/auth/me
type UpdateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=50"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// Signup handles POST /api/auth/signup
func (a *AuthAPI) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()

	existing, err := a.users.GetByEmail(ctx, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		respondError(c, ErrConflict("User with this email already exists"))
		return
	}

	hash, err := auth.HashPassword(req.Password, a.bcryptCost)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := a.users.Create(ctx, user); err != nil {
		respondError(c, err)
		return
	}

	token, err := a.issuer.Issue(user)
	if err != nil {
		respondError(c, err)
		return
	}

	a.logger.Info("User registered", zap.Int64("user_id", user.ID))
	respondCreated(c, "User registered successfully", gin.H{
		"user":  user,
		"token": token,
	})
}

// Login handles POST /api/auth/login
func (a *AuthAPI) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}

	user, err := a.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		respondError(c, ErrAuth("Invalid credentials"))
		return
	}

	token, err := a.issuer.Issue(user)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Login successful", gin.H{
		"user":  user,
		"token": token,
	})
}

// Me handles GET /api/auth/me
func (a *AuthAPI) Me(c *gin.Context) {
	actor, _ := auth.IdentityFrom(c)

	user, err := a.users.GetByID(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		respondError(c, ErrNotFound("User not found"))
		return
	}

	respondOK(c, "", gin.H{"user": user})
}

// UpdateMe handles PUT /api/auth/me
func (a *AuthAPI) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}

	actor, _ := auth.IdentityFrom(c)
	ctx := c.Request.Context()

	user, err := a.users.GetByID(ctx, actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		respondError(c, ErrNotFound("User not found"))
		return
	}

	if req.Email != nil && *req.Email != user.Email {
		existing, err := a.users.GetByEmail(ctx, *req.Email)
		if err != nil {
			respondError(c, err)
			return
		}
		if existing != nil {
			respondError(c, ErrConflict("User with this email already exists"))
			return
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}

	if err := a.users.Update(ctx, user); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Profile updated successfully", gin.H{"user": user})
}
