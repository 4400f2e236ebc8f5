package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	Repo   *Repo
	Tokens TokenService
	Log    zerolog.Logger
}

func NewHandler(repo *Repo, tokens TokenService, log zerolog.Logger) *Handler {
	return &Handler{Repo: repo, Tokens: tokens, Log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.login)
	rg.POST("/logout", AuthMiddleware(h.Tokens, h.Repo), h.logout)
	rg.GET("/me", AuthMiddleware(h.Tokens, h.Repo), h.me)
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	op, err := h.Repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.Log.Error().Err(err).Msg("login lookup failed")
	}
	if err != nil || op == nil {
		// don't reveal which part failed
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, exp, err := h.Tokens.Sign(op)
	if err != nil {
		h.Log.Error().Err(err).Str("operator_id", op.ID).Msg("sign token failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token failed"})
		return
	}

	h.Log.Info().Str("operator_id", op.ID).Msg("operator logged in")
	c.JSON(http.StatusOK, gin.H{
		"operator": gin.H{
			"id":           op.ID,
			"email":        op.Email,
			"display_name": op.DisplayName,
		},
		"token":      token,
		"expires_at": exp.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) logout(c *gin.Context) {
	claims := MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	if err := h.Repo.BumpTokenVersion(c.Request.Context(), claims.OperatorID); err != nil {
		h.Log.Error().Err(err).Str("operator_id", claims.OperatorID).Msg("logout failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (h *Handler) me(c *gin.Context) {
	claims := MustGetClaims(c)
	c.JSON(http.StatusOK, gin.H{
		"id":           claims.OperatorID,
		"email":        claims.Email,
		"display_name": claims.DisplayName,
	})
}

// NewOperator validates the inputs and hashes the password for a new account.
func NewOperator(email, displayName, password string) (Operator, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	displayName = strings.TrimSpace(displayName)

	if !strings.Contains(email, "@") || len(email) > 255 {
		return Operator{}, errors.New("invalid email")
	}
	if displayName == "" {
		displayName = email[:strings.Index(email, "@")]
	}
	if len(password) < 8 || len(password) > 72 {
		return Operator{}, errors.New("password must be 8-72 chars")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Operator{}, err
	}

	return Operator{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
	}, nil
}
