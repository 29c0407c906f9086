package controllers

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dev-7msolution/restaurante-mobile/logger"
	"github.com/dev-7msolution/restaurante-mobile/models"
	"github.com/dev-7msolution/restaurante-mobile/server/database"
	"github.com/dev-7msolution/restaurante-mobile/server/middleware"
	"github.com/dev-7msolution/restaurante-mobile/server/services"
)

type AuthController struct {
	Users  *database.UserRepository
	Tokens *services.TokenService
}

func NewAuthController(users *database.UserRepository, tokens *services.TokenService) *AuthController {
	return &AuthController{Users: users, Tokens: tokens}
}

func toWireUser(u *database.User) *models.User {
	return &models.User{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
		Avatar: u.Avatar,
	}
}

// issuePair generates a token pair and persists the refresh jti.
func (ac *AuthController) issuePair(c *gin.Context, user *database.User) (*services.TokenPair, error) {
	pair, tokenID, err := ac.Tokens.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	err = ac.Users.CreateRefreshToken(c.Request.Context(), &database.RefreshToken{
		ID:        uuid.NewString(),
		TokenID:   tokenID,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(ac.Tokens.RefreshTTL()),
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Login handles POST /auth/login.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dados inválidos"})
		return
	}

	user, err := ac.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
		return
	}

	pair, err := ac.issuePair(c, user)
	if err != nil {
		logger.Error("failed to issue token pair", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         toWireUser(user),
	})
}

// Register handles POST /auth/register.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dados inválidos"})
		return
	}

	ctx := c.Request.Context()
	if _, err := ac.Users.FindByEmail(ctx, req.Email); err == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Email já cadastrado"})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	user := &database.User{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hashed),
		Role:     "customer",
	}
	if err := ac.Users.Create(ctx, user); err != nil {
		logger.Error("failed to create user", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar conta"})
		return
	}

	logger.Info("user registered", zap.String("email", user.Email))
	c.JSON(http.StatusCreated, gin.H{"message": "Conta criada com sucesso"})
}

// Refresh handles POST /auth/refresh with rotation: the presented refresh
// token is revoked and a fresh pair is issued.
func (ac *AuthController) Refresh(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dados inválidos"})
		return
	}

	claims, err := ac.Tokens.ValidateToken(req.RefreshToken, "refresh")
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token inválido"})
		return
	}

	tokenID, _ := claims["jti"].(string)
	userID, _ := claims["sub"].(string)
	if tokenID == "" || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token inválido"})
		return
	}

	ctx := c.Request.Context()
	stored, err := ac.Users.FindRefreshToken(ctx, tokenID)
	if err != nil || stored.Revoked || time.Now().After(stored.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token inválido"})
		return
	}

	user, err := ac.Users.FindByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token inválido"})
		return
	}

	if err := ac.Users.RevokeRefreshToken(ctx, tokenID); err != nil {
		logger.Error("failed to revoke refresh token", err)
	}

	pair, err := ac.issuePair(c, user)
	if err != nil {
		logger.Error("failed to issue token pair", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	c.JSON(http.StatusOK, models.RefreshResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Me handles GET /auth/me.
func (ac *AuthController) Me(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	user, err := ac.Users.FindByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}
	c.JSON(http.StatusOK, toWireUser(user))
}

// UpdateProfile handles PATCH /auth/profile.
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dados inválidos"})
		return
	}

	ctx := c.Request.Context()
	user, err := ac.Users.FindByID(ctx, c.GetString(middleware.CtxUserID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if err := ac.Users.Update(ctx, user); err != nil {
		logger.Error("failed to update profile", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}
	c.JSON(http.StatusOK, toWireUser(user))
}

// ChangePassword handles POST /auth/change-password.
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dados inválidos"})
		return
	}

	ctx := c.Request.Context()
	user, err := ac.Users.FindByID(ctx, c.GetString(middleware.CtxUserID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Senha atual incorreta"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}
	user.Password = string(hashed)
	if err := ac.Users.Update(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	// Password change invalidates every outstanding refresh token.
	if err := ac.Users.RevokeUserRefreshTokens(ctx, user.ID); err != nil {
		logger.Error("failed to revoke refresh tokens", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Senha alterada com sucesso"})
}

// Logout handles POST /auth/logout, revoking the user's refresh tokens.
func (ac *AuthController) Logout(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	if err := ac.Users.RevokeUserRefreshTokens(c.Request.Context(), userID); err != nil {
		logger.Error("failed to revoke refresh tokens on logout", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout efetuado"})
}

// ForgotPassword handles POST /auth/forgot-password. The reset token is
// logged instead of emailed; the stub has no mail transport. The response
// is 200 regardless to avoid leaking which emails exist.
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dados inválidos"})
		return
	}

	ctx := c.Request.Context()
	if user, err := ac.Users.FindByEmail(ctx, req.Email); err == nil {
		user.ResetToken = uuid.NewString()
		if err := ac.Users.Update(ctx, user); err == nil {
			logger.Info("password reset requested",
				zap.String("email", user.Email),
				zap.String("reset_token", user.ResetToken),
			)
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Se o email existir, enviaremos instruções"})
}

// ResetPassword handles POST /auth/reset-password.
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dados inválidos"})
		return
	}

	ctx := c.Request.Context()
	user, err := ac.Users.FindByResetToken(ctx, req.Token)
	if err != nil || req.Token == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Token de redefinição inválido"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}
	user.Password = string(hashed)
	user.ResetToken = ""
	if err := ac.Users.Update(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}
	if err := ac.Users.RevokeUserRefreshTokens(ctx, user.ID); err != nil {
		logger.Error("failed to revoke refresh tokens", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Senha redefinida com sucesso"})
}

// CheckEmail handles POST /auth/check-email.
func (ac *AuthController) CheckEmail(c *gin.Context) {
	var req models.CheckEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dados inválidos"})
		return
	}
	_, err := ac.Users.FindByEmail(c.Request.Context(), req.Email)
	c.JSON(http.StatusOK, gin.H{"exists": err == nil})
}

// SendVerificationCode handles POST /auth/send-verification.
func (ac *AuthController) SendVerificationCode(c *gin.Context) {
	var req models.CheckEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dados inválidos"})
		return
	}

	ctx := c.Request.Context()
	user, err := ac.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	user.VerificationCode = fmt.Sprintf("%06d", rand.Intn(1000000))
	if err := ac.Users.Update(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}
	logger.Info("verification code issued",
		zap.String("email", user.Email),
		zap.String("code", user.VerificationCode),
	)
	c.JSON(http.StatusOK, gin.H{"message": "Código enviado"})
}

// VerifyCode handles POST /auth/verify-code.
func (ac *AuthController) VerifyCode(c *gin.Context) {
	var req models.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dados inválidos"})
		return
	}

	ctx := c.Request.Context()
	user, err := ac.Users.FindByEmail(ctx, req.Email)
	if err != nil || user.VerificationCode == "" || user.VerificationCode != req.Code {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Código inválido"})
		return
	}

	user.VerificationCode = ""
	if err := ac.Users.Update(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Código verificado"})
}
