package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/picineiros/pool-manager/internal/auth"
	"github.com/picineiros/pool-manager/internal/config"
	"github.com/picineiros/pool-manager/internal/httperr"
	"github.com/picineiros/pool-manager/internal/httpresp"
	"github.com/picineiros/pool-manager/internal/mailer"
	"github.com/picineiros/pool-manager/internal/middleware"
	"github.com/picineiros/pool-manager/internal/models"
	"github.com/picineiros/pool-manager/internal/validators"
)

type AuthHandler struct {
	db          *gorm.DB
	config      *config.Config
	tokens      *auth.TokenService
	stateTokens *auth.StateTokenGenerator
	mail        mailer.Mailer
	log         *zap.Logger
}

func NewAuthHandler(
	db *gorm.DB,
	cfg *config.Config,
	tokens *auth.TokenService,
	stateTokens *auth.StateTokenGenerator,
	mail mailer.Mailer,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		db:          db,
		config:      cfg,
		tokens:      tokens,
		stateTokens: stateTokens,
		mail:        mail,
		log:         log,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type EmailVerifyRequest struct {
	UIDB64 string `json:"uidb64" binding:"required"`
	Token  string `json:"token" binding:"required"`
}

type PasswordChangeRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type PasswordResetConfirmRequest struct {
	UIDB64      string `json:"uidb64" binding:"required"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// --------- CSRF ---------

func (h *AuthHandler) CSRF(c *gin.Context) {
	token := middleware.EnsureCSRFCookie(c, h.config.CookieSecure())
	httpresp.OK(c, gin.H{"csrfToken": token})
}

// --------- Registro / verificação ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.config.Debug && !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "O domínio do e-mail informado não parece ser válido.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		// O fluxo de reset é enumeration-safe; o cadastro assume o
		// tradeoff de responder "email já cadastrado".
		httperr.BadRequest(c, "Já existe um usuário com este email.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "Não foi possível registrar o usuário.")
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hashed),
		Nome:         req.Nome,
		Telefone:     req.Telefone,
		IsActive:     true,
	}

	if err := h.db.Create(&user).Error; err != nil {
		// Dois cadastros simultâneos do mesmo email passam pela contagem
		// acima; o índice único resolve e a violação vira o mesmo 400.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.BadRequest(c, "Já existe um usuário com este email.")
			return
		}
		httperr.Internal(c, "Não foi possível registrar o usuário.")
		return
	}

	// O envio é síncrono: falha de transporte falha o cadastro.
	token := h.stateTokens.Make(&user, auth.PurposeEmailVerify)
	link := fmt.Sprintf("%s/verify-email/%s/%s", h.config.FrontendOrigin, auth.EncodeUID(user.ID), token)

	err = h.mail.Send(c.Request.Context(), user.Email,
		"Verifique seu email",
		fmt.Sprintf("Use o link a seguir para verificar seu endereço de email: %s", link),
	)
	if err != nil {
		h.log.Error("verification email failed", zap.String("email", user.Email), zap.Error(err))
		httperr.Internal(c, "Não foi possível enviar o email de verificação.")
		return
	}

	httpresp.Detail(c, http.StatusCreated,
		"Usuário registrado com sucesso. Verifique seu email para ativar sua conta.")
}

func (h *AuthHandler) EmailVerify(c *gin.Context) {
	var req EmailVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Link inválido ou expirado.")
		return
	}

	user := h.userFromLink(req.UIDB64, req.Token, auth.PurposeEmailVerify)
	if user == nil {
		// Resposta única para qualquer causa: uid malformado, usuário
		// inexistente, token inválido ou expirado.
		httperr.BadRequest(c, "Link inválido ou expirado.")
		return
	}

	if !user.IsEmailVerified {
		user.IsEmailVerified = true
		if err := h.db.Save(user).Error; err != nil {
			httperr.Internal(c, "Não foi possível verificar o email.")
			return
		}
	}

	httpresp.Detail(c, http.StatusOK, "Email verificado com sucesso.")
}

// --------- Sessão ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.log.Info("login_failed", zap.String("email", email), zap.String("ip", c.ClientIP()))
			httperr.Unauthorized(c, "Invalid credentials")
			return
		}
		httperr.Internal(c, "internal error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.log.Info("login_failed", zap.String("email", email), zap.String("ip", c.ClientIP()))
		httperr.Unauthorized(c, "Invalid credentials")
		return
	}

	if !user.IsActive {
		h.log.Info("login_inactive_user", zap.String("user_id", user.ID.String()))
		httperr.Forbidden(c, "User inactive")
		return
	}

	if !user.IsEmailVerified {
		h.log.Info("login_unverified_email", zap.String("user_id", user.ID.String()))
		httperr.Forbidden(c, "Email não verificado.")
		return
	}

	now := time.Now()
	user.LastLogin = &now
	h.db.Model(&user).Update("last_login", now)

	h.issueSession(c, &user)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	// Só do cookie, nunca do corpo ou de header.
	raw, err := c.Cookie(h.config.RefreshCookieName)
	if err != nil || raw == "" {
		httperr.Unauthorized(c, "Missing refresh token")
		return
	}

	userID, err := h.tokens.ParseRefreshToken(raw)
	if err != nil {
		h.log.Info("refresh_failed", zap.String("ip", c.ClientIP()))
		httperr.Unauthorized(c, "Invalid refresh token")
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		h.log.Info("refresh_failed", zap.String("ip", c.ClientIP()))
		httperr.Unauthorized(c, "Invalid refresh token")
		return
	}

	h.issueSession(c, &user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	// Só apaga o cookie; um refresh token copiado continua válido até
	// expirar naturalmente.
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.config.RefreshCookieName, "", -1, h.config.RefreshCookiePath, "", h.config.CookieSecure(), true)
	httpresp.NoContent(c)
}

// issueSession emite o par de tokens: access no corpo, refresh novo no
// cookie (rotação a cada uso).
func (h *AuthHandler) issueSession(c *gin.Context, user *models.User) {
	access, err := h.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		httperr.Internal(c, "failed to generate token")
		return
	}

	refresh, err := h.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		httperr.Internal(c, "failed to generate token")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.config.RefreshCookieName,
		refresh,
		int(h.config.RefreshTokenTTL.Seconds()),
		h.config.RefreshCookiePath,
		"",
		h.config.CookieSecure(),
		true,
	)

	httpresp.OK(c, gin.H{"access": access})
}

// --------- Perfil / senha ---------

func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.UserID(c)

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.Unauthorized(c, "user not found")
		return
	}

	httpresp.OK(c, gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"nome":      user.Nome,
		"telefone":  user.Telefone,
		"is_active": user.IsActive,
		"criado_em": user.CriadoEm,
	})
}

func (h *AuthHandler) PasswordChange(c *gin.Context) {
	var req PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	userID := middleware.UserID(c)

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.Unauthorized(c, "user not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		httperr.BadRequest(c, "Senha antiga incorreta.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "Não foi possível alterar a senha.")
		return
	}

	if err := h.db.Model(&user).Update("password_hash", string(hashed)).Error; err != nil {
		httperr.Internal(c, "Não foi possível alterar a senha.")
		return
	}

	httpresp.Detail(c, http.StatusOK, "Senha alterada com sucesso.")
}

func (h *AuthHandler) PasswordResetRequest(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := h.db.Where("email = ?", email).First(&user).Error
	if err == nil {
		token := h.stateTokens.Make(&user, auth.PurposePasswordReset)
		link := fmt.Sprintf("%s/reset-password/%s/%s", h.config.FrontendOrigin, auth.EncodeUID(user.ID), token)

		err := h.mail.Send(c.Request.Context(), user.Email,
			"Seu link para redefinição de senha",
			fmt.Sprintf("Use o link a seguir para redefinir sua senha: %s", link),
		)
		if err != nil {
			h.log.Error("reset email failed", zap.String("email", user.Email), zap.Error(err))
			httperr.Internal(c, "Não foi possível enviar o email de redefinição.")
			return
		}
	}

	// Mesma resposta existindo ou não o email.
	httpresp.Detail(c, http.StatusOK,
		"Se um usuário com este email existir, um link de redefinição de senha foi enviado.")
}

func (h *AuthHandler) PasswordResetConfirm(c *gin.Context) {
	var req PasswordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	user := h.userFromLink(req.UIDB64, req.Token, auth.PurposePasswordReset)
	if user == nil {
		httperr.BadRequest(c, "Link inválido ou expirado.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "Não foi possível redefinir a senha.")
		return
	}

	if err := h.db.Model(user).Update("password_hash", string(hashed)).Error; err != nil {
		httperr.Internal(c, "Não foi possível redefinir a senha.")
		return
	}

	httpresp.Detail(c, http.StatusOK, "Senha redefinida com sucesso.")
}

// userFromLink resolve o par (uidb64, token) dos links de email. Qualquer
// falha devolve nil; o chamador responde sempre o mesmo 400 genérico.
func (h *AuthHandler) userFromLink(uidb64, token, purpose string) *models.User {
	uid, err := auth.DecodeUID(uidb64)
	if err != nil {
		return nil
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", uid).Error; err != nil {
		return nil
	}

	if !h.stateTokens.Check(&user, purpose, token) {
		return nil
	}

	return &user
}
