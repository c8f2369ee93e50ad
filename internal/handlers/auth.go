package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/teamdesk-dev/teamdesk/internal/logger"
	"github.com/teamdesk-dev/teamdesk/internal/models"
	"github.com/teamdesk-dev/teamdesk/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRole is the cargo assigned to self-registered accounts.
const RegisterRole = "Usuário"

type RegisterRequest struct {
	NomeCompleto string `json:"nomeCompleto"`
	Email        string `json:"email"`
	Senha        string `json:"senha"`
}

type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type RequestResetRequest struct {
	Email string `json:"email"`
}

type AuthHandler struct {
	users *repositories.UserRepository
}

func NewAuthHandler(users *repositories.UserRepository) *AuthHandler {
	return &AuthHandler{users: users}
}

// splitFullName takes the first token as the first name and everything else
// as the surname. A single token leaves the surname empty.
func splitFullName(full string) (string, string) {
	parts := strings.Fields(full)

	if len(parts) == 0 {
		return "", ""
	}

	return parts[0], strings.Join(parts[1:], " ")
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var body RegisterRequest

	if err := ctx.ShouldBindJSON(&body); err != nil || body.NomeCompleto == "" || body.Email == "" || body.Senha == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "nomeCompleto, email e senha são obrigatórios."})
		return
	}

	// Fast path; the unique index remains the source of truth for races.
	existing, err := h.users.GetByEmailForAuth(body.Email)

	if err != nil {
		logger.L().Error("Failed to check existing email", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao registrar."})
		return
	}

	if existing != nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "E-mail já cadastrado."})
		return
	}

	nome, sobrenome := splitFullName(body.NomeCompleto)

	senhaHash, err := bcrypt.GenerateFromPassword([]byte(body.Senha), bcrypt.DefaultCost)

	if err != nil {
		logger.L().Error("Failed to hash password", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao registrar."})
		return
	}

	user := models.User{
		Nome:      nome,
		Sobrenome: sobrenome,
		Email:     body.Email,
		SenhaHash: string(senhaHash),
		Cargo:     RegisterRole,
	}

	if err := h.users.Create(&user); err != nil {
		if repositories.IsUniqueViolation(err) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "E-mail já cadastrado."})
			return
		}
		logger.L().Error("Failed to create user", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao registrar."})
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.ShouldBindJSON(&body); err != nil || body.Email == "" || body.Senha == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "email e senha são obrigatórios."})
		return
	}

	user, err := h.users.GetByEmailForAuth(body.Email)

	if err != nil {
		logger.L().Error("Failed to fetch user for login", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao autenticar."})
		return
	}

	// Unknown email and wrong password must be indistinguishable.
	if user == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(body.Senha)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas."})
		return
	}

	// Re-fetch through the safe projection instead of reusing the auth row.
	safe, err := h.users.GetByID(user.ID)

	if err != nil || safe == nil {
		logger.L().Error("Failed to fetch user after login", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao autenticar."})
		return
	}

	ctx.JSON(http.StatusOK, safe)
}

// RequestReset acknowledges every request the same way on purpose, so the
// response never reveals whether the account exists.
func (h *AuthHandler) RequestReset(ctx *gin.Context) {
	var body RequestResetRequest

	if err := ctx.ShouldBindJSON(&body); err != nil || body.Email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "email é obrigatório."})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Se existir uma conta com este e-mail, enviaremos instruções de recuperação."})
}
