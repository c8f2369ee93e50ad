package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/teamdesk-dev/teamdesk/internal/logger"
	"github.com/teamdesk-dev/teamdesk/internal/models"
	"github.com/teamdesk-dev/teamdesk/internal/repositories"
	"go.uber.org/zap"
)

type CreateUserRequest struct {
	Nome         string  `json:"nome"`
	Sobrenome    string  `json:"sobrenome"`
	Email        string  `json:"email"`
	SenhaHash    string  `json:"senha_hash"`
	Telefone     *string `json:"telefone"`
	Departamento *string `json:"departamento"`
	Cargo        string  `json:"cargo"`
	Bio          *string `json:"bio"`
	AvatarBase64 *string `json:"avatar_base64"`
	Idade        *int    `json:"idade"`
	Cep          *string `json:"cep"`
	Localidade   *string `json:"localidade"`
	UF           *string `json:"uf"`
	Bairro       *string `json:"bairro"`
	Logradouro   *string `json:"logradouro"`
	Numero       *string `json:"numero"`
}

type UpdatePasswordRequest struct {
	SenhaHash string `json:"senha_hash"`
}

type UserHandler struct {
	users *repositories.UserRepository
}

func NewUserHandler(users *repositories.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// parseID turns a path parameter into a numeric id; ok is false when the
// parameter cannot name an existing row.
func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)

	if err != nil {
		return 0, false
	}

	return uint(id), true
}

func (h *UserHandler) Status(ctx *gin.Context) {
	serverTime, err := h.users.ServerTime()

	if err != nil {
		logger.L().Error("Database liveness check failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao conectar ao banco de dados"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"serverTime": serverTime})
}

func (h *UserHandler) List(ctx *gin.Context) {
	users, err := h.users.ListAll()

	if err != nil {
		logger.L().Error("Failed to list users", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar usuários"})
		return
	}

	ctx.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	user, err := h.users.GetByID(id)

	if err != nil {
		logger.L().Error("Failed to fetch user", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar usuário"})
		return
	}

	if user == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	ctx.JSON(http.StatusOK, user)
}

func (h *UserHandler) Create(ctx *gin.Context) {
	var body CreateUserRequest

	if err := ctx.ShouldBindJSON(&body); err != nil || body.Nome == "" || body.Sobrenome == "" || body.Email == "" || body.SenhaHash == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "nome, sobrenome, email e senha_hash são obrigatórios"})
		return
	}

	user := models.User{
		Nome:         body.Nome,
		Sobrenome:    body.Sobrenome,
		Email:        body.Email,
		SenhaHash:    body.SenhaHash,
		Cargo:        body.Cargo,
		Telefone:     body.Telefone,
		Departamento: body.Departamento,
		Bio:          body.Bio,
		AvatarBase64: body.AvatarBase64,
		Idade:        body.Idade,
		Cep:          body.Cep,
		Localidade:   body.Localidade,
		UF:           body.UF,
		Bairro:       body.Bairro,
		Logradouro:   body.Logradouro,
		Numero:       body.Numero,
	}

	if err := h.users.Create(&user); err != nil {
		if repositories.IsUniqueViolation(err) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "E-mail já cadastrado"})
			return
		}
		logger.L().Error("Failed to create user", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar usuário"})
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	fields := make(map[string]interface{})

	if err := ctx.ShouldBindJSON(&fields); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}

	user, err := h.users.Update(id, fields)

	if err != nil {
		if repositories.IsUniqueViolation(err) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "E-mail já cadastrado"})
			return
		}
		logger.L().Error("Failed to update user", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar usuário"})
		return
	}

	if user == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	ctx.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdatePassword(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	var body UpdatePasswordRequest

	if err := ctx.ShouldBindJSON(&body); err != nil || body.SenhaHash == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "senha_hash é obrigatória"})
		return
	}

	user, err := h.users.UpdatePassword(id, body.SenhaHash)

	if err != nil {
		logger.L().Error("Failed to update password", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar senha"})
		return
	}

	if user == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Senha atualizada",
		"id":         user.ID,
		"updated_at": user.UpdatedAt,
	})
}

func (h *UserHandler) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	user, err := h.users.Delete(id)

	if err != nil {
		logger.L().Error("Failed to delete user", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao deletar usuário"})
		return
	}

	if user == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Usuário removido com sucesso",
		"usuario": user,
	})
}

func (h *UserHandler) Search(ctx *gin.Context) {
	query := ctx.Query("q")

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	if err != nil || limit <= 0 {
		limit = 20
	}

	summaries, err := h.users.SearchByName(query, limit)

	if err != nil {
		logger.L().Error("Failed to search users", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar usuários"})
		return
	}

	ctx.JSON(http.StatusOK, summaries)
}
