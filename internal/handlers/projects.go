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

type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	ProgressPct *int    `json:"progress_pct"`
	Deadline    *string `json:"deadline"`
	ManagerID   uint    `json:"manager_id"`
}

type ReplaceMembersRequest struct {
	UserIDs []uint `json:"user_ids"`
	Role    string `json:"role"`
}

type ProjectHandler struct {
	projects *repositories.ProjectRepository
}

func NewProjectHandler(projects *repositories.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func (h *ProjectHandler) StatusOptions(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.projects.StatusOptions())
}

func (h *ProjectHandler) PriorityOptions(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.projects.PriorityOptions())
}

func (h *ProjectHandler) List(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	if err != nil || limit <= 0 {
		limit = 50
	}

	offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	if err != nil || offset < 0 {
		offset = 0
	}

	rows, err := h.projects.List(limit, offset)

	if err != nil {
		logger.L().Error("Failed to list projects", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar projetos"})
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

func (h *ProjectHandler) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Projeto não encontrado"})
		return
	}

	project, err := h.projects.GetByID(id)

	if err != nil {
		logger.L().Error("Failed to fetch project", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar projeto"})
		return
	}

	if project == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Projeto não encontrado"})
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Create(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.ShouldBindJSON(&body); err != nil || body.Name == "" || body.ManagerID == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "name e manager_id são obrigatórios."})
		return
	}

	project := models.Project{
		Name:        body.Name,
		Description: body.Description,
		Status:      body.Status,
		Priority:    body.Priority,
		ManagerID:   body.ManagerID,
	}

	if body.ProgressPct != nil {
		project.ProgressPct = *body.ProgressPct
	}

	if body.Deadline != nil {
		deadline, err := repositories.ParseDeadline(*body.Deadline)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": repositories.ErrInvalidDeadline.Error()})
			return
		}

		project.Deadline = &deadline
	}

	if err := h.projects.Create(&project); err != nil {
		if repositories.IsValidationError(err) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.L().Error("Failed to create project", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar projeto"})
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Projeto não encontrado"})
		return
	}

	fields := make(map[string]interface{})

	if err := ctx.ShouldBindJSON(&fields); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}

	if len(fields) == 0 {
		project, err := h.projects.GetByID(id)

		if err != nil {
			logger.L().Error("Failed to fetch project", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar projeto"})
			return
		}

		if project == nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Projeto não encontrado"})
			return
		}

		ctx.JSON(http.StatusOK, project)
		return
	}

	project, err := h.projects.Update(id, fields)

	if err != nil {
		if repositories.IsValidationError(err) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.L().Error("Failed to update project", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar projeto"})
		return
	}

	if project == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Projeto não encontrado"})
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Projeto não encontrado"})
		return
	}

	project, err := h.projects.Delete(id)

	if err != nil {
		logger.L().Error("Failed to delete project", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao deletar projeto"})
		return
	}

	if project == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Projeto não encontrado"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Projeto removido",
		"projeto": project,
	})
}

func (h *ProjectHandler) Members(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Projeto não encontrado"})
		return
	}

	members, err := h.projects.Members(id)

	if err != nil {
		logger.L().Error("Failed to fetch project members", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar membros"})
		return
	}

	ctx.JSON(http.StatusOK, members)
}

func (h *ProjectHandler) ReplaceMembers(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Projeto não encontrado"})
		return
	}

	var body ReplaceMembersRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "user_ids deve ser um array"})
		return
	}

	members, err := h.projects.ReplaceMembers(id, body.UserIDs, body.Role)

	if err != nil {
		logger.L().Error("Failed to replace project members", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Erro ao sincronizar membros"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"project_id": id,
		"members":    members,
	})
}
