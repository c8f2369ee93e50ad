package repositories

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/teamdesk-dev/teamdesk/internal/models"
	"gorm.io/gorm"
)

const (
	DefaultStatus     = "Planejamento"
	DefaultPriority   = "Média"
	DefaultMemberRole = "Membro"
)

// Fixed option sets. They live in code, not in the database, and double as
// the server-side validation source.
var (
	statusOptions   = []string{"Planejamento", "Em Andamento", "Em Desenvolvimento", "Quase Concluído", "Concluído"}
	priorityOptions = []string{"Baixa", "Média", "Alta"}
)

// projectAllowedUpdateFields is the fixed allow-list for partial updates.
var projectAllowedUpdateFields = []string{
	"name", "description", "status", "priority", "progress_pct", "deadline", "manager_id",
}

// ProjectWithManager is a project row joined with the manager's full name.
type ProjectWithManager struct {
	models.Project
	ManagerName string `json:"manager_name"`
}

// ProjectDetail is a single project with its membership list.
type ProjectDetail struct {
	ProjectWithManager
	Members []MemberRow `json:"members"`
}

// MemberRow is a membership joined with the member's full name.
type MemberRow struct {
	ID      uint      `json:"id"`
	Name    string    `json:"name"`
	Role    string    `json:"role"`
	AddedAt time.Time `json:"added_at"`
}

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) StatusOptions() []string {
	return statusOptions
}

func (r *ProjectRepository) PriorityOptions() []string {
	return priorityOptions
}

func (r *ProjectRepository) List(limit, offset int) ([]ProjectWithManager, error) {
	rows := []ProjectWithManager{}

	err := r.db.Model(&models.Project{}).
		Select("projects.*, (users.nome || ' ' || users.sobrenome) AS manager_name").
		Joins("JOIN users ON users.id = projects.manager_id").
		Order("projects.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}

// GetByID returns the project with its manager name and membership list,
// or nil when absent.
func (r *ProjectRepository) GetByID(id uint) (*ProjectDetail, error) {
	row, err := r.getRow(id)

	if err != nil || row == nil {
		return nil, err
	}

	members, err := r.Members(id)

	if err != nil {
		return nil, err
	}

	return &ProjectDetail{ProjectWithManager: *row, Members: members}, nil
}

func (r *ProjectRepository) getRow(id uint) (*ProjectWithManager, error) {
	var row ProjectWithManager

	err := r.db.Model(&models.Project{}).
		Select("projects.*, (users.nome || ' ' || users.sobrenome) AS manager_name").
		Joins("JOIN users ON users.id = projects.manager_id").
		Where("projects.id = ?", id).
		Take(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &row, nil
}

// Create validates status, priority and progress against the closed sets
// before anything reaches storage, filling in defaults for absent fields.
func (r *ProjectRepository) Create(project *models.Project) error {
	if project.Status == "" {
		project.Status = DefaultStatus
	}

	if project.Priority == "" {
		project.Priority = DefaultPriority
	}

	if !slices.Contains(statusOptions, project.Status) {
		return ErrInvalidStatus
	}

	if !slices.Contains(priorityOptions, project.Priority) {
		return ErrInvalidPriority
	}

	if project.ProgressPct < 0 || project.ProgressPct > 100 {
		return ErrInvalidProgress
	}

	return r.db.Create(project).Error
}

// Update applies the allow-listed subset of fields, re-validating any
// supplied status, priority or progress value. With nothing to apply it
// behaves as a read. Returns nil when the project does not exist.
func (r *ProjectRepository) Update(id uint, fields map[string]interface{}) (*ProjectWithManager, error) {
	updates := make(map[string]interface{})

	for _, field := range projectAllowedUpdateFields {
		value, ok := fields[field]

		if !ok {
			continue
		}

		switch field {
		case "status":
			status, isString := value.(string)
			if !isString || !slices.Contains(statusOptions, status) {
				return nil, ErrInvalidStatus
			}
		case "priority":
			priority, isString := value.(string)
			if !isString || !slices.Contains(priorityOptions, priority) {
				return nil, ErrInvalidPriority
			}
		case "progress_pct":
			progress, isNumber := value.(float64)
			if !isNumber || progress < 0 || progress > 100 {
				return nil, ErrInvalidProgress
			}
			value = int(progress)
		case "deadline":
			if value != nil {
				raw, isString := value.(string)
				if !isString {
					return nil, ErrInvalidDeadline
				}
				deadline, err := ParseDeadline(raw)
				if err != nil {
					return nil, ErrInvalidDeadline
				}
				value = deadline
			}
		case "manager_id":
			if managerID, isNumber := value.(float64); isNumber {
				value = uint(managerID)
			}
		}

		updates[field] = value
	}

	if len(updates) == 0 {
		return r.getRow(id)
	}

	result := r.db.Model(&models.Project{}).Where("id = ?", id).Updates(updates)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.getRow(id)
}

// Delete removes the project and returns the removed row, or nil when
// there was nothing to remove.
func (r *ProjectRepository) Delete(id uint) (*models.Project, error) {
	var project models.Project

	err := r.db.First(&project, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.db.Delete(&models.Project{}, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) Members(projectID uint) ([]MemberRow, error) {
	rows := []MemberRow{}

	err := r.db.Model(&models.ProjectMember{}).
		Select("users.id, (users.nome || ' ' || users.sobrenome) AS name, project_members.role, project_members.added_at").
		Joins("JOIN users ON users.id = project_members.user_id").
		Where("project_members.project_id = ?", projectID).
		Order("name").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}

// ReplaceMembers swaps the project's whole membership list in one
// transaction: any failure rolls the delete and every insert back, so a
// half-replaced list is never persisted. An empty id list is valid and
// leaves the project with no members.
func (r *ProjectRepository) ReplaceMembers(projectID uint, userIDs []uint, role string) ([]MemberRow, error) {
	if role == "" {
		role = DefaultMemberRole
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		if len(userIDs) == 0 {
			return nil
		}

		members := make([]models.ProjectMember, 0, len(userIDs))

		for _, userID := range userIDs {
			members = append(members, models.ProjectMember{
				ProjectID: projectID,
				UserID:    userID,
				Role:      role,
			})
		}

		return tx.Create(&members).Error
	})

	if err != nil {
		return nil, err
	}

	return r.Members(projectID)
}

// ParseDeadline accepts the date-only form the original API took alongside
// full RFC 3339 timestamps.
func ParseDeadline(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if deadline, err := time.Parse("2006-01-02", raw); err == nil {
		return deadline, nil
	}

	return time.Parse(time.RFC3339, raw)
}
