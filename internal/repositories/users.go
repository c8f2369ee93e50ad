package repositories

import (
	"errors"
	"strings"
	"time"

	"github.com/teamdesk-dev/teamdesk/internal/models"
	"gorm.io/gorm"
)

// userSafeFields is the projection returned to clients. The password digest
// is never part of it.
const userSafeFields = "id, nome, sobrenome, email, telefone, departamento, cargo, bio, avatar_base64, idade, cep, localidade, uf, bairro, logradouro, numero, created_at, updated_at"

// userAllowedUpdateFields is the fixed allow-list for partial updates.
// Column names never come from the caller; only values are bound.
var userAllowedUpdateFields = []string{
	"nome", "sobrenome", "email", "telefone", "departamento", "cargo", "bio", "avatar_base64",
	"idade", "cep", "localidade", "uf", "bairro", "logradouro", "numero",
}

// UserSummary is the shape returned by name search.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Cargo string `json:"cargo"`
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ListAll() ([]models.User, error) {
	users := []models.User{}

	if err := r.db.Select(userSafeFields).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

// GetByID returns the safe projection of one user, or nil when absent.
func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User

	err := r.db.Select(userSafeFields).First(&user, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// GetByEmailForAuth matches the email case-insensitively and includes the
// password digest. Only the authentication flow may call it.
func (r *UserRepository) GetByEmailForAuth(email string) (*models.User, error) {
	var user models.User

	err := r.db.Select("id, nome, sobrenome, email, cargo, senha_hash").
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// serverTimeLayout is sqlite's datetime text form; postgres values arrive
// through database/sql as RFC 3339.
const serverTimeLayout = "2006-01-02 15:04:05.999999999Z07:00"

func (r *UserRepository) ServerTime() (time.Time, error) {
	var result struct {
		Now string
	}

	if err := r.db.Raw("SELECT NOW() AS now").Scan(&result).Error; err != nil {
		return time.Time{}, err
	}

	// The expression column carries no declared type, so drivers hand the
	// value back as text; normalize from the layouts they produce.
	if now, err := time.Parse(time.RFC3339Nano, result.Now); err == nil {
		return now, nil
	}

	return time.Parse(serverTimeLayout, result.Now)
}

// Create inserts a new user. The email is normalized so the unique index is
// effectively case-insensitive; a violation surfaces unchanged for the
// caller to classify.
func (r *UserRepository) Create(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if user.Cargo == "" {
		user.Cargo = "client"
	}

	return r.db.Create(user).Error
}

// Update applies the allow-listed subset of fields and returns the updated
// row. A key mapped to nil clears the column; an absent key leaves it
// untouched. With nothing to apply it behaves as a read.
func (r *UserRepository) Update(id uint, fields map[string]interface{}) (*models.User, error) {
	updates := make(map[string]interface{})

	for _, field := range userAllowedUpdateFields {
		value, ok := fields[field]

		if !ok {
			continue
		}

		switch field {
		case "email":
			if email, isString := value.(string); isString {
				value = strings.ToLower(strings.TrimSpace(email))
			}
		case "idade":
			if idade, isNumber := value.(float64); isNumber {
				value = int(idade)
			}
		}

		updates[field] = value
	}

	if len(updates) == 0 {
		return r.GetByID(id)
	}

	result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.GetByID(id)
}

// UpdatePassword swaps only the password digest and returns id, email and
// the new updated_at, or nil when the user does not exist.
func (r *UserRepository) UpdatePassword(id uint, senhaHash string) (*models.User, error) {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Update("senha_hash", senhaHash)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, nil
	}

	var user models.User

	if err := r.db.Select("id, email, updated_at").First(&user, id).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Delete removes the user and returns the removed row's safe projection,
// or nil when there was nothing to remove.
func (r *UserRepository) Delete(id uint) (*models.User, error) {
	user, err := r.GetByID(id)

	if err != nil || user == nil {
		return nil, err
	}

	if err := r.db.Delete(&models.User{}, id).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// SearchByName does a case-insensitive substring match over the full name.
func (r *UserRepository) SearchByName(query string, limit int) ([]UserSummary, error) {
	term := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	summaries := []UserSummary{}

	err := r.db.Model(&models.User{}).
		Select("id, (nome || ' ' || sobrenome) AS name, email, cargo").
		Where("LOWER(nome || ' ' || sobrenome) LIKE ?", term).
		Order("nome, sobrenome").
		Limit(limit).
		Scan(&summaries).Error

	if err != nil {
		return nil, err
	}

	return summaries, nil
}
