package repositories

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrInvalidStatus   = errors.New("Status inválido")
	ErrInvalidPriority = errors.New("Prioridade inválida")
	ErrInvalidProgress = errors.New("Progresso inválido")
	ErrInvalidDeadline = errors.New("Data limite inválida")
)

// IsValidationError reports whether err was raised by repository-side input
// validation, as opposed to a storage failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidPriority) ||
		errors.Is(err, ErrInvalidProgress) ||
		errors.Is(err, ErrInvalidDeadline)
}

// IsUniqueViolation reports whether err is a unique-constraint violation.
// Postgres signals SQLSTATE 23505; the sqlite driver used in tests only
// exposes the constraint message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
