package helper

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	SQLStateNotNull           = "23502"
	SQLStateForeignKey        = "23503"
	SQLStateUnique            = "23505"
	SQLStateCheck             = "23514"
	SQLStateUndefinedFunction = "42883"
)

// PGCode extracts the SQLSTATE from pgx, lib/pq or gorm-translated errors.
func PGCode(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return SQLStateForeignKey
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return SQLStateUnique
	}
	return ""
}

func ConstraintMessage(code string) string {
	switch code {
	case SQLStateForeignKey:
		return "opération refusée, l'enregistrement est lié à d'autres données (clé étrangère)"
	case SQLStateUnique:
		return "cet enregistrement existe déjà"
	case SQLStateNotNull:
		return "un champ obligatoire est manquant"
	case SQLStateCheck:
		return "une valeur ne respecte pas les contraintes"
	}
	return ""
}
