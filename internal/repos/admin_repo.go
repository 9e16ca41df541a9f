package repos

import (
	"github.com/jmoiron/sqlx"

	"goldleaf/internal/domain"
)

type AdminRepo struct{ db *sqlx.DB }

func NewAdminRepo(db *sqlx.DB) *AdminRepo { return &AdminRepo{db: db} }

func (r *AdminRepo) ByEmail(email string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.db.Get(&a, `
	  SELECT id,email,name,password_hash
	  FROM admins WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
