package repos

import (
	"github.com/jmoiron/sqlx"

	"goldleaf/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categoryCols = `
  id, name, slug, COALESCE(description,'') AS description,
  COALESCE(image_url,'') AS image_url,
  COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at`

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `SELECT `+categoryCols+` FROM categories ORDER BY name`)
	return out, err
}

func (r *CategoryRepo) GetBySlug(slug string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT `+categoryCols+` FROM categories WHERE slug = ?`, slug)
	return c, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT `+categoryCols+` FROM categories WHERE id = ?`, id)
	return c, err
}

func (r *CategoryRepo) Create(id, name, slug, description, imageURL string) error {
	_, err := r.db.Exec(`
	  INSERT INTO categories(id,name,slug,description,image_url)
	  VALUES(?,?,?,?,?)`, id, name, slug, description, imageURL)
	return err
}

func (r *CategoryRepo) Update(id, name, slug, description, imageURL string) error {
	_, err := r.db.Exec(`
	  UPDATE categories SET name=?, slug=?, description=?, image_url=?,
	    updated_at=CURRENT_TIMESTAMP
	  WHERE id=?`, name, slug, description, imageURL, id)
	return err
}

func (r *CategoryRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}
