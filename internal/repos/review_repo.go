package repos

import (
	"github.com/jmoiron/sqlx"

	"goldleaf/internal/domain"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewCols = `
  id, product_id, customer_name, customer_email, rating,
  COALESCE(comment,'') AS comment, approved, COALESCE(created_at,'') AS created_at`

// ApprovedByProduct lists published reviews for a product, newest first.
func (r *ReviewRepo) ApprovedByProduct(productID string) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.Select(&out, `
	  SELECT `+reviewCols+`
	  FROM reviews
	  WHERE product_id = ? AND approved = 1
	  ORDER BY datetime(created_at) DESC`, productID)
	return out, err
}

// ListAll returns every review for moderation, newest first.
func (r *ReviewRepo) ListAll() ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.Select(&out, `
	  SELECT `+reviewCols+`
	  FROM reviews
	  ORDER BY datetime(created_at) DESC`)
	return out, err
}

// Create stores a new review; it stays unapproved until moderated.
func (r *ReviewRepo) Create(id, productID, name, email string, rating int, comment string) error {
	_, err := r.db.Exec(`
	  INSERT INTO reviews(id,product_id,customer_name,customer_email,rating,comment,approved)
	  VALUES(?,?,?,?,?,?,0)`, id, productID, name, email, rating, comment)
	return err
}

func (r *ReviewRepo) SetApproved(id string, approved bool) error {
	_, err := r.db.Exec(`UPDATE reviews SET approved = ? WHERE id = ?`, approved, id)
	return err
}
