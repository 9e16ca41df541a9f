package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"goldleaf/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, name, slug, COALESCE(description,'') AS description, price, original_price,
  COALESCE(image_url,'') AS image_url, COALESCE(images_json,'') AS images_json,
  stock_status, featured, popularity_score,
  COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY name`)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) GetBySlug(slug string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE slug = ?`, slug)
	return p, err
}

// Featured returns featured products, most popular first.
func (r *ProductRepo) Featured(limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 4
	}
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE featured = 1
	  ORDER BY popularity_score DESC
	  LIMIT ?`, limit)
	return out, err
}

// Suggested returns other products sharing a category with productID, padded
// with featured products, excluding the product itself.
func (r *ProductRepo) Suggested(productID string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 4
	}
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT DISTINCT `+productCols+`
	  FROM products
	  WHERE id != ? AND (
	    featured = 1 OR id IN (
	      SELECT pc2.product_id
	      FROM product_categories pc1
	      JOIN product_categories pc2 ON pc2.category_id = pc1.category_id
	      WHERE pc1.product_id = ?
	    ))
	  ORDER BY popularity_score DESC
	  LIMIT ?`, productID, productID, limit)
	return out, err
}

// IDsByCategory returns the product ids associated with categoryID.
func (r *ProductRepo) IDsByCategory(categoryID string) ([]string, error) {
	var ids []string
	err := r.db.Select(&ids, `
	  SELECT product_id FROM product_categories WHERE category_id = ?`, categoryID)
	return ids, err
}

// Categories returns the categories a product belongs to, name-sorted.
func (r *ProductRepo) Categories(productID string) ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT c.id, c.name, c.slug, COALESCE(c.description,'') AS description,
	         COALESCE(c.image_url,'') AS image_url,
	         COALESCE(c.created_at,'') AS created_at, COALESCE(c.updated_at,'') AS updated_at
	  FROM product_categories pc
	  JOIN categories c ON c.id = pc.category_id
	  WHERE pc.product_id = ?
	  ORDER BY c.name`, productID)
	return out, err
}

type ProductInput struct {
	Name            string
	Slug            string
	Description     string
	Price           decimal.Decimal
	OriginalPrice   decimal.NullDecimal
	ImageURL        string
	ImagesJSON      string
	StockStatus     string
	Featured        bool
	PopularityScore float64
}

func (r *ProductRepo) Create(id string, in ProductInput) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id,name,slug,description,price,original_price,image_url,
	    images_json,stock_status,featured,popularity_score,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, in.Name, in.Slug, in.Description, in.Price, in.OriginalPrice,
		in.ImageURL, in.ImagesJSON, in.StockStatus, in.Featured, in.PopularityScore,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

func (r *ProductRepo) Update(id string, in ProductInput) error {
	_, err := r.db.Exec(`
	  UPDATE products SET name=?, slug=?, description=?, price=?, original_price=?,
	    image_url=?, images_json=?, stock_status=?, featured=?, popularity_score=?,
	    updated_at=CURRENT_TIMESTAMP
	  WHERE id=?`,
		in.Name, in.Slug, in.Description, in.Price, in.OriginalPrice,
		in.ImageURL, in.ImagesJSON, in.StockStatus, in.Featured, in.PopularityScore, id)
	return err
}

func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

// SetCategories replaces the category associations for a product.
func (r *ProductRepo) SetCategories(productID string, categoryIDs []string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM product_categories WHERE product_id = ?`, productID); err != nil {
		return err
	}
	for _, cid := range categoryIDs {
		if _, err := tx.Exec(`
		  INSERT INTO product_categories(product_id,category_id) VALUES(?,?)
		  ON CONFLICT(product_id,category_id) DO NOTHING`, productID, cid); err != nil {
			return err
		}
	}
	return tx.Commit()
}
