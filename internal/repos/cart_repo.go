package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"goldleaf/internal/domain"
)

// CartRepo snapshots session carts so a restart does not lose them. The
// in-memory cart is authoritative; every write here is best-effort.
type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type CartLine struct {
	Product  domain.Product
	Quantity int
}

// Save replaces the stored snapshot for sessionID with the given lines.
func (r *CartRepo) Save(sessionID string, lines []CartLine) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(`
	  INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)
	  ON CONFLICT(session_id) DO UPDATE SET updated_at = excluded.updated_at`,
		sessionID, sessionID, now); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, sessionID); err != nil {
		return err
	}
	for i, l := range lines {
		if _, err := tx.Exec(`
		  INSERT INTO cart_items(cart_id,product_id,quantity,position,created_at)
		  VALUES(?,?,?,?,?)`, sessionID, l.Product.ID, l.Quantity, i, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Load rebuilds the snapshot for sessionID, joined to current product rows in
// insertion order. Items whose product no longer exists are dropped.
func (r *CartRepo) Load(sessionID string) ([]CartLine, error) {
	type row struct {
		domain.Product
		Quantity int `db:"quantity"`
	}
	var rows []row
	err := r.db.Select(&rows, `
	  SELECT p.id, p.name, p.slug, COALESCE(p.description,'') AS description,
	         p.price, p.original_price, COALESCE(p.image_url,'') AS image_url,
	         COALESCE(p.images_json,'') AS images_json, p.stock_status, p.featured,
	         p.popularity_score, COALESCE(p.created_at,'') AS created_at,
	         COALESCE(p.updated_at,'') AS updated_at,
	         ci.quantity
	  FROM cart_items ci
	  JOIN products p ON p.id = ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY ci.position`, sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]CartLine, 0, len(rows))
	for _, x := range rows {
		out = append(out, CartLine{Product: x.Product, Quantity: x.Quantity})
	}
	return out, nil
}

// Delete drops the snapshot for sessionID.
func (r *CartRepo) Delete(sessionID string) error {
	_, err := r.db.Exec(`DELETE FROM carts WHERE id = ?`, sessionID)
	return err
}
