package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"goldleaf/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `
  id, order_number, customer_name, customer_email,
  COALESCE(customer_phone,'') AS customer_phone, shipping_address, city,
  COALESCE(postal_code,'') AS postal_code, country, COALESCE(notes,'') AS notes,
  status, subtotal, shipping_cost, total,
  COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at`

// CreateWithItems inserts the order header and all line items in one
// transaction, so a partially written order can never be observed.
func (r *OrderRepo) CreateWithItems(o domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id,order_number,customer_name,customer_email,customer_phone,
	    shipping_address,city,postal_code,country,notes,status,subtotal,shipping_cost,total,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)`,
		o.ID, o.OrderNumber, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		o.ShippingAddress, o.City, o.PostalCode, o.Country, o.Notes,
		o.Status, o.Subtotal, o.ShippingCost, o.Total); err != nil {
		return err
	}

	for _, it := range items {
		id := it.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := tx.Exec(`
		  INSERT INTO order_items(id,order_id,product_id,product_name,product_price,quantity,total)
		  VALUES(?,?,?,?,?,?,?)`,
			id, o.ID, it.ProductID, it.ProductName, it.ProductPrice, it.Quantity, it.Total); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetByNumber loads an order and its items by the public order number.
func (r *OrderRepo) GetByNumber(orderNumber string) (domain.Order, []domain.OrderItem, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE order_number = ?`, orderNumber); err != nil {
		return domain.Order{}, nil, err
	}
	items, err := r.Items(o.ID)
	if err != nil {
		return domain.Order{}, nil, err
	}
	return o, items, nil
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	return o, err
}

func (r *OrderRepo) Items(orderID string) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := r.db.Select(&items, `
	  SELECT id, order_id, product_id, product_name, product_price, quantity, total
	  FROM order_items
	  WHERE order_id = ?
	  ORDER BY product_name`, orderID)
	return items, err
}

// ListLatest returns the most recent orders for the admin console.
func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderCols+`
	  FROM orders
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?`, limit)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`
	  UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	return err
}

// Stats aggregates the dashboard numbers.
type Stats struct {
	TotalOrders   int             `db:"total_orders" json:"total_orders"`
	PendingOrders int             `db:"pending_orders" json:"pending_orders"`
	TotalRevenue  decimal.Decimal `db:"total_revenue" json:"total_revenue"`
}

func (r *OrderRepo) Stats() (Stats, error) {
	var s Stats
	err := r.db.Get(&s, `
	  SELECT COUNT(*) AS total_orders,
	         COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END),0) AS pending_orders,
	         COALESCE(SUM(total),0) AS total_revenue
	  FROM orders`)
	return s, err
}
