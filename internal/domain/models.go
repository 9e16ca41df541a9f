package domain

import "github.com/shopspring/decimal"

// Stock status values stored on products.
const (
	StockInStock    = "in_stock"
	StockLowStock   = "low_stock"
	StockOutOfStock = "out_of_stock"
)

// Order lifecycle statuses.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

type Category struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
	ImageURL    string `db:"image_url" json:"image_url"`
	CreatedAt   string `db:"created_at" json:"created_at"`
	UpdatedAt   string `db:"updated_at" json:"updated_at"`
}

type Product struct {
	ID              string              `db:"id" json:"id"`
	Name            string              `db:"name" json:"name"`
	Slug            string              `db:"slug" json:"slug"`
	Description     string              `db:"description" json:"description"`
	Price           decimal.Decimal     `db:"price" json:"price"`
	OriginalPrice   decimal.NullDecimal `db:"original_price" json:"original_price"`
	ImageURL        string              `db:"image_url" json:"image_url"`
	ImagesJSON      string              `db:"images_json" json:"-"`
	StockStatus     string              `db:"stock_status" json:"stock_status"`
	Featured        bool                `db:"featured" json:"featured"`
	PopularityScore float64             `db:"popularity_score" json:"popularity_score"`
	CreatedAt       string              `db:"created_at" json:"created_at"`
	UpdatedAt       string              `db:"updated_at" json:"updated_at"`
}

type Review struct {
	ID            string `db:"id" json:"id"`
	ProductID     string `db:"product_id" json:"product_id"`
	CustomerName  string `db:"customer_name" json:"customer_name"`
	CustomerEmail string `db:"customer_email" json:"-"`
	Rating        int    `db:"rating" json:"rating"`
	Comment       string `db:"comment" json:"comment"`
	Approved      bool   `db:"approved" json:"approved"`
	CreatedAt     string `db:"created_at" json:"created_at"`
}

type Order struct {
	ID              string          `db:"id" json:"id"`
	OrderNumber     string          `db:"order_number" json:"order_number"`
	CustomerName    string          `db:"customer_name" json:"customer_name"`
	CustomerEmail   string          `db:"customer_email" json:"customer_email"`
	CustomerPhone   string          `db:"customer_phone" json:"customer_phone"`
	ShippingAddress string          `db:"shipping_address" json:"shipping_address"`
	City            string          `db:"city" json:"city"`
	PostalCode      string          `db:"postal_code" json:"postal_code"`
	Country         string          `db:"country" json:"country"`
	Notes           string          `db:"notes" json:"notes"`
	Status          string          `db:"status" json:"status"`
	Subtotal        decimal.Decimal `db:"subtotal" json:"subtotal"`
	ShippingCost    decimal.Decimal `db:"shipping_cost" json:"shipping_cost"`
	Total           decimal.Decimal `db:"total" json:"total"`
	CreatedAt       string          `db:"created_at" json:"created_at"`
	UpdatedAt       string          `db:"updated_at" json:"updated_at"`
}

// OrderItem carries a denormalized snapshot of the product name and price
// as they were at purchase time.
type OrderItem struct {
	ID           string          `db:"id" json:"id"`
	OrderID      string          `db:"order_id" json:"order_id"`
	ProductID    string          `db:"product_id" json:"product_id"`
	ProductName  string          `db:"product_name" json:"product_name"`
	ProductPrice decimal.Decimal `db:"product_price" json:"product_price"`
	Quantity     int             `db:"quantity" json:"quantity"`
	Total        decimal.Decimal `db:"total" json:"total"`
}

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}
