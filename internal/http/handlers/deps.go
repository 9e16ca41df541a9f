package handlers

import (
	"github.com/jmoiron/sqlx"

	"goldleaf/internal/config"
	"goldleaf/internal/notify"
	"goldleaf/internal/repos"
	"goldleaf/internal/services"
)

type Deps struct {
	CatalogHandler  *CatalogHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	OrderHandler    *OrderHandler
	ReviewHandler   *ReviewHandler
	AdminHandler    *AdminHandler
	UploadHandler   *UploadHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, sender notify.Sender) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	reviewRepo := repos.NewReviewRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	cartSvc := services.NewCartService(prodRepo, cartRepo)
	reviewSvc := services.NewReviewService(reviewRepo, prodRepo)
	checkoutSvc := services.NewCheckoutService(cartSvc, orderRepo, sender, services.NotifyTemplates{
		Buyer:      cfg.BuyerTemplateID,
		Admin:      cfg.AdminTemplateID,
		AdminEmail: cfg.AdminEmail,
	})

	return &Deps{
		CatalogHandler:  &CatalogHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		CheckoutHandler: &CheckoutHandler{Checkout: checkoutSvc},
		OrderHandler:    &OrderHandler{Repo: orderRepo},
		ReviewHandler:   &ReviewHandler{Reviews: reviewSvc},
		AdminHandler: &AdminHandler{
			Orders: orderRepo, Prods: prodRepo, Cats: catRepo, Reviews: reviewRepo,
			Sender: sender, BuyerTemplate: cfg.BuyerTemplateID,
		},
		UploadHandler: &UploadHandler{MediaDir: cfg.MediaDir},
	}
}
