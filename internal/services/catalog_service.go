package services

import (
	"database/sql"
	"errors"

	"goldleaf/internal/catalog"
	"goldleaf/internal/domain"
	"goldleaf/internal/repos"
)

var ErrNotFound = errors.New("not found")

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

// ListProducts loads the catalog and runs it through the query pipeline.
// An unknown category slug yields an empty result, not an error.
func (s *CatalogService) ListProducts(categorySlug, search string, sort catalog.Sort) ([]domain.Product, error) {
	products, err := s.Prods.List()
	if err != nil {
		return nil, err
	}

	q := catalog.Query{Search: search, Sort: sort}
	if categorySlug != "" {
		q.ProductIDs = map[string]bool{}
		cat, err := s.Cats.GetBySlug(categorySlug)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		if err == nil {
			ids, err := s.Prods.IDsByCategory(cat.ID)
			if err != nil {
				return nil, err
			}
			for _, id := range ids {
				q.ProductIDs[id] = true
			}
		}
	}
	return catalog.Apply(products, q), nil
}

// ProductDetail is a product joined with its categories.
type ProductDetail struct {
	domain.Product
	Categories []domain.Category `json:"categories"`
}

func (s *CatalogService) GetProductBySlug(slug string) (ProductDetail, error) {
	p, err := s.Prods.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProductDetail{}, ErrNotFound
		}
		return ProductDetail{}, err
	}
	cats, err := s.Prods.Categories(p.ID)
	if err != nil {
		return ProductDetail{}, err
	}
	return ProductDetail{Product: p, Categories: cats}, nil
}

func (s *CatalogService) Featured(limit int) ([]domain.Product, error) {
	return s.Prods.Featured(limit)
}

func (s *CatalogService) Suggested(slug string, limit int) ([]domain.Product, error) {
	p, err := s.Prods.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Prods.Suggested(p.ID, limit)
}
