package services

import (
	"errors"

	"github.com/google/uuid"

	"goldleaf/internal/domain"
	"goldleaf/internal/repos"
	"goldleaf/internal/validate"
)

var ErrInvalidReview = errors.New("invalid review")

type ReviewService struct {
	Reviews *repos.ReviewRepo
	Prods   *repos.ProductRepo
}

func NewReviewService(reviews *repos.ReviewRepo, prods *repos.ProductRepo) *ReviewService {
	return &ReviewService{Reviews: reviews, Prods: prods}
}

// ProductReviews returns the approved reviews plus the average rating.
type ProductReviews struct {
	Reviews       []domain.Review `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
}

func (s *ReviewService) ForProduct(productID string) (ProductReviews, error) {
	reviews, err := s.Reviews.ApprovedByProduct(productID)
	if err != nil {
		return ProductReviews{}, err
	}
	out := ProductReviews{Reviews: reviews}
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		out.AverageRating = float64(sum) / float64(len(reviews))
	}
	return out, nil
}

// Submit stores an unapproved review after validating its fields.
func (s *ReviewService) Submit(productID, name, email string, rating int, comment string) error {
	if _, err := s.Prods.Get(productID); err != nil {
		return err
	}
	name, nameOK := validate.Name(name)
	email, emailOK := validate.Email(email)
	if !nameOK || !emailOK || !validate.Rating(rating) || len(comment) > 1000 {
		return ErrInvalidReview
	}
	return s.Reviews.Create(uuid.NewString(), productID, name, email, rating, comment)
}
