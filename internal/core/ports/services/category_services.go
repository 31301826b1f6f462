package services

import (
	"context"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
	"github.com/avltr/personal_ledger_app/internal/dto"
)

// CategorySvcFacade combines all category service operations.
type CategorySvcFacade interface {
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}
