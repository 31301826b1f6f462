package dto

import (
	"github.com/avltr/personal_ledger_app/internal/core/domain"
)

// CreateCategoryRequest defines the payload for creating a category.
type CreateCategoryRequest struct {
	Name             string        `json:"name" binding:"required"`
	Nature           domain.Nature `json:"nature" binding:"required,oneof=MUST NEED WANT"`
	Color            string        `json:"color"`
	ParentCategoryID string        `json:"parentCategoryID"`
}

// UpdateCategoryRequest defines the payload for updating a category. Nil
// fields are left unchanged.
type UpdateCategoryRequest struct {
	Name   *string        `json:"name"`
	Nature *domain.Nature `json:"nature" binding:"omitempty,oneof=MUST NEED WANT"`
	Color  *string        `json:"color"`
}

// CategoryResponse defines the category data returned by the API.
type CategoryResponse struct {
	CategoryID       string        `json:"categoryID"`
	Name             string        `json:"name"`
	Nature           domain.Nature `json:"nature"`
	Color            string        `json:"color"`
	ParentCategoryID string        `json:"parentCategoryID,omitempty"`
}

// ToCategoryResponse maps a domain category to its response DTO.
func ToCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:       c.CategoryID,
		Name:             c.Name,
		Nature:           c.Nature,
		Color:            c.Color,
		ParentCategoryID: c.ParentCategoryID,
	}
}

// ListCategoriesResponse wraps the category listing.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
