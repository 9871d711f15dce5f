package dto

import (
	"github.com/google/uuid"

	"escolta/internal/domain/models"
)

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

type CreateGalleryItemRequest struct {
	Title        string     `json:"title" form:"title" validate:"required"`
	ImageURL     string     `json:"imageUrl" form:"imageUrl"`
	ThumbnailURL string     `json:"thumbnailUrl" form:"thumbnailUrl"`
	CategoryID   *uuid.UUID `json:"categoryId" form:"categoryId"`
	Year         int        `json:"year" form:"year"`
	DisplayOrder int        `json:"displayOrder" form:"displayOrder"`
}

type UpdateGalleryItemRequest struct {
	Title        *string    `json:"title" form:"title"`
	ImageURL     *string    `json:"imageUrl" form:"imageUrl"`
	ThumbnailURL *string    `json:"thumbnailUrl" form:"thumbnailUrl"`
	CategoryID   *uuid.UUID `json:"categoryId" form:"categoryId"`
	Year         *int       `json:"year" form:"year"`
	DisplayOrder *int       `json:"displayOrder" form:"displayOrder"`
}

// ReorderRequest is shared by every orderable resource.
type ReorderRequest struct {
	Items []models.ReorderItem `json:"items" validate:"required,min=1,dive"`
}
