package entity

// CreateCategoryRequest is the nested category payload of a product create.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateProductRequest struct {
	Name     string                `json:"name" validate:"required"`
	Price    float64               `json:"price" validate:"gte=0"`
	Stock    int                   `json:"stock"`
	Category CreateCategoryRequest `json:"category" validate:"required"`
}

// CreateReviewRequest carries raw identifiers; they are stored as given,
// without checking that the product or author exist.
type CreateReviewRequest struct {
	Comment string `json:"comment"`
	Rating  int    `json:"rating" validate:"min=0,max=5"`
	Product string `json:"product" validate:"required"`
	Author  string `json:"author" validate:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Role     bool   `json:"role"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
