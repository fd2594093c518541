package handlers

import (
	"fmt"
	"reflect"
	"strings"

	"storefront/internal/models"

	"github.com/go-playground/validator/v10"
)

// CreateProductRequest is the body of POST /products. Pointer fields tell a
// missing field apart from an explicit zero.
type CreateProductRequest struct {
	Name        *string  `json:"name" validate:"required,min=1"`
	Description *string  `json:"description" validate:"required,min=1"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    *string  `json:"category" validate:"required,min=1"`
	Inventory   *int     `json:"inventory" validate:"required,gte=0"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,url"`
}

// UpdateProductRequest is the body of PUT /products/:id. Every field is optional.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" validate:"omitempty,min=1"`
	Inventory   *int     `json:"inventory" validate:"omitempty,gte=0"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,url"`
}

func (r *CreateProductRequest) normalize() {
	r.Name = trimmed(r.Name)
	r.Description = trimmed(r.Description)
	r.Category = trimmed(r.Category)
	r.ImageURL = trimmed(r.ImageURL)
}

func (r *UpdateProductRequest) normalize() {
	r.Name = trimmed(r.Name)
	r.Description = trimmed(r.Description)
	r.Category = trimmed(r.Category)
	r.ImageURL = trimmed(r.ImageURL)
}

// toFormData must only be called after validation succeeded.
func (r CreateProductRequest) toFormData() models.ProductFormData {
	return models.ProductFormData{
		Name:        *r.Name,
		Description: *r.Description,
		Price:       *r.Price,
		Category:    *r.Category,
		Inventory:   *r.Inventory,
		ImageURL:    r.ImageURL,
	}
}

func (r UpdateProductRequest) toUpdate() models.ProductUpdate {
	return models.ProductUpdate{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Inventory:   r.Inventory,
		ImageURL:    r.ImageURL,
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessages turns validator errors into a field -> message map.
func validationMessages(err error) map[string]string {
	messages := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		messages["body"] = err.Error()
		return messages
	}
	for _, e := range validationErrors {
		messages[e.Field()] = fieldMessage(e)
	}
	return messages
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("Missing required field: %s", e.Field())
	case "min":
		return fmt.Sprintf("%s must be a non-empty string", e.Field())
	case "gte":
		return fmt.Sprintf("%s must be a non-negative number", e.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", e.Field())
	default:
		return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
}
