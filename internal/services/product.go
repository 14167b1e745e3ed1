package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"soap-storefront/internal/models"
)

// ProductService reads the public catalog and performs admin product mutations
type ProductService struct {
	api *APIClient
}

func NewProductService(api *APIClient) *ProductService {
	return &ProductService{api: api}
}

// List returns the full public catalog; filtering happens in models.FilterProducts.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.api.do(ctx, http.MethodGet, "/api/products", "", nil, &products); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.api.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), "", nil, &product)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("product %s: %w", id, errors.Join(models.ErrProductNotFound, err))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &product, nil
}

func (s *ProductService) AdminList(ctx context.Context, token string, filter models.AdminProductFilter) (*models.Page[models.Product], error) {
	query := listQuery(filter.Search, filter.Page, filter.Limit, map[string]string{
		"category": filter.Category,
		"status":   filter.Status,
	})
	page, err := getPage[models.Product](ctx, s.api, "/api/products/admin/all", token, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin products: %w", err)
	}
	return page, nil
}

// Create posts the form as multipart so an optional image can travel with it
func (s *ProductService) Create(ctx context.Context, token string, form models.ProductForm, image *ImageUpload) (*models.Product, error) {
	var product models.Product
	if err := s.api.doMultipart(ctx, http.MethodPost, "/api/products", token, productFields(form), imageParts(image), &product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

func (s *ProductService) Update(ctx context.Context, token, id string, form models.ProductForm, image *ImageUpload) (*models.Product, error) {
	var product models.Product
	path := "/api/products/" + url.PathEscape(id)
	if err := s.api.doMultipart(ctx, http.MethodPut, path, token, productFields(form), imageParts(image), &product); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return &product, nil
}

func (s *ProductService) Delete(ctx context.Context, token, id string) error {
	if err := s.api.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), token, nil, nil); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

func productFields(form models.ProductForm) map[string]string {
	fields := map[string]string{
		"name":        form.Name,
		"description": form.Description,
		"price":       strconv.Itoa(form.Price),
		"category":    form.Category,
		"stock":       strconv.Itoa(form.Stock),
		"featured":    strconv.FormatBool(form.Featured),
		"isActive":    strconv.FormatBool(form.IsActive),
		"ingredients": strings.Join(form.Ingredients, ","),
		"benefits":    strings.Join(form.Benefits, ","),
	}
	if form.OriginalPrice > 0 {
		fields["originalPrice"] = strconv.Itoa(form.OriginalPrice)
	}
	if form.Weight != "" {
		fields["weight"] = form.Weight
	}
	return fields
}

func imageParts(image *ImageUpload) []MultipartFile {
	if image == nil {
		return nil
	}
	return []MultipartFile{{
		Field:       "images",
		Filename:    image.Filename,
		ContentType: image.ContentType,
		Data:        image.Data,
	}}
}
