package services

import (
	"aurora-market/internal/models"
)

// CatalogService serves the static product catalog. The catalog is content
// configuration, not computed state: it is defined here in memory and never
// mutated at runtime.
type CatalogService struct {
	products []models.Product
	featured int // first N products are featured on the home page
}

// NewCatalogService creates a catalog service with the default product set
func NewCatalogService() *CatalogService {
	return &CatalogService{
		products: defaultProducts(),
		featured: 3,
	}
}

// Products returns all catalog products
func (s *CatalogService) Products() []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Featured returns the products highlighted on the home page
func (s *CatalogService) Featured() []models.Product {
	out := make([]models.Product, s.featured)
	copy(out, s.products[:s.featured])
	return out
}

// ProductByID looks up a product by its catalog id
func (s *CatalogService) ProductByID(id int) (*models.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, models.ErrProductNotFound
}

func defaultProducts() []models.Product {
	products := []models.Product{
		{
			ID:          1,
			Name:        "Aurora Field Kit - Starter Edition",
			PriceCents:  500,
			Image:       "/imgs/product1.jpg",
			Description: "Entry kit with everything needed to get started.",
			Rating:      4.4,
			Reviews:     85,
		},
		{
			ID:          2,
			Name:        "Aurora Print - Holy Family (Best Seller)",
			PriceCents:  1000,
			Image:       "/imgs/product2.jpg",
			Description: "Our classic print, the one that started it all.",
			Rating:      4.8,
			Reviews:     89,
		},
		{
			ID:          3,
			Name:        "Aurora Print - Cosmic Journey",
			PriceCents:  1200,
			Image:       "/imgs/product3.jpg",
			Description: "High-detail artwork from the cosmic series.",
			Rating:      5.0,
			Reviews:     201,
		},
		{
			ID:          4,
			Name:        "Aurora Print - Ocean of Love",
			PriceCents:  1300,
			Image:       "/imgs/product4.jpg",
			Description: "Premium-grade print for collectors looking for deep color.",
			Rating:      4.7,
			Reviews:     156,
		},
		{
			ID:          5,
			Name:        "Aurora Print - Limited Edition",
			PriceCents:  1400,
			Image:       "/imgs/product5.jpg",
			Description: "Limited edition run with unique artwork.",
			Rating:      4.9,
			Reviews:     98,
		},
		{
			ID:          6,
			Name:        "Aurora Print - Perception Prism",
			PriceCents:  1500,
			Image:       "/imgs/product6.jpg",
			Description: "Large-format piece from the prism series.",
			Rating:      4.6,
			Reviews:     20,
		},
	}
	for i := range products {
		products[i].Price = models.FormatEUR(products[i].PriceCents)
	}
	return products
}
