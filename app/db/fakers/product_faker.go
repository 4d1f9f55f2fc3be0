package fakers

import (
	"math/rand"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"github.com/yogaprasetya/go-storefront/app/models"
	"gorm.io/gorm"
)

func ProductFaker(db *gorm.DB, category *models.Category) *models.Product {
	name := faker.Word() + " " + faker.Word()

	price := decimal.NewFromInt(int64(rand.Intn(900000) + 100000))
	weight := decimal.NewFromFloat(float64(rand.Intn(50)+1) / 10.0)

	return &models.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Description: faker.Paragraph(),
		Sku:         uuid.NewString()[:8],
		Price:       price,
		Stock:       rand.Intn(100) + 10,
		Weight:      weight,
		CategoryID:  &category.ID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func CategoryFaker() *models.Category {
	name := faker.Word()
	return &models.Category{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug.Make(name + "-" + uuid.NewString()[:6]),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
