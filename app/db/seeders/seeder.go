package seeders

import (
	"github.com/yogaprasetya/go-storefront/app/db/fakers"
	"gorm.io/gorm"
)

func DBSeed(db *gorm.DB) error {
	for i := 0; i < 3; i++ {
		category := fakers.CategoryFaker()
		if err := db.Create(category).Error; err != nil {
			return err
		}

		for j := 0; j < 8; j++ {
			product := fakers.ProductFaker(db, category)
			if err := db.Create(product).Error; err != nil {
				return err
			}
		}
	}

	for i := 0; i < 5; i++ {
		if err := db.Create(fakers.UserFaker(db)).Error; err != nil {
			return err
		}
	}

	return nil
}
