package repository

import (
	"storefront/entity"

	"gorm.io/gorm"
)

type CookRepository struct{ DB *gorm.DB }

func NewCookRepository(db *gorm.DB) *CookRepository { return &CookRepository{DB: db} }

func (r *CookRepository) GetBySlug(slug string) (*entity.Cook, error) {
	var cook entity.Cook
	err := r.DB.Where("slug = ? AND active = ?", slug, true).First(&cook).Error
	if err != nil {
		return nil, err
	}
	return &cook, nil
}

func (r *CookRepository) GetByID(id uint) (*entity.Cook, error) {
	var cook entity.Cook
	if err := r.DB.First(&cook, id).Error; err != nil {
		return nil, err
	}
	return &cook, nil
}

func (r *CookRepository) GetForOwner(userID uint) (*entity.Cook, error) {
	var cook entity.Cook
	if err := r.DB.Where("user_id = ?", userID).First(&cook).Error; err != nil {
		return nil, err
	}
	return &cook, nil
}

// ListMeals returns the storefront menu: available meals with their
// available components.
func (r *CookRepository) ListMeals(cookID uint) ([]entity.Meal, error) {
	var meals []entity.Meal
	err := r.DB.Where("cook_id = ? AND available = ?", cookID, true).
		Preload("Components", "available = ?", true).
		Order("id ASC").
		Find(&meals).Error
	return meals, err
}

func (r *CookRepository) GetComponent(componentID uint) (*entity.MealComponent, error) {
	var comp entity.MealComponent
	err := r.DB.Preload("Meal").First(&comp, componentID).Error
	if err != nil {
		return nil, err
	}
	return &comp, nil
}
