package configs

import (
	"storefront/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

// SetupDatabase migrates the schema. A failed migration must stop boot;
// serving against a partial schema corrupts orders.
func SetupDatabase() error {
	return db.AutoMigrate(
		&entity.User{}, &entity.Wallet{},
		&entity.Town{}, &entity.Quarter{},
		&entity.Cook{}, &entity.FeeGroup{}, &entity.DeliveryArea{}, &entity.PickupLocation{},
		&entity.Meal{}, &entity.MealComponent{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.PromoCode{}, &entity.PromoRedemption{},
		&entity.OrderStatus{}, &entity.Order{}, &entity.OrderItem{},
		&entity.PaymentStatus{}, &entity.Payment{},
	)
}
