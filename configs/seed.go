package configs

import (
	"storefront/entity"

	"golang.org/x/crypto/bcrypt"
)

func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		Logger().Warnw("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		Logger().Infow("admin already exists", "email", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      "admin",
	}
	return db.Create(&admin).Error
}

// Seed lookup/status rows the services resolve IDs from at boot.
func SeedLookups() error {
	db := DB()

	// Order lifecycle: Pending Payment -> Paid | Cancelled | Expired
	db.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Pending Payment"})
	db.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Paid"})
	db.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Cancelled"})
	db.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Expired"})

	// Payment
	db.FirstOrCreate(&entity.PaymentStatus{}, entity.PaymentStatus{StatusName: "Pending"})
	db.FirstOrCreate(&entity.PaymentStatus{}, entity.PaymentStatus{StatusName: "Success"})
	db.FirstOrCreate(&entity.PaymentStatus{}, entity.PaymentStatus{StatusName: "Failed"})

	return nil
}
