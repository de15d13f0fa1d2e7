package services

import (
	"fmt"
	"testing"

	"storefront/entity"
	"storefront/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory sqlite database. cache=shared keeps
// every pooled connection on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Wallet{},
		&entity.Town{}, &entity.Quarter{},
		&entity.Cook{}, &entity.FeeGroup{}, &entity.DeliveryArea{}, &entity.PickupLocation{},
		&entity.Meal{}, &entity.MealComponent{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.PromoCode{}, &entity.PromoRedemption{},
		&entity.OrderStatus{}, &entity.Order{}, &entity.OrderItem{},
		&entity.PaymentStatus{}, &entity.Payment{},
	))

	for _, name := range []string{"Pending Payment", "Paid", "Cancelled", "Expired"} {
		require.NoError(t, db.Create(&entity.OrderStatus{StatusName: name}).Error)
	}
	for _, name := range []string{"Pending", "Success", "Failed"} {
		require.NoError(t, db.Create(&entity.PaymentStatus{StatusName: name}).Error)
	}

	return db
}

// fixture is a complete cook storefront: one town with two quarters, one
// grouped delivery area and one with an individual fee, a pickup point, and
// a meal with two components.
type fixture struct {
	DB *gorm.DB

	Cook        entity.Cook
	Town        entity.Town
	QuarterA    entity.Quarter // fee group, 500
	QuarterB    entity.Quarter // individual fee, 0 (free delivery)
	QuarterOff  entity.Quarter // configured but flagged unavailable
	QuarterFar  entity.Quarter // not configured at all
	Pickup      entity.PickupLocation
	Meal        entity.Meal
	CompPlate   entity.MealComponent // 2500/plate
	CompWrap    entity.MealComponent // 500/wrap
	OtherCook   entity.Cook
	OtherMeal   entity.Meal
	OtherPlate  entity.MealComponent
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{DB: db}

	f.Town = entity.Town{Name: "Douala"}
	require.NoError(t, db.Create(&f.Town).Error)

	for _, q := range []*entity.Quarter{&f.QuarterA, &f.QuarterB, &f.QuarterOff, &f.QuarterFar} {
		q.TownID = f.Town.ID
	}
	f.QuarterA.Name = "Akwa"
	f.QuarterB.Name = "Bonapriso"
	f.QuarterOff.Name = "Bonaberi"
	f.QuarterFar.Name = "Yassa"
	require.NoError(t, db.Create(&f.QuarterA).Error)
	require.NoError(t, db.Create(&f.QuarterB).Error)
	require.NoError(t, db.Create(&f.QuarterOff).Error)
	require.NoError(t, db.Create(&f.QuarterFar).Error)

	owner := entity.User{Email: "mami@nyanga.cm", Password: "x", Role: "cook"}
	require.NoError(t, db.Create(&owner).Error)

	f.Cook = entity.Cook{
		Name: "Mami Nyanga", Slug: "mami-nyanga", UserID: owner.ID,
		TownID: f.Town.ID, MinOrderAmount: 3000, Currency: "XAF", Active: true,
	}
	require.NoError(t, db.Create(&f.Cook).Error)

	group := entity.FeeGroup{CookID: f.Cook.ID, Name: "Centre", Fee: 500}
	require.NoError(t, db.Create(&group).Error)

	freeFee := int64(0)
	offFee := int64(700)
	require.NoError(t, db.Create(&entity.DeliveryArea{
		CookID: f.Cook.ID, QuarterID: f.QuarterA.ID, FeeGroupID: &group.ID, Available: true,
	}).Error)
	require.NoError(t, db.Create(&entity.DeliveryArea{
		CookID: f.Cook.ID, QuarterID: f.QuarterB.ID, IndividualFee: &freeFee, Available: true,
	}).Error)
	require.NoError(t, db.Create(&entity.DeliveryArea{
		CookID: f.Cook.ID, QuarterID: f.QuarterOff.ID, IndividualFee: &offFee, Available: false,
	}).Error)

	f.Pickup = entity.PickupLocation{CookID: f.Cook.ID, Name: "Home kitchen", Available: true}
	require.NoError(t, db.Create(&f.Pickup).Error)

	f.Meal = entity.Meal{CookID: f.Cook.ID, Name: "Eru", Available: true}
	require.NoError(t, db.Create(&f.Meal).Error)
	f.CompPlate = entity.MealComponent{
		MealID: f.Meal.ID, Name: "Eru", Unit: "plate", Price: 2500,
		MaxPerOrder: 10, Stock: 20, Available: true,
	}
	f.CompWrap = entity.MealComponent{
		MealID: f.Meal.ID, Name: "Water fufu", Unit: "wrap", Price: 500,
		MaxPerOrder: 15, Stock: 8, Available: true,
	}
	require.NoError(t, db.Create(&f.CompPlate).Error)
	require.NoError(t, db.Create(&f.CompWrap).Error)

	otherOwner := entity.User{Email: "other@nyanga.cm", Password: "x", Role: "cook"}
	require.NoError(t, db.Create(&otherOwner).Error)
	f.OtherCook = entity.Cook{Name: "Other", Slug: "other", UserID: otherOwner.ID, TownID: f.Town.ID, Active: true}
	require.NoError(t, db.Create(&f.OtherCook).Error)
	f.OtherMeal = entity.Meal{CookID: f.OtherCook.ID, Name: "Ndole", Available: true}
	require.NoError(t, db.Create(&f.OtherMeal).Error)
	f.OtherPlate = entity.MealComponent{
		MealID: f.OtherMeal.ID, Name: "Ndole", Unit: "plate", Price: 3000,
		MaxPerOrder: 5, Stock: 5, Available: true,
	}
	require.NoError(t, db.Create(&f.OtherPlate).Error)

	return f
}

func (f *fixture) cartService() *CartService {
	return NewCartService(f.DB,
		repository.NewCartRepository(f.DB),
		repository.NewCookRepository(f.DB))
}

func (f *fixture) deliveryService() *DeliveryService {
	return NewDeliveryService(repository.NewDeliveryRepository(f.DB))
}

func (f *fixture) promoService() *PromoService {
	return NewPromoService(
		repository.NewPromoRepository(f.DB),
		repository.NewCartRepository(f.DB))
}

func (f *fixture) checkoutService() *CheckoutService {
	return NewCheckoutService(f.DB,
		repository.NewOrderRepository(f.DB),
		repository.NewCartRepository(f.DB),
		repository.NewCookRepository(f.DB),
		f.deliveryService(),
		f.promoService())
}
