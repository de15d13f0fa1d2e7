package services

import (
	"testing"
	"time"

	"storefront/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeReq(f *fixture) *PlaceOrderReq {
	return &PlaceOrderReq{
		Method:    "delivery",
		QuarterID: f.QuarterA.ID,
		Phone:     "+237670000001",
		Provider:  "mtn_momo",
	}
}

func TestSummaryComposition(t *testing.T) {
	f := newFixture(t)
	cartWith(t, f, "s1", 2) // 5000
	seedPromo(t, f, entity.PromoCode{Code: "SAVE10", Kind: entity.PromoPercentage, Value: 10})
	_, err := f.promoService().Apply("s1", "SAVE10")
	require.NoError(t, err)

	out, err := f.checkoutService().Summary("s1", SummaryIn{
		Method: entity.MethodDelivery, QuarterID: f.QuarterA.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), out.Subtotal)
	assert.Equal(t, int64(500), out.Discount)
	require.NotNil(t, out.Total)
	assert.Equal(t, int64(5000), *out.Total) // 5000 - 500 + 500
	assert.Equal(t, "SAVE10", out.PromoCode)
	assert.False(t, out.BelowMinimum)
}

func TestSummaryUnavailableQuarterOffersPickup(t *testing.T) {
	f := newFixture(t)
	cartWith(t, f, "s1", 2)

	out, err := f.checkoutService().Summary("s1", SummaryIn{
		Method: entity.MethodDelivery, QuarterID: f.QuarterFar.ID,
	})
	require.NoError(t, err)
	assert.True(t, out.DeliveryUnavailable)
	assert.Nil(t, out.Total)
	assert.True(t, out.PickupAvailable, "cook has a pickup point to fall back to")
}

func TestPlaceOrderFreezesSummaryAndClearsCart(t *testing.T) {
	f := newFixture(t)
	svc := f.checkoutService()
	cartWith(t, f, "s1", 2)
	seedPromo(t, f, entity.PromoCode{Code: "SAVE10", Kind: entity.PromoPercentage, Value: 10})
	_, err := f.promoService().Apply("s1", "SAVE10")
	require.NoError(t, err)

	res, err := svc.PlaceOrder("s1", nil, placeReq(f))
	require.NoError(t, err)
	assert.NotEmpty(t, res.Reference)
	assert.Equal(t, int64(5000), res.Total)

	detail, err := svc.DetailByReference("s1", nil, res.Reference)
	require.NoError(t, err)
	o := detail.Order
	assert.Equal(t, int64(5000), o.Subtotal)
	assert.Equal(t, int64(500), o.Discount)
	assert.Equal(t, int64(500), o.DeliveryFee)
	assert.Equal(t, int64(5000), o.Total)
	assert.Equal(t, "SAVE10", o.PromoCode)
	assert.Equal(t, "Pending Payment", o.OrderStatus.StatusName)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, 2, detail.Items[0].Qty)
	require.NotNil(t, detail.Payment)
	assert.Equal(t, entity.ProviderMTNMoMo, detail.Payment.Provider)
	assert.Equal(t, int64(5000), detail.Payment.Amount)

	// usage recorded exactly once, cart emptied
	var promo entity.PromoCode
	require.NoError(t, f.DB.Where("code = ?", "SAVE10").First(&promo).Error)
	assert.Equal(t, 1, promo.UsedCount)

	view, err := f.cartService().Get("s1")
	require.NoError(t, err)
	assert.Empty(t, view.Cart.Items)
}

func TestPlaceOrderBelowMinimumBlocked(t *testing.T) {
	f := newFixture(t)
	svc := f.checkoutService()
	// one wrap = 500, far below the 3000 minimum
	require.NoError(t, f.cartService().Add("s1", nil, &AddToCartIn{
		CookID: f.Cook.ID, ComponentID: f.CompWrap.ID, Qty: 1,
	}))

	_, err := svc.PlaceOrder("s1", nil, placeReq(f))
	assert.ErrorIs(t, err, ErrBelowMinimumOrder)

	// the summary step stays usable and reports the shortfall
	out, err := svc.Summary("s1", SummaryIn{Method: entity.MethodDelivery, QuarterID: f.QuarterA.ID})
	require.NoError(t, err)
	assert.True(t, out.BelowMinimum)
	assert.Equal(t, int64(2500), out.AmountNeeded)
}

func TestPlaceOrderDiscountCanDropBelowMinimum(t *testing.T) {
	f := newFixture(t)
	svc := f.checkoutService()
	cartWith(t, f, "s1", 2) // 5000
	seedPromo(t, f, entity.PromoCode{Code: "HALF", Kind: entity.PromoFixed, Value: 2500})
	_, err := f.promoService().Apply("s1", "HALF")
	require.NoError(t, err)

	// 5000 - 2500 = 2500 < 3000 minimum, regardless of the delivery fee
	_, err = svc.PlaceOrder("s1", nil, placeReq(f))
	assert.ErrorIs(t, err, ErrBelowMinimumOrder)
}

func TestPlaceOrderUnavailableQuarter(t *testing.T) {
	f := newFixture(t)
	svc := f.checkoutService()
	cartWith(t, f, "s1", 2)

	req := placeReq(f)
	req.QuarterID = f.QuarterFar.ID
	_, err := svc.PlaceOrder("s1", nil, req)
	assert.ErrorIs(t, err, ErrQuarterUnavailable)

	// cart untouched: the failure blocks only the delivery step
	view, err := f.cartService().Get("s1")
	require.NoError(t, err)
	assert.Len(t, view.Cart.Items, 1)
}

func TestPlaceOrderPickupSkipsDeliveryFee(t *testing.T) {
	f := newFixture(t)
	svc := f.checkoutService()
	cartWith(t, f, "s1", 2)

	req := placeReq(f)
	req.Method = "pickup"
	req.PickupLocationID = f.Pickup.ID
	res, err := svc.PlaceOrder("s1", nil, req)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), res.Total)

	detail, err := svc.DetailByReference("s1", nil, res.Reference)
	require.NoError(t, err)
	assert.Equal(t, int64(0), detail.Order.DeliveryFee)
	assert.Equal(t, entity.MethodPickup, detail.Order.DeliveryMethod)
}

func TestPlaceOrderUnknownPickupLocation(t *testing.T) {
	f := newFixture(t)
	svc := f.checkoutService()
	cartWith(t, f, "s1", 2)

	req := placeReq(f)
	req.Method = "pickup"
	req.PickupLocationID = 9999
	_, err := svc.PlaceOrder("s1", nil, req)
	assert.ErrorIs(t, err, ErrPickupLocationNotFound)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newFixture(t)
	_, err := f.checkoutService().PlaceOrder("s1", nil, placeReq(f))
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestPlaceOrderStalePriceReturnsDiffAndRefreshes(t *testing.T) {
	f := newFixture(t)
	svc := f.checkoutService()
	cartWith(t, f, "s1", 2) // snapshot at 2500

	// the cook bumps the price between cart-build and submission
	require.NoError(t, f.DB.Model(&entity.MealComponent{}).
		Where("id = ?", f.CompPlate.ID).Update("price", 3000).Error)

	_, err := svc.PlaceOrder("s1", nil, placeReq(f))
	var stale *StaleCartError
	require.ErrorAs(t, err, &stale)
	require.Len(t, stale.Lines, 1)
	assert.Equal(t, int64(2500), stale.Lines[0].OldPrice)
	assert.Equal(t, int64(3000), stale.Lines[0].NewPrice)
	assert.False(t, stale.Lines[0].Removed)

	// cart now carries live prices; a retry goes through at the new total
	view, err := f.cartService().Get("s1")
	require.NoError(t, err)
	assert.Equal(t, int64(6000), view.Subtotal)

	res, err := svc.PlaceOrder("s1", nil, placeReq(f))
	require.NoError(t, err)
	assert.Equal(t, int64(6500), res.Total) // 6000 + 500 fee
}

func TestPlaceOrderStaleRemovedLine(t *testing.T) {
	f := newFixture(t)
	svc := f.checkoutService()
	cartWith(t, f, "s1", 2)
	require.NoError(t, f.cartService().Add("s1", nil, &AddToCartIn{
		CookID: f.Cook.ID, ComponentID: f.CompWrap.ID, Qty: 2,
	}))

	require.NoError(t, f.DB.Model(&entity.MealComponent{}).
		Where("id = ?", f.CompWrap.ID).Update("available", false).Error)

	_, err := svc.PlaceOrder("s1", nil, placeReq(f))
	var stale *StaleCartError
	require.ErrorAs(t, err, &stale)
	require.Len(t, stale.Lines, 1)
	assert.True(t, stale.Lines[0].Removed)

	view, err := f.cartService().Get("s1")
	require.NoError(t, err)
	require.Len(t, view.Cart.Items, 1, "unavailable line dropped from the cart")
	assert.Equal(t, f.CompPlate.ID, view.Cart.Items[0].ComponentID)
}

func TestPlaceOrderPromoExpiredBySubmission(t *testing.T) {
	f := newFixture(t)
	svc := f.checkoutService()
	cartWith(t, f, "s1", 2)

	future := time.Now().Add(time.Hour)
	p := seedPromo(t, f, entity.PromoCode{Code: "SOON", Kind: entity.PromoPercentage, Value: 10, ExpiresAt: &future})
	_, err := f.promoService().Apply("s1", "SOON")
	require.NoError(t, err)

	// expires between apply and submission
	past := time.Now().Add(-time.Minute)
	require.NoError(t, f.DB.Model(&entity.PromoCode{}).Where("id = ?", p.ID).
		Update("expires_at", past).Error)

	_, err = svc.PlaceOrder("s1", nil, placeReq(f))
	assert.ErrorIs(t, err, ErrPromoExpired)

	// the code is dropped so the summary reloads without it
	var cart entity.Cart
	require.NoError(t, f.DB.Where("session_key = ?", "s1").First(&cart).Error)
	assert.Nil(t, cart.PromoCodeID)

	// and no usage was recorded
	var reloaded entity.PromoCode
	require.NoError(t, f.DB.First(&reloaded, p.ID).Error)
	assert.Equal(t, 0, reloaded.UsedCount)
}

// ----- wallet -----

func walletUser(t *testing.T, f *fixture, balance int64) uint {
	t.Helper()
	u := entity.User{Email: "client@test.cm", Password: "x", Role: "client"}
	require.NoError(t, f.DB.Create(&u).Error)
	require.NoError(t, f.DB.Create(&entity.Wallet{UserID: u.ID, Balance: balance}).Error)
	return u.ID
}

func TestPlaceOrderWalletRequiresAccount(t *testing.T) {
	f := newFixture(t)
	cartWith(t, f, "s1", 2)

	req := placeReq(f)
	req.Provider = "wallet"
	_, err := f.checkoutService().PlaceOrder("s1", nil, req)
	assert.ErrorIs(t, err, ErrWalletRequiresAccount)
}

func TestPlaceOrderWalletInsufficient(t *testing.T) {
	f := newFixture(t)
	cartWith(t, f, "s1", 2) // total 5500 with fee
	uid := walletUser(t, f, 1000)

	req := placeReq(f)
	req.Provider = "wallet"
	_, err := f.checkoutService().PlaceOrder("s1", &uid, req)
	assert.ErrorIs(t, err, ErrInsufficientWallet)
}

func TestConfirmPaymentWalletDebits(t *testing.T) {
	f := newFixture(t)
	svc := f.checkoutService()
	cartWith(t, f, "s1", 2)
	uid := walletUser(t, f, 10000)

	req := placeReq(f)
	req.Provider = "wallet"
	res, err := svc.PlaceOrder("s1", &uid, req)
	require.NoError(t, err)

	require.NoError(t, svc.ConfirmPayment(res.Reference, ""))

	var w entity.Wallet
	require.NoError(t, f.DB.Where("user_id = ?", uid).First(&w).Error)
	assert.Equal(t, int64(10000-5500), w.Balance)

	detail, err := svc.DetailByReference("s1", &uid, res.Reference)
	require.NoError(t, err)
	assert.Equal(t, "Paid", detail.Order.OrderStatus.StatusName)
	require.NotNil(t, detail.Payment.PaidAt)
}

// ----- transitions -----

func TestConfirmPaymentTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	svc := f.checkoutService()
	cartWith(t, f, "s1", 2)

	res, err := svc.PlaceOrder("s1", nil, placeReq(f))
	require.NoError(t, err)

	require.NoError(t, svc.ConfirmPayment(res.Reference, "MOMO-1"))
	assert.ErrorIs(t, svc.ConfirmPayment(res.Reference, "MOMO-2"), ErrInvalidTransition)
}

func TestCancelOrderBySession(t *testing.T) {
	f := newFixture(t)
	svc := f.checkoutService()
	cartWith(t, f, "s1", 2)

	res, err := svc.PlaceOrder("s1", nil, placeReq(f))
	require.NoError(t, err)

	// a different session may not cancel it
	assert.ErrorIs(t, svc.CancelOrder("intruder", nil, res.Reference), ErrForbidden)

	require.NoError(t, svc.CancelOrder("s1", nil, res.Reference))
	detail, err := svc.DetailByReference("s1", nil, res.Reference)
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", detail.Order.OrderStatus.StatusName)

	// a cancelled order can no longer be paid
	assert.ErrorIs(t, svc.ConfirmPayment(res.Reference, ""), ErrInvalidTransition)
}

func TestExpireOrder(t *testing.T) {
	f := newFixture(t)
	svc := f.checkoutService()
	cartWith(t, f, "s1", 2)

	res, err := svc.PlaceOrder("s1", nil, placeReq(f))
	require.NoError(t, err)

	require.NoError(t, svc.ExpireOrder(res.Reference))
	detail, err := svc.DetailByReference("s1", nil, res.Reference)
	require.NoError(t, err)
	assert.Equal(t, "Expired", detail.Order.OrderStatus.StatusName)
}
