package services

import (
	"testing"

	"storefront/entity"
	"storefront/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFeeGroupFee(t *testing.T) {
	f := newFixture(t)
	svc := f.deliveryService()

	quote, err := svc.ResolveFee(f.Cook.ID, f.QuarterA.ID)
	require.NoError(t, err)
	assert.True(t, quote.Available)
	require.NotNil(t, quote.Fee)
	assert.Equal(t, int64(500), *quote.Fee)
}

func TestResolveFeeIndividualZeroIsFreeDelivery(t *testing.T) {
	f := newFixture(t)
	svc := f.deliveryService()

	quote, err := svc.ResolveFee(f.Cook.ID, f.QuarterB.ID)
	require.NoError(t, err)
	assert.True(t, quote.Available, "a 0 fee is free delivery, not unavailable")
	require.NotNil(t, quote.Fee)
	assert.Equal(t, int64(0), *quote.Fee)
}

func TestResolveFeeUnknownQuarter(t *testing.T) {
	f := newFixture(t)
	svc := f.deliveryService()

	quote, err := svc.ResolveFee(f.Cook.ID, f.QuarterFar.ID)
	require.NoError(t, err, "unknown quarter is a result, not an error")
	assert.False(t, quote.Available)
	assert.Nil(t, quote.Fee)
}

func TestResolveFeeFlaggedOffQuarter(t *testing.T) {
	f := newFixture(t)
	svc := f.deliveryService()

	quote, err := svc.ResolveFee(f.Cook.ID, f.QuarterOff.ID)
	require.NoError(t, err)
	assert.False(t, quote.Available)
	assert.Nil(t, quote.Fee)
}

func TestAreaCreatedUnavailableStaysOff(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewDeliveryRepository(f.DB)

	feeVal := int64(700)
	require.NoError(t, repo.CreateArea(&entity.DeliveryArea{
		CookID: f.OtherCook.ID, QuarterID: f.QuarterA.ID,
		IndividualFee: &feeVal, Available: false,
	}))

	// Available=false must survive the insert verbatim
	var reloaded entity.DeliveryArea
	require.NoError(t, f.DB.Where("cook_id = ? AND quarter_id = ?",
		f.OtherCook.ID, f.QuarterA.ID).First(&reloaded).Error)
	assert.False(t, reloaded.Available)

	quote, err := NewDeliveryService(repo).ResolveFee(f.OtherCook.ID, f.QuarterA.ID)
	require.NoError(t, err)
	assert.False(t, quote.Available)
	assert.Nil(t, quote.Fee)
}

func TestResolveFeeIdempotent(t *testing.T) {
	f := newFixture(t)
	svc := f.deliveryService()

	first, err := svc.ResolveFee(f.Cook.ID, f.QuarterA.ID)
	require.NoError(t, err)
	second, err := svc.ResolveFee(f.Cook.ID, f.QuarterA.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Available, second.Available)
	assert.Equal(t, *first.Fee, *second.Fee)
}

func TestResolveFeeScopedToCook(t *testing.T) {
	f := newFixture(t)
	svc := f.deliveryService()

	// another cook never inherits this cook's areas
	quote, err := svc.ResolveFee(f.OtherCook.ID, f.QuarterA.ID)
	require.NoError(t, err)
	assert.False(t, quote.Available)
}

func TestListAreas(t *testing.T) {
	f := newFixture(t)
	svc := f.deliveryService()

	areas, err := svc.ListAreas(f.Cook.ID)
	require.NoError(t, err)
	require.Len(t, areas, 3)

	byQuarter := map[uint]AreaView{}
	for _, a := range areas {
		byQuarter[a.QuarterID] = a
	}

	akwa := byQuarter[f.QuarterA.ID]
	assert.True(t, akwa.Available)
	require.NotNil(t, akwa.Fee)
	assert.Equal(t, int64(500), *akwa.Fee)
	assert.Equal(t, "Douala", akwa.TownName)

	off := byQuarter[f.QuarterOff.ID]
	assert.False(t, off.Available)
	assert.Nil(t, off.Fee)
}

func TestHasPickup(t *testing.T) {
	f := newFixture(t)
	svc := f.deliveryService()

	ok, err := svc.HasPickup(f.Cook.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasPickup(f.OtherCook.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
