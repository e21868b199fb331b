package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corecraft/worldkit/pricing"
	"github.com/corecraft/worldkit/world"
)

func pricingWorld() *world.World {
	w := world.New()
	products := w.EnsureTable("product")
	products.Set("prod_1", world.Entity{"id": "prod_1", "name": "RTX 4070", "price": 100.0})
	products.Set("prod_2", world.Entity{"id": "prod_2", "name": "750W PSU", "price": 50.0})

	customers := w.EnsureTable("customer")
	customers.Set("cust_gold", world.Entity{"id": "cust_gold", "loyaltyTier": "Gold"})
	customers.Set("cust_none", world.Entity{"id": "cust_none"})
	return w
}

func Test_OrderTotals_Plain(t *testing.T) {
	q, err := pricing.OrderTotals(pricingWorld(), []string{"prod_1", "prod_2"}, pricing.Options{})
	require.NoError(t, err)

	require.Len(t, q.Items, 2)
	assert.Equal(t, "RTX 4070", q.Items[0].Name)
	assert.Equal(t, 1, q.Items[0].Quantity)
	assert.Equal(t, 100.0, q.Items[0].ItemTotal)

	assert.Equal(t, 150.0, q.Subtotal)
	assert.Equal(t, 0.0, q.Discounts.Total)
	assert.Nil(t, q.Discounts.LoyaltyTier)
	assert.Nil(t, q.Discounts.PromoCode)
	assert.Equal(t, 150.0, q.DiscountedSubtotal)
	assert.Equal(t, 0.08, q.TaxRate)
	assert.InDelta(t, 12.0, q.Tax, 1e-9)
	assert.InDelta(t, 162.0, q.GrandTotal, 1e-9)
}

func Test_OrderTotals_DiscountsAndShipping(t *testing.T) {
	q, err := pricing.OrderTotals(pricingWorld(), []string{"prod_1", "prod_2"}, pricing.Options{
		Quantities:   []int{2, 1},
		CustomerID:   "cust_gold",
		PromoCode:    "SAVE10",
		ShippingCost: 9.99,
	})
	require.NoError(t, err)

	assert.Equal(t, 250.0, q.Subtotal)

	// Gold takes 10%, the promo another flat 10%, both off the subtotal.
	require.NotNil(t, q.Discounts.LoyaltyTier)
	assert.Equal(t, "gold", *q.Discounts.LoyaltyTier)
	assert.InDelta(t, 25.0, q.Discounts.Loyalty, 1e-9)
	assert.InDelta(t, 25.0, q.Discounts.Promo, 1e-9)
	assert.InDelta(t, 50.0, q.Discounts.Total, 1e-9)

	assert.InDelta(t, 200.0, q.DiscountedSubtotal, 1e-9)
	assert.InDelta(t, 16.0, q.Tax, 1e-9)
	assert.Equal(t, 9.99, q.Shipping)
	assert.InDelta(t, 225.99, q.GrandTotal, 1e-9)
}

func Test_OrderTotals_UnknownTierAndCustomer(t *testing.T) {
	// A customer without a tier still echoes the (empty) tier but gets
	// no discount; an unknown customer gets neither.
	q, err := pricing.OrderTotals(pricingWorld(), []string{"prod_1"}, pricing.Options{CustomerID: "cust_none"})
	require.NoError(t, err)
	require.NotNil(t, q.Discounts.LoyaltyTier)
	assert.Equal(t, 0.0, q.Discounts.Loyalty)

	q, err = pricing.OrderTotals(pricingWorld(), []string{"prod_1"}, pricing.Options{CustomerID: "cust_missing"})
	require.NoError(t, err)
	assert.Nil(t, q.Discounts.LoyaltyTier)
	assert.Equal(t, 0.0, q.Discounts.Loyalty)
}

func Test_OrderTotals_SkipsUnknownProducts(t *testing.T) {
	q, err := pricing.OrderTotals(pricingWorld(), []string{"prod_1", "prod_missing"}, pricing.Options{})
	require.NoError(t, err)
	require.Len(t, q.Items, 1)
	assert.Equal(t, 100.0, q.Subtotal)
}

func Test_OrderTotals_CustomTaxRate(t *testing.T) {
	zero := 0.0
	q, err := pricing.OrderTotals(pricingWorld(), []string{"prod_2"}, pricing.Options{TaxRate: &zero})
	require.NoError(t, err)
	assert.Equal(t, 0.0, q.Tax)
	assert.Equal(t, 50.0, q.GrandTotal)
}

func Test_OrderTotals_QuantityMismatch(t *testing.T) {
	_, err := pricing.OrderTotals(pricingWorld(), []string{"prod_1", "prod_2"}, pricing.Options{
		Quantities: []int{1},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "same length")
}
