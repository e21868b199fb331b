// Package pricing computes order totals: line items, loyalty and promo
// discounts, tax and shipping.
package pricing

import (
	"math"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/corecraft/worldkit/world"
)

// DefaultTaxRate applies when the caller does not supply one.
const DefaultTaxRate = 0.08

// loyaltyRates are the per-tier discount fractions off the subtotal.
var loyaltyRates = map[string]float64{
	"silver":   0.05,
	"gold":     0.10,
	"platinum": 0.15,
}

// promoRate is a flat fraction applied whenever a promo code is present.
const promoRate = 0.10

// LineItem is one product line in a quote.
type LineItem struct {
	ProductID string  `json:"product_id"`
	Name      any     `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	ItemTotal float64 `json:"item_total"`
}

// Discounts breaks down the discount applied to a quote.
type Discounts struct {
	Loyalty     float64 `json:"loyalty"`
	LoyaltyTier *string `json:"loyalty_tier"`
	Promo       float64 `json:"promo"`
	PromoCode   *string `json:"promo_code"`
	Total       float64 `json:"total"`
}

// Quote is the result of OrderTotals, all money rounded to cents.
type Quote struct {
	Items              []LineItem `json:"items"`
	Subtotal           float64    `json:"subtotal"`
	Discounts          Discounts  `json:"discounts"`
	DiscountedSubtotal float64    `json:"discounted_subtotal"`
	Tax                float64    `json:"tax"`
	TaxRate            float64    `json:"tax_rate"`
	Shipping           float64    `json:"shipping"`
	GrandTotal         float64    `json:"grand_total"`
}

// Options carries the optional inputs of OrderTotals.
type Options struct {
	Quantities   []int
	CustomerID   string
	PromoCode    string
	ShippingCost float64
	TaxRate      *float64
}

// OrderTotals prices an order: subtotal over the listed products, loyalty
// discount by customer tier, a flat promo discount when a code is given, tax
// on the discounted subtotal and the caller-supplied shipping. Unknown
// product ids are skipped rather than failing the whole quote.
func OrderTotals(w *world.World, productIDs []string, opts Options) (*Quote, error) {
	quantities := opts.Quantities
	if quantities == nil {
		quantities = make([]int, len(productIDs))
		for i := range quantities {
			quantities[i] = 1
		}
	}
	if len(productIDs) != len(quantities) {
		return nil, errors.New("product_ids and quantities must have same length")
	}

	products := w.Table("product")
	items := []LineItem{}
	subtotal := 0.0
	for i, pid := range productIDs {
		product, ok := products.Get(pid)
		if !ok {
			continue
		}
		price := numericValue(product["price"])
		itemTotal := price * float64(quantities[i])
		items = append(items, LineItem{
			ProductID: pid,
			Name:      product["name"],
			Quantity:  quantities[i],
			UnitPrice: price,
			ItemTotal: round2(itemTotal),
		})
		subtotal += itemTotal
	}

	q := &Quote{Items: items, Subtotal: round2(subtotal)}

	if opts.CustomerID != "" {
		if customer, ok := w.Table("customer").Get(opts.CustomerID); ok {
			raw, _ := customer["loyaltyTier"].(string)
			tier := strings.ToLower(raw)
			q.Discounts.LoyaltyTier = &tier
			q.Discounts.Loyalty = subtotal * loyaltyRates[tier]
		}
	}
	if opts.PromoCode != "" {
		code := opts.PromoCode
		q.Discounts.PromoCode = &code
		q.Discounts.Promo = subtotal * promoRate
	}
	totalDiscount := q.Discounts.Loyalty + q.Discounts.Promo
	discounted := subtotal - totalDiscount

	taxRate := DefaultTaxRate
	if opts.TaxRate != nil {
		taxRate = *opts.TaxRate
	}
	tax := discounted * taxRate

	q.Discounts.Loyalty = round2(q.Discounts.Loyalty)
	q.Discounts.Promo = round2(q.Discounts.Promo)
	q.Discounts.Total = round2(totalDiscount)
	q.DiscountedSubtotal = round2(discounted)
	q.Tax = round2(tax)
	q.TaxRate = taxRate
	q.Shipping = round2(opts.ShippingCost)
	q.GrandTotal = round2(discounted + tax + opts.ShippingCost)
	return q, nil
}

func numericValue(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
