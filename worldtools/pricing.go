package worldtools

import (
	"context"

	"github.com/corecraft/worldkit/pricing"
	"github.com/corecraft/worldkit/tools"
)

type CalculateOrderTotalsInput struct {
	ProductIDs   []string `json:"product_ids" jsonschema:"description=List of product IDs."`
	Quantities   []int    `json:"quantities,omitempty" jsonschema:"description=Quantities for each product; default 1 each."`
	CustomerID   string   `json:"customer_id,omitempty" jsonschema:"description=Customer ID to apply loyalty discounts."`
	PromoCode    string   `json:"promo_code,omitempty" jsonschema:"description=Promotional code to apply discount."`
	ShippingCost float64  `json:"shipping_cost,omitempty" jsonschema:"description=Shipping cost; default 0."`
	TaxRate      *float64 `json:"tax_rate,omitempty" jsonschema:"description=Tax rate as decimal; default 0.08."`
}

func NewCalculateOrderTotals(src Source) (tools.ITool, error) {
	return tools.NewFunc("calculate_order_totals",
		"Calculate comprehensive order totals including subtotal, loyalty/promo discounts, taxes, shipping, and grand total.",
		func(ctx context.Context, in *CalculateOrderTotalsInput) (*pricing.Quote, error) {
			w, err := src.World(ctx)
			if err != nil {
				return nil, err
			}
			return pricing.OrderTotals(w, in.ProductIDs, pricing.Options{
				Quantities:   in.Quantities,
				CustomerID:   in.CustomerID,
				PromoCode:    in.PromoCode,
				ShippingCost: in.ShippingCost,
				TaxRate:      in.TaxRate,
			})
		})
}
