package domain

// Product is one sellable product on a business type's menu
type Product struct {
	ID                string `json:"id" validate:"required"`
	Name              string `json:"name" validate:"required"`
	PriceCents        Money  `json:"price_cents" validate:"gt=0"`
	ConsumesInventory bool   `json:"consumes_inventory"`
	InventoryItem     string `json:"inventory_item" validate:"required_if=ConsumesInventory true"`
	UnitsPerSale      int    `json:"units_per_sale" validate:"gte=0"`
}

// Guide is the narrator character attached to a business type
type Guide struct {
	Name string `json:"name" validate:"required"`
	Tone string `json:"tone" validate:"required"`
}

// BusinessType is an immutable catalog entry: the template a business is
// created from. Read-only after load.
type BusinessType struct {
	ID                   string    `json:"id" validate:"required"`
	Category             string    `json:"category" validate:"required"`
	DisplayName          string    `json:"display_name" validate:"required"`
	StartingCapitalCents Money     `json:"starting_capital_cents" validate:"gt=0"`
	OpenHour             int       `json:"open_hour" validate:"gte=0,lte=23"`
	CloseHour            int       `json:"close_hour" validate:"gte=0,lte=23"`
	Guide                Guide     `json:"guide"`
	Products             []Product `json:"products" validate:"min=1,dive"`

	// StartingInventory seeds the business inventory at creation.
	StartingInventory map[string]int `json:"starting_inventory,omitempty"`

	// DemandCurve maps simulated hour (0-23) to a relative demand weight.
	// Missing hours default to baseline demand.
	DemandCurve map[int]float64 `json:"demand_curve,omitempty"`
}

// ProductByID returns the product definition for a line item, or nil
func (bt *BusinessType) ProductByID(id string) *Product {
	for i := range bt.Products {
		if bt.Products[i].ID == id {
			return &bt.Products[i]
		}
	}
	return nil
}
