package domain

import (
	"strings"

	"github.com/google/uuid"
)

// listingNamespace scopes listing ids so the same address always maps to the
// same id across reloads and sources.
var listingNamespace = uuid.MustParse("6f1c2a7e-8d4b-4f0a-9b1e-3c5d7e9f1a2b")

// Listing is one row of the upstream listing data source.
type Listing struct {
	ID           string   `json:"id"`
	StreetNumber string   `json:"street_number"`
	StreetName   string   `json:"street_name"`
	Town         string   `json:"town"`
	Units        int      `json:"units"`
	ListPrice    float64  `json:"list_price"`
	DaysOnMarket int      `json:"days_on_market"`
	GrossRents   *float64 `json:"gross_rents,omitempty"` // monthly, per unit
	Taxes        *float64 `json:"taxes,omitempty"`       // annual
	PricePerUnit float64  `json:"price_per_unit"`
	FullAddress  string   `json:"full_address"`
}

// NewListingID derives a stable id from the address and town.
func NewListingID(fullAddress, town string) string {
	key := strings.ToLower(strings.TrimSpace(fullAddress) + "|" + strings.TrimSpace(town))
	return uuid.NewSHA1(listingNamespace, []byte(key)).String()
}

// FullAddress joins street number and name the way listings are displayed.
func FullAddress(streetNumber, streetName string) string {
	return strings.TrimSpace(strings.TrimSpace(streetNumber) + " " + strings.TrimSpace(streetName))
}
