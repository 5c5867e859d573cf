package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProductFilter selects bookings by product kind, down to the concrete
// rental or special-service subtype.
type ProductFilter string

const (
	FilterExcursion       ProductFilter = "EXCURSION"
	FilterTransfer        ProductFilter = "TRANSFER"
	FilterRentalCar       ProductFilter = "RENTAL_CAR"
	FilterRentalMoto      ProductFilter = "RENTAL_MOTO"
	FilterRentalBoat      ProductFilter = "RENTAL_BOAT"
	FilterSpecialBracelet ProductFilter = "SPECIAL_BRACELET"
	FilterSpecialCityTax  ProductFilter = "SPECIAL_CITY_TAX"
	FilterSpecialAC       ProductFilter = "SPECIAL_AC"
)

// ReportFilter narrows the booking set fed to a report. All criteria are
// optional and AND-combined; within one set the values are OR'd.
//
// The data layer applies the coarse criteria only. Rental and special
// subtypes depend on inference over legacy rows, so the report engine
// re-checks them per booking after the fetch.
type ReportFilter struct {
	From *time.Time `json:"from,omitempty"`
	// To is inclusive of the whole end day.
	To *time.Time `json:"to,omitempty"`

	ProductTypes []ProductFilter `json:"product_types,omitempty"`
	AgencyIDs    []uuid.UUID     `json:"agency_ids,omitempty"`
	AssistantIDs []uuid.UUID     `json:"assistant_ids,omitempty"`
	ExcursionIDs []uuid.UUID     `json:"excursion_ids,omitempty"`
	Suppliers    []string        `json:"suppliers,omitempty"`
}
