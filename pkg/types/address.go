package types

import "strings"

// DeliveryAddress is the shipping destination captured during checkout and
// held in the shopper's address book.
type DeliveryAddress struct {
	FullName   string   `json:"full_name"`
	Phone      string   `json:"phone"`
	Street     string   `json:"address"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PostalCode string   `json:"zip_code"`
	Country    string   `json:"country"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
}

// Matches reports whether two addresses point at the same destination. The
// remote address book is joined on street, city, and postal code only.
func (a DeliveryAddress) Matches(other DeliveryAddress) bool {
	return strings.TrimSpace(a.Street) == strings.TrimSpace(other.Street) &&
		strings.TrimSpace(a.City) == strings.TrimSpace(other.City) &&
		strings.TrimSpace(a.PostalCode) == strings.TrimSpace(other.PostalCode)
}
