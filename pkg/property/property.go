// Package property defines the federal real-estate records indexed and
// scored by the engine, along with their validation rules.
package property

import (
	"time"
)

// OwnershipKind distinguishes government-owned buildings from leased ones.
type OwnershipKind string

const (
	OwnershipOwned  OwnershipKind = "owned"
	OwnershipLeased OwnershipKind = "leased"
)

// FederalProperty is a point-located federal real-estate record. Records are
// immutable once handed to the spatial index; a data refresh rebuilds the
// index wholesale rather than mutating records in place.
type FederalProperty struct {
	ID        string  `json:"id" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`

	// RSF is the rentable square footage of the building.
	RSF float64 `json:"rsf" validate:"gte=0"`

	Ownership OwnershipKind `json:"ownership" validate:"required,oneof=owned leased"`

	Vacant    bool    `json:"vacant"`
	VacantRSF float64 `json:"vacantRsf" validate:"gte=0,ltefield=RSF"`

	// LeaseExpiration is nil for owned buildings or when the inventory
	// source did not report a date.
	LeaseExpiration *time.Time `json:"leaseExpiration,omitempty"`

	// ConstructionYear is 0 when unknown.
	ConstructionYear int `json:"constructionYear,omitempty" validate:"omitempty,gte=1700,lte=2100"`

	Agency  string `json:"agency,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

// IsLeased reports whether the property is under a government lease.
func (p *FederalProperty) IsLeased() bool {
	return p.Ownership == OwnershipLeased
}

// LeaseExpiresWithin reports whether the property's lease expires in the
// window [now, now+d). Properties without an expiration date never match.
func (p *FederalProperty) LeaseExpiresWithin(now time.Time, d time.Duration) bool {
	if p.LeaseExpiration == nil {
		return false
	}
	exp := *p.LeaseExpiration
	return !exp.Before(now) && exp.Before(now.Add(d))
}

// BuiltWithin reports whether the property was constructed in the last
// `years` years relative to now. Unknown construction years never match.
func (p *FederalProperty) BuiltWithin(now time.Time, years int) bool {
	if p.ConstructionYear == 0 {
		return false
	}
	return now.Year()-p.ConstructionYear <= years
}
