package models

import "errors"

// ErrAddressNotFound is returned when no address exists for the requested id.
var ErrAddressNotFound = errors.New("address not found")

// Address is a named geographic point persisted by the store.
type Address struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AddressInput is the request body accepted on create and update.
// Coordinates are pointers so a missing field can be told apart from zero.
type AddressInput struct {
	Name      string   `json:"name"      validate:"required,max=255"`
	Latitude  *float64 `json:"latitude"  validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

// ProximityQuery describes a radius search around a reference point.
type ProximityQuery struct {
	Latitude   float64
	Longitude  float64
	DistanceKm float64
}
