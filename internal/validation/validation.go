// Package validation checks client input before it reaches the store.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"address-api/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	// MaxDecimalPlaces is the coordinate precision kept at rest.
	MaxDecimalPlaces = 6

	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// ValidationError reports the first offending input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateAddress checks the input and returns the address it describes.
// The returned address has no id; the store assigns one.
func ValidateAddress(in models.AddressInput) (models.Address, error) {
	if err := validate.Struct(in); err != nil {
		return models.Address{}, translate(err)
	}

	if strings.TrimSpace(in.Name) == "" {
		return models.Address{}, &ValidationError{Field: "name", Message: "must not be blank"}
	}
	if !hasPrecision(*in.Latitude, MaxDecimalPlaces) {
		return models.Address{}, precisionError("latitude")
	}
	if !hasPrecision(*in.Longitude, MaxDecimalPlaces) {
		return models.Address{}, precisionError("longitude")
	}

	return models.Address{
		Name:      in.Name,
		Latitude:  *in.Latitude,
		Longitude: *in.Longitude,
	}, nil
}

// ValidateProximityQuery parses the raw lat, lon and distance query values.
// A negative distance is not an error; it simply matches nothing.
func ValidateProximityQuery(lat, lon, distance string) (models.ProximityQuery, error) {
	latitude, err := parseRequired("lat", lat)
	if err != nil {
		return models.ProximityQuery{}, err
	}
	longitude, err := parseRequired("lon", lon)
	if err != nil {
		return models.ProximityQuery{}, err
	}
	radius, err := parseRequired("distance", distance)
	if err != nil {
		return models.ProximityQuery{}, err
	}

	if latitude < minLatitude || latitude > maxLatitude {
		return models.ProximityQuery{}, &ValidationError{Field: "lat", Message: "must be between -90 and 90"}
	}
	if longitude < minLongitude || longitude > maxLongitude {
		return models.ProximityQuery{}, &ValidationError{Field: "lon", Message: "must be between -180 and 180"}
	}
	return models.ProximityQuery{Latitude: latitude, Longitude: longitude, DistanceKm: radius}, nil
}

func parseRequired(field, raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, &ValidationError{Field: field, Message: "is required"}
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &ValidationError{Field: field, Message: "must be a number"}
	}
	return value, nil
}

// hasPrecision reports whether the shortest decimal form of v has at most
// places digits after the point.
func hasPrecision(v float64, places int) bool {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return true
	}
	return len(s)-dot-1 <= places
}

func precisionError(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must have at most %d decimal places", MaxDecimalPlaces),
	}
}

func translate(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validation: %w", err)
	}

	fe := fieldErrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "max":
		msg = fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		msg = "must be greater than or equal to " + fe.Param()
	case "lte":
		msg = "must be less than or equal to " + fe.Param()
	default:
		msg = "is invalid"
	}

	return &ValidationError{Field: fe.Field(), Message: msg}
}
