// Package domain defines the persistence models for car listings and
// reviews. These types are mapped with GORM, and their schema constraints
// (required fields, numeric bounds, enumerations) are expressed with
// go-playground/validator tags checked by the repository layer before
// every insert and update.
package domain

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance used by Car.Validate and
// Review.Validate. The validator is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Car represents a single car listing.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Make / Model / Color: required free-text attributes.
//   - Year: model year; 1886 is the first year a car existed.
//   - Mileage / Price: non-negative numbers.
//   - FuelType: one of Petrol, Diesel, Electric, Hybrid.
//   - Transmission: Automatic or Manual.
//   - Available: whether the listing is open; defaults to true on create.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Car struct {
	ID           string    `json:"id"           gorm:"type:char(36);primaryKey"`
	Make         string    `json:"make"         gorm:"type:varchar(64);not null"   validate:"required"`
	Model        string    `json:"model"        gorm:"type:varchar(64);not null"   validate:"required"`
	Year         int       `json:"year"         gorm:"not null"                    validate:"required,gte=1886"`
	Color        string    `json:"color"        gorm:"type:varchar(32);not null"   validate:"required"`
	Mileage      float64   `json:"mileage"      gorm:"not null"                    validate:"gte=0"`
	Price        float64   `json:"price"        gorm:"not null"                    validate:"gte=0"`
	FuelType     string    `json:"fuelType"     gorm:"type:varchar(16);not null"   validate:"required,oneof=Petrol Diesel Electric Hybrid"`
	Transmission string    `json:"transmission" gorm:"type:varchar(16);not null"   validate:"required,oneof=Automatic Manual"`
	Available    bool      `json:"available"    gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName returns the database table name for Car.
func (Car) TableName() string { return "cars" }

// Validate checks the car against its schema constraints. It returns
// validator.ValidationErrors on failure so the HTTP boundary can classify
// the condition as a validation error.
func (c *Car) Validate() error { return validate.Struct(c) }

// Review represents a user review of a car model. Reviews correlate to cars
// by matching make/model strings only; there is deliberately no foreign key
// to the cars table. A reviewer may review a given make/model once
// (unique index), which surfaces duplicate-key errors on repeats.
type Review struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	CarMake   string    `json:"carMake"   gorm:"type:varchar(64);not null;uniqueIndex:ux_review_car_reviewer,priority:1" validate:"required"`
	CarModel  string    `json:"carModel"  gorm:"type:varchar(64);not null;uniqueIndex:ux_review_car_reviewer,priority:2" validate:"required"`
	Reviewer  string    `json:"reviewer"  gorm:"type:varchar(64);not null;uniqueIndex:ux_review_car_reviewer,priority:3" validate:"required"`
	Rating    float64   `json:"rating"    gorm:"not null"                   validate:"required,gt=0,lte=10"`
	Comment   string    `json:"comment"   gorm:"type:text;not null"         validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the database table name for Review.
func (Review) TableName() string { return "reviews" }

// Validate checks the review against its schema constraints.
func (r *Review) Validate() error { return validate.Struct(r) }
