// Car HTTP handlers.
//
// This file exposes REST endpoints for car listings:
//   - GET    /cars          (list)
//   - GET    /cars/:id      (get by id)
//   - POST   /cars          (create, auth required)
//   - PUT    /cars/:id      (partial update, auth required)
//   - DELETE /cars/:id      (delete, auth required)
//
// Handlers are transport-thin: they validate identifiers and JSON shape,
// call application services, and delegate every failure to the error
// classifier. Schema validation of payload content happens in the
// persistence gateway.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-car-backend/internal/auth"
	"github.com/tbourn/go-car-backend/internal/domain"
	"github.com/tbourn/go-car-backend/internal/httperr"
	"github.com/tbourn/go-car-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// CarService defines car listing operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context.
type CarService interface {
	// Create persists a new listing and returns the stored record.
	Create(ctx context.Context, car *domain.Car) (*domain.Car, error)
	// List returns listings, newest first; limit <= 0 means all.
	List(ctx context.Context, limit, offset int) ([]domain.Car, error)
	// Get returns a single listing by ID.
	Get(ctx context.Context, id string) (*domain.Car, error)
	// Update merges a partial update and returns the post-update record.
	Update(ctx context.Context, id string, patch domain.CarPatch) (*domain.Car, error)
	// Delete removes a listing by ID.
	Delete(ctx context.Context, id string) error
}

// ReviewService defines review operations consumed by HTTP handlers.
type ReviewService interface {
	Create(ctx context.Context, rev *domain.Review) (*domain.Review, error)
	List(ctx context.Context, limit, offset int) ([]domain.Review, error)
	Get(ctx context.Context, id string) (*domain.Review, error)
	Update(ctx context.Context, id string, patch domain.ReviewPatch) (*domain.Review, error)
	Delete(ctx context.Context, id string) error
}

// LoginFlow defines the authentication state machine consumed by the auth
// handlers.
type LoginFlow interface {
	// Begin mints a pending session and returns the provider redirect URL.
	Begin(ctx context.Context) (*auth.Session, string, error)
	// Complete finishes the provider callback for the given session.
	Complete(ctx context.Context, sessionID, state, code string) (*auth.Session, error)
	// Logout destroys the session server-side.
	Logout(ctx context.Context, sessionID string) error
}

//
// Handler wiring
//

// Options carries the request-independent settings handlers need.
type Options struct {
	// Production hides raw error details from responses.
	Production bool
	// SessionSecret signs session cookies.
	SessionSecret string
	// SessionTTL bounds the session cookie max-age.
	SessionTTL time.Duration
	// FailureRedirect is where failed OAuth callbacks land.
	FailureRedirect string
}

// Handlers groups the HTTP endpoints for cars, reviews, and authentication.
type Handlers struct {
	carSvc    CarService
	reviewSvc ReviewService
	flow      LoginFlow

	production      bool
	sessionSecret   string
	sessionTTL      time.Duration
	failureRedirect string
}

// New constructs a Handlers instance bound to the given services and flow.
func New(carSvc CarService, reviewSvc ReviewService, flow LoginFlow, opt Options) *Handlers {
	return &Handlers{
		carSvc:          carSvc,
		reviewSvc:       reviewSvc,
		flow:            flow,
		production:      opt.Production,
		sessionSecret:   opt.SessionSecret,
		sessionTTL:      opt.SessionTTL,
		failureRedirect: opt.FailureRedirect,
	}
}

//
// DTOs
//

// CreateCarRequest is the JSON payload for creating a car listing. Schema
// constraints (required fields, bounds, enums) are enforced by the
// persistence gateway so that all validation failures classify uniformly.
type CreateCarRequest struct {
	Make         string  `json:"make"         example:"Toyota"`
	Model        string  `json:"model"        example:"Corolla"`
	Year         int     `json:"year"         example:"2020"`
	Color        string  `json:"color"        example:"White"`
	Mileage      float64 `json:"mileage"      example:"25000"`
	Price        float64 `json:"price"        example:"18000"`
	FuelType     string  `json:"fuelType"     example:"Petrol"`
	Transmission string  `json:"transmission" example:"Automatic"`
	// Available defaults to true when omitted.
	Available *bool `json:"available,omitempty" example:"true"`
}

// toDomain converts the request into a Car, applying the availability
// default.
func (r CreateCarRequest) toDomain() *domain.Car {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return &domain.Car{
		Make:         r.Make,
		Model:        r.Model,
		Year:         r.Year,
		Color:        r.Color,
		Mileage:      r.Mileage,
		Price:        r.Price,
		FuelType:     r.FuelType,
		Transmission: r.Transmission,
		Available:    available,
	}
}

//
// Helpers
//

// listParams parses the optional limit/offset query params; zero means no
// limit.
func listParams(c *gin.Context) (limit, offset int) {
	limit = utils.AtoiDefault(c.Query("limit"), 0)
	if limit < 0 {
		limit = 0
	}
	offset = utils.AtoiDefault(c.Query("offset"), 0)
	if offset < 0 {
		offset = 0
	}
	return
}

// pathID extracts and validates the :id path parameter. IDs are UUIDs; any
// other shape is the malformed-identifier condition and never reaches the
// store.
func pathID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", httperr.MalformedID(err)
	}
	return id, nil
}

//
// Handlers
//

// ListCars godoc
// @ID          listCars
// @Summary     List all cars
// @Description Returns all car listings, newest first.
// @Tags        Cars
// @Produce     json
// @Param       limit   query  int  false "Max results (0 = all)"  minimum(0)
// @Param       offset  query  int  false "Results to skip"        minimum(0)
// @Success     200  {array}   domain.Car
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /cars [get]
func (h *Handlers) ListCars(c *gin.Context) {
	limit, offset := listParams(c)
	cars, err := h.carSvc.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, cars)
}

// GetCar godoc
// @ID          getCar
// @Summary     Get a car by ID
// @Tags        Cars
// @Produce     json
// @Param       id  path  string  true  "Car ID (UUID)"  format(uuid)
// @Success     200  {object}  domain.Car
// @Failure     400  {object}  handlers.ErrorResponse "Invalid ID format"
// @Failure     404  {object}  handlers.ErrorResponse "Car not found"
// @Router      /cars/{id} [get]
func (h *Handlers) GetCar(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	car, err := h.carSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, car)
}

// CreateCar godoc
// @ID          createCar
// @Summary     Create a new car
// @Description Creates a car listing. Requires an authenticated session.
// @Tags        Cars
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateCarRequest  true  "Car payload"
// @Success     201  {object}  domain.Car
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse "Not logged in"
// @Router      /cars [post]
func (h *Handlers) CreateCar(c *gin.Context) {
	var req CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, httperr.Validation(err))
		return
	}
	car, err := h.carSvc.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, car)
}

// UpdateCar godoc
// @ID          updateCar
// @Summary     Update a car
// @Description Applies a partial update and returns the post-update record.
// @Tags        Cars
// @Accept      json
// @Produce     json
// @Param       id    path  string             true  "Car ID (UUID)"  format(uuid)
// @Param       body  body  domain.CarPatch    true  "Fields to update"
// @Success     200  {object}  domain.Car
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed or invalid ID"
// @Failure     401  {object}  handlers.ErrorResponse "Not logged in"
// @Failure     404  {object}  handlers.ErrorResponse "Car not found"
// @Router      /cars/{id} [put]
func (h *Handlers) UpdateCar(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var patch domain.CarPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.fail(c, httperr.Validation(err))
		return
	}
	car, err := h.carSvc.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, car)
}

// DeleteCar godoc
// @ID          deleteCar
// @Summary     Delete a car
// @Description Removes a car listing and returns a confirmation message.
// @Tags        Cars
// @Produce     json
// @Param       id  path  string  true  "Car ID (UUID)"  format(uuid)
// @Success     200  {object}  handlers.MessageResponse
// @Failure     400  {object}  handlers.ErrorResponse "Invalid ID format"
// @Failure     401  {object}  handlers.ErrorResponse "Not logged in"
// @Failure     404  {object}  handlers.ErrorResponse "Car not found"
// @Router      /cars/{id} [delete]
func (h *Handlers) DeleteCar(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.carSvc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, MessageResponse{Message: "Car deleted successfully"})
}
