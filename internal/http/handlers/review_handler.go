// Review HTTP handlers, mirroring the car endpoints:
//   - GET    /reviews          (list)
//   - GET    /reviews/:id      (get by id)
//   - POST   /reviews          (create, auth required)
//   - PUT    /reviews/:id      (partial update, auth required)
//   - DELETE /reviews/:id      (delete, auth required)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-car-backend/internal/domain"
	"github.com/tbourn/go-car-backend/internal/httperr"
)

// CreateReviewRequest is the JSON payload for creating a review. Reviews
// correlate to cars by make/model strings only; there is no foreign key.
type CreateReviewRequest struct {
	CarMake  string  `json:"carMake"  example:"Toyota"`
	CarModel string  `json:"carModel" example:"Corolla"`
	Reviewer string  `json:"reviewer" example:"John Doe"`
	Rating   float64 `json:"rating"   example:"8"`
	Comment  string  `json:"comment"  example:"Reliable and cheap to run."`
}

func (r CreateReviewRequest) toDomain() *domain.Review {
	return &domain.Review{
		CarMake:  r.CarMake,
		CarModel: r.CarModel,
		Reviewer: r.Reviewer,
		Rating:   r.Rating,
		Comment:  r.Comment,
	}
}

// ListReviews godoc
// @ID          listReviews
// @Summary     List all reviews
// @Tags        Reviews
// @Produce     json
// @Param       limit   query  int  false "Max results (0 = all)"  minimum(0)
// @Param       offset  query  int  false "Results to skip"        minimum(0)
// @Success     200  {array}   domain.Review
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /reviews [get]
func (h *Handlers) ListReviews(c *gin.Context) {
	limit, offset := listParams(c)
	reviews, err := h.reviewSvc.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, reviews)
}

// GetReview godoc
// @ID          getReview
// @Summary     Get a review by ID
// @Tags        Reviews
// @Produce     json
// @Param       id  path  string  true  "Review ID (UUID)"  format(uuid)
// @Success     200  {object}  domain.Review
// @Failure     400  {object}  handlers.ErrorResponse "Invalid ID format"
// @Failure     404  {object}  handlers.ErrorResponse "Review not found"
// @Router      /reviews/{id} [get]
func (h *Handlers) GetReview(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	rev, err := h.reviewSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, rev)
}

// CreateReview godoc
// @ID          createReview
// @Summary     Create a new review
// @Description Creates a review. A reviewer may review a given make/model
// @Description once; repeats surface as duplicate key errors.
// @Tags        Reviews
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateReviewRequest  true  "Review payload"
// @Success     201  {object}  domain.Review
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed or duplicate"
// @Failure     401  {object}  handlers.ErrorResponse "Not logged in"
// @Router      /reviews [post]
func (h *Handlers) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, httperr.Validation(err))
		return
	}
	rev, err := h.reviewSvc.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, rev)
}

// UpdateReview godoc
// @ID          updateReview
// @Summary     Update a review
// @Tags        Reviews
// @Accept      json
// @Produce     json
// @Param       id    path  string               true  "Review ID (UUID)"  format(uuid)
// @Param       body  body  domain.ReviewPatch   true  "Fields to update"
// @Success     200  {object}  domain.Review
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed or invalid ID"
// @Failure     401  {object}  handlers.ErrorResponse "Not logged in"
// @Failure     404  {object}  handlers.ErrorResponse "Review not found"
// @Router      /reviews/{id} [put]
func (h *Handlers) UpdateReview(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var patch domain.ReviewPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.fail(c, httperr.Validation(err))
		return
	}
	rev, err := h.reviewSvc.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, rev)
}

// DeleteReview godoc
// @ID          deleteReview
// @Summary     Delete a review
// @Tags        Reviews
// @Produce     json
// @Param       id  path  string  true  "Review ID (UUID)"  format(uuid)
// @Success     200  {object}  handlers.MessageResponse
// @Failure     400  {object}  handlers.ErrorResponse "Invalid ID format"
// @Failure     401  {object}  handlers.ErrorResponse "Not logged in"
// @Failure     404  {object}  handlers.ErrorResponse "Review not found"
// @Router      /reviews/{id} [delete]
func (h *Handlers) DeleteReview(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.reviewSvc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, MessageResponse{Message: "Review deleted successfully"})
}
