package domain

// CarPatch carries a partial update for a Car. Nil fields are left
// untouched; the merged record is re-validated before it is saved.
type CarPatch struct {
	Make         *string  `json:"make,omitempty"`
	Model        *string  `json:"model,omitempty"`
	Year         *int     `json:"year,omitempty"`
	Color        *string  `json:"color,omitempty"`
	Mileage      *float64 `json:"mileage,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	FuelType     *string  `json:"fuelType,omitempty"`
	Transmission *string  `json:"transmission,omitempty"`
	Available    *bool    `json:"available,omitempty"`
}

// Apply merges the patch into c.
func (p CarPatch) Apply(c *Car) {
	if p.Make != nil {
		c.Make = *p.Make
	}
	if p.Model != nil {
		c.Model = *p.Model
	}
	if p.Year != nil {
		c.Year = *p.Year
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Mileage != nil {
		c.Mileage = *p.Mileage
	}
	if p.Price != nil {
		c.Price = *p.Price
	}
	if p.FuelType != nil {
		c.FuelType = *p.FuelType
	}
	if p.Transmission != nil {
		c.Transmission = *p.Transmission
	}
	if p.Available != nil {
		c.Available = *p.Available
	}
}

// ReviewPatch carries a partial update for a Review.
type ReviewPatch struct {
	CarMake  *string  `json:"carMake,omitempty"`
	CarModel *string  `json:"carModel,omitempty"`
	Reviewer *string  `json:"reviewer,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
	Comment  *string  `json:"comment,omitempty"`
}

// Apply merges the patch into r.
func (p ReviewPatch) Apply(r *Review) {
	if p.CarMake != nil {
		r.CarMake = *p.CarMake
	}
	if p.CarModel != nil {
		r.CarModel = *p.CarModel
	}
	if p.Reviewer != nil {
		r.Reviewer = *p.Reviewer
	}
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Comment != nil {
		r.Comment = *p.Comment
	}
}
