package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-car-backend/internal/auth"
	"github.com/tbourn/go-car-backend/internal/domain"
	"github.com/tbourn/go-car-backend/internal/httperr"
)

// ---------- stubs ----------

type stubCarSvc struct {
	create func(context.Context, *domain.Car) (*domain.Car, error)
	list   func(context.Context, int, int) ([]domain.Car, error)
	get    func(context.Context, string) (*domain.Car, error)
	update func(context.Context, string, domain.CarPatch) (*domain.Car, error)
	del    func(context.Context, string) error
}

func (s stubCarSvc) Create(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	if s.create != nil {
		return s.create(ctx, car)
	}
	car.ID = uuid.NewString()
	return car, nil
}

func (s stubCarSvc) List(ctx context.Context, limit, offset int) ([]domain.Car, error) {
	if s.list != nil {
		return s.list(ctx, limit, offset)
	}
	return []domain.Car{}, nil
}

func (s stubCarSvc) Get(ctx context.Context, id string) (*domain.Car, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return &domain.Car{ID: id}, nil
}

func (s stubCarSvc) Update(ctx context.Context, id string, patch domain.CarPatch) (*domain.Car, error) {
	if s.update != nil {
		return s.update(ctx, id, patch)
	}
	return &domain.Car{ID: id}, nil
}

func (s stubCarSvc) Delete(ctx context.Context, id string) error {
	if s.del != nil {
		return s.del(ctx, id)
	}
	return nil
}

type stubReviewSvc struct {
	create func(context.Context, *domain.Review) (*domain.Review, error)
	list   func(context.Context, int, int) ([]domain.Review, error)
	get    func(context.Context, string) (*domain.Review, error)
	update func(context.Context, string, domain.ReviewPatch) (*domain.Review, error)
	del    func(context.Context, string) error
}

func (s stubReviewSvc) Create(ctx context.Context, rev *domain.Review) (*domain.Review, error) {
	if s.create != nil {
		return s.create(ctx, rev)
	}
	rev.ID = uuid.NewString()
	return rev, nil
}

func (s stubReviewSvc) List(ctx context.Context, limit, offset int) ([]domain.Review, error) {
	if s.list != nil {
		return s.list(ctx, limit, offset)
	}
	return []domain.Review{}, nil
}

func (s stubReviewSvc) Get(ctx context.Context, id string) (*domain.Review, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return &domain.Review{ID: id}, nil
}

func (s stubReviewSvc) Update(ctx context.Context, id string, patch domain.ReviewPatch) (*domain.Review, error) {
	if s.update != nil {
		return s.update(ctx, id, patch)
	}
	return &domain.Review{ID: id}, nil
}

func (s stubReviewSvc) Delete(ctx context.Context, id string) error {
	if s.del != nil {
		return s.del(ctx, id)
	}
	return nil
}

type stubFlow struct {
	begin    func(context.Context) (*auth.Session, string, error)
	complete func(context.Context, string, string, string) (*auth.Session, error)
	logout   func(context.Context, string) error
}

func (s stubFlow) Begin(ctx context.Context) (*auth.Session, string, error) {
	if s.begin != nil {
		return s.begin(ctx)
	}
	return &auth.Session{ID: "sess"}, "https://provider.example/authorize", nil
}

func (s stubFlow) Complete(ctx context.Context, sessionID, state, code string) (*auth.Session, error) {
	if s.complete != nil {
		return s.complete(ctx, sessionID, state, code)
	}
	return &auth.Session{
		ID: sessionID, State: auth.Authenticated,
		Identity: &auth.Identity{Login: "octocat"},
	}, nil
}

func (s stubFlow) Logout(ctx context.Context, sessionID string) error {
	if s.logout != nil {
		return s.logout(ctx, sessionID)
	}
	return nil
}

// ---------- harness ----------

func testOptions() Options {
	return Options{
		Production:      false,
		SessionSecret:   "test-secret",
		SessionTTL:      24 * time.Hour,
		FailureRedirect: "/",
	}
}

func newTestRouter(carSvc CarService, reviewSvc ReviewService, flow LoginFlow, opt Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(carSvc, reviewSvc, flow, opt)
	r := gin.New()
	r.GET("/cars", h.ListCars)
	r.GET("/cars/:id", h.GetCar)
	r.POST("/cars", h.CreateCar)
	r.PUT("/cars/:id", h.UpdateCar)
	r.DELETE("/cars/:id", h.DeleteCar)
	r.GET("/reviews", h.ListReviews)
	r.GET("/reviews/:id", h.GetReview)
	r.POST("/reviews", h.CreateReview)
	r.PUT("/reviews/:id", h.UpdateReview)
	r.DELETE("/reviews/:id", h.DeleteReview)
	r.GET("/login", h.Login)
	r.GET("/github/callback", h.Callback)
	r.GET("/logout", h.Logout)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("error body not json: %v (%s)", err, w.Body.String())
	}
	return e
}

// ---------- car endpoints ----------

func TestListCars_ForwardsPaging(t *testing.T) {
	var gotLimit, gotOffset int
	r := newTestRouter(stubCarSvc{
		list: func(_ context.Context, limit, offset int) ([]domain.Car, error) {
			gotLimit, gotOffset = limit, offset
			return []domain.Car{{ID: "a"}}, nil
		},
	}, stubReviewSvc{}, stubFlow{}, testOptions())

	w := doJSON(r, http.MethodGet, "/cars?limit=5&offset=10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotLimit != 5 || gotOffset != 10 {
		t.Fatalf("paging not forwarded: %d/%d", gotLimit, gotOffset)
	}

	var out []domain.Car
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || len(out) != 1 {
		t.Fatalf("bad body: %v %s", err, w.Body.String())
	}
}

func TestListCars_NegativeAndJunkPagingIgnored(t *testing.T) {
	var gotLimit, gotOffset int
	r := newTestRouter(stubCarSvc{
		list: func(_ context.Context, limit, offset int) ([]domain.Car, error) {
			gotLimit, gotOffset = limit, offset
			return nil, nil
		},
	}, stubReviewSvc{}, stubFlow{}, testOptions())

	doJSON(r, http.MethodGet, "/cars?limit=-2&offset=abc", nil)
	if gotLimit != 0 || gotOffset != 0 {
		t.Fatalf("junk paging leaked through: %d/%d", gotLimit, gotOffset)
	}
}

func TestGetCar_MalformedID(t *testing.T) {
	r := newTestRouter(stubCarSvc{
		get: func(context.Context, string) (*domain.Car, error) {
			t.Fatalf("service must not be called for a malformed id")
			return nil, nil
		},
	}, stubReviewSvc{}, stubFlow{}, testOptions())

	w := doJSON(r, http.MethodGet, "/cars/not-a-uuid", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	e := decodeError(t, w)
	if e.Error != httperr.MsgMalformedID || e.Code != "bad_request" {
		t.Fatalf("envelope = %+v", e)
	}
}

func TestGetCar_NotFound(t *testing.T) {
	r := newTestRouter(stubCarSvc{
		get: func(context.Context, string) (*domain.Car, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}, stubReviewSvc{}, stubFlow{}, testOptions())

	w := doJSON(r, http.MethodGet, "/cars/"+uuid.NewString(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	e := decodeError(t, w)
	if e.Error != httperr.MsgNotFound || e.Code != "not_found" {
		t.Fatalf("envelope = %+v", e)
	}
}

func TestCreateCar_DefaultsAvailableTrue(t *testing.T) {
	var created *domain.Car
	r := newTestRouter(stubCarSvc{
		create: func(_ context.Context, car *domain.Car) (*domain.Car, error) {
			created = car
			car.ID = uuid.NewString()
			return car, nil
		},
	}, stubReviewSvc{}, stubFlow{}, testOptions())

	payload := map[string]any{
		"make": "Toyota", "model": "Corolla", "year": 2020, "color": "White",
		"mileage": 25000, "price": 18000,
		"fuelType": "Petrol", "transmission": "Automatic",
		// "available" omitted
	}
	w := doJSON(r, http.MethodPost, "/cars", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if created == nil || !created.Available {
		t.Fatalf("available did not default to true: %+v", created)
	}

	var out domain.Car
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("body not a car: %v", err)
	}
	if !out.Available || out.ID == "" {
		t.Fatalf("response car: %+v", out)
	}
}

func TestCreateCar_ExplicitAvailableFalseKept(t *testing.T) {
	var created *domain.Car
	r := newTestRouter(stubCarSvc{
		create: func(_ context.Context, car *domain.Car) (*domain.Car, error) {
			created = car
			return car, nil
		},
	}, stubReviewSvc{}, stubFlow{}, testOptions())

	payload := map[string]any{
		"make": "Toyota", "model": "Corolla", "year": 2020, "color": "White",
		"fuelType": "Petrol", "transmission": "Automatic", "available": false,
	}
	if w := doJSON(r, http.MethodPost, "/cars", payload); w.Code != http.StatusCreated {
		t.Fatalf("status = %d", w.Code)
	}
	if created.Available {
		t.Fatalf("explicit false was overridden")
	}
}

func TestCreateCar_BadJSONIsValidation(t *testing.T) {
	r := newTestRouter(stubCarSvc{}, stubReviewSvc{}, stubFlow{}, testOptions())

	req := httptest.NewRequest(http.MethodPost, "/cars", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	e := decodeError(t, w)
	if e.Error != httperr.MsgValidation {
		t.Fatalf("envelope = %+v", e)
	}
	if e.Details == "" {
		t.Fatalf("details should be present outside production")
	}
}

func TestCreateCar_ServiceValidationError(t *testing.T) {
	r := newTestRouter(stubCarSvc{
		create: func(context.Context, *domain.Car) (*domain.Car, error) {
			c := domain.Car{}
			return nil, c.Validate()
		},
	}, stubReviewSvc{}, stubFlow{}, testOptions())

	payload := map[string]any{"make": "Toyota"}
	w := doJSON(r, http.MethodPost, "/cars", payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if e := decodeError(t, w); e.Error != httperr.MsgValidation {
		t.Fatalf("envelope = %+v", e)
	}
}

func TestUpdateCar_ForwardsPatch(t *testing.T) {
	var gotID string
	var gotPatch domain.CarPatch
	r := newTestRouter(stubCarSvc{
		update: func(_ context.Context, id string, patch domain.CarPatch) (*domain.Car, error) {
			gotID, gotPatch = id, patch
			return &domain.Car{ID: id, Price: *patch.Price}, nil
		},
	}, stubReviewSvc{}, stubFlow{}, testOptions())

	id := uuid.NewString()
	w := doJSON(r, http.MethodPut, "/cars/"+id, map[string]any{"price": 15500})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if gotID != id || gotPatch.Price == nil || *gotPatch.Price != 15500 {
		t.Fatalf("patch not forwarded: id=%q patch=%+v", gotID, gotPatch)
	}
	if gotPatch.Make != nil || gotPatch.Available != nil {
		t.Fatalf("unset fields should stay nil: %+v", gotPatch)
	}
}

func TestDeleteCar_ReturnsConfirmation(t *testing.T) {
	r := newTestRouter(stubCarSvc{}, stubReviewSvc{}, stubFlow{}, testOptions())

	w := doJSON(r, http.MethodDelete, "/cars/"+uuid.NewString(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var out MessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || out.Message != "Car deleted successfully" {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestDeleteCar_MissReturnsNotFound(t *testing.T) {
	r := newTestRouter(stubCarSvc{
		del: func(context.Context, string) error { return gorm.ErrRecordNotFound },
	}, stubReviewSvc{}, stubFlow{}, testOptions())

	w := doJSON(r, http.MethodDelete, "/cars/"+uuid.NewString(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

// ---------- error envelope modes ----------

func TestFail_ProductionHidesDetails(t *testing.T) {
	opt := testOptions()
	opt.Production = true
	r := newTestRouter(stubCarSvc{
		get: func(context.Context, string) (*domain.Car, error) {
			return nil, errors.New("sensitive driver detail")
		},
	}, stubReviewSvc{}, stubFlow{}, opt)

	w := doJSON(r, http.MethodGet, "/cars/"+uuid.NewString(), nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	e := decodeError(t, w)
	if e.Error != httperr.MsgInternal {
		t.Fatalf("message = %q", e.Error)
	}
	if e.Details != "" {
		t.Fatalf("details leaked in production: %q", e.Details)
	}
	if strings.Contains(w.Body.String(), "sensitive driver detail") {
		t.Fatalf("raw error leaked: %s", w.Body.String())
	}
}

func TestFail_DevelopmentShowsDetails(t *testing.T) {
	r := newTestRouter(stubCarSvc{
		get: func(context.Context, string) (*domain.Car, error) {
			return nil, errors.New("driver detail")
		},
	}, stubReviewSvc{}, stubFlow{}, testOptions())

	w := doJSON(r, http.MethodGet, "/cars/"+uuid.NewString(), nil)
	if e := decodeError(t, w); e.Details != "driver detail" {
		t.Fatalf("details = %q", e.Details)
	}
}
