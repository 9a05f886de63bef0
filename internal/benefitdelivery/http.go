// Package benefitdelivery manages delivery layer of benefits.
package benefitdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-ald/benefit-bank/internal/domain"
	"github.com/go-ald/benefit-bank/pkg/web"
)

// Service provides service layer interface needed by benefit delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package benefitdelivery
type Service interface {
	Create(ctx context.Context, name, description string, value decimal.Decimal, active bool) (domain.Benefit, error)
	Get(ctx context.Context, id int64) (domain.Benefit, error)
	List(ctx context.Context) ([]domain.Benefit, error)
	ListActive(ctx context.Context) ([]domain.Benefit, error)
	Update(ctx context.Context, id int64, name, description string, value decimal.Decimal, active bool) (domain.Benefit, error)
	Delete(ctx context.Context, id int64) error
}

// Handler facilitates benefit delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns benefit handler.
func NewHandler(bs Service) *Handler {
	return &Handler{service: bs}
}

type data struct {
	Benefit domain.Benefit `json:"benefit"`
}

type listData struct {
	Benefits []domain.Benefit `json:"benefits"`
}

type benefitRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Value       string `json:"value" binding:"required"`
	Active      *bool  `json:"active" binding:"required"`
}

type uriRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

func bindBody(gctx *gin.Context) (benefitRequest, decimal.Decimal, bool) {
	l := zerolog.Ctx(gctx.Request.Context())

	var req benefitRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		} else {
			errMsg = err.Error()
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return req, decimal.Decimal{}, false
	}

	value, err := decimal.NewFromString(req.Value)
	if err != nil || value.IsNegative() || !value.Equal(value.Round(2)) {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: "Value field must be a non-negative amount with at most 2 decimal places"})

		return req, decimal.Decimal{}, false
	}

	return req, value, true
}

func bindURI(gctx *gin.Context) (int64, bool) {
	l := zerolog.Ctx(gctx.Request.Context())

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		} else {
			errMsg = err.Error()
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return 0, false
	}

	return req.ID, true
}

func (h *Handler) writeError(gctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrBenefitNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case errors.Is(err, domain.ErrNameTaken):
		gctx.JSON(http.StatusConflict, web.Error(err))
	case errors.Is(err, domain.ErrNegativeBalance):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(domain.ErrInternal))
	}
}

// Create handles http request to create a benefit.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	req, value, ok := bindBody(gctx)
	if !ok {
		return
	}

	created, err := h.service.Create(ctx, req.Name, req.Description, value, *req.Active)
	if err != nil {
		l.Info().Err(err).Send()
		h.writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: data{Benefit: created}})
}

// Get handles http request to get one benefit, active or not.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	id, ok := bindURI(gctx)
	if !ok {
		return
	}

	b, err := h.service.Get(ctx, id)
	if err != nil {
		l.Info().Err(err).Send()
		h.writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{Benefit: b}})
}

// List handles http request to list all benefits.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	benefits, err := h.service.List(ctx)
	if err != nil {
		l.Info().Err(err).Send()
		h.writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: listData{Benefits: benefits}})
}

// ListActive handles http request to list active benefits only.
func (h *Handler) ListActive(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	benefits, err := h.service.ListActive(ctx)
	if err != nil {
		l.Info().Err(err).Send()
		h.writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: listData{Benefits: benefits}})
}

// Update handles http request to update a benefit.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	id, ok := bindURI(gctx)
	if !ok {
		return
	}

	req, value, ok := bindBody(gctx)
	if !ok {
		return
	}

	updated, err := h.service.Update(ctx, id, req.Name, req.Description, value, *req.Active)
	if err != nil {
		l.Info().Err(err).Send()
		h.writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{Benefit: updated}})
}

// Delete handles http request to soft delete a benefit.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	id, ok := bindURI(gctx)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		l.Info().Err(err).Send()
		h.writeError(gctx, err)

		return
	}

	gctx.Status(http.StatusNoContent)
}
