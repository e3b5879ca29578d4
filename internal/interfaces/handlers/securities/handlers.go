package securities

import (
	secsvc "titulos-console/internal/application/securities"

	"titulos-console/internal/pkg/response"
	"titulos-console/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service *secsvc.Service
}

// GET /api/v1/securities
func (h *Handlers) List(c *fiber.Ctx) error {
	in := secsvc.ListInput{
		Kind:         c.Query("kind"),
		Issuer:       c.Query("issuer"),
		Query:        c.Query("q"),
		MaturityFrom: c.Query("maturityFrom"),
		MaturityTo:   c.Query("maturityTo"),
		Sort:         c.Query("sort"),
		Order:        c.Query("order"),
		Limit:        c.QueryInt("limit", secsvc.DefaultLimit),
		Offset:       c.QueryInt("offset", 0),
	}

	if in.MaturityFrom != "" && !validation.IsValidMaturity(in.MaturityFrom) {
		return response.Unprocessable(c, "Invalid maturityFrom")
	}
	if in.MaturityTo != "" && !validation.IsValidMaturity(in.MaturityTo) {
		return response.Unprocessable(c, "Invalid maturityTo")
	}
	if raw := c.Query("rateMin"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return response.Unprocessable(c, "Invalid rateMin")
		}
		in.RateMin = &d
	}
	if raw := c.Query("rateMax"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return response.Unprocessable(c, "Invalid rateMax")
		}
		in.RateMax = &d
	}

	items, err := h.Service.List(c.Context(), in)
	if err != nil {
		return response.Detail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(items)
}

// GET /api/v1/securities/meta
func (h *Handlers) Meta(c *fiber.Ctx) error {
	meta, err := h.Service.Meta(c.Context())
	if err != nil {
		return response.Detail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(meta)
}

// GET /api/v1/securities/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Unprocessable(c, "Invalid security id")
	}
	sec, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if err == secsvc.ErrNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Detail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(sec)
}
