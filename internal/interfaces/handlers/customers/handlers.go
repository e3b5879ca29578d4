package customers

import (
	custsvc "titulos-console/internal/application/customers"

	"titulos-console/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *custsvc.Service
}

type createCustomerBody struct {
	Name string `json:"name"`
}

type createAllocationBody struct {
	SecurityID string `json:"securityId"`
	Quantity   int    `json:"quantity"`
}

// POST /api/v1/customers
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body createCustomerBody
	if err := c.BodyParser(&body); err != nil {
		return response.Unprocessable(c, "Invalid request body")
	}
	customer, err := h.Service.Create(c.Context(), body.Name)
	if err != nil {
		if err == custsvc.ErrInvalidName {
			return response.Unprocessable(c, err.Error())
		}
		return response.Detail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// GET /api/v1/customers
func (h *Handlers) List(c *fiber.Ctx) error {
	customers, err := h.Service.List(c.Context())
	if err != nil {
		return response.Detail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(customers)
}

// GET /api/v1/customers/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Unprocessable(c, "Invalid customer id")
	}
	customer, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if err == custsvc.ErrNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Detail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(customer)
}

// GET /api/v1/customers/:id/allocations
func (h *Handlers) Allocations(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Unprocessable(c, "Invalid customer id")
	}
	out, err := h.Service.Allocations(c.Context(), id)
	if err != nil {
		if err == custsvc.ErrNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Detail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(out)
}

// POST /api/v1/customers/:id/allocations
func (h *Handlers) CreateAllocation(c *fiber.Ctx) error {
	customerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Unprocessable(c, "Invalid customer id")
	}
	var body createAllocationBody
	if err := c.BodyParser(&body); err != nil {
		return response.Unprocessable(c, "Invalid request body")
	}
	securityID, err := uuid.Parse(body.SecurityID)
	if err != nil {
		return response.Unprocessable(c, "Invalid security id")
	}

	created, err := h.Service.CreateAllocation(c.Context(), customerID, securityID, body.Quantity)
	if err != nil {
		switch err {
		case custsvc.ErrInvalidQuantity:
			return response.Unprocessable(c, err.Error())
		case custsvc.ErrNotFound, custsvc.ErrSecurityNotFound:
			return response.NotFound(c, err.Error())
		}
		return response.Detail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}
