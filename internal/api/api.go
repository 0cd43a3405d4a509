// Package api exposes the debit card workflows over HTTP using fiber.
package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/bankcore/debit-card-service/internal/debit"
	"github.com/bankcore/debit-card-service/internal/logging"
)

// Handler binds the debit service to fiber routes.
type Handler struct {
	service *debit.Service
	logger  logging.Logger
}

// NewHandler builds the handler.
func NewHandler(service *debit.Service, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NoneLogger{}
	}

	return &Handler{service: service, logger: logger}
}

// Register mounts all routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", h.Health)

	cards := app.Group("/api/debit-cards")
	cards.Post("/", h.CreateCard)
	cards.Post("/associations", h.AssociateAccount)
	cards.Post("/transactions", h.ProcessWithdrawal)
	cards.Get("/customer/:customerId", h.GetCardByCustomer)
	cards.Get("/:id", h.GetCardByID)
}

// Health reports liveness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

type createCardRequest struct {
	CustomerID       string `json:"customerId"`
	PrimaryAccountID string `json:"primaryAccountId"`
}

// CreateCard handles POST /api/debit-cards.
func (h *Handler) CreateCard(c *fiber.Ctx) error {
	var req createCardRequest
	if err := c.BodyParser(&req); err != nil {
		return writeValidationError(c, "invalid request body")
	}

	if req.CustomerID == "" || req.PrimaryAccountID == "" {
		return writeValidationError(c, "customerId and primaryAccountId are required")
	}

	card, err := h.service.CreateCard(c.UserContext(), req.CustomerID, req.PrimaryAccountID)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(card)
}

type associateAccountRequest struct {
	CustomerID string `json:"customerId"`
	AccountID  string `json:"accountId"`
}

// AssociateAccount handles POST /api/debit-cards/associations.
func (h *Handler) AssociateAccount(c *fiber.Ctx) error {
	var req associateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return writeValidationError(c, "invalid request body")
	}

	if req.CustomerID == "" || req.AccountID == "" {
		return writeValidationError(c, "customerId and accountId are required")
	}

	card, err := h.service.AssociateAccount(c.UserContext(), req.CustomerID, req.AccountID)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(card)
}

type withdrawalRequest struct {
	DebitCardID string          `json:"debitCardId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// ProcessWithdrawal handles POST /api/debit-cards/transactions.
func (h *Handler) ProcessWithdrawal(c *fiber.Ctx) error {
	var req withdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return writeValidationError(c, "invalid request body")
	}

	if req.DebitCardID == "" {
		return writeValidationError(c, "debitCardId is required")
	}

	receipt, err := h.service.ProcessWithdrawal(c.UserContext(), req.DebitCardID, req.Amount, req.Description)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(receipt)
}

// GetCardByID handles GET /api/debit-cards/:id.
func (h *Handler) GetCardByID(c *fiber.Ctx) error {
	card, err := h.service.GetCardByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(card)
}

// GetCardByCustomer handles GET /api/debit-cards/customer/:customerId.
func (h *Handler) GetCardByCustomer(c *fiber.Ctx) error {
	card, err := h.service.GetActiveCardByCustomer(c.UserContext(), c.Params("customerId"))
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(card)
}
