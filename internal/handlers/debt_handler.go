package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finanzio/internal/errors"
	"finanzio/internal/models"
	"finanzio/internal/pagination"
	"finanzio/internal/services"
)

// DebtHandler handles debt ledger requests.
type DebtHandler struct {
	debtService services.DebtServicer
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtService services.DebtServicer) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// CreateDebtRequest represents the request payload for recording a debt
type CreateDebtRequest struct {
	ContactName  string  `json:"contact_name" binding:"required,max=100"`
	PhoneNumber  string  `json:"phone_number" binding:"max=32"`
	IsDebtToUser bool    `json:"is_debt_to_user"`
	TotalAmount  int64   `json:"total_amount" binding:"required,gt=0"`
	DueDate      *string `json:"due_date"`
}

// UpdateDebtRequest represents the request payload for updating a debt
type UpdateDebtRequest struct {
	AmountPaid *int64 `json:"amount_paid" binding:"omitempty,gte=0"`
	IsSettled  *bool  `json:"is_settled"`
}

// RecordPaymentRequest represents the request payload for a debt payment
type RecordPaymentRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// DebtResponse represents a debt ledger entry in the response
type DebtResponse struct {
	ID           string     `json:"id"`
	ContactName  string     `json:"contact_name"`
	PhoneNumber  string     `json:"phone_number,omitempty"`
	IsDebtToUser bool       `json:"is_debt_to_user"`
	TotalAmount  int64      `json:"total_amount"`
	AmountPaid   int64      `json:"amount_paid"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	IsSettled    bool       `json:"is_settled"`
}

func toDebtResponse(debt *models.DebtLedger) DebtResponse {
	return DebtResponse{
		ID:           debt.ID,
		ContactName:  debt.ContactName,
		PhoneNumber:  debt.PhoneNumber,
		IsDebtToUser: debt.IsDebtToUser,
		TotalAmount:  debt.TotalAmount,
		AmountPaid:   debt.AmountPaid,
		DueDate:      debt.DueDate,
		IsSettled:    debt.IsSettled,
	}
}

// CreateDebt records a new debt
// @Summary     Record a debt
// @Description Record money owed to or by the user
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateDebtRequest true "Debt details"
// @Success     201 {object} DebtResponse "Debt recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /debts [post]
func (h *DebtHandler) CreateDebt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, parseErr := parseFlexibleTime(*req.DueDate)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		dueDate = &parsed
	}

	debt, err := h.debtService.CreateDebt(userID, req.ContactName, req.PhoneNumber, req.IsDebtToUser, req.TotalAmount, dueDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toDebtResponse(debt))
}

// GetDebts returns the user's debt ledger
// @Summary     List debts
// @Description Get the authenticated user's debt ledger
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Page size" default(20)
// @Success     200 {object} pagination.PageResponse[DebtResponse] "Debts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /debts [get]
func (h *DebtHandler) GetDebts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	page.Defaults()

	result, err := h.debtService.GetUserDebts(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDebt returns a single debt by ID
// @Summary     Get a debt
// @Description Get a debt ledger entry by ID
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Debt ID"
// @Success     200 {object} DebtResponse "Debt"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Router      /debts/{id} [get]
func (h *DebtHandler) GetDebt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	debt, err := h.debtService.GetDebtByID(userID, debtID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDebtResponse(debt))
}

// UpdateDebt updates a debt's paid amount or settled flag
// @Summary     Update a debt
// @Description Update the amount paid or settled status of a debt
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Debt ID"
// @Param       request body UpdateDebtRequest true "Fields to update"
// @Success     200 {object} DebtResponse "Debt updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Router      /debts/{id} [put]
func (h *DebtHandler) UpdateDebt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt, err := h.debtService.UpdateDebt(userID, debtID, services.DebtUpdateFields{
		AmountPaid: req.AmountPaid,
		IsSettled:  req.IsSettled,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDebtResponse(debt))
}

// RecordPayment records a partial or full payment against a debt
// @Summary     Record a debt payment
// @Description Add a payment to a debt, settling it when fully paid
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Debt ID"
// @Param       request body RecordPaymentRequest true "Payment amount"
// @Success     200 {object} DebtResponse "Payment recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     409 {object} ErrorResponse "Debt already settled"
// @Router      /debts/{id}/payments [post]
func (h *DebtHandler) RecordPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt, err := h.debtService.RecordPayment(userID, debtID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDebtResponse(debt))
}

// DeleteDebt deletes a debt ledger entry
// @Summary     Delete a debt
// @Description Delete a debt ledger entry by ID
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Debt ID"
// @Success     200 {object} MessageResponse "Debt deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Router      /debts/{id} [delete]
func (h *DebtHandler) DeleteDebt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.debtService.DeleteDebt(userID, debtID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Debt deleted"})
}
