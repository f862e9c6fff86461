package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finanzio/internal/errors"
	"finanzio/internal/services"
)

// ReportHandler handles transfers and financial summaries.
type ReportHandler struct {
	transferService services.TransferServicer
	reportService   services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(transferService services.TransferServicer, reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{transferService: transferService, reportService: reportService}
}

// TransferRequest represents the request payload for a wallet-to-wallet transfer
type TransferRequest struct {
	SourceWalletID string `json:"source_wallet_id" binding:"required,uuid_ref"`
	TargetWalletID string `json:"target_wallet_id" binding:"required,uuid_ref"`
	Amount         int64  `json:"amount" binding:"required,gt=0"`
	Description    string `json:"description" binding:"max=200"`
}

// TransferResponse represents the pair of ledger entries created by a transfer
type TransferResponse struct {
	OutTransaction TransactionResponse `json:"out_transaction"`
	InTransaction  TransactionResponse `json:"in_transaction"`
}

// SummaryResponse represents the aggregate financial summary
type SummaryResponse struct {
	Summary   services.FinancialSummary `json:"summary"`
	FromCache bool                      `json:"from_cache"`
}

// Transfer moves money between two wallets of the authenticated user
// @Summary     Transfer between wallets
// @Description Atomically move an amount between two owned wallets, recorded as a paired expense and income.
// @Tags        finance
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransferRequest true "Transfer details"
// @Success     201 {object} TransferResponse "Transfer recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Failure     500 {object} ErrorResponse "Transfer failed"
// @Router      /finance/transfer [post]
func (h *ReportHandler) Transfer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	legs, err := h.transferService.Transfer(
		c.Request.Context(),
		userID,
		req.SourceWalletID,
		req.TargetWalletID,
		req.Amount,
		req.Description,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TransferResponse{
		OutTransaction: toTransactionResponse(&legs[0]),
		InTransaction:  toTransactionResponse(&legs[1]),
	})
}

// GetSummary returns the user's financial summary
// @Summary     Get financial summary
// @Description Get income, expense, and net balance totals across all wallets. Served from cache when fresh.
// @Tags        finance
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} SummaryResponse "Financial summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /finance/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, fromCache, err := h.reportService.GetSummary(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Summary: *summary, FromCache: fromCache})
}
