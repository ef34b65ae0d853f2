package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pennywise-app/pennywise/internal/common"
	"github.com/pennywise-app/pennywise/internal/model"
)

func (h *handlers) listTransactions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if limit > 100 {
		limit = 100
	}

	result, err := h.deps.Storage.ListTransactions(c.Context(), currentUserID(c), page, limit)
	if err != nil {
		h.deps.Logger.Error("failed to list transactions", "error", err)
		return errorResponse(c, fiber.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch transactions")
	}

	resp := transactionPageResponse{
		Transactions: make([]transactionResponse, 0, len(result.Transactions)),
		Total:        result.Total,
		Page:         result.Page,
		Limit:        result.Limit,
		HasMore:      result.HasMore,
	}
	for i := range result.Transactions {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(&result.Transactions[i]))
	}

	return dataResponse(c, fiber.StatusOK, resp)
}

func (h *handlers) createTransaction(c *fiber.Ctx) error {
	var req createTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}

	date, err := req.validate()
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	}

	userID := currentUserID(c)

	txn := model.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Merchant:    req.Merchant,
		AmountCents: req.AmountCents,
		Date:        date,
		Description: req.Description,
	}

	if req.Category != "" {
		txn.Category = model.Category(req.Category)
	} else {
		result := h.deps.Classifier.Classify(c.Context(), userID, req.Merchant, req.AmountCents, req.Description)
		txn.Category = result.Category
		confidence := result.Confidence
		txn.AIConfidence = &confidence
	}

	if err := h.deps.Storage.CreateTransaction(c.Context(), &txn); err != nil {
		h.deps.Logger.Error("failed to create transaction", "error", err)
		return errorResponse(c, fiber.StatusInternalServerError, "DATABASE_ERROR", "Failed to create transaction")
	}

	return dataResponse(c, fiber.StatusCreated, toTransactionResponse(&txn))
}

func (h *handlers) updateTransaction(c *fiber.Ctx) error {
	var req updateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}
	if err := req.validate(); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	}

	userID := currentUserID(c)
	id := c.Params("id")

	existing, err := h.deps.Storage.GetTransaction(c.Context(), userID, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Transaction not found")
		}
		h.deps.Logger.Error("failed to fetch transaction", "error", err)
		return errorResponse(c, fiber.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch transaction")
	}

	// A manual category change teaches the rule learner before the row is
	// updated; the rule keys on the transaction's current merchant.
	if req.Category != nil && model.Category(*req.Category) != existing.Category {
		if err := h.deps.Learner.Reinforce(c.Context(), userID, existing.Merchant, model.Category(*req.Category)); err != nil {
			h.deps.Logger.Error("failed to reinforce category rule",
				"merchant", existing.Merchant,
				"error", err)
		}
	}

	if req.Merchant != nil {
		existing.Merchant = *req.Merchant
	}
	if req.AmountCents != nil {
		existing.AmountCents = *req.AmountCents
	}
	if req.Date != nil {
		date, _ := time.Parse(time.RFC3339, *req.Date)
		existing.Date = date
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Category != nil {
		existing.Category = model.Category(*req.Category)
	}

	if err := h.deps.Storage.UpdateTransaction(c.Context(), existing); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Transaction not found")
		}
		h.deps.Logger.Error("failed to update transaction", "error", err)
		return errorResponse(c, fiber.StatusInternalServerError, "DATABASE_ERROR", "Failed to update transaction")
	}

	return dataResponse(c, fiber.StatusOK, toTransactionResponse(existing))
}

func (h *handlers) deleteTransaction(c *fiber.Ctx) error {
	err := h.deps.Storage.DeleteTransaction(c.Context(), currentUserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Transaction not found")
		}
		h.deps.Logger.Error("failed to delete transaction", "error", err)
		return errorResponse(c, fiber.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete transaction")
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *handlers) categorize(c *fiber.Ctx) error {
	var req categorizeRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}
	if err := validateMerchant(req.Merchant); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	}
	if req.AmountCents <= 0 {
		return errorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "amount_cents must be a positive integer")
	}

	result := h.deps.Classifier.Classify(c.Context(), currentUserID(c), req.Merchant, req.AmountCents, req.Description)

	return dataResponse(c, fiber.StatusOK, categorizeResponse{
		Category:   string(result.Category),
		Confidence: result.Confidence,
		Source:     string(result.Source),
		Degraded:   result.Degraded,
	})
}
