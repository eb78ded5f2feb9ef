package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"aurumpay.com/app/internal/http/middleware"
	"aurumpay.com/app/internal/http/validation"
	"aurumpay.com/app/internal/modules/transactions"
	"aurumpay.com/app/internal/shared/apperr"
	"aurumpay.com/app/internal/shared/search"
)

type TransactionsHandler struct {
	DB     *gorm.DB
	Engine *transactions.Engine
}

func NewTransactionsHandler(db *gorm.DB, engine *transactions.Engine) *TransactionsHandler {
	return &TransactionsHandler{DB: db, Engine: engine}
}

// Create handles POST /api/v1/transactions. The acting merchant comes
// from the request context, never from the body.
func (h *TransactionsHandler) Create(c *gin.Context) {
	merchantID, ok := middleware.MerchantID(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Merchant identity required."))
		return
	}

	var req transactions.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", validation.FromBindError(err, &req)))
		return
	}

	res, err := h.Engine.Create(c.Request.Context(), req, merchantID)
	if err != nil {
		middleware.Fail(c, mapTransactionError(err))
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GetByID handles GET /api/v1/transactions/:id. Merchant callers only see
// their own transactions; the scoping makes foreign rows look absent.
func (h *TransactionsHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid transaction ID.", nil))
		return
	}

	res, err := h.Engine.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.Fail(c, mapTransactionError(err))
		return
	}

	if mid, ok := middleware.MerchantID(c); ok && res.MerchantID != mid {
		middleware.Fail(c, apperr.NotFoundErr("Transaction does not exist."))
		return
	}
	c.JSON(http.StatusOK, res)
}

type searchResponse struct {
	Data  any   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"pageNum"`
	Size  int   `json:"pageSize"`
}

// Search handles POST /api/v1/transactions/search.
func (h *TransactionsHandler) Search(c *gin.Context) {
	page, size := pageParams(c)

	var req search.Request
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.Fail(c, apperr.InvalidErr("Invalid search request.", validation.FromBindError(err, &req)))
			return
		}
	}

	var enforce *int64
	if mid, ok := middleware.MerchantID(c); ok {
		enforce = &mid
	}

	result, err := transactions.NewRepo(h.DB).Search(c.Request.Context(), req, page, size, enforce)
	if err != nil {
		middleware.Fail(c, mapTransactionError(err))
		return
	}

	c.JSON(http.StatusOK, searchResponse{
		Data:  result.Items,
		Total: result.Total,
		Page:  page,
		Size:  size,
	})
}

func mapTransactionError(err error) error {
	var ve *transactions.ValidationError
	if errors.As(err, &ve) {
		return apperr.InvalidErr(ve.Message, nil)
	}
	var bc *search.BadCriteriaError
	if errors.As(err, &bc) {
		return apperr.InvalidErr(bc.Error(), nil)
	}
	if errors.Is(err, transactions.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFoundErr("Transaction does not exist.")
	}
	if transactions.IsDuplicateKey(err) {
		return apperr.ConflictErr("A conflicting transaction already exists.")
	}
	if transactions.IsLockConflict(err) {
		return apperr.ConflictErr("The transaction could not be processed due to a concurrent update. Retry the request.")
	}
	return apperr.Wrap(err)
}
