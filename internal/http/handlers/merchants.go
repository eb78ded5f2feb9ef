package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"aurumpay.com/app/internal/http/middleware"
	"aurumpay.com/app/internal/http/validation"
	"aurumpay.com/app/internal/modules/merchants"
	"aurumpay.com/app/internal/modules/transactions"
	"aurumpay.com/app/internal/shared/apperr"
	"aurumpay.com/app/internal/shared/search"
)

type MerchantsHandler struct {
	DB  *gorm.DB
	Svc *merchants.Service
}

func NewMerchantsHandler(db *gorm.DB, svc *merchants.Service) *MerchantsHandler {
	return &MerchantsHandler{DB: db, Svc: svc}
}

type merchantResponse struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	Email               string  `json:"email"`
	StatusTypeID        string  `json:"statusTypeId"`
	IdentifierTypeID    *string `json:"identifierTypeId,omitempty"`
	IdentifierValue     *string `json:"identifierValue,omitempty"`
	TotalTransactionSum string  `json:"totalTransactionSum"`
	Version             int     `json:"version"`
}

func toMerchantResponse(m merchants.Merchant) merchantResponse {
	return merchantResponse{
		ID:                  m.ID,
		Name:                m.Name,
		Email:               m.Email,
		StatusTypeID:        m.StatusID,
		IdentifierTypeID:    m.IdentifierTypeID,
		IdentifierValue:     m.IdentifierValue,
		TotalTransactionSum: m.TotalTransactionSum.StringFixed(2),
		Version:             m.Version,
	}
}

func (h *MerchantsHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid merchant ID.", nil))
		return
	}

	m, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.Fail(c, mapMerchantError(err))
		return
	}
	c.JSON(http.StatusOK, toMerchantResponse(m))
}

func (h *MerchantsHandler) Create(c *gin.Context) {
	var in merchants.MerchantInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", validation.FromBindError(err, &in)))
		return
	}

	m, err := h.Svc.Add(c.Request.Context(), in)
	if err != nil {
		middleware.Fail(c, mapMerchantError(err))
		return
	}
	c.JSON(http.StatusCreated, toMerchantResponse(m))
}

type merchantUpdateRequest struct {
	merchants.MerchantInput
	Version int `json:"version" binding:"required,min=1"`
}

func (h *MerchantsHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid merchant ID.", nil))
		return
	}

	var req merchantUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", validation.FromBindError(err, &req)))
		return
	}

	m, err := h.Svc.Update(c.Request.Context(), id, req.MerchantInput, req.Version)
	if err != nil {
		middleware.Fail(c, mapMerchantError(err))
		return
	}
	c.JSON(http.StatusOK, toMerchantResponse(m))
}

func (h *MerchantsHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid merchant ID.", nil))
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		middleware.Fail(c, mapMerchantError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// Search handles POST /api/v1/merchants/search. Merchant-scoped callers
// only ever see their own row.
func (h *MerchantsHandler) Search(c *gin.Context) {
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

	result, err := merchants.NewRepo(h.DB).Search(c.Request.Context(), req, page, size, enforce)
	if err != nil {
		middleware.Fail(c, mapMerchantError(err))
		return
	}

	items := make([]merchantResponse, len(result.Items))
	for i, m := range result.Items {
		items[i] = toMerchantResponse(m)
	}
	c.JSON(http.StatusOK, searchResponse{
		Data:  items,
		Total: result.Total,
		Page:  page,
		Size:  size,
	})
}

func mapMerchantError(err error) error {
	var bc *search.BadCriteriaError
	if errors.As(err, &bc) {
		return apperr.InvalidErr(bc.Error(), nil)
	}
	switch {
	case errors.Is(err, merchants.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFoundErr("Merchant does not exist.")
	case errors.Is(err, merchants.ErrHasTransactions):
		return apperr.ConflictErr("Merchant has transactions and cannot be deleted.")
	case errors.Is(err, merchants.ErrVersionConflict):
		return apperr.ConflictErr("Merchant was modified by another request. Reload and retry.")
	case errors.Is(err, merchants.ErrUnknownStatus):
		return apperr.InvalidErr("Unknown value for property [statusTypeId].", nil)
	case errors.Is(err, merchants.ErrUnknownIdentifierType):
		return apperr.InvalidErr("Unknown value for property [identifierTypeId].", nil)
	case transactions.IsDuplicateKey(err):
		return apperr.ConflictErr("A merchant with the same email or identifier already exists.")
	default:
		return apperr.Wrap(err)
	}
}

func pageParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("pageNum", "0"))
	size, _ = strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	return page, size
}
