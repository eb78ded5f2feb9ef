package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"aurumpay.com/app/internal/http/middleware"
	"aurumpay.com/app/internal/modules/merchants"
	"aurumpay.com/app/internal/modules/transactions"
	"aurumpay.com/app/internal/shared/apperr"
)

// ReferenceHandler serves the read-only nomenclature lists.
type ReferenceHandler struct {
	DB *gorm.DB
}

func NewReferenceHandler(db *gorm.DB) *ReferenceHandler { return &ReferenceHandler{DB: db} }

func (h *ReferenceHandler) TransactionTypes(c *gin.Context) {
	out, err := transactions.NewRepo(h.DB).Types(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReferenceHandler) TransactionStatusTypes(c *gin.Context) {
	out, err := transactions.NewRepo(h.DB).StatusTypes(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReferenceHandler) MerchantStatusTypes(c *gin.Context) {
	out, err := merchants.NewRepo(h.DB).StatusTypes(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReferenceHandler) MerchantIdentifierTypes(c *gin.Context) {
	out, err := merchants.NewRepo(h.DB).IdentifierTypes(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, out)
}
