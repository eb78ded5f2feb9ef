package apphttp

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"aurumpay.com/app/internal/http/handlers"
	"aurumpay.com/app/internal/http/middleware"
	"aurumpay.com/app/internal/modules/merchants"
	"aurumpay.com/app/internal/modules/transactions"
)

func NewRouter(l *slog.Logger, db *gorm.DB, engine *transactions.Engine) *gin.Engine {
	r := gin.New()

	// ErrorHandler must run upstream of MerchantContext so a rejected
	// merchant header still gets an error body written.
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(l))
	r.Use(middleware.Recovery(l))
	r.Use(middleware.ErrorHandler(l))
	r.Use(middleware.MerchantContext())

	txh := handlers.NewTransactionsHandler(db, engine)
	mh := handlers.NewMerchantsHandler(db, merchants.NewService(db, l))
	refh := handlers.NewReferenceHandler(db)

	v1 := r.Group("/api/v1")
	{
		tx := v1.Group("/transactions")
		tx.POST("", middleware.RequireMerchant(), txh.Create)
		tx.GET("/:id", txh.GetByID)
		tx.POST("/search", txh.Search)

		m := v1.Group("/merchants")
		m.GET("/:id", mh.GetByID)
		m.POST("", mh.Create)
		m.PUT("/:id", mh.Update)
		m.DELETE("/:id", mh.Delete)
		m.POST("/search", mh.Search)

		ref := v1.Group("/reference")
		ref.GET("/transaction-types", refh.TransactionTypes)
		ref.GET("/transaction-status-types", refh.TransactionStatusTypes)
		ref.GET("/merchant-status-types", refh.MerchantStatusTypes)
		ref.GET("/merchant-identifier-types", refh.MerchantIdentifierTypes)
	}

	return r
}
