package transactions

import (
	"context"

	"gorm.io/gorm"

	"aurumpay.com/app/internal/shared/search"
)

var searchFields = map[string]string{
	"id":                     "id",
	"typeId":                 "type_id",
	"statusTypeId":           "status_id",
	"amount":                 "amount",
	"errorReason":            "error_reason",
	"referenceId":            "reference_id",
	"customerEmail":          "customer_email",
	"customerPhone":          "customer_phone",
	"merchantId":             "merchant_id",
	"belongsToTransactionId": "belongs_to_transaction_id",
	"createdDate":            "created_at",
}

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

type SearchResult struct {
	Items []Transaction
	Total int64
}

// Search applies the caller's criteria; merchant-scoped callers always
// get a forced merchant_id filter on top of whatever they sent.
func (r *Repo) Search(ctx context.Context, req search.Request, page, size int, enforceMerchantID *int64) (SearchResult, error) {
	if page < 0 {
		page = 0
	}
	if size < 1 || size > 100 {
		size = 10
	}

	q := r.db.WithContext(ctx).Model(&Transaction{})
	if len(req.Criteria) > 0 {
		group, err := search.Filter(r.db.WithContext(ctx).Model(&Transaction{}), req, searchFields)
		if err != nil {
			return SearchResult{}, err
		}
		q = q.Where(group)
	}
	if enforceMerchantID != nil {
		q = q.Where("merchant_id = ?", *enforceMerchantID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return SearchResult{}, err
	}

	order, err := search.OrderClause(req, searchFields)
	if err != nil {
		return SearchResult{}, err
	}
	if order == "" {
		order = "created_at DESC"
	}

	var items []Transaction
	if err := q.Order(order).Limit(size).Offset(page * size).Find(&items).Error; err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Items: items, Total: total}, nil
}

func (r *Repo) Types(ctx context.Context) ([]TransactionType, error) {
	var out []TransactionType
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) StatusTypes(ctx context.Context) ([]TransactionStatusType, error) {
	var out []TransactionStatusType
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
