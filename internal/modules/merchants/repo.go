package merchants

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"aurumpay.com/app/internal/shared/search"
)

// searchFields is the API-property -> column whitelist for merchant search.
var searchFields = map[string]string{
	"id":                  "id",
	"name":                "name",
	"email":               "email",
	"statusTypeId":        "status_id",
	"identifierTypeId":    "identifier_type_id",
	"identifierValue":     "identifier_value",
	"totalTransactionSum": "total_transaction_sum",
	"createdDate":         "created_at",
}

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) GetByID(ctx context.Context, id int64) (Merchant, error) {
	var m Merchant
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Merchant{}, ErrNotFound
		}
		return Merchant{}, err
	}
	return m, nil
}

type SearchResult struct {
	Items []Merchant
	Total int64
}

// Search applies caller-provided criteria. When enforceID is non-nil the
// result set is always restricted to that merchant, regardless of filters.
func (r *Repo) Search(ctx context.Context, req search.Request, page, size int, enforceID *int64) (SearchResult, error) {
	if page < 0 {
		page = 0
	}
	if size < 1 || size > 100 {
		size = 10
	}

	q := r.db.WithContext(ctx).Model(&Merchant{})
	if len(req.Criteria) > 0 {
		group, err := search.Filter(r.db.WithContext(ctx).Model(&Merchant{}), req, searchFields)
		if err != nil {
			return SearchResult{}, err
		}
		q = q.Where(group)
	}
	if enforceID != nil {
		q = q.Where("id = ?", *enforceID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return SearchResult{}, err
	}

	order, err := search.OrderClause(req, searchFields)
	if err != nil {
		return SearchResult{}, err
	}
	if order != "" {
		q = q.Order(order)
	}

	var items []Merchant
	if err := q.Limit(size).Offset(page * size).Find(&items).Error; err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Items: items, Total: total}, nil
}

func (r *Repo) StatusTypes(ctx context.Context) ([]MerchantStatusType, error) {
	var out []MerchantStatusType
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) IdentifierTypes(ctx context.Context) ([]MerchantIdentifierType, error) {
	var out []MerchantIdentifierType
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
