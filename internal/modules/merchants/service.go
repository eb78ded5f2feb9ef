package merchants

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewService(db *gorm.DB, log *slog.Logger) *Service {
	return &Service{db: db, log: log}
}

type MerchantInput struct {
	Name             string  `json:"name" binding:"required,max=255"`
	Email            string  `json:"email" binding:"required,email,max=255"`
	StatusTypeID     string  `json:"statusTypeId" binding:"required,max=32"`
	IdentifierTypeID *string `json:"identifierTypeId" binding:"omitempty,max=32"`
	IdentifierValue  *string `json:"identifierValue" binding:"omitempty,max=64"`
}

func (s *Service) GetByID(ctx context.Context, id int64) (Merchant, error) {
	return NewRepo(s.db).GetByID(ctx, id)
}

// Add creates a merchant with a zero ledger sum. Reference values are
// checked against the nomenclature tables before the insert.
func (s *Service) Add(ctx context.Context, in MerchantInput) (Merchant, error) {
	var created Merchant

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(ctx, tx, in); err != nil {
			return err
		}

		now := time.Now().UTC()
		created = Merchant{
			Name:                in.Name,
			Email:               in.Email,
			StatusID:            in.StatusTypeID,
			IdentifierTypeID:    in.IdentifierTypeID,
			IdentifierValue:     in.IdentifierValue,
			TotalTransactionSum: decimal.Zero,
			Version:             1,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		return tx.WithContext(ctx).Create(&created).Error
	})
	if err != nil {
		return Merchant{}, err
	}

	s.log.LogAttrs(ctx, slog.LevelInfo, "merchant_created",
		slog.Int64("merchant_id", created.ID),
		slog.String("status", created.StatusID),
	)
	return created, nil
}

// Update applies in to the merchant, guarded by the optimistic version
// counter. The ledger sum is never writable through this path.
func (s *Service) Update(ctx context.Context, id int64, in MerchantInput, version int) (Merchant, error) {
	var updated Merchant

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m Merchant
		if err := tx.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if m.Version != version {
			return ErrVersionConflict
		}
		if err := checkReferences(ctx, tx, in); err != nil {
			return err
		}

		m.Name = in.Name
		m.Email = in.Email
		m.StatusID = in.StatusTypeID
		m.IdentifierTypeID = in.IdentifierTypeID
		m.IdentifierValue = in.IdentifierValue
		m.Version++
		m.UpdatedAt = time.Now().UTC()

		if err := tx.WithContext(ctx).Save(&m).Error; err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return Merchant{}, err
	}
	return updated, nil
}

// Delete removes a merchant that has no transactions on record.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m Merchant
		if err := tx.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var txCount int64
		if err := tx.WithContext(ctx).Table("transactions").
			Where("merchant_id = ?", m.ID).
			Count(&txCount).Error; err != nil {
			return err
		}
		if txCount > 0 {
			return ErrHasTransactions
		}

		return tx.WithContext(ctx).Delete(&m).Error
	})
}

func checkReferences(ctx context.Context, tx *gorm.DB, in MerchantInput) error {
	var n int64
	if err := tx.WithContext(ctx).Model(&MerchantStatusType{}).
		Where("id = ?", in.StatusTypeID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrUnknownStatus
	}

	if in.IdentifierTypeID != nil {
		if err := tx.WithContext(ctx).Model(&MerchantIdentifierType{}).
			Where("id = ?", *in.IdentifierTypeID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrUnknownIdentifierType
		}
	}
	return nil
}
