// Package store keeps orders in SQLite through gorm. Every mutation touches a single
// row so concurrent handlers cannot overwrite each other's changes.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ticket-bot/internal/models"
)

var (
	ErrNotFound         = errors.New("order not found")
	ErrDuplicate        = errors.New("order with this full name already exists")
	ErrAlreadyConfirmed = errors.New("order is already confirmed")
)

type Store struct {
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single connection also keeps ":memory:" databases alive.
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Order{}, &models.EventSettings{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Create inserts a new order. Full names are unique.
func (s *Store) Create(ctx context.Context, o *models.Order) error {
	if o.Confirmation == "" {
		o.Confirmation = models.ConfirmationPending
	}
	if o.Paid == "" {
		o.Paid = models.PaidNo
	}
	err := s.db.WithContext(ctx).Create(o).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (s *Store) ByID(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	err := s.db.WithContext(ctx).First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ByName matches the full name exactly, case included.
func (s *Store) ByName(ctx context.Context, name string) (*models.Order, error) {
	var o models.Order
	err := s.db.WithContext(ctx).Where("full_name = ?", name).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) List(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *Store) ListPending(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	err := s.db.WithContext(ctx).
		Where("confirmation = ?", models.ConfirmationPending).
		Order("id").
		Find(&out).Error
	return out, err
}

// Confirm marks a pending order as paid at the given price. Only one caller can win
// for the same order; the others get ErrAlreadyConfirmed.
func (s *Store) Confirm(ctx context.Context, name string, price int, at string) (*models.Order, error) {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("full_name = ? AND confirmation = ?", name, models.ConfirmationPending).
		Updates(map[string]any{
			"confirmation": at,
			"paid":         models.PaidYes,
			"amount":       price,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	o, err := s.ByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return o, ErrAlreadyConfirmed
	}
	return o, nil
}

// DenyPayment resets paid and amount whatever the previous state was.
func (s *Store) DenyPayment(ctx context.Context, name string) (*models.Order, error) {
	return s.updateByName(ctx, name, map[string]any{
		"paid":   models.PaidNo,
		"amount": 0,
	})
}

// RevertConfirmation puts an order back into the pending list.
func (s *Store) RevertConfirmation(ctx context.Context, name string) (*models.Order, error) {
	return s.updateByName(ctx, name, map[string]any{
		"confirmation": models.ConfirmationPending,
		"paid":         models.PaidNo,
	})
}

func (s *Store) updateByName(ctx context.Context, name string, fields map[string]any) (*models.Order, error) {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("full_name = ?", name).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.ByName(ctx, name)
}

type Stats struct {
	PaidCount int64
	PaidTotal int64
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Select("COUNT(*) AS paid_count, COALESCE(SUM(amount), 0) AS paid_total").
		Where("paid = ?", models.PaidYes).
		Scan(&st).Error
	return st, err
}

// LoadEvent returns the persisted event settings, or def when none were saved yet.
func (s *Store) LoadEvent(ctx context.Context, def models.Event) (models.Event, error) {
	var es models.EventSettings
	err := s.db.WithContext(ctx).First(&es, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return models.Event{Date: es.Date, Price: es.Price}, nil
}

func (s *Store) SaveEvent(ctx context.Context, e models.Event) error {
	return s.db.WithContext(ctx).Save(&models.EventSettings{ID: 1, Date: e.Date, Price: e.Price}).Error
}
