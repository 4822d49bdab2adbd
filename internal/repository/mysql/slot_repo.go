package mysql

import (
	"context"
	"errors"

	"Share_Space/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SlotRepository 每个 slot 一行，写入即整行覆盖（upsert）。
type SlotRepository struct {
	DB *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *SlotRepository {
	if db == nil {
		db = DB
	}
	return &SlotRepository{DB: db}
}

func (r *SlotRepository) Get(ctx context.Context, name string) (string, bool, error) {
	var row model.Slot
	err := r.DB.WithContext(ctx).First(&row, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Value, true, nil
}

func (r *SlotRepository) Set(ctx context.Context, name, value string) error {
	row := &model.Slot{Name: name, Value: value}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(row).Error
}

// Delete 幂等：不存在的 slot 也返回 nil
func (r *SlotRepository) Delete(ctx context.Context, name string) error {
	return r.DB.WithContext(ctx).Where("name = ?", name).Delete(&model.Slot{}).Error
}

func (r *SlotRepository) Close() error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
