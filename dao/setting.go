package dao

import (
	"Carnival/models"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Setting struct {
	Repo[models.Setting]
}

func NewSetting(db *gorm.DB) *Setting {
	return &Setting{
		Repo: NewRepo[models.Setting](db),
	}
}

func (s *Setting) Get(ctx context.Context, key string) (string, error) {
	var setting models.Setting
	err := s.Db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return setting.Value, err
}

func (s *Setting) Set(tx *gorm.DB, key, value string) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{"value": value}),
	}).Create(&models.Setting{Key: key, Value: value}).Error
}
