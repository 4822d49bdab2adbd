package mysql

import (
	"Share_Space/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB 打开 MySQL 连接并建好 slot 表。
func InitDB(dsn string) error {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}
	if err = db.AutoMigrate(&model.Slot{}); err != nil {
		return err
	}
	DB = db
	return nil
}
