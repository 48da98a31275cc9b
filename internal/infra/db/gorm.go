package db

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect は組み込みDB（SQLite）を開いて *gorm.DB を返す。
// ネットワーク依存ゼロ。プロセスにつき1回だけ開く。
func Connect(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}
