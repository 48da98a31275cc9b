package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	repo "github.com/Divarzky/jajanan-rizky/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 全コレクションを1テーブルに持つ。(collection, key)が主キーで、
// 1操作=1文なのでレコード単位の原子性はSQLite側が保証する。
type record struct {
	Collection string `gorm:"primaryKey;type:varchar(32)"`
	Key        string `gorm:"primaryKey;type:varchar(64)"`
	Data       []byte `gorm:"type:text;not null"`
}

func (record) TableName() string { return "records" }

// スキーマ作成（mainから呼ぶ）
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&record{})
}

type GormStore struct {
	db *gorm.DB
}

// DI
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// レコードをJSONで保存する。既存キーは上書き（upsert）。
func (s *GormStore) Put(ctx context.Context, collection string, key string, value any) error {
	if !repo.KnownCollection(collection) {
		return repo.ErrUnknownCollection
	}
	if key == "" {
		return fmt.Errorf("%w: empty key", repo.ErrStoreUnavailable)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data"}),
	}).Create(&record{Collection: collection, Key: key, Data: data})
	if res.Error != nil {
		return asStoreErr(res.Error)
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, collection string, key string, out any) error {
	if !repo.KnownCollection(collection) {
		return repo.ErrUnknownCollection
	}

	var rec record
	err := s.db.WithContext(ctx).
		Where("collection = ? AND key = ?", collection, key).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	if err != nil {
		return asStoreErr(err)
	}

	return json.Unmarshal(rec.Data, out)
}

// 並び順は未定義（呼び出し側でソートする）
func (s *GormStore) GetAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if !repo.KnownCollection(collection) {
		return nil, repo.ErrUnknownCollection
	}

	var recs []record
	if err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Find(&recs).Error; err != nil {
		return nil, asStoreErr(err)
	}

	out := make([]json.RawMessage, 0, len(recs))
	for _, r := range recs {
		out = append(out, json.RawMessage(r.Data))
	}
	return out, nil
}

func (s *GormStore) Delete(ctx context.Context, collection string, key string) error {
	if !repo.KnownCollection(collection) {
		return repo.ErrUnknownCollection
	}

	res := s.db.WithContext(ctx).
		Where("collection = ? AND key = ?", collection, key).
		Delete(&record{})
	if res.Error != nil {
		return asStoreErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// コレクションを空にする。1文のDELETEなので途中状態は残らない。
func (s *GormStore) Clear(ctx context.Context, collection string) error {
	if !repo.KnownCollection(collection) {
		return repo.ErrUnknownCollection
	}

	res := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Delete(&record{})
	if res.Error != nil {
		return asStoreErr(res.Error)
	}
	return nil
}

// 媒体レベルの失敗はErrStoreUnavailableとして呼び出し側へ伝える
func asStoreErr(err error) error {
	return fmt.Errorf("%w: %v", repo.ErrStoreUnavailable, err)
}
