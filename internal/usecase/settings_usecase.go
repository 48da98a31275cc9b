package usecase

import (
	"context"
	"errors"

	"github.com/Divarzky/jajanan-rizky/internal/domain/model"
	repo "github.com/Divarzky/jajanan-rizky/internal/repository"
)

// SettingsUsecase は単値設定の型付き読み書き。
// 値はJSONで保存されるので、数値はfloat64で戻ってくる点をここで吸収する。
type SettingsUsecase struct {
	store repo.Store
}

// DI
func NewSettingsUsecase(store repo.Store) *SettingsUsecase {
	return &SettingsUsecase{store: store}
}

func (u *SettingsUsecase) Set(ctx context.Context, key string, value any) error {
	return u.store.Put(ctx, repo.CollectionSettings, key, model.Setting{Key: key, Value: value})
}

// 未設定ならdefを返す
func (u *SettingsUsecase) GetBool(ctx context.Context, key string, def bool) (bool, error) {
	var s model.Setting
	err := u.store.Get(ctx, repo.CollectionSettings, key, &s)
	if errors.Is(err, repo.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	v, ok := s.Value.(bool)
	if !ok {
		return def, nil
	}
	return v, nil
}

// 未設定ならdefを返す
func (u *SettingsUsecase) GetInt(ctx context.Context, key string, def int) (int, error) {
	var s model.Setting
	err := u.store.Get(ctx, repo.CollectionSettings, key, &s)
	if errors.Is(err, repo.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	switch v := s.Value.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	}
	return def, nil
}

func (u *SettingsUsecase) All(ctx context.Context) (map[string]any, error) {
	raws, err := u.store.GetAll(ctx, repo.CollectionSettings)
	if err != nil {
		return nil, err
	}
	settings, err := repo.DecodeAll[model.Setting](raws)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	return out, nil
}
