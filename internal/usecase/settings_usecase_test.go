package usecase_test

import (
	"context"
	"testing"

	"github.com/Divarzky/jajanan-rizky/internal/domain/model"
	"github.com/Divarzky/jajanan-rizky/internal/infra/store"
	"github.com/Divarzky/jajanan-rizky/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsUsecase_Defaults(t *testing.T) {
	uc := usecase.NewSettingsUsecase(store.NewMemoryStore())
	ctx := context.Background()

	b, err := uc.GetBool(ctx, model.SettingAutoBackupEnabled, false)
	require.NoError(t, err)
	assert.False(t, b)

	i, err := uc.GetInt(ctx, model.SettingAutoBackupInterval, 60)
	require.NoError(t, err)
	assert.Equal(t, 60, i)
}

func TestSettingsUsecase_SetGet(t *testing.T) {
	uc := usecase.NewSettingsUsecase(store.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, uc.Set(ctx, model.SettingAutoBackupEnabled, true))
	require.NoError(t, uc.Set(ctx, model.SettingAutoBackupInterval, 30))

	b, err := uc.GetBool(ctx, model.SettingAutoBackupEnabled, false)
	require.NoError(t, err)
	assert.True(t, b)

	// JSON経由でfloat64になっても整数として読める
	i, err := uc.GetInt(ctx, model.SettingAutoBackupInterval, 60)
	require.NoError(t, err)
	assert.Equal(t, 30, i)
}

func TestSettingsUsecase_WrongType_FallsBackToDefault(t *testing.T) {
	uc := usecase.NewSettingsUsecase(store.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, uc.Set(ctx, "theme", "dark"))

	b, err := uc.GetBool(ctx, "theme", true)
	require.NoError(t, err)
	assert.True(t, b)

	i, err := uc.GetInt(ctx, "theme", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, i)
}

func TestSettingsUsecase_All(t *testing.T) {
	uc := usecase.NewSettingsUsecase(store.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, uc.Set(ctx, model.SettingAutoBackupEnabled, true))
	require.NoError(t, uc.Set(ctx, "theme", "dark"))

	all, err := uc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, true, all[model.SettingAutoBackupEnabled])
	assert.Equal(t, "dark", all["theme"])
}
