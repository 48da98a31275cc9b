package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Divarzky/jajanan-rizky/internal/domain/model"
	"github.com/Divarzky/jajanan-rizky/internal/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCreator struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (c *countingCreator) CreateBackup(ctx context.Context, name string) (model.Backup, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return model.Backup{}, c.err
	}
	c.names = append(c.names, name)
	return model.Backup{ID: name, Name: name}, nil
}

func (c *countingCreator) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.names)
}

type memSettings struct {
	mu   sync.Mutex
	data map[string]any
}

func newMemSettings() *memSettings {
	return &memSettings{data: map[string]any{}}
}

func (s *memSettings) GetBool(ctx context.Context, key string, def bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.data[key].(bool); ok {
		return v, nil
	}
	return def, nil
}

func (s *memSettings) GetInt(ctx context.Context, key string, def int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.data[key].(int); ok {
		return v, nil
	}
	return def, nil
}

func (s *memSettings) Set(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newFixture() (*scheduler.AutoBackup, *countingCreator, *memSettings, *manualClock) {
	creator := &countingCreator{}
	settings := newMemSettings()
	clock := &manualClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	return scheduler.NewAutoBackup(creator, settings, clock, nil), creator, settings, clock
}

func TestAutoBackup_TriggerNow_Debounce(t *testing.T) {
	auto, creator, _, clock := newFixture()
	ctx := context.Background()

	assert.True(t, auto.TriggerNow(ctx))

	// 5秒後の再トリガーは無視される
	clock.Advance(5 * time.Second)
	assert.False(t, auto.TriggerNow(ctx))
	assert.Equal(t, 1, creator.count())

	// 40秒空けば通る
	clock.Advance(40 * time.Second)
	assert.True(t, auto.TriggerNow(ctx))
	assert.Equal(t, 2, creator.count())
}

func TestAutoBackup_TriggerNow_BackupName(t *testing.T) {
	auto, creator, _, _ := newFixture()

	require.True(t, auto.TriggerNow(context.Background()))

	// 2025-06-01T10:00:00Z = 1748772000000ms
	assert.Equal(t, []string{"autobackup-2025-06-01-1748772000000.json"}, creator.names)
}

func TestAutoBackup_FailureDoesNotArmDebounce(t *testing.T) {
	auto, creator, _, clock := newFixture()
	ctx := context.Background()

	creator.err = errors.New("disk full")
	assert.False(t, auto.TriggerNow(ctx))

	// 失敗直後でもリトライは弾かれない
	creator.err = nil
	clock.Advance(time.Second)
	assert.True(t, auto.TriggerNow(ctx))
	assert.Equal(t, 1, creator.count())
}

func TestAutoBackup_EnableDisable(t *testing.T) {
	auto, creator, settings, _ := newFixture()
	ctx := context.Background()

	require.NoError(t, auto.Enable(ctx, 30))
	defer auto.Disable(ctx)

	// 設定が永続化され、即時に1回走る
	enabled, err := settings.GetBool(ctx, model.SettingAutoBackupEnabled, false)
	require.NoError(t, err)
	assert.True(t, enabled)
	interval, err := settings.GetInt(ctx, model.SettingAutoBackupInterval, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, interval)
	assert.Equal(t, 1, creator.count())
	assert.True(t, auto.Running())

	require.NoError(t, auto.Disable(ctx))
	assert.False(t, auto.Running())

	enabled, err = settings.GetBool(ctx, model.SettingAutoBackupEnabled, true)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestAutoBackup_Enable_NonPositiveIntervalFallsBack(t *testing.T) {
	auto, _, settings, _ := newFixture()
	ctx := context.Background()

	require.NoError(t, auto.Enable(ctx, 0))
	defer auto.Disable(ctx)

	interval, err := settings.GetInt(ctx, model.SettingAutoBackupInterval, 0)
	require.NoError(t, err)
	assert.Equal(t, 60, interval)
}

func TestAutoBackup_InitFromSettings(t *testing.T) {
	auto, creator, settings, _ := newFixture()
	ctx := context.Background()

	// 無効のままなら何も起きない
	require.NoError(t, auto.InitFromSettings(ctx))
	assert.False(t, auto.Running())
	assert.Equal(t, 0, creator.count())

	// 有効で保存されていれば再開して即時に1回走る
	require.NoError(t, settings.Set(ctx, model.SettingAutoBackupEnabled, true))
	require.NoError(t, settings.Set(ctx, model.SettingAutoBackupInterval, 15))

	require.NoError(t, auto.InitFromSettings(ctx))
	defer auto.Disable(ctx)

	assert.True(t, auto.Running())
	assert.Equal(t, 1, creator.count())
}
