package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Divarzky/jajanan-rizky/internal/domain/model"

	"github.com/labstack/gommon/log"
)

// 直前の完了からこの時間以内のトリガーは無視する。
// 連打や再入で同じバックアップが量産されるのを防ぐ。
const debounceWindow = 30 * time.Second

// 設定が無いときの既定間隔（分）
const defaultIntervalMin = 60

// スナップショットを1件バックアップとして保存する約束
type BackupCreator interface {
	CreateBackup(ctx context.Context, name string) (model.Backup, error)
}

// 設定の読み書きの約束
type Settings interface {
	GetBool(ctx context.Context, key string, def bool) (bool, error)
	GetInt(ctx context.Context, key string, def int) (int, error)
	Set(ctx context.Context, key string, value any) error
}

type Clock interface {
	Now() time.Time
}

// AutoBackup は自分のキャンセルハンドルを持つ明示的なスケジューラ。
// グローバルなタイマー状態は持たない。呼び出し側がこのハンドルを握って
// Enable/Disableする。バックアップの失敗はログに残して握りつぶす。
// バックグラウンドの保守がレジ操作を止めてはいけないため。
type AutoBackup struct {
	backups  BackupCreator
	settings Settings
	clock    Clock
	logger   *log.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	lastRun  time.Time
	inFlight bool
}

// DI
func NewAutoBackup(backups BackupCreator, settings Settings, clock Clock, logger *log.Logger) *AutoBackup {
	if logger == nil {
		logger = log.New("autobackup")
	}
	return &AutoBackup{backups: backups, settings: settings, clock: clock, logger: logger}
}

// 保存済み設定に従って起動時の状態を復元する
func (a *AutoBackup) InitFromSettings(ctx context.Context) error {
	enabled, err := a.settings.GetBool(ctx, model.SettingAutoBackupEnabled, false)
	if err != nil {
		return err
	}
	if !enabled {
		return nil
	}

	interval, err := a.settings.GetInt(ctx, model.SettingAutoBackupInterval, defaultIntervalMin)
	if err != nil {
		return err
	}
	a.start(interval)
	a.TriggerNow(ctx)
	return nil
}

// 有効化。設定を永続化し、既存のスケジュールがあれば止めてから
// すぐ1回バックアップし、以後は間隔ごとに繰り返す。
func (a *AutoBackup) Enable(ctx context.Context, intervalMin int) error {
	if intervalMin <= 0 {
		intervalMin = defaultIntervalMin
	}

	if err := a.settings.Set(ctx, model.SettingAutoBackupEnabled, true); err != nil {
		return err
	}
	if err := a.settings.Set(ctx, model.SettingAutoBackupInterval, intervalMin); err != nil {
		return err
	}

	a.start(intervalMin)
	a.TriggerNow(ctx)
	return nil
}

// 無効化。以後のトリガーを止める。実行中のexportは中断しない。
func (a *AutoBackup) Disable(ctx context.Context) error {
	if err := a.settings.Set(ctx, model.SettingAutoBackupEnabled, false); err != nil {
		return err
	}
	a.stop()
	return nil
}

func (a *AutoBackup) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancel != nil
}

// TriggerNow は1回分のバックアップを実行する。スケジュール経由でも
// 外部からの呼び出しでも同じデバウンスが効く。実行したらtrue。
func (a *AutoBackup) TriggerNow(ctx context.Context) bool {
	now := a.clock.Now()

	a.mu.Lock()
	if a.inFlight || (!a.lastRun.IsZero() && now.Sub(a.lastRun) < debounceWindow) {
		a.mu.Unlock()
		return false
	}
	a.inFlight = true
	a.mu.Unlock()

	name := a.backupName(now)
	_, err := a.backups.CreateBackup(ctx, name)

	a.mu.Lock()
	a.inFlight = false
	if err == nil {
		// デバウンスは「完了」時点から数える
		a.lastRun = a.clock.Now()
	}
	a.mu.Unlock()

	if err != nil {
		a.logger.Errorf("auto backup failed: %v", err)
		return false
	}
	a.logger.Infof("auto backup saved: %s", name)
	return true
}

func (a *AutoBackup) backupName(now time.Time) string {
	return fmt.Sprintf("autobackup-%s-%d.json", now.UTC().Format("2006-01-02"), now.UnixMilli())
}

// 既存のスケジュールを止めてから新しい間隔で回し始める（二重タイマー防止）
func (a *AutoBackup) start(intervalMin int) {
	a.stop()

	ctx, cancel := context.WithCancel(context.Background())

	a.mu.Lock()
	a.cancel = cancel
	a.mu.Unlock()

	go a.loop(ctx, time.Duration(intervalMin)*time.Minute)
}

func (a *AutoBackup) stop() {
	a.mu.Lock()
	cancel := a.cancel
	a.cancel = nil
	a.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (a *AutoBackup) loop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.TriggerNow(ctx)
		}
	}
}
