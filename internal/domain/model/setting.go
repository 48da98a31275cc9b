package model

// 単値の設定エントリ。keyで一意。
type Setting struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

const (
	SettingAutoBackupEnabled  = "autoBackupEnabled"
	SettingAutoBackupInterval = "autoBackupIntervalMin"
)
