// 指示: miu200521358

// Package config はリグエンジンの動作設定を提供する。
// 優先順位は 既定値 < 設定ファイル(YAML) < 環境変数。
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config はリグエンジンの動作設定を保持する。
type Config struct {
	// NonCollisionThreshold は近接非衝突判定の距離係数。
	NonCollisionThreshold float64 `yaml:"non_collision_threshold" env:"MU_RIG_NON_COLLISION_THRESHOLD"`
	// LogLevel はログレベル(debug/info/warn/error)。
	LogLevel string `yaml:"log_level" env:"MU_RIG_LOG_LEVEL"`
	// LogFile はログファイルパス。空ならコンソールのみ。
	LogFile string `yaml:"log_file" env:"MU_RIG_LOG_FILE"`
}

// Default は既定設定を返す。
func Default() *Config {
	return &Config{
		NonCollisionThreshold: 1.5,
		LogLevel:              "info",
	}
}

// Load は設定を読み込む。pathが空なら設定ファイルを読み飛ばす。
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("設定ファイルの解析に失敗しました: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("環境変数の解析に失敗しました: %w", err)
	}
	return cfg, nil
}
