// 指示: miu200521358

// Package logging はリグエンジン全体で使う書式指定型のレベル付きロガーを提供する。
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger は書式指定型のレベル付きロガー。
type Logger struct {
	sugar *zap.SugaredLogger
}

var (
	mu            sync.Mutex
	defaultLogger *Logger
)

// FileConfig はファイル出力とローテーションの設定。
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig は既定のローテーション設定を返す。
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// Setup は既定ロガーを初期化する。logFileが空ならコンソール出力のみ。
func Setup(level string, logFile string) error {
	fileCfg := FileConfig{}
	if logFile != "" {
		fileCfg = DefaultFileConfig(logFile)
	}
	return SetupWithFileConfig(level, fileCfg, true)
}

// SetupWithFileConfig はファイル設定を指定して既定ロガーを初期化する。
// consoleOutputを偽にするとコンソール出力を抑止する(テスト用)。
func SetupWithFileConfig(level string, fileCfg FileConfig, consoleOutput bool) error {
	lvl := parseLevel(level)

	var cores []zapcore.Core

	if consoleOutput {
		consoleEncoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			MessageKey:       "msg",
			EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
			EncodeLevel:      zapcore.CapitalLevelEncoder,
			ConsoleSeparator: " ",
		})
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), lvl))
	}

	if fileCfg.Path != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   fileCfg.Path,
			MaxSize:    fileCfg.MaxSizeMB,
			MaxBackups: fileCfg.MaxBackups,
			MaxAge:     fileCfg.MaxAgeDays,
			Compress:   fileCfg.Compress,
			LocalTime:  true,
		}
		fileEncoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			MessageKey:       "msg",
			EncodeTime:       zapcore.ISO8601TimeEncoder,
			EncodeLevel:      zapcore.CapitalLevelEncoder,
			ConsoleSeparator: " ",
		})
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(fileWriter), lvl))
	}

	logger := zap.New(zapcore.NewTee(cores...))

	mu.Lock()
	defer mu.Unlock()
	defaultLogger = &Logger{sugar: logger.Sugar()}
	return nil
}

// DefaultLogger は既定ロガーを返す。未初期化なら黙って破棄するロガーを返す。
func DefaultLogger() *Logger {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = &Logger{sugar: zap.NewNop().Sugar()}
	}
	return defaultLogger
}

// Debug はデバッグレベルで出力する。
func (l *Logger) Debug(format string, args ...any) {
	if l == nil || l.sugar == nil {
		return
	}
	l.sugar.Debugf(format, args...)
}

// Info は情報レベルで出力する。
func (l *Logger) Info(format string, args ...any) {
	if l == nil || l.sugar == nil {
		return
	}
	l.sugar.Infof(format, args...)
}

// Warn は警告レベルで出力する。
func (l *Logger) Warn(format string, args ...any) {
	if l == nil || l.sugar == nil {
		return
	}
	l.sugar.Warnf(format, args...)
}

// Error はエラーレベルで出力する。
func (l *Logger) Error(format string, args ...any) {
	if l == nil || l.sugar == nil {
		return
	}
	l.sugar.Errorf(format, args...)
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
