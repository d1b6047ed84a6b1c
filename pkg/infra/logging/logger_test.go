// 指示: miu200521358
package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLoggerIsNeverNil(t *testing.T) {
	mu.Lock()
	defaultLogger = nil
	mu.Unlock()

	logger := DefaultLogger()
	if logger == nil {
		t.Fatalf("default logger should fall back to a nop logger")
	}
	// 未初期化でも出力呼び出しで落ちない
	logger.Debug("debug %d", 1)
	logger.Info("info %s", "x")
	logger.Warn("warn")
	logger.Error("error")
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.Info("nil receiver should not panic")
}

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rig.log")
	if err := SetupWithFileConfig("info", DefaultFileConfig(path), false); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	DefaultLogger().Info("組立開始: %s", "テスト")
	DefaultLogger().Debug("this should be filtered out")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file should exist: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "組立開始: テスト") {
		t.Fatalf("info message missing from log file: %q", text)
	}
	if strings.Contains(text, "filtered out") {
		t.Fatalf("debug message should be filtered at info level")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if parseLevel("unknown") != parseLevel("info") {
		t.Fatalf("unknown level should fall back to info")
	}
	if parseLevel("debug") == parseLevel("info") {
		t.Fatalf("debug level should differ from info")
	}
}
