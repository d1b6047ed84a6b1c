// 指示: miu200521358
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_mmd_rig/pkg/adapter/io_scene"
	"github.com/miu200521358/mu_mmd_rig/pkg/infra/config"
	"github.com/miu200521358/mu_mmd_rig/pkg/infra/logging"
	"github.com/miu200521358/mu_mmd_rig/pkg/usecase/rigging"
)

// options はCLI引数を保持する。
type options struct {
	inputPath  string
	outputPath string
	mode       string
	configPath string
}

// main はリグシーンの組立/解除を実行する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	opts, err := parseOptions(args, errOut)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFile); err != nil {
		return fmt.Errorf("ロガー初期化に失敗しました: %w", err)
	}

	repository := io_scene.NewSceneRepository()
	if !repository.CanLoad(opts.inputPath) {
		return fmt.Errorf("入力形式が未対応です: %s", opts.inputPath)
	}

	fmt.Fprintf(out, "[mu_mmd_rig] 読み込み開始: %s\n", opts.inputPath)
	scene, root, err := repository.Load(opts.inputPath)
	if err != nil {
		return fmt.Errorf("シーン読み込みに失敗しました: %w", err)
	}

	rig, err := rigging.NewModel(scene, root)
	if err != nil {
		return err
	}
	rig.NonCollisionThreshold = cfg.NonCollisionThreshold

	switch opts.mode {
	case "build":
		if err := rig.Build(); err != nil {
			return err
		}
		fmt.Fprintf(out, "[mu_mmd_rig] 組立完了: 剛体=%d ジョイント=%d 一時=%d\n",
			len(rig.RigidBodies()), len(rig.Joints()), len(rig.TemporaryObjects()))
	case "clean":
		rig.Clean()
		fmt.Fprintf(out, "[mu_mmd_rig] 解除完了: 剛体=%d ジョイント=%d\n",
			len(rig.RigidBodies()), len(rig.Joints()))
	case "roundtrip":
		if err := rig.Build(); err != nil {
			return err
		}
		rig.Clean()
		fmt.Fprintf(out, "[mu_mmd_rig] 組立/解除完了: 剛体=%d ジョイント=%d\n",
			len(rig.RigidBodies()), len(rig.Joints()))
	default:
		return fmt.Errorf("不正な実行モードです: %s", opts.mode)
	}

	if opts.outputPath != "" {
		if err := repository.Save(opts.outputPath, scene, root); err != nil {
			return err
		}
		fmt.Fprintf(out, "[mu_mmd_rig] 書き出し完了: %s\n", opts.outputPath)
	}
	return nil
}

// parseOptions はフラグと位置引数を解析する。
func parseOptions(args []string, errOut io.Writer) (*options, error) {
	flags := flag.NewFlagSet("mu_mmd_rig", flag.ContinueOnError)
	flags.SetOutput(errOut)

	opts := &options{}
	flags.StringVar(&opts.inputPath, "in", "", "入力リグシーンファイル(.yaml)")
	flags.StringVar(&opts.outputPath, "out", "", "出力スナップショットファイル(省略可)")
	flags.StringVar(&opts.mode, "mode", "build", "実行モード(build/clean/roundtrip)")
	flags.StringVar(&opts.configPath, "config", "", "設定ファイルパス(省略可)")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	rest := flags.Args()
	if opts.inputPath == "" && len(rest) > 0 {
		opts.inputPath = rest[0]
		rest = rest[1:]
	}
	if opts.outputPath == "" && len(rest) > 0 {
		opts.outputPath = rest[0]
	}

	if opts.inputPath == "" {
		return nil, fmt.Errorf("入力リグシーンパスが未指定です")
	}
	ext := strings.ToLower(filepath.Ext(opts.inputPath))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("入力はYAMLファイルを指定してください: %s", opts.inputPath)
	}
	return opts, nil
}
