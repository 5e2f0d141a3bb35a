package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"KindleShot/advance"
	"KindleShot/config"
	"KindleShot/desktop"
	"KindleShot/logging"
	"KindleShot/prompt"
	"KindleShot/session"
	"KindleShot/timing"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const title = "Kindle for PC 自動スクリーンショットツール（設定ファイル版）"

// AppArguments はコマンドライン引数です。
type AppArguments struct {
	Config      string `arg:"-c,--config" default:"config.json" help:"設定ファイルのパス (.json / .yaml / .toml)"`
	Pages       int    `arg:"-p,--pages" help:"ページ数を上書き（設定ファイルより優先）"`
	NoCountdown bool   `arg:"--no-countdown" help:"カウントダウンを表示しない"`
	Verbose     bool   `arg:"-v,--verbose" help:"詳細なログを表示する"`
	LogFile     string `arg:"--log-file" help:"ログファイルのパス（設定ファイルの log_file より優先）"`
	EnvFile     string `arg:"--env-file" help:"KINDLESHOT_* を定義した .env ファイル"`
}

func (AppArguments) Description() string {
	return title
}

func main() {
	os.Exit(run())
}

func run() (code int) {
	var args AppArguments
	p := arg.MustParse(&args)
	if args.Pages < 0 {
		p.Fail("--pages には1以上を指定してください")
	}

	logger := logging.Setup(logging.Options{Verbose: args.Verbose, File: args.LogFile})
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("エラーが発生しました")
			code = 1
		}
	}()

	if args.EnvFile != "" {
		if err := godotenv.Load(args.EnvFile); err != nil {
			logger.Error().Err(err).Str("path", args.EnvFile).Msg(".env ファイルを読み込めません")
			return 1
		}
	}

	cfg, err := config.Load(args.Config, logger)
	if err != nil {
		logger.Error().Err(err).Str("path", args.Config).Msg("設定を読み込めません")
		return 1
	}
	// コマンドライン引数で上書き
	cfg = cfg.WithPageCount(args.Pages)
	if args.LogFile == "" && cfg.LogFile != "" {
		logger = logging.Setup(logging.Options{Verbose: args.Verbose, File: cfg.LogFile})
	}
	if runtime.GOOS != "windows" {
		logger.Warn().Str("os", runtime.GOOS).Msg("キー・マウス操作の送信は Windows のみ対応しています。ページ送りは失敗します")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	backend := desktop.Desktop{}
	sleeper := timing.Real{}
	adv, err := advance.New(cfg.PageMethod, backend, cfg.AdvanceOptions(), sleeper, logger)
	if err != nil {
		logger.Error().Err(err).Str("method", string(cfg.PageMethod)).Msg("ページ送り方法を初期化できません")
		return 1
	}

	fmt.Println(title)
	fmt.Println(strings.Repeat("=", 60))

	runner := &session.Runner{
		Config:      cfg,
		Screen:      backend,
		Advancer:    adv,
		Confirmer:   prompt.NewConsole(os.Stdin, os.Stdout),
		Focuser:     backend,
		Sleeper:     sleeper,
		Out:         os.Stdout,
		Log:         logger,
		NoCountdown: args.NoCountdown,
	}
	sum, err := runner.Run(ctx)
	switch {
	case err == nil:
		logger.Debug().Int("saved", sum.Saved).Ints("missing", sum.Missing).Int("advance_failures", sum.AdvanceFailures).Msg("完了")
		return 0
	case errors.Is(err, session.ErrAborted):
		return 0
	case errors.Is(err, context.Canceled):
		fmt.Println("\n処理が中断されました")
		return 1
	default:
		logger.Error().Err(err).Msg("エラーが発生しました")
		return 1
	}
}
