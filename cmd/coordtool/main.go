// coordtool はマウス位置や画面領域の座標を取得するためのツールです。
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"KindleShot/capture"
	"KindleShot/desktop"
	"KindleShot/logging"
	"KindleShot/probe"
	"KindleShot/prompt"
	"KindleShot/timing"
	"KindleShot/ui"

	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog"
)

type watchCmd struct {
	Interval time.Duration `arg:"--interval" default:"100ms" help:"更新間隔"`
}

type regionCmd struct{}

type screenCmd struct{}

type guiCmd struct{}

// AppArguments はコマンドライン引数です。サブコマンドが無ければメニューを表示します。
type AppArguments struct {
	Watch   *watchCmd  `arg:"subcommand:watch" help:"マウス座標をリアルタイム表示"`
	Screen  *screenCmd `arg:"subcommand:screen" help:"画面情報を表示"`
	Region  *regionCmd `arg:"subcommand:region" help:"領域座標を取得"`
	GUI     *guiCmd    `arg:"subcommand:gui" help:"GUI版を起動"`
	Verbose bool       `arg:"-v,--verbose" help:"詳細なログを表示する"`
}

func (AppArguments) Description() string {
	return "座標取得ツール: マウス位置や画面領域の座標を取得します"
}

type tool struct {
	backend desktop.Desktop
	console *prompt.Console
	out     io.Writer
	log     zerolog.Logger
}

func main() {
	// Windows GUI はメインスレッドで実行する必要がある
	runtime.LockOSThread()

	var args AppArguments
	arg.MustParse(&args)
	t := &tool{
		console: prompt.NewConsole(os.Stdin, os.Stdout),
		out:     os.Stdout,
		log:     logging.Setup(logging.Options{Verbose: args.Verbose}),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch {
	case args.Watch != nil:
		err = t.watch(ctx, args.Watch.Interval)
	case args.Screen != nil:
		err = t.screen()
	case args.Region != nil:
		err = t.region(ctx)
	case args.GUI != nil:
		err = t.gui()
	default:
		err = t.menu(ctx)
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(t.out, "\n終了します")
		err = nil
	}
	if err != nil {
		t.log.Error().Err(err).Msg("エラーが発生しました")
		os.Exit(1)
	}
}

func (t *tool) menu(ctx context.Context) error {
	fmt.Fprintln(t.out, "座標取得ツール")
	fmt.Fprintln(t.out, strings.Repeat("=", 40))
	fmt.Fprintln(t.out, "1. マウス座標をリアルタイム表示")
	fmt.Fprintln(t.out, "2. 画面情報を表示")
	fmt.Fprintln(t.out, "3. 領域座標を取得")
	fmt.Fprintln(t.out, "4. GUI版を起動")
	fmt.Fprintln(t.out, "5. 終了")
	fmt.Fprintln(t.out)

	for {
		choice, err := t.console.ReadLine(ctx, "選択してください (1-5): ")
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch strings.TrimSpace(choice) {
		case "1":
			return t.watch(ctx, probe.DefaultInterval)
		case "2":
			return t.screen()
		case "3":
			return t.region(ctx)
		case "4":
			return t.gui()
		case "5":
			fmt.Fprintln(t.out, "終了します")
			return nil
		default:
			fmt.Fprintln(t.out, "1-5の数字を入力してください")
		}
	}
}

func (t *tool) watch(ctx context.Context, interval time.Duration) error {
	fmt.Fprintln(t.out, "マウス座標取得ツール")
	fmt.Fprintln(t.out, strings.Repeat("=", 40))
	fmt.Fprintln(t.out, "マウスを移動させて座標を確認してください")
	fmt.Fprintln(t.out, "終了するには Ctrl+C を押してください")
	fmt.Fprintln(t.out)

	err := probe.Watch(ctx, t.backend, t.backend, timing.Real{}, interval, func(s probe.Sample) {
		fmt.Fprintf(t.out, "%s    \r", s)
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(t.out, "\n\n座標取得を終了しました")
	return nil
}

func (t *tool) screen() error {
	screens, err := capture.Screens()
	if err != nil {
		return err
	}
	probe.ScreenInfo(t.out, screens)
	return nil
}

func (t *tool) region(ctx context.Context) error {
	_, err := probe.MarkRegion(ctx, t.backend, t.console, t.out)
	return err
}

func (t *tool) gui() error {
	return ui.RunProbeWindow(t.backend, t.backend)
}
