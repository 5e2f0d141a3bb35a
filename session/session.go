// Package session は撮影ループを実行します。
//
// 状態は Countdown → Capturing → Done の順に進みます。ページごとの撮影・保存・
// ページ送りの失敗はログに出して次のページへ進み、実行全体は止めません。
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"
	"time"

	"KindleShot/advance"
	"KindleShot/capture"
	"KindleShot/compare"
	"KindleShot/config"
	"KindleShot/output"
	"KindleShot/timing"

	"github.com/rs/zerolog"
)

// ErrAborted はページ数の上限超過の確認でユーザーが中止したことを表します。
var ErrAborted = errors.New("処理を中止しました")

// focusSettle はウィンドウが前面になるまでの待ち時間です。
const focusSettle = 300 * time.Millisecond

// State は撮影ループの状態です。
type State int

const (
	Countdown State = iota
	Capturing
	Done
)

func (s State) String() string {
	switch s {
	case Countdown:
		return "countdown"
	case Capturing:
		return "capturing"
	case Done:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Screen は画面の指定範囲をキャプチャします。
type Screen interface {
	Capture(r capture.Region) (image.Image, error)
}

// Focuser はタイトルに一致するウィンドウを前面にします。
// Titles は見つからなかったときの診断用に表示中のウィンドウタイトルを返します。
type Focuser interface {
	Activate(title string) bool
	Titles() []string
}

// Confirmer は y/N の確認を行います。
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// Runner は1回分の撮影を実行します。
type Runner struct {
	Config    config.Config
	Screen    Screen
	Advancer  advance.Strategy
	Confirmer Confirmer
	// Focuser は Config.FocusWindow が空でなければ使います。nil なら何もしません。
	Focuser Focuser
	Sleeper timing.Sleeper
	// Out は進捗表示の出力先です。
	Out io.Writer
	Log zerolog.Logger
	// NoCountdown が true なら、カウントダウン表示をせずに待機時間だけ待ちます。
	NoCountdown bool
	// OnState は状態が変わるたびに呼ばれます。
	OnState func(State)
}

// Summary は撮影結果です。
type Summary struct {
	// Folder は出力フォルダの絶対パスです。
	Folder string
	// Pages は設定されたページ数です。
	Pages int
	// Processed は実際に撮影を試みたページ数です。
	Processed int
	// Saved は保存できたファイル数です。
	Saved int
	// Missing は撮影または保存に失敗したページ番号です。
	Missing []int
	// Identical は直前のページと同じ画像だったページ番号です。
	Identical []int
	// AdvanceFailures はページ送りが失敗した回数です。
	AdvanceFailures int
	// StoppedEarly は同一画像の連続で終了した場合に true です。
	StoppedEarly bool
}

// PDFCommand は撮影後に表示する PDF 化コマンドの例です。%s は画像の glob パターンです。
const PDFCommand = `img2pdf "%s" -o book.pdf`

func (r *Runner) setState(s State) {
	r.Log.Debug().Stringer("state", s).Msg("状態遷移")
	if r.OnState != nil {
		r.OnState(s)
	}
}

func (r *Runner) printf(format string, a ...any) {
	fmt.Fprintf(r.Out, format, a...)
}

// Run は撮影を実行します。上限超過の確認で中止した場合は ErrAborted を返し、
// 出力フォルダは作成しません。ctx が終了すると ctx.Err() を返します。
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if r.Out == nil {
		r.Out = io.Discard
	}
	if r.Sleeper == nil {
		r.Sleeper = timing.Real{}
	}
	cfg := r.Config
	sum := Summary{Pages: cfg.PageCount}

	r.printSettings()

	if cfg.ExceedsMax() {
		r.printf("警告: ページ数(%d)が最大値(%d)を超えています\n", cfg.PageCount, cfg.MaxPages)
		r.Log.Warn().Int("page_count", cfg.PageCount).Int("max_pages", cfg.MaxPages).Msg("ページ数が上限を超えています")
		ok, err := r.Confirmer.Confirm(ctx, "続行しますか？")
		if err != nil {
			return sum, err
		}
		if !ok {
			r.printf("処理を中止しました\n")
			return sum, ErrAborted
		}
	}

	created, err := output.EnsureFolder(cfg.OutputFolder)
	if err != nil {
		return sum, fmt.Errorf("フォルダ作成に失敗しました: %w", err)
	}
	if created {
		r.printf("フォルダ '%s' を作成しました\n", cfg.OutputFolder)
	}
	if sum.Folder, err = filepath.Abs(cfg.OutputFolder); err != nil {
		sum.Folder = cfg.OutputFolder
	}

	r.setState(Countdown)
	if err := r.focusTarget(ctx); err != nil {
		return sum, err
	}
	if err := r.countdown(ctx); err != nil {
		return sum, err
	}

	r.setState(Capturing)
	r.printf("処理を開始します！\n")
	if err := r.capture(ctx, &sum); err != nil {
		return sum, err
	}

	r.setState(Done)
	r.printSummary(sum)
	return sum, nil
}

func (r *Runner) printSettings() {
	cfg := r.Config
	r.printf("設定:\n")
	r.printf("  待機時間: %v秒\n", cfg.WaitTime)
	r.printf("  取得回数: %d回\n", cfg.PageCount)
	r.printf("  取得領域: %s\n", cfg.Region)
	r.printf("  ページ間待機: %v秒\n", cfg.PageDelay)
	r.printf("  出力フォルダ: %s\n", cfg.OutputFolder)
	r.printf("  ページ送り方法: %s\n", cfg.PageMethod)
	r.printf("\n")
}

func (r *Runner) focusTarget(ctx context.Context) error {
	title := r.Config.FocusWindow
	if title == "" || r.Focuser == nil {
		return nil
	}
	if !r.Focuser.Activate(title) {
		r.Log.Warn().Str("title", title).Msg("ウィンドウが見つかりません")
		r.Log.Debug().Strs("windows", r.Focuser.Titles()).Msg("表示中のウィンドウ")
		return nil
	}
	r.Log.Info().Str("title", title).Msg("ウィンドウを前面にしました")
	return r.Sleeper.Sleep(ctx, focusSettle)
}

func (r *Runner) countdown(ctx context.Context) error {
	cfg := r.Config
	r.printf("%v秒後に処理を開始します...\n", cfg.WaitTime)
	r.printf("電子書籍リーダーで書籍を開き、ウィンドウをクリックしてアクティブにしてください\n")

	wait := cfg.WaitDuration()
	if r.NoCountdown {
		return r.Sleeper.Sleep(ctx, wait)
	}
	for left := int(wait / time.Second); left > 0; left-- {
		r.printf("開始まで %d 秒...\n", left)
		if err := r.Sleeper.Sleep(ctx, time.Second); err != nil {
			return err
		}
	}
	if rest := wait % time.Second; rest > 0 {
		return r.Sleeper.Sleep(ctx, rest)
	}
	return nil
}

func (r *Runner) capture(ctx context.Context, sum *Summary) error {
	cfg := r.Config
	var tracker compare.Tracker

	for page := 1; page <= cfg.PageCount; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		sum.Processed = page
		if r.capturePage(page, sum, &tracker) {
			sum.StoppedEarly = true
			r.printf("同一の画像が %d 回続いたため撮影を終了します\n", cfg.StopAfterIdentical)
			return nil
		}

		// 最後のページ以外はページ送り
		if page == cfg.PageCount {
			break
		}
		r.printf("次のページに移動します...\n")
		if err := r.Advancer.Advance(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			sum.AdvanceFailures++
			r.printf("ページ送りに失敗しました: %v\n", err)
			r.Log.Error().Err(err).Int("page", page).Str("method", r.Advancer.Name()).Msg("ページ送りに失敗しました")
		}
		if err := r.Sleeper.Sleep(ctx, cfg.PageDelayDuration()); err != nil {
			return err
		}
	}
	return nil
}

// capturePage は1ページを撮影して保存します。同一画像の連続で終了すべきときに true を返します。
func (r *Runner) capturePage(page int, sum *Summary, tracker *compare.Tracker) bool {
	cfg := r.Config
	img, err := r.Screen.Capture(cfg.Region)
	if err != nil {
		sum.Missing = append(sum.Missing, page)
		tracker.Reset()
		r.printf("スクリーンショット取得エラー: %v\n", err)
		r.Log.Error().Err(err).Int("page", page).Msg("キャプチャに失敗しました")
		return false
	}

	path, err := output.SavePNG(cfg.OutputFolder, page, img)
	if err != nil {
		sum.Missing = append(sum.Missing, page)
		r.printf("スクリーンショット保存エラー: %v\n", err)
		r.Log.Error().Err(err).Int("page", page).Msg("保存に失敗しました")
	} else {
		sum.Saved++
		r.printf("保存完了: %s\n", path)
		r.printf("ページ %d/%d をキャプチャしました\n", page, cfg.PageCount)
	}

	// ページ送りが実際に効いたかは分からないため、直前と同じ画像なら警告する
	repeats := tracker.Observe(compare.Hash(img))
	if repeats == 0 {
		return false
	}
	sum.Identical = append(sum.Identical, page)
	r.Log.Warn().Int("page", page).Int("repeats", repeats).Msg("直前のページと同じ画像です。ページ送りが失敗した可能性があります")
	return cfg.StopAfterIdentical > 0 && repeats >= cfg.StopAfterIdentical
}

func (r *Runner) printSummary(sum Summary) {
	r.printf("%s\n", strings.Repeat("=", 60))
	r.printf("スクリーンショット取得が完了しました！\n")
	r.printf("保存先: %s\n", sum.Folder)
	r.printf("取得したページ数: %d\n", sum.Pages)
	if sum.StoppedEarly {
		r.printf("処理したページ数: %d（同一画像の連続により途中で終了）\n", sum.Processed)
	}
	if len(sum.Missing) > 0 {
		r.printf("保存できなかったページ: %v\n", sum.Missing)
	}
	if len(sum.Identical) > 0 {
		r.printf("直前と同じ画像だったページ: %v\n", sum.Identical)
	}
	r.printf("\nPDF化するには以下のコマンドを実行してください:\n")
	r.printf(PDFCommand+"\n", filepath.Join(sum.Folder, "page_*.png"))
}
