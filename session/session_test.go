package session

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"KindleShot/advance"
	"KindleShot/capture"
	"KindleShot/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScreen は呼び出しごとに色の違う画像を返します。
type fakeScreen struct {
	calls   int
	failOn  map[int]bool
	same    bool
	regions []capture.Region
}

func (s *fakeScreen) Capture(r capture.Region) (image.Image, error) {
	s.calls++
	s.regions = append(s.regions, r)
	if s.failOn[s.calls] {
		return nil, errors.New("capture failed")
	}
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	shade := uint8(s.calls)
	if s.same {
		shade = 0
	}
	img.SetRGBA(0, 0, color.RGBA{R: shade, A: 255})
	return img, nil
}

type fakeAdvancer struct {
	calls int
	err   error
}

func (a *fakeAdvancer) Name() string { return "fake" }

func (a *fakeAdvancer) Advance(ctx context.Context) error {
	a.calls++
	return a.err
}

type fakeConfirmer struct {
	answer bool
	asked  int
}

func (c *fakeConfirmer) Confirm(ctx context.Context, question string) (bool, error) {
	c.asked++
	return c.answer, nil
}

type fakeSleeper struct {
	slept  []time.Duration
	cancel context.CancelFunc
	after  int
}

func (s *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.slept = append(s.slept, d)
	if s.cancel != nil && len(s.slept) >= s.after {
		s.cancel()
	}
	return ctx.Err()
}

type fakeFocuser struct {
	titles  []string
	found   bool
	windows []string
}

func (f *fakeFocuser) Activate(title string) bool {
	f.titles = append(f.titles, title)
	return f.found
}

func (f *fakeFocuser) Titles() []string { return f.windows }

func testConfig(t *testing.T, pages int) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.OutputFolder = filepath.Join(t.TempDir(), "shots")
	cfg.PageCount = pages
	cfg.WaitTime = 2
	cfg.PageDelay = 1
	return cfg
}

func newRunner(cfg config.Config) (*Runner, *fakeScreen, *fakeAdvancer, *fakeSleeper, *bytes.Buffer) {
	screen := &fakeScreen{}
	adv := &fakeAdvancer{}
	sleeper := &fakeSleeper{}
	out := &bytes.Buffer{}
	r := &Runner{
		Config:    cfg,
		Screen:    screen,
		Advancer:  adv,
		Confirmer: &fakeConfirmer{},
		Sleeper:   sleeper,
		Out:       out,
		Log:       zerolog.Nop(),
	}
	return r, screen, adv, sleeper, out
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestRunCapturesAllPages(t *testing.T) {
	cfg := testConfig(t, 5)
	r, screen, adv, _, out := newRunner(cfg)

	var states []State
	r.OnState = func(s State) { states = append(states, s) }

	sum, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"page_001.png", "page_002.png", "page_003.png", "page_004.png", "page_005.png"}, listFiles(t, cfg.OutputFolder))
	assert.Equal(t, 4, adv.calls)
	assert.Equal(t, 5, screen.calls)
	for _, reg := range screen.regions {
		assert.Equal(t, cfg.Region, reg)
	}
	assert.Equal(t, []State{Countdown, Capturing, Done}, states)

	abs, err := filepath.Abs(cfg.OutputFolder)
	require.NoError(t, err)
	assert.Equal(t, Summary{Folder: abs, Pages: 5, Saved: 5}, sum)
	assert.Contains(t, out.String(), "保存先: "+abs)
	assert.Contains(t, out.String(), "取得したページ数: 5")
	assert.Contains(t, out.String(), "img2pdf")
}

func TestRunSinglePageNeverAdvances(t *testing.T) {
	cfg := testConfig(t, 1)
	r, _, adv, _, _ := newRunner(cfg)

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"page_001.png"}, listFiles(t, cfg.OutputFolder))
	assert.Equal(t, 0, adv.calls)
}

func TestRunCountdownAndDelays(t *testing.T) {
	cfg := testConfig(t, 3)
	cfg.WaitTime = 2.5
	r, _, _, sleeper, out := newRunner(cfg)

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{
		time.Second, time.Second, 500 * time.Millisecond, // カウントダウン
		time.Second, time.Second, // ページ間待機
	}, sleeper.slept)
	assert.Contains(t, out.String(), "開始まで 2 秒...")
	assert.Contains(t, out.String(), "開始まで 1 秒...")
}

func TestRunNoCountdown(t *testing.T) {
	cfg := testConfig(t, 2)
	cfg.WaitTime = 10
	r, _, _, sleeper, out := newRunner(cfg)
	r.NoCountdown = true

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{10 * time.Second, time.Second}, sleeper.slept)
	assert.NotContains(t, out.String(), "開始まで")
}

func TestRunCaptureFailureSkipsPage(t *testing.T) {
	cfg := testConfig(t, 4)
	r, screen, adv, _, _ := newRunner(cfg)
	screen.failOn = map[int]bool{2: true}

	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"page_001.png", "page_003.png", "page_004.png"}, listFiles(t, cfg.OutputFolder))
	assert.Equal(t, []int{2}, sum.Missing)
	assert.Equal(t, 3, sum.Saved)
	assert.Equal(t, 3, adv.calls)
	assert.Equal(t, 4, screen.calls, "失敗したページは再試行しない")
}

func TestRunAdvanceFailureContinues(t *testing.T) {
	cfg := testConfig(t, 3)
	r, screen, adv, _, out := newRunner(cfg)
	adv.err = errors.New("全てのページ送り方法が失敗しました")

	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, screen.calls)
	assert.Equal(t, 2, adv.calls)
	assert.Equal(t, 2, sum.AdvanceFailures)
	assert.Len(t, listFiles(t, cfg.OutputFolder), 3)
	assert.Contains(t, out.String(), "ページ送りに失敗しました")
}

func TestRunAutoAllPrimitivesFailStillCaptures(t *testing.T) {
	cfg := testConfig(t, 3)
	r, screen, _, sleeper, _ := newRunner(cfg)
	st, err := advance.New(advance.Auto, failingInput{}, cfg.AdvanceOptions(), sleeper, zerolog.Nop())
	require.NoError(t, err)
	r.Advancer = st

	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, screen.calls)
	assert.Equal(t, 2, sum.AdvanceFailures)
	assert.Len(t, listFiles(t, cfg.OutputFolder), 3)
}

type failingInput struct{}

func (failingInput) PressKey(string) error      { return errors.New("key") }
func (failingInput) Hotkey(string) error        { return errors.New("hotkey") }
func (failingInput) Click(int, int) error       { return errors.New("click") }
func (failingInput) Scroll(int, int, int) error { return errors.New("scroll") }

func TestRunOverflowDeclined(t *testing.T) {
	cfg := testConfig(t, 50).WithPageCount(2000)
	r, screen, adv, _, out := newRunner(cfg)
	confirmer := &fakeConfirmer{answer: false}
	r.Confirmer = confirmer

	_, err := r.Run(context.Background())
	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, 1, confirmer.asked)
	assert.NoDirExists(t, cfg.OutputFolder)
	assert.Equal(t, 0, screen.calls)
	assert.Equal(t, 0, adv.calls)
	assert.Contains(t, out.String(), "警告: ページ数(2000)が最大値(1000)を超えています")
}

func TestRunOverflowAccepted(t *testing.T) {
	cfg := testConfig(t, 3)
	cfg.MaxPages = 2
	r, screen, _, _, _ := newRunner(cfg)
	r.Confirmer = &fakeConfirmer{answer: true}

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, screen.calls)
}

func TestRunPageOverride(t *testing.T) {
	cfg := testConfig(t, 50).WithPageCount(3)
	r, screen, adv, _, out := newRunner(cfg)

	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Pages)
	assert.Equal(t, 3, screen.calls)
	assert.Equal(t, 2, adv.calls)
	assert.Contains(t, out.String(), "取得回数: 3回")
	assert.Contains(t, out.String(), "ページ 3/3 をキャプチャしました")
	assert.NotContains(t, out.String(), "取得回数: 50回")
}

func TestRunIdenticalPagesFlagged(t *testing.T) {
	cfg := testConfig(t, 3)
	r, screen, _, _, _ := newRunner(cfg)
	screen.same = true

	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, sum.Identical)
	assert.False(t, sum.StoppedEarly)
	assert.Len(t, listFiles(t, cfg.OutputFolder), 3)
}

func TestRunStopAfterIdentical(t *testing.T) {
	cfg := testConfig(t, 10)
	cfg.StopAfterIdentical = 2
	r, screen, adv, _, out := newRunner(cfg)
	screen.same = true

	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, sum.StoppedEarly)
	assert.Equal(t, 3, sum.Processed)
	assert.Equal(t, 3, screen.calls)
	assert.Equal(t, 2, adv.calls)
	assert.Contains(t, out.String(), "取得したページ数: 10")
	assert.Contains(t, out.String(), "処理したページ数: 3")
}

func TestRunFocusWindow(t *testing.T) {
	cfg := testConfig(t, 1)
	cfg.FocusWindow = "Kindle"
	r, _, _, sleeper, _ := newRunner(cfg)
	focuser := &fakeFocuser{found: true}
	r.Focuser = focuser

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Kindle"}, focuser.titles)
	assert.Equal(t, focusSettle, sleeper.slept[0])
}

func TestRunFocusWindowNotFoundListsTitles(t *testing.T) {
	cfg := testConfig(t, 1)
	cfg.FocusWindow = "Kindle"
	r, _, _, sleeper, _ := newRunner(cfg)
	var logs bytes.Buffer
	r.Log = zerolog.New(&logs).Level(zerolog.DebugLevel)
	r.Focuser = &fakeFocuser{windows: []string{"メモ帳", "エクスプローラー"}}

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "ウィンドウが見つかりません")
	assert.Contains(t, logs.String(), `"windows":["メモ帳","エクスプローラー"]`)
	assert.NotContains(t, sleeper.slept, focusSettle)
}

func TestRunInterrupted(t *testing.T) {
	cfg := testConfig(t, 5)
	r, screen, _, sleeper, _ := newRunner(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// カウントダウン2回 + ページ間待機1回の後に中断
	sleeper.cancel = cancel
	sleeper.after = 3

	_, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, screen.calls)
	assert.Equal(t, []string{"page_001.png"}, listFiles(t, cfg.OutputFolder))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "countdown", Countdown.String())
	assert.Equal(t, "capturing", Capturing.String())
	assert.Equal(t, "done", Done.String())
	assert.Equal(t, "State(9)", State(9).String())
}
