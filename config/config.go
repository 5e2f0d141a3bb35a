// Package config は撮影設定ファイルを読み込みます。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"KindleShot/advance"
	"KindleShot/capture"
	"KindleShot/timing"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"
)

// EnvRegion は領域を "x,y,width,height" で上書きする環境変数です。
const EnvRegion = "KINDLESHOT_REGION"

var (
	// ErrMalformed は設定ファイルの形式が正しくないことを表します。
	ErrMalformed = errors.New("設定ファイルの形式が正しくありません")
	// ErrInvalid は設定値が範囲外であることを表します。
	ErrInvalid = errors.New("設定値が正しくありません")
)

// Config は1回の実行で使う設定です。読み込み後は値として扱い、変更しません。
// 値は設定ファイル（JSON / YAML / TOML）と環境変数から取得します。
// Region は env タグを持たず、EnvRegion を Load が直接適用します。
type Config struct {
	WaitTime     float64        `json:"wait_time" yaml:"wait_time" toml:"wait_time" env:"KINDLESHOT_WAIT_TIME"`
	PageCount    int            `json:"page_count" yaml:"page_count" toml:"page_count" env:"KINDLESHOT_PAGE_COUNT"`
	Region       capture.Region `json:"region" yaml:"region" toml:"region"`
	PageDelay    float64        `json:"page_delay" yaml:"page_delay" toml:"page_delay" env:"KINDLESHOT_PAGE_DELAY"`
	OutputFolder string         `json:"output_folder" yaml:"output_folder" toml:"output_folder" env:"KINDLESHOT_OUTPUT_FOLDER"`
	PageMethod   advance.Method `json:"page_method" yaml:"page_method" toml:"page_method" env:"KINDLESHOT_PAGE_METHOD"`
	MaxPages     int            `json:"max_pages" yaml:"max_pages" toml:"max_pages" env:"KINDLESHOT_MAX_PAGES"`

	NextKey      string `json:"next_key" yaml:"next_key" toml:"next_key" env:"KINDLESHOT_NEXT_KEY"`
	Hotkey       string `json:"hotkey" yaml:"hotkey" toml:"hotkey" env:"KINDLESHOT_HOTKEY"`
	ClickOffset  int    `json:"click_offset" yaml:"click_offset" toml:"click_offset" env:"KINDLESHOT_CLICK_OFFSET"`
	ScrollClicks int    `json:"scroll_clicks" yaml:"scroll_clicks" toml:"scroll_clicks" env:"KINDLESHOT_SCROLL_CLICKS"`
	// FocusWindow が空でなければ、開始前にタイトルにこの文字列を含むウィンドウを前面にします。
	FocusWindow string `json:"focus_window" yaml:"focus_window" toml:"focus_window" env:"KINDLESHOT_FOCUS_WINDOW"`
	// StopAfterIdentical が正なら、同一画像がその回数連続した時点で撮影を終了します（0 は無効）。
	StopAfterIdentical int    `json:"stop_after_identical" yaml:"stop_after_identical" toml:"stop_after_identical" env:"KINDLESHOT_STOP_AFTER_IDENTICAL"`
	LogFile            string `json:"log_file" yaml:"log_file" toml:"log_file" env:"KINDLESHOT_LOG_FILE"`
}

// Default は設定ファイルが無いときに使う既定の設定です。
func Default() Config {
	opts := advance.DefaultOptions(capture.Region{})
	return Config{
		WaitTime:     10,
		PageCount:    50,
		Region:       capture.Region{X: 200, Y: 150, Width: 800, Height: 1000},
		PageDelay:    3,
		OutputFolder: "screenshots",
		PageMethod:   advance.Auto,
		MaxPages:     1000,
		NextKey:      opts.NextKey,
		Hotkey:       opts.Combo,
		ClickOffset:  opts.ClickOffset,
		ScrollClicks: opts.ScrollClicks,
	}
}

// Load は path の設定ファイルを読み込みます。
// ファイルが存在しなければ既定値を使います（環境変数による上書きは適用されます）。
// ファイルに無い項目は既定値のままです。
func Load(path string, log zerolog.Logger) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", path).Msg("設定ファイルが見つかりません。デフォルト設定を使用します")
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("%w: 環境変数: %v", ErrMalformed, err)
		}
		if err := cfg.applyRegionEnv(); err != nil {
			return Config{}, err
		}
		return cfg, cfg.finish()
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	if err := cfg.applyRegionEnv(); err != nil {
		return Config{}, err
	}
	log.Info().Str("path", path).Msg("設定ファイルを読み込みました")
	return cfg, cfg.finish()
}

func (c *Config) applyRegionEnv() error {
	v, ok := os.LookupEnv(EnvRegion)
	if !ok {
		return nil
	}
	if err := c.Region.SetValue(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, EnvRegion, err)
	}
	return nil
}

func (c *Config) finish() error {
	m, err := advance.ParseMethod(string(c.PageMethod))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	c.PageMethod = m
	return c.Validate()
}

// Validate は設定値を確認します。
func (c Config) Validate() error {
	if err := c.Region.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.PageCount < 1 {
		return fmt.Errorf("%w: page_count は1以上である必要があります（%d）", ErrInvalid, c.PageCount)
	}
	if c.MaxPages < 1 {
		return fmt.Errorf("%w: max_pages は1以上である必要があります（%d）", ErrInvalid, c.MaxPages)
	}
	if c.WaitTime < 0 || c.PageDelay < 0 {
		return fmt.Errorf("%w: wait_time と page_delay は0以上である必要があります", ErrInvalid)
	}
	if c.OutputFolder == "" {
		return fmt.Errorf("%w: output_folder が空です", ErrInvalid)
	}
	if _, err := advance.ParseMethod(string(c.PageMethod)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.ClickOffset < 0 {
		return fmt.Errorf("%w: click_offset は0以上である必要があります（%d）", ErrInvalid, c.ClickOffset)
	}
	if c.ScrollClicks < 1 {
		return fmt.Errorf("%w: scroll_clicks は1以上である必要があります（%d）", ErrInvalid, c.ScrollClicks)
	}
	if c.StopAfterIdentical < 0 {
		return fmt.Errorf("%w: stop_after_identical は0以上である必要があります（%d）", ErrInvalid, c.StopAfterIdentical)
	}
	return nil
}

// WithPageCount はコマンドラインで指定されたページ数で上書きした設定を返します。
// n が0以下なら c をそのまま返します。
func (c Config) WithPageCount(n int) Config {
	if n > 0 {
		c.PageCount = n
	}
	return c
}

// ExceedsMax はページ数が上限を超えているかを返します。
func (c Config) ExceedsMax() bool {
	return c.PageCount > c.MaxPages
}

// WaitDuration は開始前の待機時間です。
func (c Config) WaitDuration() time.Duration {
	return timing.Seconds(c.WaitTime)
}

// PageDelayDuration はページ送り後の待機時間です。
func (c Config) PageDelayDuration() time.Duration {
	return timing.Seconds(c.PageDelay)
}

// AdvanceOptions はページ送りのパラメータを返します。
func (c Config) AdvanceOptions() advance.Options {
	return advance.Options{
		Region:       c.Region,
		NextKey:      c.NextKey,
		Combo:        c.Hotkey,
		ClickOffset:  c.ClickOffset,
		ScrollClicks: c.ScrollClicks,
	}
}
