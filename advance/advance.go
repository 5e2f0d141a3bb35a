// Package advance は電子書籍リーダーのページ送り操作を扱います。
//
// keyboard, mouse, scroll, hotkey の4つの基本操作はそれぞれ1回の入力を送り、
// 描画を待つため一定時間（Settle）待機します。auto は基本操作を固定の順序で
// 試し、最初に成功したところで止まります。ページが実際に変わったかは確認しません。
package advance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"KindleShot/capture"
	"KindleShot/timing"

	"github.com/rs/zerolog"
)

// Settle は入力を送った後、ページの描画を待つ時間です。
const Settle = 500 * time.Millisecond

// Method はページ送り方法です。
type Method string

const (
	Auto     Method = "auto"
	Keyboard Method = "keyboard"
	Mouse    Method = "mouse"
	Scroll   Method = "scroll"
	Hotkey   Method = "hotkey"
)

// AutoOrder は auto で試す順序です。
var AutoOrder = []Method{Keyboard, Mouse, Scroll, Hotkey}

// ParseMethod は大文字小文字を区別せずに Method を返します。
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case Auto, Keyboard, Mouse, Scroll, Hotkey:
		return m, nil
	}
	return "", fmt.Errorf("不明なページ送り方法です: %q（auto, keyboard, mouse, scroll, hotkey）", s)
}

// Input は入力シミュレーションのバックエンドです。各呼び出しは成功するかエラーを返します。
type Input interface {
	PressKey(key string) error
	Hotkey(combo string) error
	Click(x, y int) error
	// Scroll は (x, y) で clicks ノッチ分ホイールを回します。負の値は下方向です。
	Scroll(x, y, clicks int) error
}

// Strategy はページを1回送ります。
type Strategy interface {
	Name() string
	Advance(ctx context.Context) error
}

// Options は基本操作のパラメータです。
type Options struct {
	Region capture.Region
	// NextKey は keyboard で押すキー（例: "right"）。
	NextKey string
	// Combo は hotkey で送る組み合わせ（例: "ctrl+right"）。
	Combo string
	// ClickOffset は mouse でクリックする位置の、領域右端からの距離です。
	ClickOffset int
	// ScrollClicks は scroll で下方向に回すノッチ数です。
	ScrollClicks int
}

// DefaultOptions は region に対する既定値を返します。
func DefaultOptions(region capture.Region) Options {
	return Options{
		Region:       region,
		NextKey:      "right",
		Combo:        "ctrl+right",
		ClickOffset:  50,
		ScrollClicks: 3,
	}
}

// ClickPoint は mouse でクリックする点（右端から ClickOffset、縦方向は中央）です。
func (o Options) ClickPoint() (int, int) {
	r := o.Region
	return r.X + r.Width - o.ClickOffset, r.Y + r.Height/2
}

// primitive は1回の入力と Settle の待機からなる基本操作です。
type primitive struct {
	method  Method
	send    func() error
	sleeper timing.Sleeper
	log     zerolog.Logger
}

func (p *primitive) Name() string { return string(p.method) }

func (p *primitive) Advance(ctx context.Context) error {
	p.log.Debug().Str("method", string(p.method)).Msg("ページ送り")
	if err := p.send(); err != nil {
		return fmt.Errorf("%s: %w", p.method, err)
	}
	return p.sleeper.Sleep(ctx, Settle)
}

// chain は戦略を順に試し、最初の成功で止まります。
type chain struct {
	steps []Strategy
	log   zerolog.Logger
}

func (c *chain) Name() string { return string(Auto) }

func (c *chain) Advance(ctx context.Context) error {
	var errs []error
	for i, s := range c.steps {
		c.log.Debug().Int("attempt", i+1).Str("method", s.Name()).Msg("ページ送りを試行")
		err := s.Advance(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn().Err(err).Str("method", s.Name()).Msg("ページ送りに失敗しました")
		errs = append(errs, err)
	}
	return fmt.Errorf("全てのページ送り方法が失敗しました: %w", errors.Join(errs...))
}

// New は method に対応する Strategy を返します。
func New(method Method, in Input, opts Options, sleeper timing.Sleeper, log zerolog.Logger) (Strategy, error) {
	method, err := ParseMethod(string(method))
	if err != nil {
		return nil, err
	}
	if method == Auto {
		steps := make([]Strategy, 0, len(AutoOrder))
		for _, m := range AutoOrder {
			steps = append(steps, newPrimitive(m, in, opts, sleeper, log))
		}
		return &chain{steps: steps, log: log}, nil
	}
	return newPrimitive(method, in, opts, sleeper, log), nil
}

func newPrimitive(m Method, in Input, opts Options, sleeper timing.Sleeper, log zerolog.Logger) Strategy {
	p := &primitive{method: m, sleeper: sleeper, log: log}
	switch m {
	case Keyboard:
		p.send = func() error { return in.PressKey(opts.NextKey) }
	case Mouse:
		p.send = func() error {
			x, y := opts.ClickPoint()
			return in.Click(x, y)
		}
	case Scroll:
		p.send = func() error {
			c := opts.Region.Center()
			return in.Scroll(c.X, c.Y, -opts.ScrollClicks)
		}
	case Hotkey:
		p.send = func() error { return in.Hotkey(opts.Combo) }
	}
	return p
}
