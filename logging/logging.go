// Package logging は zerolog のロガーを設定します。
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options はロガーの設定です。
type Options struct {
	Verbose bool
	// File が空でなければ、JSON 形式のログをローテーションしながら書き込みます。
	File string
	// Console はコンソール出力先です。nil なら標準エラー出力です。
	Console io.Writer
}

// Setup はグローバルロガー log.Logger を設定して返します。
func Setup(opts Options) zerolog.Logger {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	var w io.Writer = zerolog.ConsoleWriter{Out: console, TimeFormat: "15:04:05", NoColor: !isTerminal(console)}
	if opts.File != "" {
		w = zerolog.MultiLevelWriter(w, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     30, // days
		})
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	return log.Logger
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
