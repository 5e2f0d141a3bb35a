// Package prompt はターミナルでの確認・待機プロンプトを扱います。
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Console は In から1行ずつ読み取り、Out に質問を表示します。
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole は Console を作成します。
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// ReadLine は msg を表示して1行読み取ります。入力待ちの間も ctx の終了で戻ります。
func (c *Console) ReadLine(ctx context.Context, msg string) (string, error) {
	fmt.Fprint(c.out, msg)
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		ch <- result{strings.TrimRight(line, "\r\n"), err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

// Confirm は "(y/N)" 形式で確認し、y または yes のときだけ true を返します。
// 入力が終端に達した場合は false です。
func (c *Console) Confirm(ctx context.Context, question string) (bool, error) {
	line, err := c.ReadLine(ctx, question+" (y/N): ")
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// WaitEnter は msg を表示して Enter が押されるまで待ちます。
func (c *Console) WaitEnter(ctx context.Context, msg string) error {
	_, err := c.ReadLine(ctx, msg)
	if err == io.EOF {
		return nil
	}
	return err
}
