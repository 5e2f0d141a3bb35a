package keyboard

import (
	"fmt"
	"strings"
)

// Modifier は修飾キーです。
type Modifier string

const (
	Ctrl  Modifier = "CTRL"
	Alt   Modifier = "ALT"
	Shift Modifier = "SHIFT"
	Win   Modifier = "WIN"
)

// Combo は修飾キーとメインキーの組み合わせ（例: Ctrl+Right）です。
type Combo struct {
	Modifiers []Modifier
	Key       string
}

// keyAliases は設定ファイルで使う短い名前を sendinput のキー名に揃えます。
var keyAliases = map[string]string{
	"RIGHT":    "ARROWRIGHT",
	"LEFT":     "ARROWLEFT",
	"UP":       "ARROWUP",
	"DOWN":     "ARROWDOWN",
	"RETURN":   "ENTER",
	"PGDN":     "PAGEDOWN",
	"PGUP":     "PAGEUP",
	"SPACEBAR": "SPACE",
	"ESC":      "ESCAPE",
}

func modifierOf(p string) (Modifier, bool) {
	switch p {
	case "CTRL", "CONTROL":
		return Ctrl, true
	case "ALT":
		return Alt, true
	case "SHIFT":
		return Shift, true
	case "WIN", "SUPER", "CMD":
		return Win, true
	}
	return "", false
}

// ParseCombo はキー操作文字列（例: "right", "Ctrl+Right"）を解析します。
// 最後の要素がメインキー、それ以前は修飾キーです。
func ParseCombo(s string) (Combo, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Combo{}, fmt.Errorf("キー操作が空です")
	}
	parts := strings.Split(s, "+")
	var c Combo
	for i, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" {
			return Combo{}, fmt.Errorf("キー操作の形式が正しくありません: %q", s)
		}
		if i < len(parts)-1 {
			m, ok := modifierOf(p)
			if !ok {
				return Combo{}, fmt.Errorf("不明な修飾キーです: %q", p)
			}
			c.Modifiers = append(c.Modifiers, m)
			continue
		}
		if alias, ok := keyAliases[p]; ok {
			p = alias
		}
		c.Key = p
	}
	return c, nil
}

func (c Combo) String() string {
	parts := make([]string, 0, len(c.Modifiers)+1)
	for _, m := range c.Modifiers {
		parts = append(parts, string(m))
	}
	parts = append(parts, c.Key)
	return strings.Join(parts, "+")
}
