//go:build windows

package keyboard

import (
	"fmt"

	"github.com/dacapoday/sendinput"
)

var modifierCodes = map[Modifier]sendinput.KeyCode{
	Ctrl:  sendinput.KEY_LCONTROL,
	Alt:   sendinput.KEY_LMENU,
	Shift: sendinput.KEY_LSHIFT,
	Win:   sendinput.KEY_LWIN,
}

// sendinputNames は sendinput.Key が独自の綴りで受け付けるキー名です。
var sendinputNames = map[string]string{
	"ESCAPE": "ESCCAPE",
}

// keyCode はメインキー名を仮想キーコードに変換します。
func keyCode(name string) (sendinput.KeyCode, error) {
	lookup := name
	if n, ok := sendinputNames[name]; ok {
		lookup = n
	}
	code := sendinput.Key(lookup)
	if code == 0 && len(name) == 1 {
		c := name[0]
		// A-Z と 0-9 は仮想キーコードが ASCII と一致する
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			code = sendinput.KeyCode(c)
		}
	}
	if code == 0 {
		return 0, fmt.Errorf("不明なキーです: %q", name)
	}
	return code, nil
}

// Send はキー操作文字列（例: "right", "Ctrl+Right"）を1回送信します。
func Send(keyOperation string) error {
	combo, err := ParseCombo(keyOperation)
	if err != nil {
		return err
	}
	main, err := keyCode(combo.Key)
	if err != nil {
		return err
	}
	modifiers := make([]sendinput.KeyCode, 0, len(combo.Modifiers))
	for _, m := range combo.Modifiers {
		modifiers = append(modifiers, modifierCodes[m])
	}

	// 修飾キーを押す
	for i, m := range modifiers {
		if err := sendinput.SendKeyboardInput(m, true); err != nil {
			releaseModifiers(modifiers[:i])
			return fmt.Errorf("%s: %w", combo, err)
		}
	}
	// メインキーを押して離す
	if err := sendinput.SendKeyboardInput(main, true); err != nil {
		releaseModifiers(modifiers)
		return fmt.Errorf("%s: %w", combo, err)
	}
	if err := sendinput.SendKeyboardInput(main, false); err != nil {
		releaseModifiers(modifiers)
		return fmt.Errorf("%s: %w", combo, err)
	}
	// 修飾キーを離す（逆順）
	releaseModifiers(modifiers)
	return nil
}

func releaseModifiers(modifiers []sendinput.KeyCode) {
	for i := len(modifiers) - 1; i >= 0; i-- {
		_ = sendinput.SendKeyboardInput(modifiers[i], false)
	}
}
