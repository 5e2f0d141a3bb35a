package capture

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// regionObject は {"x":..,"y":..,"width":..,"height":..} 形式の表現です。
type regionObject struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

func fromSlice(v []int) (Region, error) {
	if len(v) != 4 {
		return Region{}, fmt.Errorf("region は [x, y, width, height] の4要素が必要です（%d 要素）", len(v))
	}
	return Region{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

// MarshalJSON は設定ファイルと同じ [x, y, width, height] 形式で出力します。
func (r Region) MarshalJSON() ([]byte, error) {
	return json.Marshal([]int{r.X, r.Y, r.Width, r.Height})
}

// UnmarshalJSON は配列形式とオブジェクト形式の両方を受け付けます。
func (r *Region) UnmarshalJSON(data []byte) error {
	var arr []int
	if err := json.Unmarshal(data, &arr); err == nil {
		reg, err := fromSlice(arr)
		if err != nil {
			return err
		}
		*r = reg
		return nil
	}
	var obj regionObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("region の形式が正しくありません: %s", string(data))
	}
	*r = Region(obj)
	return nil
}

// UnmarshalYAML はシーケンス形式とマッピング形式の両方を受け付けます。
func (r *Region) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var arr []int
		if err := value.Decode(&arr); err != nil {
			return err
		}
		reg, err := fromSlice(arr)
		if err != nil {
			return err
		}
		*r = reg
		return nil
	case yaml.MappingNode:
		var obj regionObject
		if err := value.Decode(&obj); err != nil {
			return err
		}
		*r = Region(obj)
		return nil
	}
	return fmt.Errorf("region の形式が正しくありません（行 %d）", value.Line)
}

// SetValue は環境変数の "x,y,width,height" 形式を読み込みます（環境変数 KINDLESHOT_REGION 用）。
func (r *Region) SetValue(s string) error {
	s = strings.Trim(strings.TrimSpace(s), "[]()")
	parts := strings.Split(s, ",")
	arr := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("region の値が数値ではありません: %q", p)
		}
		arr = append(arr, n)
	}
	reg, err := fromSlice(arr)
	if err != nil {
		return err
	}
	*r = reg
	return nil
}

// UnmarshalTOML は TOML の配列形式とテーブル形式を受け付けます。
func (r *Region) UnmarshalTOML(v interface{}) error {
	switch t := v.(type) {
	case []interface{}:
		arr := make([]int, 0, len(t))
		for _, e := range t {
			n, ok := e.(int64)
			if !ok {
				return fmt.Errorf("region の値が整数ではありません: %v", e)
			}
			arr = append(arr, int(n))
		}
		reg, err := fromSlice(arr)
		if err != nil {
			return err
		}
		*r = reg
		return nil
	case map[string]interface{}:
		get := func(k string) int {
			n, _ := t[k].(int64)
			return int(n)
		}
		*r = Region{X: get("x"), Y: get("y"), Width: get("width"), Height: get("height")}
		return nil
	}
	return fmt.Errorf("region の形式が正しくありません: %v", v)
}
