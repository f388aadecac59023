package measure

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Dimension — линейный размер в сантиметрах.
type Dimension float64

func (d Dimension) Float() float64 { return float64(d) }

// Meters переводит сантиметры в метры.
func (d Dimension) Meters() float64 { return float64(d) / 100 }

// Parse превращает пользовательский ввод в размер > 0.
// Пусто, ноль, минус, мусор — ok=false ("не введено"), а не ноль.
func Parse(raw any) (Dimension, bool) {
	v, ok := toFloat(raw)
	if !ok || v <= 0 {
		return 0, false
	}
	return Dimension(v), true
}

// ParseAllowZero — то же для необязательных припусков (pooling и т.п.),
// где явный ноль допустим.
func ParseAllowZero(raw any) (Dimension, bool) {
	v, ok := toFloat(raw)
	if !ok || v < 0 {
		return 0, false
	}
	return Dimension(v), true
}

func toFloat(raw any) (float64, bool) {
	var v float64
	switch x := raw.(type) {
	case nil:
		return 0, false
	case string:
		return parseString(x)
	case *string:
		if x == nil {
			return 0, false
		}
		return parseString(*x)
	case json.Number:
		return parseString(string(x))
	case float64:
		v = x
	case *float64:
		if x == nil {
			return 0, false
		}
		v = *x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int32:
		v = float64(x)
	case int64:
		v = float64(x)
	case Dimension:
		v = float64(x)
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseString понимает и "12.5", и "12,5".
func parseString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
