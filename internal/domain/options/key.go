package options

import (
	"regexp"
	"strings"
)

// instanceSuffix — хвост "_a1b2c3d4", который добавляется ключам опций у
// позиций, размноженных поштучно.
var instanceSuffix = regexp.MustCompile(`[_-][0-9a-fA-F]{8}$`)

// StripInstanceSuffix убирает хвост экземпляра, если он есть.
func StripInstanceSuffix(key string) string {
	key = strings.TrimSpace(key)
	return instanceSuffix.ReplaceAllString(key, "")
}

// NormalizeKey — ключ для сравнения: без хвоста экземпляра, в нижнем регистре.
func NormalizeKey(key string) string {
	return strings.ToLower(StripInstanceSuffix(key))
}
