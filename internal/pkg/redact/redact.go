// redact маскирует чувствительные значения перед записью в лог.
package redact

import (
	"strconv"
	"strings"
)

// Email оставляет домен и первые две руны локальной части:
// "alice@example.com" -> "al***@example.com". Короткая локальная часть
// скрывается целиком, строка без единственного '@' превращается в "***".
func Email(s string) string {
	local, domain, ok := strings.Cut(s, "@")
	if !ok || strings.Contains(domain, "@") {
		return "***"
	}

	if r := []rune(local); len(r) > 2 {
		return string(r[:2]) + "***@" + domain
	}

	return "***@" + domain
}

// Token скрывает токен, сохраняя только длину и число сегментов JWT.
func Token(tok string) string {
	if tok == "" {
		return ""
	}

	return "[REDACTED len=" + strconv.Itoa(len(tok)) +
		" parts=" + strconv.Itoa(strings.Count(tok, ".")+1) + "]"
}
