package validators

import "strings"

// NormalizePhone remove máscara e espaços; mantém um + inicial se houver.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func IsPhoneValid(phone string) bool {
	n := NormalizePhone(phone)
	n = strings.TrimPrefix(n, "+")
	return len(n) >= 8 && len(n) <= 15
}
