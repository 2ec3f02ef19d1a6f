package validators

import (
	"net"
	"net/mail"
	"strings"
)

// IsEmailDomainValid checa sintaxe e se o domínio resolve (MX ou A/AAAA).
// Evita cadastro de clínica com e-mail de domínio que nunca receberá nada.
func IsEmailDomainValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}

	at := strings.LastIndex(addr.Address, "@")
	if at < 0 {
		return false
	}
	domain := addr.Address[at+1:]
	if domain == "" {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
