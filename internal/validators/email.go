package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid confere se o domínio do email resolve (MX ou A/AAAA).
// Barato o bastante para rodar inline no cadastro; formato já foi validado
// pelo binding.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
