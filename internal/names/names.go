// Package names classifies display names read from legacy tables.
package names

import (
	"net/netip"
	"strings"
)

// IsIP reports whether name is structured like an IP address: a bare
// IPv4 or IPv6 address, a CIDR prefix, or a hyphenated address range.
// Such names record anonymous activity and must never become canonical
// user accounts.
func IsIP(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}

	if strings.Contains(name, "/") {
		_, err := netip.ParsePrefix(name)
		return err == nil
	}

	if lo, hi, ok := strings.Cut(name, "-"); ok {
		return isAddr(lo) && isAddr(hi)
	}

	return isAddr(name)
}

func isAddr(s string) bool {
	_, err := netip.ParseAddr(strings.TrimSpace(s))
	return err == nil
}
