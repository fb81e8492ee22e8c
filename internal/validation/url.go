package validation

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	apperrors "github.com/parsenplate/scraper/internal/errors"
)

// ErrBlockedAddress is returned when a connection targets a non-public address.
var ErrBlockedAddress = errors.New("connection to non-public address refused")

var blockedHostLabels = map[string]bool{
	"localhost": true,
	"internal":  true,
	"local":     true,
	"intranet":  true,
}

// ValidateTargetURL rejects URLs that are not absolute http(s) URLs or that
// point at loopback, private, link-local or internal hosts.
func ValidateTargetURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return apperrors.NewValidationError("URL is required and must be a string", apperrors.CodeInvalidURL, "Provide the full address of a recipe page.")
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return apperrors.NewValidationError("Invalid URL format", apperrors.CodeInvalidURL, "Provide the full address of a recipe page, including https://.")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apperrors.NewValidationError("Only http and https URLs are supported", apperrors.CodeInvalidURL, "Use an http or https link.")
	}

	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if isBlockedHost(host) {
		return apperrors.NewValidationError("Invalid or potentially unsafe URL", apperrors.CodeInvalidURL, "Use a public recipe website.")
	}

	return nil
}

func isBlockedHost(host string) bool {
	if host == "" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return isBlockedIP(ip)
	}
	for _, label := range strings.Split(host, ".") {
		if blockedHostLabels[label] {
			return true
		}
	}
	return false
}

func isBlockedIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsUnspecified()
}

// DialControl refuses connections to loopback, private, link-local and
// unspecified addresses. The address is already resolved, so it also covers
// redirects and hostnames pointing at internal IPs.
func DialControl(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	ip := net.ParseIP(host)
	if ip == nil || isBlockedIP(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	return nil
}
