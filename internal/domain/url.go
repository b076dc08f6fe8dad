package domain

import "net/url"

// UnknownDomain is stored when the URL host cannot be parsed.
const UnknownDomain = "unknown"

// IsValidURL reports whether raw is an absolute http or https URL.
// Everything else (javascript:, data:, ftp:, relative, unparsable) is
// rejected; this check is shared by the manual-save and visit paths.
func IsValidURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// DomainOf extracts the hostname from raw, falling back to UnknownDomain
// when the URL cannot be parsed or has no host.
func DomainOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return UnknownDomain
	}
	return u.Hostname()
}
