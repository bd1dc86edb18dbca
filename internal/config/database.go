package config

import (
	"net/url"
	"strings"
)

// DatabaseDSN is DBURL with the prepared-statement setting applied.
func (c Config) DatabaseDSN() string {
	return NormalizeDBURL(c.DBURL, c.DBDisablePreparedBinary)
}

// NormalizeDBURL opts out of binary results for prepared statements, which
// transaction-mode poolers reject. An explicit value in the URL wins.
func NormalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Has("disable_prepared_binary_result") {
		return raw
	}
	query.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// DatabaseName extracts the database name from either a URL or a
// key=value DSN. It returns "" when neither form names one.
func DatabaseName(dsn string) string {
	trimmed := strings.TrimSpace(dsn)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}

	for _, token := range strings.Fields(trimmed) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			return strings.Trim(strings.TrimSpace(name), `"'`)
		}
	}
	return ""
}
