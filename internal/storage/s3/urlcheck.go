package s3

import (
	"fmt"
	"net/url"
	"strings"

	"escolta/internal/storage"
)

// URLValidator checks a client-supplied object URL against the configured
// bucket and region before the server records or deletes anything based
// on it. Only a URL that passes every check yields a trusted storage key.
type URLValidator struct {
	bucket string
	region string
}

func NewURLValidator(bucket, region string) *URLValidator {
	return &URLValidator{bucket: bucket, region: region}
}

// KeyFromURL parses raw and extracts the storage key. Both
// virtual-hosted-style (bucket.s3.region.amazonaws.com/key) and
// path-style (s3.region.amazonaws.com/bucket/key) hosts are accepted.
// Anything else, a non-HTTPS scheme, a foreign bucket or region, or a
// key with a traversal segment is rejected with ErrUntrustedURL.
func (v *URLValidator) KeyFromURL(raw string) (string, error) {
	const op = "storage.s3.KeyFromURL"

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, storage.ErrUntrustedURL)
	}

	if u.Scheme != "https" {
		return "", fmt.Errorf("%s: scheme %q: %w", op, u.Scheme, storage.ErrUntrustedURL)
	}

	var key string
	switch u.Host {
	case fmt.Sprintf("%s.s3.%s.amazonaws.com", v.bucket, v.region):
		key = strings.TrimPrefix(u.Path, "/")
	case fmt.Sprintf("s3.%s.amazonaws.com", v.region):
		path := strings.TrimPrefix(u.Path, "/")
		bucket, rest, found := strings.Cut(path, "/")
		if !found || bucket != v.bucket {
			return "", fmt.Errorf("%s: bucket mismatch: %w", op, storage.ErrUntrustedURL)
		}
		key = rest
	default:
		return "", fmt.Errorf("%s: host %q: %w", op, u.Host, storage.ErrUntrustedURL)
	}

	if !validKey(key) {
		return "", fmt.Errorf("%s: key %q: %w", op, key, storage.ErrUntrustedURL)
	}

	return key, nil
}

func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") {
		return false
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return false
		}
	}
	return true
}
