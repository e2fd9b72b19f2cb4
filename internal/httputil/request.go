package httputil

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// maxFormSize bounds form submissions; every form here is small text.
const maxFormSize = 1 << 20 // 1MB

// ParseForm parses an urlencoded form body with a size cap and returns the
// posted values.
func ParseForm(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form submission: %w", err)
	}
	return r.PostForm, nil
}

// SafeNextPath returns target if it is a same-site absolute path, otherwise
// fallback. Keeps the post-login redirect from becoming an open redirect.
func SafeNextPath(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return fallback
	}
	return target
}
