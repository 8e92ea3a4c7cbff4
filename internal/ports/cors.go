package ports

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/Amund211/bosslevels/internal/logging"
)

// localhostSuffix allows plain http from any port on the local machine, e.g. a browser source in streaming software
const localhostSuffix = "localhost"

type DomainSuffixes struct {
	suffixes []string
}

func NewDomainSuffixes(suffixes ...string) (*DomainSuffixes, error) {
	for _, suffix := range suffixes {
		switch {
		case suffix == "":
			return nil, fmt.Errorf("domain suffix should not be empty")
		case strings.HasPrefix(suffix, "."):
			return nil, fmt.Errorf("domain suffix %s should not start with a dot", suffix)
		case strings.Contains(suffix, "://"):
			return nil, fmt.Errorf("domain suffix %s should not contain a scheme", suffix)
		}
	}
	return &DomainSuffixes{suffixes: suffixes}, nil
}

func (s *DomainSuffixes) AnyMatch(origin string) bool {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" || parsed.Path != "" {
		return false
	}

	return slices.ContainsFunc(s.suffixes, func(suffix string) bool {
		return originMatchesSuffix(parsed, suffix)
	})
}

func originMatchesSuffix(origin *url.URL, suffix string) bool {
	if suffix == localhostSuffix {
		return (origin.Scheme == "http" || origin.Scheme == "https") && origin.Hostname() == localhostSuffix
	}

	if origin.Scheme != "https" || origin.Port() != "" {
		return false
	}

	// The suffix itself, or any subdomain of it
	host := origin.Hostname()
	return host == suffix || strings.HasSuffix(host, "."+suffix)
}

func BuildCORSMiddleware(allowedSuffixes *DomainSuffixes) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			if !allowedSuffixes.AnyMatch(origin) {
				next(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)

			if r.Method != http.MethodOptions {
				w.Header().Set("Access-Control-Expose-Headers", logging.CorrelationHeader)
				next(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET,POST")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+logging.PlayerHeader+", "+logging.CorrelationHeader)
			w.Header().Set("Access-Control-Max-Age", "600")
			w.WriteHeader(http.StatusNoContent)
		}
	}
}

// BuildCORSHandler answers preflight requests for a route
func BuildCORSHandler(allowedSuffixes *DomainSuffixes) http.HandlerFunc {
	return BuildCORSMiddleware(allowedSuffixes)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}
