package http

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/vidinfo"
	"golang.org/x/net/publicsuffix"
)

// Ensure CookieStore implements vidinfo.CredentialStore at compile time.
var _ vidinfo.CredentialStore = (*CookieStore)(nil)

const httpOnlyPrefix = "#HttpOnly_"

// CookieStore holds cookies in a public-suffix aware jar. It serves both as
// the credential store handed to site handlers and as the jar used by the
// HTTP fetcher.
type CookieStore struct {
	jar *cookiejar.Jar
	now func() time.Time
}

// NewCookieStore creates an empty CookieStore.
func NewCookieStore() (*CookieStore, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	return &CookieStore{jar: jar, now: time.Now}, nil
}

// LoadCookieStore reads a Netscape cookies.txt file into a new CookieStore.
func LoadCookieStore(path string) (*CookieStore, error) {
	s, err := NewCookieStore()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cookies file: %w", err)
	}
	defer f.Close()

	if err := s.ReadCookies(f); err != nil {
		return nil, err
	}
	return s, nil
}

// ReadCookies parses cookies in Netscape format. Comment lines and
// expired cookies are skipped.
func (s *CookieStore) ReadCookies(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		httpOnly := false
		if strings.HasPrefix(line, httpOnlyPrefix) {
			httpOnly = true
			line = strings.TrimPrefix(line, httpOnlyPrefix)
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			return vidinfo.Errorf(vidinfo.EINVALID, "cookies line %d: expected 7 fields, got %d", lineNo, len(fields))
		}

		expiry, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return vidinfo.Errorf(vidinfo.EINVALID, "cookies line %d: invalid expiry %q", lineNo, fields[4])
		}

		c := &http.Cookie{
			Name:     fields[5],
			Value:    fields[6],
			Path:     fields[2],
			Secure:   strings.EqualFold(fields[3], "TRUE"),
			HttpOnly: httpOnly,
		}
		if expiry > 0 {
			c.Expires = time.Unix(expiry, 0)
			if c.Expires.Before(s.now()) {
				continue
			}
		}

		host := strings.TrimPrefix(fields[0], ".")
		if strings.EqualFold(fields[1], "TRUE") {
			c.Domain = host
		}
		s.jar.SetCookies(&url.URL{Scheme: "https", Host: host, Path: "/"}, []*http.Cookie{c})
	}
	return scanner.Err()
}

// SetCookie stores a cookie for domain and its subdomains.
func (s *CookieStore) SetCookie(domain, name, value string) {
	host := strings.TrimPrefix(domain, ".")
	s.jar.SetCookies(&url.URL{Scheme: "https", Host: host, Path: "/"}, []*http.Cookie{{
		Name:   name,
		Value:  value,
		Path:   "/",
		Domain: host,
	}})
}

// Cookie returns the named cookie that would be sent to https://domain/.
func (s *CookieStore) Cookie(domain, name string) (string, bool) {
	u := &url.URL{Scheme: "https", Host: strings.TrimPrefix(domain, "."), Path: "/"}
	for _, c := range s.jar.Cookies(u) {
		if c.Name == name && c.Value != "" {
			return c.Value, true
		}
	}
	return "", false
}

// Jar returns the underlying cookie jar for use with WithCookieJar.
func (s *CookieStore) Jar() http.CookieJar {
	return s.jar
}
