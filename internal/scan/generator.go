package scan

import (
	"github.com/google/uuid"
	"strings"
	"unicode"
)

const (
	UnknownIP       = "Unknown IP"
	GenericSoftware = "Generic"

	tokenLength       = 8
	ipv6SuffixLength  = 4
	uaFallbackLength  = 6
	slugPartSeparator = "-"
)

// osKeywords is scanned in order; the first entry contained in the
// User-Agent names the software part of a slug.
var osKeywords = []string{
	"Windows Phone",
	"Windows",
	"Android",
	"iPhone",
	"iPad",
	"iPod",
	"Macintosh",
	"Mac OS X",
	"CrOS",
	"Ubuntu",
	"Fedora",
	"Linux",
	"X11",
}

// Generator builds short, mostly-unique slugs. Uniqueness against stored
// records is never checked; collisions are possible.
type Generator struct {
	newToken func() string
	keywords []string
}

type GeneratorOption func(*Generator)

// WithTokenSource replaces the random token source, mainly for tests.
func WithTokenSource(fn func() string) GeneratorOption {
	return func(g *Generator) {
		g.newToken = fn
	}
}

func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		newToken: uuid.NewString,
		keywords: osKeywords,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func NewDefaultGenerator() *Generator {
	return NewGenerator()
}

// Generate returns token-shortIP-software with all whitespace removed.
func (g *Generator) Generate(ip, userAgent string) string {
	token := g.newToken()
	if len(token) > tokenLength {
		token = token[:tokenLength]
	}

	slug := strings.Join([]string{
		token,
		ShortenAddress(ip),
		softwareFingerprint(userAgent, g.keywords),
	}, slugPartSeparator)

	return strings.Join(strings.Fields(slug), "")
}

// ShortenAddress keeps the last two components of a dotted address, or the
// last four characters of a colon-separated one with separators stripped.
func ShortenAddress(ip string) string {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return UnknownIP
	}

	if parts := strings.Split(ip, "."); len(parts) > 2 {
		return parts[len(parts)-2] + "." + parts[len(parts)-1]
	}

	if strings.Contains(ip, ":") {
		stripped := strings.ReplaceAll(ip, ":", "")
		if len(stripped) > ipv6SuffixLength {
			return stripped[len(stripped)-ipv6SuffixLength:]
		}
		return stripped
	}

	return ip
}

// SoftwareFingerprint names the client platform for a slug.
func SoftwareFingerprint(userAgent string) string {
	return softwareFingerprint(userAgent, osKeywords)
}

func softwareFingerprint(userAgent string, keywords []string) string {
	if strings.TrimSpace(userAgent) == "" {
		return GenericSoftware
	}

	lowerUA := strings.ToLower(userAgent)
	for _, keyword := range keywords {
		if strings.Contains(lowerUA, strings.ToLower(keyword)) {
			return alphanumeric(keyword)
		}
	}

	tail := alphanumeric(userAgent)
	if len(tail) > uaFallbackLength {
		tail = tail[len(tail)-uaFallbackLength:]
	}
	if tail == "" {
		return GenericSoftware
	}
	return tail
}

func alphanumeric(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
