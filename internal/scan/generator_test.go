package scan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedToken(token string) GeneratorOption {
	return WithTokenSource(func() string { return token })
}

func TestShortenAddress_DottedQuad(t *testing.T) {
	tests := []struct {
		ip       string
		expected string
	}{
		{"192.168.21.77", "21.77"},
		{"203.0.113.45", "113.45"},
		{"10.0.0.1", "0.1"},
		{"127.0.0.1", "0.1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ShortenAddress(tt.ip), tt.ip)
	}
}

func TestShortenAddress_ColonSeparated(t *testing.T) {
	assert.Equal(t, "8329", ShortenAddress("2001:db8::ff00:42:8329"))
	assert.Equal(t, "0001", ShortenAddress("0:0:0:0:0:0:0:1"))
	assert.Equal(t, "1", ShortenAddress("::1"))
}

func TestShortenAddress_Empty(t *testing.T) {
	assert.Equal(t, UnknownIP, ShortenAddress(""))
	assert.Equal(t, UnknownIP, ShortenAddress("   "))
}

func TestShortenAddress_NoSeparators(t *testing.T) {
	assert.Equal(t, "localhost", ShortenAddress("localhost"))
}

func TestSoftwareFingerprint_Keyword(t *testing.T) {
	tests := []struct {
		name     string
		ua       string
		expected string
	}{
		{"android wins over linux", "Mozilla/5.0 (Linux; Android 10; SM-G970F)", "Android"},
		{"windows", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)", "Windows"},
		{"windows phone stripped", "Mozilla/5.0 (Windows Phone 10.0; Android 6.0.1)", "WindowsPhone"},
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", "iPhone"},
		{"case insensitive", "curl-on-LINUX", "Linux"},
		{"mac os x stripped", "SomeAgent (Mac OS X 14)", "MacOSX"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SoftwareFingerprint(tt.ua))
		})
	}
}

func TestSoftwareFingerprint_FallbackLastSixAlphanumerics(t *testing.T) {
	assert.Equal(t, "l8o0x1", SoftwareFingerprint("Wget/1.21.4 (l8o-0x1)"))
	assert.Equal(t, "url801", SoftwareFingerprint("curl/8.0.1"))
	assert.Equal(t, "abc", SoftwareFingerprint("a-b-c"))
}

func TestSoftwareFingerprint_Empty(t *testing.T) {
	assert.Equal(t, GenericSoftware, SoftwareFingerprint(""))
	assert.Equal(t, GenericSoftware, SoftwareFingerprint("///"))
}

func TestGenerate_Format(t *testing.T) {
	g := NewGenerator(fixedToken("1a2b3c4d-0000-4000-8000-000000000000"))

	slug := g.Generate("192.168.21.77", "Mozilla/5.0 (Linux; Android 10; SM-G970F)")
	assert.Equal(t, "1a2b3c4d-21.77-Android", slug)
}

func TestGenerate_MissingInputs(t *testing.T) {
	g := NewGenerator(fixedToken("deadbeef-rest"))

	slug := g.Generate("", "")
	assert.Equal(t, "deadbeef-UnknownIP-Generic", slug)
	assert.NotContains(t, slug, " ")
}

func TestGenerate_RandomTokenPrefix(t *testing.T) {
	g := NewGenerator()

	a := g.Generate("203.0.113.45", "curl/8.0.1")
	b := g.Generate("203.0.113.45", "curl/8.0.1")

	parts := strings.SplitN(a, "-", 2)
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], tokenLength)
	assert.Equal(t, "113.45-url801", parts[1])
	assert.NotEqual(t, a, b)
}
