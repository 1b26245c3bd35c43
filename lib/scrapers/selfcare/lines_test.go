package selfcare

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScanLines(t *testing.T) {
	testCases := []struct {
		name     string
		html     string
		expected map[string]string
	}{
		{
			name:     "single line",
			html:     `<a href="/nastaveni-tarifu-a-sluzeb/123/x">456</a>`,
			expected: map[string]string{"456": "123"},
		},
		{
			name: "multiple lines",
			html: `<div>
				<a href="/nastaveni-tarifu-a-sluzeb/11/detail">720111111</a>
				<a href="/nastaveni-tarifu-a-sluzeb/22/detail">720222222</a>
			</div>`,
			expected: map[string]string{
				"720111111": "11",
				"720222222": "22",
			},
		},
		{
			name:     "non-numeric id segment",
			html:     `<a href="/nastaveni-tarifu-a-sluzeb/abc/x">456</a>`,
			expected: map[string]string{},
		},
		{
			name:     "non-numeric inner text",
			html:     `<a href="/nastaveni-tarifu-a-sluzeb/123/x">N/A</a>`,
			expected: map[string]string{},
		},
		{
			name:     "unrelated href",
			html:     `<a href="/vyuctovani/123/x">456</a>`,
			expected: map[string]string{},
		},
		{
			name:     "href without id segment",
			html:     `<a href="/nastaveni-tarifu-a-sluzeb/">456</a>`,
			expected: map[string]string{},
		},
		{
			name: "duplicate phone number keeps the later id",
			html: `<a href="/nastaveni-tarifu-a-sluzeb/123/x">456</a>` +
				`<a href="/nastaveni-tarifu-a-sluzeb/789/x">456</a>`,
			expected: map[string]string{"456": "789"},
		},
		{
			name:     "whitespace padded text is trimmed",
			html:     "<a href=\"/nastaveni-tarifu-a-sluzeb/123/x\">\n\t  456  </a>",
			expected: map[string]string{"456": "123"},
		},
		{
			name: "nested tag between anchor and number clears the candidate",
			html: `<a href="/nastaveni-tarifu-a-sluzeb/123/x"><b>456</b></a>`,
			// the <b> start tag resets the scan, matching only direct text
			expected: map[string]string{},
		},
		{
			name: "new anchor overrides an unresolved candidate",
			html: `<a href="/nastaveni-tarifu-a-sluzeb/123/x">` +
				`<a href="/nastaveni-tarifu-a-sluzeb/789/y">456</a>`,
			expected: map[string]string{"456": "789"},
		},
		{
			name:     "anchor without matching text yields nothing",
			html:     `<a href="/nastaveni-tarifu-a-sluzeb/123/x"></a><p>456</p>`,
			expected: map[string]string{},
		},
		{
			name:     "malformed markup does not fail the scan",
			html:     `<a href="/nastaveni-tarifu-a-sluzeb/123/x">456</a><a href="<<<`,
			expected: map[string]string{"456": "123"},
		},
		{
			name:     "truncated document keeps earlier matches",
			html:     `<a href="/nastaveni-tarifu-a-sluzeb/55/x">720555555</a><div><a href="/nastaveni-tar`,
			expected: map[string]string{"720555555": "55"},
		},
		{
			name:     "empty document",
			html:     "",
			expected: map[string]string{},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			matches := ScanLines(strings.NewReader(test.html))
			diff := cmp.Diff(test.expected, matches)
			if diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestLineIdFromHref(t *testing.T) {
	testCases := []struct {
		href string
		id   string
		ok   bool
	}{
		{href: "/nastaveni-tarifu-a-sluzeb/123/x", id: "123", ok: true},
		{href: "/nastaveni-tarifu-a-sluzeb/123", id: "123", ok: true},
		{href: "/nastaveni-tarifu-a-sluzeb/", ok: false},
		{href: "/nastaveni-tarifu-a-sluzeb/12a/x", ok: false},
		{href: "/something-else/123/x", ok: false},
		{href: "", ok: false},
	}

	for _, test := range testCases {
		id, ok := lineIdFromHref(test.href)
		if ok != test.ok || id != test.id {
			t.Fatalf("lineIdFromHref(%q) = %q, %v; expected %q, %v", test.href, id, ok, test.id, test.ok)
		}
	}
}
