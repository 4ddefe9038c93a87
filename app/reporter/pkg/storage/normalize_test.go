package storage

import (
	"strings"
	"testing"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "Acme  Bank\n\treported   results", "Acme Bank reported results"},
		{"null bytes", "Acme\x00 Bank", "Acme Bank"},
		{"invalid utf8", "Acme \xff Bank", "Acme Bank"},
		{"comparison is not markup", "profit < forecast", "profit < forecast"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlainText_HTML(t *testing.T) {
	body := strings.Repeat("Acme Bank announced a new savings product for small businesses across the region. ", 8)
	in := "<html><head><title>Acme</title><script>var x = 1;</script></head><body><article><p>" +
		body + "</p></article></body></html>"

	got := PlainText(in)
	if strings.ContainsAny(got, "<>") {
		t.Errorf("markup survived: %q", got)
	}
	if strings.Contains(got, "var x") {
		t.Errorf("script survived: %q", got)
	}
	if !strings.Contains(got, "Acme Bank announced a new savings product") {
		t.Errorf("body text lost: %q", got)
	}
}

func TestHTMLText_SkipsScript(t *testing.T) {
	got := strings.Join(strings.Fields(htmlText("<p>one</p><script>two</script><style>p{}</style><p>three</p>")), " ")
	if got != "one three" {
		t.Errorf("htmlText() = %q", got)
	}
}
