package browser

import "testing"

func TestOpenRejectsNonHTTP(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com", false},
		{"http://example.com", false},
		{"file:///etc/passwd", true},
		{"javascript:alert(1)", true},
		{"ftp://example.com", true},
		{"", true},
	}

	for _, tt := range tests {
		err := Open(tt.url)
		if tt.wantErr && err == nil {
			t.Errorf("Open(%q): expected error, got nil", tt.url)
		}
		if !tt.wantErr && err != nil {
			// launching may fail on headless CI; only scheme rejection matters here
			_ = err
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		base, raw, want string
	}{
		{"https://cryptopanic.com", "/news/12345/btc-rallies", "https://cryptopanic.com/news/12345/btc-rallies"},
		{"https://cryptopanic.com", "https://example.com/story", "https://example.com/story"},
		{"https://cryptopanic.com", "", ""},
		{"://bad-base", "/news/1", "/news/1"},
	}

	for _, tt := range tests {
		if got := Resolve(tt.base, tt.raw); got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tt.base, tt.raw, got, tt.want)
		}
	}
}
