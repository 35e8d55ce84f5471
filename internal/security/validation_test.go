package security

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestValidateHTTPURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "public https", url: "https://example.com/photo.jpg"},
		{name: "empty", url: "", wantErr: true},
		{name: "plain http", url: "http://example.com/photo.jpg", wantErr: true},
		{name: "file scheme", url: "file:///etc/passwd", wantErr: true},
		{name: "no host", url: "https:///photo.jpg", wantErr: true},
		{name: "localhost", url: "https://localhost/photo.jpg", wantErr: true},
		{name: "loopback", url: "https://127.0.0.1:8080/photo.jpg", wantErr: true},
		{name: "private range", url: "https://192.168.1.20/photo.jpg", wantErr: true},
		{name: "private 172", url: "https://172.20.0.1/photo.jpg", wantErr: true},
		{name: "link local", url: "https://169.254.169.254/latest", wantErr: true},
		{name: "ipv6 loopback", url: "https://[::1]/photo.jpg", wantErr: true},
		{name: "public ip", url: "https://8.8.8.8/photo.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHTTPURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHTTPURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestLimitedReader(t *testing.T) {
	r := NewLimitedReader(strings.NewReader("abcdef"), 4)

	got, err := io.ReadAll(r)
	if err == nil {
		t.Fatal("ReadAll() past the limit returned no error")
	}
	if !bytes.Equal(got, []byte("abcd")) {
		t.Errorf("ReadAll() = %q, want %q", got, "abcd")
	}
}

func TestLimitedReaderWithinLimit(t *testing.T) {
	r := NewLimitedReader(strings.NewReader("abc"), 10)

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "abc" {
		t.Errorf("ReadAll() = %q, want %q", got, "abc")
	}
}
