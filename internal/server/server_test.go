package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jmylchreest/dreamburst/internal/config"
	"github.com/jmylchreest/dreamburst/pkg/smartpalette"
)

type fakeBrief struct {
	text string
	err  error
	got  string
}

func (f *fakeBrief) Generate(_ context.Context, idea string) (string, error) {
	f.got = idea
	return f.text, f.err
}

func testImageURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 48, 32))
	for y := range 32 {
		for x := range 48 {
			c := color.RGBA{R: uint8(x * 5), G: 90, B: uint8(200 - y*4), A: 255}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func newTestServer(gen *fakeBrief) *Server {
	cfg := config.Default().Server
	cfg.MaxBodyBytes = 1 << 20
	return New(cfg, gen, smartpalette.DefaultOptions(), nil)
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body %q is not JSON: %v", rec.Body.String(), err)
	}
	return resp.Detail
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(&fakeBrief{}).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"ok":true}` {
		t.Errorf("body = %s, want {\"ok\":true}", got)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestPalette(t *testing.T) {
	rec := post(t, newTestServer(&fakeBrief{}).Handler(), "/palette", paletteRequest{Image: testImageURI(t)})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var result smartpalette.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("response is not a Result: %v", err)
	}
	if len(result.Palette) != 5 || result.Harmony != smartpalette.Harmony {
		t.Errorf("result = %+v, want 5 entries and harmony %q", result, smartpalette.Harmony)
	}
}

func TestPaletteErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "bad base64", body: `{"image":"data:image/png;base64,!!!"}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "not an image", body: `{"image":"data:text/plain;base64,aGVsbG8="}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "missing image", body: `{}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "invalid json", body: `{"image":`, wantStatus: http.StatusUnprocessableEntity},
		{name: "too large", body: `{"image":"` + strings.Repeat("A", 2<<20) + `"}`, wantStatus: http.StatusRequestEntityTooLarge},
	}

	h := newTestServer(&fakeBrief{}).Handler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/palette", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if detail(t, rec) == "" {
				t.Error("error response has no detail")
			}
		})
	}
}

func TestInitialPrompt(t *testing.T) {
	gen := &fakeBrief{text: "Title: Dawn"}
	rec := post(t, newTestServer(gen).Handler(), "/initial_prompt", promptRequest{Prompt: "sunrise over dunes"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp promptResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if resp.Brief != "Title: Dawn" {
		t.Errorf("brief = %q, want %q", resp.Brief, "Title: Dawn")
	}
	if gen.got != "sunrise over dunes" {
		t.Errorf("generator got %q", gen.got)
	}
}

func TestInitialPromptErrors(t *testing.T) {
	tests := []struct {
		name       string
		gen        *fakeBrief
		body       any
		wantStatus int
	}{
		{name: "upstream failure", gen: &fakeBrief{err: errors.New("quota exceeded")}, body: promptRequest{Prompt: "idea"}, wantStatus: http.StatusBadGateway},
		{name: "empty prompt", gen: &fakeBrief{}, body: promptRequest{Prompt: "  "}, wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, newTestServer(tt.gen).Handler(), "/initial_prompt", tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if detail(t, rec) == "" {
				t.Error("error response has no detail")
			}
		})
	}
}

func TestCORS(t *testing.T) {
	h := newTestServer(&fakeBrief{}).Handler()

	tests := []struct {
		name       string
		origin     string
		wantOrigin string
	}{
		{name: "allowed", origin: "http://localhost:5173", wantOrigin: "http://localhost:5173"},
		{name: "other origin", origin: "https://evil.example", wantOrigin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/palette", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", "content-type")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if tt.wantOrigin != "" {
				if rec.Code != http.StatusNoContent {
					t.Errorf("preflight status = %d, want 204", rec.Code)
				}
				if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "content-type" {
					t.Errorf("Access-Control-Allow-Headers = %q", got)
				}
			}
		})
	}
}

func TestServeShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen: %v", err)
	}
	s := newTestServer(&fakeBrief{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}
