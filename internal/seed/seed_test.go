package seed

import (
	"path/filepath"
	"testing"
)

func TestCalculate(t *testing.T) {
	manual := int64(1234)
	data := []byte("encoded image")

	tests := []struct {
		name    string
		data    []byte
		source  string
		config  Config
		want    int64
		wantErr bool
	}{
		{name: "content", data: data, config: Config{Mode: ModeContent}, want: FromContent(data)},
		{name: "content without data", config: Config{Mode: ModeContent}, wantErr: true},
		{name: "filepath", source: "photo.png", config: Config{Mode: ModeFilepath}, want: FromFilepath("photo.png")},
		{name: "filepath from stdin", source: "-", config: Config{Mode: ModeFilepath}, wantErr: true},
		{name: "manual", config: Config{Mode: ModeManual, Value: &manual}, want: 1234},
		{name: "manual without value", config: Config{Mode: ModeManual}, wantErr: true},
		{name: "unknown", config: Config{Mode: "lunar"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.data, tt.source, tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Calculate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Calculate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFromContent(t *testing.T) {
	a := FromContent([]byte("one"))
	if a != FromContent([]byte("one")) {
		t.Error("FromContent() is not deterministic")
	}
	if a == FromContent([]byte("two")) {
		t.Error("FromContent() gave the same seed for different content")
	}
	if a == 0 {
		t.Error("FromContent() returned zero")
	}
}

func TestFromFilepath(t *testing.T) {
	abs, err := filepath.Abs("photo.png")
	if err != nil {
		t.Fatal(err)
	}
	if FromFilepath("photo.png") != FromFilepath(abs) {
		t.Error("relative and absolute paths of one file gave different seeds")
	}
	url := "https://example.com/photo.png"
	if FromFilepath(url) != FromFilepath(url) {
		t.Error("FromFilepath() is not deterministic for URLs")
	}
}

func TestRandom(t *testing.T) {
	if Random() == 0 {
		t.Error("Random() returned zero")
	}
	mode, err := Calculate(nil, "", Config{Mode: ModeRandom})
	if err != nil || mode == 0 {
		t.Errorf("Calculate(random) = %d, %v", mode, err)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range ValidModes() {
		got, err := ParseMode(string(m))
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParseMode("lunar"); err == nil {
		t.Error("ParseMode(lunar) succeeded, want error")
	}
}
