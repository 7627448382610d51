package export

import (
	"testing"

	"github.com/ytcrawl/ytcrawl/pkg/errors"
)

func TestNormalizer(t *testing.T) {
	tests := []struct {
		encoding string
		in       string
		want     string
	}{
		{"utf-8", "Müller — 日本語", "Müller — 日本語"},
		{"utf-8", "ok\xffbad", "okbad"},
		{"ascii", "Müller — 日本語", "Mller  "},
		{"ascii", "plain text", "plain text"},
		{"smart", "Müller", "Muller"},
		{"smart", "déjà vu", "deja vu"},
		{"smart", "Beyoncé 日本語", "Beyonce "},
		{"smart", "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.encoding+"/"+tt.in, func(t *testing.T) {
			fn, err := Normalizer(tt.encoding)
			if err != nil {
				t.Fatalf("Normalizer: %v", err)
			}
			if got := fn(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizerRejectsUnknownEncoding(t *testing.T) {
	_, err := Normalizer("latin-1")
	if !errors.Is(err, errors.ErrCodeInvalidEncoding) {
		t.Errorf("expected INVALID_ENCODING, got %v", err)
	}
}
