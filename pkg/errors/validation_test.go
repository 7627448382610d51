package errors

import (
	"strings"
	"testing"
)

func TestValidateVideoID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid id", "dQw4w9WgXcQ", false},
		{"valid with underscore and dash", "a_b-c_d-e_f", false},
		{"empty", "", true},
		{"too short", "dQw4w9WgXc", true},
		{"too long", "dQw4w9WgXcQQ", true},
		{"invalid characters", "dQw4w9WgXc!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVideoID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVideoID(%q) = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("code = %s, want INVALID_INPUT", GetCode(err))
			}
		})
	}
}

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{"simple term", "funny cats", false},
		{"unicode term", "日本語の動画", false},
		{"empty", "", true},
		{"only whitespace", "   ", true},
		{"control character", "cats\x00dogs", true},
		{"too long", strings.Repeat("a", 257), true},
		{"max length", strings.Repeat("a", 256), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.query)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateQuery(%q) = %v, wantErr %v", tt.query, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWatchURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantID  string
		wantErr bool
	}{
		{"standard watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"extra parameters", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", false},
		{"http scheme", "http://youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"no v parameter", "https://www.youtube.com/watch?list=PL123", "", true},
		{"not a URL", "dQw4w9WgXcQ", "", true},
		{"empty", "", "", true},
		{"bad id in URL", "https://www.youtube.com/watch?v=tooshort", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ValidateWatchURL(tt.url)
			if tt.wantErr {
				if !Is(err, ErrCodeInvalidInput) {
					t.Errorf("expected INVALID_INPUT, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateWatchURL: %v", err)
			}
			if id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestValidateSafeSearch(t *testing.T) {
	for _, level := range []string{"", "none", "moderate", "strict"} {
		if err := ValidateSafeSearch(level); err != nil {
			t.Errorf("ValidateSafeSearch(%q) = %v", level, err)
		}
	}
	if err := ValidateSafeSearch("sometimes"); !Is(err, ErrCodeInvalidOption) {
		t.Errorf("expected INVALID_OPTION, got %v", err)
	}
}

func TestValidateEncoding(t *testing.T) {
	for _, enc := range []string{"", "ascii", "utf-8", "smart"} {
		if err := ValidateEncoding(enc); err != nil {
			t.Errorf("ValidateEncoding(%q) = %v", enc, err)
		}
	}
	if err := ValidateEncoding("latin-1"); !Is(err, ErrCodeInvalidEncoding) {
		t.Errorf("expected INVALID_ENCODING, got %v", err)
	}
}
