package errors

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// videoIDRegex matches YouTube video identifiers: 11 characters from the
// URL-safe base64 alphabet.
var videoIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ValidateVideoID validates a YouTube video identifier.
// It rejects ids that could not have come from the API.
func ValidateVideoID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "video id cannot be empty")
	}

	if !videoIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid video id: %q", id)
	}

	return nil
}

// ValidateQuery validates a search term for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty queries
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return New(ErrCodeInvalidInput, "search query cannot be empty")
	}

	if len(query) > 256 {
		return New(ErrCodeInvalidInput, "search query too long (max 256 characters)")
	}

	for _, r := range query {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "search query contains invalid control characters")
		}
	}

	return nil
}

// ValidateWatchURL extracts the video id from a YouTube watch URL.
// It accepts any http(s) URL carrying a "v" query parameter; the absence
// of that parameter is an input error, matching the url seed mode contract.
func ValidateWatchURL(rawURL string) (string, error) {
	if rawURL == "" {
		return "", New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return "", New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", Wrap(ErrCodeInvalidInput, err, "malformed URL: %q", rawURL)
	}

	id := parsed.Query().Get("v")
	if id == "" {
		return "", New(ErrCodeInvalidInput, "URL has no 'v' query parameter: %q", rawURL)
	}

	if err := ValidateVideoID(id); err != nil {
		return "", err
	}
	return id, nil
}

// safeSearchValues are the levels accepted by the search API.
var safeSearchValues = map[string]bool{"none": true, "moderate": true, "strict": true}

// ValidateSafeSearch validates a safe-search filter level.
// An empty value is allowed and means the API default.
func ValidateSafeSearch(level string) error {
	if level == "" || safeSearchValues[level] {
		return nil
	}
	return New(ErrCodeInvalidOption, "invalid safe-search level %q (expected none, moderate, or strict)", level)
}

// encodingValues are the supported text normalization targets.
var encodingValues = map[string]bool{"ascii": true, "utf-8": true, "smart": true}

// ValidateEncoding validates a text normalization target.
// An empty value is allowed and means no normalization.
func ValidateEncoding(encoding string) error {
	if encoding == "" || encodingValues[encoding] {
		return nil
	}
	return New(ErrCodeInvalidEncoding, "invalid encoding %q (expected ascii, utf-8, or smart)", encoding)
}
