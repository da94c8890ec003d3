package utils

import "regexp"

var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?v=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtu\.be/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([a-zA-Z0-9_-]+)`),
}

// ConvertToEmbedURL normalizes any recognised YouTube URL form to the
// canonical embed URL. Unrecognised input is returned unchanged, and the
// conversion is idempotent.
func ConvertToEmbedURL(url string) string {
	if url == "" {
		return url
	}

	for _, pattern := range youtubePatterns {
		if match := pattern.FindStringSubmatch(url); match != nil {
			return "https://www.youtube.com/embed/" + match[1]
		}
	}

	return url
}
