package youtube

import "regexp"

var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
}

// ExtractVideoID pulls the video ID out of the common YouTube URL shapes
// (watch, short youtu.be, embed). Returns false when no ID can be found.
func ExtractVideoID(url string) (string, bool) {
	for _, pattern := range idPatterns {
		if match := pattern.FindStringSubmatch(url); len(match) > 1 && match[1] != "" {
			return match[1], true
		}
	}
	return "", false
}
