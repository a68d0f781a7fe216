package youtube

import "regexp"

// Video ids are 11-character tokens drawn from [0-9A-Za-z_-], appearing after
// "v=" in watch URLs or as a path segment in short links.
var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// ExtractVideoID pulls the video id out of a YouTube URL. It fails closed:
// a URL without a well-formed token yields ok=false, never a guess.
func ExtractVideoID(rawURL string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}
