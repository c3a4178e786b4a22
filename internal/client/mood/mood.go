// Package mood holds the static mood-to-music lookup used by the mood
// screen: playlist names shown to the user plus a Jamendo genre tag for
// fetching matching tracks.
package mood

// Moods accepted by the mood screen, in display order.
var Moods = []string{"happy", "sad", "stressed", "relaxed"}

var playlists = map[string][]string{
	"happy":    {"Upbeat Pop", "Dance Hits", "Feel Good Indie"},
	"sad":      {"Chill Acoustic", "Soft Piano", "Emotional Ballads"},
	"stressed": {"Relaxing Instrumentals", "Nature Sounds", "Calm Lo-Fi"},
	"relaxed":  {"Ambient", "Jazz", "Chillhop"},
}

var tags = map[string]string{
	"happy":    "pop",
	"sad":      "folk",
	"stressed": "ambient",
	"relaxed":  "jazz",
}

// Valid reports whether m is a known mood.
func Valid(m string) bool {
	_, ok := playlists[m]
	return ok
}

// Playlists returns the recommended playlist names for m, or an empty
// slice for an unknown mood.
func Playlists(m string) []string {
	if p, ok := playlists[m]; ok {
		return append([]string(nil), p...)
	}
	return []string{}
}

// Tag returns the Jamendo genre tag for m, or "" for an unknown mood.
func Tag(m string) string {
	return tags[m]
}
