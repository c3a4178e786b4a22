package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/orionapp/companion/internal/client/mood"
)

// Mood logs the selected mood with the server and prints the matching
// playlist recommendations.
func (a *App) Mood(ctx context.Context, args []string) error {
	var selected string
	if len(args) > 0 {
		selected = strings.ToLower(args[0])
	} else {
		answer, err := GetSimpleText(a.reader,
			fmt.Sprintf("How are you feeling today? (%s)", strings.Join(mood.Moods, ", ")), a.out)
		if err != nil {
			return err
		}
		selected = strings.ToLower(answer)
	}

	if !mood.Valid(selected) {
		return fmt.Errorf("unknown mood %q (%s)", selected, strings.Join(mood.Moods, ", "))
	}

	if _, err := a.api.LogMood(ctx, selected); err != nil {
		return err
	}

	recs, err := a.api.MoodRecommendations(ctx, selected)
	if err != nil {
		// the local table mirrors the server's
		recs = mood.Playlists(selected)
	}

	fmt.Fprintf(a.out, "Mood saved. Recommended for %s:\n", selected)
	for _, rec := range recs {
		fmt.Fprintf(a.out, "  - %s\n", rec)
	}
	return nil
}
