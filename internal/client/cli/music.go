package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/orionapp/companion/internal/client/jamendo"
)

func (a *App) Music(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"popular"}
	}

	var tracks []jamendo.Track
	switch args[0] {
	case "search":
		if len(args) < 2 {
			return errors.New("usage: music search <query>")
		}
		tracks = a.music.SearchTracks(ctx, strings.Join(args[1:], " "))

	case "tag":
		if len(args) != 2 {
			return errors.New("usage: music tag <genre>")
		}
		tracks = a.music.TracksByTag(ctx, args[1])

	case "popular":
		tracks = a.music.PopularTracks(ctx)

	case "latest":
		tracks = a.music.LatestTracks(ctx)

	default:
		return fmt.Errorf("unknown music command %q (search, tag, popular, latest)", args[0])
	}

	a.printTracks(tracks)
	return nil
}

func (a *App) printTracks(tracks []jamendo.Track) {
	for _, track := range tracks {
		fmt.Fprintf(a.out, "%s - %s (%d:%02d)\n",
			track.ArtistName, track.Name, track.Duration/60, track.Duration%60)
	}
}
