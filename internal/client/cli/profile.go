package cli

import (
	"context"
	"fmt"
)

// Profile interactively edits the account profile. Empty answers leave the
// stored value unchanged.
func (a *App) Profile(ctx context.Context) error {
	fields := map[string]any{}

	for _, key := range []string{"name", "phone", "bio", "location"} {
		value, err := GetSimpleText(a.reader, fmt.Sprintf("New %s (empty to keep)", key), a.out)
		if err != nil {
			return err
		}
		if value != "" {
			fields[key] = value
		}
	}

	if len(fields) == 0 {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	profile, err := a.api.UpdateProfile(ctx, fields)
	if err != nil {
		return err
	}
	if err := a.session.UpdateProfile(ctx, profile); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Profile updated")
	return nil
}
