package cli

import (
	"context"
	"fmt"
)

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	profile, token, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	if err := a.session.Login(ctx, token, profile); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered and logged in as %s\n", email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	profile, token, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.session.Login(ctx, token, profile); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", email)
	return nil
}

// Logout forgets the session locally; the token stays valid server-side
// until it expires.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	profile, err := a.api.Me(ctx)
	if err != nil {
		return err
	}

	for _, key := range []string{"name", "email", "phone", "bio", "location"} {
		if v, ok := profile[key].(string); ok && v != "" {
			fmt.Fprintf(a.out, "%-10s %s\n", key+":", v)
		}
	}
	return nil
}
