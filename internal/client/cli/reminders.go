package cli

import (
	"context"
	"errors"
	"fmt"
	"time"
)

func (a *App) Reminders(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "add":
		title, err := GetSimpleText(a.reader, "Reminder title", a.out)
		if err != nil {
			return err
		}
		notes, err := GetSimpleText(a.reader, "Notes (optional)", a.out)
		if err != nil {
			return err
		}
		when, err := GetSimpleText(a.reader, "When? (RFC3339, e.g. 2026-09-01T08:00:00Z)", a.out)
		if err != nil {
			return err
		}
		remindAt, err := time.Parse(time.RFC3339, when)
		if err != nil {
			return fmt.Errorf("invalid time %q: %w", when, err)
		}
		repeat, err := GetSimpleText(a.reader, "Repeat? (none, daily, weekly)", a.out)
		if err != nil {
			return err
		}

		reminder, err := a.api.CreateReminder(ctx, title, notes, remindAt, repeat)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Added [%s] %s\n", reminder.ID, reminder.Title)
		return nil

	case "list":
		reminders, err := a.api.Reminders(ctx)
		if err != nil {
			return err
		}
		if len(reminders) == 0 {
			fmt.Fprintln(a.out, "No reminders")
			return nil
		}
		for _, reminder := range reminders {
			mark := " "
			if reminder.Done {
				mark = "x"
			}
			fmt.Fprintf(a.out, "[%s] %s at %s (%s)  %s\n", mark, reminder.Title,
				reminder.RemindAt.Local().Format("2006-01-02 15:04"), reminder.Repeat, reminder.ID)
		}
		return nil

	case "rm":
		if len(args) != 2 {
			return errors.New("usage: reminders rm <id>")
		}
		if err := a.api.DeleteReminder(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Deleted")
		return nil

	default:
		return fmt.Errorf("unknown reminders command %q (add, list, rm)", args[0])
	}
}
