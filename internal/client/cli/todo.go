package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

func (a *App) Todo(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return errors.New("usage: todo add <text>")
		}
		todo, err := a.api.CreateTodo(ctx, strings.Join(args[1:], " "), "")
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Added [%s] %s\n", todo.ID, todo.Text)
		return nil

	case "list":
		todos, err := a.api.Todos(ctx)
		if err != nil {
			return err
		}
		if len(todos) == 0 {
			fmt.Fprintln(a.out, "No todos")
			return nil
		}
		for _, todo := range todos {
			mark := " "
			if todo.Completed {
				mark = "x"
			}
			fmt.Fprintf(a.out, "[%s] (%s) %s  %s\n", mark, todo.Priority, todo.Text, todo.ID)
		}
		return nil

	case "done":
		if len(args) != 2 {
			return errors.New("usage: todo done <id>")
		}
		todo, err := a.api.ToggleTodo(ctx, args[1])
		if err != nil {
			return err
		}
		state := "pending"
		if todo.Completed {
			state = "done"
		}
		fmt.Fprintf(a.out, "%s is now %s\n", todo.Text, state)
		return nil

	case "rm":
		if len(args) != 2 {
			return errors.New("usage: todo rm <id>")
		}
		if err := a.api.DeleteTodo(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Deleted")
		return nil

	default:
		return fmt.Errorf("unknown todo command %q (add, list, done, rm)", args[0])
	}
}
