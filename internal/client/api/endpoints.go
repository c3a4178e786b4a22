package api

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Client-side mirrors of the backend JSON shapes.

type Todo struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	Priority  string     `json:"priority"`
	Category  string     `json:"category"`
	DueDate   *time.Time `json:"dueDate"`
}

type Reminder struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Notes    string    `json:"notes"`
	RemindAt time.Time `json:"remindAt"`
	Repeat   string    `json:"repeat"`
	Done     bool      `json:"done"`
}

type MoodLog struct {
	ID        string    `json:"id"`
	Mood      string    `json:"mood"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	IsBot     bool      `json:"isBot"`
	Timestamp time.Time `json:"timestamp"`
}

type userData struct {
	User map[string]any `json:"user"`
}

// Register creates an account and returns the profile plus session token.
func (c *Client) Register(ctx context.Context, name, email, password string) (map[string]any, string, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/register",
		map[string]string{"name": name, "email": email, "password": password})
	if err != nil {
		return nil, "", err
	}
	var data userData
	if err := decodeData(env, &data); err != nil {
		return nil, "", err
	}
	return data.User, env.Token, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (map[string]any, string, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login",
		map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, "", err
	}
	var data userData
	if err := decodeData(env, &data); err != nil {
		return nil, "", err
	}
	return data.User, env.Token, nil
}

func (c *Client) Me(ctx context.Context) (map[string]any, error) {
	var data userData
	if err := c.get(ctx, "/auth/me", &data); err != nil {
		return nil, err
	}
	return data.User, nil
}

// UpdateProfile sends a partial profile update and returns the fresh
// profile as stored by the server.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (map[string]any, error) {
	env, err := c.do(ctx, http.MethodPatch, "/user/profile", fields)
	if err != nil {
		return nil, err
	}
	var data userData
	if err := decodeData(env, &data); err != nil {
		return nil, err
	}
	return data.User, nil
}

func (c *Client) Todos(ctx context.Context) ([]Todo, error) {
	var todos []Todo
	if err := c.get(ctx, "/todos", &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (c *Client) CreateTodo(ctx context.Context, text, priority string) (*Todo, error) {
	body := map[string]string{"text": text}
	if priority != "" {
		body["priority"] = priority
	}
	env, err := c.do(ctx, http.MethodPost, "/todos", body)
	if err != nil {
		return nil, err
	}
	var todo Todo
	if err := decodeData(env, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) ToggleTodo(ctx context.Context, id string) (*Todo, error) {
	env, err := c.do(ctx, http.MethodPatch, "/todos/"+url.PathEscape(id)+"/toggle", nil)
	if err != nil {
		return nil, err
	}
	var todo Todo
	if err := decodeData(env, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), nil)
	return err
}

func (c *Client) LogMood(ctx context.Context, mood string) (*MoodLog, error) {
	env, err := c.do(ctx, http.MethodPost, "/moods", map[string]string{"mood": mood})
	if err != nil {
		return nil, err
	}
	var log MoodLog
	if err := decodeData(env, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

func (c *Client) MoodRecommendations(ctx context.Context, mood string) ([]string, error) {
	var data struct {
		Recommendations []string `json:"recommendations"`
	}
	if err := c.get(ctx, "/moods/recommendations?mood="+url.QueryEscape(mood), &data); err != nil {
		return nil, err
	}
	return data.Recommendations, nil
}

func (c *Client) SaveChatMessage(ctx context.Context, text string, isBot bool) (*ChatMessage, error) {
	env, err := c.do(ctx, http.MethodPost, "/chat/message",
		map[string]any{"text": text, "isBot": isBot})
	if err != nil {
		return nil, err
	}
	var msg ChatMessage
	if err := decodeData(env, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *Client) ChatHistory(ctx context.Context) ([]ChatMessage, error) {
	var data struct {
		Messages []ChatMessage `json:"messages"`
	}
	if err := c.get(ctx, "/chat/history", &data); err != nil {
		return nil, err
	}
	return data.Messages, nil
}

func (c *Client) ClearChatHistory(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/chat/history", nil)
	return err
}

func (c *Client) Reminders(ctx context.Context) ([]Reminder, error) {
	var reminders []Reminder
	if err := c.get(ctx, "/reminders", &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

func (c *Client) CreateReminder(ctx context.Context, title, notes string, remindAt time.Time, repeat string) (*Reminder, error) {
	env, err := c.do(ctx, http.MethodPost, "/reminders", map[string]any{
		"title": title, "notes": notes, "remindAt": remindAt, "repeat": repeat,
	})
	if err != nil {
		return nil, err
	}
	var reminder Reminder
	if err := decodeData(env, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (c *Client) DeleteReminder(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/reminders/"+url.PathEscape(id), nil)
	return err
}
