package models

import "time"

// ChatMessage is one turn of the chatbot conversation, persisted per user.
type ChatMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	IsBot     bool      `json:"isBot"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatStats summarizes a user's conversation.
type ChatStats struct {
	TotalMessages        int        `json:"totalMessages"`
	UserMessages         int        `json:"userMessages"`
	BotMessages          int        `json:"botMessages"`
	LastActivity         *time.Time `json:"lastActivity"`
	AverageMessageLength int        `json:"averageMessageLength"`
}
