package handlers

import "time"

type WeatherResponse struct {
	Token       uint64  `json:"token"`
	Query       string  `json:"query"`
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
}

type LatestResponse struct {
	SessionID   string    `json:"session_id"`
	Token       uint64    `json:"token"`
	Query       string    `json:"query"`
	City        string    `json:"city,omitempty"`
	Temperature float64   `json:"temperature"`
	Description string    `json:"description,omitempty"`
	Error       string    `json:"error,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

type HistoryResponse struct {
	Query       string    `json:"query"`
	City        string    `json:"city,omitempty"`
	Temperature float64   `json:"temperature"`
	Description string    `json:"description,omitempty"`
	Outcome     string    `json:"outcome"`
	StatusCode  int       `json:"status_code,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Error struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
	Title  string `json:"title"`
}

type ErrorResponse struct {
	Errors []Error `json:"errors"`
}
