package weatherquery

import (
	"time"
)

type WeatherQuery struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SessionID    string    `json:"session_id" gorm:"column:session_id;index:idx_session_id"`
	Query        string    `json:"query" gorm:"index:idx_query;index:idx_query_created_at"`
	CityName     string    `json:"city_name" gorm:"column:city_name"`
	Temperature  float64   `json:"temperature" gorm:"column:temperature"`
	Description  string    `json:"description" gorm:"column:description"`
	Outcome      string    `json:"outcome" gorm:"column:outcome"`
	StatusCode   int       `json:"status_code,omitempty" gorm:"column:status_code"`
	ErrorMessage string    `json:"error_message,omitempty" gorm:"column:error_message"`
	CreatedAt    time.Time `json:"created_at" gorm:"index:idx_created_at;index:idx_query_created_at"`
}

func (WeatherQuery) TableName() string {
	return "weather_queries"
}
