package weatherquery

import (
	"time"

	"gorm.io/gorm"
)

// ErrNotFound is returned by GetRecentWeatherQuery when no row matches.
var ErrNotFound = gorm.ErrRecordNotFound

type Repository interface {
	LogWeatherQuery(entry *WeatherQuery) error
	GetRecentWeatherQuery(query string) (*WeatherQuery, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type WeatherSQLRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &WeatherSQLRepository{db: db}
}

func (r *WeatherSQLRepository) LogWeatherQuery(entry *WeatherQuery) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	return r.db.Create(entry).Error
}

func (r *WeatherSQLRepository) GetRecentWeatherQuery(query string) (*WeatherQuery, error) {
	var record WeatherQuery
	err := r.db.Where("query = ?", query).Order("created_at DESC").First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteOlderThan removes history rows created before cutoff and returns how many went.
func (r *WeatherSQLRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&WeatherQuery{})
	return result.RowsAffected, result.Error
}
