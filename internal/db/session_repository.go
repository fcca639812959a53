package db

import (
	"time"

	"github.com/terraincognita07/quitpath/internal/models"
	"gorm.io/gorm"
)

type SessionRepository struct {
	database *gorm.DB
}

func NewSessionRepository(database *gorm.DB) *SessionRepository {
	return &SessionRepository{database: database}
}

func (repo *SessionRepository) Create(session *models.Session) error {
	return repo.database.Create(session).Error
}

func (repo *SessionRepository) FindByID(id string) (models.Session, error) {
	var session models.Session
	if err := repo.database.Where("id = ?", id).First(&session).Error; err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (repo *SessionRepository) Touch(id string, seenAt time.Time) error {
	return repo.database.Model(&models.Session{}).Where("id = ?", id).Update("last_seen_at", seenAt).Error
}

func (repo *SessionRepository) Delete(id string) error {
	return repo.database.Where("id = ?", id).Delete(&models.Session{}).Error
}

func (repo *SessionRepository) DeleteExpired(now time.Time) (int64, error) {
	result := repo.database.Where("expires_at <= ?", now.UTC()).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

func (repo *SessionRepository) Count() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Session{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
