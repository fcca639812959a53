package db

import "gorm.io/gorm"

type Repositories struct {
	Sessions *SessionRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Sessions: NewSessionRepository(database),
	}
}
