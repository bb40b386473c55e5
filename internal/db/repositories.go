package db

import "gorm.io/gorm"

type Repositories struct {
	Users   *UserRepository
	Uploads *UploadRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:   NewUserRepository(database),
		Uploads: NewUploadRepository(database),
	}
}
