package db

import (
	"github.com/dataglance/tably/internal/models"
	"gorm.io/gorm"
)

type UploadRepository struct {
	database *gorm.DB
}

func NewUploadRepository(database *gorm.DB) *UploadRepository {
	return &UploadRepository{database: database}
}

func (repo *UploadRepository) Create(upload *models.Upload) error {
	return repo.database.Create(upload).Error
}

func (repo *UploadRepository) ListByUser(userID uint) ([]models.Upload, error) {
	uploads := make([]models.Upload, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("uploaded_at DESC, id DESC").
		Find(&uploads).Error; err != nil {
		return nil, err
	}
	return uploads, nil
}

func (repo *UploadRepository) FindByIDForUser(uploadID uint, userID uint) (models.Upload, error) {
	var upload models.Upload
	if err := repo.database.
		Where("id = ? AND user_id = ?", uploadID, userID).
		First(&upload).Error; err != nil {
		return models.Upload{}, err
	}
	return upload, nil
}

func (repo *UploadRepository) DeleteByIDForUser(uploadID uint, userID uint) error {
	return repo.database.
		Where("id = ? AND user_id = ?", uploadID, userID).
		Delete(&models.Upload{}).Error
}

func (repo *UploadRepository) CountUploads() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Upload{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *UploadRepository) ListRecent(limit int) ([]models.Upload, error) {
	uploads := make([]models.Upload, 0, limit)
	if err := repo.database.
		Order("uploaded_at DESC, id DESC").
		Limit(limit).
		Find(&uploads).Error; err != nil {
		return nil, err
	}
	return uploads, nil
}

func (repo *UploadRepository) DeleteByUser(userID uint) error {
	return repo.database.Where("user_id = ?", userID).Delete(&models.Upload{}).Error
}
