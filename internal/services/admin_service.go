package services

import (
	"fmt"

	"github.com/dataglance/tably/internal/models"
)

type AdminUserRepository interface {
	ListAll() ([]models.User, error)
	DeleteByID(userID uint) error
	CountUsers() (int64, error)
}

type AdminUploadRepository interface {
	CountUploads() (int64, error)
	ListRecent(limit int) ([]models.Upload, error)
}

const recentUploadsLimit = 5

type UsageStats struct {
	TotalUsers    int64           `json:"totalUsers"`
	TotalUploads  int64           `json:"totalUploads"`
	RecentUploads []models.Upload `json:"recentUploads"`
}

type AdminService struct {
	users   AdminUserRepository
	uploads AdminUploadRepository
}

func NewAdminService(users AdminUserRepository, uploads AdminUploadRepository) *AdminService {
	return &AdminService{users: users, uploads: uploads}
}

func (service *AdminService) ListUsers() ([]models.PublicUser, error) {
	users, err := service.users.ListAll()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	public := make([]models.PublicUser, 0, len(users))
	for index := range users {
		public = append(public, users[index].Public())
	}
	return public, nil
}

// DeleteUser is idempotent: deleting an already-removed account succeeds.
func (service *AdminService) DeleteUser(userID uint) error {
	if err := service.users.DeleteByID(userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (service *AdminService) UsageStats() (UsageStats, error) {
	totalUsers, err := service.users.CountUsers()
	if err != nil {
		return UsageStats{}, fmt.Errorf("count users: %w", err)
	}
	totalUploads, err := service.uploads.CountUploads()
	if err != nil {
		return UsageStats{}, fmt.Errorf("count uploads: %w", err)
	}
	recent, err := service.uploads.ListRecent(recentUploadsLimit)
	if err != nil {
		return UsageStats{}, fmt.Errorf("list recent uploads: %w", err)
	}

	return UsageStats{
		TotalUsers:    totalUsers,
		TotalUploads:  totalUploads,
		RecentUploads: recent,
	}, nil
}
