package db

import (
	"github.com/dataglance/tably/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) CountUsers() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

// Save flushes the full record, including nil recovery-challenge columns, so a
// cleared challenge is actually removed from the row.
func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]any{
		"name":                  user.Name,
		"email":                 user.Email,
		"password_hash":         user.PasswordHash,
		"role":                  user.Role,
		"reset_code":            user.ResetCode,
		"reset_code_expires_at": user.ResetCodeExpiresAt,
	}).Error
}

func (repo *UserRepository) ListAll() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepository) DeleteByID(userID uint) error {
	return repo.database.Delete(&models.User{}, userID).Error
}
