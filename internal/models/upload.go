package models

import "time"

type Upload struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	UserID       uint             `gorm:"not null;index" json:"userId"`
	Filename     string           `gorm:"not null" json:"filename"`
	OriginalName string           `gorm:"not null" json:"originalName"`
	Rows         []map[string]any `gorm:"serializer:json" json:"data"`
	RowCount     int              `gorm:"not null;default:0" json:"rowCount"`
	UploadedAt   time.Time        `gorm:"not null;index" json:"uploadedAt"`
}
