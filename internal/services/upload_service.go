package services

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dataglance/tably/internal/models"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var ErrEmptyWorkbook = errors.New("workbook has no data rows")

// AllowedSpreadsheet gates uploads by extension before any parsing happens.
func AllowedSpreadsheet(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls", ".xlsx":
		return true
	default:
		return false
	}
}

// ParseWorkbook converts the first sheet into row objects keyed by the header
// row. Blank cells become nil so every row carries the full column set; columns
// without a header are dropped. Cell values that look numeric are stored as
// numbers.
func ParseWorkbook(reader io.Reader) ([]map[string]any, error) {
	workbook, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	sheetName := workbook.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrEmptyWorkbook
	}

	rawRows, err := workbook.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheetName, err)
	}
	if len(rawRows) < 2 {
		return nil, ErrEmptyWorkbook
	}

	headers := make([]string, len(rawRows[0]))
	hasHeader := false
	for index, cell := range rawRows[0] {
		headers[index] = strings.TrimSpace(cell)
		if headers[index] != "" {
			hasHeader = true
		}
	}
	if !hasHeader {
		return nil, ErrEmptyWorkbook
	}

	rows := make([]map[string]any, 0, len(rawRows)-1)
	for _, rawRow := range rawRows[1:] {
		if rowIsEmpty(rawRow) {
			continue
		}

		row := make(map[string]any, len(headers))
		for index, header := range headers {
			if header == "" {
				continue
			}
			if index >= len(rawRow) || strings.TrimSpace(rawRow[index]) == "" {
				row[header] = nil
				continue
			}
			row[header] = coerceCellValue(rawRow[index])
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}

	return rows, nil
}

func rowIsEmpty(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func coerceCellValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if value, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return value
	}
	if value, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return value
	}
	return trimmed
}

type UploadStore interface {
	Create(upload *models.Upload) error
	ListByUser(userID uint) ([]models.Upload, error)
	FindByIDForUser(uploadID uint, userID uint) (models.Upload, error)
	DeleteByIDForUser(uploadID uint, userID uint) error
}

type UploadService struct {
	uploads UploadStore
	now     func() time.Time
}

func NewUploadService(uploads UploadStore) *UploadService {
	return &UploadService{uploads: uploads, now: time.Now}
}

func (service *UploadService) WithClock(now func() time.Time) *UploadService {
	service.now = now
	return service
}

// Store persists parsed rows under a server-assigned filename, keeping the
// caller's original name for display.
func (service *UploadService) Store(userID uint, originalName string, rows []map[string]any) (models.Upload, error) {
	if len(rows) == 0 {
		return models.Upload{}, ErrEmptyWorkbook
	}

	upload := models.Upload{
		UserID:       userID,
		Filename:     uuid.NewString() + strings.ToLower(filepath.Ext(originalName)),
		OriginalName: originalName,
		Rows:         rows,
		RowCount:     len(rows),
		UploadedAt:   service.now().UTC(),
	}
	if err := service.uploads.Create(&upload); err != nil {
		return models.Upload{}, fmt.Errorf("persist upload: %w", err)
	}
	return upload, nil
}

func (service *UploadService) History(userID uint) ([]models.Upload, error) {
	return service.uploads.ListByUser(userID)
}

func (service *UploadService) Delete(userID uint, uploadID uint) error {
	if _, err := service.uploads.FindByIDForUser(uploadID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load upload: %w", err)
	}
	return service.uploads.DeleteByIDForUser(uploadID, userID)
}
