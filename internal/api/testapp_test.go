package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dataglance/tably/internal/db"
	"github.com/dataglance/tably/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type capturedMail struct {
	To      string
	Subject string
	Body    string
}

type captureMailer struct {
	mu      sync.Mutex
	sent    []capturedMail
	failErr error
}

func (mailer *captureMailer) Send(to string, subject string, body string) error {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if mailer.failErr != nil {
		return mailer.failErr
	}
	mailer.sent = append(mailer.sent, capturedMail{To: to, Subject: subject, Body: body})
	return nil
}

func (mailer *captureMailer) lastCode(t *testing.T) string {
	t.Helper()

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if len(mailer.sent) == 0 {
		t.Fatal("expected at least one sent mail")
	}
	body := mailer.sent[len(mailer.sent)-1].Body
	const prefix = "Your OTP for password reset is: "
	if len(body) < len(prefix)+6 || body[:len(prefix)] != prefix {
		t.Fatalf("unexpected mail body %q", body)
	}
	return body[len(prefix) : len(prefix)+6]
}

func newTestApp(t *testing.T, options ...func(*Config)) (*fiber.App, *db.Repositories, *captureMailer) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "tably-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	repos := db.NewRepositories(database)
	mailer := &captureMailer{}

	config := Config{
		SecretKey: []byte("test-secret-key"),
		Mailer:    mailer,
	}
	for _, option := range options {
		option(&config)
	}

	app := fiber.New()
	RegisterRoutes(app, NewHandler(repos, config))
	return app, repos, mailer
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, payload any, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode request payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()

	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func signupTestUser(t *testing.T, app *fiber.App, email string, role string) models.PublicUser {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "OrigPass1",
		"role":     role,
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("signup %s: expected 201, got %d", email, response.StatusCode)
	}

	var user models.PublicUser
	decodeJSON(t, response, &user)
	return user
}

func loginSessionCookie(t *testing.T, app *fiber.App, email string, password string) *http.Cookie {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d", email, response.StatusCode)
	}

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatalf("login %s: no session cookie issued", email)
	return nil
}

func buildWorkbookUpload(t *testing.T, filename string, rows [][]any) (*bytes.Buffer, string) {
	t.Helper()

	workbook := excelize.NewFile()
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	for rowIndex, row := range rows {
		for columnIndex, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(columnIndex+1, rowIndex+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := workbook.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("set cell %s: %v", cell, err)
			}
		}
	}

	workbookBuffer, err := workbook.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(workbookBuffer.Bytes()); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func uploadWorkbook(t *testing.T, app *fiber.App, cookie *http.Cookie, filename string, rows [][]any) *http.Response {
	t.Helper()

	body, contentType := buildWorkbookUpload(t, filename, rows)
	request := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	request.Header.Set("Content-Type", contentType)
	if cookie != nil {
		request.AddCookie(cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("upload %s failed: %v", filename, err)
	}
	return response
}
