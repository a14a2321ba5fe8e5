package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dafin1723/fikri-production/internal/config"
	"github.com/Dafin1723/fikri-production/internal/database"
	"github.com/Dafin1723/fikri-production/internal/handlers"
	"github.com/Dafin1723/fikri-production/internal/middleware"
	"github.com/Dafin1723/fikri-production/internal/models"
	"github.com/Dafin1723/fikri-production/internal/services"
	"github.com/Dafin1723/fikri-production/internal/uploads"
)

type testServer struct {
	router *gin.Engine
	orders *services.OrderService
}

func newTestServer(t *testing.T, maxRequestBytes int64) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := database.NewMemoryStore()
	attachments, err := uploads.NewLocalSink(t.TempDir())
	require.NoError(t, err)
	images, err := uploads.NewLocalSink(t.TempDir())
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	gate, err := middleware.NewAdminGate(&config.Config{
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
		SessionSecret:     "test-secret-key-for-jwt-signing-must-be-long-enough",
		SessionTTL:        time.Hour,
	})
	require.NoError(t, err)

	orders := services.NewOrderService(store, attachments, services.WithLocation(time.UTC))
	router := handlers.NewRouter(handlers.RouterConfig{
		Orders:          orders,
		Posters:         services.NewPosterService(store, images),
		Gate:            gate,
		ShopName:        "Fikri Production",
		Location:        time.UTC,
		MaxRequestBytes: maxRequestBytes,
	})
	return &testServer{router: router, orders: orders}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T) *http.Cookie {
	t.Helper()
	req, _ := http.NewRequest("POST", "/api/v1/admin/login", strings.NewReader(`{"username":"admin","password":"s3cret"}`))
	req.Header.Set("Content-Type", "application/json")
	w := s.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func (s *testServer) admin(t *testing.T, cookie *http.Cookie, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(cookie)
	return s.do(req)
}

type upload struct {
	field, name string
	content     []byte
}

func multipartRequest(t *testing.T, path string, fields map[string]string, files []upload) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func orderFields() map[string]string {
	return map[string]string{
		"customer_name": "Sam",
		"email":         "s@x.com",
		"contact":       "08123",
		"quantity":      "2",
		"pickup_date":   "2025-01-01",
		"print_type":    "color",
		"color":         "cmyk",
		"size":          "A4",
		"paper_type":    "glossy",
	}
}

func submit(t *testing.T, s *testServer, fields map[string]string, files []upload) (*httptest.ResponseRecorder, models.SubmitOrderResponse) {
	t.Helper()
	w := s.do(multipartRequest(t, "/api/v1/orders", fields, files))
	var resp models.SubmitOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t, 1<<20)
	req, _ := http.NewRequest("GET", "/health", nil)
	w := s.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response models.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
}

func TestSubmitOrder(t *testing.T) {
	s := newTestServer(t, 1<<20)
	w, resp := submit(t, s, orderFields(), []upload{
		{"files[]", "design.pdf", []byte("%PDF-1.4")},
		{"files", "photo.jpg", []byte("jpeg")},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.NotZero(t, resp.OrderID)
	assert.Regexp(t, `^\d{8}-001$`, resp.QueueNumber)

	order, err := s.orders.GetOrder(t.Context(), resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, 2, order.FileCount)
	assert.True(t, strings.HasSuffix(order.AttachedFiles[0], "_design.pdf"))
	assert.True(t, strings.HasSuffix(order.AttachedFiles[1], "_photo.jpg"))
}

func TestSubmitOrder_ValidationErrors(t *testing.T) {
	s := newTestServer(t, 1<<20)
	fields := orderFields()
	fields["quantity"] = "0"
	delete(fields, "email")

	w, resp := submit(t, s, fields, []upload{{"files[]", "tool.exe", []byte("MZ")}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
	assert.ElementsMatch(t, []string{
		"a valid email is required",
		"quantity must be at least 1",
		"file type not allowed: tool.exe",
	}, resp.Errors)
}

func TestSubmitOrder_TooLarge(t *testing.T) {
	s := newTestServer(t, 4<<10)
	w, resp := submit(t, s, orderFields(), []upload{
		{"files[]", "big.pdf", bytes.Repeat([]byte("x"), 64<<10)},
	})

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.False(t, resp.Success)
}

func TestGetOrderStatus(t *testing.T) {
	s := newTestServer(t, 1<<20)
	_, created := submit(t, s, orderFields(), nil)

	req, _ := http.NewRequest("GET", "/api/v1/orders/status/"+strings.ToLower(created.QueueNumber), nil)
	w := s.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, created.OrderID, order.ID)
	assert.Equal(t, "Waiting", order.StatusLabel)

	req, _ = http.NewRequest("GET", "/api/v1/orders/status/20990101-001", nil)
	w = s.do(req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "order not found", errResp.Error)
}

func TestReceipt(t *testing.T) {
	s := newTestServer(t, 1<<20)
	_, created := submit(t, s, orderFields(), nil)

	req, _ := http.NewRequest("GET", fmt.Sprintf("/api/v1/orders/%d/receipt", created.OrderID), nil)
	w := s.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.QueueNumber)

	req, _ = http.NewRequest("GET", fmt.Sprintf("/api/v1/orders/%d/receipt.pdf", created.OrderID), nil)
	w = s.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	req, _ = http.NewRequest("GET", "/api/v1/orders/999/receipt", nil)
	assert.Equal(t, http.StatusNotFound, s.do(req).Code)

	req, _ = http.NewRequest("GET", "/api/v1/orders/abc/receipt", nil)
	assert.Equal(t, http.StatusBadRequest, s.do(req).Code)
}

func TestAdminRoutes_RequireSession(t *testing.T) {
	s := newTestServer(t, 1<<20)
	for _, path := range []string{
		"/api/v1/admin/orders",
		"/api/v1/admin/stats",
		"/api/v1/admin/export/excel",
		"/api/v1/admin/posters",
	} {
		req, _ := http.NewRequest("GET", path, nil)
		assert.Equal(t, http.StatusUnauthorized, s.do(req).Code, path)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestServer(t, 1<<20)
	req, _ := http.NewRequest("POST", "/api/v1/admin/login", strings.NewReader(`{"username":"admin","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	w := s.do(req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionAndLogout(t *testing.T) {
	s := newTestServer(t, 1<<20)

	req, _ := http.NewRequest("GET", "/api/v1/admin/session", nil)
	w := s.do(req)
	assert.JSONEq(t, `{"authenticated":false,"state":"missing"}`, w.Body.String())

	cookie := s.login(t)
	w = s.admin(t, cookie, "GET", "/api/v1/admin/session", "")
	assert.JSONEq(t, `{"authenticated":true,"state":"ok"}`, w.Body.String())

	w = s.admin(t, cookie, "POST", "/api/v1/admin/logout", "")
	assert.Equal(t, http.StatusOK, w.Code)
	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, middleware.SessionCookie, cleared[0].Name)
	assert.Empty(t, cleared[0].Value)
	assert.True(t, cleared[0].MaxAge < 0)
}

func TestAdminOrderLifecycle(t *testing.T) {
	s := newTestServer(t, 1<<20)
	cookie := s.login(t)

	var ids []int64
	for _, name := range []string{"Samantha", "Budi", "Rina"} {
		fields := orderFields()
		fields["customer_name"] = name
		_, created := submit(t, s, fields, nil)
		ids = append(ids, created.OrderID)
	}

	w := s.admin(t, cookie, "PUT", fmt.Sprintf("/api/v1/admin/orders/%d/status", ids[0]), `{"status":"processing"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "In Progress", updated.StatusLabel)

	w = s.admin(t, cookie, "PUT", fmt.Sprintf("/api/v1/admin/orders/%d/status", ids[1]), `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.admin(t, cookie, "PUT", "/api/v1/admin/orders/999/status", `{"status":"done"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.admin(t, cookie, "GET", "/api/v1/admin/orders?status=processing", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list models.OrderListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Orders, 1)
	assert.Equal(t, "Samantha", list.Orders[0].CustomerName)
	assert.Equal(t, models.OrderStats{Total: 3, Pending: 2, Processing: 1}, list.Stats)

	w = s.admin(t, cookie, "GET", "/api/v1/admin/orders?search=BUD", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Orders, 1)
	assert.Equal(t, "Budi", list.Orders[0].CustomerName)

	w = s.admin(t, cookie, "DELETE", fmt.Sprintf("/api/v1/admin/orders/%d", ids[2]), "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.admin(t, cookie, "GET", fmt.Sprintf("/api/v1/admin/orders/%d", ids[2]), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.admin(t, cookie, "GET", "/api/v1/admin/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.OrderStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, models.OrderStats{Total: 2, Pending: 1, Processing: 1}, stats)
}

func TestServeUpload(t *testing.T) {
	s := newTestServer(t, 1<<20)
	cookie := s.login(t)
	_, created := submit(t, s, orderFields(), []upload{{"files[]", "design.pdf", []byte("%PDF-1.4 body")}})

	order, err := s.orders.GetOrder(t.Context(), created.OrderID)
	require.NoError(t, err)
	path := "/api/v1/admin/uploads/" + order.AttachedFiles[0]

	req, _ := http.NewRequest("GET", path, nil)
	assert.Equal(t, http.StatusUnauthorized, s.do(req).Code)

	w := s.admin(t, cookie, "GET", path, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4 body", w.Body.String())

	w = s.admin(t, cookie, "GET", "/api/v1/admin/uploads/missing.pdf", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExports(t *testing.T) {
	s := newTestServer(t, 1<<20)
	cookie := s.login(t)
	submit(t, s, orderFields(), nil)

	w := s.admin(t, cookie, "GET", "/api/v1/admin/export/excel", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
	assert.Regexp(t, `attachment; filename="orders_\d{8}_\d{6}\.xlsx"`, w.Header().Get("Content-Disposition"))

	w = s.admin(t, cookie, "GET", "/api/v1/admin/export/pdf", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
	assert.Regexp(t, `filename="orders_\d{8}_\d{6}\.pdf"`, w.Header().Get("Content-Disposition"))
}

func TestPosters(t *testing.T) {
	s := newTestServer(t, 1<<20)
	cookie := s.login(t)

	req := multipartRequest(t, "/api/v1/admin/posters",
		map[string]string{"product_name": "Banner", "title": "Promo"},
		[]upload{{"image", "banner.png", []byte("png-bytes")}})
	req.AddCookie(cookie)
	w := s.do(req)
	require.Equal(t, http.StatusCreated, w.Code)
	var poster models.Poster
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &poster))

	req = multipartRequest(t, "/api/v1/admin/posters", map[string]string{}, []upload{{"image", "flyer.pdf", []byte("%PDF")}})
	req.AddCookie(cookie)
	w = s.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "product name is required")

	req, _ = http.NewRequest("GET", "/api/v1/posters", nil)
	w = s.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	var list models.PosterListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Posters, 1)
	assert.Equal(t, "Banner", list.Posters[0].ProductName)

	req, _ = http.NewRequest("GET", "/posters/"+poster.ImagePath, nil)
	w = s.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", w.Body.String())

	w = s.admin(t, cookie, "DELETE", fmt.Sprintf("/api/v1/admin/posters/%d", poster.ID), "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.admin(t, cookie, "DELETE", fmt.Sprintf("/api/v1/admin/posters/%d", poster.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	req, _ = http.NewRequest("GET", "/posters/"+poster.ImagePath, nil)
	assert.Equal(t, http.StatusNotFound, s.do(req).Code)
}
