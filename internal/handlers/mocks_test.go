package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bazario_back_end/internal/config"
	"bazario_back_end/internal/models"
	"bazario_back_end/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestConfig() *config.Config {
	return &config.Config{
		Port:                 "8080",
		ClientURL:            "http://localhost:5173",
		UserJWTSecret:        "user-secret",
		SellerJWTSecret:      "seller-secret",
		ActivationSecret:     "activation-secret",
		ShopActivationSecret: "shop-activation-secret",
		AuthTokenTTL:         time.Hour,
		ActivationTokenTTL:   15 * time.Minute,
	}
}

// --- Doubles des stores ---

type mockShopStore struct{ mock.Mock }

func (m *mockShopStore) Create(ctx context.Context, shop *models.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}

func (m *mockShopStore) GetByID(ctx context.Context, id string) (*models.Shop, error) {
	args := m.Called(ctx, id)
	if shop, ok := args.Get(0).(*models.Shop); ok {
		return shop, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShopStore) GetByEmail(ctx context.Context, email string) (*models.Shop, error) {
	args := m.Called(ctx, email)
	if shop, ok := args.Get(0).(*models.Shop); ok {
		return shop, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShopStore) GetByEmailWithPassword(ctx context.Context, email string) (*models.Shop, error) {
	args := m.Called(ctx, email)
	if shop, ok := args.Get(0).(*models.Shop); ok {
		return shop, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShopStore) UpdateAvatar(ctx context.Context, id, avatarURL string) error {
	args := m.Called(ctx, id, avatarURL)
	return args.Error(0)
}

func (m *mockShopStore) UpdateInfo(ctx context.Context, id string, info repository.ShopInfoUpdate) error {
	args := m.Called(ctx, id, info)
	return args.Error(0)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockProductStore struct{ mock.Mock }

func (m *mockProductStore) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductStore) GetByShop(ctx context.Context, shopID string) ([]models.Product, error) {
	args := m.Called(ctx, shopID)
	if products, ok := args.Get(0).([]models.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductStore) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if products, ok := args.Get(0).([]models.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductStore) UpdateReviews(ctx context.Context, id string, reviews []models.Review, ratings float64) error {
	args := m.Called(ctx, id, reviews, ratings)
	return args.Error(0)
}

type mockOrderStore struct{ mock.Mock }

func (m *mockOrderStore) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderStore) GetByUser(ctx context.Context, userID string) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	if orders, ok := args.Get(0).([]models.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderStore) GetByShop(ctx context.Context, shopID string) ([]models.Order, error) {
	args := m.Called(ctx, shopID)
	if orders, ok := args.Get(0).([]models.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderStore) MarkItemReviewed(ctx context.Context, orderID, productID string) error {
	args := m.Called(ctx, orderID, productID)
	return args.Error(0)
}

type mockCouponStore struct{ mock.Mock }

func (m *mockCouponStore) Create(ctx context.Context, coupon *models.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *mockCouponStore) GetByShop(ctx context.Context, shopID string) ([]models.Coupon, error) {
	args := m.Called(ctx, shopID)
	if coupons, ok := args.Get(0).([]models.Coupon); ok {
		return coupons, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCouponStore) GetByName(ctx context.Context, name string) (*models.Coupon, error) {
	args := m.Called(ctx, name)
	if coupon, ok := args.Get(0).(*models.Coupon); ok {
		return coupon, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCouponStore) GetByShopAndName(ctx context.Context, shopID, name string) (*models.Coupon, error) {
	args := m.Called(ctx, shopID, name)
	if coupon, ok := args.Get(0).(*models.Coupon); ok {
		return coupon, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCouponStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockConversationStore struct{ mock.Mock }

func (m *mockConversationStore) Create(ctx context.Context, conversation *models.Conversation) error {
	args := m.Called(ctx, conversation)
	return args.Error(0)
}

func (m *mockConversationStore) GetByGroupTitle(ctx context.Context, groupTitle string) (*models.Conversation, error) {
	args := m.Called(ctx, groupTitle)
	if conversation, ok := args.Get(0).(*models.Conversation); ok {
		return conversation, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConversationStore) GetByMember(ctx context.Context, memberID string) ([]models.Conversation, error) {
	args := m.Called(ctx, memberID)
	if conversations, ok := args.Get(0).([]models.Conversation); ok {
		return conversations, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConversationStore) UpdateLastMessage(ctx context.Context, id, lastMessage, lastMessageID string) error {
	args := m.Called(ctx, id, lastMessage, lastMessageID)
	return args.Error(0)
}

type mockMessageStore struct{ mock.Mock }

func (m *mockMessageStore) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *mockMessageStore) GetByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	args := m.Called(ctx, conversationID)
	if messages, ok := args.Get(0).([]models.Message); ok {
		return messages, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- Doubles des services ---

type fakeUploader struct {
	uploaded []string
	removed  []string
	failNext bool
}

func (f *fakeUploader) Upload(ctx context.Context, folder string, file *multipart.FileHeader) (string, error) {
	if f.failNext {
		return "", errors.New("upload en échec")
	}
	url := "http://minio.local/bazario/" + folder + "/" + file.Filename
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakeUploader) Remove(ctx context.Context, objectURL string) error {
	f.removed = append(f.removed, objectURL)
	return nil
}

type sentEmail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent     []sentEmail
	failNext bool
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	if f.failNext {
		return errors.New("smtp en échec")
	}
	f.sent = append(f.sent, sentEmail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

// --- Aides HTTP ---

func performJSON(r http.Handler, method, path string, payload any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func performMultipart(r http.Handler, method, path string, body *bytes.Buffer, contentType string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// multipartBody construit un corps multipart avec des champs texte et des
// fichiers PNG factices sous le nom de champ donné.
func multipartBody(t *testing.T, fields map[string]string, fileField string, fileNames []string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, name := range fileNames {
		part, err := writer.CreateFormFile(fileField, name)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}
