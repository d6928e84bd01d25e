package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shopworks/storefront-backend/internal/auth"
	cartsvc "github.com/shopworks/storefront-backend/internal/cart"
	"github.com/shopworks/storefront-backend/internal/catalog"
	"github.com/shopworks/storefront-backend/internal/checkout"
	mediasvc "github.com/shopworks/storefront-backend/internal/media"
	"github.com/shopworks/storefront-backend/internal/messages"
	ordersvc "github.com/shopworks/storefront-backend/internal/orders"
	usersvc "github.com/shopworks/storefront-backend/internal/users"
	pkgAuth "github.com/shopworks/storefront-backend/pkg/auth"
	"github.com/shopworks/storefront-backend/pkg/auth/session"
	"github.com/shopworks/storefront-backend/pkg/config"
	"github.com/shopworks/storefront-backend/pkg/enums"
	"github.com/shopworks/storefront-backend/pkg/logger"
	"github.com/shopworks/storefront-backend/pkg/pagination"
	"github.com/shopworks/storefront-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

func (stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return session.NewAccessID(), "rotated-refresh", nil
}

func (stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

type stubRegisterService struct{}

func (stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: uuid.New(), Username: req.Username}, nil
}

type stubUsersService struct{}

func (stubUsersService) List(ctx context.Context) ([]usersvc.UserDTO, error) {
	return nil, nil
}

func (stubUsersService) Get(ctx context.Context, id uuid.UUID) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: id}, nil
}

func (stubUsersService) Update(ctx context.Context, id uuid.UUID, dto usersvc.UpdateUserDTO) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: id}, nil
}

func (stubUsersService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	return nil
}

type stubCatalogService struct{}

func (stubCatalogService) List(ctx context.Context, filter catalog.ListFilter) ([]catalog.ProductDTO, error) {
	return []catalog.ProductDTO{{ID: uuid.New(), Name: "Trowel"}}, nil
}

func (stubCatalogService) Featured(ctx context.Context, n int) ([]catalog.ProductDTO, error) {
	return nil, nil
}

func (stubCatalogService) Get(ctx context.Context, id uuid.UUID) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{ID: id}, nil
}

func (stubCatalogService) Categories(ctx context.Context) ([]string, error) {
	return []string{"tools"}, nil
}

func (stubCatalogService) Create(ctx context.Context, dto catalog.CreateProductDTO) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{ID: uuid.New(), Name: dto.Name}, nil
}

func (stubCatalogService) Update(ctx context.Context, id uuid.UUID, dto catalog.UpdateProductDTO) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{ID: id}, nil
}

func (stubCatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubCartService struct{}

func (stubCartService) GetCart(ctx context.Context, userID uuid.UUID) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{}, nil
}

func (stubCartService) AddItem(ctx context.Context, userID, productID uuid.UUID) (int, error) {
	return 1, nil
}

func (stubCartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	return nil
}

func (stubCartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	return nil
}

func (stubCartService) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	return 0, nil
}

type stubOrdersService struct{}

func (stubOrdersService) ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ordersvc.Page, error) {
	return &ordersvc.Page{}, nil
}

func (stubOrdersService) GetForUser(ctx context.Context, orderID, userID uuid.UUID) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: orderID}, nil
}

func (stubOrdersService) ListAll(ctx context.Context) ([]ordersvc.OrderDTO, error) {
	return nil, nil
}

func (stubOrdersService) Get(ctx context.Context, orderID uuid.UUID) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: orderID}, nil
}

func (stubOrdersService) Update(ctx context.Context, orderID uuid.UUID, dto ordersvc.UpdateOrderDTO) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: orderID}, nil
}

func (stubOrdersService) Delete(ctx context.Context, orderID uuid.UUID) error {
	return nil
}

type stubMessagesService struct{}

func (stubMessagesService) Create(ctx context.Context, dto messages.CreateMessageDTO) (*messages.MessageDTO, error) {
	return &messages.MessageDTO{ID: uuid.New()}, nil
}

func (stubMessagesService) List(ctx context.Context) ([]messages.MessageDTO, error) {
	return nil, nil
}

func (stubMessagesService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubMediaService struct{}

func (stubMediaService) UploadProductImage(ctx context.Context, productID uuid.UUID, originalName string, size int64, file io.Reader) (*mediasvc.UploadResult, error) {
	return &mediasvc.UploadResult{Filename: "x.png"}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "router-test-secret",
			Issuer:                 "storefront-test",
			ExpirationMinutes:      15,
			RefreshTokenTTLMinutes: 7 * 24 * 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:          cfg,
		Logger:          logg,
		DB:              stubPinger{},
		Redis:           (*redis.Client)(nil),
		SessionManager:  stubSessionManager{},
		AuthService:     stubAuthService{},
		RegisterService: stubRegisterService{},
		UsersService:    stubUsersService{},
		CatalogService:  stubCatalogService{},
		CartService:     stubCartService{},
		CheckoutEngine:  &checkout.Engine{},
		OrdersService:   stubOrdersService{},
		MessagesService: stubMessagesService{},
		MediaService:    stubMediaService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID:   uuid.New(),
		Username: "router-test",
		Role:     role,
		JTI:      session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Storefront-Env") != "test" {
		t.Fatalf("expected env header, got %q", resp.Header().Get("X-Storefront-Env"))
	}
}

func TestHealthReadyReportsMissingRedis(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestPublicCatalogNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Trowel") {
		t.Fatalf("expected product payload, got %s", resp.Body.String())
	}
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPrivateGroupAcceptsCustomerJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for customer got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	customer := httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil)
	customer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, customer)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestContactRequiresIdempotencyKey(t *testing.T) {
	router := newTestRouter(testConfig())

	body := `{"first_name":"Ana","last_name":"Reyes","email":"ana@example.com","message":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without Idempotency-Key got %d", resp.Code)
	}
}

func TestLoginRouteRegistered(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"casey","password":"hunter22"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "access") {
		t.Fatalf("expected tokens in payload, got %s", resp.Body.String())
	}
}
