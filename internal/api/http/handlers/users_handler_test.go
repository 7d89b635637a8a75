package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/places-service/internal/api/dto"
	httptransport "github.com/spec-kit/places-service/internal/api/http"
	"github.com/spec-kit/places-service/internal/api/http/handlers"
	"github.com/spec-kit/places-service/internal/auth"
	"github.com/spec-kit/places-service/internal/config"
	"github.com/spec-kit/places-service/internal/domain"
	"github.com/spec-kit/places-service/internal/media"
	"github.com/spec-kit/places-service/internal/observability"
	"github.com/spec-kit/places-service/internal/service"
	"github.com/spec-kit/places-service/internal/validation"
)

// --- in-memory repositories ---

type memUserRepo struct {
	seq   int
	users []*domain.User
}

func (m *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	m.seq++
	user.ID = "u" + string(rune('0'+m.seq))
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users = append(m.users, user)
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) List(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

type memPlaceRepo struct {
	seq    int
	places []*domain.Place
}

func (m *memPlaceRepo) Create(ctx context.Context, place *domain.Place) error {
	m.seq++
	place.ID = "p" + string(rune('0'+m.seq))
	m.places = append(m.places, place)
	return nil
}

func (m *memPlaceRepo) Update(ctx context.Context, place *domain.Place) error {
	for i, p := range m.places {
		if p.ID == place.ID {
			m.places[i] = place
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memPlaceRepo) Delete(ctx context.Context, id string) error {
	for i, p := range m.places {
		if p.ID == id {
			m.places = append(m.places[:i], m.places[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memPlaceRepo) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	for _, p := range m.places {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memPlaceRepo) ListByCreator(ctx context.Context, creatorID string) ([]domain.Place, error) {
	var out []domain.Place
	for _, p := range m.places {
		if p.CreatorID == creatorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

// --- fixture ---

type fixture struct {
	app      *fiber.App
	userRepo *memUserRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			TokenTTLMinutes: 60,
			BcryptCost:      bcrypt.MinCost,
		},
		Upload: config.UploadConfig{
			Dir:           t.TempDir(),
			MaxBytes:      1 << 20,
			ThumbnailSize: 64,
		},
	}

	logger := zap.NewNop()
	mediaStore, err := media.NewStore(cfg.Upload, logger)
	require.NoError(t, err)

	userRepo := &memUserRepo{}
	placeRepo := &memPlaceRepo{}

	userService := service.NewUserService(cfg, service.UserDependencies{UserRepo: userRepo})
	placeService := service.NewPlaceService(cfg, service.PlaceDependencies{PlaceRepo: placeRepo, Media: mediaStore})

	validator := validation.New()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), time.Minute)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", nil, nil),
		Users:          handlers.NewUsersHandler(userService, mediaStore, validator),
		Places:         handlers.NewPlacesHandler(placeService, mediaStore, validator),
		AuthMiddleware: auth.NewAuthMiddleware(userService.TokenManager(), userRepo),
	})

	return &fixture{app: app, userRepo: userRepo}
}

func signupRequest(t *testing.T, name, email, password string, withImage bool) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("name", name))
	require.NoError(t, writer.WriteField("email", email))
	require.NoError(t, writer.WriteField("password", password))

	if withImage {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="image"; filename="avatar.png"`)
		header.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		require.NoError(t, png.Encode(part, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/users/signup", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeAuth(t *testing.T, resp *http.Response) dto.AuthResponse {
	t.Helper()
	var out dto.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// --- scenarios ---

func TestSignup_ThenDuplicate(t *testing.T) {
	fx := newFixture(t)

	resp, err := fx.app.Test(signupRequest(t, "A", "a@x.com", "secret1", true), 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	authResp := decodeAuth(t, resp)
	require.NotEmpty(t, authResp.Token)
	require.Equal(t, "a@x.com", authResp.Email)

	resp, err = fx.app.Test(signupRequest(t, "A", "a@x.com", "secret1", true), 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(raw), "user exists already")
}

func TestSignup_InvalidInput(t *testing.T) {
	fx := newFixture(t)

	resp, err := fx.app.Test(signupRequest(t, "A", "not-an-email", "secret1", true), 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSignup_MissingImage(t *testing.T) {
	fx := newFixture(t)

	resp, err := fx.app.Test(signupRequest(t, "A", "a@x.com", "secret1", false), 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLogin_StatusSplit(t *testing.T) {
	fx := newFixture(t)

	resp, err := fx.app.Test(signupRequest(t, "A", "a@x.com", "secret1", true), 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	registered := decodeAuth(t, resp)

	// unknown email: 403 regardless of password
	resp, err = fx.app.Test(jsonRequest(t, http.MethodPost, "/api/users/login",
		dto.LoginRequest{Email: "nobody@x.com", Password: "secret1"}), 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// wrong password: 401
	resp, err = fx.app.Test(jsonRequest(t, http.MethodPost, "/api/users/login",
		dto.LoginRequest{Email: "a@x.com", Password: "wrong-1"}), 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// correct credentials: 200 with a token for the same user
	resp, err = fx.app.Test(jsonRequest(t, http.MethodPost, "/api/users/login",
		dto.LoginRequest{Email: "a@x.com", Password: "secret1"}), 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	loggedIn := decodeAuth(t, resp)
	require.Equal(t, registered.UserID, loggedIn.UserID)
	require.NotEmpty(t, loggedIn.Token)
}

func TestLogin_InvalidPayload(t *testing.T) {
	fx := newFixture(t)

	resp, err := fx.app.Test(jsonRequest(t, http.MethodPost, "/api/users/login",
		dto.LoginRequest{Email: "not-an-email", Password: "x"}), 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestListUsers_NeverExposesPassword(t *testing.T) {
	fx := newFixture(t)

	resp, err := fx.app.Test(signupRequest(t, "A", "a@x.com", "secret1", true), 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = fx.app.Test(httptest.NewRequest(http.MethodGet, "/api/users", nil), 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)
	require.Contains(t, body, `"users"`)
	require.Contains(t, body, "a@x.com")
	require.False(t, strings.Contains(body, "password"), "listing leaked a password field: %s", body)
	require.False(t, strings.Contains(body, "secret1"), "listing leaked a plaintext password")
}
