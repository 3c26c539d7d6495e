package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/Swayamo/quizverse/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthService accepts exactly one token and rejects everything else.
type stubAuthService struct {
	validToken string
	userID     string
}

func (s *stubAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) GetGoogleLoginURL(state string) string { return "" }

func (s *stubAuthService) HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (*dto.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) ValidateToken(tokenString string) (*dto.AuthClaims, error) {
	if tokenString == s.validToken {
		return &dto.AuthClaims{UserID: s.userID}, nil
	}
	return nil, fiber.ErrUnauthorized
}

func (s *stubAuthService) GetUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	return nil, nil
}

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", Protected(&stubAuthService{validToken: "good-token", userID: "user1"}), func(c *fiber.Ctx) error {
		return c.SendString(UserID(c))
	})
	return app
}

func TestProtected(t *testing.T) {
	app := protectedApp()

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic abc", fiber.StatusUnauthorized},
		{"empty token", "Bearer ", fiber.StatusUnauthorized},
		{"invalid token", "Bearer bad-token", fiber.StatusUnauthorized},
		{"valid token", "Bearer good-token", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set(AuthorizationHeader, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestUserIDWithoutAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/open", func(c *fiber.Ctx) error {
		assert.Empty(t, UserID(c))
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
