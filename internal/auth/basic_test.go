package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "courseapi/internal/errors"
	"courseapi/internal/model"
)

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func serve(t *testing.T, verifier Verifier, setAuth func(*http.Request)) (*httptest.ResponseRecorder, *model.User, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	if setAuth != nil {
		setAuth(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *model.User
	handler := BasicAuth(verifier)(func(c echo.Context) error {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		fromCtx, ok := UserFromContext(c.Request().Context())
		require.True(t, ok)
		require.Same(t, user, fromCtx)
		seen = user
		return c.NoContent(http.StatusOK)
	})

	return rec, seen, handler(c)
}

func assertAccessDenied(t *testing.T, err error) {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, apperrors.ErrorResponse{Message: "Access Denied"}, he.Message)
}

func TestBasicAuth_MissingHeader(t *testing.T) {
	verifier := new(MockVerifier)

	_, seen, err := serve(t, verifier, nil)

	assertAccessDenied(t, err)
	assert.Nil(t, seen)
	verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
}

func TestBasicAuth_MalformedHeader(t *testing.T) {
	verifier := new(MockVerifier)

	_, _, err := serve(t, verifier, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer abc")
	})

	assertAccessDenied(t, err)
}

func TestBasicAuth_Rejections(t *testing.T) {
	for _, reason := range []error{apperrors.ErrUserNotFound, apperrors.ErrBadCredentials} {
		t.Run(reason.Error(), func(t *testing.T) {
			verifier := new(MockVerifier)
			verifier.On("Verify", mock.Anything, "a@b.com", "wrong").Return(nil, reason)

			_, seen, err := serve(t, verifier, func(r *http.Request) {
				r.SetBasicAuth("a@b.com", "wrong")
			})

			assertAccessDenied(t, err)
			assert.Nil(t, seen)
			verifier.AssertExpectations(t)
		})
	}
}

func TestBasicAuth_StoreErrorPropagates(t *testing.T) {
	verifier := new(MockVerifier)
	storeErr := errors.New("db unavailable")
	verifier.On("Verify", mock.Anything, "a@b.com", "password1").Return(nil, storeErr)

	_, _, err := serve(t, verifier, func(r *http.Request) {
		r.SetBasicAuth("a@b.com", "password1")
	})

	assert.ErrorIs(t, err, storeErr)
}

func TestBasicAuth_Success(t *testing.T) {
	verifier := new(MockVerifier)
	user := &model.User{ID: 3, FirstName: "A", LastName: "B", EmailAddress: "a@b.com"}
	verifier.On("Verify", mock.Anything, "a@b.com", "password1").Return(user, nil)

	rec, seen, err := serve(t, verifier, func(r *http.Request) {
		r.SetBasicAuth("a@b.com", "password1")
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Same(t, user, seen)
}
