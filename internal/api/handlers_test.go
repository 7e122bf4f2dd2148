package api_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/nebyuabel/quizquezt-app/internal/api"
	errorvalues "github.com/nebyuabel/quizquezt-app/internal/error_values"
	"github.com/nebyuabel/quizquezt-app/internal/service"
	"github.com/nebyuabel/quizquezt-app/pkg/entity"
	jwtservice "github.com/nebyuabel/quizquezt-app/pkg/jwt_service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

var (
	username        = "test_name"
	password        = "test_password"
	passwordHash, _ = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	uid             = uuid.New()
)

func testProfile() *entity.Profile {
	return &entity.Profile{
		ID:           uid,
		Username:     username,
		PasswordHash: string(passwordHash),
	}
}

// Hand-written service mocks: a nil err means the happy path.

type UserServiceMock struct {
	err error
}

func (usmock *UserServiceMock) Register(ctx context.Context, req *service.RegisterRequest) (*entity.Profile, error) {
	if usmock.err != nil {
		return nil, usmock.err
	}
	return testProfile(), nil
}

func (usmock *UserServiceMock) Login(ctx context.Context, name, pass string) (*entity.Profile, error) {
	if usmock.err != nil {
		return nil, usmock.err
	}
	return testProfile(), nil
}

func (usmock *UserServiceMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	if usmock.err != nil {
		return nil, usmock.err
	}
	return testProfile(), nil
}

func (usmock *UserServiceMock) DeleteAccount(ctx context.Context, id uuid.UUID, pass string) error {
	return usmock.err
}

type PremiumServiceMock struct {
	err   error
	until time.Time
}

func (pmock *PremiumServiceMock) Redeem(ctx context.Context, id uuid.UUID, rawCode string) (*service.RedeemResult, error) {
	if pmock.err != nil {
		return nil, pmock.err
	}
	return &service.RedeemResult{PremiumUntil: pmock.until}, nil
}

type StoreServiceMock struct {
	err error
}

func (smock *StoreServiceMock) Items() []service.StoreItem {
	return []service.StoreItem{{ID: "streak_freeze", Name: "Streak Freeze", Price: 50}}
}

func (smock *StoreServiceMock) Purchase(ctx context.Context, id uuid.UUID, itemID string) (*service.StoreItem, error) {
	if smock.err != nil {
		return nil, smock.err
	}
	return &service.StoreItem{ID: itemID, Price: 50}, nil
}

type ProgressServiceMock struct {
	err    error
	result *service.ProgressResult
}

func (pmock *ProgressServiceMock) CompleteQuiz(ctx context.Context, id uuid.UUID, outcome *service.QuizOutcome) (*service.ProgressResult, error) {
	if pmock.err != nil {
		return nil, pmock.err
	}
	return pmock.result, nil
}

func (pmock *ProgressServiceMock) CompleteFlashcards(ctx context.Context, id uuid.UUID, outcome *service.FlashcardOutcome) (*service.ProgressResult, error) {
	if pmock.err != nil {
		return nil, pmock.err
	}
	return pmock.result, nil
}

func authed(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), "User-ID", uid))
}

func TestRegister(t *testing.T) {
	body, err := sonic.ConfigDefault.Marshal(api.RegisterRequest{
		Username: username,
		Password: password,
	})
	require.NoError(t, err)
	mock := UserServiceMock{}
	serv := api.New(&api.ServicesList{
		UserService: &mock,
	})
	t.Run("registered", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/register", bytes.NewReader(body))
		mock.err = nil
		serv.Register(rr, req)
		assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)
	})
	t.Run("error user exists", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/register", bytes.NewReader(body))
		mock.err = errorvalues.ErrUserExists
		serv.Register(rr, req)
		assert.Equal(t, http.StatusConflict, rr.Result().StatusCode)
	})
	t.Run("service error", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/register", bytes.NewReader(body))
		mock.err = errors.New("mocked error")
		serv.Register(rr, req)
		assert.Equal(t, http.StatusInternalServerError, rr.Result().StatusCode)
	})
	t.Run("invalid body", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/register", nil)
		mock.err = nil
		serv.Register(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
}

func TestLogin(t *testing.T) {
	body, err := sonic.ConfigDefault.Marshal(api.LoginRequest{
		Username: username,
		Password: password,
	})
	require.NoError(t, err)
	mock := UserServiceMock{}
	serv := api.New(&api.ServicesList{
		UserService: &mock,
		JwtService:  jwtservice.New("secret"),
	})
	t.Run("logged in", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewReader(body))
		mock.err = nil
		serv.Login(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		result := make(map[string]any)
		err := sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&result)
		require.NoError(t, err)
		token, ok := result["token"].(string)
		if !ok || token == "" {
			t.Error("invalid token")
		}
	})
	t.Run("error user not found", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewReader(body))
		mock.err = errorvalues.ErrUserNotFound
		serv.Login(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
	t.Run("error wrong password", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewReader(body))
		mock.err = errorvalues.ErrWrongCredentials
		serv.Login(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Result().StatusCode)
	})
	t.Run("invalid body", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/login", nil)
		mock.err = nil
		serv.Login(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
}

func TestCompleteQuizHandler(t *testing.T) {
	mock := ProgressServiceMock{
		result: &service.ProgressResult{
			XPEarned:    80,
			CoinsEarned: 20,
			TotalXP:     180,
			TotalCoins:  40,
			Streak:      3,
			Accuracy:    80,
			Tier:        "Rookie Thinker",
		},
	}
	serv := api.New(&api.ServicesList{
		ProgressService: &mock,
	})
	body, err := sonic.ConfigDefault.Marshal(api.QuizCompletionRequest{Correct: 4, Total: 5})
	require.NoError(t, err)
	t.Run("applied", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/progress/quiz", bytes.NewReader(body)))
		mock.err = nil
		serv.CompleteQuiz(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var result service.ProgressResult
		err := sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&result)
		require.NoError(t, err)
		assert.Equal(t, *mock.result, result)
	})
	t.Run("error unexist user", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/progress/quiz", bytes.NewReader(body)))
		mock.err = errorvalues.ErrUserNotFound
		serv.CompleteQuiz(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
	t.Run("error validation", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/progress/quiz", bytes.NewReader(body)))
		mock.err = errors.New("validation error: Total")
		serv.CompleteQuiz(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("unauthorized", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/progress/quiz", bytes.NewReader(body))
		serv.CompleteQuiz(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
}

func TestRedeemPremiumHandler(t *testing.T) {
	mock := PremiumServiceMock{until: time.Now().Add(365 * 24 * time.Hour)}
	serv := api.New(&api.ServicesList{
		PremiumService: &mock,
	})
	body, err := sonic.ConfigDefault.Marshal(api.RedeemRequest{Code: "QUIZ-2025"})
	require.NoError(t, err)
	testCases := []struct {
		Desc         string
		Err          error
		ExpectedCode int
	}{
		{Desc: "redeemed", Err: nil, ExpectedCode: http.StatusOK},
		{Desc: "already premium", Err: errorvalues.ErrAlreadyPremium, ExpectedCode: http.StatusConflict},
		{Desc: "code not found", Err: errorvalues.ErrCodeNotFound, ExpectedCode: http.StatusNotFound},
		{Desc: "code already used", Err: errorvalues.ErrCodeAlreadyUsed, ExpectedCode: http.StatusConflict},
		{Desc: "code expired", Err: errorvalues.ErrCodeExpired, ExpectedCode: http.StatusGone},
		{Desc: "unexist user", Err: errorvalues.ErrUserNotFound, ExpectedCode: http.StatusNotFound},
		{Desc: "service error", Err: errors.New("mocked error"), ExpectedCode: http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/premium/redeem", bytes.NewReader(body)))
			mock.err = tc.Err
			serv.RedeemPremium(rr, req)
			assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
		})
	}
	t.Run("empty code", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/premium/redeem", bytes.NewReader([]byte(`{"code":""}`))))
		mock.err = nil
		serv.RedeemPremium(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
}

func TestPurchaseHandler(t *testing.T) {
	mock := StoreServiceMock{}
	serv := api.New(&api.ServicesList{
		StoreService: &mock,
	})
	body, err := sonic.ConfigDefault.Marshal(api.PurchaseRequest{ItemID: "streak_freeze"})
	require.NoError(t, err)
	testCases := []struct {
		Desc         string
		Err          error
		ExpectedCode int
	}{
		{Desc: "purchased", Err: nil, ExpectedCode: http.StatusOK},
		{Desc: "unknown item", Err: errorvalues.ErrUnknownItem, ExpectedCode: http.StatusNotFound},
		{Desc: "not enough coins", Err: errorvalues.ErrInsufficientCoins, ExpectedCode: http.StatusPaymentRequired},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/store/purchase", bytes.NewReader(body)))
			mock.err = tc.Err
			serv.Purchase(rr, req)
			assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
		})
	}
}

func TestStoreItemsHandler(t *testing.T) {
	serv := api.New(&api.ServicesList{
		StoreService: &StoreServiceMock{},
	})
	rr := httptest.NewRecorder()
	req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/store/items", nil))
	serv.StoreItems(rr, req)
	assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	var items []service.StoreItem
	raw, _ := io.ReadAll(rr.Result().Body)
	require.NoError(t, sonic.Unmarshal(raw, &items))
	assert.Len(t, items, 1)
}

func testHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := api.GetUIDFromContext(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"uid": "` + uid.String() + `"}`))
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := jwtservice.New("secret")
	serv := api.New(&api.ServicesList{
		UserService: &UserServiceMock{},
		JwtService:  jwtService,
	})
	handler := serv.AuthMiddleware(http.HandlerFunc(testHandler))
	token, err := jwtService.GenerateToken(testProfile())
	require.NoError(t, err)
	t.Run("successful auth", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/endpoint", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("error without header", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/endpoint", nil)
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
	t.Run("error with malformed header", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/endpoint", nil)
		req.Header.Set("Authorization", token)
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
}
