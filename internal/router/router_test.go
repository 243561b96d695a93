package router_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/go-favorite-cities/config"
	"github.com/FACorreiaa/go-favorite-cities/internal/container"
	"github.com/FACorreiaa/go-favorite-cities/internal/types"
)

var userColumns = []string{"id", "username", "email", "hashed_password", "disabled", "created_at", "disabled_at"}

// RouterTestSuite drives the full route table over a mocked pool.
type RouterTestSuite struct {
	suite.Suite
	mockPool pgxmock.PgxPoolIface
	server   *httptest.Server
	client   *http.Client

	aliceID     uuid.UUID
	aliceDigest string
}

func (s *RouterTestSuite) SetupSuite() {
	digest, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	s.Require().NoError(err)
	s.aliceDigest = string(digest)
	s.aliceID = uuid.New()
	s.client = &http.Client{Timeout: 10 * time.Second}
}

func (s *RouterTestSuite) SetupTest() {
	mockPool, err := pgxmock.NewPool()
	s.Require().NoError(err)
	s.mockPool = mockPool

	cfg := &config.Config{}
	cfg.CORS.AllowedOrigins = []string{"http://localhost:5173"}
	cfg.Auth.BcryptCost = bcrypt.MinCost
	cfg.JWT = config.JWTConfig{
		SecretKey:      "router-test-secret",
		Algorithm:      "HS256",
		AccessTokenTTL: 15 * time.Minute,
		Issuer:         "router-test",
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := container.NewContainerWithDB(cfg, mockPool, logger)
	s.Require().NoError(err)
	s.server = httptest.NewServer(c.Router())
}

func (s *RouterTestSuite) TearDownTest() {
	s.server.Close()
	s.NoError(s.mockPool.ExpectationsWereMet())
	s.mockPool.Close()
}

func (s *RouterTestSuite) expectUserLookup(username string, disabled bool) {
	var disabledAt *time.Time
	if disabled {
		now := time.Now()
		disabledAt = &now
	}
	s.mockPool.ExpectQuery(`FROM users\s+WHERE username = \$1`).
		WithArgs(username).
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(s.aliceID, username, username+"@example.com", s.aliceDigest, disabled, time.Now(), disabledAt))
}

func (s *RouterTestSuite) do(method, path, token string, body io.Reader, contentType string) *http.Response {
	req, err := http.NewRequest(method, s.server.URL+path, body)
	s.Require().NoError(err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	s.T().Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *RouterTestSuite) login(username, password string) *http.Response {
	form := url.Values{"username": {username}, "password": {password}}
	return s.do(http.MethodPost, "/token", "", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func (s *RouterTestSuite) token() string {
	s.expectUserLookup("alice", false)
	resp := s.login("alice", "correct-password")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var tok types.TokenResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&tok))
	s.Require().Equal("bearer", tok.TokenType)
	s.Require().NotEmpty(tok.AccessToken)
	return tok.AccessToken
}

func (s *RouterTestSuite) TestPing() {
	resp := s.do(http.MethodGet, "/ping", "", nil, "")
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *RouterTestSuite) TestSwaggerDoc() {
	resp := s.do(http.MethodGet, "/swagger/doc.json", "", nil, "")
	s.Equal(http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "/add_favorite_city")
}

func (s *RouterTestSuite) TestLoginThenMe() {
	token := s.token()

	s.expectUserLookup("alice", false)
	resp := s.do(http.MethodGet, "/users/me", token, nil, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var me types.UserResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&me))
	s.Equal("alice", me.Username)
	s.Equal(s.aliceID, me.ID)
}

func (s *RouterTestSuite) TestWrongPassword() {
	s.expectUserLookup("alice", false)
	resp := s.login("alice", "wrong-password")

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("Bearer", resp.Header.Get("WWW-Authenticate"))
}

func (s *RouterTestSuite) TestProtectedRoutesRequireToken() {
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/users/me"},
		{http.MethodGet, "/users/me/cities"},
		{http.MethodGet, "/allusers"},
		{http.MethodPost, "/get_user_by_username"},
		{http.MethodPost, "/get_user_by_id"},
		{http.MethodPost, "/add_favorite_city"},
		{http.MethodDelete, "/delete_favored_city"},
		{http.MethodDelete, "/users/delete_user"},
	} {
		resp := s.do(route.method, route.path, "", nil, "")
		s.Equal(http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
		s.Equal("Bearer", resp.Header.Get("WWW-Authenticate"))
	}

	resp := s.do(http.MethodGet, "/users/me", "not-a-token", nil, "")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *RouterTestSuite) TestDisabledUserWithValidToken() {
	token := s.token()

	s.expectUserLookup("alice", true)
	resp := s.do(http.MethodGet, "/users/me", token, nil, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Empty(resp.Header.Get("WWW-Authenticate"))

	var body map[string]interface{}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal("Inactive user", body["error"])
}

func (s *RouterTestSuite) TestAddFavoriteCity() {
	token := s.token()
	favoredID := uuid.New()

	s.expectUserLookup("alice", false)
	s.mockPool.ExpectQuery(`INSERT INTO favored_cities`).
		WithArgs(s.aliceID, "Bergen").
		WillReturnRows(pgxmock.NewRows([]string{"favored_id", "user_id", "city"}).
			AddRow(favoredID, s.aliceID, "Bergen"))

	resp := s.do(http.MethodPost, "/add_favorite_city", token, strings.NewReader(`{"city":"Bergen"}`), "application/json")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var fav types.FavoriteCityResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&fav))
	s.Equal(favoredID, fav.FavoredID)
	s.Equal("alice", fav.Username)
	s.Equal("Bergen", fav.City)
}

func (s *RouterTestSuite) TestDeleteFavoredCityOfAnotherUser() {
	token := s.token()
	favoredID := uuid.New()

	s.expectUserLookup("alice", false)
	s.mockPool.ExpectExec(`DELETE FROM favored_cities`).
		WithArgs(favoredID, s.aliceID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	resp := s.do(http.MethodDelete, "/delete_favored_city?favored_id="+favoredID.String(), token, nil, "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *RouterTestSuite) TestCreateUserIsPublic() {
	id := uuid.New()
	s.mockPool.ExpectQuery(`INSERT INTO users`).
		WithArgs("bob", "bob@example.com", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(id, "bob", "bob@example.com", "digest", false, time.Now(), (*time.Time)(nil)))

	resp := s.do(http.MethodPost, "/create_user", "",
		strings.NewReader(`{"username":"bob","email":"bob@example.com","password":"pw"}`), "application/json")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var created types.CreateUserResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&created))
	s.Equal(id, created.ID)
}

func (s *RouterTestSuite) TestCORSPreflight() {
	req, err := http.NewRequest(http.MethodOptions, s.server.URL+"/users/me", nil)
	s.Require().NoError(err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal("http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
