package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/friendgraph/config"
	"github.com/d60-Lab/friendgraph/internal/api/handler"
	"github.com/d60-Lab/friendgraph/internal/repository"
	"github.com/d60-Lab/friendgraph/internal/service"
	"github.com/d60-Lab/friendgraph/pkg/cache"
	"github.com/d60-Lab/friendgraph/pkg/database"
	"github.com/d60-Lab/friendgraph/pkg/metrics"
	"github.com/d60-Lab/friendgraph/pkg/password"
	"github.com/d60-Lab/friendgraph/pkg/token"
)

const testPassword = "Abcdef1"

type testServer struct {
	engine *gin.Engine
	redis  *miniredis.Miniredis
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	users := repository.NewUserRepository(db)
	countryRepo := repository.NewCountryRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	postRepo := repository.NewPostRepository(db)
	reactionRepo := repository.NewReactionRepository(db)

	m := metrics.New("test")
	tokens := service.NewTokenService(token.NewCodec("router-secret", nil, time.Hour), users)
	policy := service.NewAccessPolicy(users, friendRepo)
	posts := service.NewPostService(postRepo, policy)
	countries := service.NewCountryService(countryRepo, cache.NewJSONCache(rdb, "countries:", time.Minute))
	_, err = countries.Seed(context.Background())
	require.NoError(t, err)

	h := handler.NewHandler(handler.Services{
		Identity:  service.NewIdentityService(users, countryRepo, password.NewBcryptHasher(bcrypt.MinCost), tokens, nil),
		Friends:   service.NewFriendshipService(friendRepo, users),
		Policy:    policy,
		Posts:     posts,
		Reactions: service.NewReactionService(posts, reactionRepo, nil, m),
		Countries: countries,
		Failures:  m,
	})
	engine := Setup(h, Options{
		Tokens:  tokens,
		Metrics: m,
		Server:  config.ServerConfig{Mode: gin.TestMode},
	})
	return &testServer{engine: engine, redis: mr}
}

func (s *testServer) do(t *testing.T, method, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) register(t *testing.T, login string, public bool) {
	t.Helper()
	body, _ := json.Marshal(map[string]any{
		"login":       login,
		"email":       login + "@example.com",
		"password":    testPassword,
		"countryCode": "RU",
		"isPublic":    public,
	})
	w := s.do(t, http.MethodPost, "/api/auth/register", string(body), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func (s *testServer) signIn(t *testing.T, login, pass string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/sign-in/", `{"login":"`+login+`","password":"`+pass+`"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out handler.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func (s *testServer) createPost(t *testing.T, bearer, content string) handler.PostResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/posts/new", `{"content":"`+content+`","tags":["a","b"]}`, bearer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var p handler.PostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func reason(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["reason"]
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/ping", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRegisterFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/register",
		`{"login":"alice","email":"alice@example.com","password":"Abcdef1","countryCode":"RU","isPublic":true}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"profile":{"login":"alice","email":"alice@example.com","countryCode":"RU","isPublic":true}}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/auth/register",
		`{"login":"alice","email":"other@example.com","password":"Abcdef1","countryCode":"RU","isPublic":true}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User already exists", reason(t, w))

	w = s.do(t, http.MethodPost, "/api/auth/register", `{"login":"bob"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing fields", reason(t, w))

	w = s.do(t, http.MethodPost, "/api/auth/register",
		`{"login":"bob","email":"bob@example.com","password":"short","countryCode":"RU","isPublic":true}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Bad password", reason(t, w))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("login=bob"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Bad content type", reason(t, rec))
}

func TestSignInFailures(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice", false)

	w := s.do(t, http.MethodPost, "/api/auth/sign-in/", `{"login":"alice","password":"Wrong123"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Incorrect password", reason(t, w))

	w = s.do(t, http.MethodPost, "/api/auth/sign-in/", `{"login":"ghost","password":"Wrong123"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "User not registered", reason(t, w))

	w = s.do(t, http.MethodPost, "/api/auth/sign-in/", `{"login":"alice"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Login and password are required", reason(t, w))
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)
	for _, bearer := range []string{"", "garbage"} {
		w := s.do(t, http.MethodGet, "/api/me/profile/", "", bearer)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid token", reason(t, w))
	}
}

func TestProfileRoutes(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice", false)
	s.register(t, "private", false)
	s.register(t, "public", true)
	tok := s.signIn(t, "alice", testPassword)

	w := s.do(t, http.MethodGet, "/api/me/profile/", "", tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"login":"alice","email":"alice@example.com","countryCode":"RU","isPublic":false}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/profiles/public", "", tok)
	assert.Equal(t, http.StatusOK, w.Code)

	hidden := s.do(t, http.MethodGet, "/api/profiles/private", "", tok)
	absent := s.do(t, http.MethodGet, "/api/profiles/nobody", "", tok)
	assert.Equal(t, http.StatusForbidden, hidden.Code)
	assert.Equal(t, absent.Code, hidden.Code)
	assert.Equal(t, absent.Body.Bytes(), hidden.Body.Bytes())

	w = s.do(t, http.MethodPatch, "/api/me/profile/", `{"isPublic":true,"phone":"+79001234567"}`, tok)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"login":"alice","email":"alice@example.com","countryCode":"RU","isPublic":true,"phone":"+79001234567"}`, w.Body.String())

	w = s.do(t, http.MethodPatch, "/api/me/profile/", `{"login":"mallory"}`, tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bad data", reason(t, w))

	w = s.do(t, http.MethodPatch, "/api/me/profile/", `{"countryCode":"ZZ"}`, tok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePasswordRevokesToken(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice", false)
	tok := s.signIn(t, "alice", testPassword)

	w := s.do(t, http.MethodPost, "/api/me/updatePassword/", `{"oldPassword":"Abcdef1","newPassword":"weak"}`, tok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Password not valid", reason(t, w))

	w = s.do(t, http.MethodPost, "/api/me/updatePassword/", `{"oldPassword":"Nope1234","newPassword":"Newpass1"}`, tok)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/me/updatePassword/", `{"oldPassword":"Abcdef1","newPassword":"Newpass1"}`, tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reason":"Password updated"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/me/profile/", "", tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	fresh := s.signIn(t, "alice", "Newpass1")
	w = s.do(t, http.MethodGet, "/api/me/profile/", "", fresh)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFriendsRoutes(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice", false)
	s.register(t, "bob", false)
	tok := s.signIn(t, "alice", testPassword)

	w := s.do(t, http.MethodPost, "/api/friends/add/", `{"login":"bob"}`, tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	w = s.do(t, http.MethodPost, "/api/friends/add/", `{"login":"bob"}`, tok)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPost, "/api/friends/add/", `{"login":"alice"}`, tok)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/friends/add/", `{"login":"ghost"}`, tok)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodPost, "/api/friends/add/", `{}`, tok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Login is required", reason(t, w))

	w = s.do(t, http.MethodPost, "/api/friends/", "", tok)
	require.Equal(t, http.StatusOK, w.Code)
	var friends []handler.FriendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &friends))
	require.Len(t, friends, 1)
	assert.Equal(t, "bob", friends[0].Login)
	_, err := time.Parse(time.RFC3339, friends[0].AddedAt)
	assert.NoError(t, err)

	w = s.do(t, http.MethodPost, "/api/friends/remove/", `{"login":"bob"}`, tok)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPost, "/api/friends/remove/", `{"login":"ghost"}`, tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/friends/", "", tok)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestPaginationCheckedBeforeToken(t *testing.T) {
	s := newTestServer(t)
	for _, q := range []string{"limit=51", "limit=-1", "offset=-3"} {
		w := s.do(t, http.MethodPost, "/api/friends/?"+q, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid limit or offset", reason(t, w), q)
	}

	s.register(t, "alice", false)
	tok := s.signIn(t, "alice", testPassword)
	for i := 0; i < 7; i++ {
		s.createPost(t, tok, "post")
	}
	var feed []handler.PostResponse
	w := s.do(t, http.MethodGet, "/api/posts/feed/my?limit=abc", "", tok)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	assert.Len(t, feed, 5)

	w = s.do(t, http.MethodGet, "/api/posts/feed/my?limit=50&offset=6", "", tok)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	assert.Len(t, feed, 1)
}

func TestPrivateAuthorScenario(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "author", false)
	s.register(t, "stranger", false)
	authorTok := s.signIn(t, "author", testPassword)
	strangerTok := s.signIn(t, "stranger", testPassword)

	post := s.createPost(t, authorTok, "hidden")
	assert.Equal(t, []string{"a", "b"}, post.Tags)
	assert.Zero(t, post.LikesCount)

	hidden := s.do(t, http.MethodGet, "/api/posts/"+post.ID, "", strangerTok)
	absent := s.do(t, http.MethodGet, "/api/posts/00000000-0000-0000-0000-000000000000", "", strangerTok)
	assert.Equal(t, http.StatusNotFound, hidden.Code)
	assert.Equal(t, absent.Code, hidden.Code)
	assert.Equal(t, absent.Body.Bytes(), hidden.Body.Bytes())

	w := s.do(t, http.MethodPost, "/api/posts/"+post.ID+"/like", "", strangerTok)
	assert.Equal(t, hidden.Body.Bytes(), w.Body.Bytes())
	w = s.do(t, http.MethodGet, "/api/posts/feed/author", "", strangerTok)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/friends/add/", `{"login":"stranger"}`, authorTok)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/posts/"+post.ID, "", strangerTok)
	assert.Equal(t, http.StatusOK, w.Code)

	var got handler.PostResponse
	w = s.do(t, http.MethodPost, "/api/posts/"+post.ID+"/like", "", strangerTok)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.LikesCount)
	assert.Equal(t, int64(0), got.DislikesCount)

	w = s.do(t, http.MethodPost, "/api/posts/"+post.ID+"/dislike", "", strangerTok)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(0), got.LikesCount)
	assert.Equal(t, int64(1), got.DislikesCount)
}

func TestCreatePostRejectsBadData(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice", true)
	tok := s.signIn(t, "alice", testPassword)

	w := s.do(t, http.MethodPost, "/api/posts/new", `{"tags":[]}`, tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bad data", reason(t, w))

	long := strings.Repeat("x", 1001)
	w = s.do(t, http.MethodPost, "/api/posts/new", `{"content":"`+long+`"}`, tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCountries(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/countries/RU", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Russian Federation","alpha2":"RU","alpha3":"RUS","region":"Europe"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/countries/QQ", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Country not found", reason(t, w))

	var rows []handler.CountryResponse
	w = s.do(t, http.MethodGet, "/api/countries?region=Europe&region=Asia", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.NotEmpty(t, rows)
	for i, c := range rows {
		assert.Contains(t, []string{"Europe", "Asia"}, c.Region)
		if i > 0 {
			assert.Less(t, rows[i-1].Alpha2, c.Alpha2)
		}
	}
	assert.NotEmpty(t, s.redis.Keys(), "list should be cached")

	w = s.do(t, http.MethodGet, "/api/countries?region=Europe&region=Europe", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodGet, "/api/countries?region=Atlantis", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Bad data", reason(t, w))
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/api/ping", "", "")
	s.do(t, http.MethodGet, "/api/me/profile/", "", "nope")

	w := s.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_http_requests_total")
	assert.Contains(t, w.Body.String(), `test_auth_failures_total{reason="token"} 1`)
}
