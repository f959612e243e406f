package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"backoffice/internal/adminapi"
	"backoffice/internal/repositories"
	"backoffice/pkg/config"
	"backoffice/pkg/eventbus"
	"backoffice/pkg/service"
	"backoffice/pkg/utils"
	appwebsocket "backoffice/pkg/websocket"
)

const testSecret = "test-secret"

type upstreamCall struct {
	Method string
	Path   string
	Query  url.Values
	Body   string
}

// RouterTestSuite поднимает весь роутер поверх фейкового admin API и miniredis.
type RouterTestSuite struct {
	suite.Suite
	Echo     *echo.Echo
	Upstream *httptest.Server
	Token    string

	mu     sync.Mutex
	calls  []upstreamCall
	routes map[string]func() (int, string)
	stop   context.CancelFunc
}

func (s *RouterTestSuite) SetupTest() {
	s.calls = nil
	s.routes = map[string]func() (int, string){
		"GET /v2/admin/orders": s.reply(http.StatusOK, `{"data":[
			{"id":1,"number":"A-1","statusId":4,"total":10,"currency":"EUR","created_at":"2024-05-01T10:00:00Z"},
			{"id":2,"number":"A-2","statusId":1,"total":20,"currency":"EUR","created_at":"2024-05-02T10:00:00Z"}
		],"total":2}`),
		"GET /admin/countries":      s.reply(http.StatusOK, `{"items":[{"id":3,"name":"France","code":"FR","is_active":true}],"total":1}`),
		"GET /admin/order-statuses": s.reply(http.StatusOK, `[{"id":1,"name":"Новый"},{"id":4,"name":"Оплачен"}]`),
		"GET /admin/stores":         s.reply(http.StatusOK, `[{"id":7,"name":"Paris Opéra"}]`),
		"PUT /admin/countries/3":    s.reply(http.StatusUnprocessableEntity, `{"message":"code must be unique"}`),
	}

	s.Upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.calls = append(s.calls, upstreamCall{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Body: string(body)})
		route, ok := s.routes[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"not found"}`))
			return
		}
		status, resp := route()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(resp))
	}))

	mr := miniredis.RunT(s.T())
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := repositories.NewRedisCacheRepository(redisClient)

	nopLogger := zap.NewNop()
	cfg := &config.Config{
		List: config.ListConfig{
			StateStore:       repositories.StateStoreCookie,
			SearchStateTTL:   7 * 24 * time.Hour,
			DebounceInterval: 0,
			LookupCacheTTL:   time.Minute,
			ExportMaxRows:    1000,
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel
	hub := appwebsocket.NewHub(nopLogger)
	go hub.Run(ctx)

	e := echo.New()
	e.Validator = utils.NewValidator(validator.New())
	InitRouter(e, Dependencies{
		Client: adminapi.NewWithHTTPClient(s.Upstream.URL, s.Upstream.Client(), nopLogger),
		Cache:  cache,
		Stores: repositories.NewStateStoreFactory(repositories.StateStoreCookie, nil),
		Bus:    eventbus.New(nopLogger),
		Hub:    hub,
		JWT:    service.NewJWTService(testSecret, nopLogger),
		Config: cfg,
	}, &Loggers{Main: nopLogger, Auth: nopLogger, List: nopLogger, Live: nopLogger})
	s.Echo = e

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, service.JwtCustomClaim{
		UserID:           42,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	signed, err := token.SignedString([]byte(testSecret))
	s.Require().NoError(err)
	s.Token = signed
}

func (s *RouterTestSuite) TearDownTest() {
	s.stop()
	s.Upstream.Close()
}

func (s *RouterTestSuite) reply(status int, body string) func() (int, string) {
	return func() (int, string) { return status, body }
}

func (s *RouterTestSuite) upstream(path string) []upstreamCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []upstreamCall
	for _, c := range s.calls {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (s *RouterTestSuite) do(method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.Token)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Body    json.RawMessage `json:"body"`
}

type listBody struct {
	State struct {
		Filters map[string]any `json:"filters"`
		Page    int            `json:"page"`
		PerPage int            `json:"perPage"`
		SortBy  string         `json:"sortBy"`
		SortDir string         `json:"sortDir"`
	} `json:"state"`
	Chips []struct {
		Key          string `json:"key"`
		Label        string `json:"label"`
		DisplayValue string `json:"displayValue"`
	} `json:"chips"`
	Items      []map[string]any `json:"items"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
	Stale      bool             `json:"stale"`
	Selected   []int64          `json:"selected"`
}

func (s *RouterTestSuite) decode(rec *httptest.ResponseRecorder, out any) envelope {
	var env envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
	if out != nil {
		s.Require().NoError(json.Unmarshal(env.Body, out))
	}
	return env
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (s *RouterTestSuite) TestUnauthorized() {
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Empty(s.upstream("/v2/admin/orders"))
}

func (s *RouterTestSuite) TestOrdersListAppliesFiltersAndSetsCookie() {
	rec := s.do(http.MethodGet, "/api/orders?filter[statusId]=1,4&page=2", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var body listBody
	s.decode(rec, &body)
	s.Equal(2, body.State.Page)
	s.Equal(25, body.State.PerPage)
	s.Equal("created_at", body.State.SortBy)
	s.Equal(2, body.Total)
	s.Len(body.Items, 2)
	s.Require().Len(body.Chips, 1)
	s.Equal("Статус", body.Chips[0].Label)
	s.Equal("Новый, Оплачен", body.Chips[0].DisplayValue)

	calls := s.upstream("/v2/admin/orders")
	s.Require().Len(calls, 1)
	s.Equal("3", calls[0].Query.Get("page"))
	s.Equal("25", calls[0].Query.Get("perPage"))
	s.Equal("1,4", calls[0].Query.Get("statusId"))

	cookie := findCookie(rec, "search_orders")
	s.Require().NotNil(cookie)
	s.Equal(7*24*60*60, cookie.MaxAge)

	// следующий запрос без параметров продолжает с сохранённого состояния
	rec = s.do(http.MethodGet, "/api/orders", "", cookie)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &body)
	s.Equal(2, body.State.Page)
	s.Len(body.Chips, 1)

	rec = s.do(http.MethodGet, "/api/orders?remove_chip=statusId", "", cookie)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &body)
	s.Empty(body.Chips)
	s.Equal(0, body.State.Page, "у заказов смена фильтров сбрасывает страницу")
}

func (s *RouterTestSuite) TestCountriesKeepPageOnFilterChange() {
	rec := s.do(http.MethodGet, "/api/countries?page=3", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	cookie := findCookie(rec, "search_countries")
	s.Require().NotNil(cookie)

	rec = s.do(http.MethodGet, "/api/countries?filter[is_active]=false", "", cookie)
	s.Require().Equal(http.StatusOK, rec.Code)

	var body listBody
	s.decode(rec, &body)
	s.Equal(3, body.State.Page)
	s.Equal("false", body.State.Filters["is_active"])
	s.Require().Len(body.Chips, 1)
	s.Equal("Нет", body.Chips[0].DisplayValue)
	s.Equal(1, body.Total)

	calls := s.upstream("/admin/countries")
	s.Equal("3", calls[len(calls)-1].Query.Get("page"))
	s.Equal("false", calls[len(calls)-1].Query.Get("is_active"))
}

func (s *RouterTestSuite) TestInvalidQuery() {
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/orders?sort_by=password", "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/orders?sort_dir=sideways", "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/orders?per_page=0", "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/orders?page=abc", "").Code)
}

func (s *RouterTestSuite) TestSelection() {
	s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/api/orders", "").Code)

	rec := s.do(http.MethodPost, "/api/orders/selection", `{"op":"select_one","id":2}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var sel struct {
		Selected   []int64 `json:"selected"`
		AllChecked bool    `json:"allChecked"`
	}
	s.decode(rec, &sel)
	s.Equal([]int64{2}, sel.Selected)
	s.False(sel.AllChecked)

	rec = s.do(http.MethodPost, "/api/orders/selection", `{"op":"select_all"}`)
	s.decode(rec, &sel)
	s.Equal([]int64{1, 2}, sel.Selected)
	s.True(sel.AllChecked)

	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/orders/selection", `{"op":"toggle","id":2}`).Code)
}

func (s *RouterTestSuite) TestStateDoesNotCallUpstream() {
	rec := s.do(http.MethodGet, "/api/job-offers/state", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var body struct {
		State struct {
			PerPage int `json:"perPage"`
		} `json:"state"`
	}
	s.decode(rec, &body)
	s.Equal(20, body.State.PerPage)
	s.Empty(s.upstream("/admin/job-offers"))
}

func (s *RouterTestSuite) TestUpstreamErrorIsRelayed() {
	rec := s.do(http.MethodPut, "/api/countries/3", `{"code":"FR"}`)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	env := s.decode(rec, nil)
	s.False(env.Status)
	s.Equal("code must be unique", env.Message)

	s.Equal(http.StatusBadRequest, s.do(http.MethodPut, "/api/countries/abc", `{}`).Code)
}

func (s *RouterTestSuite) TestOrdersExport() {
	rec := s.do(http.MethodGet, "/api/orders/export?format=csv", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Contains(rec.Header().Get(echo.HeaderContentDisposition), "attachment; filename=\"orders_")
	s.Contains(rec.Header().Get(echo.HeaderContentType), "text/csv")
	s.True(strings.HasPrefix(rec.Body.String(), "\ufeffID,Number,Date,Status,Store,Customer,Email,Total,Currency"))

	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/orders/export?format=pdf", "").Code)
}

func (s *RouterTestSuite) TestLiveUnknownScope() {
	rec := s.do(http.MethodGet, "/api/live/users", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
