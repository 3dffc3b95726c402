// Package apitest wires api.Deps against a fake upstream and a throwaway
// SQLite database for handler tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dashboard.GO/api"
	"dashboard.GO/config"
	"dashboard.GO/core/auth"
	"dashboard.GO/core/cache"
	entity "dashboard.GO/model/entity"
)

const (
	Username = "mor_2314"
	Password = "83r5^_"
	Token    = "demo-token"
)

// Upstream fakes the identity, collections and demo store APIs.
func Upstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != Username || body["password"] != Password {
			http.Error(w, `{"message":"bad credentials"}`, http.StatusUnauthorized)
			return
		}
		writeJSON(w, map[string]string{"token": Token})
	})

	mux.HandleFunc("GET /Collection/GetAll", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		w.Write([]byte(`{"meta":{"page":1,"pageSize":5,"totalCount":2,"totalPages":1,"hasPreviousPage":false,"hasNextPage":false},
			"data":[
			{"id":72,"type":0,"salesChannelId":1,"info":{"id":72,"name":"Yaz Koleksiyonu","description":"Yaz"},
			 "filters":{"useOrLogic":false,"filters":[{"id":"color","title":"Renk","value":"1","valueName":"Kırmızı","comparisonType":0}]}},
			{"id":73,"type":0,"salesChannelId":2,"info":{"id":73,"name":"Kış Koleksiyonu","description":"Kış"},
			 "filters":{"useOrLogic":true,"filters":[]}}]}`))
	})

	mux.HandleFunc("POST /Collection/{id}/GetProductsForConstants", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		var body struct {
			AdditionalFilters []map[string]interface{} `json:"additionalFilters"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body.AdditionalFilters) > 0 {
			w.Write([]byte(`{"status":200,"data":{"data":[{"imageUrl":"/img/b.jpg","name":"Elbise BBB","productCode":"BBB"}]}}`))
			return
		}
		w.Write([]byte(`{"status":200,"data":{"data":[
			{"imageUrl":"/img/a.jpg","name":"Gömlek AAA","productCode":"AAA"},
			{"imageUrl":"/img/b.jpg","name":"Elbise BBB","productCode":"BBB"},
			{"imageUrl":"/img/c.jpg","name":"Etek CCC","productCode":"CCC"}]}}`))
	})

	mux.HandleFunc("GET /Collection/{id}/GetFiltersForConstants", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		w.Write([]byte(`{"status":200,"data":[{"id":"color","title":"Renk","values":[
			{"value":"1","valueName":"Kırmızı"},{"value":"2","valueName":"Mavi"}],"currency":null,"comparisonType":0}]}`))
	})

	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"title":"Red Shoe","price":20,"category":"shoes","image":"/s.png","description":"d"},
			{"id":2,"title":"Blue Hat","price":50,"category":"hats","image":"/h.png","description":"d"}]`))
	})
	mux.HandleFunc("GET /products/categories", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["hats","shoes"]`))
	})
	mux.HandleFunc("GET /carts", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"userId":1,"date":"2020-03-02","products":[{"productId":1,"quantity":4}]}]`))
	})
	mux.HandleFunc("POST /carts", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		body["id"] = 11
		writeJSON(w, body)
	})
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"email":"john@gmail.com","username":"johnd"}]`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func authorized(w http.ResponseWriter, r *http.Request) bool {
	if strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ") != Token {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// DB opens a migrated SQLite database that lives for the test.
func DB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Deps returns dependencies pointed at upstreamURL for every collaborator.
// The process-wide response cache is emptied before and after the test.
func Deps(t *testing.T, upstreamURL string) *api.Deps {
	t.Helper()
	cache.GetInstance().Flush()
	t.Cleanup(cache.GetInstance().Flush)
	cfg := config.Build()
	cfg.FakeStoreURL = upstreamURL
	cfg.MaestroURL = upstreamURL
	cfg.IdentityVariant = "token"
	cfg.IdentityURL = upstreamURL + "/auth/login"
	cfg.HTTPTimeout = 5 * time.Second
	cfg.SessionCookie = "test_session"
	cfg.CacheTTL = time.Minute
	return api.NewDeps(cfg, DB(t), zap.NewNop(), nil)
}

// Session stores a signed-in session holding the upstream token.
func Session(t *testing.T, d *api.Deps) *entity.Session {
	t.Helper()
	s := &entity.Session{Username: Username, Variant: "token", AccessToken: Token}
	if err := d.Sessions.Create(s, time.Hour); err != nil {
		t.Fatalf("create session: %v", err)
	}
	return s
}

// Echo returns a server with the validator and session middleware installed.
func Echo(d *api.Deps) *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	e.Use(auth.Middleware(d.Sessions, d.AuthOptions()))
	return e
}

// Request performs a request carrying the session cookie, if any.
func Request(e *echo.Echo, method, target, body string, s *entity.Session, cookieName string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if s != nil {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: s.ID})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
