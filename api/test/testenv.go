package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SavinNik/Alfa-test-case/api"
	"github.com/SavinNik/Alfa-test-case/config"
	"github.com/SavinNik/Alfa-test-case/core/claims"
	"github.com/SavinNik/Alfa-test-case/core/user"
	"github.com/SavinNik/Alfa-test-case/database"
	"github.com/SavinNik/Alfa-test-case/random"
	"github.com/SavinNik/Alfa-test-case/validate"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	docker "github.com/ory/dockertest/v3/docker"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// TestEnv wires a throwaway postgres container to a running API server.
// The client keeps a cookie jar, so Login and Logout act on the same
// session the requests use.
type TestEnv struct {
	DB     *sqlx.DB
	Server *httptest.Server
	URL    string

	UserEmail  string
	UserPass   string
	AdminEmail string
	AdminPass  string

	client *http.Client
}

func NewTestEnv(t *testing.T, name string) (*TestEnv, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("connecting to docker: %w", err)
	}
	pool.MaxWait = 2 * time.Minute

	res, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_DB=" + name,
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("starting postgres container: %w", err)
	}
	t.Cleanup(func() { _ = pool.Purge(res) })

	cfg := config.DB{
		User:       "postgres",
		Password:   "postgres",
		Host:       res.GetHostPort("5432/tcp"),
		Name:       name,
		DisableTLS: true,
	}

	var db *sqlx.DB
	if err := pool.Retry(func() error {
		var err error
		db, err = database.Open(cfg)
		if err != nil {
			return err
		}
		return db.Ping()
	}); err != nil {
		return nil, fmt.Errorf("waiting for postgres: %w", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrating test database: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	session := scs.New()
	session.Lifetime = time.Hour

	mux := api.APIMux(api.APIConfig{
		Log:     logger,
		DB:      db,
		Session: session,
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	env := &TestEnv{
		DB:         db,
		Server:     srv,
		URL:        srv.URL,
		UserPass:   random.String(12),
		AdminPass:  random.String(12),
		UserEmail:  random.String(8) + "@test.com",
		AdminEmail: random.String(8) + "@test.com",
		client:     &http.Client{Jar: jar},
	}

	if err := env.seedAdmin(); err != nil {
		return nil, fmt.Errorf("seeding admin user: %w", err)
	}
	if err := env.signupUser(); err != nil {
		return nil, fmt.Errorf("signing up test user: %w", err)
	}

	return env, nil
}

func (e *TestEnv) Client() *http.Client { return e.client }

// seedAdmin writes the admin straight to the database: there is no
// admin-creation endpoint to go through.
func (e *TestEnv) seedAdmin() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(e.AdminPass), bcrypt.MinCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	return user.Create(context.Background(), e.DB, user.User{
		ID:           validate.GenerateID(),
		Name:         "admin",
		Email:        e.AdminEmail,
		Role:         claims.RoleAdmin,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (e *TestEnv) signupUser() error {
	body := map[string]string{
		"name":     "tester",
		"email":    e.UserEmail,
		"password": e.UserPass,
	}

	status, err := e.JSON(http.MethodPost, "/auth/signup", body, nil)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("signup returned status %d", status)
	}
	return Logout(e)
}

// JSON performs a request with a JSON body and decodes the JSON answer
// into out when out is not nil.
func (e *TestEnv) JSON(method string, path string, body any, out any) (int, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		rd = bytes.NewReader(b)
	}

	r, err := http.NewRequest(method, e.URL+path, rd)
	if err != nil {
		return 0, err
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	w, err := e.client.Do(r)
	if err != nil {
		return 0, err
	}
	defer w.Body.Close()

	if out != nil && w.StatusCode < 300 {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			return w.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	}
	return w.StatusCode, nil
}

func Login(e *TestEnv, email string, pass string) error {
	body := map[string]string{"email": email, "password": pass}

	status, err := e.JSON(http.MethodPost, "/auth/login", body, nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return fmt.Errorf("login returned status %d", status)
	}
	return nil
}

func Logout(e *TestEnv) error {
	status, err := e.JSON(http.MethodPost, "/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return fmt.Errorf("logout returned status %d", status)
	}
	return nil
}
