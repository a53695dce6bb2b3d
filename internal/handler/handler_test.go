package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GoArmGo/UserManager/internal/core/ports"
	"github.com/GoArmGo/UserManager/internal/database/memory"
	"github.com/GoArmGo/UserManager/internal/domain"
	"github.com/GoArmGo/UserManager/internal/logger"
	"github.com/GoArmGo/UserManager/internal/messaging/payloads"
	"github.com/GoArmGo/UserManager/internal/usecase"
	"github.com/stretchr/testify/require"
)

// failingStorage ломается на любом обращении
type failingStorage struct{ err error }

func (f failingStorage) FindAll(context.Context) ([]domain.User, error) { return nil, f.err }
func (f failingStorage) FindByID(context.Context, int64) (*domain.User, error) {
	return nil, f.err
}
func (f failingStorage) Save(context.Context, *domain.User) (*domain.User, error) {
	return nil, f.err
}
func (f failingStorage) DeleteByID(context.Context, int64) error { return f.err }
func (f failingStorage) ExistsByEmail(context.Context, string) (bool, error) {
	return false, f.err
}
func (f failingStorage) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, f.err
}

type recordingPublisher struct {
	published []payloads.UserImportPayload
	err       error
}

func (p *recordingPublisher) PublishUserImport(ctx context.Context, payload payloads.UserImportPayload) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, payload)
	return nil
}

type testServer struct {
	handler http.Handler
	store   ports.UserStorage
}

func newTestServer(t *testing.T, store ports.UserStorage, publisher ports.UserImportPublisher) *testServer {
	t.Helper()
	if store == nil {
		store = memory.NewUserStorage()
	}
	log := logger.Discard()
	uc := usecase.NewUserUseCase(store, nil, log)

	web, err := NewUserWebHandler(uc, log)
	require.NoError(t, err)

	return &testServer{
		handler: NewRouter(web, NewUserAPIHandler(uc, publisher, log), log, 0),
		store:   store,
	}
}

func (s *testServer) do(t *testing.T, method, target, body string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if strings.HasPrefix(target, "/api/") {
		req.Header.Set("Content-Type", "application/json")
	} else if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec.Result()
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
