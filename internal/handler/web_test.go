package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flashCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == flashCookieName {
			return c
		}
	}
	t.Fatalf("response has no %q cookie", flashCookieName)
	return nil
}

func form(name, email, phone, address string) string {
	return url.Values{
		"name":    {name},
		"email":   {email},
		"phone":   {phone},
		"address": {address},
	}.Encode()
}

func TestWeb_ListRendersUsers(t *testing.T) {
	s := newTestServer(t, nil, nil)

	resp := s.do(t, http.MethodPost, "/add-user", form("Alice", "a@x.com", "1", "X"))
	require.Equal(t, http.StatusFound, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "a@x.com")
	assert.Contains(t, body, `/edit-user/1`)
}

func TestWeb_AddUserSuccessFlashesOnce(t *testing.T) {
	s := newTestServer(t, nil, nil)

	resp := s.do(t, http.MethodPost, "/add-user", form("Alice", "a@x.com", "1", "X"))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	c := flashCookie(t, resp)

	resp = s.do(t, http.MethodGet, "/", "", c)
	assert.Contains(t, readBody(t, resp), "User added successfully!")
	cleared := flashCookie(t, resp)
	assert.True(t, cleared.MaxAge < 0)

	// без cookie сообщения уже нет
	resp = s.do(t, http.MethodGet, "/", "")
	assert.NotContains(t, readBody(t, resp), "User added successfully!")
}

func TestWeb_AddUserDuplicateEmail(t *testing.T) {
	s := newTestServer(t, nil, nil)

	s.do(t, http.MethodPost, "/add-user", form("Alice", "a@x.com", "1", "X"))
	resp := s.do(t, http.MethodPost, "/add-user", form("Other", "a@x.com", "2", "Y"))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/add-user", resp.Header.Get("Location"))

	resp = s.do(t, http.MethodGet, "/add-user", "", flashCookie(t, resp))
	assert.Contains(t, readBody(t, resp), "Email already exists!")

	users, _ := s.store.FindAll(context.Background())
	assert.Len(t, users, 1)
}

func TestWeb_AddUserStoreFailure(t *testing.T) {
	s := newTestServer(t, failingStorage{err: errors.New("db down")}, nil)

	resp := s.do(t, http.MethodPost, "/add-user", form("Alice", "a@x.com", "1", "X"))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/add-user", resp.Header.Get("Location"))

	resp = s.do(t, http.MethodGet, "/add-user", "", flashCookie(t, resp))
	assert.Contains(t, readBody(t, resp), "Error adding user: db down")
}

func TestWeb_EditForm(t *testing.T) {
	s := newTestServer(t, nil, nil)
	s.do(t, http.MethodPost, "/add-user", form("Alice", "a@x.com", "1", "X"))

	resp := s.do(t, http.MethodGet, "/edit-user/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, `value="Alice"`)
	assert.Contains(t, body, `action="/edit-user/1"`)
}

func TestWeb_EditFormMissingUser(t *testing.T) {
	s := newTestServer(t, nil, nil)

	for _, target := range []string{"/edit-user/42", "/edit-user/abc"} {
		resp := s.do(t, http.MethodGet, target, "")
		require.Equal(t, http.StatusFound, resp.StatusCode, target)
		assert.Equal(t, "/", resp.Header.Get("Location"))

		resp = s.do(t, http.MethodGet, "/", "", flashCookie(t, resp))
		assert.Contains(t, readBody(t, resp), "User not found!")
	}
}

func TestWeb_EditUser(t *testing.T) {
	s := newTestServer(t, nil, nil)
	s.do(t, http.MethodPost, "/add-user", form("Alice", "a@x.com", "1", "X"))

	resp := s.do(t, http.MethodPost, "/edit-user/1", form("Alicia", "alicia@x.com", "9", "Z"))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp = s.do(t, http.MethodGet, "/", "", flashCookie(t, resp))
	body := readBody(t, resp)
	assert.Contains(t, body, "User updated successfully!")
	assert.Contains(t, body, "alicia@x.com")
}

func TestWeb_EditMissingUserReturnsToList(t *testing.T) {
	s := newTestServer(t, nil, nil)

	resp := s.do(t, http.MethodPost, "/edit-user/5", form("Ghost", "g@x.com", "", ""))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp = s.do(t, http.MethodGet, "/", "", flashCookie(t, resp))
	assert.Contains(t, readBody(t, resp), "Error updating user: User not found with id: 5")
}

func TestWeb_DeleteUser(t *testing.T) {
	s := newTestServer(t, nil, nil)
	s.do(t, http.MethodPost, "/add-user", form("Alice", "a@x.com", "1", "X"))

	resp := s.do(t, http.MethodGet, "/delete-user/1", "")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp = s.do(t, http.MethodGet, "/", "", flashCookie(t, resp))
	body := readBody(t, resp)
	assert.Contains(t, body, "User deleted successfully!")
	assert.NotContains(t, body, "a@x.com")
}

func TestWeb_DeleteStoreFailure(t *testing.T) {
	s := newTestServer(t, failingStorage{err: errors.New("db down")}, nil)

	resp := s.do(t, http.MethodGet, "/delete-user/1", "")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	c := flashCookie(t, resp)
	f, ok := popFlash(httptest.NewRecorder(), cookieRequest(c))
	require.True(t, ok)
	assert.Equal(t, flashError, f.Kind)
	assert.Equal(t, "Error deleting user: db down", f.Message)
}

func cookieRequest(c *http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)
	return r
}

func TestFlash_RejectsGarbage(t *testing.T) {
	_, ok := popFlash(httptest.NewRecorder(), cookieRequest(&http.Cookie{Name: flashCookieName, Value: "kind=warning&msg=hi"}))
	assert.False(t, ok)

	_, ok = popFlash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestFlash_RoundTripKeepsPunctuation(t *testing.T) {
	rec := httptest.NewRecorder()
	setFlash(rec, flashError, "Error adding user: pq: duplicate key; \"users_email_key\"")

	c := rec.Result().Cookies()[0]
	f, ok := popFlash(httptest.NewRecorder(), cookieRequest(c))
	require.True(t, ok)
	assert.Equal(t, "Error adding user: pq: duplicate key; \"users_email_key\"", f.Message)
}
