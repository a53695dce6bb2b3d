package handler

import (
	"net/http"
	"net/url"
)

const flashCookieName = "flash"

const (
	flashSuccess = "success"
	flashError   = "error"
)

// flash — сообщение, которое показывается ровно на одной следующей странице
type flash struct {
	Kind    string
	Message string
}

// setFlash кладет сообщение в cookie перед редиректом
func setFlash(w http.ResponseWriter, kind, message string) {
	v := url.Values{}
	v.Set("kind", kind)
	v.Set("msg", message)

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    v.Encode(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash читает сообщение и сразу просит браузер удалить cookie.
// Битое значение молча отбрасывается
func popFlash(w http.ResponseWriter, r *http.Request) (flash, bool) {
	c, err := r.Cookie(flashCookieName)
	if err != nil {
		return flash{}, false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	v, err := url.ParseQuery(c.Value)
	if err != nil {
		return flash{}, false
	}
	f := flash{Kind: v.Get("kind"), Message: v.Get("msg")}
	if f.Message == "" || (f.Kind != flashSuccess && f.Kind != flashError) {
		return flash{}, false
	}
	return f, true
}
