package pages

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStaticPages(t *testing.T) {
	cases := []struct {
		name    string
		handler func(w *httptest.ResponseRecorder)
		want    string
	}{
		{"landing", func(w *httptest.ResponseRecorder) {
			Landing(w, httptest.NewRequest("GET", "/", nil), nil)
		}, "Daily Journal"},
		{"login", func(w *httptest.ResponseRecorder) {
			LoginForm(w, httptest.NewRequest("GET", "/login", nil), nil)
		}, `action="/login"`},
		{"register", func(w *httptest.ResponseRecorder) {
			RegisterForm(w, httptest.NewRequest("GET", "/register", nil), nil)
		}, `action="/register"`},
		{"about", func(w *httptest.ResponseRecorder) {
			About(w, httptest.NewRequest("GET", "/about", nil), nil)
		}, "daily journal"},
		{"contact", func(w *httptest.ResponseRecorder) {
			Contact(w, httptest.NewRequest("GET", "/contact", nil), nil)
		}, "Email"},
	}

	for _, c := range cases {
		rec := httptest.NewRecorder()
		c.handler(rec)
		if rec.Code != 200 {
			t.Errorf("%s: status = %d", c.name, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), c.want) {
			t.Errorf("%s: body missing %q", c.name, c.want)
		}
	}
}
