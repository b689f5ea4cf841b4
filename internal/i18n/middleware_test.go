package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func serveWithLang(t *testing.T, acceptLanguage string) string {
	t.Helper()
	if err := Init("en"); err != nil {
		t.Fatalf("Init: %v", err)
	}

	var got string
	h := Middleware("en")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = T(r.Context(), "AppTitle")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestMiddlewareHonorsAcceptLanguage(t *testing.T) {
	if got := serveWithLang(t, "ru"); got != "Квизфорж" {
		t.Errorf("with Accept-Language ru got %q, want 'Квизфорж'", got)
	}
}

func TestMiddlewareFallsBackToServerLanguage(t *testing.T) {
	if got := serveWithLang(t, ""); got != "Quizforge" {
		t.Errorf("without Accept-Language got %q, want 'Quizforge'", got)
	}
}

func TestMiddlewareUnknownLanguageFallsBack(t *testing.T) {
	if got := serveWithLang(t, "fr"); got != "Quizforge" {
		t.Errorf("with unsupported language got %q, want 'Quizforge'", got)
	}
}
