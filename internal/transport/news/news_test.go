package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestNewsAPI_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/everything" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("language") != "ar" || q.Get("sortBy") != "publishedAt" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{
					"title": "اعلان نتائج السادس",
					"description": "وصف مختصر",
					"content": "اعلنت وزارة التربية نتائج السادس الاعدادي",
					"url": "https://news.example/a1",
					"publishedAt": "2026-08-29T10:30:00Z"
				},
				{
					"title": "",
					"url": "https://news.example/no-title"
				}
			]
		}`))
	}))
	defer srv.Close()

	c := NewNewsAPIClient(&NewsAPIConfig{
		APIKey:   "k",
		Query:    "العراق OR Iraq",
		Language: "ar",
		PageSize: 20,
		BaseURL:  srv.URL,
		Logger:   zap.NewNop(),
	})

	articles, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected untitled article dropped, got %d articles", len(articles))
	}
	if articles[0].PublishedAt != "2026-08-29 10:30:00" {
		t.Fatalf("unexpected timestamp: %q", articles[0].PublishedAt)
	}
	if articles[0].Body != "اعلنت وزارة التربية نتائج السادس الاعدادي" {
		t.Fatalf("expected content preferred over description, got %q", articles[0].Body)
	}
}

func TestNewsAPI_Rejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status": "error", "message": "apiKey invalid"}`))
	}))
	defer srv.Close()

	c := NewNewsAPIClient(&NewsAPIConfig{BaseURL: srv.URL, Logger: zap.NewNop()})
	if _, err := c.Fetch(context.Background()); err == nil {
		t.Fatal("expected rejection error")
	}
}

func TestNewsData_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("language") != "ar" || q.Get("country") != "iq" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Write([]byte(`{
			"status": "success",
			"results": [
				{
					"title": "بيان وزارة الداخلية",
					"description": "وصف",
					"link": "https://moi.gov.iq/news/9",
					"pubDate": "2026-08-29 09:00:00"
				}
			]
		}`))
	}))
	defer srv.Close()

	c := NewNewsDataClient(&NewsDataConfig{
		APIKey:   "k",
		Query:    "العراق",
		Language: "ar",
		Country:  "iq",
		BaseURL:  srv.URL,
		Logger:   zap.NewNop(),
	})

	articles, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 1 || articles[0].URL != "https://moi.gov.iq/news/9" {
		t.Fatalf("unexpected articles: %+v", articles)
	}
	if articles[0].Body != "وصف" {
		t.Fatalf("expected description fallback, got %q", articles[0].Body)
	}
}

func TestNewsData_DegradesFilters(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		calls = append(calls, q.Get("language")+"/"+q.Get("country"))
		if q.Get("country") != "" || q.Get("language") != "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"status": "error"}`))
			return
		}
		w.Write([]byte(`{"status": "success", "results": []}`))
	}))
	defer srv.Close()

	c := NewNewsDataClient(&NewsDataConfig{
		APIKey:   "k",
		Query:    "العراق",
		Language: "ar",
		Country:  "iq",
		BaseURL:  srv.URL,
		Logger:   zap.NewNop(),
	})

	articles, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("expected query-only fallback to succeed, got %v", err)
	}
	if len(articles) != 0 {
		t.Fatalf("unexpected articles: %+v", articles)
	}
	want := []string{"ar/iq", "ar/", "/"}
	if len(calls) != len(want) {
		t.Fatalf("expected %d attempts, got %v", len(want), calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("attempt %d: expected %q, got %q", i, want[i], calls[i])
		}
	}
}

func TestNewsData_HardErrorStops(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status": "error"}`))
	}))
	defer srv.Close()

	c := NewNewsDataClient(&NewsDataConfig{BaseURL: srv.URL, Logger: zap.NewNop()})
	if _, err := c.Fetch(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected no retries on a non-filter error, got %d calls", calls)
	}
}
