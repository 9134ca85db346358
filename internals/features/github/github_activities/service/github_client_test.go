package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const eventsFixture = `[
  {"id":"101","type":"PushEvent","repo":{"name":"acme/api"},"created_at":"2026-03-02T03:00:00Z",
   "payload":{"commits":[{"sha":"abc123","message":"fix login\n\nlong body"},{"sha":"def456","message":"add tests"}]}},
  {"id":"102","type":"PullRequestEvent","repo":{"name":"acme/api"},"created_at":"2026-03-02T04:00:00Z",
   "payload":{"action":"opened","pull_request":{"title":"Attendance export","html_url":"https://github.com/acme/api/pull/7"}}},
  {"id":"103","type":"IssuesEvent","repo":{"name":"acme/web"},"created_at":"2026-03-01T04:00:00Z",
   "payload":{"action":"closed","issue":{"title":"Broken chart","html_url":"https://github.com/acme/web/issues/3"}}},
  {"id":"104","type":"PullRequestReviewEvent","repo":{"name":"acme/web"},"created_at":"2026-03-01T05:00:00Z",
   "payload":{"action":"created","review":{"state":"APPROVED","html_url":"https://github.com/acme/web/pull/9#r1"},"pull_request":{"title":"Dark mode"}}},
  {"id":"105","type":"WatchEvent","repo":{"name":"golang/go"},"created_at":"2026-02-28T05:00:00Z","payload":{"action":"started"}}
]`

func TestPublicEvents(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(eventsFixture))
	}))
	defer srv.Close()

	client := NewClient(context.Background(), srv.URL, "secret-token")
	events, err := client.PublicEvents(context.Background(), "octocat", 50)
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/users/octocat/events/public" {
		t.Errorf("path = %s", gotPath)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if len(events) != 5 || events[0].Type != "PushEvent" || events[0].Repo.Name != "acme/api" {
		t.Fatalf("events = %+v", events)
	}
}

func TestPublicEventsErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		headers map[string]string
		want    error
	}{
		{"not found", http.StatusNotFound, nil, ErrGithubUserNotFound},
		{"rate limited 429", http.StatusTooManyRequests, nil, ErrGithubRateLimited},
		{"rate limited 403", http.StatusForbidden, map[string]string{"X-RateLimit-Remaining": "0"}, ErrGithubRateLimited},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tc.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			_, err := NewClient(context.Background(), srv.URL, "").PublicEvents(context.Background(), "ghost", 10)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	if _, err := NewClient(context.Background(), srv.URL, "").PublicEvents(context.Background(), "x", 10); err == nil {
		t.Fatal("expected error on 500")
	}
}
