package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"emptrack_backend/internals/features/github/github_activities/model"
)

func TestMapEvents(t *testing.T) {
	var events []Event
	if err := sonic.Unmarshal([]byte(eventsFixture), &events); err != nil {
		t.Fatal(err)
	}
	user := uuid.New()
	rows := MapEvents(user, events)

	if len(rows) != 6 {
		t.Fatalf("rows = %d, want 6 (2 commits + 4 events)", len(rows))
	}

	byID := map[string]model.GithubActivityModel{}
	for _, r := range rows {
		if r.UserID != user {
			t.Fatalf("row for wrong user: %+v", r)
		}
		byID[r.ExternalID] = r
	}

	commit := byID["abc123"]
	if commit.Type != model.TypeCommit || commit.Title != "fix login" || commit.URL == nil || *commit.URL != "https://github.com/acme/api/commit/abc123" {
		t.Errorf("commit = %+v", commit)
	}
	if pr := byID["102"]; pr.Type != model.TypePullRequest || pr.Title != "opened: Attendance export" {
		t.Errorf("pr = %+v", pr)
	}
	if is := byID["103"]; is.Type != model.TypeIssue || is.Title != "closed: Broken chart" || is.Repository != "acme/web" {
		t.Errorf("issue = %+v", is)
	}
	if rv := byID["104"]; rv.Type != model.TypeReview || rv.Title != "approved: Dark mode" || *rv.URL != "https://github.com/acme/web/pull/9#r1" {
		t.Errorf("review = %+v", rv)
	}
	if ot := byID["105"]; ot.Type != model.TypeOther || ot.Title != "Watch on golang/go" {
		t.Errorf("other = %+v", ot)
	}
}

func TestSummarize(t *testing.T) {
	var events []Event
	if err := sonic.Unmarshal([]byte(eventsFixture), &events); err != nil {
		t.Fatal(err)
	}
	sum := Summarize(MapEvents(uuid.New(), events))

	if sum.Total != 6 || sum.Repositories != 3 || sum.TopRepository != "acme/api" {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.ByType[model.TypeCommit] != 2 || sum.ByType[model.TypeOther] != 1 {
		t.Fatalf("by type = %v", sum.ByType)
	}
	if sum.LastActivityAt == nil || sum.LastActivityAt.Hour() != 4 {
		t.Fatalf("last activity = %v", sum.LastActivityAt)
	}

	empty := Summarize(nil)
	if empty.Total != 0 || empty.LastActivityAt != nil || len(empty.ByType) != len(model.ActivityTypes) {
		t.Fatalf("empty = %+v", empty)
	}
}

func TestFirstLineKeepsValidUTF8(t *testing.T) {
	msg := strings.Repeat("a", 199) + "é rest of the subject\n\nbody"
	got := firstLine(msg)
	if !utf8.ValidString(got) {
		t.Fatalf("title is not valid UTF-8: %q", got[len(got)-4:])
	}
	if got != strings.Repeat("a", 199) {
		t.Fatalf("len = %d, tail = %q", len(got), got[len(got)-4:])
	}

	short := firstLine("  fix: handle ñ in names  \nmore")
	if short != "fix: handle ñ in names" {
		t.Fatalf("short = %q", short)
	}
	if exact := firstLine(strings.Repeat("b", 198) + "é"); exact != strings.Repeat("b", 198)+"é" {
		t.Fatalf("200-byte title was cut: %q", exact)
	}
}

func TestMapEventsMalformedPayloadFallsBack(t *testing.T) {
	ev := Event{ID: "9", Type: "IssuesEvent", Payload: []byte(`"not an object"`)}
	ev.Repo.Name = "acme/api"
	rows := MapEvents(uuid.New(), []Event{ev})
	if len(rows) != 1 || rows[0].Type != model.TypeOther {
		t.Fatalf("rows = %+v", rows)
	}
}
