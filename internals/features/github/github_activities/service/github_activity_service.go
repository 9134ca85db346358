package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"emptrack_backend/internals/features/github/github_activities/model"
)

var ErrNoGithubUsername = errors.New("github username is not set on your profile")

type pushPayload struct {
	Commits []struct {
		SHA     string `json:"sha"`
		Message string `json:"message"`
	} `json:"commits"`
}

type ghItem struct {
	Title   string `json:"title"`
	State   string `json:"state"`
	HTMLURL string `json:"html_url"`
}

type itemPayload struct {
	Action      string  `json:"action"`
	PullRequest *ghItem `json:"pull_request"`
	Issue       *ghItem `json:"issue"`
	Review      *ghItem `json:"review"`
}

// MapEvents turns GitHub events into activity rows for userID. A push
// becomes one row per commit, keyed by sha.
func MapEvents(userID uuid.UUID, events []Event) []model.GithubActivityModel {
	out := make([]model.GithubActivityModel, 0, len(events))
	for _, ev := range events {
		repo := ev.Repo.Name
		base := model.GithubActivityModel{
			UserID:     userID,
			Repository: repo,
			OccurredAt: ev.CreatedAt.UTC(),
			ExternalID: ev.ID,
			Payload:    datatypes.JSON(ev.Payload),
		}

		switch ev.Type {
		case "PushEvent":
			var p pushPayload
			if err := sonic.Unmarshal(ev.Payload, &p); err != nil || len(p.Commits) == 0 {
				continue
			}
			for _, cm := range p.Commits {
				a := base
				a.Type = model.TypeCommit
				a.ExternalID = cm.SHA
				a.Title = firstLine(cm.Message)
				a.URL = strPtr(fmt.Sprintf("https://github.com/%s/commit/%s", repo, cm.SHA))
				a.Payload = nil
				out = append(out, a)
			}
			continue

		case "PullRequestEvent", "IssuesEvent", "PullRequestReviewEvent":
			var p itemPayload
			if err := sonic.Unmarshal(ev.Payload, &p); err != nil {
				log.Printf("[WARN] github event %s (%s): payload decode: %v", ev.ID, ev.Type, err)
			}
			switch {
			case ev.Type == "PullRequestReviewEvent" && p.PullRequest != nil:
				base.Type = model.TypeReview
				base.Title = joinAction(reviewState(p), p.PullRequest.Title)
				base.URL = firstURL(p.Review, p.PullRequest.HTMLURL)
			case ev.Type == "PullRequestEvent" && p.PullRequest != nil:
				base.Type = model.TypePullRequest
				base.Title = joinAction(p.Action, p.PullRequest.Title)
				base.URL = strPtr(p.PullRequest.HTMLURL)
			case ev.Type == "IssuesEvent" && p.Issue != nil:
				base.Type = model.TypeIssue
				base.Title = joinAction(p.Action, p.Issue.Title)
				base.URL = strPtr(p.Issue.HTMLURL)
			default:
				base.Type = model.TypeOther
				base.Title = ev.Type
			}

		default:
			base.Type = model.TypeOther
			base.Title = strings.TrimSuffix(ev.Type, "Event") + " on " + repo
			base.URL = strPtr("https://github.com/" + repo)
		}
		if base.ExternalID == "" {
			continue
		}
		out = append(out, base)
	}
	return out
}

// Sync pulls the public events of login and stores new ones. Returns how many rows were inserted.
func Sync(ctx context.Context, db *gorm.DB, client *Client, userID uuid.UUID, login string) (int64, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return 0, ErrNoGithubUsername
	}
	events, err := client.PublicEvents(ctx, login, 100)
	if err != nil {
		return 0, err
	}
	rows := MapEvents(userID, events)
	if len(rows) == 0 {
		return 0, nil
	}
	for i := range rows {
		rows[i].ID = uuid.New()
	}

	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "github_activity_user_id"}, {Name: "github_activity_external_id"}},
			DoNothing: true,
		}).
		CreateInBatches(&rows, 100)
	return res.RowsAffected, res.Error
}

type Summary struct {
	Total          int            `json:"total"`
	ByType         map[string]int `json:"by_type"`
	Repositories   int            `json:"repositories"`
	TopRepository  string         `json:"top_repository,omitempty"`
	LastActivityAt *time.Time     `json:"last_activity_at"`
}

// Summarize counts activities per type and per repository.
func Summarize(rows []model.GithubActivityModel) Summary {
	out := Summary{ByType: make(map[string]int, len(model.ActivityTypes))}
	for _, t := range model.ActivityTypes {
		out.ByType[t] = 0
	}
	perRepo := map[string]int{}
	for i, r := range rows {
		out.Total++
		out.ByType[r.Type]++
		perRepo[r.Repository]++
		if out.LastActivityAt == nil || r.OccurredAt.After(*out.LastActivityAt) {
			out.LastActivityAt = &rows[i].OccurredAt
		}
	}
	out.Repositories = len(perRepo)

	repos := make([]string, 0, len(perRepo))
	for r := range perRepo {
		repos = append(repos, r)
	}
	sort.Slice(repos, func(i, j int) bool {
		if perRepo[repos[i]] != perRepo[repos[j]] {
			return perRepo[repos[i]] > perRepo[repos[j]]
		}
		return repos[i] < repos[j]
	})
	if len(repos) > 0 {
		out.TopRepository = repos[0]
	}
	return out
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return truncateRunes(s, maxTitleBytes)
}

const maxTitleBytes = 200

// truncateRunes cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func joinAction(action, title string) string {
	if action == "" {
		return title
	}
	return action + ": " + title
}

func reviewState(p itemPayload) string {
	if p.Review == nil {
		return "reviewed"
	}
	return strings.ToLower(p.Review.State)
}

func firstURL(review *ghItem, fallback string) *string {
	if review != nil && review.HTMLURL != "" {
		return &review.HTMLURL
	}
	return strPtr(fallback)
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
