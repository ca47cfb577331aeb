package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Vaidiasri/linear-backend/internal/domain"
	"github.com/Vaidiasri/linear-backend/internal/realtime"
)

// publishedEvent records one Publish call.
type publishedEvent struct {
	teamID uuid.UUID
	event  realtime.Event
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(teamID uuid.UUID, event realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{teamID: teamID, event: event})
}

func (p *recordingPublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

// --- in-memory repositories ---

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]domain.User, error) {
	var out []domain.User
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) add(user *domain.User) *domain.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.ID] = &copied
	return user
}

type fakeTeamRepo struct {
	teams map[uuid.UUID]*domain.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[uuid.UUID]*domain.Team)}
}

func (r *fakeTeamRepo) Create(_ context.Context, team *domain.Team) error {
	team.ID = uuid.New()
	team.CreatedAt = time.Now()
	copied := *team
	r.teams[team.ID] = &copied
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (r *fakeTeamRepo) List(_ context.Context, _, _ int) ([]domain.Team, error) {
	var out []domain.Team
	for _, team := range r.teams {
		out = append(out, *team)
	}
	return out, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *domain.Team) error {
	if _, ok := r.teams[team.ID]; !ok {
		return domain.ErrTeamNotFound
	}
	copied := *team
	r.teams[team.ID] = &copied
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.teams[id]; !ok {
		return domain.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

func (r *fakeTeamRepo) add() uuid.UUID {
	id := uuid.New()
	r.teams[id] = &domain.Team{ID: id, Name: "Team"}
	return id
}

type fakeProjectRepo struct {
	projects map[uuid.UUID]*domain.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[uuid.UUID]*domain.Project)}
}

func (r *fakeProjectRepo) Create(_ context.Context, project *domain.Project) error {
	project.ID = uuid.New()
	project.CreatedAt = time.Now()
	copied := *project
	r.projects[project.ID] = &copied
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	copied := *project
	return &copied, nil
}

func (r *fakeProjectRepo) List(_ context.Context, _, _ int) ([]domain.Project, error) {
	var out []domain.Project
	for _, project := range r.projects {
		out = append(out, *project)
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *domain.Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	copied := *project
	r.projects[project.ID] = &copied
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

type fakeIssueRepo struct {
	issues map[uuid.UUID]*domain.Issue
}

func newFakeIssueRepo() *fakeIssueRepo {
	return &fakeIssueRepo{issues: make(map[uuid.UUID]*domain.Issue)}
}

func (r *fakeIssueRepo) Create(_ context.Context, issue *domain.Issue) error {
	issue.ID = uuid.New()
	issue.CreatedAt = time.Now()
	copied := *issue
	r.issues[issue.ID] = &copied
	return nil
}

func (r *fakeIssueRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Issue, error) {
	issue, ok := r.issues[id]
	if !ok {
		return nil, domain.ErrIssueNotFound
	}
	copied := *issue
	return &copied, nil
}

func (r *fakeIssueRepo) matching(creatorID uuid.UUID, filters domain.IssueFilters) []domain.Issue {
	var out []domain.Issue
	for _, issue := range r.issues {
		if issue.CreatorID != creatorID {
			continue
		}
		if filters.Status != "" && issue.Status != filters.Status {
			continue
		}
		out = append(out, *issue)
	}
	return out
}

func (r *fakeIssueRepo) List(_ context.Context, creatorID uuid.UUID, filters domain.IssueFilters, _, _ int) ([]domain.Issue, error) {
	return r.matching(creatorID, filters), nil
}

func (r *fakeIssueRepo) ListAll(_ context.Context, creatorID uuid.UUID, filters domain.IssueFilters) ([]domain.Issue, error) {
	return r.matching(creatorID, filters), nil
}

func (r *fakeIssueRepo) Search(_ context.Context, query string, _, _ int) ([]domain.Issue, error) {
	var out []domain.Issue
	for _, issue := range r.issues {
		if strings.Contains(strings.ToLower(issue.Title), strings.ToLower(query)) {
			out = append(out, *issue)
		}
	}
	return out, nil
}

func (r *fakeIssueRepo) Stats(_ context.Context, creatorID uuid.UUID) (*domain.IssueStats, error) {
	stats := &domain.IssueStats{ByStatus: make(map[string]int), ByPriority: make(map[int]int)}
	for _, issue := range r.issues {
		if issue.CreatorID != creatorID {
			continue
		}
		stats.Total++
		stats.ByStatus[issue.Status]++
		stats.ByPriority[issue.Priority]++
	}
	return stats, nil
}

func (r *fakeIssueRepo) Update(_ context.Context, issue *domain.Issue) error {
	if _, ok := r.issues[issue.ID]; !ok {
		return domain.ErrIssueNotFound
	}
	copied := *issue
	r.issues[issue.ID] = &copied
	return nil
}

func (r *fakeIssueRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.issues[id]; !ok {
		return domain.ErrIssueNotFound
	}
	delete(r.issues, id)
	return nil
}

type fakeCommentRepo struct {
	comments map[uuid.UUID]*domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uuid.UUID]*domain.Comment)}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	comment.ID = uuid.New()
	comment.CreatedAt = time.Now()
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	copied := *comment
	return &copied, nil
}

func (r *fakeCommentRepo) ListByIssue(_ context.Context, issueID uuid.UUID, _, _ int) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, comment := range r.comments {
		if comment.IssueID == issueID {
			out = append(out, *comment)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

type fakeActivityRepo struct {
	activities []domain.Activity
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (r *fakeActivityRepo) Create(_ context.Context, activity *domain.Activity) error {
	activity.ID = uuid.New()
	activity.CreatedAt = time.Now()
	r.activities = append(r.activities, *activity)
	return nil
}

func (r *fakeActivityRepo) ListByIssue(_ context.Context, issueID uuid.UUID, _, _ int) ([]domain.Activity, error) {
	var out []domain.Activity
	for _, activity := range r.activities {
		if activity.IssueID == issueID {
			out = append(out, activity)
		}
	}
	return out, nil
}
