package application

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/2phishy/phishy-backend/internal/domain/entity"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

type fakePathRepo struct {
	seq   int
	paths map[string]*entity.LearningPath
}

func newFakePathRepo() *fakePathRepo {
	return &fakePathRepo{paths: map[string]*entity.LearningPath{}}
}

func (r *fakePathRepo) Create(p *entity.LearningPath) error {
	r.seq++
	p.ID = fmt.Sprintf("path-%d", r.seq)
	p.CreatedAt = fixedNow()
	p.UpdatedAt = fixedNow()
	cp := *p
	r.paths[p.ID] = &cp
	return nil
}

func (r *fakePathRepo) GetByID(id string) (*entity.LearningPath, error) {
	p, ok := r.paths[id]
	if !ok {
		return nil, entity.ErrPathNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePathRepo) FindByUserTopicSubtopic(userID string, topic entity.Topic, subtopic string) (*entity.LearningPath, error) {
	for _, p := range r.paths {
		if p.UserID == userID && p.Topic == topic && p.Subtopic == subtopic {
			cp := *p
			return &cp, nil
		}
	}
	return nil, entity.ErrPathNotFound
}

func (r *fakePathRepo) Update(p *entity.LearningPath) error {
	if _, ok := r.paths[p.ID]; !ok {
		return entity.ErrPathNotFound
	}
	cp := *p
	r.paths[p.ID] = &cp
	return nil
}

func (r *fakePathRepo) ListByUser(userID string) ([]*entity.LearningPath, error) {
	var out []*entity.LearningPath
	for _, p := range r.paths {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeAssessmentRepo struct {
	seq      int
	sessions map[string]*entity.AssessmentSession // by SessionID
	results  []*entity.AssessmentResult
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{sessions: map[string]*entity.AssessmentSession{}}
}

func (r *fakeAssessmentRepo) CreateSession(s *entity.AssessmentSession) error {
	r.seq++
	s.ID = fmt.Sprintf("row-%d", r.seq)
	s.CreatedAt = fixedNow()
	s.UpdatedAt = fixedNow()
	cp := *s
	r.sessions[s.SessionID] = &cp
	return nil
}

func (r *fakeAssessmentRepo) GetSession(sessionID string) (*entity.AssessmentSession, error) {
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeAssessmentRepo) UpdateSession(s *entity.AssessmentSession) error {
	if _, ok := r.sessions[s.SessionID]; !ok {
		return entity.ErrSessionNotFound
	}
	cp := *s
	r.sessions[s.SessionID] = &cp
	return nil
}

func (r *fakeAssessmentRepo) ListSessionsByUser(userID string) ([]*entity.AssessmentSession, error) {
	var out []*entity.AssessmentSession
	for _, s := range r.sessions {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAssessmentRepo) CreateResult(res *entity.AssessmentResult) error {
	r.seq++
	res.ID = fmt.Sprintf("res-%d", r.seq)
	res.CreatedAt = fixedNow()
	cp := *res
	r.results = append(r.results, &cp)
	return nil
}

func (r *fakeAssessmentRepo) ListResultsByUser(userID string) ([]*entity.AssessmentResult, error) {
	var out []*entity.AssessmentResult
	for _, res := range r.results {
		sess, ok := r.sessions[res.SessionID]
		if ok && sess.UserID == userID {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeGameRepo struct {
	seq      int
	progress map[string]*entity.GameProgress // by UserID
	scores   []*entity.GameScore
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{progress: map[string]*entity.GameProgress{}}
}

func (r *fakeGameRepo) GetProgress(userID string) (*entity.GameProgress, error) {
	p, ok := r.progress[userID]
	if !ok {
		return nil, entity.ErrProgressNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeGameRepo) CreateProgress(p *entity.GameProgress) error {
	r.seq++
	p.ID = fmt.Sprintf("prog-%d", r.seq)
	p.CreatedAt = fixedNow()
	p.UpdatedAt = fixedNow()
	cp := *p
	r.progress[p.UserID] = &cp
	return nil
}

func (r *fakeGameRepo) UpdateProgress(p *entity.GameProgress) error {
	if _, ok := r.progress[p.UserID]; !ok {
		return entity.ErrProgressNotFound
	}
	cp := *p
	r.progress[p.UserID] = &cp
	return nil
}

func (r *fakeGameRepo) CreateScore(s *entity.GameScore) error {
	r.seq++
	s.ID = fmt.Sprintf("score-%d", r.seq)
	s.CreatedAt = fixedNow()
	cp := *s
	r.scores = append(r.scores, &cp)
	return nil
}

func (r *fakeGameRepo) ListScoresByUser(userID string) ([]*entity.GameScore, error) {
	var out []*entity.GameScore
	for _, s := range r.scores {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func (r *fakeGameRepo) TopScores(limit int) ([]*entity.GameScore, error) {
	out := make([]*entity.GameScore, 0, len(r.scores))
	for _, s := range r.scores {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeUserRepo struct {
	seq   int
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	for _, ex := range r.users {
		if ex.Username == u.Username {
			return entity.ErrDuplicateUsername
		}
		if ex.Email == u.Email {
			return entity.ErrDuplicateEmail
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = fixedNow()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return entity.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(id string) error {
	u, ok := r.users[id]
	if !ok {
		return entity.ErrUserNotFound
	}
	t := fixedNow()
	u.LastLogin = &t
	return nil
}

func (r *fakeUserRepo) Delete(id string) (bool, error) {
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func (r *fakeUserRepo) List() ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) ListByRole(role entity.Role) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) ListByStatus(status entity.AccountStatus) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Status == status {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) Stats() (*entity.UserStats, error) {
	s := &entity.UserStats{}
	for _, u := range r.users {
		s.TotalUsers++
		switch u.Status {
		case entity.StatusActive:
			s.ActiveUsers++
		case entity.StatusInactive:
			s.InactiveUsers++
		case entity.StatusSuspended:
			s.SuspendedUsers++
		}
		switch u.Role {
		case entity.RoleStudent:
			s.Students++
		case entity.RoleAdmin:
			s.Admins++
		case entity.RoleSuperAdmin:
			s.SuperAdmins++
		}
	}
	return s, nil
}
