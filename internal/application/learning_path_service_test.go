package application

import (
	"errors"
	"testing"

	"github.com/2phishy/phishy-backend/internal/domain/entity"
)

func newPathService(upsert bool) (*LearningPathService, *fakePathRepo) {
	repo := newFakePathRepo()
	svc := NewLearningPathService(repo, testLogger(), upsert)
	svc.now = fixedNow
	return svc, repo
}

func TestLearningPathCreateDerivesPriority(t *testing.T) {
	svc, _ := newPathService(false)

	p, err := svc.Create("u1", CreateLearningPathInput{
		Topic:    entity.TopicPasswordSecurity,
		Subtopic: "password reuse",
		Score:    0.3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Priority != entity.PriorityHigh {
		t.Errorf("priority = %q, want high", p.Priority)
	}
	if p.Completed != entity.CompletionNotStarted {
		t.Errorf("completed = %d, want not-started", p.Completed)
	}
	if p.ID == "" {
		t.Error("expected assigned id")
	}
}

func TestLearningPathCreateRejectsBadInput(t *testing.T) {
	svc, _ := newPathService(false)

	if _, err := svc.Create("u1", CreateLearningPathInput{Topic: "Knot Tying", Subtopic: "x", Score: 0.5}); !errors.Is(err, entity.ErrInvalidTopic) {
		t.Errorf("invalid topic: got %v, want ErrInvalidTopic", err)
	}
	if _, err := svc.Create("u1", CreateLearningPathInput{Topic: entity.TopicMalware, Subtopic: "x", Score: 1.2}); !errors.Is(err, entity.ErrScoreOutOfRange) {
		t.Errorf("score 1.2: got %v, want ErrScoreOutOfRange", err)
	}
}

func TestLearningPathDuplicateTuplesAppendByDefault(t *testing.T) {
	svc, repo := newPathService(false)

	in := CreateLearningPathInput{Topic: entity.TopicMalware, Subtopic: "ransomware", Score: 0.2}
	if _, err := svc.Create("u1", in); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create("u1", in); err != nil {
		t.Fatalf("second create: %v", err)
	}
	paths, _ := repo.ListByUser("u1")
	if len(paths) != 2 {
		t.Errorf("got %d rows, want 2", len(paths))
	}
}

func TestLearningPathUpsertModeRescoresInPlace(t *testing.T) {
	svc, repo := newPathService(true)

	in := CreateLearningPathInput{Topic: entity.TopicMalware, Subtopic: "ransomware", Score: 0.2}
	first, err := svc.Create("u1", in)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	in.Score = 0.9
	second, err := svc.Create("u1", in)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert created a new row: %s vs %s", second.ID, first.ID)
	}
	if second.Priority != entity.PriorityLow {
		t.Errorf("priority = %q, want low", second.Priority)
	}
	paths, _ := repo.ListByUser("u1")
	if len(paths) != 1 {
		t.Errorf("got %d rows, want 1", len(paths))
	}
}

func TestLearningPathUpdateScoreRoundTrip(t *testing.T) {
	svc, _ := newPathService(false)

	p, err := svc.Create("u1", CreateLearningPathInput{Topic: entity.TopicSocialEngineering, Subtopic: "pretexting", Score: 0.3})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Priority != entity.PriorityHigh {
		t.Fatalf("initial priority = %q, want high", p.Priority)
	}

	updated, err := svc.UpdateScore(p.ID, 0.9)
	if err != nil {
		t.Fatalf("UpdateScore: %v", err)
	}
	if updated.Priority != entity.PriorityLow {
		t.Errorf("priority after rescore = %q, want low", updated.Priority)
	}
	if updated.Score != 0.9 {
		t.Errorf("score = %v, want 0.9", updated.Score)
	}
}

func TestLearningPathUpdateScoreValidatesFirst(t *testing.T) {
	svc, _ := newPathService(false)
	if _, err := svc.UpdateScore("missing", 2); !errors.Is(err, entity.ErrScoreOutOfRange) {
		t.Errorf("got %v, want ErrScoreOutOfRange before lookup", err)
	}
	if _, err := svc.UpdateScore("missing", 0.5); !errors.Is(err, entity.ErrPathNotFound) {
		t.Errorf("got %v, want ErrPathNotFound", err)
	}
}

func TestLearningPathMarkCompletedIsIdempotent(t *testing.T) {
	svc, _ := newPathService(false)

	p, err := svc.Create("u1", CreateLearningPathInput{Topic: entity.TopicSafeBrowsing, Subtopic: "https", Score: 0.7})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for i := 0; i < 2; i++ {
		done, err := svc.MarkCompleted(p.ID)
		if err != nil {
			t.Fatalf("MarkCompleted #%d: %v", i+1, err)
		}
		if done.Completed != entity.CompletionCompleted {
			t.Errorf("completed = %d, want completed", done.Completed)
		}
		if done.Priority != entity.PriorityModerate || done.Score != 0.7 {
			t.Errorf("completion must not touch score or priority: %+v", done)
		}
	}
}

func TestLearningPathListForUserPolicy(t *testing.T) {
	svc, _ := newPathService(false)
	if _, err := svc.Create("u1", CreateLearningPathInput{Topic: entity.TopicSafeBrowsing, Subtopic: "urls", Score: 0.5}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	student := &entity.User{ID: "u1", Role: entity.RoleStudent}
	other := &entity.User{ID: "u2", Role: entity.RoleStudent}
	admin := &entity.User{ID: "a1", Role: entity.RoleAdmin}

	if paths, err := svc.ListForUser(student, "u1"); err != nil || len(paths) != 1 {
		t.Errorf("own list: %v, %d rows", err, len(paths))
	}
	if _, err := svc.ListForUser(other, "u1"); !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("cross-user list by student: got %v, want ErrForbidden", err)
	}
	if _, err := svc.ListForUser(admin, "u1"); err != nil {
		t.Errorf("cross-user list by admin: %v", err)
	}
}
