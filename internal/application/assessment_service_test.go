package application

import (
	"errors"
	"testing"
	"time"

	"github.com/2phishy/phishy-backend/internal/domain/entity"
)

func newAssessmentService() (*AssessmentService, *fakeAssessmentRepo) {
	repo := newFakeAssessmentRepo()
	svc := NewAssessmentService(repo, testLogger())
	svc.now = fixedNow
	return svc, repo
}

func TestStartSessionAssignsSessionID(t *testing.T) {
	svc, _ := newAssessmentService()

	a, err := svc.StartSession("u1", "Malware", fixedNow())
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	b, err := svc.StartSession("u1", "Malware", fixedNow())
	if err != nil {
		t.Fatalf("second StartSession: %v", err)
	}
	if a.SessionID == "" || a.SessionID == b.SessionID {
		t.Errorf("session ids must be unique and non-empty: %q vs %q", a.SessionID, b.SessionID)
	}
	if a.Completed {
		t.Error("new session must start open")
	}
}

func TestSubmitResultOwnership(t *testing.T) {
	svc, _ := newAssessmentService()

	sess, err := svc.StartSession("u1", "Malware", fixedNow())
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	in := SubmitResultInput{QuestionID: "q1", UserAnswer: "a", CorrectAnswer: "a", IsCorrect: true, Timestamp: fixedNow()}
	if _, err := svc.SubmitResult("u1", sess.SessionID, in); err != nil {
		t.Fatalf("SubmitResult: %v", err)
	}
	if _, err := svc.SubmitResult("u2", sess.SessionID, in); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Errorf("foreign session: got %v, want ErrSessionNotFound", err)
	}
	if _, err := svc.SubmitResult("u1", "nothere", in); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Errorf("missing session: got %v, want ErrSessionNotFound", err)
	}
}

func TestSubmitResultToClosedSessionIsAccepted(t *testing.T) {
	svc, _ := newAssessmentService()

	sess, err := svc.StartSession("u1", "Malware", fixedNow())
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := svc.EndSession("u1", sess.SessionID, fixedNow().Add(time.Minute), 5, 10); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	in := SubmitResultInput{QuestionID: "late", IsCorrect: true, Timestamp: fixedNow()}
	if _, err := svc.SubmitResult("u1", sess.SessionID, in); err != nil {
		t.Errorf("late submit: %v", err)
	}
}

func TestEndSessionFreezesAggregates(t *testing.T) {
	svc, repo := newAssessmentService()

	sess, err := svc.StartSession("u1", "Malware", fixedNow())
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	end := fixedNow().Add(10 * time.Minute)
	closed, err := svc.EndSession("u1", sess.SessionID, end, 8, 10)
	if err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	if !closed.Completed || closed.TotalScore != 8 || closed.TotalQuestions != 10 {
		t.Errorf("session not closed correctly: %+v", closed)
	}
	if closed.EndTime == nil || !closed.EndTime.Equal(end) {
		t.Errorf("end time = %v, want %v", closed.EndTime, end)
	}

	stored, _ := repo.GetSession(sess.SessionID)
	if !stored.Completed {
		t.Error("closed state not persisted")
	}

	if _, err := svc.EndSession("u2", sess.SessionID, end, 0, 0); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Errorf("foreign end: got %v, want ErrSessionNotFound", err)
	}
}

func TestStatsZeroSessions(t *testing.T) {
	svc, _ := newAssessmentService()
	actor := &entity.User{ID: "u1", Role: entity.RoleStudent}

	stats, err := svc.Stats(actor, "u1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalSessions != 0 || stats.AverageScore != 0 || stats.TotalQuestions != 0 || stats.CorrectAnswers != 0 {
		t.Errorf("zero-session stats not all zero: %+v", stats)
	}
	if stats.TopicsComplete == nil || len(stats.TopicsComplete) != 0 {
		t.Errorf("topics must be an empty slice, got %#v", stats.TopicsComplete)
	}
}

func TestStatsAveragesCompletedSessionsOnly(t *testing.T) {
	svc, _ := newAssessmentService()
	actor := &entity.User{ID: "u1", Role: entity.RoleStudent}

	s1, _ := svc.StartSession("u1", "Malware", fixedNow())
	s2, _ := svc.StartSession("u1", "Social Engineering", fixedNow())
	s3, _ := svc.StartSession("u1", "Malware", fixedNow())

	if _, err := svc.EndSession("u1", s1.SessionID, fixedNow(), 8, 10); err != nil {
		t.Fatalf("end s1: %v", err)
	}
	if _, err := svc.EndSession("u1", s2.SessionID, fixedNow(), 6, 10); err != nil {
		t.Fatalf("end s2: %v", err)
	}

	// One correct answer on the still-open session still counts.
	if _, err := svc.SubmitResult("u1", s3.SessionID, SubmitResultInput{QuestionID: "q1", IsCorrect: true, Timestamp: fixedNow()}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.SubmitResult("u1", s1.SessionID, SubmitResultInput{QuestionID: "q2", IsCorrect: true, Timestamp: fixedNow()}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.SubmitResult("u1", s1.SessionID, SubmitResultInput{QuestionID: "q3", IsCorrect: false, Timestamp: fixedNow()}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	stats, err := svc.Stats(actor, "u1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalSessions != 2 {
		t.Errorf("total sessions = %d, want 2 (open session excluded)", stats.TotalSessions)
	}
	if stats.AverageScore != 7.00 {
		t.Errorf("average = %v, want 7.00", stats.AverageScore)
	}
	if stats.TotalQuestions != 20 {
		t.Errorf("total questions = %d, want 20", stats.TotalQuestions)
	}
	if stats.CorrectAnswers != 2 {
		t.Errorf("correct answers = %d, want 2 (counted across all sessions)", stats.CorrectAnswers)
	}
	if len(stats.TopicsComplete) != 2 {
		t.Errorf("topics completed = %v, want 2 distinct", stats.TopicsComplete)
	}
}

func TestHistoryAndStatsArePolicyGated(t *testing.T) {
	svc, _ := newAssessmentService()
	other := &entity.User{ID: "u2", Role: entity.RoleStudent}
	admin := &entity.User{ID: "a1", Role: entity.RoleAdmin}

	if _, err := svc.History(other, "u1"); !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("history cross-user by student: got %v, want ErrForbidden", err)
	}
	if _, err := svc.Stats(other, "u1"); !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("stats cross-user by student: got %v, want ErrForbidden", err)
	}
	if _, err := svc.History(admin, "u1"); err != nil {
		t.Errorf("history by admin: %v", err)
	}
}
