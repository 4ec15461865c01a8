package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"career-sync/internal/domain/career"
)

func TestRecommendation_NotReady(t *testing.T) {
	uc := NewRecommendationUsecase(NewSnapshotStore())
	if _, err := uc.AnalyzeProfile(context.Background(), career.UserProfile{Skills: []string{"python"}}); !errors.Is(err, ErrModelNotReady) {
		t.Fatalf("expected ErrModelNotReady, got %v", err)
	}
}

func TestRecommendation_TrimsBlankSkills(t *testing.T) {
	store := NewSnapshotStore()
	store.Swap(buildSnapshot(t))
	uc := NewRecommendationUsecase(store)

	a, err := uc.AnalyzeProfile(context.Background(), career.UserProfile{Skills: []string{" python ", "", "  ", "sql"}})
	if err != nil {
		t.Fatalf("AnalyzeProfile: %v", err)
	}
	b, err := uc.AnalyzeProfile(context.Background(), career.UserProfile{Skills: []string{"python", "sql"}})
	if err != nil {
		t.Fatalf("AnalyzeProfile: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("blank skills changed the answer:\n%+v\n%+v", a, b)
	}
}

func TestRecommendation_CanceledContext(t *testing.T) {
	store := NewSnapshotStore()
	store.Swap(buildSnapshot(t))
	uc := NewRecommendationUsecase(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := uc.AnalyzeProfile(ctx, career.UserProfile{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRecommendation_TrendMissing(t *testing.T) {
	corpus := testCorpus()
	corpus.Trends = nil
	snap, err := buildFrom(corpus)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	store := NewSnapshotStore()
	store.Swap(snap)

	_, err = NewRecommendationUsecase(store).AnalyzeProfile(context.Background(), career.UserProfile{Skills: []string{"python"}})
	if !errors.Is(err, ErrTrendNotFound) {
		t.Fatalf("expected ErrTrendNotFound, got %v", err)
	}
}
