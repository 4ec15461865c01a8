package usecase

import (
	"context"
	"errors"
	"strings"

	"career-sync/internal/domain/career"
	"career-sync/internal/domain/skillgap"
	"career-sync/internal/domain/trend"
)

var (
	ErrInternal       = errors.New("internal error")
	ErrInvalidInput   = errors.New("invalid input")
	ErrModelNotReady  = errors.New("model not ready")
	ErrCareerNotFound = skillgap.ErrCareerNotFound
	ErrTrendNotFound  = trend.ErrTrendNotFound
)

type RecommendationUsecase interface {
	AnalyzeProfile(ctx context.Context, profile career.UserProfile) (career.Recommendation, error)
}

type Recommendation struct {
	store *SnapshotStore
}

func NewRecommendationUsecase(store *SnapshotStore) *Recommendation {
	return &Recommendation{store: store}
}

func (u *Recommendation) AnalyzeProfile(ctx context.Context, profile career.UserProfile) (career.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return career.Recommendation{}, err
	}

	snap := u.store.Load()
	if snap == nil {
		return career.Recommendation{}, ErrModelNotReady
	}

	skills := make([]string, 0, len(profile.Skills))
	for _, s := range profile.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	profile.Skills = skills

	return snap.Analyze(profile)
}
