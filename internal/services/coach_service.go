package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/terraincognita07/quitpath/internal/backend"
	"github.com/terraincognita07/quitpath/internal/logger"
	"github.com/terraincognita07/quitpath/internal/models"
	"golang.org/x/sync/errgroup"
)

var (
	ErrMemberNotAssigned         = errors.New("member is not assigned to this coach")
	ErrMemberProgressUnavailable = errors.New("member progress could not be loaded")
)

type CoachBackend interface {
	AssignedMembers(ctx context.Context, token string) ([]models.Member, error)
	MemberProgress(ctx context.Context, token string, memberID uint) (models.MemberProgress, error)
	UserByID(ctx context.Context, token string, userID uint) (models.User, error)
}

type CoachService struct {
	backend CoachBackend
}

func NewCoachService(backend CoachBackend) *CoachService {
	return &CoachService{backend: backend}
}

type MemberProgressView struct {
	MemberID    uint
	DisplayName string
	Progress    models.MemberProgress
}

func (service *CoachService) ListMembers(ctx context.Context, token string) ([]models.Member, error) {
	members, err := service.backend.AssignedMembers(ctx, token)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []models.Member{}
	}
	return members, nil
}

// LoadMemberProgress checks the member against the coach's assigned set
// before requesting any of their data. A 403 from the backend and an
// unassigned member both map to ErrMemberNotAssigned.
func (service *CoachService) LoadMemberProgress(ctx context.Context, token string, memberID uint) (MemberProgressView, error) {
	members, err := service.backend.AssignedMembers(ctx, token)
	if err != nil {
		return MemberProgressView{}, fmt.Errorf("%w: %w", ErrMemberProgressUnavailable, err)
	}
	if !memberAssigned(members, memberID) {
		return MemberProgressView{}, ErrMemberNotAssigned
	}

	view := MemberProgressView{MemberID: memberID, DisplayName: strconv.FormatUint(uint64(memberID), 10)}
	var progressErr error
	var group errgroup.Group

	group.Go(func() error {
		progress, err := service.backend.MemberProgress(ctx, token, memberID)
		if err != nil {
			progressErr = err
			return nil
		}
		if progress.History == nil {
			progress.History = []models.DailyLogEntry{}
		}
		view.Progress = progress
		return nil
	})
	group.Go(func() error {
		user, err := service.backend.UserByID(ctx, token, memberID)
		if err != nil {
			logger.Debug("coach: member name lookup failed", "member", memberID, "err", err)
			return nil
		}
		if name := user.DisplayName(); name != "" {
			view.DisplayName = name
		}
		return nil
	})
	_ = group.Wait()

	if progressErr != nil {
		if backend.IsForbidden(progressErr) {
			return MemberProgressView{}, ErrMemberNotAssigned
		}
		return MemberProgressView{}, fmt.Errorf("%w: %w", ErrMemberProgressUnavailable, progressErr)
	}
	return view, nil
}

func memberAssigned(members []models.Member, memberID uint) bool {
	for _, member := range members {
		if member.ID == memberID {
			return true
		}
	}
	return false
}
