package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
	"github.com/digichlist/digichlist-bot/internal/biz/repo"
)

// ErrInvalidSubmission is returned for any malformed defect submission text.
// All malformed shapes get the same uniform rejection.
var ErrInvalidSubmission = errors.New("invalid defect submission format")

// DefectUsecase handles defect business logic
type DefectUsecase struct {
	defects repo.DefectRepo
	now     func() time.Time
}

// NewDefectUsecase creates a new defect usecase
func NewDefectUsecase(defects repo.DefectRepo) *DefectUsecase {
	return &DefectUsecase{
		defects: defects,
		now:     time.Now,
	}
}

// ParseSubmission parses "/newdefect <room> <description...>" free text.
// The room must be a positive integer and at least one description token must
// follow; the description is re-joined with single spaces.
func ParseSubmission(text string) (int, string, error) {
	fields := strings.Fields(text)
	if len(fields) < 3 {
		return 0, "", ErrInvalidSubmission
	}
	room, err := strconv.Atoi(fields[1])
	if err != nil || room <= 0 {
		return 0, "", ErrInvalidSubmission
	}
	return room, strings.Join(fields[2:], " "), nil
}

// Submit parses the submission text and persists a new opened defect.
// Nothing is persisted for malformed input.
func (uc *DefectUsecase) Submit(ctx context.Context, chatID int64, text string) (*domain.Defect, error) {
	room, description, err := ParseSubmission(text)
	if err != nil {
		return nil, err
	}

	defect := &domain.Defect{
		RoomNumber:  room,
		Description: description,
		CreatedBy:   chatID,
		CreatedAt:   uc.now(),
		Status:      domain.StatusOpened,
	}
	if err := uc.defects.Add(ctx, defect); err != nil {
		return nil, fmt.Errorf("add defect: %w", err)
	}
	return defect, nil
}

// ListAssigned lists the chat's open assigned defects
func (uc *DefectUsecase) ListAssigned(ctx context.Context, chatID int64) ([]*domain.Defect, error) {
	return uc.defects.ListOpenAssigned(ctx, chatID)
}

// GetByID gets a defect by id, nil when absent
func (uc *DefectUsecase) GetByID(ctx context.Context, id int64) (*domain.Defect, error) {
	return uc.defects.GetByID(ctx, id)
}

// SetStatus applies a status to the defect and persists it
func (uc *DefectUsecase) SetStatus(ctx context.Context, defect *domain.Defect, status domain.DefectStatus) error {
	if err := defect.ApplyStatus(status, uc.now()); err != nil {
		return err
	}
	if err := uc.defects.Update(ctx, defect); err != nil {
		return fmt.Errorf("update defect: %w", err)
	}
	return nil
}
