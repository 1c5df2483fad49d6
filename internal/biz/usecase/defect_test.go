package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
)

// Mock implementations

type mockDefectRepo struct {
	defects map[int64]*domain.Defect
	nextID  int64
}

func newMockDefectRepo() *mockDefectRepo {
	return &mockDefectRepo{defects: make(map[int64]*domain.Defect)}
}

func (m *mockDefectRepo) GetByID(ctx context.Context, id int64) (*domain.Defect, error) {
	return m.defects[id], nil
}

func (m *mockDefectRepo) ListOpenAssigned(ctx context.Context, chatID int64) ([]*domain.Defect, error) {
	var result []*domain.Defect
	for _, d := range m.defects {
		if d.IsAssignedTo(chatID) && !d.IsClosed() {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *mockDefectRepo) Add(ctx context.Context, defect *domain.Defect) error {
	m.nextID++
	defect.ID = m.nextID
	m.defects[defect.ID] = defect
	return nil
}

func (m *mockDefectRepo) Update(ctx context.Context, defect *domain.Defect) error {
	m.defects[defect.ID] = defect
	return nil
}

// Tests

func TestParseSubmission(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		room    int
		desc    string
		wantErr bool
	}{
		{"valid", "/newdefect 215 Broken lamp", 215, "Broken lamp", false},
		{"extra whitespace", "/newdefect   215   Broken   lamp ", 215, "Broken lamp", false},
		{"missing description", "/newdefect 215", 0, "", true},
		{"command only", "/newdefect", 0, "", true},
		{"room not a number", "/newdefect abc Broken lamp", 0, "", true},
		{"room zero", "/newdefect 0 Broken lamp", 0, "", true},
		{"room negative", "/newdefect -3 Broken lamp", 0, "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			room, desc, err := ParseSubmission(tc.text)
			if tc.wantErr {
				if err != ErrInvalidSubmission {
					t.Errorf("Expected ErrInvalidSubmission, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if room != tc.room {
				t.Errorf("Expected room %d, got %d", tc.room, room)
			}
			if desc != tc.desc {
				t.Errorf("Expected description %q, got %q", tc.desc, desc)
			}
		})
	}
}

func TestSubmit(t *testing.T) {
	defects := newMockDefectRepo()
	uc := NewDefectUsecase(defects)

	defect, err := uc.Submit(context.Background(), 100, "/newdefect 215 Broken lamp")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if defect.ID == 0 {
		t.Error("Expected a generated defect id")
	}
	if defect.Status != domain.StatusOpened {
		t.Errorf("Expected status %v, got %v", domain.StatusOpened, defect.Status)
	}
	if defect.CreatedBy != 100 {
		t.Errorf("Expected creator chat 100, got %d", defect.CreatedBy)
	}
}

func TestSubmit_Malformed_NothingPersisted(t *testing.T) {
	defects := newMockDefectRepo()
	uc := NewDefectUsecase(defects)

	if _, err := uc.Submit(context.Background(), 100, "/newdefect 215"); err != ErrInvalidSubmission {
		t.Fatalf("Expected ErrInvalidSubmission, got %v", err)
	}
	if len(defects.defects) != 0 {
		t.Error("Expected no defect persisted for malformed input")
	}
}

func TestSetStatus_Eliminated_LeavesList(t *testing.T) {
	defects := newMockDefectRepo()
	uc := NewDefectUsecase(defects)

	defect := &domain.Defect{
		RoomNumber:     215,
		Description:    "Broken lamp",
		Status:         domain.StatusFixing,
		AssignedChatID: 100,
		CreatedAt:      time.Now(),
	}
	if err := defects.Add(context.Background(), defect); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if err := uc.SetStatus(context.Background(), defect, domain.StatusEliminated); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	listed, err := uc.ListAssigned(context.Background(), 100)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(listed) != 0 {
		t.Error("Expected an eliminated defect to leave the assigned list")
	}

	// Still retrievable, never deleted
	stored, err := uc.GetByID(context.Background(), defect.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("Expected the eliminated defect to remain stored")
	}
	if !stored.IsClosed() {
		t.Error("Expected the eliminated defect to be closed")
	}
}
