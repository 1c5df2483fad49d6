package service

import (
	"context"
	"time"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
	"github.com/digichlist/digichlist-bot/internal/biz/repo"
	"github.com/digichlist/digichlist-bot/internal/biz/usecase"
	"github.com/digichlist/digichlist-bot/internal/conf"
)

// Mock implementations shared by the handler tests

type sentText struct {
	ChatID int64
	Text   string
}

type sentKeyboard struct {
	ChatID  int64
	Text    string
	Buttons []repo.Button
}

type editedMessage struct {
	ChatID    int64
	MessageID int
	Text      string
	Buttons   []repo.Button
}

type mockMessages struct {
	texts     []sentText
	keyboards []sentKeyboard
	edits     []editedMessage
	deleted   []int
	nextMsgID int
}

func newMockMessages() *mockMessages {
	return &mockMessages{nextMsgID: 1000}
}

func (m *mockMessages) SendText(ctx context.Context, chatID int64, text string) error {
	m.texts = append(m.texts, sentText{ChatID: chatID, Text: text})
	return nil
}

func (m *mockMessages) SendKeyboard(ctx context.Context, chatID int64, text string, buttons []repo.Button) (int, error) {
	m.keyboards = append(m.keyboards, sentKeyboard{ChatID: chatID, Text: text, Buttons: buttons})
	m.nextMsgID++
	return m.nextMsgID, nil
}

func (m *mockMessages) EditText(ctx context.Context, chatID int64, messageID int, text string, buttons []repo.Button) error {
	m.edits = append(m.edits, editedMessage{ChatID: chatID, MessageID: messageID, Text: text, Buttons: buttons})
	return nil
}

func (m *mockMessages) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	m.deleted = append(m.deleted, messageID)
	return nil
}

// lastText returns the most recent plain text reply, empty when none.
func (m *mockMessages) lastText() string {
	if len(m.texts) == 0 {
		return ""
	}
	return m.texts[len(m.texts)-1].Text
}

type mockUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*domain.User)}
}

func (m *mockUserRepo) GetByChatID(ctx context.Context, chatID int64) (*domain.User, error) {
	return m.users[chatID], nil
}

func (m *mockUserRepo) Save(ctx context.Context, user *domain.User) error {
	m.nextID++
	user.ID = m.nextID
	m.users[user.ChatID] = user
	return nil
}

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

type mockTaskRepo struct {
	tasks map[int64]*domain.CommandTask
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[int64]*domain.CommandTask)}
}

func (m *mockTaskRepo) GetOpen(ctx context.Context, chatID int64) (*domain.CommandTask, error) {
	task := m.tasks[chatID]
	if task == nil || !task.IsOpen() {
		return nil, nil
	}
	return task, nil
}

func (m *mockTaskRepo) Add(ctx context.Context, task *domain.CommandTask) error {
	if open := m.tasks[task.ChatID]; open != nil && open.IsOpen() {
		return repo.ErrTaskConflict
	}
	m.tasks[task.ChatID] = task
	return nil
}

func (m *mockTaskRepo) Update(ctx context.Context, task *domain.CommandTask) error {
	return nil
}

// fixture bundles everything a handler test needs

type fixture struct {
	users    *mockUserRepo
	defects  *mockDefectRepo
	tasks    *mockTaskRepo
	messages *mockMessages
	texts    *conf.Messages

	authUC   *usecase.AuthUsecase
	userUC   *usecase.UserUsecase
	defectUC *usecase.DefectUsecase
	taskUC   *usecase.TaskUsecase
}

func newFixture() *fixture {
	users := newMockUserRepo()
	defects := newMockDefectRepo()
	tasks := newMockTaskRepo()

	return &fixture{
		users:    users,
		defects:  defects,
		tasks:    tasks,
		messages: newMockMessages(),
		texts:    conf.DefaultMessages(),
		authUC:   usecase.NewAuthUsecase(users),
		userUC:   usecase.NewUserUsecase(users),
		defectUC: usecase.NewDefectUsecase(defects),
		taskUC:   usecase.NewTaskUsecase(tasks, time.Minute),
	}
}

func (f *fixture) grantRole(chatID int64, canAdd, canBeAssigned bool) {
	f.users.users[chatID] = &domain.User{
		ID:           f.users.nextID + 1,
		ChatID:       chatID,
		IsRegistered: true,
		Role:         &domain.Role{Name: "worker", CanAdd: canAdd, CanBeAssigned: canBeAssigned},
	}
}

func (f *fixture) addAssignedDefect(chatID int64, room int, description string) *domain.Defect {
	defect := &domain.Defect{
		RoomNumber:     room,
		Description:    description,
		Status:         domain.StatusOpened,
		AssignedChatID: chatID,
		CreatedAt:      time.Now(),
	}
	_ = f.defects.Add(context.Background(), defect)
	return defect
}
