package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
	"github.com/digichlist/digichlist-bot/internal/biz/repo"
	"github.com/digichlist/digichlist-bot/internal/biz/usecase"
	"github.com/digichlist/digichlist-bot/internal/conf"
)

// SetDefectStatusCommand drives the multi-step status change conversation:
// a plain text invocation opens a task and presents the chat's assigned
// defects, the first callback records the chosen defect and presents the
// statuses, the second callback closes the task and applies the status.
type SetDefectStatusCommand struct {
	auth     *usecase.AuthUsecase
	tasks    *usecase.TaskUsecase
	defects  *usecase.DefectUsecase
	messages repo.MessageRepo
	texts    *conf.Messages
	log      *zap.Logger
}

// NewSetDefectStatusCommand creates the /setdefectstatus handler
func NewSetDefectStatusCommand(
	auth *usecase.AuthUsecase,
	tasks *usecase.TaskUsecase,
	defects *usecase.DefectUsecase,
	messages repo.MessageRepo,
	texts *conf.Messages,
	log *zap.Logger,
) *SetDefectStatusCommand {
	return &SetDefectStatusCommand{
		auth:     auth,
		tasks:    tasks,
		defects:  defects,
		messages: messages,
		texts:    texts,
		log:      log,
	}
}

func (c *SetDefectStatusCommand) Process(ctx context.Context, env domain.Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if env.IsCallback() {
		return c.advance(ctx, env)
	}
	return c.begin(ctx, env)
}

// begin opens the task and presents the defect selection keyboard
func (c *SetDefectStatusCommand) begin(ctx context.Context, env domain.Envelope) error {
	settle, err := c.tasks.TrySettleOngoing(ctx, env.ChatID)
	if err != nil {
		return err
	}
	if settle == usecase.SettleBlocked {
		return c.messages.SendText(ctx, env.ChatID, c.texts.UncompletedCommands)
	}

	allowed, err := c.auth.Authorize(ctx, env.ChatID, domain.CapabilityBeAssigned)
	if err != nil {
		return err
	}
	if !allowed {
		return c.messages.SendText(ctx, env.ChatID, c.texts.NoPermission)
	}

	defects, err := c.defects.ListAssigned(ctx, env.ChatID)
	if err != nil {
		return err
	}
	if len(defects) == 0 {
		return c.messages.SendText(ctx, env.ChatID, c.texts.NoAssignedDefects)
	}

	task, err := c.tasks.Begin(ctx, env.ChatID, conf.CommandSetDefectStatus)
	if err == repo.ErrTaskConflict {
		// Another event for this chat won the settle race; a store-level
		// conflict is transient, not a blocked conversation.
		return c.messages.SendText(ctx, env.ChatID, c.texts.TaskConflict)
	}
	if err != nil {
		return err
	}

	buttons, err := c.defectButtons(task, defects)
	if err != nil {
		return err
	}
	_, err = c.messages.SendKeyboard(ctx, env.ChatID, c.texts.SelectDefect, buttons)
	return err
}

// advance consumes a continuation token for either flow step
func (c *SetDefectStatusCommand) advance(ctx context.Context, env domain.Envelope) error {
	callback, err := domain.DecodeCallback(env.CallbackData)
	if err != nil {
		return c.protocolMismatch(ctx, env, "undecodable callback payload")
	}

	// Lazy expiry applies to callbacks too: a token for a task that just
	// expired settles it and then fails the request.
	settle, err := c.tasks.TrySettleOngoing(ctx, env.ChatID)
	if err != nil {
		return err
	}
	if settle == usecase.SettleClear {
		return c.protocolMismatch(ctx, env, "callback without an open task")
	}

	task, err := c.tasks.Open(ctx, env.ChatID)
	if err != nil {
		return err
	}
	if task == nil || task.ID != callback.TaskID {
		return c.protocolMismatch(ctx, env, "callback does not match the open task")
	}

	defect, err := c.defects.GetByID(ctx, callback.DefectID)
	if err != nil {
		return err
	}
	if defect == nil {
		return c.protocolMismatch(ctx, env, "callback references a missing defect")
	}
	if defect.IsClosed() {
		return c.messages.SendText(ctx, env.ChatID, c.texts.DefectAlreadyClosed)
	}
	if !defect.IsAssignedTo(env.ChatID) {
		return c.messages.SendText(ctx, env.ChatID, c.texts.DefectNotAssigned)
	}

	if callback.Status == nil {
		return c.selectDefect(ctx, env, task, defect)
	}
	return c.applyStatus(ctx, env, task, defect, *callback.Status)
}

// selectDefect records the defect choice and presents the status keyboard
func (c *SetDefectStatusCommand) selectDefect(ctx context.Context, env domain.Envelope, task *domain.CommandTask, defect *domain.Defect) error {
	if err := c.tasks.SelectDefect(ctx, task, defect.ID); err != nil {
		return c.protocolMismatch(ctx, env, "defect selection out of order")
	}

	buttons, err := c.statusButtons(task, defect)
	if err != nil {
		return err
	}
	return c.messages.EditText(ctx, env.ChatID, env.MessageID, c.texts.SelectStatus, buttons)
}

// applyStatus is the terminal step: the task is closed and persisted before
// the defect is touched, so a failing defect update can never leave the
// conversation open for a retry to re-drive it.
func (c *SetDefectStatusCommand) applyStatus(ctx context.Context, env domain.Envelope, task *domain.CommandTask, defect *domain.Defect, status domain.DefectStatus) error {
	if !status.Valid() {
		return c.protocolMismatch(ctx, env, "callback carries an invalid status")
	}
	if task.Stage != domain.StageSelectingStatus || task.DefectID != defect.ID {
		return c.protocolMismatch(ctx, env, "status selection out of order")
	}

	if err := c.tasks.Complete(ctx, task); err != nil {
		return err
	}

	if err := c.defects.SetStatus(ctx, defect, status); err != nil {
		c.log.Error("defect update failed after task completion",
			zap.Int64("chat_id", env.ChatID),
			zap.Int64("defect_id", defect.ID),
			zap.Error(err))
		return c.messages.SendText(ctx, env.ChatID, c.texts.SomethingWentWrong)
	}

	confirmation := fmt.Sprintf(c.texts.StatusChanged, defect.RoomNumber, status)
	return c.messages.EditText(ctx, env.ChatID, env.MessageID, confirmation, nil)
}

// protocolMismatch reports the generic apology and logs the raw payload for
// diagnosis
func (c *SetDefectStatusCommand) protocolMismatch(ctx context.Context, env domain.Envelope, reason string) error {
	c.log.Error("continuation token mismatch",
		zap.Int64("chat_id", env.ChatID),
		zap.String("reason", reason),
		zap.String("payload", env.CallbackData))
	return c.messages.SendText(ctx, env.ChatID, c.texts.SomethingWentWrong)
}

func (c *SetDefectStatusCommand) defectButtons(task *domain.CommandTask, defects []*domain.Defect) ([]repo.Button, error) {
	var buttons []repo.Button
	for _, d := range defects {
		data, err := domain.Callback{
			Command:  conf.CommandSetDefectStatus,
			TaskID:   task.ID,
			DefectID: d.ID,
		}.Encode()
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, repo.Button{Label: d.BriefDetails(), Data: data})
	}
	return buttons, nil
}

func (c *SetDefectStatusCommand) statusButtons(task *domain.CommandTask, defect *domain.Defect) ([]repo.Button, error) {
	statuses := []domain.DefectStatus{domain.StatusOpened, domain.StatusFixing, domain.StatusEliminated}

	var buttons []repo.Button
	for _, status := range statuses {
		data, err := domain.Callback{
			Command:  conf.CommandSetDefectStatus,
			TaskID:   task.ID,
			DefectID: defect.ID,
			Status:   &status,
		}.Encode()
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, repo.Button{Label: status.String(), Data: data})
	}
	return buttons, nil
}
