package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Messages contains every user-facing reply text. Deployments can override
// any of them from a YAML file; empty fields fall back to the defaults.
type Messages struct {
	Welcome             string `yaml:"welcome"`
	InvalidCommand      string `yaml:"invalid_command"`
	UnknownCommand      string `yaml:"unknown_command"` // takes the command token
	RegistrationSent    string `yaml:"registration_sent"`
	RegistrationPending string `yaml:"registration_pending"`
	RegistrationDone    string `yaml:"registration_done"`
	NoPermission        string `yaml:"no_permission"`
	DefectFormat        string `yaml:"defect_format"`
	DefectSaved         string `yaml:"defect_saved"` // takes the room number
	NothingToCancel     string `yaml:"nothing_to_cancel"`
	Canceled            string `yaml:"canceled"`
	UncompletedCommands string `yaml:"uncompleted_commands"`
	TaskConflict        string `yaml:"task_conflict"`
	NoAssignedDefects   string `yaml:"no_assigned_defects"`
	SelectDefect        string `yaml:"select_defect"`
	SelectStatus        string `yaml:"select_status"`
	StatusChanged       string `yaml:"status_changed"` // takes room number and status
	DefectAlreadyClosed string `yaml:"defect_already_closed"`
	DefectNotAssigned   string `yaml:"defect_not_assigned"`
	SomethingWentWrong  string `yaml:"something_went_wrong"`
}

// LoadMessages loads reply texts from a YAML file
func LoadMessages(configPath string) (*Messages, error) {
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"configs/messages.yaml",
			"./configs/messages.yaml",
			"/etc/digichlist-bot/messages.yaml",
		}
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs", "messages.yaml"))
		}
	}

	var data []byte
	for _, p := range paths {
		if p == "" {
			continue
		}
		if b, err := os.ReadFile(p); err == nil {
			data = b
			break
		}
	}

	if data == nil {
		return DefaultMessages(), nil
	}

	var messages Messages
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages.yaml: %w", err)
	}
	messages.fillDefaults()

	return &messages, nil
}

// fillDefaults fills in default values for empty fields
func (m *Messages) fillDefaults() {
	defaults := DefaultMessages()

	if m.Welcome == "" {
		m.Welcome = defaults.Welcome
	}
	if m.InvalidCommand == "" {
		m.InvalidCommand = defaults.InvalidCommand
	}
	if m.UnknownCommand == "" {
		m.UnknownCommand = defaults.UnknownCommand
	}
	if m.RegistrationSent == "" {
		m.RegistrationSent = defaults.RegistrationSent
	}
	if m.RegistrationPending == "" {
		m.RegistrationPending = defaults.RegistrationPending
	}
	if m.RegistrationDone == "" {
		m.RegistrationDone = defaults.RegistrationDone
	}
	if m.NoPermission == "" {
		m.NoPermission = defaults.NoPermission
	}
	if m.DefectFormat == "" {
		m.DefectFormat = defaults.DefectFormat
	}
	if m.DefectSaved == "" {
		m.DefectSaved = defaults.DefectSaved
	}
	if m.NothingToCancel == "" {
		m.NothingToCancel = defaults.NothingToCancel
	}
	if m.Canceled == "" {
		m.Canceled = defaults.Canceled
	}
	if m.UncompletedCommands == "" {
		m.UncompletedCommands = defaults.UncompletedCommands
	}
	if m.TaskConflict == "" {
		m.TaskConflict = defaults.TaskConflict
	}
	if m.NoAssignedDefects == "" {
		m.NoAssignedDefects = defaults.NoAssignedDefects
	}
	if m.SelectDefect == "" {
		m.SelectDefect = defaults.SelectDefect
	}
	if m.SelectStatus == "" {
		m.SelectStatus = defaults.SelectStatus
	}
	if m.StatusChanged == "" {
		m.StatusChanged = defaults.StatusChanged
	}
	if m.DefectAlreadyClosed == "" {
		m.DefectAlreadyClosed = defaults.DefectAlreadyClosed
	}
	if m.DefectNotAssigned == "" {
		m.DefectNotAssigned = defaults.DefectNotAssigned
	}
	if m.SomethingWentWrong == "" {
		m.SomethingWentWrong = defaults.SomethingWentWrong
	}
}

// DefaultMessages returns the default reply texts
func DefaultMessages() *Messages {
	return &Messages{
		Welcome: "Hi! Welcome to the Digichlist Bot. This bot was created to help you to send defects in a hotel that you found.\n\n" +
			"If you are new to this bot and want to get started, please enter the /registerme command so that our administration will review your request as soon as possible.\n\n" +
			"Press 'Menu' button to see all features.",
		InvalidCommand:      "Please send a valid command. You may find them in the Menu",
		UnknownCommand:      "There is no such available command - %s. Please take a look at the Menu.",
		RegistrationSent:    "The registration request was successfully sent!\n You'll be notified as soon as possible!",
		RegistrationPending: "You've already requested the registration. Our admins are working on it.",
		RegistrationDone:    "You are already registered",
		NoPermission:        "Unfortunately your role does not have a permission for this command or the role is missing.",
		DefectFormat:        "Please send a new defect in a following format:\n/newdefect <room number> <description>",
		DefectSaved:         "The defect for room %d was successfully published. Thank you!",
		NothingToCancel:     "You have no ongoing commands to cancel.",
		Canceled:            "All ongoing commands were canceled.",
		UncompletedCommands: "You have uncompleted commands that cannot be continued. Please enter the /cancel command to proceed.",
		TaskConflict:        "Another command has just been started for this chat. Please try again.",
		NoAssignedDefects:   "You do not have any assigned defects yet.",
		SelectDefect:        "Please select the defect to change its status:",
		SelectStatus:        "Please select the new status:",
		StatusChanged:       "Done! The defect for room %d is now %s.",
		DefectAlreadyClosed: "This defect is already closed.",
		DefectNotAssigned:   "This defect is no longer assigned to you.",
		SomethingWentWrong:  "Something went wrong. Please try again later.",
	}
}
