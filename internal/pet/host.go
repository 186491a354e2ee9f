package pet

import "context"

// Command identifiers the host binds to the manager's actions.
const (
	CommandAdopt  = "code4food.adoptPet"
	CommandSwitch = "code4food.switchPet"
	CommandSpeak  = "code4food.speak"
)

// Store keys.
const (
	KeyPets      = "pets"
	KeyActivePet = "activePet"
)

// Store is the host's persistent key-value store. Values are JSON encoded.
type Store interface {
	// Get decodes the value for key into dst. found is false, and dst is
	// left untouched, when the key has never been set.
	Get(key string, dst any) (found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value any) error
}

// StatusItem is a single status-line entry owned by the plugin.
type StatusItem interface {
	SetText(text string)
	// SetColor sets the foreground colour as "#RRGGBB"; empty means default.
	SetColor(color string)
	SetTooltip(tooltip string)
	// SetCommand binds the command run when the item is activated.
	SetCommand(command string)
	Show()
	Dispose()
}

// Level is a notification severity.
type Level string

// Notification levels.
const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier shows fire-and-forget notifications.
type Notifier interface {
	Notify(level Level, message string)
}

// Choice is one entry in a single-choice prompt. ID identifies the
// underlying object; Label is what the user sees.
type Choice struct {
	ID    string
	Label string
}

// InputOptions configures a free-text prompt.
type InputOptions struct {
	Prompt      string
	Placeholder string
}

// Prompter asks the user questions. Both methods block until the user
// answers, cancels (ok is false) or ctx is done.
type Prompter interface {
	Pick(ctx context.Context, choices []Choice, placeholder string) (choice Choice, ok bool, err error)
	Input(ctx context.Context, opts InputOptions) (text string, ok bool, err error)
}

// Change is one replacement within a document edit.
type Change struct {
	Text string
}

// ChangeBatch is one document edit as delivered by the host.
type ChangeBatch struct {
	Changes []Change
}

// ChangeSource delivers document edits.
type ChangeSource interface {
	// OnDidChange registers fn and returns a function that unregisters it.
	OnDidChange(fn func(ChangeBatch)) (cancel func(), err error)
}

// Host bundles the collaborators the manager depends on. Only Store is
// required; missing UI collaborators are replaced by silent stand-ins.
type Host struct {
	Store    Store
	Status   StatusItem
	Prompter Prompter
	Notifier Notifier
	Changes  ChangeSource
}

type nopStatus struct{}

func (nopStatus) SetText(string)    {}
func (nopStatus) SetColor(string)   {}
func (nopStatus) SetTooltip(string) {}
func (nopStatus) SetCommand(string) {}
func (nopStatus) Show()             {}
func (nopStatus) Dispose()          {}

type nopNotifier struct{}

func (nopNotifier) Notify(Level, string) {}

// cancelPrompter answers every prompt with a cancellation.
type cancelPrompter struct{}

func (cancelPrompter) Pick(context.Context, []Choice, string) (Choice, bool, error) {
	return Choice{}, false, nil
}

func (cancelPrompter) Input(context.Context, InputOptions) (string, bool, error) {
	return "", false, nil
}
