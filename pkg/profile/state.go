package profile

// MessageUserNotFound is the error text shown when the lookup cannot resolve
// the login.
const MessageUserNotFound = "Пользователь не найден"

// StateKind discriminates ViewState values.
type StateKind int

const (
	StateLoading StateKind = iota
	StateLoaded
	StateError
)

func (k StateKind) String() string {
	switch k {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// ViewState is the value rendered by the profile screen. It is exactly one
// of Loading, Loaded or Error.
type ViewState interface {
	Kind() StateKind
	isViewState()
}

// Loading is shown while the user lookup is pending.
type Loading struct{}

// Loaded carries the resolved user with the seed posts. Posts is shared
// between successive Loaded values and must not be modified.
type Loaded struct {
	User      User
	Posts     []Post
	DebugInfo string
}

// Error reports a failed load.
type Error struct {
	Message string
}

func (Loading) Kind() StateKind { return StateLoading }
func (Loaded) Kind() StateKind  { return StateLoaded }
func (Error) Kind() StateKind   { return StateError }

func (Loading) isViewState() {}
func (Loaded) isViewState()  {}
func (Error) isViewState()   {}
