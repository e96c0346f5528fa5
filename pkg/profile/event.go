package profile

// Event is an input submitted by the UI through ViewModel.HandleEvent.
type Event interface {
	isEvent()
}

// ViewDidLoad starts loading the profile.
type ViewDidLoad struct{}

// AvatarTapped asks for the avatar zoom animation. Frame is the avatar's
// current rectangle in host coordinates.
type AvatarTapped struct {
	View  Handle
	Frame Rect
}

// AvatarExpanded reports that the StartAnimation phase finished on screen.
type AvatarExpanded struct{}

// CloseAvatarTapped dismisses the zoomed avatar.
type CloseAvatarTapped struct{}

// AvatarCollapsed reports that the FinishAnimation phase finished and the
// overlay was torn down.
type AvatarCollapsed struct{}

// PhotosCellTapped is informational; it never changes state.
type PhotosCellTapped struct{}

// UpdateStatus replaces the loaded user's status.
type UpdateStatus struct {
	Status string
}

func (ViewDidLoad) isEvent()       {}
func (AvatarTapped) isEvent()      {}
func (AvatarExpanded) isEvent()    {}
func (CloseAvatarTapped) isEvent() {}
func (AvatarCollapsed) isEvent()   {}
func (PhotosCellTapped) isEvent()  {}
func (UpdateStatus) isEvent()      {}
