// Package profile implements the profile screen view model: a state store
// holding the current ViewState, an event handler that maps UI events onto
// new states, and the three-phase avatar animation sequencer that runs
// alongside it.
package profile

import "fmt"

// Image is an opaque handle to an avatar or post picture. The view model
// never looks inside it; renderers resolve it to whatever they can draw.
type Image string

// User is the profile owner. Values are immutable; a status change produces
// a new User.
type User struct {
	Login    string `json:"login"`
	FullName string `json:"fullName"`
	Avatar   Image  `json:"avatar,omitempty"`
	Status   string `json:"status"`
}

// WithStatus returns a copy of u carrying status.
func (u User) WithStatus(status string) User {
	u.Status = status
	return u
}

// Post is a single feed item shown under the profile header.
type Post struct {
	Author      string `json:"author"`
	Description string `json:"description"`
	ImageName   string `json:"imageName"`
	Likes       int    `json:"likes"`
	Views       int    `json:"views"`
}

// Rect is an on-screen rectangle in cell units.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// IndexPath addresses a row inside a section of the profile table.
type IndexPath struct {
	Section int
	Row     int
}

// Handle is an opaque reference to a UI surface (the tapped avatar view or
// the host that overlays are attached to).
type Handle any
