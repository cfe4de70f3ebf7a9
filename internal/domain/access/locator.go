package access

import "fmt"

// Identity carries who is asking. The admin flag is established upstream by
// the auth layer; the resolver trusts it as given.
type Identity struct {
	AccountID     uint
	Authenticated bool
	IsAdmin       bool
}

// ContentLocator identifies the requested content: always a course, optionally
// reached through a package, optionally narrowed to an age group and further
// to a player card or a training month/day/video.
type ContentLocator struct {
	CourseID    uint
	PackageID   uint
	AgeGroupID  uint
	CardID      uint
	MonthNumber int
	VideoID     uint
}

// Validate checks the locator's structural requirements.
func (l ContentLocator) Validate() error {
	if l.CourseID == 0 {
		return fmt.Errorf("locator requires a course")
	}
	if l.MonthNumber < 0 {
		return fmt.Errorf("month number cannot be negative")
	}
	return nil
}

// HasPackage reports whether the request came through a package context.
func (l ContentLocator) HasPackage() bool { return l.PackageID != 0 }

// NarrowsToCard reports whether the request targets a specific player card.
func (l ContentLocator) NarrowsToCard() bool { return l.CardID != 0 }

// NarrowsToMonth reports whether the request targets a specific month.
func (l ContentLocator) NarrowsToMonth() bool { return l.MonthNumber > 0 }

// NarrowsToVideo reports whether the request targets a specific video.
func (l ContentLocator) NarrowsToVideo() bool { return l.VideoID != 0 }
