package engine

import (
	"time"

	"github.com/tartampluch/go-numerology/internal/numerology"
)

// Contact is one person imported from an address book.
type Contact struct {
	// UID is a stable hash of name and birth date.
	UID string `json:"uid"`

	Person numerology.Person `json:"person"`

	// YearKnown is false for vCard dates written as --MM-DD. Such contacts
	// carry a placeholder year and get no numerology.
	YearKnown bool `json:"yearKnown"`

	// NextBirthday is the next occurrence of the birthday, today included.
	NextBirthday time.Time `json:"nextBirthday"`

	// AgeNext is the age reached on NextBirthday, 0 when the year is unknown.
	AgeNext int `json:"ageNext"`
}
