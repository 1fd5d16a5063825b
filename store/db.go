package store

import (
	"github.com/ayoisaiah/hoje/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// AddActivity persists a new activity and returns the stored
	// record with its assigned id
	AddActivity(input models.Activity) (models.Activity, error)
	// UpdateActivity merges a partial update into the matching
	// activity or reports ErrNotFound
	UpdateActivity(
		id string,
		patch models.ActivityUpdate,
	) (models.Activity, error)
	// DeleteActivity removes the matching activity (no-op if absent)
	DeleteActivity(id string) error
	// AddPrayer persists a new prayer
	AddPrayer(input models.Prayer) (models.Prayer, error)
	// UpdatePrayer merges a partial update into the matching prayer
	UpdatePrayer(id string, patch models.PrayerUpdate) (models.Prayer, error)
	// AddNote persists a new note
	AddNote(input models.Note) (models.Note, error)
	// UpdateNote merges a partial update into the matching note
	UpdateNote(id string, patch models.NoteUpdate) (models.Note, error)
	// GetOrCreateNoteForActivity returns the note attached to an
	// activity, creating a blank one when none exists
	GetOrCreateNoteForActivity(activityID string) (models.Note, error)
	// Activities, Prayers, and Notes return the stored collections in
	// insertion order
	Activities() ([]models.Activity, error)
	Prayers() ([]models.Prayer, error)
	Notes() ([]models.Note, error)
	// FindActivity, FindPrayer, and FindNote look up single records
	// by id, reporting ErrNotFound when absent
	FindActivity(id string) (models.Activity, error)
	FindPrayer(id string) (models.Prayer, error)
	FindNote(id string) (models.Note, error)
	// NotesByActivity returns every note weakly referencing an
	// activity
	NotesByActivity(activityID string) ([]models.Note, error)
	// ResolvePrayers resolves weak prayer references, skipping
	// dangling ids
	ResolvePrayers(ids []string) ([]models.Prayer, error)
	// Close ends the database connection
	Close() error
	// Open begins a database connection
	Open() error
}
