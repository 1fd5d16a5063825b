// Package store connects to the planner database and manages the
// persisted activity, prayer, and note collections.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/hoje/internal/models"
)

var pathToDB string

var (
	// ErrNotFound is reported when an update or lookup targets an id
	// with no matching record. Callers must check for it before using
	// the returned record.
	ErrNotFound = errors.New("no record matches the specified id")

	errHojeRunning = errors.New(
		"is hoje already running? Only one instance can be active at a time",
	)
)

const (
	plannerBucket = "planner"
	rootKey       = "appinfo"
)

const idRandomSpace = 100000

// newID allocates an identifier composed of an entity-kind prefix, a
// creation timestamp, and a random suffix. Uniqueness is
// probabilistic, which is sufficient for a single-user planner.
func newID(prefix string) string {
	return fmt.Sprintf(
		"%s_%d_%05d",
		prefix,
		time.Now().UnixMilli(),
		rand.IntN(idRandomSpace),
	)
}

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// emptyRoot returns the default planner root with all three
// collections present and empty.
func emptyRoot() *models.AppData {
	return &models.AppData{
		Activities: []models.Activity{},
		Prayers:    []models.Prayer{},
		Notes:      []models.Note{},
	}
}

// decodeRoot deserializes the planner root. A top-level field that is
// missing or not an array is coerced to an empty collection; a blob
// that does not parse at all resets the root entirely. The second
// return value reports whether the default root must be persisted
// again (self-healing).
func decodeRoot(raw []byte) (*models.AppData, bool) {
	if len(raw) == 0 {
		return emptyRoot(), true
	}

	var fields map[string]json.RawMessage

	if err := json.Unmarshal(raw, &fields); err != nil {
		return emptyRoot(), true
	}

	root := emptyRoot()

	if raw, ok := fields["activities"]; ok {
		if err := json.Unmarshal(raw, &root.Activities); err != nil ||
			root.Activities == nil {
			root.Activities = []models.Activity{}
		}
	}

	if raw, ok := fields["prayers"]; ok {
		if err := json.Unmarshal(raw, &root.Prayers); err != nil ||
			root.Prayers == nil {
			root.Prayers = []models.Prayer{}
		}
	}

	if raw, ok := fields["notes"]; ok {
		if err := json.Unmarshal(raw, &root.Notes); err != nil ||
			root.Notes == nil {
			root.Notes = []models.Note{}
		}
	}

	return root, false
}

func saveRoot(tx *bolt.Tx, root *models.AppData) error {
	if root.Activities == nil {
		root.Activities = []models.Activity{}
	}

	if root.Prayers == nil {
		root.Prayers = []models.Prayer{}
	}

	if root.Notes == nil {
		root.Notes = []models.Note{}
	}

	value, err := json.Marshal(root)
	if err != nil {
		return err
	}

	return tx.Bucket([]byte(plannerBucket)).Put([]byte(rootKey), value)
}

// load reads the full planner root. It runs in a write transaction so
// that a missing or corrupt root can be healed and persisted in
// place, which keeps a bad blob from failing every subsequent read.
func (c *Client) load() (*models.AppData, error) {
	var root *models.AppData

	err := c.Update(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(plannerBucket)).Get([]byte(rootKey))

		var healed bool

		root, healed = decodeRoot(raw)
		if healed {
			return saveRoot(tx, root)
		}

		return nil
	})

	return root, err
}

// mutate runs fn against the planner root and persists the result.
// The load-mutate-save cycle happens inside a single transaction, so
// two logically concurrent mutations cannot interleave their loads
// and saves.
func (c *Client) mutate(fn func(root *models.AppData) error) error {
	return c.Update(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(plannerBucket)).Get([]byte(rootKey))

		root, _ := decodeRoot(raw)

		if err := fn(root); err != nil {
			return err
		}

		return saveRoot(tx, root)
	})
}

// AddActivity persists a new activity and returns the stored record
// with its assigned id and normalized fields.
func (c *Client) AddActivity(
	input models.Activity,
) (models.Activity, error) {
	activity := input

	activity.ID = newID("act")

	if !activity.HasTimer {
		activity.TimerMinutes = nil
	} else if activity.TimerMinutes == nil {
		activity.TimerMinutes = new(int)
	}

	if activity.Repeat.DaysOfWeek == nil {
		activity.Repeat.DaysOfWeek = []string{}
	}

	if activity.PrayerIDs == nil {
		activity.PrayerIDs = []string{}
	}

	err := c.mutate(func(root *models.AppData) error {
		root.Activities = append(root.Activities, activity)
		return nil
	})

	return activity, err
}

// UpdateActivity merges the non-nil fields of patch into the matching
// activity. Setting HasTimer to false clears TimerMinutes regardless
// of any value also present in the patch, and Repeat merges
// field-by-field instead of being replaced wholesale.
func (c *Client) UpdateActivity(
	id string,
	patch models.ActivityUpdate,
) (models.Activity, error) {
	var updated models.Activity

	err := c.mutate(func(root *models.AppData) error {
		i := activityIndex(root, id)
		if i == -1 {
			return ErrNotFound
		}

		activity := &root.Activities[i]

		if patch.Title != nil {
			activity.Title = *patch.Title
		}

		if patch.Time != nil {
			activity.Time = *patch.Time
		}

		if patch.HasTimer != nil {
			activity.HasTimer = *patch.HasTimer
		}

		if patch.TimerMinutes != nil {
			minutes := *patch.TimerMinutes
			activity.TimerMinutes = &minutes
		}

		if !activity.HasTimer {
			activity.TimerMinutes = nil
		}

		if patch.Repeat != nil {
			if patch.Repeat.Enabled != nil {
				activity.Repeat.Enabled = *patch.Repeat.Enabled
			}

			if patch.Repeat.DaysOfWeek != nil {
				activity.Repeat.DaysOfWeek = patch.Repeat.DaysOfWeek
			}
		}

		if patch.PrayerIDs != nil {
			activity.PrayerIDs = patch.PrayerIDs
		}

		updated = *activity

		return nil
	})

	return updated, err
}

// DeleteActivity removes the matching activity. Deleting an id with
// no match is a no-op.
func (c *Client) DeleteActivity(id string) error {
	return c.mutate(func(root *models.AppData) error {
		activities := root.Activities[:0]

		for i := range root.Activities {
			if root.Activities[i].ID != id {
				activities = append(activities, root.Activities[i])
			}
		}

		root.Activities = activities

		return nil
	})
}

// AddPrayer persists a new prayer, stamping its creation time.
func (c *Client) AddPrayer(input models.Prayer) (models.Prayer, error) {
	prayer := input

	prayer.ID = newID("pry")
	prayer.CreatedAt = time.Now()

	err := c.mutate(func(root *models.AppData) error {
		root.Prayers = append(root.Prayers, prayer)
		return nil
	})

	return prayer, err
}

// UpdatePrayer merges the non-nil fields of patch into the matching
// prayer. CreatedAt never changes.
func (c *Client) UpdatePrayer(
	id string,
	patch models.PrayerUpdate,
) (models.Prayer, error) {
	var updated models.Prayer

	err := c.mutate(func(root *models.AppData) error {
		for i := range root.Prayers {
			if root.Prayers[i].ID != id {
				continue
			}

			if patch.Title != nil {
				root.Prayers[i].Title = *patch.Title
			}

			if patch.Text != nil {
				root.Prayers[i].Text = *patch.Text
			}

			updated = root.Prayers[i]

			return nil
		}

		return ErrNotFound
	})

	return updated, err
}

// AddNote persists a new note, stamping its creation time. A nil
// ActivityID makes it a standalone note.
func (c *Client) AddNote(input models.Note) (models.Note, error) {
	note := input

	note.ID = newID("note")
	note.CreatedAt = time.Now()

	err := c.mutate(func(root *models.AppData) error {
		root.Notes = append(root.Notes, note)
		return nil
	})

	return note, err
}

// UpdateNote merges the non-nil fields of patch into the matching
// note. CreatedAt and ActivityID never change.
func (c *Client) UpdateNote(
	id string,
	patch models.NoteUpdate,
) (models.Note, error) {
	var updated models.Note

	err := c.mutate(func(root *models.AppData) error {
		for i := range root.Notes {
			if root.Notes[i].ID != id {
				continue
			}

			if patch.Title != nil {
				root.Notes[i].Title = *patch.Title
			}

			if patch.Text != nil {
				root.Notes[i].Text = *patch.Text
			}

			updated = root.Notes[i]

			return nil
		}

		return ErrNotFound
	})

	return updated, err
}

// GetOrCreateNoteForActivity returns the first note attached to the
// specified activity, creating and persisting a blank one when none
// exists yet. It fails with ErrNotFound if the activity itself is
// missing.
func (c *Client) GetOrCreateNoteForActivity(
	activityID string,
) (models.Note, error) {
	var note models.Note

	err := c.mutate(func(root *models.AppData) error {
		if activityIndex(root, activityID) == -1 {
			return ErrNotFound
		}

		for i := range root.Notes {
			if root.Notes[i].ActivityID != nil &&
				*root.Notes[i].ActivityID == activityID {
				note = root.Notes[i]
				return nil
			}
		}

		id := activityID

		note = models.Note{
			ID:         newID("note"),
			CreatedAt:  time.Now(),
			ActivityID: &id,
		}

		root.Notes = append(root.Notes, note)

		return nil
	})

	return note, err
}

// Activities returns all stored activities in insertion order.
func (c *Client) Activities() ([]models.Activity, error) {
	root, err := c.load()
	if err != nil {
		return nil, err
	}

	return root.Activities, nil
}

// Prayers returns all stored prayers in insertion order.
func (c *Client) Prayers() ([]models.Prayer, error) {
	root, err := c.load()
	if err != nil {
		return nil, err
	}

	return root.Prayers, nil
}

// Notes returns all stored notes in insertion order.
func (c *Client) Notes() ([]models.Note, error) {
	root, err := c.load()
	if err != nil {
		return nil, err
	}

	return root.Notes, nil
}

// FindActivity looks up an activity by id.
func (c *Client) FindActivity(id string) (models.Activity, error) {
	root, err := c.load()
	if err != nil {
		return models.Activity{}, err
	}

	if i := activityIndex(root, id); i != -1 {
		return root.Activities[i], nil
	}

	return models.Activity{}, ErrNotFound
}

// FindPrayer looks up a prayer by id.
func (c *Client) FindPrayer(id string) (models.Prayer, error) {
	root, err := c.load()
	if err != nil {
		return models.Prayer{}, err
	}

	for i := range root.Prayers {
		if root.Prayers[i].ID == id {
			return root.Prayers[i], nil
		}
	}

	return models.Prayer{}, ErrNotFound
}

// FindNote looks up a note by id.
func (c *Client) FindNote(id string) (models.Note, error) {
	root, err := c.load()
	if err != nil {
		return models.Note{}, err
	}

	for i := range root.Notes {
		if root.Notes[i].ID == id {
			return root.Notes[i], nil
		}
	}

	return models.Note{}, ErrNotFound
}

// NotesByActivity returns every note attached to the specified
// activity. The store does not assume at most one such note exists.
func (c *Client) NotesByActivity(
	activityID string,
) ([]models.Note, error) {
	root, err := c.load()
	if err != nil {
		return nil, err
	}

	var notes []models.Note

	for i := range root.Notes {
		if root.Notes[i].ActivityID != nil &&
			*root.Notes[i].ActivityID == activityID {
			notes = append(notes, root.Notes[i])
		}
	}

	return notes, nil
}

// ResolvePrayers resolves the weak prayer references on an activity,
// preserving order and silently skipping ids that no longer exist.
func (c *Client) ResolvePrayers(
	ids []string,
) ([]models.Prayer, error) {
	root, err := c.load()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Prayer, len(root.Prayers))

	for i := range root.Prayers {
		byID[root.Prayers[i].ID] = root.Prayers[i]
	}

	var prayers []models.Prayer

	for _, id := range ids {
		if p, ok := byID[id]; ok {
			prayers = append(prayers, p)
		}
	}

	return prayers, nil
}

func activityIndex(root *models.AppData, id string) int {
	for i := range root.Activities {
		if root.Activities[i].ID == id {
			return i
		}
	}

	return -1
}

// Open begins a database connection.
func (c *Client) Open() error {
	db, err := openDB(pathToDB)
	if err != nil {
		return err
	}

	*c = Client{
		db,
	}

	return nil
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseNotOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errHojeRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	pathToDB = dbPath

	db, err := openDB(pathToDB)
	if err != nil {
		return nil, err
	}
	// Create the planner bucket if it does not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(plannerBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
