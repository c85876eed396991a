// Package store persists the local address book (contacts, notes,
// reminders, and app settings) in a single SQLite database. It is the
// ContactsProvider implementation used by every command.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"callscope/internal/core/model"
	"callscope/internal/core/phone"
)

// ErrNotFound is returned when a contact, note, or reminder does not exist.
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	phone      TEXT NOT NULL,
	favorite   INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS notes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	contact_id TEXT NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
	body       TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS reminders (
	id         TEXT PRIMARY KEY,
	contact_id TEXT NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
	message    TEXT NOT NULL,
	due_at     INTEGER NOT NULL,
	done       INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_contact ON notes(contact_id);
CREATE INDEX IF NOT EXISTS idx_reminders_contact ON reminders(contact_id);
`

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns all contacts sorted by name, case-insensitively.
func (s *Store) List(ctx context.Context) ([]model.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, phone, favorite, created_at, updated_at
		 FROM contacts ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// Get returns the contact with the given id.
func (s *Store) Get(ctx context.Context, id string) (model.Contact, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, phone, favorite, created_at, updated_at
		 FROM contacts WHERE id = ?`, id)
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Contact{}, fmt.Errorf("contact %s: %w", id, ErrNotFound)
	}
	return c, err
}

// Add inserts a new contact and returns it.
func (s *Store) Add(ctx context.Context, name, phoneNumber string) (model.Contact, error) {
	name = strings.TrimSpace(name)
	phoneNumber = strings.TrimSpace(phoneNumber)
	if name == "" {
		return model.Contact{}, errors.New("contact name is required")
	}
	if phone.Normalize(phoneNumber) == "" {
		return model.Contact{}, errors.New("contact phone number is required")
	}

	now := time.Now().Unix()
	c := model.Contact{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phoneNumber,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (id, name, phone, favorite, created_at, updated_at)
		 VALUES (?, ?, ?, 0, ?, ?)`,
		c.ID, c.Name, c.Phone, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return model.Contact{}, fmt.Errorf("add contact: %w", err)
	}
	return c, nil
}

// Update rewrites a contact's name and phone.
func (s *Store) Update(ctx context.Context, contact model.Contact) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE contacts SET name = ?, phone = ?, updated_at = ? WHERE id = ?`,
		contact.Name, contact.Phone, time.Now().Unix(), contact.ID)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return requireRow(res, contact.ID)
}

// Remove deletes a contact; notes and reminders cascade.
func (s *Store) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove contact: %w", err)
	}
	return requireRow(res, id)
}

// SetFavorite toggles the favorite flag.
func (s *Store) SetFavorite(ctx context.Context, id string, favorite bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE contacts SET favorite = ?, updated_at = ? WHERE id = ?`,
		boolToInt(favorite), time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}
	return requireRow(res, id)
}

// Find resolves a contact by id, exact name (case-insensitive), or by
// phone number using the same fuzzy matching the reconciler applies.
func (s *Store) Find(ctx context.Context, query string) (model.Contact, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return model.Contact{}, fmt.Errorf("empty contact query: %w", ErrNotFound)
	}

	if c, err := s.Get(ctx, query); err == nil {
		return c, nil
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, phone, favorite, created_at, updated_at
		 FROM contacts WHERE name = ? COLLATE NOCASE LIMIT 1`, query)
	if c, err := scanContact(row); err == nil {
		return c, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return model.Contact{}, err
	}

	if phone.Normalize(query) != "" {
		contacts, err := s.List(ctx)
		if err != nil {
			return model.Contact{}, err
		}
		for _, c := range contacts {
			if phone.MatchesRaw(c.Phone, query) {
				return c, nil
			}
		}
	}

	return model.Contact{}, fmt.Errorf("contact %q: %w", query, ErrNotFound)
}

// AddNote attaches a note to a contact.
func (s *Store) AddNote(ctx context.Context, contactID, body string) (model.Note, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return model.Note{}, errors.New("note body is required")
	}
	if _, err := s.Get(ctx, contactID); err != nil {
		return model.Note{}, err
	}

	now := time.Now().Unix()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (contact_id, body, created_at) VALUES (?, ?, ?)`,
		contactID, body, now)
	if err != nil {
		return model.Note{}, fmt.Errorf("add note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Note{}, fmt.Errorf("add note: %w", err)
	}
	return model.Note{ID: id, ContactID: contactID, Body: body, CreatedAt: now}, nil
}

// ListNotes returns a contact's notes, newest first.
func (s *Store) ListNotes(ctx context.Context, contactID string) ([]model.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, contact_id, body, created_at FROM notes
		 WHERE contact_id = ? ORDER BY created_at DESC, id DESC`, contactID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.ContactID, &n.Body, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// RemoveNote deletes a note by id.
func (s *Store) RemoveNote(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove note: %w", err)
	}
	return requireRow(res, fmt.Sprintf("note %d", id))
}

// SetReminder creates a reminder for a contact.
func (s *Store) SetReminder(ctx context.Context, contactID, message string, dueAt time.Time) (model.Reminder, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return model.Reminder{}, errors.New("reminder message is required")
	}
	if _, err := s.Get(ctx, contactID); err != nil {
		return model.Reminder{}, err
	}

	r := model.Reminder{
		ID:        uuid.NewString(),
		ContactID: contactID,
		Message:   message,
		DueAt:     dueAt.Unix(),
		CreatedAt: time.Now().Unix(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reminders (id, contact_id, message, due_at, done, created_at)
		 VALUES (?, ?, ?, ?, 0, ?)`,
		r.ID, r.ContactID, r.Message, r.DueAt, r.CreatedAt)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("set reminder: %w", err)
	}
	return r, nil
}

// ListReminders returns reminders ordered by due time. contactID may be
// empty for all contacts; done reminders are included only on request.
func (s *Store) ListReminders(ctx context.Context, contactID string, includeDone bool) ([]model.Reminder, error) {
	q := `SELECT id, contact_id, message, due_at, done, created_at FROM reminders WHERE 1=1`
	args := make([]any, 0, 2)
	if contactID != "" {
		q += ` AND contact_id = ?`
		args = append(args, contactID)
	}
	if !includeDone {
		q += ` AND done = 0`
	}
	q += ` ORDER BY due_at`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []model.Reminder
	for rows.Next() {
		var r model.Reminder
		var done int
		if err := rows.Scan(&r.ID, &r.ContactID, &r.Message, &r.DueAt, &done, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Done = done != 0
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

// MarkReminderDone marks a reminder completed.
func (s *Store) MarkReminderDone(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE reminders SET done = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark reminder done: %w", err)
	}
	return requireRow(res, id)
}

// GetSetting returns the value for key, or the empty string when unset.
func (s *Store) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

// SetSetting upserts a settings key.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (model.Contact, error) {
	var c model.Contact
	var favorite int
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &favorite, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return model.Contact{}, err
	}
	c.Favorite = favorite != 0
	return c, nil
}

func requireRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
