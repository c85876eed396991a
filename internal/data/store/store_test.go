package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "callscope.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestContactsCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice, err := s.Add(ctx, "Alice", "555-123-4567")
	require.NoError(t, err)
	assert.NotEmpty(t, alice.ID)

	_, err = s.Add(ctx, "bob", "5559876543")
	require.NoError(t, err)

	// Sorted by name, case-insensitively.
	contacts, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Alice", contacts[0].Name)
	assert.Equal(t, "bob", contacts[1].Name)

	alice.Name = "Alice Smith"
	require.NoError(t, s.Update(ctx, alice))
	got, err := s.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", got.Name)

	require.NoError(t, s.Remove(ctx, alice.ID))
	_, err = s.Get(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "", "5551234567")
	assert.Error(t, err)

	_, err = s.Add(ctx, "No Number", "()- ")
	assert.Error(t, err)
}

func TestUpdateMissingContact(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c, err := s.Add(ctx, "Alice", "5551234567")
	require.NoError(t, err)
	require.NoError(t, s.Remove(ctx, c.ID))

	assert.ErrorIs(t, s.Update(ctx, c), ErrNotFound)
	assert.ErrorIs(t, s.Remove(ctx, c.ID), ErrNotFound)
	assert.ErrorIs(t, s.SetFavorite(ctx, c.ID, true), ErrNotFound)
}

func TestSetFavorite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c, err := s.Add(ctx, "Alice", "5551234567")
	require.NoError(t, err)
	require.NoError(t, s.SetFavorite(ctx, c.ID, true))

	got, err := s.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.Favorite)
}

func TestFindContact(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice, err := s.Add(ctx, "Alice", "+1 (555) 123-4567")
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
	}{
		{name: "by id", query: alice.ID},
		{name: "by name case-insensitive", query: "alice"},
		{name: "by exact phone", query: "+1 (555) 123-4567"},
		{name: "by last-10 phone", query: "5551234567"},
		{name: "by last-7 phone", query: "123-4567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Find(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, alice.ID, got.ID)
		})
	}

	_, err = s.Find(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Find(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNotesLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c, err := s.Add(ctx, "Alice", "5551234567")
	require.NoError(t, err)

	first, err := s.AddNote(ctx, c.ID, "met at the conference")
	require.NoError(t, err)
	second, err := s.AddNote(ctx, c.ID, "prefers email")
	require.NoError(t, err)

	notes, err := s.ListNotes(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID, "newest note first")

	require.NoError(t, s.RemoveNote(ctx, first.ID))
	notes, err = s.ListNotes(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	_, err = s.AddNote(ctx, "missing-contact", "body")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.AddNote(ctx, c.ID, "   ")
	assert.Error(t, err)
}

func TestNotesCascadeOnContactRemoval(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c, err := s.Add(ctx, "Alice", "5551234567")
	require.NoError(t, err)
	_, err = s.AddNote(ctx, c.ID, "note")
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, c.ID))
	notes, err := s.ListNotes(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestRemindersLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c, err := s.Add(ctx, "Alice", "5551234567")
	require.NoError(t, err)

	later := time.Now().Add(time.Hour)
	sooner := time.Now().Add(time.Minute)
	r1, err := s.SetReminder(ctx, c.ID, "call back", later)
	require.NoError(t, err)
	r2, err := s.SetReminder(ctx, c.ID, "send invoice", sooner)
	require.NoError(t, err)

	reminders, err := s.ListReminders(ctx, c.ID, false)
	require.NoError(t, err)
	require.Len(t, reminders, 2)
	assert.Equal(t, r2.ID, reminders[0].ID, "soonest due first")

	require.NoError(t, s.MarkReminderDone(ctx, r1.ID))
	reminders, err = s.ListReminders(ctx, c.ID, false)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, r2.ID, reminders[0].ID)

	reminders, err = s.ListReminders(ctx, c.ID, true)
	require.NoError(t, err)
	assert.Len(t, reminders, 2)

	assert.ErrorIs(t, s.MarkReminderDone(ctx, "missing"), ErrNotFound)
}

func TestSettings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	v, err := s.GetSetting(ctx, "theme")
	require.NoError(t, err)
	assert.Empty(t, v, "unset key reads as empty")

	require.NoError(t, s.SetSetting(ctx, "theme", "dark"))
	require.NoError(t, s.SetSetting(ctx, "theme", "light"))

	v, err = s.GetSetting(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", v)
}
