package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pathakanu/mailmind/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_fk=1", name, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Reminder{},
		&model.Summarization{},
		&model.UserDetails{},
		&model.OutboundMessage{},
		&model.SweepState{},
	))
	return db
}

func TestReminderOwnershipScoping(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	reminders := NewReminderStore(db)
	ctx := context.Background()

	owned := &model.Reminder{
		OwnerID: "user-a",
		Title:   "Pay rent",
		Date:    "2025-03-01",
		Time:    "09:00",
		DueAt:   time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, reminders.Create(ctx, owned))
	require.NotEmpty(t, owned.ID)

	// Another owner cannot see, update, or delete it.
	_, err := reminders.FindByID(ctx, "user-b", owned.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, reminders.Delete(ctx, "user-b", owned.ID), ErrNotFound)

	found, err := reminders.FindByID(ctx, "user-a", owned.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pay rent", found.Title)
	assert.False(t, found.IsCompleted)
}

func TestReminderListNewestFirst(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	reminders := NewReminderStore(db)
	ctx := context.Background()

	base := time.Now()
	for i, title := range []string{"first", "second", "third"} {
		r := &model.Reminder{
			OwnerID: "user",
			Title:   title,
			Date:    "2025-03-01",
			Time:    "09:00",
			DueAt:   base,
		}
		require.NoError(t, reminders.Create(ctx, r))
		require.NoError(t, db.Model(r).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	list, err := reminders.ListByOwner(ctx, "user")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Title)
	assert.Equal(t, "first", list[2].Title)

	// Idempotent reads: same order with no intervening writes.
	again, err := reminders.ListByOwner(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, list, again)
}

func TestReminderDeleteMissing(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	reminders := NewReminderStore(db)

	err := reminders.Delete(context.Background(), "user", "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReminderDueBetween(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	reminders := NewReminderStore(db)
	ctx := context.Background()

	now := time.Date(2025, 3, 1, 9, 0, 30, 0, time.UTC)
	watermark := now.Add(-time.Minute)

	inWindow := &model.Reminder{OwnerID: "u", Title: "due", Date: "2025-03-01", Time: "09:00", DueAt: now.Add(-30 * time.Second)}
	before := &model.Reminder{OwnerID: "u", Title: "old", Date: "2025-03-01", Time: "08:00", DueAt: watermark.Add(-time.Hour)}
	future := &model.Reminder{OwnerID: "u", Title: "later", Date: "2025-03-01", Time: "10:00", DueAt: now.Add(time.Hour)}
	done := &model.Reminder{OwnerID: "u", Title: "done", Date: "2025-03-01", Time: "09:00", DueAt: now.Add(-30 * time.Second), IsCompleted: true}
	for _, r := range []*model.Reminder{inWindow, before, future, done} {
		require.NoError(t, reminders.Create(ctx, r))
	}

	due, err := reminders.DueBetween(ctx, watermark, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, inWindow.ID, due[0].ID)

	require.NoError(t, reminders.MarkCompleted(ctx, inWindow.ID))
	due, err = reminders.DueBetween(ctx, watermark, now)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestSummarizationCrossOwnerUpdate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	summaries := NewSummarizationStore(db)
	ctx := context.Background()

	created := &model.Summarization{
		OwnerID: "user-a",
		Name:    "quarterly report",
		Summary: "a summary long enough to store",
		Tags:    []string{},
	}
	require.NoError(t, summaries.Create(ctx, created))

	_, err := summaries.Update(ctx, "user-b", created.ID, "hijacked summary text", "stolen", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := summaries.ListByOwner(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a summary long enough to store", list[0].Summary)
	assert.Equal(t, "quarterly report", list[0].Name)
}

func TestSummarizationUpdateAndDelete(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	summaries := NewSummarizationStore(db)
	ctx := context.Background()

	created := &model.Summarization{
		OwnerID: "user",
		Name:    "original",
		Summary: "the original summary text",
		Tags:    []string{},
	}
	require.NoError(t, summaries.Create(ctx, created))

	updated, err := summaries.Update(ctx, "user", created.ID, "the revised summary text", "revised", []string{"work", "email"})
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Name)
	assert.Equal(t, []string{"work", "email"}, updated.Tags)

	require.NoError(t, summaries.Delete(ctx, "user", created.ID))
	assert.ErrorIs(t, summaries.Delete(ctx, "user", created.ID), ErrNotFound)
}

func TestSummarizationNamePerOwner(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	summaries := NewSummarizationStore(db)
	ctx := context.Background()

	// Two owners may reuse the same name; one owner may not.
	require.NoError(t, summaries.Create(ctx, &model.Summarization{OwnerID: "a", Name: "weekly", Summary: "summary text one", Tags: []string{}}))
	require.NoError(t, summaries.Create(ctx, &model.Summarization{OwnerID: "b", Name: "weekly", Summary: "summary text two", Tags: []string{}}))
	assert.Error(t, summaries.Create(ctx, &model.Summarization{OwnerID: "a", Name: "weekly", Summary: "summary text three", Tags: []string{}}))
}

func TestUserDetailsUpsert(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	users := NewUserDetailsStore(db)
	ctx := context.Background()

	_, err := users.Find(ctx, "user")
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := users.Upsert(ctx, &model.UserDetails{
		OwnerID:             "user",
		Name:                "Ada",
		AllowWhatsappAlerts: true,
		WhatsappNumber:      "+15551234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", created.Name)

	updated, err := users.Upsert(ctx, &model.UserDetails{
		OwnerID:         "user",
		Name:            "Ada L.",
		AllowTextAlerts: true,
		PhoneNumber:     "+15557654321",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.Name)
	assert.True(t, updated.AllowTextAlerts)
	// Merged in place, not duplicated.
	var count int64
	require.NoError(t, db.Model(&model.UserDetails{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestOutboxLifecycle(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	outbox := NewOutboxStore(db)
	ctx := context.Background()

	now := time.Now()
	pending := &model.OutboundMessage{
		ReminderID:   "rem-1",
		OwnerID:      "user",
		Channel:      model.ChannelWhatsApp,
		Recipient:    "15551234567",
		TemplateName: "reminder_alert",
		Variables:    []string{"Pay rent", "monthly", "2025-03-01 09:00"},
		FireAt:       now.Add(-time.Second),
	}
	future := &model.OutboundMessage{
		ReminderID: "rem-2",
		OwnerID:    "user",
		Channel:    model.ChannelSMS,
		Recipient:  "+15551234567",
		FireAt:     now.Add(time.Hour),
	}
	require.NoError(t, outbox.Enqueue(ctx, pending))
	require.NoError(t, outbox.Enqueue(ctx, future))

	due, err := outbox.DueMessages(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, pending.ID, due[0].ID)
	assert.Equal(t, []string{"Pay rent", "monthly", "2025-03-01 09:00"}, due[0].Variables)

	require.NoError(t, outbox.MarkSent(ctx, pending.ID, now, ""))
	due, err = outbox.DueMessages(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, due)

	// Cancelling the future message keeps it out of any later dispatch.
	cancelled, err := outbox.CancelByReminder(ctx, "rem-2", now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cancelled)

	due, err = outbox.DueMessages(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestSweepWatermark(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	outbox := NewOutboxStore(db)
	ctx := context.Background()

	wm, err := outbox.Watermark(ctx)
	require.NoError(t, err)
	assert.True(t, wm.IsZero())

	mark := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, outbox.SetWatermark(ctx, mark))

	wm, err = outbox.Watermark(ctx)
	require.NoError(t, err)
	assert.True(t, wm.Equal(mark))

	// Advancing overwrites the single row.
	require.NoError(t, outbox.SetWatermark(ctx, mark.Add(time.Minute)))
	wm, err = outbox.Watermark(ctx)
	require.NoError(t, err)
	assert.True(t, wm.Equal(mark.Add(time.Minute)))
}
