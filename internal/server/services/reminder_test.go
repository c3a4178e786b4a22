package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orionapp/companion/internal/common"
)

func newReminderServiceForTest() (*ReminderService, *fakeRepoManager) {
	rm := newFakeRepoManager()
	return NewReminderService(nil, rm), rm
}

func TestReminderCreate(t *testing.T) {
	svc, _ := newReminderServiceForTest()

	rem, err := svc.Create(context.Background(), "u1", ReminderInput{
		Title: "charge robot", RemindAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "none", rem.Repeat)
	assert.False(t, rem.Done)
}

func TestReminderCreate_Validation(t *testing.T) {
	svc, _ := newReminderServiceForTest()
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", ReminderInput{RemindAt: time.Now()})
	_, ok := common.AsValidation(err)
	assert.True(t, ok)

	_, err = svc.Create(ctx, "u1", ReminderInput{Title: "x"})
	_, ok = common.AsValidation(err)
	assert.True(t, ok)

	_, err = svc.Create(ctx, "u1", ReminderInput{
		Title: "x", RemindAt: time.Now(), Repeat: "hourly",
	})
	_, ok = common.AsValidation(err)
	assert.True(t, ok)
}

func TestReminderList_SortedBySchedule(t *testing.T) {
	svc, _ := newReminderServiceForTest()
	ctx := context.Background()

	later := time.Now().Add(2 * time.Hour)
	sooner := time.Now().Add(time.Hour)
	_, err := svc.Create(ctx, "u1", ReminderInput{Title: "later", RemindAt: later})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u1", ReminderInput{Title: "sooner", RemindAt: sooner})
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "sooner", list[0].Title)
}

func TestReminderUpdate_OwnerScoped(t *testing.T) {
	svc, _ := newReminderServiceForTest()
	ctx := context.Background()

	rem, err := svc.Create(ctx, "u1", ReminderInput{Title: "x", RemindAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	in := ReminderInput{Title: "renamed", RemindAt: rem.RemindAt, Repeat: "daily", Done: true}
	_, err = svc.Update(ctx, "u2", rem.ID, in)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	updated, err := svc.Update(ctx, "u1", rem.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "daily", updated.Repeat)
	assert.True(t, updated.Done)
}

func TestReminderDelete(t *testing.T) {
	svc, _ := newReminderServiceForTest()
	ctx := context.Background()

	rem, err := svc.Create(ctx, "u1", ReminderInput{Title: "x", RemindAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, "u2", rem.ID), common.ErrorNotFound)
	assert.NoError(t, svc.Delete(ctx, "u1", rem.ID))
}
