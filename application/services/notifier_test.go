package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"wordaday-backend/domain/notifications"
	"wordaday-backend/domain/users"
	"wordaday-backend/domain/words"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type notifierFixture struct {
	profiles *fakeProfileRepo
	records  *fakeRecordRepo
	logs     *fakeLogRepo
	push     *fakePush
	email    *fakeEmail
	sms      *fakeSMS
	metrics  *fakeMetrics
	notifier *Notifier
}

func newNotifierFixture() *notifierFixture {
	f := &notifierFixture{
		profiles: newFakeProfileRepo(),
		records:  newFakeRecordRepo(),
		logs:     &fakeLogRepo{},
		push:     &fakePush{},
		email:    &fakeEmail{},
		sms:      &fakeSMS{},
		metrics:  newFakeMetrics(),
	}
	f.notifier = NewNotifier(f.profiles, f.records, f.logs, f.push, f.email, f.sms, f.metrics, zap.NewNop())
	f.notifier.now = func() time.Time { return fixedNow }
	return f
}

func (f *notifierFixture) addSubscriber(userID, hour string, channels ...string) *users.Profile {
	p := users.DefaultProfile(userID)
	p.NotificationPreferences.DailyWord.Time = hour
	p.NotificationPreferences.DailyWord.Channels = channels
	p.ContactInfo = users.ContactInfo{
		ExpoPushToken: "ExponentPushToken[" + userID + "]",
		Email:         userID + "@example.com",
		PhoneNumber:   "+15550100",
	}
	f.profiles.profiles[userID] = p
	return p
}

func (f *notifierFixture) addTodaysWord(t *testing.T, userID string) {
	t.Helper()
	require.NoError(t, f.records.Put(context.Background(),
		storedRecord(userID, fixedToday, "luminous", words.StatusPending)))
}

func TestDispatchDueSendsAtPreferredHour(t *testing.T) {
	f := newNotifierFixture()
	f.addSubscriber("u1", "12:00", users.ChannelPush)
	f.addTodaysWord(t, "u1")

	report, err := f.notifier.DispatchDue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Matched)
	assert.Equal(t, 1, report.Sent)
	assert.Zero(t, report.Failed)
	require.Len(t, f.push.tokens, 1)
	assert.Equal(t, "Word of the Day: luminous", f.push.titles[0])

	require.Len(t, f.logs.logs, 1)
	assert.Equal(t, notifications.StatusDelivered, f.logs.logs[0].Status)
	assert.Equal(t, users.ChannelPush, f.logs.logs[0].Channel)
}

func TestDispatchDueSkipsOtherHours(t *testing.T) {
	f := newNotifierFixture()
	f.addSubscriber("u1", "08:00", users.ChannelPush)
	f.addTodaysWord(t, "u1")

	report, err := f.notifier.DispatchDue(context.Background())
	require.NoError(t, err)

	assert.Zero(t, report.Matched)
	assert.Empty(t, f.push.tokens)
}

func TestDispatchDueSkipsDisabledUsers(t *testing.T) {
	f := newNotifierFixture()
	p := f.addSubscriber("u1", "12:00", users.ChannelPush)
	p.NotificationPreferences.DailyWord.Enabled = false
	f.profiles.profiles["u1"] = p
	f.addTodaysWord(t, "u1")

	report, err := f.notifier.DispatchDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Matched)
}

func TestDispatchDueMultipleChannels(t *testing.T) {
	f := newNotifierFixture()
	f.addSubscriber("u1", "12:00", users.ChannelPush, users.ChannelEmail, users.ChannelSMS)
	f.addTodaysWord(t, "u1")

	report, err := f.notifier.DispatchDue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Sent)
	assert.Len(t, f.push.tokens, 1)
	assert.Equal(t, []string{"u1@example.com"}, f.email.to)
	assert.Equal(t, []string{"+15550100"}, f.sms.phones)
	assert.Len(t, f.logs.logs, 3)
}

func TestDispatchDueChannelFailureIsIsolated(t *testing.T) {
	f := newNotifierFixture()
	f.addSubscriber("u1", "12:00", users.ChannelPush, users.ChannelEmail)
	f.addTodaysWord(t, "u1")
	f.push.err = errors.New("bad token")

	report, err := f.notifier.DispatchDue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Sent, "email still goes out when push fails")
	assert.Equal(t, 1, report.Failed)

	var failed *notifications.Log
	for i := range f.logs.logs {
		if f.logs.logs[i].Status == notifications.StatusFailed {
			failed = &f.logs.logs[i]
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, users.ChannelPush, failed.Channel)
	assert.Equal(t, "bad token", failed.ErrorMessage)
}

func TestDispatchDueSkipsUsersWithoutTodaysWord(t *testing.T) {
	f := newNotifierFixture()
	f.addSubscriber("u1", "12:00", users.ChannelPush)

	report, err := f.notifier.DispatchDue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Matched)
	assert.Equal(t, 1, report.Skipped)
	assert.Zero(t, report.Sent)
}

func TestDispatchDueSkipsChannelsWithoutEndpoint(t *testing.T) {
	f := newNotifierFixture()
	p := f.addSubscriber("u1", "12:00", users.ChannelPush, users.ChannelEmail)
	p.ContactInfo.ExpoPushToken = ""
	f.profiles.profiles["u1"] = p
	f.addTodaysWord(t, "u1")

	report, err := f.notifier.DispatchDue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Sent)
	assert.Empty(t, f.push.tokens)
	assert.Len(t, f.email.to, 1)
}

func TestEmailBodyRendersWordDetails(t *testing.T) {
	record := storedRecord("u1", fixedToday, "luminous", words.StatusPending)
	record.Pronunciation = "LOO-muh-nuhs"
	record.Synonyms = []string{"radiant", "bright"}

	body := EmailBody(record)
	assert.Contains(t, body, "luminous")
	assert.Contains(t, body, "LOO-muh-nuhs")
	assert.Contains(t, body, "radiant, bright")
	assert.Contains(t, body, "onewordadayapp://word/"+fixedToday)
}
