package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wordaday-backend/application/ports"
	"wordaday-backend/domain/notifications"
	"wordaday-backend/domain/users"
	"wordaday-backend/domain/words"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DispatchReport summarizes one notification run.
type DispatchReport struct {
	Matched int `json:"matched"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Notifier fans today's word out to users whose preferred hour matches the
// current UTC hour, over their enabled channels.
type Notifier struct {
	profiles ports.ProfileRepository
	records  ports.WordRecordRepository
	logs     ports.NotificationLogRepository
	push     ports.PushSender
	email    ports.EmailSender
	sms      ports.SMSSender
	metrics  ports.MetricsEmitter
	logger   *zap.Logger
	now      func() time.Time
}

// NewNotifier creates the notification dispatcher.
func NewNotifier(
	profiles ports.ProfileRepository,
	records ports.WordRecordRepository,
	logs ports.NotificationLogRepository,
	push ports.PushSender,
	email ports.EmailSender,
	sms ports.SMSSender,
	metrics ports.MetricsEmitter,
	logger *zap.Logger,
) *Notifier {
	return &Notifier{
		profiles: profiles,
		records:  records,
		logs:     logs,
		push:     push,
		email:    email,
		sms:      sms,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// DispatchDue runs one hourly pass. Per-user and per-channel failures are
// isolated; one bad token never stops the run.
func (n *Notifier) DispatchDue(ctx context.Context) (*DispatchReport, error) {
	currentHour := n.now().UTC().Hour()
	today := n.now().UTC().Format(words.DateLayout)

	profiles, err := n.profiles.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	report := &DispatchReport{}
	for i := range profiles {
		profile := &profiles[i]
		if !profile.NotificationPreferences.DailyWord.Enabled {
			continue
		}
		if profile.DailyWordHour() != currentHour {
			continue
		}
		report.Matched++

		record, err := n.records.Get(ctx, profile.UserID, today)
		if err != nil || record == nil {
			n.logger.Info("No word to notify about",
				zap.String("userID", profile.UserID),
				zap.String("date", today),
				zap.Error(err),
			)
			report.Skipped++
			continue
		}

		sent, failed := n.sendAll(ctx, profile, record)
		report.Sent += sent
		report.Failed += failed
	}

	n.logger.Info("Notification dispatch completed",
		zap.Int("matched", report.Matched),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

// sendAll delivers over every enabled channel for the user.
func (n *Notifier) sendAll(ctx context.Context, profile *users.Profile, record *words.WordRecord) (sent, failed int) {
	type delivery struct {
		channel string
		send    func() error
	}

	var deliveries []delivery
	if profile.WantsDailyWord(users.ChannelPush) && profile.ContactInfo.ExpoPushToken != "" {
		deliveries = append(deliveries, delivery{users.ChannelPush, func() error {
			return n.sendPush(ctx, profile, record)
		}})
	}
	if profile.WantsDailyWord(users.ChannelEmail) && profile.ContactInfo.Email != "" {
		deliveries = append(deliveries, delivery{users.ChannelEmail, func() error {
			return n.email.SendEmail(ctx, profile.ContactInfo.Email, emailSubject(record), EmailBody(record))
		}})
	}
	if profile.WantsDailyWord(users.ChannelSMS) && profile.ContactInfo.PhoneNumber != "" {
		deliveries = append(deliveries, delivery{users.ChannelSMS, func() error {
			return n.sms.SendSMS(ctx, profile.ContactInfo.PhoneNumber, smsBody(record))
		}})
	}

	for _, d := range deliveries {
		err := d.send()
		status := notifications.StatusDelivered
		errMsg := ""
		if err != nil {
			status = notifications.StatusFailed
			errMsg = err.Error()
			failed++
			n.logger.Warn("Notification delivery failed",
				zap.String("userID", profile.UserID),
				zap.String("channel", d.channel),
				zap.Error(err),
			)
		} else {
			sent++
		}
		n.metrics.Count(ctx, "NotificationDelivery", 1, map[string]string{
			"Channel": d.channel,
			"Status":  status,
		})
		n.logDelivery(ctx, profile.UserID, record.Date, d.channel, status, errMsg)
	}
	return sent, failed
}

func (n *Notifier) sendPush(ctx context.Context, profile *users.Profile, record *words.WordRecord) error {
	body := record.Definition
	if len(body) > 100 {
		body = body[:100] + "..."
	}
	return n.push.SendPush(ctx, profile.ContactInfo.ExpoPushToken,
		"Word of the Day: "+record.Word,
		body,
		map[string]string{
			"screen": "TodaysWord",
			"wordId": record.WordID,
			"date":   record.Date,
		},
	)
}

func (n *Notifier) logDelivery(ctx context.Context, userID, date, channel, status, errMsg string) {
	log := &notifications.Log{
		LogID:        uuid.New().String(),
		UserID:       userID,
		Date:         date,
		Channel:      channel,
		Status:       status,
		ErrorMessage: errMsg,
		DeliveredAt:  time.Now().UTC(),
	}
	if err := n.logs.Put(ctx, log); err != nil {
		n.logger.Warn("Failed to write notification log",
			zap.String("userID", userID),
			zap.String("channel", channel),
			zap.Error(err),
		)
	}
}

func emailSubject(record *words.WordRecord) string {
	return "Word of the Day: " + record.Word
}

func smsBody(record *words.WordRecord) string {
	def := record.Definition
	if len(def) > 100 {
		def = def[:100] + "..."
	}
	return fmt.Sprintf("Word of the Day: %s\n\nMeaning: %s\n\nOpen the app to learn more!",
		strings.ToUpper(record.Word), def)
}

// EmailBody renders the daily word email.
func EmailBody(record *words.WordRecord) string {
	var sentences strings.Builder
	for i, s := range record.Sentences {
		fmt.Fprintf(&sentences, "<p>%d. %s</p>", i+1, s)
	}

	synonyms := ""
	if len(record.Synonyms) > 0 {
		synonyms = fmt.Sprintf(`<div class="section"><div class="section-title">Synonyms:</div><p>%s</p></div>`,
			strings.Join(record.Synonyms, ", "))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background: #4A90E2; color: white; padding: 20px; text-align: center; }
      .content { padding: 30px; background: #f9f9f9; }
      .word { font-size: 32px; font-weight: bold; color: #4A90E2; margin-bottom: 10px; }
      .pronunciation { font-style: italic; color: #666; margin-bottom: 20px; }
      .definition { font-size: 18px; margin-bottom: 20px; }
      .section { margin: 20px 0; }
      .section-title { font-weight: bold; color: #4A90E2; margin-bottom: 10px; }
      .button { display: inline-block; padding: 12px 30px; background: #4A90E2;
               color: white; text-decoration: none; border-radius: 5px; margin-top: 20px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header"><h1>One Word A Day</h1></div>
      <div class="content">
        <div class="word">%s</div>
        <div class="pronunciation">%s</div>
        <div class="definition">%s</div>
        <div class="section">
          <div class="section-title">Example Sentences:</div>
          %s
        </div>
        %s
        <a href="onewordadayapp://word/%s" class="button">Open in App</a>
      </div>
    </div>
  </body>
</html>`, record.Word, record.Pronunciation, record.Definition, sentences.String(), synonyms, record.Date)
}
