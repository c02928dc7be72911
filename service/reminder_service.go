// file: service/reminder_service.go

package service

import (
	"context"
	"encoding/json"
	"time"

	"echotrace-api/logger"
	"echotrace-api/model"
	"echotrace-api/repository"

	"github.com/redis/go-redis/v9"
)

// ReminderTopic is the redis pub/sub channel reminder messages are
// published to and streamed from.
const ReminderTopic = "reminders"

const dailyMessage = `Daily check-in :
- Did you fix any issue or bug today?
- Did you learn something worth noting down?`

const weeklyMessage = `Weekly reflection :
- What was the toughest problem you solved this week? Remember the approach?
- What do you want to improve next week?`

// ReminderService publishes periodic check-in prompts to the reminders
// topic. Messages are only sent while at least one user has reminders
// enabled.
type ReminderService struct {
	userRepo    repository.IUserRepository
	redisClient *redis.Client
}

func NewReminderService(userRepo repository.IUserRepository, redisClient *redis.Client) *ReminderService {
	return &ReminderService{userRepo: userRepo, redisClient: redisClient}
}

// Start runs the scheduler until the context is cancelled. Daily reminders
// fire at 20:00 local time; weekly ones on Monday at the same hour.
func (s *ReminderService) Start(ctx context.Context) {
	go s.runSchedule(ctx)
	logger.Log.Info("Reminder scheduler started")
}

func (s *ReminderService) runSchedule(ctx context.Context) {
	for {
		next := nextReminderTime(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if next.Weekday() == time.Monday {
			s.publish(ctx, "weekly", weeklyMessage)
		} else {
			s.publish(ctx, "daily", dailyMessage)
		}
	}
}

// nextReminderTime returns the next 20:00 strictly after now.
func nextReminderTime(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), 20, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s *ReminderService) publish(ctx context.Context, reminderType, message string) {
	users, err := s.userRepo.GetUsersWithRemindersEnabled()
	if err != nil {
		logger.Log.WithError(err).Error("Failed to look up reminder recipients")
		return
	}
	if len(users) == 0 {
		return
	}

	payload, err := json.Marshal(model.ReminderMessage{Type: reminderType, Message: message})
	if err != nil {
		return
	}

	if err := s.redisClient.Publish(ctx, ReminderTopic, payload).Err(); err != nil {
		logger.Log.WithError(err).Error("Failed to publish reminder")
		return
	}

	logger.Log.WithField("type", reminderType).Info("Reminder published")
}

// Subscribe opens a subscription on the reminders topic. The caller owns
// the returned PubSub and must close it.
func (s *ReminderService) Subscribe(ctx context.Context) *redis.PubSub {
	return s.redisClient.Subscribe(ctx, ReminderTopic)
}
