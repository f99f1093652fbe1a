package event

import "time"

const UserRegisteredDestination string = "user_registered"
const UserRegisteredConsumerNotification string = "user_registered_notification"

type UserRegisteredMessage struct {
	EventID      string    `json:"event_id"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Mobile       string    `json:"mobile"`
	RegisteredAt time.Time `json:"registered_at"`
}
