package event

import "time"

const UserLoggedInDestination string = "user_logged_in"
const UserLoggedInConsumerNotification string = "user_logged_in_notification"

type UserLoggedInMessage struct {
	EventID  string    `json:"event_id"`
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	LoggedAt time.Time `json:"logged_at"`
}
