package event

const UserRegisteredTopic = "user_registered"
const UserRegisteredConsumerNotification = "user_registered_notification"

// UserRegisteredMessage is published once a registration OTP is confirmed
// and the account is stored.
type UserRegisteredMessage struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}
