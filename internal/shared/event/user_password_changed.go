package event

const UserPasswordChangedTopic = "user_password_changed"
const UserPasswordChangedConsumerNotification = "user_password_changed_notification"

type UserPasswordChangedMessage struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}
