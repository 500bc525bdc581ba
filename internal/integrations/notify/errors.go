package notify

import "errors"

var (
	// ErrSendFailed возвращается, когда Twilio не принял сообщение
	ErrSendFailed = errors.New("notify client: failed to send message")

	// ErrInvalidRecipient возвращается при некорректном номере получателя
	ErrInvalidRecipient = errors.New("notify client: invalid recipient phone")
)
