package payment

import "errors"

var (
	// ErrCheckoutFailed возвращается, когда шлюз не создал платежную сессию
	ErrCheckoutFailed = errors.New("payment: checkout session creation failed")

	// ErrInvalidSignature возвращается при неверной подписи webhook
	ErrInvalidSignature = errors.New("payment: invalid webhook signature")

	// ErrInvalidPayload возвращается, когда событие не удалось разобрать
	ErrInvalidPayload = errors.New("payment: invalid webhook payload")

	// ErrIgnoredEvent возвращается для событий, которые сервис не обрабатывает
	ErrIgnoredEvent = errors.New("payment: event ignored")
)
