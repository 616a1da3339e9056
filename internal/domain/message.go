package domain

import "time"

// Message — одно полученное из брокера сообщение (или результат Receive с ошибкой).
// После получения не изменяется; живёт ровно одну итерацию цикла.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Payload   []byte
	Headers   map[string]string
	Time      time.Time

	// Status — код результата Receive; ErrText заполнен только для ошибок.
	Status  Status
	ErrText string

	// Raw — исходная запись драйвера (kafka.Message, *kgo.Record), нужна для коммита.
	Raw any
}

// NewStatusMessage — сообщение без полезной нагрузки, несущее только код результата.
func NewStatusMessage(status Status, errText string) *Message {
	return &Message{Status: status, ErrText: errText}
}

// ErrorString — текст ошибки; для успешных сообщений пустой.
func (m *Message) ErrorString() string {
	if m == nil || m.Status == StatusOK {
		return ""
	}
	if m.ErrText != "" {
		return m.ErrText
	}
	return m.Status.String()
}
