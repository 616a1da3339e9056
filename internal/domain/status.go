package domain

import "fmt"

// Status — код результата одного вызова Receive в терминах брокера.
// Отрицательные значения — локальные коды клиента (нумерация librdkafka),
// положительные — коды ошибок протокола Kafka, пришедшие от брокера.
type Status int

const (
	StatusOK             Status = 0
	StatusPartitionEOF   Status = -191
	StatusTimedOut       Status = -185
	StatusAllBrokersDown Status = -187
	StatusUnknown        Status = -1
)

// String — человекочитаемое описание кода.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "Success"
	case StatusPartitionEOF:
		return "Broker: No more messages"
	case StatusTimedOut:
		return "Local: Timed out"
	case StatusAllBrokersDown:
		return "Local: All broker connections are down"
	case StatusUnknown:
		return "Local: Unknown error"
	}
	if s > 0 {
		return fmt.Sprintf("Broker: error code %d", int(s))
	}
	return fmt.Sprintf("Local: error code %d", int(s))
}

// Outcome — семантический результат Receive после классификации.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeEndOfPartition
	OutcomeTimeout
	OutcomeAllBrokersDown
	OutcomeOther
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeEndOfPartition:
		return "end_of_partition"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeAllBrokersDown:
		return "all_brokers_down"
	default:
		return "other"
	}
}

// Classify сводит код брокера к одному из исходов.
// Всё, что не распознано явно, — OutcomeOther.
func Classify(s Status) Outcome {
	switch s {
	case StatusOK:
		return OutcomeOK
	case StatusPartitionEOF:
		return OutcomeEndOfPartition
	case StatusTimedOut:
		return OutcomeTimeout
	case StatusAllBrokersDown:
		return OutcomeAllBrokersDown
	default:
		return OutcomeOther
	}
}
