package domain

import "errors"

// ErrUsage — неверный выбор топиков в командной строке.
var ErrUsage = errors.New("exactly one of --topic=<name> or --all-topics must be given")

// Selection — выбор топиков, заданный оператором при старте.
// Topic — режим одного топика (масштабирование по топику), All — все топики (локально/dev).
type Selection struct {
	Topic string
	All   bool
}

// AllTopics — выбор всех зарегистрированных топиков.
func AllTopics() Selection { return Selection{All: true} }

// SingleTopic — выбор одного топика по имени.
func SingleTopic(name string) Selection { return Selection{Topic: name} }

// Validate — ровно один режим должен быть задан.
func (s Selection) Validate() error {
	if s.All == (s.Topic != "") {
		return ErrUsage
	}
	return nil
}

func (s Selection) String() string {
	if s.All {
		return "all-topics"
	}
	return "topic=" + s.Topic
}
