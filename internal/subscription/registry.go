package subscription

import (
	"errors"

	"github.com/Gunvolt24/kafka_consumer/internal/domain"
	"github.com/Gunvolt24/kafka_consumer/internal/ports"
)

// ErrNoTopics — выбор топиков не совпал ни с одной привязкой (ошибка конфигурации).
var ErrNoTopics = errors.New("no subscriptions match the topic selection")

// Registry — упорядоченный набор привязок топик → обработчик.
// Собирается один раз при старте и далее только читается.
type Registry struct {
	subs []ports.Subscription
}

// NewRegistry — порядок аргументов и есть порядок регистрации (tie-break при диспетчеризации).
func NewRegistry(subs ...ports.Subscription) *Registry {
	cp := make([]ports.Subscription, 0, len(subs))
	for _, s := range subs {
		if s != nil {
			cp = append(cp, s)
		}
	}
	return &Registry{subs: cp}
}

// Len — число привязок.
func (r *Registry) Len() int { return len(r.subs) }

// ResolveTopicNames — список топиков для подписки.
//   - один топик: объявленные топики привязок, которые обслуживают sel.Topic;
//   - все топики: объявленные топики всех привязок.
//
// Повторы схлопываются с сохранением порядка. Пустой результат — ошибка конфигурации,
// решение о ней принимает вызывающий.
func (r *Registry) ResolveTopicNames(sel domain.Selection) []string {
	seen := make(map[string]struct{}, len(r.subs))
	topics := make([]string, 0, len(r.subs))

	for _, s := range r.subs {
		if !sel.All && !s.OwnsTopic(sel.Topic) {
			continue
		}
		name := s.TopicName()
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		topics = append(topics, name)
	}
	return topics
}

// Match — первая в порядке регистрации привязка, обслуживающая топик.
func (r *Registry) Match(topic string) (ports.Subscription, bool) {
	for _, s := range r.subs {
		if s.OwnsTopic(topic) {
			return s, true
		}
	}
	return nil, false
}
