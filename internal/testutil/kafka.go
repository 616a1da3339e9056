//go:build integration

package testutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// UniqueTopicAndGroup — уникальные topic/group на основе базового префикса.
// Пример: base="consumer-itc" → "consumer-itc-20250826T010203123456789" и "...-group".
func UniqueTopicAndGroup(base string) (topic, group string) {
	s := strings.ReplaceAll(time.Now().UTC().Format("20060102T150405.000000000"), ".", "")
	topic = fmt.Sprintf("%s-%s", base, s)
	return topic, topic + "-group"
}

// EnsureTopics — создаёт топики с одной партицией (существующие не ошибка)
// и ждёт их появления в метаданных.
// broker: "host:port", "PLAINTEXT://host:port" или список через запятую (берётся первый).
func EnsureTopics(ctx context.Context, broker string, topics ...string) error {
	addr := firstBootstrap(broker)

	conn, err := kafka.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		return err
	}
	admin, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return err
	}
	defer admin.Close()

	cfgs := make([]kafka.TopicConfig, 0, len(topics))
	for _, t := range topics {
		cfgs = append(cfgs, kafka.TopicConfig{Topic: t, NumPartitions: 1, ReplicationFactor: 1})
	}
	if err := admin.CreateTopics(cfgs...); err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return err
	}

	for _, t := range topics {
		if err := waitTopicReady(ctx, addr, t); err != nil {
			return err
		}
	}
	return nil
}

// EnsureTopic — EnsureTopics для одного топика.
func EnsureTopic(ctx context.Context, broker, topic string) error {
	return EnsureTopics(ctx, broker, topic)
}

// Produce — синхронно пишет payload'ы в топик (acks=all), по порядку.
func Produce(ctx context.Context, brokers []string, topic string, payloads ...string) error {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.LeastBytes{},
	}
	defer w.Close()

	msgs := make([]kafka.Message, 0, len(payloads))
	for _, p := range payloads {
		msgs = append(msgs, kafka.Message{Value: []byte(p)})
	}
	return w.WriteMessages(ctx, msgs...)
}

// firstBootstrap — первый адрес из bootstrap-строки без схемы "PLAINTEXT://".
func firstBootstrap(raw string) string {
	first := strings.TrimSpace(strings.Split(raw, ",")[0])
	if strings.Contains(first, "://") {
		if u, err := url.Parse(first); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return first
}

func waitTopicReady(ctx context.Context, broker, topic string) error {
	deadline := time.Now().Add(5 * time.Second)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c, err := kafka.DialContext(ctx, "tcp", broker)
		if err == nil {
			parts, perr := c.ReadPartitions(topic)
			_ = c.Close()
			if perr == nil && len(parts) > 0 {
				return nil
			}
			err = perr
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("topic %q not ready: %w", topic, err)
		}
		time.Sleep(200 * time.Millisecond)
	}
}
