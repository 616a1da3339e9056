// Package cli — командная строка консьюмера: разбор выбора топиков и коды выхода.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Gunvolt24/kafka_consumer/internal/domain"
	"github.com/Gunvolt24/kafka_consumer/internal/subscription"
)

// Коды выхода процесса.
const (
	ExitOK    = 0
	ExitUsage = 1
	ExitFatal = 2
)

const usageLine = "Usage: kafka-consumer --topic=<name> | --all-topics"

// Runner — запуск приложения с разобранным выбором топиков.
type Runner func(ctx context.Context, sel domain.Selection) error

// NewCommand — корневая команда kafka-consumer.
func NewCommand(run Runner) *cobra.Command {
	var (
		topic string
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "kafka-consumer",
		Short: "Consume Kafka topics and dispatch messages to registered handlers",
		Long: `kafka-consumer reads messages from Kafka, routes each one to the first
handler registered for its topic and commits the offset after the handler succeeds.

Run one process per topic with --topic=<name>, or everything at once with --all-topics.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), usageLine)
				return fmt.Errorf("%w: unexpected arguments %v", domain.ErrUsage, args)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel := domain.Selection{Topic: topic, All: all}
			if err := sel.Validate(); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), usageLine)
				return err
			}
			return run(cmd.Context(), sel)
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "consume a single topic (one process per topic)")
	cmd.Flags().BoolVar(&all, "all-topics", false, "consume every registered topic (local/dev)")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		fmt.Fprintln(c.OutOrStdout(), usageLine)
		return fmt.Errorf("%w: %v", domain.ErrUsage, err)
	})

	return cmd
}

// Execute — выполняет команду с аргументами args и возвращает код выхода.
// Ошибки, кроме ошибок использования, пишутся в errOut.
func Execute(ctx context.Context, args []string, out, errOut io.Writer, run Runner) int {
	cmd := NewCommand(run)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	err := cmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, domain.ErrUsage) {
		fmt.Fprintf(errOut, "kafka-consumer: %v\n", err)
	}
	return ExitCode(err)
}

// ExitCode — nil → 0; ошибка выбора топиков → 1; любой фатальный сбой → 2.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, domain.ErrUsage), errors.Is(err, subscription.ErrNoTopics):
		return ExitUsage
	default:
		return ExitFatal
	}
}
