package franz

import (
	"context"
	"fmt"
	"strings"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/Gunvolt24/kafka_consumer/internal/ports"
)

// logBridge — kgo.Logger поверх ports.Logger.
type logBridge struct {
	log ports.Logger
}

func (logBridge) Level() kgo.LogLevel { return kgo.LogLevelInfo }

func (b logBridge) Log(level kgo.LogLevel, msg string, keyvals ...any) {
	line := "franz: " + msg + formatKeyvals(keyvals)
	ctx := context.Background()

	switch level {
	case kgo.LogLevelError:
		b.log.Errorf(ctx, "%s", line)
	case kgo.LogLevelWarn:
		b.log.Warnf(ctx, "%s", line)
	case kgo.LogLevelInfo:
		b.log.Infof(ctx, "%s", line)
	default:
		b.log.Debugf(ctx, "%s", line)
	}
}

func formatKeyvals(keyvals []any) string {
	if len(keyvals) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", keyvals[i], keyvals[i+1])
	}
	return sb.String()
}
