package logging

import (
	"regexp"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceparentRe = regexp.MustCompile(`^([0-9a-f]{2})-([0-9a-f]{32})-([0-9a-f]{16})-([0-9a-f]{2})$`)

const zeroTraceID = "00000000000000000000000000000000"

// traceContext is the parsed form of a traceparent header.
type traceContext struct {
	TraceID string
	SpanID  string
	Sampled bool
}

// parseTraceparent returns the trace context carried by header.
// Version ff and the all-zero trace id are invalid in W3C Trace Context.
func parseTraceparent(header string) (traceContext, bool) {
	m := traceparentRe.FindStringSubmatch(header)
	if len(m) != 5 || m[1] == "ff" || m[2] == zeroTraceID {
		return traceContext{}, false
	}
	return traceContext{
		TraceID: m[2],
		SpanID:  m[3],
		Sampled: m[4] == "01",
	}, true
}

func loggerWithTrace(base *zap.Logger, tc traceContext, hasTrace bool, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	var fields []zap.Field
	if hasTrace {
		fields = append(fields,
			zap.String("traceId", tc.TraceID),
			zap.String("spanId", tc.SpanID),
			zap.Bool("traceSampled", tc.Sampled),
		)
	}
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}
