package appcontext

import (
	"context"

	"github.com/sirupsen/logrus"
)

type contextId int

const (
	intervalKeyId contextId = iota
	sweepIdKeyId
	fileKeyId
	requestIdKeyId
)

func WithRequestId(ctx context.Context, requestId string) context.Context {
	return context.WithValue(ctx, requestIdKeyId, requestId)
}

func WithSweepId(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, sweepIdKeyId, id)
}

func WithInterval(ctx context.Context, interval string) context.Context {
	return context.WithValue(ctx, intervalKeyId, interval)
}

func WithFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, fileKeyId, path)
}

func LoggerFromContext(logger logrus.FieldLogger, ctx context.Context) logrus.FieldLogger {
	if ctx == nil {
		return logger
	}

	result := logger

	if ctxInterval, ok := ctx.Value(intervalKeyId).(string); ok && ctxInterval != "" {
		result = result.WithField("interval", ctxInterval)
	}

	if ctxSweepId, ok := ctx.Value(sweepIdKeyId).(int64); ok && ctxSweepId != 0 {
		result = result.WithField("sweep_id", ctxSweepId)
	}

	if ctxFile, ok := ctx.Value(fileKeyId).(string); ok && ctxFile != "" {
		result = result.WithField("file", ctxFile)
	}

	if ctxRequestId, ok := ctx.Value(requestIdKeyId).(string); ok && ctxRequestId != "" {
		result = result.WithField("request_id", ctxRequestId)
	}

	return result
}
