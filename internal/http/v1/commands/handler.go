package commands

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/personavault/bridge/internal/command"
	applog "github.com/personavault/bridge/internal/platform/logging"
	"github.com/personavault/bridge/internal/platform/timeutil"
	backendsvc "github.com/personavault/bridge/internal/service/backend"
)

// Register wires command routes into the provided API router.
func Register(api huma.API, registry *command.Registry) {
	huma.Register(api, huma.Operation{
		OperationID: "list-commands",
		Method:      http.MethodGet,
		Path:        "/commands",
		Summary:     "List commands",
		Description: "Returns the names of all commands the UI can invoke.",
		Tags:        []string{"Commands"},
	}, func(_ context.Context, _ *struct{}) (*ListOutput, error) {
		names := registry.Names()
		return &ListOutput{Body: ListData{Commands: names, Count: len(names)}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "invoke-command",
		Method:      http.MethodPost,
		Path:        "/commands/{name}",
		Summary:     "Invoke a command",
		Description: "Runs the named command and returns its text result. Backend failures are 502 problems.",
		Tags:        []string{"Commands"},
	}, func(ctx context.Context, input *InvokeInput) (*InvokeOutput, error) {
		start := time.Now()
		ctx = applog.WithLogger(ctx, applog.LoggerFromContext(ctx).With(zap.String("command", input.Name)))
		result, err := registry.Invoke(ctx, input.Name)
		if err != nil {
			return nil, mapInvokeError(ctx, err, time.Since(start))
		}
		applog.LogInfo(ctx, "command invoked",
			zap.Int("bytes", len(result)),
			zap.Duration("duration", time.Since(start)),
		)
		return &InvokeOutput{Body: Invocation{
			Command:     input.Name,
			Result:      result,
			CompletedAt: timeutil.Now(),
		}}, nil
	})
}

// mapInvokeError expects ctx to carry the command-scoped logger.
func mapInvokeError(ctx context.Context, err error, elapsed time.Duration) error {
	fields := []zap.Field{zap.Duration("duration", elapsed)}

	if errors.Is(err, command.ErrUnknownCommand) {
		applog.LogWarn(ctx, "unknown command", fields...)
		return huma.Error404NotFound("command not found")
	}

	var backendErr *backendsvc.Error
	if errors.As(err, &backendErr) {
		fields = append(fields, zap.String("kind", string(backendErr.Kind)))
		if errors.Is(err, context.Canceled) {
			applog.LogInfo(ctx, "command cancelled by caller", fields...)
		} else {
			applog.LogWarn(ctx, "command failed", append(fields, zap.Error(err))...)
		}
		return huma.Error502BadGateway(backendErr.Error(), &huma.ErrorDetail{
			Location: "backend." + string(backendErr.Kind),
			Message:  backendErr.Message(),
		})
	}

	applog.LogError(ctx, "command failed", err, fields...)
	return huma.Error500InternalServerError("command failed", &huma.ErrorDetail{
		Location: "command",
		Message:  err.Error(),
	})
}
