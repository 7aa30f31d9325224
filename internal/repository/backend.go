package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/client"
	"github.com/noah-isme/study-dashboard/internal/models"
)

// Backend is the subset of the REST client the repositories depend on.
type Backend interface {
	Get(ctx context.Context, route client.Route, out interface{}) error
	Post(ctx context.Context, route client.Route, body, out interface{}) error
	Put(ctx context.Context, route client.Route, body, out interface{}) error
	Delete(ctx context.Context, route client.Route, out interface{}) error
}

// logFailure records a failed backend call and hands the error back unchanged.
func logFailure(logger zerolog.Logger, err error, msg string) error {
	if err != nil {
		logger.Error().Err(err).Msg(msg)
	}
	return err
}

// actionAck is the acknowledgement body of action endpoints. A 2xx reply
// counts as success unless the body says "success": false.
type actionAck struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

func (a actionAck) result() models.ActionResult {
	return models.ActionResult{Success: a.Success == nil || *a.Success, Message: a.Message}
}
