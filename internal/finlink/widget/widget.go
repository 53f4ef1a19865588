// Package widget adapts the external link widget. The controller hands a link
// token to a Provider and learns the outcome through Callbacks; the provider
// only decides how the institution login step is sourced.
package widget

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/finlink/pkg/linkapi"
)

// Widget event names, as reported to OnEvent.
const (
	EventOpen    = "OPEN"
	EventHandoff = "HANDOFF"
	EventExit    = "EXIT"
	EventError   = "ERROR"
)

// Callbacks are supplied by the controller for one Open call.
type Callbacks struct {
	OnSuccess func(ctx context.Context, publicToken string, md linkapi.LinkMetadata)
	// OnExit err is nil when the user simply closed the widget.
	OnExit func(ctx context.Context, err *WidgetError, md linkapi.LinkMetadata)
	// OnEvent is informational only.
	OnEvent func(ctx context.Context, name string, md linkapi.LinkMetadata)
}

func (cb Callbacks) success(ctx context.Context, publicToken string, md linkapi.LinkMetadata) {
	if cb.OnSuccess != nil {
		cb.OnSuccess(ctx, publicToken, md)
	}
}

func (cb Callbacks) exit(ctx context.Context, err *WidgetError, md linkapi.LinkMetadata) {
	if cb.OnExit != nil {
		cb.OnExit(ctx, err, md)
	}
}

func (cb Callbacks) event(ctx context.Context, name string, md linkapi.LinkMetadata) {
	if cb.OnEvent != nil {
		cb.OnEvent(ctx, name, md)
	}
}

// WidgetError is reported by the widget when the user could not finish.
type WidgetError struct {
	Code    string `json:"error_code"`
	Message string `json:"error_message"`
	// DisplayMessage is safe to show to the user.
	DisplayMessage string `json:"display_message,omitempty"`
}

func (e *WidgetError) Error() string {
	return fmt.Sprintf("widget: %s: %s", e.Code, e.Message)
}

// Provider opens the widget for one link token.
type Provider interface {
	Name() string
	// Open may call back synchronously before returning, or later from
	// another goroutine.
	Open(ctx context.Context, linkToken string, cb Callbacks) error
}
