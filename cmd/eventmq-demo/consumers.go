package main

import (
	"log/slog"

	"github.com/dmitrymomot/eventmq/core/eventmq"
	"github.com/dmitrymomot/eventmq/core/logger"
)

// consoleLog is read by the free-function consumers, which cannot close over state.
var consoleLog = logger.Discard()

func consumerA(msg string, _ *eventmq.Args) {
	consoleLog.Info("message received", logger.Handler("consumerA"), slog.String("payload", msg))
}

func consumerC(msg string, _ *eventmq.Args) {
	consoleLog.Info("message received", logger.Handler("consumerC"), slog.String("payload", msg))
}

func consumerD(msg string, _ *eventmq.Args) {
	consoleLog.Info("message received", logger.Handler("consumerD"), slog.String("payload", msg))
}

// auditor is subscribed by method; the queue does not keep it alive.
type auditor struct {
	name string
	log  *slog.Logger
}

func (a *auditor) OnMessage(msg string, _ *eventmq.Args) {
	a.log.Info("message audited", logger.Handler(a.name), slog.String("payload", msg))
}
