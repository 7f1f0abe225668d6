// Package notify delivers user-facing notifications. Components receive a
// Notifier at construction instead of calling a global toast function.
package notify

import (
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// MessageCarrier is implemented by errors that hold a server-provided message.
type MessageCarrier interface {
	ServerMessage() string
}

// Message picks the text shown to the user for err: the server's message if
// the error carries one, else the error text, else fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	var carrier MessageCarrier
	if errors.As(err, &carrier) {
		if msg := strings.TrimSpace(carrier.ServerMessage()); msg != "" {
			return msg
		}
	}

	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}

	return fallback
}

// LogNotifier writes notifications to the logger.
type LogNotifier struct{}

func (LogNotifier) Success(message string) {
	log.WithField("level", LevelSuccess).Infof("✅ %s", message)
}

func (LogNotifier) Error(message string) {
	log.WithField("level", LevelError).Errorf("❌ %s", message)
}

func (LogNotifier) Info(message string) {
	log.WithField("level", LevelInfo).Infof("ℹ️ %s", message)
}

// Multi fans every notification out to all notifiers.
type Multi []Notifier

func (m Multi) Success(message string) {
	for _, n := range m {
		n.Success(message)
	}
}

func (m Multi) Error(message string) {
	for _, n := range m {
		n.Error(message)
	}
}

func (m Multi) Info(message string) {
	for _, n := range m {
		n.Info(message)
	}
}
