package audit

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// LoginEvent represents an authentication attempt.
type LoginEvent struct {
	Login        string
	ClientIP     string
	Succeeded    bool
	ErrorMessage string
}

func (e LoginEvent) MessageID() string {
	return "login"
}

func (e LoginEvent) Message() string {
	if e.Succeeded {
		return fmt.Sprintf("%s successfully logged in", e.Login)
	}
	msg := fmt.Sprintf("%s failed to log in", e.Login)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e LoginEvent) Fields() logrus.Fields {
	return logrus.Fields{
		"login":     e.Login,
		"client_ip": e.ClientIP,
	}
}

func (e LoginEvent) Success() bool {
	return e.Succeeded
}

// DeniedEvent represents a permission check that refused an action.
type DeniedEvent struct {
	UserID     string
	Login      string
	Permission string
	Action     string
}

func (e DeniedEvent) MessageID() string {
	return "denied"
}

func (e DeniedEvent) Message() string {
	return fmt.Sprintf("%s does not hold %s required for %s", e.Login, e.Permission, e.Action)
}

func (e DeniedEvent) Fields() logrus.Fields {
	return logrus.Fields{
		"user_id":    e.UserID,
		"login":      e.Login,
		"permission": e.Permission,
		"action":     e.Action,
	}
}

func (e DeniedEvent) Success() bool {
	return false
}

// ChangeEvent represents a record lifecycle change (create, update, delete).
type ChangeEvent struct {
	UserID       string
	Login        string
	Operation    string
	RecordID     string
	Succeeded    bool
	ErrorMessage string
}

func (e ChangeEvent) MessageID() string {
	return e.Operation
}

func (e ChangeEvent) Message() string {
	if e.Succeeded {
		return fmt.Sprintf("%s %sd record %s", e.Login, e.Operation, e.RecordID)
	}
	msg := fmt.Sprintf("%s failed to %s record %s", e.Login, e.Operation, e.RecordID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ChangeEvent) Fields() logrus.Fields {
	return logrus.Fields{
		"user_id":   e.UserID,
		"login":     e.Login,
		"record_id": e.RecordID,
		"operation": e.Operation,
	}
}

func (e ChangeEvent) Success() bool {
	return e.Succeeded
}
