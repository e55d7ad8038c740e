package chat

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexswami/portfolio-server/internal/gemini"
)

// ActionStatus tracks the lifecycle of a dispatched side effect for UI
// feedback. Transitions are idle -> running -> completed -> idle; the final
// reset fires on a timer and is purely cosmetic.
type ActionStatus string

const (
	ActionIdle      ActionStatus = "idle"
	ActionRunning   ActionStatus = "running"
	ActionCompleted ActionStatus = "completed"
)

// Action is a closed set of side effects the model may request. Unrecognized
// function names parse to UnknownAction so the drop policy is an explicit
// branch rather than a silent fallthrough.
type Action interface {
	isAction()
}

// SendEmailAction requests delivery of a visitor message to the site owner.
type SendEmailAction struct {
	To         string
	Subject    string
	Body       string
	SenderName string
}

// UnknownAction preserves the name of an unrecognized request for logging.
type UnknownAction struct {
	Name string
}

func (SendEmailAction) isAction() {}
func (UnknownAction) isAction()   {}

// ParseAction maps a model function call onto the closed action set.
func ParseAction(call gemini.FunctionCall) Action {
	switch call.Name {
	case "sendEmail":
		return SendEmailAction{
			To:         call.Args["to"],
			Subject:    call.Args["subject"],
			Body:       call.Args["body"],
			SenderName: call.Args["senderName"],
		}
	default:
		return UnknownAction{Name: call.Name}
	}
}

// Dispatcher executes model-requested actions and owns the actionStatus
// lifecycle, including the delayed reset timer.
type Dispatcher struct {
	mu         sync.Mutex
	status     ActionStatus
	resetTimer *time.Timer

	notifier     Notifier
	contactEmail string
	resetDelay   time.Duration
}

// NewDispatcher creates a dispatcher. resetDelay controls how long the
// completed status lingers before reverting to idle.
func NewDispatcher(notifier Notifier, contactEmail string, resetDelay time.Duration) *Dispatcher {
	return &Dispatcher{
		status:       ActionIdle,
		notifier:     notifier,
		contactEmail: contactEmail,
		resetDelay:   resetDelay,
	}
}

// Status returns the current action lifecycle state.
func (d *Dispatcher) Status() ActionStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Dispatch executes one action and returns the confirmation text to append
// to the transcript. Unknown actions are dropped: empty text, nil error.
// Each call runs a full running -> completed lifecycle; a reset still
// scheduled from a previous action is cancelled first so overlapping resets
// cannot race.
func (d *Dispatcher) Dispatch(ctx context.Context, action Action) (string, error) {
	switch a := action.(type) {
	case SendEmailAction:
		return d.sendEmail(ctx, a)
	case UnknownAction:
		slog.Warn("Dropping unrecognized model action", "name", a.Name)
		return "", nil
	default:
		return "", fmt.Errorf("unhandled action type %T", action)
	}
}

func (d *Dispatcher) sendEmail(ctx context.Context, a SendEmailAction) (string, error) {
	d.transition(ActionRunning)

	to := a.To
	if to == "" {
		to = d.contactEmail
	}

	if err := d.notifier.Send(ctx, Email{To: to, Subject: a.Subject, Body: a.Body, SenderName: a.SenderName}); err != nil {
		d.transition(ActionIdle)
		return "", fmt.Errorf("send email: %w", err)
	}

	d.transition(ActionCompleted)
	d.scheduleReset()

	confirmation := fmt.Sprintf("✅ Email sent successfully to Alex!\n\n\"I've dispatched your message to %s. Alex will get back to you soon!\"", to)
	return confirmation, nil
}

func (d *Dispatcher) transition(next ActionStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// A new lifecycle cancels any still-scheduled reset from the previous one.
	if next == ActionRunning && d.resetTimer != nil {
		d.resetTimer.Stop()
		d.resetTimer = nil
	}
	d.status = next
}

func (d *Dispatcher) scheduleReset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.resetTimer != nil {
		d.resetTimer.Stop()
	}
	d.resetTimer = time.AfterFunc(d.resetDelay, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.status == ActionCompleted {
			d.status = ActionIdle
		}
		d.resetTimer = nil
	})
}

// SimulatedNotifier fakes email delivery with a fixed delay, standing in for
// a transactional email capability.
type SimulatedNotifier struct {
	Delay time.Duration
}

// Send waits for the configured delay, honoring context cancellation.
func (n SimulatedNotifier) Send(ctx context.Context, email Email) error {
	slog.Info("Simulating email delivery", "to", email.To, "subject", email.Subject, "sender", email.SenderName)
	select {
	case <-time.After(n.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
