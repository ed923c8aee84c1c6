package domain

import "time"

type TimerState string

const (
	TimerIdle      TimerState = "idle"
	TimerRunning   TimerState = "running"
	TimerCompleted TimerState = "completed"
)

func (t Task) TimerState() TimerState {
	switch {
	case t.Status == TaskStatusCompleted:
		return TimerCompleted
	case t.IsTimerRunning:
		return TimerRunning
	default:
		return TimerIdle
	}
}

// StartTimer opens a new work session.
func (t *Task) StartTimer(now time.Time) error {
	if t.TimerState() != TimerIdle {
		return invalidTransition("start", t.TimerState())
	}
	t.StartedAt = timePtr(now)
	t.IsTimerRunning = true
	t.Status = TaskStatusInProgress
	t.UpdatedAt = now
	return nil
}

// PauseTimer closes the current session and adds it to ActualDuration.
// StartedAt is left untouched.
func (t *Task) PauseTimer(now time.Time) error {
	if t.TimerState() != TimerRunning {
		return invalidTransition("pause", t.TimerState())
	}
	t.addSession(t.StartedAt, now)
	t.IsTimerRunning = false
	t.UpdatedAt = now
	return nil
}

// Complete moves the task to its terminal state, closing a running session.
func (t *Task) Complete(now time.Time) error {
	state := t.TimerState()
	if state == TimerCompleted {
		return invalidTransition("complete", state)
	}
	if state == TimerRunning {
		t.addSession(t.StartedAt, now)
	}
	t.Status = TaskStatusCompleted
	t.CompletedAt = timePtr(now)
	t.EndedAt = timePtr(now)
	t.IsTimerRunning = false
	t.UpdatedAt = now
	return nil
}
