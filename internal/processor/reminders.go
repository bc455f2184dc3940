package processor

import "time"

// deadlineSpec fixes how a deadline is derived from the election date
// and which reminder offsets it gets.
type deadlineSpec struct {
	deadlineType string
	daysBefore   int   // deadline = election date minus this many days
	offsets      []int // reminders this many days before the deadline
}

// deadlineSpecs are the fixed deadline definitions. Execution of the
// emitted schedule belongs to the external job scheduler.
var deadlineSpecs = []deadlineSpec{
	{deadlineType: "registration", daysBefore: 30, offsets: []int{30, 14, 7, 3, 1}},
	{deadlineType: "early_voting_start", daysBefore: 15, offsets: []int{7, 3, 1}},
	{deadlineType: "election_day", daysBefore: 0, offsets: []int{7, 3, 1, 0}},
}

// ScheduledReminder is one future reminder for one deadline.
type ScheduledReminder struct {
	ElectionID   string    `json:"election_id"`
	DeadlineType string    `json:"deadline_type"`
	DeadlineDate time.Time `json:"deadline_date"`
	DaysBefore   int       `json:"days_before"`
	RemindAt     time.Time `json:"remind_at"`
}

// ScheduleDeadlineReminders computes the reminder schedule for an
// election. Pure computation: offsets whose reminder time is not after
// now are skipped, everything else is emitted for the external job
// scheduler to execute.
func ScheduleDeadlineReminders(election Election, now time.Time) []ScheduledReminder {
	var reminders []ScheduledReminder
	for _, spec := range deadlineSpecs {
		deadline := election.Date.AddDate(0, 0, -spec.daysBefore)
		for _, offset := range spec.offsets {
			remindAt := deadline.AddDate(0, 0, -offset)
			if !remindAt.After(now) {
				continue
			}
			reminders = append(reminders, ScheduledReminder{
				ElectionID:   election.ID,
				DeadlineType: spec.deadlineType,
				DeadlineDate: deadline,
				DaysBefore:   offset,
				RemindAt:     remindAt,
			})
		}
	}
	return reminders
}
