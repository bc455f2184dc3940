package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/rblake2320/New-election-countdown-sub005/internal/events"
	"github.com/rblake2320/New-election-countdown-sub005/internal/trigger"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewDBWithConn(conn), mock
}

func TestLoadTriggers(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{
		"trigger_id", "name", "event_type", "conditions", "priority", "cooldown_minutes", "active",
	}).
		AddRow("t1", "Result final", "election_result",
			[]byte(`[{"field":"status","operator":"equals","value":"final"}]`),
			"urgent", 0, true).
		AddRow("t2", "Bad conditions", "election_result",
			[]byte(`{not json`), "high", 30, true).
		AddRow("t3", "Bad priority", "election_result",
			[]byte(`[]`), "catastrophic", 30, true).
		AddRow("t4", "Deadline", "deadline_reminder",
			[]byte(`[{"field":"days_until","operator":"less_than","value":4}]`),
			"high", 360, false)

	mock.ExpectQuery("SELECT trigger_id, name, event_type, conditions, priority, cooldown_minutes, active").
		WillReturnRows(rows)

	triggers, err := db.LoadTriggers(context.Background())
	if err != nil {
		t.Fatalf("LoadTriggers() error = %v", err)
	}
	// Rows with undecodable conditions or unknown priorities are skipped.
	if len(triggers) != 2 {
		t.Fatalf("loaded %d triggers, want 2", len(triggers))
	}

	first := triggers[0]
	if first.ID != "t1" || first.Priority != events.UrgencyUrgent || first.Cooldown != 0 {
		t.Errorf("trigger t1 = %+v, want urgent priority and zero cooldown", first)
	}
	if len(first.Conditions) != 1 || first.Conditions[0].Operator != trigger.OpEquals {
		t.Errorf("trigger t1 conditions = %+v", first.Conditions)
	}

	second := triggers[1]
	if second.ID != "t4" || second.Cooldown != 6*time.Hour || second.Active {
		t.Errorf("trigger t4 = %+v, want 6h cooldown and inactive", second)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestLoadTriggers_QueryError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT trigger_id").
		WillReturnError(sqlmock.ErrCancelled)

	if _, err := db.LoadTriggers(context.Background()); err == nil {
		t.Error("query failure should be returned")
	}
}

func TestSaveTrigger(t *testing.T) {
	db, mock := newMockDB(t)

	trig := &trigger.Trigger{
		ID:        "election-result-final",
		Name:      "Election result finalized",
		EventType: "election_result",
		Conditions: []trigger.Condition{
			{Field: "status", Operator: trigger.OpEquals, Value: "final"},
		},
		Priority: events.UrgencyUrgent,
		Cooldown: 30 * time.Minute,
		Active:   true,
	}

	mock.ExpectExec("INSERT INTO alert_triggers").
		WithArgs("election-result-final", "Election result finalized", "election_result",
			sqlmock.AnyArg(), "urgent", 30, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := db.SaveTrigger(context.Background(), trig); err != nil {
		t.Fatalf("SaveTrigger() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteTrigger(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "existing trigger deleted", affected: 1, want: true},
		{name: "missing trigger reports false", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectExec("DELETE FROM alert_triggers").
				WithArgs("t1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			got, err := db.DeleteTrigger(context.Background(), "t1")
			if err != nil {
				t.Fatalf("DeleteTrigger() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DeleteTrigger() = %v, want %v", got, tt.want)
			}
		})
	}
}
