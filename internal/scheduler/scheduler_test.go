package scheduler

import (
	"testing"
	"time"

	"github.com/tlecomte/finance-tracker-backend/internal/config"
)

func testSchedulerConfig() config.SchedulerConfig {
	return config.SchedulerConfig{
		Enabled:        true,
		QuoteSpec:      "0 6 * * *",
		MonthCloseSpec: "30 0 1 * *",
	}
}

// TestPreviousMonth tests the month-close target calculation.
//
// WHY: The job runs just after midnight on the first of the month and must
// recap the month that ended, including across a year boundary.
func TestPreviousMonth(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantMonth int
		wantYear  int
	}{
		{
			name:      "mid-year rollover",
			now:       time.Date(2025, time.April, 1, 0, 30, 0, 0, time.UTC),
			wantMonth: 3,
			wantYear:  2025,
		},
		{
			name:      "january rolls back to december of the prior year",
			now:       time.Date(2025, time.January, 1, 0, 30, 0, 0, time.UTC),
			wantMonth: 12,
			wantYear:  2024,
		},
		{
			name:      "late in the month still targets the previous one",
			now:       time.Date(2025, time.March, 31, 23, 59, 0, 0, time.UTC),
			wantMonth: 2,
			wantYear:  2025,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Execute
			month, year := previousMonth(tt.now)

			// Assert
			if month != tt.wantMonth || year != tt.wantYear {
				t.Errorf("previousMonth(%v) = %d/%d, want %d/%d",
					tt.now, month, year, tt.wantMonth, tt.wantYear)
			}
		})
	}
}

// TestNew tests that invalid cron expressions are rejected at construction.
func TestNew(t *testing.T) {
	t.Run("rejects an invalid quote schedule", func(t *testing.T) {
		// Setup
		cfg := testSchedulerConfig()
		cfg.QuoteSpec = "not a cron spec"

		// Execute
		_, err := New(cfg, nil, nil, nil)

		// Assert
		if err == nil {
			t.Error("Expected an error for an invalid cron expression")
		}
	})

	t.Run("accepts the default schedules", func(t *testing.T) {
		// Setup
		cfg := testSchedulerConfig()

		// Execute
		s, err := New(cfg, nil, nil, nil)

		// Assert
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}
		if s == nil {
			t.Fatal("Expected a scheduler instance")
		}
	})
}
