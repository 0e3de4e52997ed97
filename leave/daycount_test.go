package leave_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexgate/leave-engine/leave"
)

// 2024-01-15 is a Monday; the surrounding weekend is Jan 13/14 and Jan 20/21.

func TestCountDays_Consecutive(t *testing.T) {
	tests := []struct {
		name       string
		start, end leave.Date
		want       int
	}{
		{
			name:  "single day",
			start: leave.NewDate(2024, time.January, 15),
			end:   leave.NewDate(2024, time.January, 15),
			want:  1,
		},
		{
			name:  "full week including weekend",
			start: leave.NewDate(2024, time.January, 15),
			end:   leave.NewDate(2024, time.January, 21),
			want:  7,
		},
		{
			name:  "across leap day",
			start: leave.NewDate(2024, time.February, 28),
			end:   leave.NewDate(2024, time.March, 1),
			want:  3,
		},
		{
			name:  "weekend only still counts",
			start: leave.NewDate(2024, time.January, 13),
			end:   leave.NewDate(2024, time.January, 14),
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := leave.CountDays(tt.start, tt.end, leave.ClassConsecutive)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountDays_Business(t *testing.T) {
	tests := []struct {
		name       string
		start, end leave.Date
		want       int
	}{
		{
			name:  "monday to friday",
			start: leave.NewDate(2024, time.January, 15),
			end:   leave.NewDate(2024, time.January, 19),
			want:  5,
		},
		{
			name:  "full week excludes weekend",
			start: leave.NewDate(2024, time.January, 15),
			end:   leave.NewDate(2024, time.January, 21),
			want:  5,
		},
		{
			name:  "weekend only",
			start: leave.NewDate(2024, time.January, 13),
			end:   leave.NewDate(2024, time.January, 14),
			want:  0,
		},
		{
			name:  "two and a half weeks",
			start: leave.NewDate(2024, time.January, 15),
			end:   leave.NewDate(2024, time.January, 30),
			want:  12,
		},
		{
			name:  "saturday start shifts to monday",
			start: leave.NewDate(2024, time.January, 13),
			end:   leave.NewDate(2024, time.January, 15),
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := leave.CountDays(tt.start, tt.end, leave.ClassBusiness)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountDays_EndBeforeStart_Rejected(t *testing.T) {
	start := leave.NewDate(2024, time.January, 15)
	end := leave.NewDate(2024, time.January, 14)

	for _, c := range []leave.Classification{leave.ClassConsecutive, leave.ClassBusiness} {
		_, err := leave.CountDays(start, end, c)
		assert.ErrorIs(t, err, leave.ErrInvalidRange, "classification %s", c)
	}
}
