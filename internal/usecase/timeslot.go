package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timeSlot is one generated sub-interval of a schedule window
type timeSlot struct {
	Start string
	End   string
}

// parseClock converts "HH:MM" (24h) to minutes since midnight.
// Accepts "HH:MM:SS" too since postgres time columns scan back with seconds.
func parseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid time %q, use HH:MM", value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid time %q, use HH:MM", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q, use HH:MM", value)
	}

	return hours*60 + minutes, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// intervalsOverlap reports whether [s1,e1) and [s2,e2) intersect.
// Touching endpoints (e1 == s2) do not count as overlap.
func intervalsOverlap(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// generateTimeSlots cuts [start,end) into consecutive sub-intervals of
// duration minutes, left to right. A trailing remainder shorter than
// duration is dropped.
func generateTimeSlots(startTime, endTime string, duration int) ([]timeSlot, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %d", duration)
	}

	start, err := parseClock(startTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClock(endTime)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf("start time %s must be before end time %s", startTime, endTime)
	}

	var slots []timeSlot
	for current := start; current+duration <= end; current += duration {
		slots = append(slots, timeSlot{
			Start: formatClock(current),
			End:   formatClock(current + duration),
		})
	}

	return slots, nil
}

// formatTokenNumber builds the human-readable per-doctor-per-date booking
// identifier: TKN{doctorID}{YYYYMMDD}{seq, 3 digits zero-padded}.
func formatTokenNumber(doctorID int, date time.Time, seq int) string {
	return fmt.Sprintf("TKN%d%s%03d", doctorID, date.Format("20060102"), seq)
}
