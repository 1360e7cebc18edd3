package agenda

import "daylight/internal/domain"

// Urgency combines a priority weight with temporal proximity. Rows sort
// descending by score inside a bucket; ties keep their stable order.

// unknownPriorityScore is the sentinel for priorities outside the known set.
// It is hugely negative so unknown values sort last under descending sort.
const unknownPriorityScore = -(1 << 20)

// proximityHorizon is how many days out a date still contributes urgency.
const proximityHorizon = 10

func priorityWeight(p domain.Priority) int {
	switch p {
	case domain.PriorityHigh:
		return 3
	case domain.PriorityNormal:
		return 2
	case domain.PriorityLow:
		return 1
	case domain.PriorityNone:
		return 0
	default:
		return unknownPriorityScore
	}
}

// Score ranks a whole task: priority weight plus a proximity bonus from the
// nearest of its scheduled/due dates that is today or later. With no
// qualifying date the score is the bare priority weight.
func Score(task *domain.TaskRecord, today domain.Date) int {
	weight := priorityWeight(task.Priority)

	daysUntil := -1
	for _, date := range []domain.Date{task.Scheduled, task.Due} {
		if date.IsZero() || date < today {
			continue
		}
		if d := domain.DaysBetween(today, date); daysUntil < 0 || d < daysUntil {
			daysUntil = d
		}
	}
	if daysUntil < 0 {
		return weight
	}
	return weight + proximityBonus(daysUntil)
}

// InstanceScore ranks one expanded occurrence row by its own effective date.
// Overdue instances earn an increasing bonus the further past they are, so
// older unresolved days outrank newer ones.
func InstanceScore(task *domain.TaskRecord, effective, today domain.Date) int {
	weight := priorityWeight(task.Priority)

	daysUntil := domain.DaysBetween(today, effective)
	if daysUntil < 0 {
		return weight + proximityHorizon - daysUntil
	}
	return weight + proximityBonus(daysUntil)
}

func proximityBonus(daysUntil int) int {
	if daysUntil >= proximityHorizon {
		return 0
	}
	return proximityHorizon - daysUntil
}
