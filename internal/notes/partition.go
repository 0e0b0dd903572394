package notes

import "github.com/notegrid/notegrid-go/internal/model"

// Buckets holds the three priority columns of the grid view. Each slice
// preserves the relative order of the input for notes sharing a priority.
type Buckets struct {
	Urgent []model.Note
	High   []model.Note
	Low    []model.Note
}

// PartitionByPriority splits notes into the three priority buckets. A note
// whose priority is not one of the known tags lands in no bucket at all;
// that is a defined edge case, not an error.
func PartitionByPriority(notes []model.Note) Buckets {
	var b Buckets
	for _, n := range notes {
		switch n.Priority {
		case model.PriorityUrgent:
			b.Urgent = append(b.Urgent, n)
		case model.PriorityHigh:
			b.High = append(b.High, n)
		case model.PriorityLow:
			b.Low = append(b.Low, n)
		}
	}
	return b
}

// FlattenByPriority returns the list-view display order: urgent first, then
// high, then low, stable within each bucket. The result is derived on every
// call; it is never cached.
func FlattenByPriority(notes []model.Note) []model.Note {
	b := PartitionByPriority(notes)

	out := make([]model.Note, 0, len(b.Urgent)+len(b.High)+len(b.Low))
	out = append(out, b.Urgent...)
	out = append(out, b.High...)
	out = append(out, b.Low...)
	return out
}
