package domain

import "time"

// TimeSlot is a bookable half-hour label such as "9:00 AM". Equality is by label.
type TimeSlot string

func (s TimeSlot) IsEmpty() bool {
	return s == ""
}

type SlotStatus string

const (
	SlotStatusFree   SlotStatus = "free"
	SlotStatusBooked SlotStatus = "booked"
)

type SlotAvailability struct {
	Slot       TimeSlot   `json:"time"`
	StartsAt   time.Time  `json:"startsAt"`
	Status     SlotStatus `json:"status"`
	Selectable bool       `json:"selectable"`
}
