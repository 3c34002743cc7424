package domain

// Booking is a committed reservation of one slot on one date. Bookings are never mutated,
// only added or pruned.
type Booking struct {
	Date        Date     `json:"date"`
	Slot        TimeSlot `json:"time"`
	ServiceName string   `json:"service"`
	ClientName  string   `json:"name"`
}

func (b Booking) Key() BookingKey {
	return BookingKey{Date: b.Date, Slot: b.Slot}
}

type BookingKey struct {
	Date Date
	Slot TimeSlot
}

type BookingSet map[BookingKey]Booking

func NewBookingSet(bookings []Booking) BookingSet {
	set := make(BookingSet, len(bookings))
	for _, b := range bookings {
		set[b.Key()] = b
	}
	return set
}

func (s BookingSet) Has(date Date, slot TimeSlot) bool {
	_, ok := s[BookingKey{Date: date, Slot: slot}]
	return ok
}

func (s BookingSet) OnDate(date Date) []Booking {
	bookings := make([]Booking, 0)
	for key, b := range s {
		if key.Date == date {
			bookings = append(bookings, b)
		}
	}
	return bookings
}
