package catalog

import (
	"fmt"
	"time"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/utils"
)

const LabelLayout = "3:04 PM"

const (
	DefaultOpen  = 9 * time.Hour
	DefaultClose = 20 * time.Hour
	DefaultStep  = 30 * time.Minute
)

// Catalog is the fixed daily sequence of bookable slots. The slot to wall-clock
// mapping is computed once at construction.
type Catalog struct {
	slots    []domain.TimeSlot
	clocks   map[domain.TimeSlot]time.Duration
	index    map[domain.TimeSlot]int
	closed   map[time.Weekday]bool
	location *time.Location
}

// New builds slots from open (inclusive) to close (exclusive) every step.
func New(open, close, step time.Duration, closedWeekdays []time.Weekday, loc *time.Location) (*Catalog, error) {
	if step <= 0 {
		return nil, fmt.Errorf("catalog: step must be positive, got %s", step)
	}
	if step%time.Minute != 0 || open%time.Minute != 0 {
		return nil, fmt.Errorf("catalog: step and opening time must be whole minutes, got %s from %s", step, open)
	}
	if open < 0 || close > 24*time.Hour || close <= open {
		return nil, fmt.Errorf("catalog: invalid business hours %s-%s", open, close)
	}
	if loc == nil {
		loc = time.UTC
	}

	c := &Catalog{
		slots:    make([]domain.TimeSlot, 0),
		clocks:   make(map[domain.TimeSlot]time.Duration),
		index:    make(map[domain.TimeSlot]int),
		closed:   make(map[time.Weekday]bool),
		location: loc,
	}

	for clock := open; clock < close; clock += step {
		label := Label(clock)
		if _, dup := c.index[label]; dup {
			return nil, fmt.Errorf("catalog: slot %q generated twice", label)
		}
		c.index[label] = len(c.slots)
		c.clocks[label] = clock
		c.slots = append(c.slots, label)
	}

	for _, weekday := range closedWeekdays {
		c.closed[weekday] = true
	}

	return c, nil
}

// Default is the shop schedule: 9:00 AM to 7:30 PM every 30 minutes, closed on Sunday.
func Default(loc *time.Location) *Catalog {
	c, err := New(DefaultOpen, DefaultClose, DefaultStep, []time.Weekday{time.Sunday}, loc)
	if err != nil {
		panic(err)
	}
	return c
}

// Label renders a clock offset the way slots are shown to clients, e.g. "1:30 PM".
func Label(clock time.Duration) domain.TimeSlot {
	return domain.TimeSlot(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(clock).Format(LabelLayout))
}

func (c *Catalog) AllSlots() []domain.TimeSlot {
	return append([]domain.TimeSlot(nil), c.slots...)
}

func (c *Catalog) Len() int {
	return len(c.slots)
}

func (c *Catalog) Contains(slot domain.TimeSlot) bool {
	_, ok := c.index[slot]
	return ok
}

func (c *Catalog) Index(slot domain.TimeSlot) (int, bool) {
	i, ok := c.index[slot]
	return i, ok
}

func (c *Catalog) Clock(slot domain.TimeSlot) (time.Duration, bool) {
	clock, ok := c.clocks[slot]
	return clock, ok
}

// Resolve returns the instant slot starts on date in the business location.
func (c *Catalog) Resolve(date domain.Date, slot domain.TimeSlot) (time.Time, bool) {
	clock, ok := c.clocks[slot]
	if !ok || date.IsZero() {
		return time.Time{}, false
	}
	return utils.AtClock(date.In(c.location), clock), true
}

// StartOf resolves slots outside the catalog too, by parsing the label. Stored bookings
// can outlive a change of business hours.
func (c *Catalog) StartOf(date domain.Date, slot domain.TimeSlot) (time.Time, bool) {
	if startsAt, ok := c.Resolve(date, slot); ok {
		return startsAt, true
	}

	clock, ok := ParseLabel(slot)
	if !ok || date.IsZero() {
		return time.Time{}, false
	}
	return utils.AtClock(date.In(c.location), clock), true
}

func ParseLabel(slot domain.TimeSlot) (time.Duration, bool) {
	parsed, err := time.Parse(LabelLayout, string(slot))
	if err != nil {
		return 0, false
	}
	return time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute, true
}

func (c *Catalog) IsClosed(date domain.Date) bool {
	return c.closed[date.Weekday()]
}

func (c *Catalog) Location() *time.Location {
	return c.location
}

func (c *Catalog) Today(now time.Time) domain.Date {
	return domain.DateOf(utils.StartCurrentDay(now.In(c.location)))
}
