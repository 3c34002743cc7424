package domain

type WizardStep int

const (
	WizardStepSelectService  WizardStep = 1
	WizardStepSelectDateTime WizardStep = 2
	WizardStepEnterDetails   WizardStep = 3
	WizardStepSubmitted      WizardStep = 4
)

func (s WizardStep) String() string {
	switch s {
	case WizardStepSelectService:
		return "select_service"
	case WizardStepSelectDateTime:
		return "select_date_time"
	case WizardStepEnterDetails:
		return "enter_details"
	case WizardStepSubmitted:
		return "submitted"
	}
	return "unknown"
}

type Contact struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Message string `json:"message,omitempty"`
}

// WizardState is the transient state of one booking dialog session.
type WizardState struct {
	Step            WizardStep `json:"step"`
	SelectedService string     `json:"service"`
	SelectedDate    Date       `json:"date"`
	SelectedSlot    TimeSlot   `json:"time"`
	Contact         Contact    `json:"contact"`
}

func NewWizardState(today Date) WizardState {
	return WizardState{
		Step:         WizardStepSelectService,
		SelectedDate: today,
	}
}

func (s WizardState) Booking() Booking {
	return Booking{
		Date:        s.SelectedDate,
		Slot:        s.SelectedSlot,
		ServiceName: s.SelectedService,
		ClientName:  s.Contact.Name,
	}
}
