package domain

type Event string

const (
	EventScanned         Event = "SCANNED"
	EventHostArrived     Event = "HOST_ARRIVED"
	EventPeriodNoShow    Event = "PERIOD_CLOSED_NO_ATTENDANCE"
	EventConfirm         Event = "CONFIRM"
	EventComplete        Event = "COMPLETE"
	EventCancel          Event = "CANCEL"
	EventMarkNoShow      Event = "MARK_NO_SHOW"
	EventAgedOut         Event = "AGED_OUT"
	EventReschedule      Event = "RESCHEDULE"
	EventStaffCorrection Event = "STAFF_CORRECTION"
)

type transitionRule struct {
	from []ReservationStatus
	to   ReservationStatus
}

var nonTerminal = []ReservationStatus{ReservationPending, ReservationConfirmed, ReservationCheckedIn}

var transitionTable = map[Event]transitionRule{
	EventScanned:      {from: []ReservationStatus{ReservationPending, ReservationConfirmed}, to: ReservationCheckedIn},
	EventHostArrived:  {from: []ReservationStatus{ReservationPending, ReservationConfirmed}, to: ReservationCheckedIn},
	EventPeriodNoShow: {from: []ReservationStatus{ReservationPending, ReservationConfirmed}, to: ReservationNoShow},
	EventConfirm:      {from: []ReservationStatus{ReservationPending}, to: ReservationConfirmed},
	EventComplete:     {from: []ReservationStatus{ReservationCheckedIn}, to: ReservationCompleted},
	EventCancel:       {from: nonTerminal, to: ReservationCancelled},
	EventMarkNoShow:   {from: []ReservationStatus{ReservationPending, ReservationConfirmed}, to: ReservationNoShow},
	EventAgedOut:      {from: []ReservationStatus{ReservationPending}, to: ReservationDropped},
}

// Target returns the status an event leads to, regardless of the current one.
func Target(event Event) (ReservationStatus, bool) {
	rule, ok := transitionTable[event]
	return rule.to, ok
}

// NextStatus applies event to from. noop is true when the reservation is
// already in the event's target state; any other move outside the table is
// ErrIllegalTransition.
func NextStatus(from ReservationStatus, event Event) (to ReservationStatus, noop bool, err error) {
	rule, ok := transitionTable[event]
	if !ok {
		return from, false, IllegalTransition(from, event)
	}
	if from == rule.to {
		return from, true, nil
	}
	for _, allowed := range rule.from {
		if allowed == from {
			return rule.to, false, nil
		}
	}
	return from, false, IllegalTransition(from, event)
}

// StaffEvent maps an action name from the staff API to its event.
func StaffEvent(action string) (Event, bool) {
	switch action {
	case "confirm":
		return EventConfirm, true
	case "complete":
		return EventComplete, true
	case "cancel":
		return EventCancel, true
	case "no-show":
		return EventMarkNoShow, true
	}
	return "", false
}
