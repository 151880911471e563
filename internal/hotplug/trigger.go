package hotplug

import "time"

// Reason identifies what caused a trigger.
type Reason string

const (
	ReasonStartup     Reason = "startup"
	ReasonUdev        Reason = "udev"
	ReasonPoll        Reason = "poll"
	ReasonForeignFile Reason = "foreign_file"
	ReasonManual      Reason = "manual"
)

// Trigger describes one request to rematch.
type Trigger struct {
	Reason Reason
	Detail string
	At     time.Time
}

// Emitter receives triggers from a source.
type Emitter func(Trigger)
