package service

// BoardEvent is one update pushed to live patient boards in waiting rooms.
type BoardEvent struct {
	Type     string      `json:"type"`
	DoctorID int         `json:"doctor_id"`
	Date     string      `json:"date"`
	Payload  interface{} `json:"payload,omitempty"`
}

// Board event types
const (
	BoardEventBookingCreated   = "booking.created"
	BoardEventBookingCancelled = "booking.cancelled"
	BoardEventStatusChanged    = "booking.status_changed"
	BoardEventSlotUpdated      = "slot.updated"
)

// LiveBoardPublisher fans a board event out to connected websocket clients.
// Implementations must not block the caller.
type LiveBoardPublisher interface {
	Publish(event *BoardEvent)
}
