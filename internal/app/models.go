package app

// createAppointmentReq is the body of POST /create-appointment. Older
// clients send the visit reason as "reason", newer ones as "notes";
// both are accepted, reason wins when both are present.
type createAppointmentReq struct {
	Name   string `json:"name"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

func (r createAppointmentReq) notes() string {
	if r.Reason != "" {
		return r.Reason
	}
	return r.Notes
}
