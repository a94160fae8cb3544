package slack

type (
	Reminder struct {
		Id         string `json:"id"`
		Creator    string `json:"creator"`
		User       string `json:"user"`
		Text       string `json:"text"`
		Recurring  bool   `json:"recurring"`
		Time       int    `json:"time"`
		CompleteTs int    `json:"complete_ts"`
	}

	// ReminderAddRequest, Time accepts a unix timestamp or natural language ("in 5 minutes")
	ReminderAddRequest struct {
		Text string `json:"text" schema:"text" validate:"required"`
		Time string `json:"time" schema:"time" validate:"required"`
		User string `json:"user" schema:"user,omitempty"`
	}
)
