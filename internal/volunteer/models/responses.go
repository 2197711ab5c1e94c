package models

// AnonymousVolunteerName replaces blank contact names in list output so the
// name field is never empty.
const AnonymousVolunteerName = "Anonymous Volunteer"

// ListItem is the output projection of one registration row. VolunteerPhone
// is a pointer so a disallowed phone is absent from the JSON entirely rather
// than present as an empty string.
type ListItem struct {
	ID             string   `json:"id"`
	GridID         string   `json:"grid_id"`
	UserID         string   `json:"user_id"`
	VolunteerName  string   `json:"volunteer_name"`
	VolunteerPhone *string  `json:"volunteer_phone,omitempty"`
	Status         Status   `json:"status"`
	AvailableTime  string   `json:"available_time"`
	Skills         []string `json:"skills"`
	Equipment      []string `json:"equipment"`
	Notes          string   `json:"notes"`
	CreatedDate    string   `json:"created_date"`
}

// ListPayload is the full list response. CanViewPhone is the authoritative
// flag for UI gating; per-item phone presence mirrors it but callers must not
// infer visibility from item shape alone.
type ListPayload struct {
	Data         []ListItem     `json:"data"`
	CanViewPhone bool           `json:"can_view_phone"`
	Total        int            `json:"total"`
	StatusCounts map[Status]int `json:"status_counts,omitempty"`
	Limit        int            `json:"limit"`
	Page         int            `json:"page"`
}
