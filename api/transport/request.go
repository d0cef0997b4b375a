package transport

type ProfileUpdateRequest struct {
	Email  string            `json:"email"`
	Role   string            `json:"role"`
	Status string            `json:"status"`
	Meta   map[string]string `json:"metadata"`
}

type SubjectRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type TopicRequest struct {
	ID            string `json:"id"`
	SubjectID     string `json:"subject_id"`
	Title         string `json:"title"`
	Status        string `json:"status"`
	StruggleLevel int    `json:"struggle_level"`
}

type TaskRequest struct {
	ID       string `json:"id"`
	TopicID  string `json:"topic_id"`
	Title    string `json:"title"`
	DueDate  string `json:"due_date"`
	Priority int    `json:"priority"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
}

// SessionStartRequest opens a running study session against a task and/or
// topic. No stop payload exists: stopping takes the session id only, so no
// body field can ever alter the computed minutes.
type SessionStartRequest struct {
	TaskID  string `json:"task"`
	TopicID string `json:"topic"`
	Notes   string `json:"notes"`
}

type AuthLoginRequest struct {
	UserID string `json:"user_id"`
	TTL    int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}
