package model

import "time"

// User roles. Stored as plain strings; the service only ever filters on
// Obgyne and Assistant.
const (
	RolePatient   = "Patient"
	RoleObgyne    = "Obgyne"
	RoleAssistant = "Assistant"
)

// Status values an appointment commonly moves through. The update operation
// accepts any string here on purpose: transitions are triggered externally
// and no transition graph is enforced.
type Status string

const (
	StatusPending     Status = "Pending"
	StatusConfirmed   Status = "Confirmed"
	StatusCancelled   Status = "Cancelled"
	StatusRescheduled Status = "Rescheduled"
)

type User struct {
	ID           string    `json:"_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	PhoneNumber  string    `json:"phoneNumber"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Appointment struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"userId"`
	PatientName string    `json:"patientName"`
	Date        time.Time `json:"date"`
	Status      Status    `json:"status"`
	Location    string    `json:"location,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Owning user, joined on reads.
	User *User `json:"user,omitempty"`
}

// Notification is immutable once written. RecipientIDs is never empty.
type Notification struct {
	ID           string    `json:"_id"`
	SenderID     string    `json:"senderId,omitempty"`
	SenderName   string    `json:"senderName"`
	SenderPhone  string    `json:"senderPhoneNumber,omitempty"`
	Message      string    `json:"message"`
	Category     string    `json:"category,omitempty"`
	RecipientIDs []string  `json:"recipientUserId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Article is the stored summary for one BellyTalk category. Engagement is the
// value the summary was generated against; the article is reusable only while
// it matches the currently computed engagement.
type Article struct {
	ID         string    `json:"_id"`
	Category   string    `json:"category"`
	Engagement int       `json:"engagement"`
	Title      string    `json:"title"`
	FullTitle  string    `json:"fullTitle"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Post struct {
	ID         string    `json:"_id"`
	AuthorID   string    `json:"authorId"`
	Content    string    `json:"content"`
	Categories []string  `json:"category"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Comment struct {
	ID        string    `json:"_id"`
	PostID    string    `json:"postId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// FeedItem is one post with its discussion, the unit the dashboard
// aggregation consumes.
type FeedItem struct {
	Categories []string
	Content    string
	Comments   []string
}
