package dto

// Paged wraps list results with pagination metadata.
type Paged struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

func NewPaged(items interface{}, total int64, page, pageSize int) *Paged {
	return &Paged{Items: items, Total: total, Page: page, PageSize: pageSize}
}

// NotificationPage adds the owner's unread badge count to a
// notification listing.
type NotificationPage struct {
	Paged
	UnreadCount int64 `json:"unread_count"`
}

// TestEmailRequest drives the admin SMTP check. Subject and message are
// optional; blank values fall back to the built-in test copy.
type TestEmailRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"omitempty,max=300"`
	Message string `json:"message" validate:"omitempty,max=5000"`
}
