package models

// Topic represents an article topic
type Topic struct {
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
}

// NewTopic is the POST /api/topics payload
type NewTopic struct {
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description" validate:"required"`
}
