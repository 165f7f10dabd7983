package journal

import "time"

// Entry is one dated journal record documenting an interaction.
type Entry struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"-"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
}
