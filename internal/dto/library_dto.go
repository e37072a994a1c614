package dto

import "booknest-be/internal/entity"

// SyncStatus tracks a load cycle: idle -> syncing -> ok|offline.
type SyncStatus string

const (
	SyncIdle    SyncStatus = "idle"
	SyncSyncing SyncStatus = "syncing"
	SyncOk      SyncStatus = "ok"
	SyncOffline SyncStatus = "offline"
)

type LibraryView struct {
	Status  SyncStatus             `json:"status"`
	Entries []*entity.LibraryEntry `json:"entries"`
}

type LibraryStats struct {
	Total  int `json:"total"`
	Read   int `json:"read"`
	Unread int `json:"unread"`
}

type UpsertBookRequest struct {
	Isbn       string `json:"isbn"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	ImageUrl   string `json:"image_url"`
	Category   string `json:"category"`
	Read       bool   `json:"read"`
	Visibility string `json:"visibility" validate:"omitempty,oneof=shared private"`
}

type UpdateBookRequest struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

type SetVisibilityRequest struct {
	Visibility string `json:"visibility" validate:"required,oneof=shared private"`
}

// LibraryFilter mirrors the client-side shelf controls: free-text search,
// read/unread filter, category filter, sort key.
type LibraryFilter struct {
	Query    string
	Read     string // "all" | "read" | "unread"
	Category string // "all" or an exact category
	SortBy   string // "title" | "author" | "category"
}
