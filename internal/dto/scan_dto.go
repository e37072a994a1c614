package dto

// Scan stream message kinds. The websocket transport and the REST fallback
// share these payloads.
const (
	ScanEventRejected = "rejected" // frame consumed, nothing accepted yet
	ScanEventPrompt   = "prompt"   // code accepted + resolved, awaiting read answer
	ScanEventSaved    = "saved"    // acquisition persisted
	ScanEventError    = "error"
)

type StartScanResponse struct {
	SessionId string `json:"session_id"`
}

type ObserveFrameRequest struct {
	Code string `json:"code" validate:"required"`
}

type ManualIsbnRequest struct {
	Isbn string `json:"isbn" validate:"required"`
}

type ConfirmScanRequest struct {
	Read       bool   `json:"read"`
	Visibility string `json:"visibility" validate:"omitempty,oneof=shared private"`
}

type ScanEvent struct {
	Type     string `json:"type"`
	Isbn     string `json:"isbn,omitempty"`
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	ImageUrl string `json:"image_url,omitempty"`
	Category string `json:"category,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ScanStreamMessage is the inbound websocket frame envelope.
type ScanStreamMessage struct {
	Type       string `json:"type"` // "frame" | "manual" | "confirm" | "abandon" | "stop"
	Code       string `json:"code,omitempty"`
	Read       bool   `json:"read,omitempty"`
	Visibility string `json:"visibility,omitempty"`
}
