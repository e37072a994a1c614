package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"booknest-be/internal/dto"
	"booknest-be/internal/service"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeShelf attaches a shelf client to the hub for library-changed pushes.
func ServeShelf(hub *Hub, c *websocket.Conn, memberId uuid.UUID) {
	client := &Client{Hub: hub, Conn: c, MemberID: memberId, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}

// ServeScan runs the bidirectional scan stream: the client sends decoded
// barcode frames, the server answers with scan events. The loop owns the
// session; closing the socket tears it down.
func ServeScan(scanService service.IScanService, c *websocket.Conn, memberId uuid.UUID) {
	ctx := context.Background()

	started, err := scanService.StartSession(ctx, memberId)
	if err != nil {
		writeScanError(c, err)
		return
	}
	sessionId := started.SessionId
	defer scanService.StopSession(ctx, sessionId)

	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			return
		}

		var msg dto.ScanStreamMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			writeScanError(c, errors.New("malformed scan message"))
			continue
		}

		var event *dto.ScanEvent
		switch msg.Type {
		case "frame":
			event, err = scanService.ObserveFrame(ctx, sessionId, msg.Code)
		case "manual":
			event, err = scanService.ManualIsbn(ctx, sessionId, msg.Code)
		case "confirm":
			event, err = scanService.Confirm(ctx, sessionId, msg.Read, msg.Visibility)
		case "abandon":
			err = scanService.Abandon(ctx, sessionId)
		case "stop":
			return
		default:
			writeScanError(c, errors.New("unknown scan message type"))
			continue
		}

		if err != nil {
			writeScanError(c, err)
			continue
		}
		if event == nil || event.Type == dto.ScanEventRejected {
			// Rejected frames are the common case. Staying silent keeps
			// the stream cheap; the client just sends the next frame.
			continue
		}
		if err := c.WriteJSON(event); err != nil {
			return
		}
	}
}

func writeScanError(c *websocket.Conn, err error) {
	c.WriteJSON(dto.ScanEvent{Type: dto.ScanEventError, Error: err.Error()})
}
