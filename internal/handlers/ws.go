package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/almahdy86/t-event/internal/services"
	"github.com/almahdy86/t-event/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub                *ws.Hub
	presence           *ws.Presence
	participantService *services.ParticipantService
	answerService      *services.AnswerService
	photoService       *services.PhotoService
}

func NewWSHandler(hub *ws.Hub, presence *ws.Presence, participantService *services.ParticipantService,
	answerService *services.AnswerService, photoService *services.PhotoService) *WSHandler {
	return &WSHandler{
		hub:                hub,
		presence:           presence,
		participantService: participantService,
		answerService:      answerService,
		photoService:       photoService,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Inbound frames reuse the WSMessage envelope with the payload left raw
// until the type is known.
type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type joinPayload struct {
	UID    string `json:"uid"`
	Number int    `json:"number"`
}

type submitAnswerPayload struct {
	QuestionID     uint `json:"question_id"`
	SelectedOption int  `json:"selected_option"`
	ElapsedMs      int  `json:"elapsed_ms"`
}

type likePayload struct {
	PhotoID uint `json:"photo_id"`
}

// HandleWebSocket godoc
// @Summary      Event channel
// @Description  Long-lived connection carrying session:join, answer:submit and photo:like inbound, and all event broadcasts outbound
// @Tags         websocket
// @Router       /ws [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	sessionID := uuid.NewString()
	client := h.hub.Add(sessionID, conn)
	defer h.disconnect(client)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("ws: bad frame from %s: %v", sessionID, err)
			continue
		}

		h.dispatch(client, msg)
	}
}

func (h *WSHandler) dispatch(client *ws.Client, msg inboundMessage) {
	switch msg.Type {
	case "session:join":
		var payload joinPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.UID == "" {
			return
		}
		h.handleJoin(client, payload)

	case "answer:submit":
		var payload submitAnswerPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return
		}
		h.handleAnswer(client, payload)

	case "photo:like":
		var payload likePayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return
		}
		h.handleLike(client, payload)

	default:
		log.Printf("ws: unknown message type %q from %s", msg.Type, client.SessionID)
	}
}

func (h *WSHandler) handleJoin(client *ws.Client, payload joinPayload) {
	count := h.presence.Register(client.SessionID, ws.SessionInfo{
		UID:    payload.UID,
		Number: payload.Number,
	})
	h.participantService.SetOnline(payload.UID, true)

	// Joins and leaves are pushed; nobody polls the online count.
	h.hub.Broadcast(ws.WSMessage{Type: ws.EventOnlineCount, Data: count})
}

func (h *WSHandler) handleAnswer(client *ws.Client, payload submitAnswerPayload) {
	info, ok := h.presence.Lookup(client.SessionID)
	if !ok {
		h.sendError(client, "join before submitting")
		return
	}

	participant, err := h.participantService.GetByUID(info.UID)
	if err != nil {
		h.sendError(client, "unknown participant")
		return
	}

	result, err := h.answerService.Submit(participant.ID, payload.QuestionID, payload.SelectedOption, payload.ElapsedMs)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStaleQuestion), errors.Is(err, services.ErrNotFound):
			h.sendError(client, "question is no longer active")
		case errors.Is(err, services.ErrAnswerDeadlinePassed):
			h.sendError(client, "time is up for this question")
		default:
			log.Printf("ws: submit answer: %v", err)
			h.sendError(client, "failed to record answer")
		}
		return
	}

	// The result is the submitter's alone; the standings delta is everyone's.
	if err := client.Send(ws.WSMessage{Type: ws.EventAnswerResult, Data: result}); err != nil {
		log.Printf("ws: send answer result: %v", err)
	}
	if !result.AlreadyAnswered {
		h.hub.Broadcast(ws.WSMessage{Type: ws.EventLeaderboard, Data: gin.H{"question_id": payload.QuestionID}})
	}
}

func (h *WSHandler) handleLike(client *ws.Client, payload likePayload) {
	info, ok := h.presence.Lookup(client.SessionID)
	if !ok {
		h.sendError(client, "join before liking")
		return
	}

	participant, err := h.participantService.GetByUID(info.UID)
	if err != nil {
		h.sendError(client, "unknown participant")
		return
	}

	result, err := h.photoService.ToggleLike(participant.ID, payload.PhotoID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.sendError(client, "photo not found")
			return
		}
		log.Printf("ws: toggle like: %v", err)
		h.sendError(client, "failed to toggle like")
		return
	}
	result.ByUID = info.UID

	// Carries who toggled so that participant's UI can reconcile its
	// optimistic state against the authoritative count.
	h.hub.Broadcast(ws.WSMessage{Type: ws.EventPhotoLikes, Data: result})
}

func (h *WSHandler) disconnect(client *ws.Client) {
	info, joined := h.presence.Lookup(client.SessionID)
	count := h.presence.Unregister(client.SessionID)
	h.hub.Remove(client)

	if joined && !h.presence.HasOtherSession(info.UID, client.SessionID) {
		h.participantService.SetOnline(info.UID, false)
	}
	h.hub.Broadcast(ws.WSMessage{Type: ws.EventOnlineCount, Data: count})
}

func (h *WSHandler) sendError(client *ws.Client, message string) {
	if err := client.Send(ws.WSMessage{Type: "error", Data: gin.H{"message": message}}); err != nil {
		log.Printf("ws: send error frame: %v", err)
	}
}
