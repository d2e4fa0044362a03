package mattermost

import (
	"encoding/json"

	"mmbot/models"
)

// The websocket wire format multiplexes two frame shapes on one connection:
// event frames ({"event": "...", "data": {...}, "broadcast": {...}}) and
// status frames ({"status": "OK"} or {"status": "FAIL", "error": {...}}).
// One struct covers both; whichever discriminator is non-empty wins.
type wireFrame struct {
	Event     string           `json:"event"`
	Data      json.RawMessage  `json:"data"`
	Broadcast *wireBroadcast   `json:"broadcast"`
	Seq       int64            `json:"seq"`
	Status    string           `json:"status"`
	Error     *wireStatusError `json:"error"`
}

type wireBroadcast struct {
	UserID    string `json:"user_id"`
	ChannelID string `json:"channel_id"`
	TeamID    string `json:"team_id"`
}

type wireStatusError struct {
	ID            string  `json:"id"`
	Message       string  `json:"message"`
	DetailedError string  `json:"detailed_error"`
	RequestID     string  `json:"request_id"`
	StatusCode    float64 `json:"status_code"`
}

type wireHelloData struct {
	ServerVersion string `json:"server_version"`
}

// wirePostedData is the envelope of "posted" and "post_edited" events. The
// post itself arrives as an embedded JSON string that needs a second decode
// pass.
type wirePostedData struct {
	ChannelDisplayName string `json:"channel_display_name"`
	ChannelName        string `json:"channel_name"`
	ChannelType        string `json:"channel_type"`
	Post               string `json:"post"`
	SenderName         string `json:"sender_name"`
	TeamID             string `json:"team_id"`
}

type wirePost struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ChannelID string `json:"channel_id"`
	RootID    string `json:"root_id"`
	ParentID  string `json:"parent_id"`
	Message   string `json:"message"`
}

// DecodeEvent normalizes one raw websocket frame into a models.Event. It
// never fails: frames that cannot be decoded become UnsupportedEvent so the
// dispatch loop can log and move on.
func DecodeEvent(raw []byte) models.Event {
	var frame wireFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return models.UnsupportedEvent{Raw: string(raw)}
	}

	if frame.Status != "" {
		return decodeStatus(&frame)
	}

	switch frame.Event {
	case "hello":
		return decodeHello(&frame)
	case "posted":
		return decodePosted(raw, &frame)
	case "post_edited":
		return decodePostEdited(raw, &frame)
	default:
		return models.UnsupportedEvent{Raw: string(raw)}
	}
}

func decodeStatus(frame *wireFrame) models.Event {
	status := &models.Status{}
	switch frame.Status {
	case "OK":
		status.Code = models.StatusOK
	case "FAIL":
		status.Code = models.StatusErr
		if frame.Error != nil {
			status.Error = &models.StatusError{
				Message:       frame.Error.Message,
				DetailedError: frame.Error.DetailedError,
				RequestID:     frame.Error.RequestID,
				StatusCode:    int(frame.Error.StatusCode),
			}
		}
	default:
		status.Code = models.StatusUnsupported
	}
	return models.StatusEvent{Status: status}
}

func decodeHello(frame *wireFrame) models.Event {
	var data wireHelloData
	if err := json.Unmarshal(frame.Data, &data); err != nil {
		return models.UnsupportedEvent{Raw: string(frame.Data)}
	}
	hello := models.Hello{ServerString: data.ServerVersion}
	if frame.Broadcast != nil {
		hello.MyUserID = frame.Broadcast.UserID
	}
	return hello
}

func decodePosted(raw []byte, frame *wireFrame) models.Event {
	data, post, ok := decodePostEnvelope(frame)
	if !ok {
		return models.UnsupportedEvent{Raw: string(raw)}
	}
	return models.PostEvent{Post: &models.Post{
		ID:        post.ID,
		ChannelID: post.ChannelID,
		Message:   post.Message,
		UserID:    post.UserID,
		RootID:    post.RootID,
		ParentID:  post.ParentID,
		TeamID:    data.TeamID,
	}}
}

func decodePostEdited(raw []byte, frame *wireFrame) models.Event {
	_, post, ok := decodePostEnvelope(frame)
	if !ok {
		return models.UnsupportedEvent{Raw: string(raw)}
	}
	return models.PostEditedEvent{Post: &models.PostEdited{
		ID:        post.ID,
		ChannelID: post.ChannelID,
		Message:   post.Message,
		UserID:    post.UserID,
		RootID:    post.RootID,
		ParentID:  post.ParentID,
	}}
}

func decodePostEnvelope(frame *wireFrame) (*wirePostedData, *wirePost, bool) {
	var data wirePostedData
	if err := json.Unmarshal(frame.Data, &data); err != nil {
		return nil, nil, false
	}
	var post wirePost
	if err := json.Unmarshal([]byte(data.Post), &post); err != nil {
		return nil, nil, false
	}
	return &data, &post, true
}
