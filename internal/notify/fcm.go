package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/GlebRadaev/mealsection/pkg/clients"
)

const (
	fcmScope   = "https://www.googleapis.com/auth/firebase.messaging"
	fcmSendURL = "https://fcm.googleapis.com/v1/projects/%s/messages:send"
)

// ErrInvalidToken means the device token is no longer registered and should
// be cleared.
var ErrInvalidToken = errors.New("invalid device token")

type Poster interface {
	Post(ctx context.Context, url string, headers http.Header, body []byte) (statusCode int, respBody []byte, err error)
}

type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}

// FCM sends pushes through the Firebase Cloud Messaging HTTP v1 API. A zero
// FCM only logs.
type FCM struct {
	client Poster
	url    string
}

// NewFCM reads service-account credentials from credentials, which is either
// a path to the JSON key file or the JSON itself. Empty credentials disable
// pushes.
func NewFCM(ctx context.Context, credentials, projectID string) (*FCM, error) {
	if credentials == "" {
		zap.L().Warn("firebase credentials not configured, push notifications disabled")
		return &FCM{}, nil
	}

	data := []byte(credentials)
	if !strings.HasPrefix(strings.TrimSpace(credentials), "{") {
		var err error
		if data, err = os.ReadFile(credentials); err != nil {
			return nil, fmt.Errorf("can't read firebase credentials: %w", err)
		}
	}
	creds, err := google.CredentialsFromJSON(ctx, data, fcmScope)
	if err != nil {
		return nil, fmt.Errorf("can't parse firebase credentials: %w", err)
	}
	if projectID == "" {
		projectID = creds.ProjectID
	}
	if projectID == "" {
		return nil, errors.New("firebase project id is missing")
	}

	return NewFCMWithClient(clients.WithHTTPClient(oauth2.NewClient(ctx, creds.TokenSource)), projectID), nil
}

func NewFCMWithClient(client Poster, projectID string) *FCM {
	return &FCM{client: client, url: fmt.Sprintf(fcmSendURL, projectID)}
}

type fcmRequest struct {
	Message fcmMessage `json:"message"`
}

type fcmMessage struct {
	Token        string            `json:"token"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
	Android      fcmAndroid        `json:"android"`
	APNS         fcmAPNS           `json:"apns"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmAndroid struct {
	Priority     string                 `json:"priority"`
	Notification fcmAndroidNotification `json:"notification"`
}

type fcmAndroidNotification struct {
	Sound     string `json:"sound"`
	ChannelID string `json:"channel_id"`
}

type fcmAPNS struct {
	Payload struct {
		APS struct {
			Sound string `json:"sound"`
			Badge int    `json:"badge"`
		} `json:"aps"`
	} `json:"payload"`
}

type fcmError struct {
	Error struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Details []struct {
			ErrorCode string `json:"errorCode"`
		} `json:"details"`
	} `json:"error"`
}

func (f *FCM) Push(ctx context.Context, token string, msg PushMessage) error {
	if f.client == nil {
		zap.L().Info("push skipped, firebase disabled", zap.String("title", msg.Title))
		return nil
	}
	if token == "" {
		return nil
	}

	req := fcmRequest{Message: fcmMessage{
		Token:        token,
		Notification: fcmNotification{Title: msg.Title, Body: msg.Body},
		Data:         msg.Data,
		Android: fcmAndroid{
			Priority:     "high",
			Notification: fcmAndroidNotification{Sound: "default", ChannelID: "orders"},
		},
	}}
	req.Message.APNS.Payload.APS.Sound = "default"
	req.Message.APNS.Payload.APS.Badge = 1

	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	status, respBody, err := f.client.Post(ctx, f.url, http.Header{"Content-Type": {"application/json"}}, body)
	if err != nil {
		return fmt.Errorf("fcm request failed: %w", err)
	}
	if status >= 200 && status < 300 {
		return nil
	}

	var fe fcmError
	_ = json.Unmarshal(respBody, &fe)
	for _, d := range fe.Error.Details {
		if d.ErrorCode == "UNREGISTERED" || d.ErrorCode == "INVALID_ARGUMENT" {
			return ErrInvalidToken
		}
	}
	if status == http.StatusNotFound {
		return ErrInvalidToken
	}
	return fmt.Errorf("fcm responded %d: %s", status, fe.Error.Message)
}
