// README: Push dispatcher backed by Firebase Cloud Messaging.
package notify

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Dispatcher delivers a push message to a device token. Delivery is
// fire-and-forget from the pipeline's point of view.
type Dispatcher interface {
	Notify(ctx context.Context, token, title, body string) error
}

// FCM is the production dispatcher backed by the Firebase Admin SDK.
type FCM struct {
	client *messaging.Client
}

// NewFCM initializes the messaging client. If credentialsFile is empty,
// application-default credentials are used.
func NewFCM(ctx context.Context, credentialsFile string) (*FCM, error) {
	opts := []option.ClientOption{}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase app.Messaging: %w", err)
	}
	return &FCM{client: client}, nil
}

func (f *FCM) Notify(ctx context.Context, token, title, body string) error {
	_, err := f.client.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	})
	return err
}

// LogDispatcher stands in when push credentials are not configured, so local
// environments still see the would-be notifications.
type LogDispatcher struct{}

func (LogDispatcher) Notify(_ context.Context, token, title, body string) error {
	log.Printf("push (dry-run) to %s: %s / %s", token, title, body)
	return nil
}
