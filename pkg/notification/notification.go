// Package notification provides a multi-channel notification system.
//
// Define a Notification:
//
//	type OrderPlacedNotification struct { Order models.Order }
//	func (n *OrderPlacedNotification) Via() []string { return []string{"mail", "database"} }
//	func (n *OrderPlacedNotification) ToMail() notification.MailData { ... }
//	func (n *OrderPlacedNotification) ToDatabase() notification.DatabaseData { ... }
//
// Send:
//
//	notification.Send("customer@example.com", &OrderPlacedNotification{Order: o})
package notification

import (
	"encoding/json"
	"fmt"
	"time"

	supplyhttp "github.com/shashiranjanraj/supplyco/pkg/http"
	"github.com/shashiranjanraj/supplyco/pkg/logger"
	"github.com/shashiranjanraj/supplyco/pkg/mail"
	"gorm.io/gorm"
)

// MailData carries the data needed to send an email notification.
type MailData struct {
	To      string // overrides the notifiable address if set
	Subject string
	Body    string // HTML
	Text    string // plain-text fallback
}

// WebhookData carries an arbitrary JSON payload to POST to a URL.
type WebhookData struct {
	URL     string
	Payload interface{}
	Headers map[string]string
}

// DatabaseData carries the data stored in the notifications table.
type DatabaseData struct {
	Type    string
	Message string
	Data    interface{}
}

// Notification is the interface every notification must satisfy.
type Notification interface {
	// Via returns the list of channel names: "mail", "database", "webhook".
	Via() []string
}

// Mailable supports the mail channel.
type Mailable interface {
	ToMail() MailData
}

// Webhookable supports the webhook channel.
type Webhookable interface {
	ToWebhook() WebhookData
}

// Databaseable supports storing the notification in the DB.
type Databaseable interface {
	ToDatabase() DatabaseData
}

// Record is the GORM model for the database channel.
type Record struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Address   string    `gorm:"size:255;index" json:"address"`
	Type      string    `gorm:"size:255;not null" json:"type"`
	Message   string    `gorm:"type:text" json:"message"`
	Data      string    `gorm:"type:text" json:"data"`
	ReadAt    *time.Time `json:"readAt"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Record) TableName() string { return "notifications" }

var notificationDB *gorm.DB

// UseDB enables the database channel. Call once at boot:
//
//	notification.UseDB(database.DB)
func UseDB(db *gorm.DB) {
	notificationDB = db
	db.AutoMigrate(&Record{}) //nolint:errcheck
}

// Send dispatches the notification through all channels returned by Via().
// address is the recipient email for mail and the owner key for database
// records.
func Send(address string, n Notification) []error {
	var errs []error
	for _, channel := range n.Via() {
		if err := dispatch(address, channel, n); err != nil {
			logger.Error("notification: channel failed",
				"channel", channel, "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

// SendAsync dispatches the notification in a background goroutine.
func SendAsync(address string, n Notification) {
	go func() {
		Send(address, n) //nolint:errcheck
	}()
}

func dispatch(address, channel string, n Notification) error {
	switch channel {
	case "mail":
		m, ok := n.(Mailable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Mailable", n)
		}
		return sendMail(address, m.ToMail())

	case "database":
		d, ok := n.(Databaseable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Databaseable", n)
		}
		return storeDatabase(address, d.ToDatabase())

	case "webhook":
		wh, ok := n.(Webhookable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Webhookable", n)
		}
		return sendWebhook(wh.ToWebhook())

	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
}

func sendMail(address string, d MailData) error {
	to := d.To
	if to == "" {
		to = address
	}

	body := d.Body
	if body == "" {
		body = d.Text
	}

	return mail.To(to).Subject(d.Subject).Body(body).Send()
}

func storeDatabase(address string, d DatabaseData) error {
	if notificationDB == nil {
		return fmt.Errorf("notification: database channel not configured, call UseDB at boot")
	}

	raw, err := json.Marshal(d.Data)
	if err != nil {
		return fmt.Errorf("notification: marshal data: %w", err)
	}

	rec := Record{
		Address: address,
		Type:    d.Type,
		Message: d.Message,
		Data:    string(raw),
	}
	return notificationDB.Create(&rec).Error
}

func sendWebhook(d WebhookData) error {
	if d.URL == "" {
		return fmt.Errorf("notification: webhook URL not set")
	}

	req := supplyhttp.Post(d.URL).
		Body(d.Payload).
		Timeout(5 * time.Second).
		Retry(3, time.Second)

	for k, v := range d.Headers {
		req.Header(k, v)
	}

	resp, err := req.Send()
	if err != nil {
		return err
	}
	return resp.Throw()
}
