package notify

import (
	"fmt"
	"strings"
)

const storeName = "Power Supps"

// ItemLine is one purchased line in a confirmation email.
type ItemLine struct {
	Name     string
	Quantity int
	Price    int64
}

func formatCents(v int64) string {
	return fmt.Sprintf("R$ %d.%02d", v/100, v%100)
}

// PurchaseConfirmation itemizes the order for the buyer.
func PurchaseConfirmation(recipient, customerName string, items []ItemLine, total int64) Message {
	var lines []string
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %s (x%d) - %s",
			item.Name, item.Quantity, formatCents(item.Price*int64(item.Quantity))))
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nThank you for your purchase at %s!\n\nYour order:\n\n%s\n\nTotal: %s\n\nWe will follow up with shipping updates soon.\n\nThe %s team",
		customerName, storeName, strings.Join(lines, "\n"), formatCents(total), storeName,
	)

	return Message{
		To:      []string{recipient},
		Subject: "Your order confirmation - " + storeName,
		Body:    body,
	}
}

func RegistrationConfirmation(recipient, userName string) Message {
	return Message{
		To:      []string{recipient},
		Subject: "Welcome to " + storeName,
		Body: fmt.Sprintf(
			"Hello %s,\n\nYour %s account was created successfully.\n\nThanks for joining us!",
			userName, storeName,
		),
	}
}

// ContactMessage forwards a visitor inquiry to the store admin.
func ContactMessage(adminEmail, name, email, subject, message string) Message {
	if subject == "" {
		subject = "No subject"
	}

	return Message{
		To:      []string{adminEmail},
		Subject: fmt.Sprintf("[%s] Contact: %s", storeName, subject),
		Body: fmt.Sprintf(
			"New contact received:\n\nName: %s\nEmail: %s\nSubject: %s\n\nMessage:\n%s",
			name, email, subject, message,
		),
	}
}

func PasswordRecovery(recipient, link string) Message {
	return Message{
		To:      []string{recipient},
		Subject: "Password recovery - " + storeName,
		Body: fmt.Sprintf(
			"We received a request to reset your %s password.\n\nUse the link below to continue:\n%s\n\nIf you did not request this, ignore this email.",
			storeName, link,
		),
	}
}

// SalesReport packages the aggregate summary, with the rendered chart
// attached when available.
func SalesReport(adminEmail string, users, products, orders int, revenue int64, chart *Attachment) Message {
	body := fmt.Sprintf(
		"%s SALES REPORT\n\n- Registered users: %d\n- Registered products: %d\n- Orders placed: %d\n- Estimated revenue: %s\n",
		strings.ToUpper(storeName), users, products, orders, formatCents(revenue),
	)
	if chart != nil {
		body += "\nThe best-selling products chart is attached."
	}

	return Message{
		To:         []string{adminEmail},
		Subject:    "Sales report - " + storeName,
		Body:       body,
		Attachment: chart,
	}
}
