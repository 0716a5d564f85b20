package service

import (
	"context"
	"fmt"
	"strings"

	"rentaldesk-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const dateLayout = "02 Jan 2006"

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(toName, toEmail, subject, body string) error {
	if s.apiKey == "" {
		return fmt.Errorf("sendgrid api key is not configured")
	}
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendClientConfirmation(ctx context.Context, req *domain.RentRequest, vehicle *domain.Vehicle) error {
	subject := fmt.Sprintf("We received your booking request %s", req.Code)
	body := fmt.Sprintf(
		"Hello %s,\n\nWe received your request to rent a %s.\n\n"+
			"Request code: %s\n"+
			"Pick-up: %s\n"+
			"Return: %s\n\n"+
			"Our team reviews every request by hand; you will hear from us shortly.\n",
		req.ClientName, vehicle.DisplayName(), req.Code,
		req.StartDate.Format(dateLayout), req.EndDate.Format(dateLayout),
	)
	return s.send(req.ClientName, req.ClientEmail, subject, body)
}

func (s *emailService) SendAdminNotification(ctx context.Context, adminEmail string, req *domain.RentRequest, vehicle *domain.Vehicle) error {
	subject := fmt.Sprintf("New booking request %s", req.Code)
	availability := "no conflicts on the calendar"
	if !req.IsApprovable {
		availability = "OVERLAPS an existing booking, review carefully"
	}
	body := fmt.Sprintf(
		"A new booking request needs review.\n\n"+
			"Code: %s\n"+
			"Client: %s <%s> %s\n"+
			"Vehicle: %s (%s)\n"+
			"Dates: %s to %s\n"+
			"Availability: %s\n\n"+
			"Message from the client:\n%s\n",
		req.Code, req.ClientName, req.ClientEmail, req.ClientPhone,
		vehicle.DisplayName(), vehicle.PlateNumber,
		req.StartDate.Format(dateLayout), req.EndDate.Format(dateLayout),
		availability, req.Message,
	)
	return s.send("", adminEmail, subject, body)
}

func (s *emailService) SendPendingSummary(ctx context.Context, adminEmail string, pending []domain.RentRequest, vehicles map[int32]domain.Vehicle) error {
	subject := fmt.Sprintf("%d booking request(s) awaiting review", len(pending))

	var b strings.Builder
	fmt.Fprintf(&b, "The following %d request(s) are still open:\n\n", len(pending))
	for _, req := range pending {
		vehicleLabel := fmt.Sprintf("vehicle #%d", req.VehicleID)
		if v, ok := vehicles[req.VehicleID]; ok {
			vehicleLabel = v.DisplayName()
		}
		fmt.Fprintf(&b, "- %s | %s | %s | %s to %s | %s\n",
			req.Code, req.Status, vehicleLabel,
			req.StartDate.Format(dateLayout), req.EndDate.Format(dateLayout),
			req.ClientName,
		)
	}
	b.WriteString("\nPlease review them in the admin panel.\n")

	return s.send("", adminEmail, subject, b.String())
}

func (s *emailService) SendStatusUpdate(ctx context.Context, req *domain.RentRequest, vehicle *domain.Vehicle) error {
	var statusLine string
	switch req.Status {
	case domain.RequestStatusApproved:
		statusLine = "Good news: your request has been approved."
	case domain.RequestStatusRejected:
		statusLine = "Unfortunately we cannot accommodate your request for these dates."
	case domain.RequestStatusContacted:
		statusLine = "We tried to reach you about your request; please get back to us."
	default:
		statusLine = fmt.Sprintf("Your request is now %s.", req.Status)
	}

	subject := fmt.Sprintf("Update on your booking request %s", req.Code)
	body := fmt.Sprintf(
		"Hello %s,\n\n%s\n\n"+
			"Request code: %s\n"+
			"Vehicle: %s\n"+
			"Dates: %s to %s\n",
		req.ClientName, statusLine, req.Code, vehicle.DisplayName(),
		req.StartDate.Format(dateLayout), req.EndDate.Format(dateLayout),
	)
	return s.send(req.ClientName, req.ClientEmail, subject, body)
}
