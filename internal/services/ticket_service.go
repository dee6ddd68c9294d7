package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"javaterra/internal/domain/models"
	"javaterra/internal/repositories"
	"javaterra/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// TicketService renders the printable e-ticket of a booking.
type TicketService struct {
	BookingRepo repositories.BookingRepo
	DB          *sql.DB
	RequestID   string
	Loader      func(ctx context.Context, bookingID string) (models.Booking, error)
}

// GenerateETicket returns the PDF bytes and a download filename.
func (s TicketService) GenerateETicket(ctx context.Context, bookingID string) ([]byte, string, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "ticket", "generate_eticket", "booking_id="+b.BookingID)
	return buildETicketPDF(b)
}

func (s TicketService) load(ctx context.Context, bookingID string) (models.Booking, error) {
	if s.Loader != nil {
		return s.Loader(ctx, bookingID)
	}
	svc := BookingService{BookingRepo: s.BookingRepo, DB: s.DB, RequestID: s.RequestID}
	return svc.GetByPublicID(ctx, bookingID)
}

func buildETicketPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Javaterra E-Ticket "+b.BookingID, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "JAVATERRA E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Booking ID : "+b.BookingID)
	pdf.Ln(11)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger      : %s", utils.Safe(b.Username, "-")),
		fmt.Sprintf("Phone          : %s", utils.Safe(b.Phone, "-")),
		fmt.Sprintf("Email          : %s", utils.Safe(b.Email, "-")),
		fmt.Sprintf("Route          : %s -> %s", utils.Safe(b.Departure, "-"), utils.Safe(b.Destination, "-")),
		fmt.Sprintf("Date / Time    : %s %s", utils.Safe(b.Date, "-"), utils.Safe(b.Time, "-")),
		fmt.Sprintf("Bus            : %s", utils.Safe(b.BusType, "-")),
		fmt.Sprintf("Seats          : %d", b.Quantity),
		fmt.Sprintf("Total price    : %s", utils.DisplayPrice(b.TotalPrice)),
		fmt.Sprintf("Payment status : %s", utils.Safe(b.PaymentStatus, "-")),
		fmt.Sprintf("Booking status : %s", utils.Safe(b.BookingStatus, "-")),
		fmt.Sprintf("Booked at      : %s", utils.Safe(b.CreatedAt, "-")),
		fmt.Sprintf("Issued at      : %s UTC", utils.FormatTimestamp(utils.NowUTC())),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, tr(line))
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Show this e-ticket together with an identity card when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s.pdf", safeFilenamePart(b.BookingID))
	return buf.Bytes(), filename, nil
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
