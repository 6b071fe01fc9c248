package reservations

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/skip2/go-qrcode"

	"snow-tracker/internal/models"
	"snow-tracker/internal/reservations/template"
)

// ListOptions contains options for filtering, sorting and paging the reservation table
type ListOptions struct {
	Status        string `validate:"omitempty,oneof=Confirmed Pending Cancelled"`
	PaymentStatus string `validate:"omitempty,oneof=Paid Unpaid Refunded"`
	Resort        string
	SortBy        string `validate:"omitempty,oneof=id user resort status"`
	SortDesc      bool
	Limit         int `validate:"gte=0,lte=100"`
	Offset        int `validate:"gte=0"`
}

// Store is the read side of the reservation table.
type Store interface {
	GetByID(ctx context.Context, id string) (*models.ReservationRecord, error)
	List(ctx context.Context, options ListOptions) ([]models.ReservationRecord, error)
}

type Service struct {
	store    Store
	validate *validator.Validate
	pdf      *template.ConfirmationPDFGenerator
	qrSize   int
}

func NewService(store Store) *Service {
	return &Service{
		store:    store,
		validate: validator.New(),
		pdf:      template.NewConfirmationPDFGenerator(),
		qrSize:   256,
	}
}

// List validates options and returns the matching reservations.
func (s *Service) List(ctx context.Context, options ListOptions) ([]models.ReservationRecord, error) {
	if err := s.validate.Struct(options); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return s.store.List(ctx, options)
}

// Get looks a reservation up by id. The leading '#' is optional.
func (s *Service) Get(ctx context.Context, id string) (*models.ReservationRecord, error) {
	return s.store.GetByID(ctx, NormalizeID(id))
}

// ConfirmationPayload is what the confirmation QR code encodes.
type ConfirmationPayload struct {
	ReservationID string `json:"reservation_id"`
	User          string `json:"user"`
	Resort        string `json:"resort"`
	TimeSlot      string `json:"time_slot"`
	Status        string `json:"status"`
}

// ConfirmationQR renders the reservation confirmation as a PNG QR code.
func (s *Service) ConfirmationQR(ctx context.Context, id string) ([]byte, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.encodeQR(record)
}

// ConfirmationPDF renders the printable confirmation, QR code included.
func (s *Service) ConfirmationPDF(ctx context.Context, id string) ([]byte, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	qr, err := s.encodeQR(record)
	if err != nil {
		return nil, err
	}
	return s.pdf.Generate(*record, qr)
}

func (s *Service) encodeQR(record *models.ReservationRecord) ([]byte, error) {
	data, err := json.Marshal(ConfirmationPayload{
		ReservationID: record.ID,
		User:          record.User,
		Resort:        record.Resort,
		TimeSlot:      record.TimeSlot,
		Status:        record.Status,
	})
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(string(data), qrcode.Medium, s.qrSize)
}

func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if id != "" && !strings.HasPrefix(id, "#") {
		return "#" + id
	}
	return id
}
