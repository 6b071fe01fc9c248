package template

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/signintech/gopdf"
	"golang.org/x/image/font/gofont/goregular"

	"snow-tracker/internal/models"
)

const fontFamily = "goregular"

type ConfirmationPDFGenerator struct{}

func NewConfirmationPDFGenerator() *ConfirmationPDFGenerator {
	return &ConfirmationPDFGenerator{}
}

// Generate renders a one-page A4 lift reservation confirmation with the QR code.
func (g *ConfirmationPDFGenerator) Generate(reservation models.ReservationRecord, qrCode []byte) ([]byte, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	// The font ships inside the binary so rendering never depends on the working directory.
	if err := pdf.AddTTFFontData(fontFamily, goregular.TTF); err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	if err := pdf.SetFont(fontFamily, "", 14); err != nil {
		return nil, fmt.Errorf("failed to set font: %w", err)
	}

	addHeader(pdf)

	pdf.SetY(80)
	if err := addReservationInfo(pdf, reservation); err != nil {
		return nil, err
	}

	if len(qrCode) > 0 {
		pdf.SetY(pdf.GetY() + 20)
		addQRCode(pdf, qrCode)
	}

	pdf.SetY(760)
	addFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func addHeader(pdf *gopdf.GoPdf) {
	pdf.SetX(40)
	pdf.SetY(40)
	_ = pdf.Cell(nil, "SNOW MOUNTAIN TRACKER - LIFT RESERVATION")
}

func addReservationInfo(pdf *gopdf.GoPdf, reservation models.ReservationRecord) error {
	info := []struct {
		Label string
		Value string
	}{
		{"Reservation ID", reservation.ID},
		{"User", reservation.User},
		{"Resort", reservation.Resort},
		{"Time Slot", reservation.TimeSlot},
		{"Status", reservation.Status},
		{"Payment", reservation.PaymentStatus},
	}

	for _, item := range info {
		pdf.SetX(40)
		if err := pdf.Cell(nil, item.Label+": "+item.Value); err != nil {
			return fmt.Errorf("failed to write %s: %w", item.Label, err)
		}
		pdf.Br(22)
	}
	return nil
}

func addQRCode(pdf *gopdf.GoPdf, qrCode []byte) {
	img, err := png.Decode(bytes.NewReader(qrCode))
	if err != nil {
		pdf.SetX(40)
		_ = pdf.Cell(nil, "Failed to load QR code")
		return
	}

	rect := &gopdf.Rect{W: 150, H: 150}
	if err := pdf.ImageFrom(img, 40, pdf.GetY(), rect); err != nil {
		pdf.SetX(40)
		_ = pdf.Cell(nil, "Failed to draw QR code")
	}
}

func addFooter(pdf *gopdf.GoPdf) {
	pdf.SetX(40)
	_ = pdf.Cell(nil, "Show this confirmation at the lift gate.")
}
