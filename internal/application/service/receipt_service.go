package service

import (
	"context"
	"fmt"
	"log"

	"github.com/kipkoech/salespoint-api/internal/config"
	"github.com/kipkoech/salespoint-api/internal/domain/entity"
	"github.com/kipkoech/salespoint-api/internal/domain/enum"
	"github.com/kipkoech/salespoint-api/internal/domain/repository"
	"github.com/kipkoech/salespoint-api/pkg/apperror"
	"github.com/kipkoech/salespoint-api/pkg/email"
	"github.com/kipkoech/salespoint-api/pkg/printer"
)

// ReceiptService renders completed sales as receipts and delivers them to
// the thermal printer or the customer's inbox.
type ReceiptService struct {
	saleRepo     repository.SaleRepository
	printer      printer.Printer
	emailService *email.EmailService
	store        config.StoreConfig
	printerType  string
	printerWidth int
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	saleRepo repository.SaleRepository,
	p printer.Printer,
	emailService *email.EmailService,
	store config.StoreConfig,
	printerCfg config.PrinterConfig,
) *ReceiptService {
	width := printerCfg.Width
	if width <= 0 {
		width = 32
	}
	return &ReceiptService{
		saleRepo:     saleRepo,
		printer:      p,
		emailService: emailService,
		store:        store,
		printerType:  printerCfg.Type,
		printerWidth: width,
	}
}

// BuildReceipt composes the canonical receipt view of a sale. Every legacy
// or optional column is resolved to one display value here; amounts are
// carried verbatim from the sale record and never recomputed. Building the
// same sale twice yields identical receipts.
func BuildReceipt(sale *entity.Sale, header entity.ReceiptHeader) *entity.Receipt {
	r := &entity.Receipt{
		Header:        header,
		ReceiptNumber: sale.ResolvedReceiptNumber(),
		Date:          sale.SoldAt.Format("2006-01-02 15:04"),
		PaymentMethod: enum.PaymentLabel(sale.PaymentMethod),
		SubTotal:      float64(sale.SubTotal) / 100,
		TaxRate:       sale.ResolvedTaxRate(),
		Tax:           float64(sale.ResolvedTaxCents()) / 100,
		CCFee:         float64(sale.CCFee) / 100,
		Total:         float64(sale.Total) / 100,
	}

	if sale.Customer != nil {
		r.Customer = sale.Customer.Name
	}
	if sale.ConfirmationNumber != nil {
		r.ConfirmationNumber = *sale.ConfirmationNumber
	}

	for i := range sale.Items {
		item := &sale.Items[i]
		name, unit := item.ResolvedName()
		price := item.ResolvedPriceCents()
		r.Items = append(r.Items, entity.ReceiptLine{
			Name:      name,
			Unit:      unit,
			Quantity:  item.Quantity,
			UnitPrice: float64(price) / 100,
			Subtotal:  float64(price*int64(item.Quantity)) / 100,
		})
	}

	return r
}

func (s *ReceiptService) header() entity.ReceiptHeader {
	return entity.ReceiptHeader{
		StoreName: s.store.Name,
		Address:   s.store.Address,
		Phone:     s.store.Phone,
	}
}

// GetReceipt returns the receipt view of a completed sale
func (s *ReceiptService) GetReceipt(ctx context.Context, saleID uint) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return BuildReceipt(sale, s.header()), nil
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetPrinterStatus returns printer connection status.
func (s *ReceiptService) GetPrinterStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// PrintReceipt renders a sale's receipt and sends it to the printer.
// The receipt is returned either way so the handler can fall back to JSON
// when the printer is disabled.
func (s *ReceiptService) PrintReceipt(ctx context.Context, saleID uint) (*entity.Receipt, error) {
	receipt, err := s.GetReceipt(ctx, saleID)
	if err != nil {
		return nil, err
	}

	data := FormatReceipt(receipt, s.printerWidth)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (sale %d): %v", saleID, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// TestPrint sends a test page to the printer.
func (s *ReceiptService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header:        s.header(),
		ReceiptNumber: "TEST-001",
		Date:          "Test Date",
		PaymentMethod: "CASH",
		Items: []entity.ReceiptLine{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 10.00, Subtotal: 10.00},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 5.00, Subtotal: 10.00},
		},
		SubTotal: 20.00,
		TaxRate:  0,
		Tax:      0.00,
		Total:    20.00,
	}

	data := FormatReceipt(receipt, s.printerWidth)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// EmailReceipt sends a sale's receipt to the given address. When no address
// is given the customer's email on file is used.
func (s *ReceiptService) EmailReceipt(ctx context.Context, saleID uint, toEmail string) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	if toEmail == "" {
		if sale.Customer == nil || sale.Customer.Email == nil || *sale.Customer.Email == "" {
			return nil, apperror.NewBadRequestError("No email address on file for this sale")
		}
		toEmail = *sale.Customer.Email
	}

	receipt := BuildReceipt(sale, s.header())

	data := &email.ReceiptData{
		StoreName:          receipt.Header.StoreName,
		StoreAddress:       receipt.Header.Address,
		StorePhone:         receipt.Header.Phone,
		ReceiptNumber:      receipt.ReceiptNumber,
		Date:               receipt.Date,
		Customer:           receipt.Customer,
		PaymentMethod:      receipt.PaymentMethod,
		ConfirmationNumber: receipt.ConfirmationNumber,
		SubTotal:           fmt.Sprintf("%.2f", receipt.SubTotal),
		TaxRate:            fmt.Sprintf("%.2f", receipt.TaxRate),
		Tax:                fmt.Sprintf("%.2f", receipt.Tax),
		Total:              fmt.Sprintf("%.2f", receipt.Total),
	}
	if receipt.CCFee > 0 {
		data.CCFee = fmt.Sprintf("%.2f", receipt.CCFee)
	}
	for _, line := range receipt.Items {
		data.Lines = append(data.Lines, email.ReceiptLine{
			Name:      line.Name,
			Unit:      line.Unit,
			Quantity:  line.Quantity,
			UnitPrice: fmt.Sprintf("%.2f", line.UnitPrice),
			Subtotal:  fmt.Sprintf("%.2f", line.Subtotal),
		})
	}

	if err := s.emailService.SendReceiptEmail(toEmail, data); err != nil {
		return receipt, err
	}

	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, charWidth int) []byte {
	doc := printer.NewDocument(charWidth)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Sale info
	doc.KeyValue("Receipt:", r.ReceiptNumber).
		KeyValue("Date:", r.Date)

	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	doc.KeyValue("Payment:", r.PaymentMethod)
	if r.ConfirmationNumber != "" {
		doc.KeyValue("Conf. No:", r.ConfirmationNumber)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		name := item.Name
		if item.Unit != "" {
			name = fmt.Sprintf("%s (%s)", item.Name, item.Unit)
		}
		doc.ItemLine(item.Quantity, name, fmt.Sprintf("%.2f", item.Subtotal))
		if item.Quantity > 1 {
			doc.TextF("  @ %.2f each", item.UnitPrice)
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", r.SubTotal))
	doc.KeyValue(fmt.Sprintf("Tax (%.2f%%):", r.TaxRate), fmt.Sprintf("%.2f", r.Tax))
	if r.CCFee > 0 {
		doc.KeyValue("CC Fee (3%):", fmt.Sprintf("%.2f", r.CCFee))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.Total)).
		SetBold(false)

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for your business!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
