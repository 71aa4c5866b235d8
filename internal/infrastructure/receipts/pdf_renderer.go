package receipts

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log"
	"os"
	"strings"
	"time"

	"marketplace_billing/internal/domain/entities"
	"marketplace_billing/internal/usecase/interfaces"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const defaultRenderTimeout = 30 * time.Second

//go:embed templates/receipt.html
var templateFS embed.FS

var receiptTemplate = template.Must(template.ParseFS(templateFS, "templates/receipt.html"))

type receiptView struct {
	Title          string
	Number         string
	Date           string
	Service        string
	BookingID      string
	ProviderEmail  string
	PayerEmail     string
	PaymentMethod  string
	Currency       string
	CommissionRate string
	Original       string
	Commission     string
	Total          string
}

// PDFRenderer prints receipts to PDF with headless Chrome.
type PDFRenderer struct {
	execPath string
	timeout  time.Duration
}

var _ interfaces.IReceiptRenderer = (*PDFRenderer)(nil)

// NewPDFRenderer uses CHROME_EXEC_PATH when set, otherwise chromedp's lookup.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{
		execPath: strings.TrimSpace(os.Getenv("CHROME_EXEC_PATH")),
		timeout:  defaultRenderTimeout,
	}
}

// RenderHTML executes the receipt template.
func RenderHTML(r entities.Receipt) (string, error) {
	view := receiptView{
		Title:          "Payment Receipt",
		Number:         r.Number,
		Date:           r.DisplayDate(),
		Service:        r.Service,
		BookingID:      r.BookingID,
		ProviderEmail:  r.ProviderEmail,
		PayerEmail:     r.PayerEmail,
		PaymentMethod:  r.PaymentMethod,
		Currency:       strings.ToUpper(r.Currency),
		CommissionRate: r.CommissionRate,
		Original:       entities.FormatMajor(r.Commission.OriginalMinor),
		Commission:     entities.FormatMajor(r.Commission.CommissionMinor),
		Total:          entities.FormatMajor(r.Commission.TotalMinor),
	}
	if r.Recipient == entities.ReceiptRecipientProvider {
		view.Title = "Payment Received"
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (p *PDFRenderer) Render(ctx context.Context, r entities.Receipt) ([]byte, error) {
	html, err := RenderHTML(r)
	if err != nil {
		log.Printf("[receipt][pdf] template failed payment_id=%s err=%v", r.PaymentID, err)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if p.execPath != "" {
		opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.ExecPath(p.execPath))
		var cancelAlloc context.CancelFunc
		ctx, cancelAlloc = chromedp.NewExecAllocator(ctx, opts...)
		defer cancelAlloc()
	}

	ctx, cancelBrowser := chromedp.NewContext(ctx)
	defer cancelBrowser()

	var pdf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			out, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	)
	if err != nil {
		log.Printf("[receipt][pdf] print failed payment_id=%s err=%v", r.PaymentID, err)
		return nil, err
	}
	log.Printf("[receipt][pdf] rendered payment_id=%s recipient=%s bytes=%d", r.PaymentID, r.Recipient, len(pdf))
	return pdf, nil
}
