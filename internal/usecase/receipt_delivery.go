package usecase

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"marketplace_billing/internal/domain/entities"
	"marketplace_billing/internal/usecase/interfaces"
)

type receiptDeliverer interface {
	Deliver(ctx context.Context, payment entities.PaymentRecord, receipt entities.Receipt) (delivery, error)
}

type delivery struct {
	InvoiceID  string
	InvoiceURL string
	SentTo     []string
}

// invoiceDeliverer raises a hosted invoice against the payer customer, marks
// it paid out of band and mails the provider a link to it. The processor only
// emails the invoice to the customer's own address.
type invoiceDeliverer struct {
	processor interfaces.IPaymentProcessor
	mailer    interfaces.IEmailSender
}

func (d *invoiceDeliverer) Deliver(ctx context.Context, payment entities.PaymentRecord, receipt entities.Receipt) (delivery, error) {
	if d.processor == nil {
		return delivery{}, ErrPaymentProcessorNotReady
	}
	if d.mailer == nil {
		return delivery{}, ErrEmailSenderNotReady
	}

	metadata := make(map[string]string, len(payment.Metadata))
	for k, v := range payment.Metadata {
		metadata[k] = v
	}

	inv, err := d.processor.CreateInvoice(ctx, entities.InvoiceInput{
		CustomerID:   payment.CustomerID,
		AmountMinor:  receipt.Commission.TotalMinor,
		Currency:     payment.Currency,
		Description:  "Receipt for payment " + payment.ID,
		Metadata:     metadata,
		CustomFields: invoiceFields(receipt),
	})
	if err != nil {
		return delivery{}, err
	}
	log.Printf("[receipt][invoice] invoice created invoice_id=%s payment_id=%s", inv.ID, payment.ID)

	if inv, err = d.processor.FinalizeInvoice(ctx, inv.ID); err != nil {
		return delivery{}, err
	}
	if inv, err = d.processor.MarkInvoicePaid(ctx, inv.ID); err != nil {
		return delivery{}, err
	}
	if inv.Status != entities.InvoiceStatusPaid {
		return delivery{}, fmt.Errorf("%w: invoice %s is %q after payment", ErrInvoiceNotPaid, inv.ID, inv.Status)
	}
	if inv, err = d.processor.SendInvoice(ctx, inv.ID); err != nil {
		return delivery{}, err
	}
	log.Printf("[receipt][invoice] invoice sent invoice_id=%s status=%s", inv.ID, inv.Status)

	subject, htmlBody, plainBody := invoiceEmail(receipt, inv)
	if err := d.mailer.Send(ctx, entities.Email{
		ToAddress: receipt.ProviderEmail,
		Subject:   subject,
		HTMLBody:  htmlBody,
		PlainBody: plainBody,
	}); err != nil {
		return delivery{}, err
	}

	return delivery{InvoiceID: inv.ID, InvoiceURL: inv.HostedURL, SentTo: []string{receipt.ProviderEmail}}, nil
}

// invoiceFields are the custom fields printed on the hosted invoice. Stripe
// accepts at most four.
func invoiceFields(r entities.Receipt) []entities.InvoiceField {
	currency := strings.ToUpper(r.Currency)
	return []entities.InvoiceField{
		{Name: "Service", Value: r.Service},
		{Name: fmt.Sprintf("Original Amount (%s)", currency), Value: entities.FormatMajor(r.Commission.OriginalMinor)},
		{Name: fmt.Sprintf("Commission Amount (%s)", currency), Value: entities.FormatMajor(r.Commission.CommissionMinor)},
		{Name: "Commission Rate", Value: r.CommissionRate},
	}
}

// documentDeliverer renders the receipt to PDF and mails it as an attachment.
type documentDeliverer struct {
	renderer  interfaces.IReceiptRenderer
	mailer    interfaces.IEmailSender
	payerCopy bool
}

func (d *documentDeliverer) Deliver(ctx context.Context, _ entities.PaymentRecord, receipt entities.Receipt) (delivery, error) {
	if d.renderer == nil {
		return delivery{}, ErrReceiptRendererNotReady
	}
	if d.mailer == nil {
		return delivery{}, ErrEmailSenderNotReady
	}

	recipients := []entities.Receipt{receipt}
	if d.payerCopy && receipt.PayerEmail != "" {
		recipients = append(recipients, receipt.ForPayer())
	}

	out := delivery{}
	for _, r := range recipients {
		pdf, err := d.renderer.Render(ctx, r)
		if err != nil {
			return out, err
		}
		to := r.ProviderEmail
		if r.Recipient == entities.ReceiptRecipientPayer {
			to = r.PayerEmail
		}

		subject, htmlBody, plainBody := documentEmail(r)
		if err := d.mailer.Send(ctx, entities.Email{
			ToAddress: to,
			Subject:   subject,
			HTMLBody:  htmlBody,
			PlainBody: plainBody,
			Attachments: []entities.EmailAttachment{{
				Filename:    fmt.Sprintf("receipt-%s.pdf", r.Number),
				ContentType: "application/pdf",
				Content:     pdf,
			}},
		}); err != nil {
			return out, err
		}
		log.Printf("[receipt][document] receipt mailed payment_id=%s recipient=%s to=%s bytes=%d", r.PaymentID, r.Recipient, to, len(pdf))
		out.SentTo = append(out.SentTo, to)
	}
	return out, nil
}

func invoiceEmail(r entities.Receipt, inv entities.Invoice) (subject, htmlBody, plainBody string) {
	subject = fmt.Sprintf("Payment received for %s", r.Service)
	total := fmt.Sprintf("%s %s", strings.ToUpper(r.Currency), entities.FormatMajor(r.Commission.TotalMinor))
	plainBody = fmt.Sprintf(
		"A payment of %s was completed for %q.\nReceipt number: %s\nView the invoice: %s\n",
		total, r.Service, r.Number, inv.HostedURL,
	)
	htmlBody = fmt.Sprintf(
		"<p>A payment of <strong>%s</strong> was completed for %s.</p><p>Receipt number: %s</p><p><a href=\"%s\">View the invoice</a></p>",
		html.EscapeString(total), html.EscapeString(r.Service), html.EscapeString(r.Number), html.EscapeString(inv.HostedURL),
	)
	return subject, htmlBody, plainBody
}

func documentEmail(r entities.Receipt) (subject, htmlBody, plainBody string) {
	subject = fmt.Sprintf("Your receipt for %s", r.Service)
	if r.Recipient == entities.ReceiptRecipientProvider {
		subject = fmt.Sprintf("Payment received for %s", r.Service)
	}
	plainBody = fmt.Sprintf("Receipt %s is attached.\n", r.Number)
	htmlBody = fmt.Sprintf("<p>Receipt %s is attached.</p>", html.EscapeString(r.Number))
	return subject, htmlBody, plainBody
}
