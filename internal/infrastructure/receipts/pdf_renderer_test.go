package receipts

import (
	"strings"
	"testing"
	"time"

	"marketplace_billing/internal/domain/entities"
)

func testReceipt() entities.Receipt {
	c, _ := entities.ComputeCommission(1000)
	return entities.Receipt{
		Number:         "pi_1",
		PaymentID:      "pi_1",
		Date:           time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		Service:        "Aircon <cleaning>",
		ProviderEmail:  "provider@example.com",
		PayerEmail:     "payer@example.com",
		Currency:       "php",
		PaymentMethod:  "card",
		CommissionRate: "15%",
		Commission:     c,
		Recipient:      entities.ReceiptRecipientProvider,
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(testReceipt())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Payment Received",
		"Receipt #pi_1",
		"March 4, 2026",
		"PHP 1000.00",
		"PHP 150.00",
		"PHP 1150.00",
		"Aircon &lt;cleaning&gt;",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in rendered receipt", want)
		}
	}
	if strings.Contains(html, "Booking</td>") {
		t.Fatalf("booking row must be omitted without a booking id")
	}
}

func TestRenderHTML_PayerVariant(t *testing.T) {
	r := testReceipt().ForPayer()
	r.BookingID = "bk-1"

	html, err := RenderHTML(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "Payment Receipt") || !strings.Contains(html, "bk-1") {
		t.Fatalf("unexpected payer receipt: %s", html)
	}
}
