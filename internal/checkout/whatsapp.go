package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"abarrotes-backend/internal/domain"
)

// Message renders the human-readable order summary handed to the messaging
// channel. The wording is presentation, but the data is contract: order id,
// itemized lines with per-line subtotals, grand total, delivery address or
// pickup flag, and the payment method label.
func Message(o domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Nuevo pedido* #%s\n\n", o.ID)
	for _, l := range o.Lines {
		switch l.Kind {
		case domain.LineBulk:
			w := 0.0
			if l.Weight != nil {
				w = *l.Weight
			}
			fmt.Fprintf(&b, "- %s (%.2f kg): $%.2f\n", l.Name, w, l.Contribution())
			if l.Note != "" {
				fmt.Fprintf(&b, "  Nota: %s\n", l.Note)
			}
		case domain.LineCombo:
			fmt.Fprintf(&b, "- Combo %s: $%.2f\n", l.Name, l.Contribution())
		default:
			fmt.Fprintf(&b, "- %s x%d: $%.2f\n", l.Name, l.Quantity, l.Contribution())
		}
	}
	fmt.Fprintf(&b, "\nSubtotal: $%.2f\n", o.Subtotal)
	if o.DiscountAmount > 0 {
		fmt.Fprintf(&b, "Descuento: -$%.2f\n", o.DiscountAmount)
	}
	if o.PointsUsed > 0 {
		fmt.Fprintf(&b, "Puntos usados: %d\n", o.PointsUsed)
	}
	if o.Pickup {
		b.WriteString("Entrega: recoger en tienda\n")
	} else {
		fmt.Fprintf(&b, "Envio: $%.2f\nDireccion: %s\n", o.DeliveryCost, o.Address)
	}
	fmt.Fprintf(&b, "Pago: %s\n", PaymentLabel(o.PaymentMethod))
	fmt.Fprintf(&b, "*Total: $%.2f*", o.Total)
	return b.String()
}

// PaymentLabel maps stored payment method keys to their display labels.
func PaymentLabel(method string) string {
	switch method {
	case "cash":
		return "Efectivo"
	case "card":
		return "Tarjeta"
	case "transfer":
		return "Transferencia"
	default:
		return method
	}
}

// DeepLink builds the wa.me handoff URL for the store's WhatsApp number.
func DeepLink(phone string, o domain.Order) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(Message(o)))
}
