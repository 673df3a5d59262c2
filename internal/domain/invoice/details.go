package invoice

type Shop struct {
	Name    string `json:"name"`
	URL     string `json:"link,omitempty"`
	LogoURL string `json:"logo,omitempty"`
}

// Details is what every invoice endpoint returns: the invoice plus the context
// needed to render it.
type Details struct {
	Invoice             Invoice          `json:"invoice"`
	Shop                Shop             `json:"shop"`
	Currency            CryptoCurrency   `json:"paysys"`
	AvailableCurrencies []CryptoCurrency `json:"allowed_psys_cids"`
	// ActiveInvoiceID points at the replacement invoice when this one was superseded.
	ActiveInvoiceID ID `json:"active_invoice_id,omitempty"`
}

func (d Details) CanChangeCurrency() bool {
	return len(d.AvailableCurrencies) > 1 && d.Invoice.StatusCode != StatusCodePartialPayment
}

// RedirectTarget returns the replacement invoice id when the server superseded this invoice.
func (d Details) RedirectTarget() (ID, bool) {
	if !d.Invoice.IsReplacedWithNewInvoice() || d.ActiveInvoiceID.IsBlank() {
		return "", false
	}
	return d.ActiveInvoiceID.Trimmed(), true
}

// FindCurrency looks up one of the available currencies by id.
func (d Details) FindCurrency(id CurrencyID) (CryptoCurrency, bool) {
	for _, c := range d.AvailableCurrencies {
		if c.ID == id {
			return c, true
		}
	}
	return CryptoCurrency{}, false
}
