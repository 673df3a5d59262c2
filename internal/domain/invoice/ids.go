package invoice

import "strings"

// ID identifies an invoice on the Plisio side.
type ID string

func (id ID) Trimmed() ID    { return ID(strings.TrimSpace(string(id))) }
func (id ID) IsBlank() bool  { return id.Trimmed() == "" }
func (id ID) String() string { return string(id) }

// ViewKey is the capability token returned when the invoice was created.
// It grants read/update access to a single invoice.
type ViewKey string

func (k ViewKey) Trimmed() ViewKey { return ViewKey(strings.TrimSpace(string(k))) }
func (k ViewKey) IsBlank() bool    { return k.Trimmed() == "" }
func (k ViewKey) String() string   { return string(k) }

// CurrencyID is the Plisio payment system id (psys_cid) of a crypto currency.
type CurrencyID string

func (c CurrencyID) Trimmed() CurrencyID { return CurrencyID(strings.TrimSpace(string(c))) }
func (c CurrencyID) String() string      { return string(c) }

// CurrencyCode is the ticker shown to the user next to amounts.
type CurrencyCode string

func (c CurrencyCode) String() string { return string(c) }

// Well-known crypto currency ids accepted by Plisio.
const (
	CurrencyETH  CurrencyID = "ETH"
	CurrencyBTC  CurrencyID = "BTC"
	CurrencyLTC  CurrencyID = "LTC"
	CurrencyDASH CurrencyID = "DASH"
	CurrencyTZEC CurrencyID = "TZEC"
	CurrencyDOGE CurrencyID = "DOGE"
	CurrencyBCH  CurrencyID = "BCH"
	CurrencyXMR  CurrencyID = "XMR"
	CurrencyUSDT CurrencyID = "USDT"
	CurrencyUSDC CurrencyID = "USDC"
	CurrencySHIB CurrencyID = "SHIB"
	CurrencyBTTC CurrencyID = "BTTC"
)
