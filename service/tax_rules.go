package service

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// TaxPatternRule identifies one explicit tax kind. Keywords are matched as
// upper-case substrings in keyword mode (structured and row inputs); Amounts
// pulls "<marker>: <figure>" tokens out of raw upper-cased line text. Rules
// are evaluated in slice order and every rule gets a chance on every unit —
// GST statements routinely itemize CGST and SGST on the same line.
type TaxPatternRule struct {
	Kind     string
	Keywords []string
	Amounts  *regexp.Regexp
}

// CategoryRule maps spending keywords to a typical GST rate, used only to
// infer tax when nothing explicit was found. First match wins, so rules go
// from most specific to most generic. A zero rate means the category never
// triggers inference (exempt or outside GST).
type CategoryRule struct {
	Name     string
	Keywords []string
	GSTRate  decimal.Decimal
}

// DefaultTaxRules returns the production explicit-tax rule set. The slice
// order is part of the contract: reports list types in first-seen order and
// keyword precedence must stay deterministic.
func DefaultTaxRules() []TaxPatternRule {
	return []TaxPatternRule{
		{Kind: "GST", Keywords: []string{"GST", "GOODS AND SERVICES TAX", "G.S.T"}, Amounts: regexp.MustCompile(`GST[:\s]*₹?[\d,]+\.?\d*`)},
		{Kind: "CGST", Keywords: []string{"CGST", "CENTRAL GST", "C.G.S.T"}, Amounts: regexp.MustCompile(`CGST[:\s]*₹?[\d,]+\.?\d*`)},
		{Kind: "SGST", Keywords: []string{"SGST", "STATE GST", "S.G.S.T"}, Amounts: regexp.MustCompile(`SGST[:\s]*₹?[\d,]+\.?\d*`)},
		{Kind: "IGST", Keywords: []string{"IGST", "INTEGRATED GST", "I.G.S.T"}, Amounts: regexp.MustCompile(`IGST[:\s]*₹?[\d,]+\.?\d*`)},
		{Kind: "TDS", Keywords: []string{"TDS", "TAX DEDUCTED AT SOURCE", "T.D.S"}, Amounts: regexp.MustCompile(`TDS[:\s]*₹?[\d,]+\.?\d*`)},
		{Kind: "TCS", Keywords: []string{"TCS", "TAX COLLECTED AT SOURCE", "T.C.S"}, Amounts: regexp.MustCompile(`TCS[:\s]*₹?[\d,]+\.?\d*`)},
		{Kind: "CESS", Keywords: []string{"CESS", "EDUCATION CESS", "HEALTH CESS"}, Amounts: regexp.MustCompile(`CESS[:\s]*₹?[\d,]+\.?\d*`)},
		{Kind: "STAMP_DUTY", Keywords: []string{"STAMP DUTY", "STAMP", "DUTY"}, Amounts: regexp.MustCompile(`STAMP\s*DUTY[:\s]*₹?[\d,]+\.?\d*`)},
	}
}

// DefaultCategoryRules returns the production spending categories with the
// GST rates assumed for inference. Rates are heuristic approximations, not
// tax advice: restaurants at the non-AC 5%, most electronics and services
// at 18%, hotels in the mid tariff band at 12%. Fuel and healthcare carry a
// zero rate — fuel sits outside GST and healthcare is broadly exempt.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{
			Name:     "Restaurant",
			Keywords: []string{"ZOMATO", "SWIGGY", "RESTAURANT", "CAFE", "DINE", "FOOD", "HOTEL", "CCD", "KFC", "MCDONALDS", "PIZZA HUT", "DOMINOS", "STARBUCKS"},
			GSTRate:  decimal.RequireFromString("0.05"),
		},
		{
			Name:     "Fuel",
			Keywords: []string{"PETROL", "DIESEL", "FUEL", "HPCL", "BPCL", "IOCL", "GAS STATION", "FILLING STATION"},
			GSTRate:  decimal.Zero,
		},
		{
			Name:     "Electronics",
			Keywords: []string{"ELECTRONICS", "GADGETS", "MOBILE", "LAPTOP", "TV", "FRIDGE", "WASHING MACHINE", "AC", "CROMA", "RELIANCE DIGITAL", "AMAZON", "FLIPKART", "APPLE", "SAMSUNG", "XIAOMI"},
			GSTRate:  decimal.RequireFromString("0.18"),
		},
		{
			Name:     "Groceries",
			Keywords: []string{"GROCERY", "SUPERMARKET", "KIRANA", "BIG BAZAAR", "RELIANCE FRESH", "D-MART", "MILK", "BREAD", "VEGETABLES", "FRUITS", "SPENCERS", "MORE RETAIL"},
			GSTRate:  decimal.RequireFromString("0.05"),
		},
		{
			Name:     "Services",
			Keywords: []string{"CONSULTING", "SOFTWARE", "IT SERVICES", "LEGAL FEES", "MAINTENANCE", "REPAIR", "SALON", "SPA", "GYM", "SUBSCRIPTION", "SERVICE CHARGE", "PROFESSIONAL FEES", "ADVISORY"},
			GSTRate:  decimal.RequireFromString("0.18"),
		},
		{
			Name:     "Travel",
			Keywords: []string{"FLIGHT", "AIRLINE", "TRAIN", "BUS", "TAXI", "CAB", "OLA", "UBER", "MAKEMYTRIP", "GOIBIBO", "TRAVEL", "TICKET", "AIRPORT", "RAILWAY"},
			GSTRate:  decimal.RequireFromString("0.05"),
		},
		{
			Name:     "Accommodation",
			Keywords: []string{"HOTEL", "RESORT", "HOMESTAY", "BOOKING.COM", "OYO", "TREEBO"},
			GSTRate:  decimal.RequireFromString("0.12"),
		},
		{
			Name:     "Apparel",
			Keywords: []string{"APPAREL", "CLOTHING", "SHOES", "GARMENTS", "ZARA", "H&M", "ADIDAS", "NIKE", "FASHION", "BOUTIQUE"},
			GSTRate:  decimal.RequireFromString("0.12"),
		},
		{
			Name:     "Utilities",
			Keywords: []string{"ELECTRICITY", "WATER BILL", "BROADBAND", "INTERNET", "TELEPHONE", "MOBILE RECHARGE", "GAS BILL"},
			GSTRate:  decimal.RequireFromString("0.18"),
		},
		{
			Name:     "Healthcare",
			Keywords: []string{"HOSPITAL", "CLINIC", "PHARMACY", "MEDICINE", "DOCTOR", "LAB", "DIAGNOSTICS"},
			GSTRate:  decimal.Zero,
		},
	}
}
