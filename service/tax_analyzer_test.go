package service

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Aashish23092/statement-tax-analyzer/dto"
)

func TestAnalyzeLinesExplicitGST(t *testing.T) {
	analyzer := NewDefaultTaxAnalyzer()

	report, err := analyzer.AnalyzeLines([]string{"25-03-2024 GST: ₹500.00 paid"})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Count)

	event := report.Transactions[0]
	assert.Equal(t, "GST", event.Type)
	assert.Equal(t, dto.SourceExplicit, event.Source)
	assert.Equal(t, "500.00", event.Amount.StringFixed(2))
	assert.Equal(t, "25-03-2024", event.Date)

	assert.Equal(t, "500.00", report.TotalTax.StringFixed(2))
	assert.Equal(t, "500.00", report.ByMonth["Mar 2024"].StringFixed(2))
}

func TestAnalyzeStructuredInferredGST(t *testing.T) {
	analyzer := NewDefaultTaxAnalyzer()

	report, err := analyzer.AnalyzeStructured([]dto.RawTransactionCandidate{
		{Date: "01-04-2024", Description: "ZOMATO ORDER", Amount: "INR 525.00"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Count)

	event := report.Transactions[0]
	assert.Equal(t, "Inferred GST (Restaurant)", event.Type)
	assert.Equal(t, dto.SourceInferred, event.Source)
	assert.Equal(t, "Restaurant", event.Category)
	assert.Equal(t, "25.00", event.Amount.StringFixed(2))
	assert.Equal(t, "0.05", event.GSTRate.String())
	assert.Equal(t, "25.00", report.ByMonth["Apr 2024"].StringFixed(2))
}

func TestRupeeMarkedAmounts(t *testing.T) {
	analyzer := NewDefaultTaxAnalyzer()

	// "Rs."-marked amounts must keep their magnitude: a 525-rupee order
	// infers 25, not the tax on half a rupee.
	report, err := analyzer.AnalyzeStructured([]dto.RawTransactionCandidate{
		{Date: "01-04-2024", Description: "ZOMATO ORDER", Amount: "Rs. 525.00"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Count)
	assert.Equal(t, "25.00", report.Transactions[0].Amount.StringFixed(2))

	report, err = analyzer.AnalyzeLines([]string{"01-04-2024 SWIGGY ORDER Rs. 210.00"})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Count)
	assert.Equal(t, "10.00", report.Transactions[0].Amount.StringFixed(2))
}

func TestInferenceBackCalculation(t *testing.T) {
	analyzer := NewDefaultTaxAnalyzer()

	// A ₹1180 gross at 18% embeds exactly ₹180 of tax: 1180 × 0.18/1.18.
	report, err := analyzer.AnalyzeStructured([]dto.RawTransactionCandidate{
		{Description: "AMAZON PURCHASE", Amount: "₹1,180.00"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Count)
	assert.Equal(t, "Inferred GST (Electronics)", report.Transactions[0].Type)
	assert.Equal(t, "180.00", report.Transactions[0].Amount.StringFixed(2))

	// No date on the unit: totals carry it, by-month does not.
	assert.Equal(t, dto.UnknownDate, report.Transactions[0].Date)
	assert.Empty(t, report.ByMonth)
}

func TestExplicitPrecedesInference(t *testing.T) {
	analyzer := NewDefaultTaxAnalyzer()

	// ZOMATO would infer at 5%, but the explicit GST mention wins outright.
	report, err := analyzer.AnalyzeLines([]string{"02-05-2024 ZOMATO ORDER GST: ₹25.00 INR 525.00"})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Count)
	assert.Equal(t, "GST", report.Transactions[0].Type)
	assert.Equal(t, dto.SourceExplicit, report.Transactions[0].Source)
	assert.Equal(t, "25.00", report.Transactions[0].Amount.StringFixed(2))
}

func TestExplicitKindsEvaluatedIndependently(t *testing.T) {
	analyzer := NewDefaultTaxAnalyzer()

	// Documented policy: every rule gets a pass over every line with no
	// early exit, and the unanchored GST pattern also hits the tail of
	// CGST/SGST mentions. One itemized line therefore yields four events.
	report, err := analyzer.AnalyzeLines([]string{"15-04-2024 INVOICE CGST: ₹90.00 SGST: ₹90.00"})

	assert.NoError(t, err)
	assert.Equal(t, 4, report.Count)
	assert.Equal(t, 2, report.ByType["GST"].Count)
	assert.Equal(t, 1, report.ByType["CGST"].Count)
	assert.Equal(t, 1, report.ByType["SGST"].Count)
	assert.Equal(t, "360.00", report.TotalTax.StringFixed(2))
	assert.Equal(t, "360.00", report.ByMonth["Apr 2024"].StringFixed(2))
}

func TestHeaderLinesProduceNothing(t *testing.T) {
	analyzer := NewDefaultTaxAnalyzer()

	report, err := analyzer.AnalyzeLines([]string{"Date", "Balance", "Date | Description | Amount | Balance", ""})

	assert.NoError(t, err)
	assert.Equal(t, 0, report.Count)
	assert.True(t, report.TotalTax.IsZero())
}

func TestAdditivityAndMonthSumBound(t *testing.T) {
	analyzer := NewDefaultTaxAnalyzer()

	report, err := analyzer.AnalyzeLines([]string{
		"25-03-2024 GST: ₹500.00 paid",
		"ZOMATO DINNER INR 525.00", // no date: inferred with Unknown
		"15-04-2024 TDS: 1,000.00 deducted",
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, report.Count)

	eventSum := decimal.Zero
	for _, event := range report.Transactions {
		eventSum = eventSum.Add(event.Amount)
	}
	assert.True(t, report.TotalTax.Equal(eventSum))

	typeSum := decimal.Zero
	for _, summary := range report.ByType {
		typeSum = typeSum.Add(summary.Total)
	}
	assert.True(t, report.TotalTax.Equal(typeSum))

	monthSum := decimal.Zero
	for _, amount := range report.ByMonth {
		monthSum = monthSum.Add(amount)
	}
	// The Unknown-dated event keeps the by-month sum strictly below total.
	assert.True(t, monthSum.LessThan(report.TotalTax))
	assert.Equal(t, "1500.00", monthSum.StringFixed(2))
	assert.Equal(t, "1525.00", report.TotalTax.StringFixed(2))
}

func TestMonthSumEqualsTotalWhenAllDated(t *testing.T) {
	analyzer := NewDefaultTaxAnalyzer()

	report, err := analyzer.AnalyzeLines([]string{
		"25-03-2024 GST: ₹500.00 paid",
		"15-04-2024 TDS: 1,000.00 deducted",
	})

	assert.NoError(t, err)

	monthSum := decimal.Zero
	for _, amount := range report.ByMonth {
		monthSum = monthSum.Add(amount)
	}
	assert.True(t, monthSum.Equal(report.TotalTax))
}

func TestAnalyzeLinesIdempotent(t *testing.T) {
	analyzer := NewDefaultTaxAnalyzer()
	lines := []string{
		"25-03-2024 GST: ₹500.00 paid",
		"01-04-2024 SWIGGY ORDER INR 210.00",
		"15-04-2024 INVOICE CGST: ₹90.00 SGST: ₹90.00",
		"Date | Description | Amount",
	}

	first, err := analyzer.AnalyzeLines(lines)
	assert.NoError(t, err)
	second, err := analyzer.AnalyzeLines(lines)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyzeRowsColumnHints(t *testing.T) {
	analyzer := NewDefaultTaxAnalyzer()

	report, err := analyzer.AnalyzeRows([]dto.TableRow{{
		Headers: []string{"Txn Date", "Narration", "Withdrawal Amt", "Balance"},
		Values: map[string]string{
			"Txn Date":       "05-04-2024",
			"Narration":      "SWIGGY ORDER",
			"Withdrawal Amt": "210.00",
			"Balance":        "10,000.00",
		},
	}})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Count)

	event := report.Transactions[0]
	assert.Equal(t, "Inferred GST (Restaurant)", event.Type)
	assert.Equal(t, "SWIGGY ORDER", event.Description)
	// 210 × 0.05/1.05 = 10, off the withdrawal column, not the balance.
	assert.Equal(t, "10.00", event.Amount.StringFixed(2))
	assert.Equal(t, "10.00", report.ByMonth["Apr 2024"].StringFixed(2))
}

func TestAnalyzeRowsExplicitKeyword(t *testing.T) {
	analyzer := NewDefaultTaxAnalyzer()

	report, err := analyzer.AnalyzeRows([]dto.TableRow{{
		Headers: []string{"Date", "Particulars", "Debit"},
		Values: map[string]string{
			"Date":        "10-03-2024",
			"Particulars": "GST PAYMENT CHALLAN",
			"Debit":       "1,180.00",
		},
	}})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Count)
	assert.Equal(t, "GST", report.Transactions[0].Type)
	assert.Equal(t, dto.SourceExplicit, report.Transactions[0].Source)
	assert.Equal(t, "1180.00", report.Transactions[0].Amount.StringFixed(2))
}

func TestAnalyzeRowsUnnamedColumnsFallBackToScanning(t *testing.T) {
	analyzer := NewDefaultTaxAnalyzer()

	report, err := analyzer.AnalyzeRows([]dto.TableRow{{
		Headers: []string{"Col1", "Col2"},
		Values: map[string]string{
			"Col1": "14/03/2024",
			"Col2": "UBER TRIP 354.00",
		},
	}})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Count)
	assert.Equal(t, "Inferred GST (Travel)", report.Transactions[0].Type)
	assert.Equal(t, "16.86", report.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, "16.86", report.ByMonth["Mar 2024"].StringFixed(2))
}

func TestAnalyzeRowsNoAmountProducesNothing(t *testing.T) {
	analyzer := NewDefaultTaxAnalyzer()

	report, err := analyzer.AnalyzeRows([]dto.TableRow{{
		Headers: []string{"Narration"},
		Values:  map[string]string{"Narration": "ZOMATO ORDER"},
	}})

	assert.NoError(t, err)
	assert.Equal(t, 0, report.Count)
}

func TestZeroRateCategoryNeverInfers(t *testing.T) {
	analyzer := NewDefaultTaxAnalyzer()

	report, err := analyzer.AnalyzeStructured([]dto.RawTransactionCandidate{
		{Date: "01-04-2024", Description: "HPCL PETROL PUMP", Amount: "INR 2,000.00"},
		{Date: "02-04-2024", Description: "APOLLO HOSPITAL", Amount: "INR 5,000.00"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, report.Count)
}

func TestNilInputIsAnError(t *testing.T) {
	analyzer := NewDefaultTaxAnalyzer()

	_, err := analyzer.AnalyzeLines(nil)
	assert.ErrorIs(t, err, dto.ErrNilInput)

	_, err = analyzer.AnalyzeStructured(nil)
	assert.ErrorIs(t, err, dto.ErrNilInput)

	_, err = analyzer.AnalyzeRows(nil)
	assert.ErrorIs(t, err, dto.ErrNilInput)
}

func TestEmptyInputYieldsEmptyReport(t *testing.T) {
	analyzer := NewDefaultTaxAnalyzer()

	report, err := analyzer.AnalyzeLines([]string{})

	assert.NoError(t, err)
	assert.Equal(t, 0, report.Count)
	assert.Empty(t, report.Transactions)
	assert.Empty(t, report.ByType)
	assert.Empty(t, report.ByMonth)
}

func TestCustomRuleSets(t *testing.T) {
	analyzer := NewTaxAnalyzer(
		[]TaxPatternRule{{
			Kind:     "VAT",
			Keywords: []string{"VAT"},
			Amounts:  regexp.MustCompile(`VAT[:\s]*₹?[\d,]+\.?\d*`),
		}},
		nil,
	)

	report, err := analyzer.AnalyzeLines([]string{
		"01-01-2024 VAT: 50.00 charged",
		"01-01-2024 GST: ₹500.00 paid", // not a rule in this set
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Count)
	assert.Equal(t, "VAT", report.Transactions[0].Type)
	assert.Equal(t, "50.00", report.Transactions[0].Amount.StringFixed(2))
}
