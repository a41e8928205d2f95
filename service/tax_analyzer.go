package service

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Aashish23092/statement-tax-analyzer/dto"
	"github.com/Aashish23092/statement-tax-analyzer/utils"
)

// TaxAnalyzer detects explicit tax mentions in statement units and, when
// none are found, infers the GST portion embedded in a gross amount from
// the unit's spending category. Rule sets are injected at construction and
// never mutated, so one analyzer is safe for concurrent use.
type TaxAnalyzer struct {
	taxRules      []TaxPatternRule
	categoryRules []CategoryRule
}

func NewTaxAnalyzer(taxRules []TaxPatternRule, categoryRules []CategoryRule) *TaxAnalyzer {
	return &TaxAnalyzer{
		taxRules:      taxRules,
		categoryRules: categoryRules,
	}
}

// NewDefaultTaxAnalyzer builds an analyzer with the production rule sets.
func NewDefaultTaxAnalyzer() *TaxAnalyzer {
	return NewTaxAnalyzer(DefaultTaxRules(), DefaultCategoryRules())
}

// AnalyzeLines processes raw statement text, one unit per line.
func (a *TaxAnalyzer) AnalyzeLines(lines []string) (*dto.TaxReport, error) {
	if lines == nil {
		return nil, dto.ErrNilInput
	}
	events := a.classifyUnits(len(lines), func(i int) []dto.TaxEvent {
		return a.analyzeLine(lines[i])
	})
	return a.summarize(events), nil
}

// AnalyzeStructured processes transaction candidates that a collaborator
// already segmented into date/description/amount.
func (a *TaxAnalyzer) AnalyzeStructured(transactions []dto.RawTransactionCandidate) (*dto.TaxReport, error) {
	if transactions == nil {
		return nil, dto.ErrNilInput
	}
	events := a.classifyUnits(len(transactions), func(i int) []dto.TaxEvent {
		return a.analyzeCandidate(transactions[i])
	})
	return a.summarize(events), nil
}

// AnalyzeRows processes decoded tabular rows, resolving the amount, date
// and description columns by name hints before falling back to whole-row
// token scanning.
func (a *TaxAnalyzer) AnalyzeRows(rows []dto.TableRow) (*dto.TaxReport, error) {
	if rows == nil {
		return nil, dto.ErrNilInput
	}
	events := a.classifyUnits(len(rows), func(i int) []dto.TaxEvent {
		return a.analyzeRow(rows[i])
	})
	return a.summarize(events), nil
}

// classifyUnits fans unit classification out to goroutines — units are
// independent and the rules are read-only — then flattens results back in
// input order so the fold stays deterministic.
func (a *TaxAnalyzer) classifyUnits(n int, classify func(int) []dto.TaxEvent) []dto.TaxEvent {
	perUnit := make([][]dto.TaxEvent, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			perUnit[i] = classify(i)
		}(i)
	}
	wg.Wait()

	var events []dto.TaxEvent
	for _, unitEvents := range perUnit {
		events = append(events, unitEvents...)
	}
	return events
}

// analyzeLine classifies one line of raw statement text. Explicit tax rules
// run first, each extracting its own amount tokens; inference only runs as
// a fallback when no rule fired on this line.
func (a *TaxAnalyzer) analyzeLine(line string) []dto.TaxEvent {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || utils.IsHeaderNoise(trimmed) {
		return nil
	}

	upper := strings.ToUpper(trimmed)
	date := utils.FirstDateToken(trimmed)

	var events []dto.TaxEvent
	for _, rule := range a.taxRules {
		for _, match := range rule.Amounts.FindAllString(upper, -1) {
			amount := utils.NormalizeAmount(match)
			if amount.IsPositive() {
				events = append(events, dto.TaxEvent{
					Type:        rule.Kind,
					Amount:      amount,
					Description: trimmed,
					Source:      dto.SourceExplicit,
					Date:        date,
				})
			}
		}
	}
	if len(events) > 0 {
		return events
	}

	// No explicit tax on this line: resolve a gross amount and fall back
	// to category inference. The segmented candidate's amount is preferred;
	// a whole-line token scan covers lines the extractor rejects.
	gross := decimal.Zero
	if candidate, ok := utils.ExtractCandidate(trimmed); ok {
		gross = utils.NormalizeAmount(candidate.Amount)
	}
	if gross.IsZero() {
		gross = utils.ExtractGrossAmount(upper)
	}
	return a.inferFromCategory(upper, trimmed, gross, date)
}

// analyzeCandidate classifies one pre-segmented transaction. Explicit
// detection here is keyword-driven with the candidate's own amount field —
// there is no free text to run the amount regexes over.
func (a *TaxAnalyzer) analyzeCandidate(candidate dto.RawTransactionCandidate) []dto.TaxEvent {
	text := candidate.SourceLine
	if text == "" {
		text = candidate.Description
	}
	upper := strings.ToUpper(text)

	amount := utils.NormalizeAmount(candidate.Amount)
	date := strings.TrimSpace(candidate.Date)
	if date == "" {
		date = dto.UnknownDate
	}

	var events []dto.TaxEvent
	for _, rule := range a.taxRules {
		if hasKeyword(upper, rule.Keywords) && amount.IsPositive() {
			events = append(events, dto.TaxEvent{
				Type:        rule.Kind,
				Amount:      amount,
				Description: candidate.Description,
				Source:      dto.SourceExplicit,
				Date:        date,
			})
		}
	}
	if len(events) > 0 {
		return events
	}

	return a.inferFromCategory(upper, candidate.Description, amount, date)
}

// analyzeRow classifies one tabular row.
func (a *TaxAnalyzer) analyzeRow(row dto.TableRow) []dto.TaxEvent {
	rowText := joinRowValues(row)
	upper := strings.ToUpper(rowText)

	amount := findAmountInRow(row, rowText)
	description := rowDescription(row)
	date := findDateInRow(row, rowText)

	var events []dto.TaxEvent
	for _, rule := range a.taxRules {
		if hasKeyword(upper, rule.Keywords) && amount.IsPositive() {
			events = append(events, dto.TaxEvent{
				Type:        rule.Kind,
				Amount:      amount,
				Description: description,
				Source:      dto.SourceExplicit,
				Date:        date,
			})
		}
	}
	if len(events) > 0 {
		return events
	}

	return a.inferFromCategory(upper, description, amount, date)
}

// inferFromCategory back-calculates the GST embedded in a gross amount.
// The rate is tax-inclusive-of-total: a ₹1180 purchase at 18% carries
// 1180 × 0.18/1.18 = ₹180 of tax, not 1180 × 0.18.
func (a *TaxAnalyzer) inferFromCategory(upper, description string, gross decimal.Decimal, date string) []dto.TaxEvent {
	category := a.categorize(upper)
	if category == nil || !category.GSTRate.IsPositive() {
		return nil
	}
	if !gross.IsPositive() {
		// Inference never fabricates an amount.
		return nil
	}

	one := decimal.NewFromInt(1)
	tax := gross.Mul(category.GSTRate).Div(one.Add(category.GSTRate)).Round(2)
	if !tax.IsPositive() {
		return nil
	}

	return []dto.TaxEvent{{
		Type:        "Inferred GST (" + category.Name + ")",
		Amount:      tax,
		Description: description,
		Source:      dto.SourceInferred,
		Category:    category.Name,
		GSTRate:     category.GSTRate,
		Date:        date,
	}}
}

// categorize returns the first category whose keyword set hits the text.
func (a *TaxAnalyzer) categorize(upper string) *CategoryRule {
	for i := range a.categoryRules {
		if hasKeyword(upper, a.categoryRules[i].Keywords) {
			return &a.categoryRules[i]
		}
	}
	return nil
}

// summarize folds detected events into the final report. The fold is
// commutative over independent units; only the per-type transaction lists
// keep input order.
func (a *TaxAnalyzer) summarize(events []dto.TaxEvent) *dto.TaxReport {
	report := &dto.TaxReport{
		ByType:       make(map[string]*dto.TypeSummary),
		ByMonth:      make(map[string]decimal.Decimal),
		Transactions: []dto.TaxEvent{},
	}

	for _, event := range events {
		report.TotalTax = report.TotalTax.Add(event.Amount)
		report.Count++
		report.Transactions = append(report.Transactions, event)

		summary, ok := report.ByType[event.Type]
		if !ok {
			summary = &dto.TypeSummary{Transactions: []dto.TaxEvent{}}
			report.ByType[event.Type] = summary
		}
		summary.Total = summary.Total.Add(event.Amount)
		summary.Count++
		summary.Transactions = append(summary.Transactions, event)

		if event.Date != dto.UnknownDate {
			if bucket, ok := utils.MonthBucket(event.Date); ok {
				report.ByMonth[bucket] = report.ByMonth[bucket].Add(event.Amount)
			}
		}
	}

	return report
}

func hasKeyword(upper string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(upper, keyword) {
			return true
		}
	}
	return false
}

// Column-name hints for tabular input, in lookup precedence order.
var (
	amountColumnHints      = []string{"amount", "debit", "credit", "withdrawal", "deposit", "value", "txn_amount"}
	dateColumnHints        = []string{"date", "transaction_date", "value_date", "txn_date"}
	descriptionColumnHints = []string{"description", "narration", "particulars", "details", "remark"}
)

// resolveColumn finds the first cell whose header contains a hint,
// hint-precedence outer, column order inner.
func resolveColumn(row dto.TableRow, hints []string) (string, bool) {
	for _, hint := range hints {
		for _, header := range row.Headers {
			value := strings.TrimSpace(row.Values[header])
			if value == "" {
				continue
			}
			if strings.Contains(strings.ToLower(header), hint) {
				return value, true
			}
		}
	}
	return "", false
}

func findAmountInRow(row dto.TableRow, rowText string) decimal.Decimal {
	for _, hint := range amountColumnHints {
		for _, header := range row.Headers {
			value := strings.TrimSpace(row.Values[header])
			if value == "" || !strings.Contains(strings.ToLower(header), hint) {
				continue
			}
			if amount := utils.NormalizeAmount(value); amount.IsPositive() {
				return amount
			}
		}
	}
	// No named column: scan the whole row for an amount-shaped token.
	return utils.ExtractGrossAmount(rowText)
}

func findDateInRow(row dto.TableRow, rowText string) string {
	if value, ok := resolveColumn(row, dateColumnHints); ok {
		return value
	}
	return utils.FirstDateToken(rowText)
}

func rowDescription(row dto.TableRow) string {
	if value, ok := resolveColumn(row, descriptionColumnHints); ok {
		return value
	}
	for _, header := range row.Headers {
		if value := strings.TrimSpace(row.Values[header]); value != "" {
			return value
		}
	}
	return "Unknown"
}

func joinRowValues(row dto.TableRow) string {
	values := make([]string, 0, len(row.Headers))
	for _, header := range row.Headers {
		values = append(values, row.Values[header])
	}
	return strings.Join(values, " ")
}
