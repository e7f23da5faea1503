// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns candidate rows into normalized product records
// using independent heuristic rules for price, category, brand, wattage,
// part number, and description.
package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/pricelist-extract/internal/money"
	"github.com/pdiddy/pricelist-extract/pkg/types"
)

const maxDescription = 100

var (
	wattagePattern    = regexp.MustCompile(`(\d+)[Ww]`)
	partNumberPattern = regexp.MustCompile(`[A-Z]{2,}[-_]?[\dA-Z]{3,}`)
)

// ErrRejected matches every *RejectError.
var ErrRejected = errors.New("candidate rejected")

// RejectReason says why a candidate produced no record.
type RejectReason string

const (
	ReasonNoPrice           RejectReason = "no_price"
	ReasonInvalidPrice      RejectReason = "invalid_price"
	ReasonNonPositivePrice  RejectReason = "non_positive_price"
	ReasonExtractionFailure RejectReason = "extraction_failure"
)

// RejectError reports a candidate that was dropped.
type RejectError struct {
	Reason RejectReason
	Err    error
}

func (e *RejectError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("candidate rejected (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("candidate rejected (%s)", e.Reason)
}

func (e *RejectError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrRejected) true for any RejectError.
func (e *RejectError) Is(target error) bool { return target == ErrRejected }

// Reason returns the reject reason carried by err, or "" when err is not a
// rejection.
func Reason(err error) RejectReason {
	var re *RejectError
	if errors.As(err, &re) {
		return re.Reason
	}
	return ""
}

// Extractor applies a rule set to candidates.
type Extractor struct {
	rules Rules
	log   *zap.Logger
}

// New creates an Extractor. A nil logger discards output.
func New(rules Rules, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{rules: rules, log: log}
}

// Extract builds the record for one candidate. A candidate without a
// positive "$" price is rejected before any other field is computed.
func (e *Extractor) Extract(c types.Candidate, supplier string) (types.ProductRecord, error) {
	text := c.Text

	match, ok := money.Find(text)
	if !ok {
		return types.ProductRecord{}, &RejectError{Reason: ReasonNoPrice}
	}
	price, err := money.Parse(match)
	if err != nil {
		return types.ProductRecord{}, &RejectError{Reason: ReasonInvalidPrice, Err: err}
	}
	if price <= 0 {
		return types.ProductRecord{}, &RejectError{Reason: ReasonNonPositivePrice}
	}

	return types.ProductRecord{
		Category:      e.rules.Category(text),
		Supplier:      supplier,
		Brand:         e.rules.Brand(text),
		Description:   Description(text, match),
		Specification: Wattage(text),
		PartNumber:    PartNumber(text),
		Price:         price,
		Page:          c.Page,
	}, nil
}

// Summary counts the outcome of extracting a batch of candidates.
type Summary struct {
	Extracted int
	Rejected  map[RejectReason]int
}

// RejectedTotal returns the number of candidates that produced no record.
func (s Summary) RejectedTotal() int {
	n := 0
	for _, v := range s.Rejected {
		n += v
	}
	return n
}

// ExtractAll extracts every candidate in order. A candidate that is
// rejected or fails is logged and skipped; it never stops the batch.
func (e *Extractor) ExtractAll(cands []types.Candidate, supplier string) ([]types.ProductRecord, Summary) {
	summary := Summary{Rejected: map[RejectReason]int{}}
	records := make([]types.ProductRecord, 0, len(cands))

	for _, c := range cands {
		rec, err := e.safeExtract(c, supplier)
		if err != nil {
			reason := Reason(err)
			summary.Rejected[reason]++
			if reason == ReasonExtractionFailure {
				e.log.Warn("error processing item",
					zap.String("supplier", supplier),
					zap.Int("page", c.Page),
					zap.String("text", c.Text),
					zap.Error(err))
			} else {
				e.log.Debug("candidate rejected",
					zap.String("supplier", supplier),
					zap.Int("page", c.Page),
					zap.String("reason", string(reason)))
			}
			continue
		}
		records = append(records, rec)
		summary.Extracted++
	}
	return records, summary
}

func (e *Extractor) safeExtract(c types.Candidate, supplier string) (rec types.ProductRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = types.ProductRecord{}
			err = &RejectError{Reason: ReasonExtractionFailure, Err: fmt.Errorf("%v", r)}
		}
	}()
	return e.Extract(c, supplier)
}

// Wattage returns the first "<digits>W" in text as "<digits>W", or "".
func Wattage(text string) string {
	m := wattagePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1] + "W"
}

// PartNumber returns the first vendor-code-looking token in text, or "".
func PartNumber(text string) string {
	return partNumberPattern.FindString(text)
}

// Description removes the price from text, collapses whitespace, and cuts
// the result to 100 characters.
func Description(text, price string) string {
	if price != "" {
		text = strings.ReplaceAll(text, price, "")
	}
	text = strings.Join(strings.Fields(text), " ")
	if r := []rune(text); len(r) > maxDescription {
		return string(r[:maxDescription])
	}
	return text
}
