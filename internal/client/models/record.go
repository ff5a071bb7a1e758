package models

import (
	"net/url"
	"strconv"
	"time"
)

// Record is a ledger line item with an outstanding balance and
// payment-expectation metadata.
type Record struct {
	ID                  int64     `json:"id"`
	SerialNumber        int64     `json:"serialNumber"`
	Ledger              string    `json:"ledger"`
	Outstanding         float64   `json:"outstanding"`
	PersonName          string    `json:"personName"`
	PhoneNo             string    `json:"phoneNo"`
	PaymentExpected     *bool     `json:"paymentExpected,omitempty"`
	PaymentExpectedDate *string   `json:"paymentExpectedDate,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// HasNext reports whether a page after the current one exists.
func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

type RecordsPage struct {
	Records    []Record   `json:"records"`
	Pagination Pagination `json:"pagination"`
}

// Default paging used by list views.
const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// RecordFilters narrows GET /records and GET /records/download. Zero values
// are left out of the query string.
type RecordFilters struct {
	Ledger                  string
	PhoneNo                 string
	PaymentExpected         *bool
	PaymentExpectedDateFrom string
	PaymentExpectedDateTo   string
	Search                  string
	Page                    int
	Limit                   int
}

// Values encodes the filters as query parameters.
func (f RecordFilters) Values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("ledger", f.Ledger)
	set("phoneNo", f.PhoneNo)
	if f.PaymentExpected != nil {
		v.Set("paymentExpected", strconv.FormatBool(*f.PaymentExpected))
	}
	set("paymentExpectedDateFrom", f.PaymentExpectedDateFrom)
	set("paymentExpectedDateTo", f.PaymentExpectedDateTo)
	set("search", f.Search)
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	return v
}

// HasActive reports whether any narrowing filter is set. Paging is not a filter.
func (f RecordFilters) HasActive() bool {
	return f.Ledger != "" ||
		f.PhoneNo != "" ||
		f.Search != "" ||
		f.PaymentExpected != nil ||
		f.PaymentExpectedDateFrom != "" ||
		f.PaymentExpectedDateTo != ""
}

// WithPage returns a copy positioned on page.
func (f RecordFilters) WithPage(page int) RecordFilters {
	f.Page = page
	return f
}

// Merge overlays the non-zero filters of other onto f and resets paging to
// the first page, as changing a filter invalidates the current position.
func (f RecordFilters) Merge(other RecordFilters) RecordFilters {
	if other.Ledger != "" {
		f.Ledger = other.Ledger
	}
	if other.PhoneNo != "" {
		f.PhoneNo = other.PhoneNo
	}
	if other.PaymentExpected != nil {
		f.PaymentExpected = other.PaymentExpected
	}
	if other.PaymentExpectedDateFrom != "" {
		f.PaymentExpectedDateFrom = other.PaymentExpectedDateFrom
	}
	if other.PaymentExpectedDateTo != "" {
		f.PaymentExpectedDateTo = other.PaymentExpectedDateTo
	}
	if other.Search != "" {
		f.Search = other.Search
	}
	if other.Limit > 0 {
		f.Limit = other.Limit
	}
	f.Page = DefaultPage
	return f
}

// UpdateRecordData is the PATCH /records/{id} body.
type UpdateRecordData struct {
	PaymentExpected     *bool   `json:"paymentExpected,omitempty"`
	PaymentExpectedDate *string `json:"paymentExpectedDate,omitempty"`
}

// UploadResult is the payload of POST /records/upload.
type UploadResult struct {
	Count   int      `json:"count"`
	Records []Record `json:"records"`
}
