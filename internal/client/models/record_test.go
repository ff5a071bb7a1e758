package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestRecordFilters_Values(t *testing.T) {
	tests := []struct {
		name    string
		filters RecordFilters
		want    string
	}{
		{name: "empty", filters: RecordFilters{}, want: ""},
		{name: "paging only", filters: RecordFilters{Page: 1, Limit: 20}, want: "limit=20&page=1"},
		{
			name: "all fields",
			filters: RecordFilters{
				Ledger:                  "Sales",
				PhoneNo:                 "555",
				PaymentExpected:         boolPtr(false),
				PaymentExpectedDateFrom: "2024-01-01",
				PaymentExpectedDateTo:   "2024-02-01",
				Search:                  "acme co",
				Page:                    2,
				Limit:                   50,
			},
			want: "ledger=Sales&limit=50&page=2&paymentExpected=false&paymentExpectedDateFrom=2024-01-01&paymentExpectedDateTo=2024-02-01&phoneNo=555&search=acme+co",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filters.Values().Encode())
		})
	}
}

func TestRecordFilters_HasActive(t *testing.T) {
	assert.False(t, RecordFilters{Page: 3, Limit: 10}.HasActive())
	assert.True(t, RecordFilters{Ledger: "x"}.HasActive())
	assert.True(t, RecordFilters{PaymentExpected: boolPtr(false)}.HasActive())
	assert.True(t, RecordFilters{PaymentExpectedDateTo: "2024-01-01"}.HasActive())
}

func TestRecordFilters_MergeResetsPage(t *testing.T) {
	base := RecordFilters{Ledger: "A", Page: 4, Limit: 20}
	got := base.Merge(RecordFilters{Search: "bob"})

	want := RecordFilters{Ledger: "A", Search: "bob", Page: 1, Limit: 20}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Merge mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 4, base.Page, "receiver must not be modified")
	assert.Equal(t, 7, base.WithPage(7).Page)
}

func TestPagination_HasNext(t *testing.T) {
	assert.True(t, Pagination{Page: 1, TotalPages: 2}.HasNext())
	assert.False(t, Pagination{Page: 2, TotalPages: 2}.HasNext())
	assert.False(t, Pagination{}.HasNext())
}

func TestUpdateRecordData_OmitsUnsetFields(t *testing.T) {
	b, err := json.Marshal(UpdateRecordData{PaymentExpected: boolPtr(true)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"paymentExpected":true}`, string(b))
}

func TestRecord_DecodesAPIShape(t *testing.T) {
	raw := `{"id":7,"serialNumber":3,"ledger":"L1","outstanding":1250.5,"personName":"Ann",
		"phoneNo":"123","paymentExpected":true,"paymentExpectedDate":"2024-05-01",
		"createdAt":"2024-04-01T10:00:00Z","updatedAt":"2024-04-02T10:00:00Z"}`
	var r Record
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	assert.Equal(t, int64(7), r.ID)
	assert.Equal(t, 1250.5, r.Outstanding)
	require.NotNil(t, r.PaymentExpected)
	assert.True(t, *r.PaymentExpected)
	require.NotNil(t, r.PaymentExpectedDate)
	assert.Equal(t, "2024-05-01", *r.PaymentExpectedDate)
}
