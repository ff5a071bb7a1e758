package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/followupdesk/internal/client/models"
)

func formatExpected(v *bool) string {
	switch {
	case v == nil:
		return "-"
	case *v:
		return "Yes"
	default:
		return "No"
	}
}

func formatOptional(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}

func printRecords(w io.Writer, page *models.RecordsPage) {
	if len(page.Records) == 0 {
		fmt.Fprintln(w, "No records found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tS.NO\tLEDGER\tPERSON\tPHONE\tOUTSTANDING\tEXPECTED\tDATE")
	for _, r := range page.Records {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.SerialNumber, r.Ledger, r.PersonName, r.PhoneNo,
			formatAmount(r.Outstanding), formatExpected(r.PaymentExpected), formatOptional(r.PaymentExpectedDate))
	}
	_ = tw.Flush()
	printPagination(w, page.Pagination, "records")
}

func printRecord(w io.Writer, r *models.Record) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", r.ID)
	fmt.Fprintf(tw, "S.No:\t%d\n", r.SerialNumber)
	fmt.Fprintf(tw, "Ledger:\t%s\n", r.Ledger)
	fmt.Fprintf(tw, "Person:\t%s\n", r.PersonName)
	fmt.Fprintf(tw, "Phone:\t%s\n", r.PhoneNo)
	fmt.Fprintf(tw, "Outstanding:\t%s\n", formatAmount(r.Outstanding))
	fmt.Fprintf(tw, "Payment expected:\t%s\n", formatExpected(r.PaymentExpected))
	fmt.Fprintf(tw, "Expected date:\t%s\n", formatOptional(r.PaymentExpectedDate))
	fmt.Fprintf(tw, "Updated:\t%s\n", formatTime(r.UpdatedAt))
	_ = tw.Flush()
}

func printRemarks(w io.Writer, page *models.RemarksPage) {
	if len(page.Remarks) == 0 {
		fmt.Fprintln(w, "No remarks yet")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tREMARK")
	for _, r := range page.Remarks {
		text := strings.ReplaceAll(r.Remark, "\n", " ")
		if r.IsInitial {
			text += " [initial]"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", r.ID, formatTime(r.CreatedAt), text)
	}
	_ = tw.Flush()
	printPagination(w, page.Pagination, "remarks")
}

func printPagination(w io.Writer, p models.Pagination, noun string) {
	if p.TotalPages == 0 {
		return
	}
	fmt.Fprintf(w, "Page %d of %d (%d %s)", p.Page, p.TotalPages, p.Total, noun)
	if p.HasNext() {
		fmt.Fprintf(w, ", next: --page %d", p.Page+1)
	}
	fmt.Fprintln(w)
}
