package normalize

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// DefaultHeaders returns the column titles the dashboard exports per domain.
func DefaultHeaders(d Domain) []string {
	switch d {
	case DomainOrders:
		return []string{"Order No", "Store Name", "Product Name", "Price", "Order Date", "Status"}
	case DomainDisputes:
		return []string{"Dispute No", "Order No", "Customer Name", "Store Name", "Reason", "Amount", "Dispute Date", "Status"}
	case DomainReviews:
		return []string{"Reviewer Name", "Product Name", "Store Name", "Rating", "Comment", "Review Date", "Status"}
	default:
		return nil
	}
}

// Project flattens records into string rows, one cell per header, in input
// order. Cells are not escaped; WriteCSV does that.
func Project[T Record](records []T, headers []string) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		fields := r.Fields()
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = Stringify(LookupValue(fields, h))
		}
		rows = append(rows, row)
	}
	return rows
}

// LookupValue finds the value behind a column title by trying, in order, the
// title itself, its lowercase form, snake_case and lowerCamelCase. A title
// that matches nothing yields nil.
func LookupValue(fields map[string]any, header string) any {
	for _, key := range headerKeys(header) {
		if v, ok := fields[key]; ok {
			return v
		}
	}
	return nil
}

func headerKeys(header string) []string {
	words := splitWords(header)
	return []string{
		header,
		strings.ToLower(header),
		snakeCase(words),
		lowerCamelCase(words),
	}
}

// splitWords breaks "Order No", "order_no", "orderNo" and "OrderNO" into
// lowercase words.
func splitWords(s string) []string {
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

func snakeCase(words []string) string {
	return strings.Join(words, "_")
}

func lowerCamelCase(words []string) string {
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(w)
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

// Stringify renders one cell value. nil becomes "".
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// EscapeCell quotes a cell holding a comma, double quote, CR or LF, doubling
// inner quotes. Other cells are returned unchanged.
func EscapeCell(s string) string {
	if !strings.ContainsAny(s, ",\"\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteCSV writes the header row followed by rows, comma separated, each
// line terminated by "\n". Nothing follows the last row's terminator.
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	bw := bufio.NewWriter(w)
	if err := writeRow(bw, headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeRow(bw, row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeRow(w *bufio.Writer, cells []string) error {
	for i, c := range cells {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(EscapeCell(c)); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

// ExportCSV projects records and writes them as CSV in one step.
func ExportCSV[T Record](w io.Writer, records []T, headers []string) error {
	return WriteCSV(w, headers, Project(records, headers))
}
