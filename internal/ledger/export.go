package ledger

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"ledger/internal/domain"
)

// DefaultExportAttributes is the column set used when the caller does not
// supply one.
var DefaultExportAttributes = []string{
	"id", "createdAt", "amount", "currency", "description",
	"netAmountInCollectiveCurrency", "txnCurrency", "txnCurrencyFxRate",
	"paymentProcessorFeeInTxnCurrency", "hostFeeInTxnCurrency",
	"platformFeeInTxnCurrency", "netAmountInTxnCurrency",
}

// ExportTransactions serializes transactions to CSV, projecting the given
// attributes (DefaultExportAttributes when nil). Unknown attribute names
// produce empty cells rather than failing the export.
func ExportTransactions(transactions []domain.Transaction, attributes []string) (string, error) {
	if attributes == nil {
		attributes = DefaultExportAttributes
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(attributes); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(attributes))
	for i := range transactions {
		for j, attr := range attributes {
			record[j] = exportValue(&transactions[i], attr)
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func exportValue(tx *domain.Transaction, attribute string) string {
	switch attribute {
	case "id":
		return strconv.FormatInt(tx.ID, 10)
	case "type":
		return string(tx.Type)
	case "createdAt":
		return tx.CreatedAt.UTC().Format(time.RFC3339)
	case "amount":
		return strconv.FormatInt(tx.Amount, 10)
	case "currency":
		return tx.Currency
	case "description":
		return tx.Description
	case "netAmountInCollectiveCurrency":
		return strconv.FormatInt(tx.NetAmountInCollectiveCurrency, 10)
	case "txnCurrency":
		return tx.TxnCurrency
	case "txnCurrencyFxRate":
		return formatOptFloat(tx.TxnCurrencyFxRate)
	case "amountInTxnCurrency":
		return formatOptInt(tx.AmountInTxnCurrency)
	case "paymentProcessorFeeInTxnCurrency":
		return tx.PaymentProcessorFeeInTxnCurrency.String()
	case "hostFeeInTxnCurrency":
		return strconv.FormatInt(tx.HostFeeInTxnCurrency, 10)
	case "platformFeeInTxnCurrency":
		return strconv.FormatInt(tx.PlatformFeeInTxnCurrency, 10)
	case "netAmountInTxnCurrency":
		return formatOptInt(tx.NetAmountInTxnCurrency)
	case "ExpenseId":
		return strconv.FormatInt(tx.ExpenseID, 10)
	case "UserId":
		return strconv.FormatInt(tx.UserID, 10)
	case "CollectiveId":
		return strconv.FormatInt(tx.CollectiveID, 10)
	case "HostId":
		return strconv.FormatInt(tx.HostID, 10)
	default:
		return ""
	}
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatOptInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
