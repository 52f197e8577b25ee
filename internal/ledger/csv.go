package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbook-dev/budgetbook/internal/model"
)

// Header is the CSV header for transactions.csv.
const Header = "id,date,type,amount,account_id,envelope_id,payee_id,description,is_transfer,transfer_group,created_at"

const (
	numFields    = 11
	dateFormat   = "2006-01-02"
	colID        = 0
	colDate      = 1
	colType      = 2
	colAmount    = 3
	colAccountID = 4
	colEnvelope  = 5
	colPayeeID   = 6
	colDesc      = 7
	colTransfer  = 8
	colGroup     = 9
	colCreatedAt = 10
)

// ReadTransactions reads all transactions from a transactions.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes transactions to a transactions.csv writer
// (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row ([]string).
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = txn.ID
	row[colDate] = txn.Date.Format(dateFormat)
	row[colType] = string(txn.Type)
	row[colAmount] = txn.Amount.StringFixed(2)
	row[colAccountID] = txn.AccountID
	row[colEnvelope] = txn.EnvelopeID
	row[colPayeeID] = txn.PayeeID
	row[colDesc] = txn.Description
	row[colTransfer] = strconv.FormatBool(txn.IsTransfer)
	row[colGroup] = txn.TransferGroupID
	row[colCreatedAt] = txn.CreatedAt.UTC().Format(time.RFC3339)
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	isTransfer, err := strconv.ParseBool(record[colTransfer])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing is_transfer %q: %w", record[colTransfer], err)
	}

	var createdAt time.Time
	if record[colCreatedAt] != "" {
		createdAt, err = time.Parse(time.RFC3339, record[colCreatedAt])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing created_at %q: %w", record[colCreatedAt], err)
		}
	}

	return model.Transaction{
		ID:              record[colID],
		AccountID:       record[colAccountID],
		EnvelopeID:      record[colEnvelope],
		PayeeID:         record[colPayeeID],
		Amount:          amount,
		Type:            model.TransactionType(record[colType]),
		Description:     record[colDesc],
		Date:            date,
		CreatedAt:       createdAt,
		IsTransfer:      isTransfer,
		TransferGroupID: record[colGroup],
	}, nil
}
