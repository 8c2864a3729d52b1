package storage

import (
	"encoding/csv"
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"liquidationScope/internal/model"
)

// CSVHeader is the column order of the valuation output.
var CSVHeader = []string{
	"block_timestamp",
	"transaction_hash",
	"liquidated_user_address",
	"collateral_token",
	"collateral_token_amount",
	"collateral_token_value",
	"debt_token",
	"debt_token_amount",
	"debt_token_value",
}

// CSVSink writes liquidation valuations to a CSV file. The file is truncated
// on open and the header is written immediately.
type CSVSink struct {
	path   string
	file   *os.File
	writer *csv.Writer
	rows   int
}

func NewCSVSink(path string) (*CSVSink, error) {
	file, err := openOutput(path, false)
	if err != nil {
		return nil, err
	}
	writer := csv.NewWriter(file)
	if err := writer.Write(CSVHeader); err != nil {
		file.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return &CSVSink{path: path, file: file, writer: writer}, nil
}

// Write appends one row.
func (s *CSVSink) Write(v model.LiquidationValuation) error {
	if err := s.writer.Write(Record(v)); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	s.rows++
	return nil
}

// Rows returns the number of data rows written.
func (s *CSVSink) Rows() int {
	return s.rows
}

// Path returns the output file path.
func (s *CSVSink) Path() string {
	return s.path
}

func (s *CSVSink) Close() error {
	if s == nil {
		return nil
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	return s.file.Close()
}

// Record renders a valuation as CSV fields in CSVHeader order.
func Record(v model.LiquidationValuation) []string {
	return []string{
		strconv.FormatInt(v.BlockTimestamp, 10),
		hexutil.Encode(v.TransactionHash.Bytes()),
		hexutil.Encode(v.LiquidatedUserAddress.Bytes()),
		v.CollateralToken.String(),
		bigString(v.CollateralTokenAmount),
		v.CollateralTokenValue.String(),
		v.DebtToken.String(),
		bigString(v.DebtTokenAmount),
		v.DebtTokenValue.String(),
	}
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
