package storage

import (
	"encoding/csv"
	"math/big"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"liquidationScope/internal/asset"
	"liquidationScope/internal/model"
)

func sampleValuation() model.LiquidationValuation {
	amount, _ := new(big.Int).SetString("2000000000000000000", 10)
	return model.LiquidationValuation{
		Liquidation: model.Liquidation{
			BlockTimestamp:        1706609000,
			EventIndex:            4,
			TransactionHash:       common.HexToHash("0x05f0"),
			LiquidatedUserAddress: common.HexToHash("0x0123abc"),
			CollateralToken:       asset.ETH,
			CollateralTokenAmount: amount,
			DebtToken:             asset.USDC,
			DebtTokenAmount:       big.NewInt(4500123456),
		},
		CollateralTokenValue: decimal.RequireFromString("4600.24691356"),
		DebtTokenValue:       decimal.RequireFromString("4500.00"),
	}
}

func TestRecordFormatting(t *testing.T) {
	got := Record(sampleValuation())
	want := []string{
		"1706609000",
		"0x00000000000000000000000000000000000000000000000000000000000005f0",
		"0x0000000000000000000000000000000000000000000000000000000000123abc",
		"ETH",
		"2000000000000000000",
		"4600.24691356",
		"USDC",
		"4500123456",
		"4500",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("record mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestCSVSinkWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "valuations.csv")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("stale,content\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	sink, err := NewCSVSink(path)
	if err != nil {
		t.Fatalf("open sink: %v", err)
	}
	if err := sink.Write(sampleValuation()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if sink.Rows() != 1 {
		t.Fatalf("rows %d", sink.Rows())
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header and one row, got %d records", len(records))
	}
	if !reflect.DeepEqual(records[0], CSVHeader) {
		t.Fatalf("header mismatch: %v", records[0])
	}
	if records[1][5] != "4600.24691356" {
		t.Fatalf("value column %q", records[1][5])
	}
}

func TestCSVSinkEmptyRunHasHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	sink, err := NewCSVSink(path)
	if err != nil {
		t.Fatalf("open sink: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "block_timestamp,transaction_hash,liquidated_user_address,collateral_token,collateral_token_amount,collateral_token_value,debt_token,debt_token_amount,debt_token_value\n"
	if string(data) != want {
		t.Fatalf("unexpected content %q", data)
	}
}
