package model

// ImportError records a raw event that could not be turned into a row.
type ImportError struct {
	BlockNumber     uint64 `json:"block_number"`
	TransactionHash string `json:"transaction_hash"`
	EventIndex      int64  `json:"event_index"`
	FromAddress     string `json:"from_address"`
	Selector        string `json:"selector"`
	Error           string `json:"error"`
}
