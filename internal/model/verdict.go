package model

import "time"

// Verdict is the persisted outcome of verifying one mempool record.
type Verdict struct {
	Network     Network
	TxID        string
	File        string
	Status      string
	Reason      string
	InputIndex  int32
	Outpoint    string
	Kind        string
	InputCount  uint32
	OutputCount uint32
	Addresses   []string
	VerifiedAt  time.Time
}
