package model

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// Network names the bitcoin network a record belongs to.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
	Signet  Network = "signet"
)

// ChainParams resolves btcd chain parameters for the network, accepting the common aliases.
func (n Network) ChainParams() (*chaincfg.Params, error) {
	switch strings.ToLower(string(n)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", n)
	}
}

// Addresses renders the addresses a locking script pays to. Non-standard scripts yield nil.
func Addresses(lockingScript []byte, params *chaincfg.Params) []string {
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(lockingScript, params)
	if err != nil || len(addrs) == 0 {
		return nil
	}
	result := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		result = append(result, addr.EncodeAddress())
	}
	return result
}
