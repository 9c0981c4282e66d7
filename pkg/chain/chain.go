package chain

import (
	"context"
	"fmt"
)

// Gateway is the capability surface the deployment steps use to talk to a
// network. Implementations must be safe to call sequentially from a single
// goroutine; they are not required to be concurrency-safe.
type Gateway interface {
	// UploadCode stores a wasm binary on chain and returns its code id.
	UploadCode(ctx context.Context, wasmPath string) (uint64, error)
	// Instantiate creates a contract from a stored code id and returns its address.
	Instantiate(ctx context.Context, codeID uint64, initMsg any, label, admin string) (string, error)
	// Execute invokes a method on a deployed contract. funds is an optional
	// coin string such as "1000uluna"; empty means no funds attached.
	Execute(ctx context.Context, contractAddr string, msg any, funds string) (TxResult, error)
	// Query runs a smart query against a contract and unmarshals the reply into out.
	Query(ctx context.Context, contractAddr string, queryMsg, out any) error
}

// TxResult is the outcome of a transaction included in a block.
type TxResult struct {
	TxHash string
	Height int64
	Code   uint32
	RawLog string
	Events []Event
}

// Event is a typed transaction event with its attributes flattened to a map.
type Event struct {
	Type       string
	Attributes map[string]string
}

// Attribute returns the first value of key in events of the given type.
func (r TxResult) Attribute(eventType, key string) (string, bool) {
	for _, ev := range r.Events {
		if ev.Type != eventType {
			continue
		}
		if v, ok := ev.Attributes[key]; ok {
			return v, true
		}
	}
	return "", false
}

// ChainError indicates a gateway operation failed: broadcast rejected, tx
// reverted on chain, timeout waiting for inclusion, or unparseable output.
type ChainError struct {
	Op     string
	Detail string
	Err    error
}

func (e *ChainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("chain: %s: %s: %v", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("chain: %s: %s", e.Op, e.Detail)
}

func (e *ChainError) Unwrap() error {
	return e.Err
}
