package chain

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"astroctl/pkg/config"
)

// Client implements Gateway by shelling out to the network's chain daemon
// (terrad, wasmd and compatible forks share the tx/query CLI surface).
type Client struct {
	exec         CommandExecutor
	net          config.NetworkConfig
	pollInterval time.Duration
}

var _ Gateway = (*Client)(nil)

// NewClient builds a gateway for one network. The daemon binary named in the
// network config must be on PATH.
func NewClient(executor CommandExecutor, net config.NetworkConfig) (*Client, error) {
	if _, err := executor.LookPath(net.Binary); err != nil {
		return nil, &ChainError{Op: "init", Detail: net.Binary + " not found on PATH", Err: err}
	}
	return &Client{exec: executor, net: net, pollInterval: 2 * time.Second}, nil
}

func (c *Client) UploadCode(ctx context.Context, wasmPath string) (uint64, error) {
	args := append([]string{"tx", "wasm", "store", wasmPath}, c.txArgs()...)
	result, err := c.broadcast(ctx, "upload", args)
	if err != nil {
		return 0, err
	}

	raw, ok := result.Attribute("store_code", "code_id")
	if !ok {
		return 0, &ChainError{Op: "upload", Detail: "tx " + result.TxHash + " has no store_code event"}
	}
	codeID, err := strconv.ParseUint(strings.Trim(raw, `"`), 10, 64)
	if err != nil {
		return 0, &ChainError{Op: "upload", Detail: "unparseable code id " + raw, Err: err}
	}
	return codeID, nil
}

func (c *Client) Instantiate(ctx context.Context, codeID uint64, initMsg any, label, admin string) (string, error) {
	msg, err := json.Marshal(initMsg)
	if err != nil {
		return "", &ChainError{Op: "instantiate", Detail: "encoding init msg for " + label, Err: err}
	}

	args := []string{"tx", "wasm", "instantiate", strconv.FormatUint(codeID, 10), string(msg), "--label", label}
	if admin != "" {
		args = append(args, "--admin", admin)
	} else {
		args = append(args, "--no-admin")
	}
	args = append(args, c.txArgs()...)

	result, err := c.broadcast(ctx, "instantiate", args)
	if err != nil {
		return "", err
	}

	addr, ok := result.Attribute("instantiate", "_contract_address")
	if !ok {
		return "", &ChainError{Op: "instantiate", Detail: "tx " + result.TxHash + " has no instantiate event"}
	}
	return strings.Trim(addr, `"`), nil
}

func (c *Client) Execute(ctx context.Context, contractAddr string, msg any, funds string) (TxResult, error) {
	encoded, err := json.Marshal(msg)
	if err != nil {
		return TxResult{}, &ChainError{Op: "execute", Detail: "encoding msg for " + contractAddr, Err: err}
	}

	args := []string{"tx", "wasm", "execute", contractAddr, string(encoded)}
	if funds != "" {
		args = append(args, "--amount", funds)
	}
	args = append(args, c.txArgs()...)

	return c.broadcast(ctx, "execute", args)
}

func (c *Client) Query(ctx context.Context, contractAddr string, queryMsg, out any) error {
	encoded, err := json.Marshal(queryMsg)
	if err != nil {
		return &ChainError{Op: "query", Detail: "encoding query for " + contractAddr, Err: err}
	}

	args := []string{"q", "wasm", "contract-state", "smart", contractAddr, string(encoded)}
	args = append(args, c.queryArgs()...)

	output, err := c.exec.Run(ctx, c.net.Binary, args...)
	if err != nil {
		return &ChainError{Op: "query", Detail: "querying " + contractAddr, Err: err}
	}

	var reply struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(output), &reply); err != nil {
		return &ChainError{Op: "query", Detail: "parsing query reply from " + contractAddr, Err: err}
	}
	if err := json.Unmarshal(reply.Data, out); err != nil {
		return &ChainError{Op: "query", Detail: "decoding query data from " + contractAddr, Err: err}
	}
	return nil
}

// broadcast submits a signed tx in sync mode and waits for block inclusion.
func (c *Client) broadcast(ctx context.Context, op string, args []string) (TxResult, error) {
	output, err := c.exec.Run(ctx, c.net.Binary, args...)
	if err != nil {
		return TxResult{}, &ChainError{Op: op, Detail: "broadcast failed", Err: err}
	}

	var resp txResponse
	if err := json.Unmarshal([]byte(output), &resp); err != nil {
		return TxResult{}, &ChainError{Op: op, Detail: "parsing broadcast reply", Err: err}
	}
	if resp.Code != 0 {
		return TxResult{}, &ChainError{Op: op, Detail: "broadcast rejected with code " + strconv.FormatUint(uint64(resp.Code), 10) + ": " + resp.RawLog}
	}

	result, err := c.waitForTx(ctx, resp.TxHash)
	if err != nil {
		return TxResult{}, &ChainError{Op: op, Detail: "waiting for tx " + resp.TxHash, Err: err}
	}
	if result.Code != 0 {
		return TxResult{}, &ChainError{Op: op, Detail: "tx " + result.TxHash + " failed with code " + strconv.FormatUint(uint64(result.Code), 10) + ": " + result.RawLog}
	}
	return result, nil
}

// waitForTx polls the tx by hash until it is found in a block or the context
// expires. A "not found" query reply just means the tx is still in the
// mempool, so those are retried.
func (c *Client) waitForTx(ctx context.Context, txHash string) (TxResult, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	args := append([]string{"q", "tx", txHash}, c.queryArgs()...)
	for {
		output, err := c.exec.Run(ctx, c.net.Binary, args...)
		if err == nil {
			var resp txResponse
			if parseErr := json.Unmarshal([]byte(output), &resp); parseErr != nil {
				return TxResult{}, parseErr
			}
			if resp.Height != "" && resp.Height != "0" {
				return resp.toResult()
			}
		}

		select {
		case <-ctx.Done():
			return TxResult{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) txArgs() []string {
	args := []string{
		"--from", c.net.KeyName,
		"--chain-id", c.net.ChainID,
		"--keyring-backend", c.net.KeyringBackend,
		"--broadcast-mode", "sync",
		"--gas", "auto",
		"--output", "json",
		"--yes",
	}
	if c.net.Node != "" {
		args = append(args, "--node", c.net.Node)
	}
	if c.net.GasPrices != "" {
		args = append(args, "--gas-prices", c.net.GasPrices)
	}
	if c.net.GasAdjustment != "" {
		args = append(args, "--gas-adjustment", c.net.GasAdjustment)
	}
	return args
}

func (c *Client) queryArgs() []string {
	args := []string{"--output", "json"}
	if c.net.Node != "" {
		args = append(args, "--node", c.net.Node)
	}
	return args
}

// txResponse mirrors the daemon's JSON tx output. Height is a string on the
// wire.
type txResponse struct {
	TxHash string `json:"txhash"`
	Height string `json:"height"`
	Code   uint32 `json:"code"`
	RawLog string `json:"raw_log"`
	Events []struct {
		Type       string `json:"type"`
		Attributes []struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		} `json:"attributes"`
	} `json:"events"`
}

func (r txResponse) toResult() (TxResult, error) {
	height, err := strconv.ParseInt(r.Height, 10, 64)
	if err != nil {
		return TxResult{}, err
	}

	events := make([]Event, 0, len(r.Events))
	for _, ev := range r.Events {
		attrs := make(map[string]string, len(ev.Attributes))
		for _, attr := range ev.Attributes {
			attrs[attr.Key] = attr.Value
		}
		events = append(events, Event{Type: ev.Type, Attributes: attrs})
	}

	return TxResult{
		TxHash: r.TxHash,
		Height: height,
		Code:   r.Code,
		RawLog: r.RawLog,
		Events: events,
	}, nil
}
