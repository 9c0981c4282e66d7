package status

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"astroctl/pkg/artifacts"
	"astroctl/pkg/env"
)

type ChainStat struct {
	RPCStatus  string
	ChainID    string
	Height     string
	CatchingUp string
}

type PortStat struct {
	Name  string
	Port  int
	InUse bool
}

type NetworkStatus struct {
	Network string
	Chain   ChainStat
	Ports   []PortStat
	Record  artifacts.Record
}

// Gather collects everything the status command renders for one network.
// node is the Tendermint RPC endpoint in http form; it may be empty for
// offline networks.
func Gather(network, node string, store *artifacts.Store) NetworkStatus {
	record, err := store.Load(network)
	if err != nil {
		record = artifacts.Record{}
	}

	return NetworkStatus{
		Network: network,
		Chain:   GatherChainHealth(node),
		Ports: []PortStat{
			{Name: "Tendermint RPC", Port: 26657, InUse: !env.IsPortAvailable(26657)},
			{Name: "REST API", Port: 1317, InUse: !env.IsPortAvailable(1317)},
			{Name: "gRPC", Port: 9090, InUse: !env.IsPortAvailable(9090)},
		},
		Record: record,
	}
}

// GatherChainHealth queries the node's /status endpoint.
func GatherChainHealth(node string) ChainStat {
	result := ChainStat{RPCStatus: "Offline", ChainID: "-", Height: "-", CatchingUp: "-"}
	if node == "" {
		return result
	}

	client := &http.Client{Timeout: 1 * time.Second}

	var status struct {
		NodeInfo struct {
			Network string `json:"network"`
		} `json:"node_info"`
		SyncInfo struct {
			LatestBlockHeight string `json:"latest_block_height"`
			CatchingUp        bool   `json:"catching_up"`
		} `json:"sync_info"`
	}
	if err := rpcCall(client, statusURL(node), &status); err != nil {
		return result
	}

	result.RPCStatus = "Healthy"
	if status.NodeInfo.Network != "" {
		result.ChainID = status.NodeInfo.Network
	}
	if status.SyncInfo.LatestBlockHeight != "" {
		result.Height = status.SyncInfo.LatestBlockHeight
	}
	if status.SyncInfo.CatchingUp {
		result.CatchingUp = "Yes"
	} else {
		result.CatchingUp = "No"
	}
	return result
}

// statusURL turns a configured node endpoint into the /status URL. tcp://
// endpoints are how Tendermint configs spell http.
func statusURL(node string) string {
	url := strings.TrimSuffix(node, "/")
	if strings.HasPrefix(url, "tcp://") {
		url = "http://" + strings.TrimPrefix(url, "tcp://")
	}
	return url + "/status"
}

func rpcCall(client *http.Client, url string, result interface{}) error {
	resp, err := client.Get(url) // #nosec G107 -- node URL is config input and intentionally configurable
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return err
	}
	if len(envelope.Result) == 0 {
		return fmt.Errorf("empty result")
	}
	return json.Unmarshal(envelope.Result, result)
}
