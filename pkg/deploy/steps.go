package deploy

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"astroctl/pkg/artifacts"
	"astroctl/pkg/chain"
	"astroctl/pkg/config"
	"astroctl/pkg/wasm"
)

// Record keys produced by the built-in steps.
const (
	KeyMultisigAddress            = "multisigAddress"
	KeyTokenCodeID                = "tokenCodeID"
	KeyTokenAddress               = "tokenAddress"
	KeyStakingAddress             = "stakingAddress"
	KeyFactoryAddress             = "factoryAddress"
	KeyVestingAddress             = "vestingAddress"
	KeyGeneratorAddress           = "generatorAddress"
	KeyGeneratorRegistered        = "generatorRegistered"
	KeyVestingSchedulesRegistered = "vestingSchedulesRegistered"
)

const (
	defaultTokenDecimals  = 6
	defaultTokensPerBlock = "10000000"
	// ~1 week of blocks at 6s, the multisig's max voting window.
	multisigVotingBlocks = 100800
)

// Params carries everything the built-in steps need besides the record.
type Params struct {
	WasmDir   string
	Admin     string
	Token     config.TokenParams
	Multisig  config.MultisigParams
	Generator config.GeneratorParams
	Vesting   []config.VestingAccount
}

// ParamsFromConfig assembles step parameters for one network.
func ParamsFromConfig(cfg *config.Config, net config.NetworkConfig) Params {
	return Params{
		WasmDir:   cfg.GetWasmDir(),
		Admin:     net.Admin,
		Token:     cfg.Token,
		Multisig:  cfg.Multisig,
		Generator: cfg.Generator,
		Vesting:   cfg.VestingAccounts,
	}
}

// contractOutputs lists the record keys storeAndInstantiate writes for a
// prefix. Steps declare these so their skip decision covers every key they
// persist, not just the address.
func contractOutputs(keyPrefix string) []string {
	return []string{keyPrefix + "CodeID", keyPrefix + "Address", keyPrefix + "Checksum"}
}

// storeAndInstantiate uploads a contract binary and instantiates it,
// returning the code id, address and binary checksum under keyPrefix.
func storeAndInstantiate(ctx context.Context, gw chain.Gateway, step, wasmDir, contract, keyPrefix string, initMsg any, label, admin string) (artifacts.Record, error) {
	path, err := wasm.Locate(wasmDir, contract)
	if err != nil {
		return nil, &ConfigurationError{Step: step, Detail: err.Error()}
	}
	sum, err := wasm.Checksum(path)
	if err != nil {
		return nil, &ConfigurationError{Step: step, Detail: err.Error()}
	}

	codeID, err := gw.UploadCode(ctx, path)
	if err != nil {
		return nil, err
	}
	addr, err := gw.Instantiate(ctx, codeID, initMsg, label, admin)
	if err != nil {
		return nil, err
	}

	delta := artifacts.Record{}
	delta.SetUint64(keyPrefix+"CodeID", codeID)
	delta.Set(keyPrefix+"Address", addr)
	delta.Set(keyPrefix+"Checksum", sum)
	return delta, nil
}

func stepDeployMultisig(p Params) Step {
	const name = "deploy-multisig"
	return Step{
		Name:    name,
		Outputs: contractOutputs("multisig"),
		Run: func(ctx context.Context, gw chain.Gateway, _ artifacts.Record) (artifacts.Record, error) {
			if len(p.Multisig.Owners) == 0 {
				return nil, &ConfigurationError{Step: name, Detail: "no multisig owners configured"}
			}
			voters := make([]multisigVoter, 0, len(p.Multisig.Owners))
			for _, owner := range p.Multisig.Owners {
				voters = append(voters, multisigVoter{Addr: owner, Weight: 1})
			}
			msg := multisigInitMsg{
				Voters:          voters,
				Threshold:       p.Multisig.Threshold,
				MaxVotingPeriod: votingPeriod{Height: multisigVotingBlocks},
			}
			return storeAndInstantiate(ctx, gw, name, p.WasmDir, "cw3_fixed_multisig", "multisig", msg, "astroport-multisig", p.Admin)
		},
	}
}

func stepDeployToken(p Params) Step {
	const name = "deploy-token"
	return Step{
		Name:    name,
		Outputs: contractOutputs("token"),
		Run: func(ctx context.Context, gw chain.Gateway, record artifacts.Record) (artifacts.Record, error) {
			if err := requireKeys(name, record, KeyMultisigAddress); err != nil {
				return nil, err
			}
			multisig := record.Get(KeyMultisigAddress)

			decimals := p.Token.Decimals
			if decimals == 0 {
				decimals = defaultTokenDecimals
			}
			msg := tokenInitMsg{
				Name:     p.Token.Name,
				Symbol:   p.Token.Symbol,
				Decimals: decimals,
				InitialBalances: []tokenBalance{
					{Address: multisig, Amount: p.Token.InitialSupply},
				},
				Mint: &tokenMinter{Minter: multisig},
			}
			return storeAndInstantiate(ctx, gw, name, p.WasmDir, "astroport_token", "token", msg, "astroport-token", p.Admin)
		},
	}
}

func stepDeployStaking(p Params) Step {
	const name = "deploy-staking"
	return Step{
		Name:    name,
		Outputs: contractOutputs("staking"),
		Run: func(ctx context.Context, gw chain.Gateway, record artifacts.Record) (artifacts.Record, error) {
			if err := requireKeys(name, record, KeyTokenAddress, KeyTokenCodeID); err != nil {
				return nil, err
			}
			tokenCodeID, err := record.Uint64(KeyTokenCodeID)
			if err != nil {
				return nil, &ConfigurationError{Step: name, Detail: err.Error()}
			}

			msg := stakingInitMsg{
				Owner:            p.Admin,
				DepositTokenAddr: record.Get(KeyTokenAddress),
				TokenCodeID:      tokenCodeID,
			}
			return storeAndInstantiate(ctx, gw, name, p.WasmDir, "astroport_staking", "staking", msg, "astroport-staking", p.Admin)
		},
	}
}

// stepDeployFactory runs after the generator: the factory's instantiate
// message has no optional generator field, so the generator address must
// exist before the factory can.
func stepDeployFactory(p Params) Step {
	const name = "deploy-factory"
	return Step{
		Name:    name,
		Outputs: contractOutputs("factory"),
		Run: func(ctx context.Context, gw chain.Gateway, record artifacts.Record) (artifacts.Record, error) {
			if err := requireKeys(name, record, KeyTokenCodeID, KeyMultisigAddress, KeyGeneratorAddress); err != nil {
				return nil, err
			}
			tokenCodeID, err := record.Uint64(KeyTokenCodeID)
			if err != nil {
				return nil, &ConfigurationError{Step: name, Detail: err.Error()}
			}

			msg := factoryInitMsg{
				Owner:            p.Admin,
				TokenCodeID:      tokenCodeID,
				FeeAddress:       record.Get(KeyMultisigAddress),
				GeneratorAddress: record.Get(KeyGeneratorAddress),
			}
			return storeAndInstantiate(ctx, gw, name, p.WasmDir, "astroport_factory", "factory", msg, "astroport-factory", p.Admin)
		},
	}
}

func stepDeployVesting(p Params) Step {
	const name = "deploy-vesting"
	return Step{
		Name:    name,
		Outputs: contractOutputs("vesting"),
		Run: func(ctx context.Context, gw chain.Gateway, record artifacts.Record) (artifacts.Record, error) {
			if err := requireKeys(name, record, KeyTokenAddress); err != nil {
				return nil, err
			}
			msg := vestingInitMsg{
				Owner:     p.Admin,
				TokenAddr: record.Get(KeyTokenAddress),
			}
			return storeAndInstantiate(ctx, gw, name, p.WasmDir, "astroport_vesting", "vesting", msg, "astroport-vesting", p.Admin)
		},
	}
}

func stepDeployGenerator(p Params) Step {
	const name = "deploy-generator"
	return Step{
		Name:    name,
		Outputs: contractOutputs("generator"),
		Run: func(ctx context.Context, gw chain.Gateway, record artifacts.Record) (artifacts.Record, error) {
			if err := requireKeys(name, record, KeyTokenAddress, KeyVestingAddress); err != nil {
				return nil, err
			}
			tokensPerBlock := p.Generator.TokensPerBlock
			if tokensPerBlock == "" {
				tokensPerBlock = defaultTokensPerBlock
			}
			msg := generatorInitMsg{
				Owner:                p.Admin,
				AstroToken:           record.Get(KeyTokenAddress),
				VestingContract:      record.Get(KeyVestingAddress),
				TokensPerBlock:       tokensPerBlock,
				StartBlock:           strconv.FormatUint(p.Generator.StartBlock, 10),
				AllowedRewardProxies: []string{},
			}
			return storeAndInstantiate(ctx, gw, name, p.WasmDir, "astroport_generator", "generator", msg, "astroport-generator", p.Admin)
		},
	}
}

// stepRegisterGenerator points the factory at the recorded generator and
// persists the tx hash as the completion marker. The factory is instantiated
// against the same generator, so this also re-points it after an operator
// replaces the generator and clears the marker.
func stepRegisterGenerator(p Params) Step {
	const name = "register-generator"
	return Step{
		Name:    name,
		Outputs: []string{KeyGeneratorRegistered},
		Run: func(ctx context.Context, gw chain.Gateway, record artifacts.Record) (artifacts.Record, error) {
			if err := requireKeys(name, record, KeyFactoryAddress, KeyGeneratorAddress); err != nil {
				return nil, err
			}
			var msg factoryUpdateConfigMsg
			msg.UpdateConfig.GeneratorAddress = record.Get(KeyGeneratorAddress)

			result, err := gw.Execute(ctx, record.Get(KeyFactoryAddress), msg, "")
			if err != nil {
				return nil, err
			}
			// The marker value is the registering tx hash.
			return artifacts.Record{KeyGeneratorRegistered: result.TxHash}, nil
		},
	}
}

// stepRegisterVestingSchedules funds the vesting contract and registers the
// configured schedules in one transaction. The vesting contract only accepts
// registrations through its cw20 receive hook, so the execute goes to the
// token contract as a send carrying the base64-encoded hook payload.
func stepRegisterVestingSchedules(p Params) Step {
	const name = "register-vesting-schedules"
	return Step{
		Name:    name,
		Outputs: []string{KeyVestingSchedulesRegistered},
		Needed: func(record artifacts.Record) bool {
			// Nothing to register means nothing to do.
			return len(p.Vesting) > 0 && !record.Has(KeyVestingSchedulesRegistered)
		},
		Run: func(ctx context.Context, gw chain.Gateway, record artifacts.Record) (artifacts.Record, error) {
			if err := requireKeys(name, record, KeyTokenAddress, KeyVestingAddress); err != nil {
				return nil, err
			}

			var hook registerVestingAccountsHook
			for _, account := range p.Vesting {
				hook.RegisterVestingAccounts.VestingAccounts = append(hook.RegisterVestingAccounts.VestingAccounts, vestingAccount{
					Address:   account.Address,
					Schedules: schedulesToMsg(account.Schedules),
				})
			}
			payload, err := json.Marshal(hook)
			if err != nil {
				return nil, err
			}
			total, err := vestingTotal(p.Vesting)
			if err != nil {
				return nil, &ConfigurationError{Step: name, Detail: err.Error()}
			}

			var msg cw20SendMsg
			msg.Send.Contract = record.Get(KeyVestingAddress)
			msg.Send.Amount = total
			msg.Send.Msg = base64.StdEncoding.EncodeToString(payload)

			result, err := gw.Execute(ctx, record.Get(KeyTokenAddress), msg, "")
			if err != nil {
				return nil, err
			}
			return artifacts.Record{KeyVestingSchedulesRegistered: result.TxHash}, nil
		},
	}
}

func schedulesToMsg(schedules []config.VestingSchedule) []vestingSchedule {
	out := make([]vestingSchedule, 0, len(schedules))
	for _, s := range schedules {
		schedule := vestingSchedule{
			StartPoint: vestingSchedulePoint{Time: s.StartTime, Amount: s.StartAmount},
		}
		if s.EndTime != 0 {
			schedule.EndPoint = &vestingSchedulePoint{Time: s.EndTime, Amount: s.EndAmount}
		}
		out = append(out, schedule)
	}
	return out
}

// vestingTotal sums the final amount of every schedule. The send must carry
// exactly the tokens the hook registers or the vesting contract rejects it.
func vestingTotal(accounts []config.VestingAccount) (string, error) {
	total := new(big.Int)
	for _, account := range accounts {
		for _, s := range account.Schedules {
			amount := s.StartAmount
			if s.EndAmount != "" {
				amount = s.EndAmount
			}
			n, ok := new(big.Int).SetString(amount, 10)
			if !ok {
				return "", fmt.Errorf("vesting amount for %s is not an integer: %q", account.Address, amount)
			}
			total.Add(total, n)
		}
	}
	return total.String(), nil
}
