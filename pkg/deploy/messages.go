package deploy

// Instantiate and execute message shapes for the protocol contracts. Field
// names follow the contracts' JSON schemas.

type multisigInitMsg struct {
	Voters []multisigVoter `json:"voters"`
	// Threshold is the absolute number of approvals required.
	Threshold       int          `json:"threshold"`
	MaxVotingPeriod votingPeriod `json:"max_voting_period"`
}

type multisigVoter struct {
	Addr   string `json:"addr"`
	Weight int    `json:"weight"`
}

type votingPeriod struct {
	Height uint64 `json:"height"`
}

type tokenInitMsg struct {
	Name            string         `json:"name"`
	Symbol          string         `json:"symbol"`
	Decimals        uint8          `json:"decimals"`
	InitialBalances []tokenBalance `json:"initial_balances"`
	Mint            *tokenMinter   `json:"mint,omitempty"`
}

type tokenBalance struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

type tokenMinter struct {
	Minter string `json:"minter"`
}

type stakingInitMsg struct {
	Owner            string `json:"owner"`
	DepositTokenAddr string `json:"deposit_token_addr"`
	TokenCodeID      uint64 `json:"token_code_id"`
}

type factoryInitMsg struct {
	Owner            string `json:"owner"`
	TokenCodeID      uint64 `json:"token_code_id"`
	FeeAddress       string `json:"fee_address,omitempty"`
	GeneratorAddress string `json:"generator_address"`
}

type vestingInitMsg struct {
	Owner     string `json:"owner"`
	TokenAddr string `json:"token_addr"`
}

type generatorInitMsg struct {
	Owner           string `json:"owner"`
	AstroToken      string `json:"astro_token"`
	VestingContract string `json:"vesting_contract"`
	TokensPerBlock  string `json:"tokens_per_block"`
	// StartBlock is a Uint64, which the contracts serialize as a string.
	StartBlock string `json:"start_block"`
	// AllowedRewardProxies must be present even when empty; the contract
	// rejects a missing field.
	AllowedRewardProxies []string `json:"allowed_reward_proxies"`
}

type factoryUpdateConfigMsg struct {
	UpdateConfig struct {
		GeneratorAddress string `json:"generator_address"`
	} `json:"update_config"`
}

// cw20SendMsg transfers tokens to a contract and triggers its cw20 receive
// hook. Msg carries the base64-encoded hook payload.
type cw20SendMsg struct {
	Send struct {
		Contract string `json:"contract"`
		Amount   string `json:"amount"`
		Msg      string `json:"msg"`
	} `json:"send"`
}

// registerVestingAccountsHook is the vesting contract's cw20 receive payload.
// It is never executed on the vesting contract directly; it rides inside a
// token send so the vested funds arrive with the registration.
type registerVestingAccountsHook struct {
	RegisterVestingAccounts struct {
		VestingAccounts []vestingAccount `json:"vesting_accounts"`
	} `json:"register_vesting_accounts"`
}

type vestingAccount struct {
	Address   string            `json:"address"`
	Schedules []vestingSchedule `json:"schedules"`
}

type vestingSchedule struct {
	StartPoint vestingSchedulePoint  `json:"start_point"`
	EndPoint   *vestingSchedulePoint `json:"end_point,omitempty"`
}

type vestingSchedulePoint struct {
	Time   uint64 `json:"time"`
	Amount string `json:"amount"`
}
