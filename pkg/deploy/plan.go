package deploy

import "fmt"

// Plan is a named, fixed-order sequence of steps. Plans are plain values
// assembled at startup; there are no conditional or disabled steps inside a
// plan, only steps that skip themselves when already done.
type Plan struct {
	Name  string
	Steps []Step
}

// CorePlan deploys the protocol's base contracts.
func CorePlan(p Params) Plan {
	return Plan{
		Name: "core",
		Steps: []Step{
			stepDeployMultisig(p),
			stepDeployToken(p),
			stepDeployStaking(p),
		},
	}
}

// TokenomicsPlan deploys and wires the emission contracts. It expects the
// core plan's record keys to be present. The factory deploys here rather
// than in core because its instantiate message requires the generator's
// address.
func TokenomicsPlan(p Params) Plan {
	return Plan{
		Name: "tokenomics",
		Steps: []Step{
			stepDeployVesting(p),
			stepDeployGenerator(p),
			stepDeployFactory(p),
			stepRegisterGenerator(p),
			stepRegisterVestingSchedules(p),
		},
	}
}

// AllPlan runs core then tokenomics in one invocation.
func AllPlan(p Params) Plan {
	core := CorePlan(p)
	tokenomics := TokenomicsPlan(p)
	return Plan{
		Name:  "all",
		Steps: append(core.Steps, tokenomics.Steps...),
	}
}

// PlanNames lists the built-in plan names in execution-order groups.
func PlanNames() []string {
	return []string{"core", "tokenomics", "all"}
}

// PlanByName resolves a built-in plan.
func PlanByName(name string, p Params) (Plan, error) {
	switch name {
	case "core":
		return CorePlan(p), nil
	case "tokenomics":
		return TokenomicsPlan(p), nil
	case "all":
		return AllPlan(p), nil
	default:
		return Plan{}, fmt.Errorf("unknown plan %q (available: core, tokenomics, all)", name)
	}
}
