// Package session drives the multi-turn conversation: a per-user state
// machine that collects flow data across messages, validates every step and
// hands completed flows to the ledger and report layers.
package session

// State is the closed set of conversation states. Each variant carries
// exactly the pending data collected so far, so a step can never read a
// field that does not belong to its flow.
type State interface {
	isState()
}

type (
	// Idle means no flow is in progress; menu input is dispatched from here.
	Idle struct{}

	// AwaitingAmount waits for the expense sum.
	AwaitingAmount struct{}

	// AwaitingCategory waits for the expense category, amount already taken.
	AwaitingCategory struct {
		Amount int64
	}

	// AwaitingDescription waits for the final free-text step of the add flow.
	AwaitingDescription struct {
		Amount   int64
		Category string
	}

	// AwaitingSalary waits for the salary sum.
	AwaitingSalary struct{}

	// AwaitingLimitCategory waits for the category whose limit is being set.
	AwaitingLimitCategory struct{}

	// AwaitingLimitValue waits for the limit sum, category already chosen.
	AwaitingLimitValue struct {
		Category string
	}

	// AwaitingStatsOption waits for a choice from the statistics submenu.
	AwaitingStatsOption struct{}

	// AwaitingDetailCategory waits for the category of the detail report.
	AwaitingDetailCategory struct{}
)

func (Idle) isState()                   {}
func (AwaitingAmount) isState()         {}
func (AwaitingCategory) isState()       {}
func (AwaitingDescription) isState()    {}
func (AwaitingSalary) isState()         {}
func (AwaitingLimitCategory) isState()  {}
func (AwaitingLimitValue) isState()     {}
func (AwaitingStatsOption) isState()    {}
func (AwaitingDetailCategory) isState() {}
