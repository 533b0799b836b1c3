package types

// Status is the lifecycle state of a mutable config row (app, plan, bundle,
// contract, price book, ...). Distinct from the domain-specific status enums
// (AppStatus, ContractStatus, ...), which describe business state; Status
// describes whether the row itself is still live.
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)
