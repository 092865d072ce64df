package durability

import "errors"

var (
	ErrEngineStopped   = errors.New("durability engine is not running")
	ErrPassInFlight    = errors.New("a scan pass is already running")
	ErrListStructures  = errors.New("failed to list live structures")
	ErrPassPanicked    = errors.New("scan pass panicked")
	ErrStructureFault  = errors.New("structure processing failed")
	ErrInvalidConfig   = errors.New("invalid engine configuration")
	ErrUnknownStrategy = errors.New("unknown scheduling strategy")
)
