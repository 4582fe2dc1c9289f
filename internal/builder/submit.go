package builder

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// SubmitRequest is the prepared payload handed to a key-holding transport.
// This package only ever produces the Data field; To and Value are supplied
// by the caller.
type SubmitRequest struct {
	To    common.Address
	Data  string // 0x-prefixed, even-length hex calldata
	Value *big.Int
}

// Submitter is the collaborator contract for signing and broadcasting a
// prepared call. Implementations own keys and network access; they must
// treat the request as immutable and return either a transaction identifier
// or a transport error. No implementation ships with this package.
type Submitter interface {
	Submit(ctx context.Context, req SubmitRequest) (txID string, err error)
}
