package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AssetOrdering records which of the two assets in a stableswap pool is the stToken.
// The scaling factor tied to the native token is the one that tracks the redemption rate.
type AssetOrdering int32

const (
	// AssetOrderingNativeTokenFirst means the pool assets are [nativeToken, stToken],
	// so the redemption rate is carried by the first scaling factor.
	AssetOrderingNativeTokenFirst AssetOrdering = 1
	// AssetOrderingStTokenFirst means the pool assets are [stToken, nativeToken],
	// so the redemption rate is carried by the second scaling factor.
	AssetOrderingStTokenFirst AssetOrdering = 2
)

const (
	nativeTokenFirstName = "native_token_first"
	stTokenFirstName     = "st_token_first"
)

// ParseAssetOrdering accepts the wire names ("st_token_first") as well as the
// variant names ("StTokenFirst").
func ParseAssetOrdering(s string) (AssetOrdering, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "")) {
	case "nativetokenfirst":
		return AssetOrderingNativeTokenFirst, nil
	case "sttokenfirst":
		return AssetOrderingStTokenFirst, nil
	default:
		return 0, ErrInvalidAssetOrdering.Wrapf("unknown asset ordering %q", s)
	}
}

// Validate returns an error for anything other than the two known variants.
func (o AssetOrdering) Validate() error {
	switch o {
	case AssetOrderingNativeTokenFirst, AssetOrderingStTokenFirst:
		return nil
	default:
		return ErrInvalidAssetOrdering.Wrapf("unknown asset ordering %d", int32(o))
	}
}

// StTokenIndex returns the position of the stToken in the pool's asset list.
func (o AssetOrdering) StTokenIndex() (int, error) {
	switch o {
	case AssetOrderingStTokenFirst:
		return 0, nil
	case AssetOrderingNativeTokenFirst:
		return 1, nil
	default:
		return 0, o.Validate()
	}
}

func (o AssetOrdering) String() string {
	switch o {
	case AssetOrderingNativeTokenFirst:
		return nativeTokenFirstName
	case AssetOrderingStTokenFirst:
		return stTokenFirstName
	default:
		return fmt.Sprintf("unknown(%d)", int32(o))
	}
}

// MarshalJSON encodes the ordering as its snake_case wire name.
func (o AssetOrdering) MarshalJSON() ([]byte, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(o.String())
}

// UnmarshalJSON decodes the snake_case wire name.
func (o *AssetOrdering) UnmarshalJSON(bz []byte) error {
	var s string
	if err := json.Unmarshal(bz, &s); err != nil {
		return ErrInvalidAssetOrdering.Wrapf("asset ordering must be a string: %s", err)
	}
	switch s {
	case nativeTokenFirstName:
		*o = AssetOrderingNativeTokenFirst
	case stTokenFirstName:
		*o = AssetOrderingStTokenFirst
	default:
		return ErrInvalidAssetOrdering.Wrapf("unknown asset ordering %q", s)
	}
	return nil
}
