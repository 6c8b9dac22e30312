package types

import (
	"strings"

	sdkmath "cosmossdk.io/math"
)

// OracleQueryMsg is the smart query accepted by the ICA Oracle contract.
type OracleQueryMsg struct {
	RedemptionRate *RedemptionRateQuery `json:"redemption_rate,omitempty"`
}

// RedemptionRateQuery asks the oracle for the redemption rate of an stToken.
type RedemptionRateQuery struct {
	Denom  string `json:"denom"`
	Params []byte `json:"params,omitempty"`
}

// RedemptionRateResponse is the oracle's answer to a RedemptionRateQuery.
type RedemptionRateResponse struct {
	RedemptionRate sdkmath.LegacyDec `json:"redemption_rate"`
	UpdateTime     uint64            `json:"update_time"`
}

// NewRedemptionRateQuery builds the oracle query for denom.
func NewRedemptionRateQuery(denom string) OracleQueryMsg {
	return OracleQueryMsg{RedemptionRate: &RedemptionRateQuery{Denom: denom}}
}

// FormatRedemptionRate renders a rate without trailing zeros, e.g. "1.2" rather
// than "1.200000000000000000".
func FormatRedemptionRate(rate sdkmath.LegacyDec) string {
	s := rate.String()
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
