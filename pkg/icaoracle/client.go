// Package icaoracle reads stToken redemption rates from the ICA Oracle CosmWasm
// contract through wasm smart queries.
package icaoracle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Stride-Labs/st-scaling-factor/pkg/lcd"
	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

var _ types.OracleQuerier = (*OracleClient)(nil)

// ErrEmptyRedemptionRate is returned when the oracle answers without a rate
var ErrEmptyRedemptionRate = errors.New("oracle returned no redemption rate")

// OracleClient issues smart queries against an ICA Oracle contract over the LCD
type OracleClient struct {
	lcd *lcd.Client
}

// NewOracleClient creates an oracle client on top of an LCD client
func NewOracleClient(client *lcd.Client) *OracleClient {
	return &OracleClient{lcd: client}
}

type smartQueryResponse struct {
	Data types.RedemptionRateResponse `json:"data"`
}

// SmartQueryPath returns the LCD path of a smart query against contract
func SmartQueryPath(contract string, query any) (string, error) {
	bz, err := json.Marshal(query)
	if err != nil {
		return "", fmt.Errorf("failed to marshal smart query: %w", err)
	}
	return fmt.Sprintf("/cosmwasm/wasm/v1/contract/%s/smart/%s", contract, base64.URLEncoding.EncodeToString(bz)), nil
}

// RedemptionRate returns the redemption rate the oracle holds for denom
func (c *OracleClient) RedemptionRate(ctx context.Context, oracleContractAddress, denom string) (types.RedemptionRateResponse, error) {
	path, err := SmartQueryPath(oracleContractAddress, types.NewRedemptionRateQuery(denom))
	if err != nil {
		return types.RedemptionRateResponse{}, err
	}

	var resp smartQueryResponse
	if err := c.lcd.GetJSON(ctx, path, &resp); err != nil {
		return types.RedemptionRateResponse{}, err
	}
	if resp.Data.RedemptionRate.IsNil() {
		return types.RedemptionRateResponse{}, ErrEmptyRedemptionRate
	}

	return resp.Data, nil
}
