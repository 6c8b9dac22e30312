package keeper

import (
	"context"
	"fmt"
	"sync"

	sdkmath "cosmossdk.io/math"

	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

// MockOracle serves redemption rates from memory.
type MockOracle struct {
	mu    sync.Mutex
	rates map[string]types.RedemptionRateResponse
	err   error

	// Calls counts RedemptionRate invocations
	Calls int
	// LastOracleAddress is the contract address of the most recent query
	LastOracleAddress string
}

func NewMockOracle() *MockOracle {
	return &MockOracle{rates: make(map[string]types.RedemptionRateResponse)}
}

// SetRedemptionRate sets the rate returned for denom.
func (m *MockOracle) SetRedemptionRate(denom string, rate sdkmath.LegacyDec) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates[denom] = types.RedemptionRateResponse{RedemptionRate: rate}
}

// SetError makes every query fail with err until cleared with nil.
func (m *MockOracle) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockOracle) RedemptionRate(_ context.Context, oracleContractAddress, denom string) (types.RedemptionRateResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	m.LastOracleAddress = oracleContractAddress
	if m.err != nil {
		return types.RedemptionRateResponse{}, m.err
	}
	resp, ok := m.rates[denom]
	if !ok {
		return types.RedemptionRateResponse{}, fmt.Errorf("no redemption rate for %s", denom)
	}
	return resp, nil
}

// MockPoolManager serves stableswap pools from memory. Unknown ids return a nil pool.
type MockPoolManager struct {
	mu    sync.Mutex
	pools map[uint64]*types.StableswapPool
	err   error

	Calls int
}

func NewMockPoolManager() *MockPoolManager {
	return &MockPoolManager{pools: make(map[uint64]*types.StableswapPool)}
}

// SetPool stores pool under its own id.
func (m *MockPoolManager) SetPool(pool *types.StableswapPool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pools[pool.Id] = pool
}

// SetPoolAt stores pool under poolID, which may differ from pool.Id.
func (m *MockPoolManager) SetPoolAt(poolID uint64, pool *types.StableswapPool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pools[poolID] = pool
}

// SetError makes every lookup fail with err until cleared with nil.
func (m *MockPoolManager) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockPoolManager) Pool(_ context.Context, poolID uint64) (*types.StableswapPool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.pools[poolID], nil
}
