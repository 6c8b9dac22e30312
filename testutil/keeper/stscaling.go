package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/keeper"
	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

// BlockTime is the block time of contexts returned by StScalingKeeper
var BlockTime = time.Unix(1_700_000_000, 0).UTC()

// StScalingFixture bundles a keeper with the fakes it was built on
type StScalingFixture struct {
	Keeper      keeper.Keeper
	Ctx         sdk.Context
	Oracle      *MockOracle
	PoolManager *MockPoolManager

	Admin      string
	OracleAddr string
	Contract   string
}

// TestAddress derives a deterministic osmo bech32 address from name
func TestAddress(name string) string {
	bz := make([]byte, 20)
	copy(bz, name)
	return sdk.MustBech32ifyAddressBytes(types.Bech32PrefixAccAddr, bz)
}

// StScalingKeeper creates a test keeper for the stscaling module backed by fakes.
// The contract is not instantiated.
func StScalingKeeper(t testing.TB) (keeper.Keeper, sdk.Context, *MockOracle, *MockPoolManager) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	oracle := NewMockOracle()
	poolManager := NewMockPoolManager()

	k := keeper.NewKeeper(
		runtime.NewKVStoreService(storeKey),
		address.NewBech32Codec(types.Bech32PrefixAccAddr),
		oracle,
		poolManager,
		TestAddress("contract"),
	)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1, Time: BlockTime}, false, log.NewNopLogger())

	return k, ctx, oracle, poolManager
}

// InstantiatedStScalingKeeper returns a keeper whose contract has been instantiated
// with TestAddress("admin") and TestAddress("oracle")
func InstantiatedStScalingKeeper(t testing.TB) StScalingFixture {
	k, ctx, oracle, poolManager := StScalingKeeper(t)

	f := StScalingFixture{
		Keeper:      k,
		Ctx:         ctx,
		Oracle:      oracle,
		PoolManager: poolManager,
		Admin:       TestAddress("admin"),
		OracleAddr:  TestAddress("oracle"),
		Contract:    k.ContractAddress(),
	}

	_, err := k.Instantiate(ctx, f.Admin, types.InstantiateMsg{
		AdminAddress:          f.Admin,
		OracleContractAddress: f.OracleAddr,
	})
	require.NoError(t, err)

	return f
}

// RegisterTestPool makes poolID exist on the fake AMM with the two denoms in order,
// sets the oracle rate for stTokenDenom, and adds the pool to the registry
func RegisterTestPool(
	t testing.TB,
	f StScalingFixture,
	poolID uint64,
	denoms [2]string,
	stTokenDenom string,
	ordering types.AssetOrdering,
	rate sdkmath.LegacyDec,
) {
	f.PoolManager.SetPool(types.NewStableswapPool(poolID, sdkmath.NewInt(1_000_000), denoms[0], denoms[1]))
	f.Oracle.SetRedemptionRate(stTokenDenom, rate)

	_, err := f.Keeper.Execute(f.Ctx, f.Admin, types.NewExecuteAddPool(poolID, stTokenDenom, ordering))
	require.NoError(t, err)
}
