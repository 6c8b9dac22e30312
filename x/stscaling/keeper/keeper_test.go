package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	keepertest "github.com/Stride-Labs/st-scaling-factor/testutil/keeper"
	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/keeper"
	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

const (
	stAtom = "stuatom"
	atom   = "uatom"
	stOsmo = "stuosmo"
	osmo   = "uosmo"
)

type KeeperTestSuite struct {
	suite.Suite
	keepertest.StScalingFixture
}

func (s *KeeperTestSuite) SetupTest() {
	s.StScalingFixture = keepertest.InstantiatedStScalingKeeper(s.T())
}

func TestKeeperTestSuite(t *testing.T) {
	suite.Run(t, new(KeeperTestSuite))
}

// freshEvents returns the fixture context with an empty event manager
func (s *KeeperTestSuite) freshEvents() sdk.Context {
	return s.Ctx.WithEventManager(sdk.NewEventManager())
}

func (s *KeeperTestSuite) addPool(poolID uint64, denoms [2]string, stTokenDenom string, ordering types.AssetOrdering, rate string) {
	keepertest.RegisterTestPool(s.T(), s.StScalingFixture, poolID, denoms, stTokenDenom, ordering, sdkmath.LegacyMustNewDecFromStr(rate))
}

func (s *KeeperTestSuite) requireAttributes(resp *types.Response, expected map[string]string) {
	s.Require().NotNil(resp)
	s.Require().Len(resp.Attributes, len(expected))
	for key, value := range expected {
		actual, ok := resp.Attribute(key)
		s.Require().True(ok, "missing attribute %s", key)
		s.Require().Equal(value, actual, "attribute %s", key)
	}
}

func (s *KeeperTestSuite) TestInstantiate() {
	config, err := s.Keeper.GetConfig(s.Ctx)
	s.Require().NoError(err)
	s.Require().Equal(types.NewConfig(s.Admin, s.OracleAddr), config)

	version, found, err := s.Keeper.GetContractVersion(s.Ctx)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Require().Equal(types.ContractName, version.Contract)
	s.Require().Equal(types.ContractVersion, version.Version)

	pools, err := s.Keeper.GetAllPools(s.Ctx)
	s.Require().NoError(err)
	s.Require().Empty(pools)
}

func (s *KeeperTestSuite) TestInstantiateTwice() {
	_, err := s.Keeper.Instantiate(s.Ctx, s.Admin, types.InstantiateMsg{
		AdminAddress:          keepertest.TestAddress("other"),
		OracleContractAddress: s.OracleAddr,
	})
	s.Require().ErrorIs(err, types.ErrAlreadyInstantiated)

	config, err := s.Keeper.GetConfig(s.Ctx)
	s.Require().NoError(err)
	s.Require().Equal(s.Admin, config.AdminAddress)
}

func TestInstantiateAttributes(t *testing.T) {
	k, ctx, _, _ := keepertest.StScalingKeeper(t)
	admin := keepertest.TestAddress("admin")
	oracle := keepertest.TestAddress("oracle")

	resp, err := k.Instantiate(ctx, admin, types.InstantiateMsg{AdminAddress: admin, OracleContractAddress: oracle})
	require.NoError(t, err)
	require.Equal(t, []sdk.Attribute{
		sdk.NewAttribute(types.AttributeKeyAction, types.ActionInstantiate),
		sdk.NewAttribute(types.AttributeKeyAdminAddress, admin),
		sdk.NewAttribute(types.AttributeKeyOracleContractAddress, oracle),
	}, resp.Attributes)
	require.Empty(t, resp.Messages)

	events := ctx.EventManager().Events()
	require.Len(t, events, 1)
	require.Equal(t, types.EventTypeContract, events[0].Type)
}

func TestInstantiateInvalidAddress(t *testing.T) {
	k, ctx, _, _ := keepertest.StScalingKeeper(t)

	_, err := k.Instantiate(ctx, "anyone", types.InstantiateMsg{
		AdminAddress:          "not-an-address",
		OracleContractAddress: keepertest.TestAddress("oracle"),
	})
	require.ErrorIs(t, err, types.ErrInvalidAddress)

	// Nothing is persisted, including the contract version
	instantiated, err := k.HasConfig(ctx)
	require.NoError(t, err)
	require.False(t, instantiated)
	_, found, err := k.GetContractVersion(ctx)
	require.NoError(t, err)
	require.False(t, found)
}

func TestExecuteBeforeInstantiate(t *testing.T) {
	k, ctx, _, _ := keepertest.StScalingKeeper(t)
	admin := keepertest.TestAddress("admin")

	_, err := k.Execute(ctx, admin, types.NewExecuteUpdateConfig(admin, admin))
	require.ErrorIs(t, err, types.ErrConfigNotFound)

	_, err = k.Execute(ctx, admin, types.NewExecuteUpdateScalingFactor(1))
	require.ErrorIs(t, err, types.ErrPoolNotFound)

	_, err = k.GetConfig(ctx)
	require.ErrorIs(t, err, types.ErrConfigNotFound)
}

func TestValidateAdmin(t *testing.T) {
	config := types.NewConfig(keepertest.TestAddress("admin"), keepertest.TestAddress("oracle"))

	require.NoError(t, keeper.ValidateAdmin(config, keepertest.TestAddress("admin")))
	require.ErrorIs(t, keeper.ValidateAdmin(config, keepertest.TestAddress("oracle")), types.ErrUnauthorized)
	require.ErrorIs(t, keeper.ValidateAdmin(config, ""), types.ErrUnauthorized)
}

func mustDec(s string) sdkmath.LegacyDec {
	return sdkmath.LegacyMustNewDecFromStr(s)
}
