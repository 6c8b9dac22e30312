package keeper_test

import (
	"errors"
	"strconv"
	"time"

	sdkmath "cosmossdk.io/math"

	keepertest "github.com/Stride-Labs/st-scaling-factor/testutil/keeper"
	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

var errAMMUnavailable = errors.New("pool manager unavailable")

func (s *KeeperTestSuite) TestUpdateConfig() {
	newAdmin := keepertest.TestAddress("new-admin")
	newOracle := keepertest.TestAddress("new-oracle")

	resp, err := s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteUpdateConfig(newAdmin, newOracle))
	s.Require().NoError(err)
	s.requireAttributes(resp, map[string]string{
		types.AttributeKeyAction:                types.TypeMsgUpdateConfig,
		types.AttributeKeyAdminAddress:          newAdmin,
		types.AttributeKeyOracleContractAddress: newOracle,
	})

	config, err := s.Keeper.GetConfig(s.Ctx)
	s.Require().NoError(err)
	s.Require().Equal(types.NewConfig(newAdmin, newOracle), config)

	// The old admin is no longer authorized
	_, err = s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteUpdateConfig(s.Admin, s.OracleAddr))
	s.Require().ErrorIs(err, types.ErrUnauthorized)
}

func (s *KeeperTestSuite) TestUpdateConfigInvalidAddress() {
	_, err := s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteUpdateConfig("osmo1invalid", s.OracleAddr))
	s.Require().ErrorIs(err, types.ErrInvalidAddress)

	config, err := s.Keeper.GetConfig(s.Ctx)
	s.Require().NoError(err)
	s.Require().Equal(s.Admin, config.AdminAddress)
}

func (s *KeeperTestSuite) TestAdminOnlyOperations() {
	s.addPool(1, [2]string{stAtom, atom}, stAtom, types.AssetOrderingStTokenFirst, "1.2")
	stranger := keepertest.TestAddress("stranger")

	msgs := map[string]types.ExecuteMsg{
		types.TypeMsgUpdateConfig:             types.NewExecuteUpdateConfig(stranger, stranger),
		types.TypeMsgAddPool:                  types.NewExecuteAddPool(2, stOsmo, types.AssetOrderingStTokenFirst),
		types.TypeMsgRemovePool:               types.NewExecuteRemovePool(1),
		types.TypeMsgSudoAdjustScalingFactors: types.NewExecuteSudoAdjustScalingFactors(1, []uint64{1, 2}),
	}

	for name, msg := range msgs {
		s.Run(name, func() {
			_, err := s.Keeper.Execute(s.Ctx, stranger, msg)
			s.Require().ErrorIs(err, types.ErrUnauthorized)
		})
	}

	// A malformed payload from a stranger is still rejected as unauthorized
	malformed := map[string]types.ExecuteMsg{
		"add pool zero id":       types.NewExecuteAddPool(0, stOsmo, types.AssetOrderingStTokenFirst),
		"add pool bad ordering":  types.NewExecuteAddPool(2, stOsmo, types.AssetOrdering(0)),
		"remove pool zero id":    types.NewExecuteRemovePool(0),
		"sudo one factor":        types.NewExecuteSudoAdjustScalingFactors(1, []uint64{1}),
		"sudo three factors":     types.NewExecuteSudoAdjustScalingFactors(1, []uint64{1, 2, 3}),
		"sudo zero id no factor": types.NewExecuteSudoAdjustScalingFactors(0, nil),
	}

	for name, msg := range malformed {
		s.Run(name, func() {
			_, err := s.Keeper.Execute(s.Ctx, stranger, msg)
			s.Require().ErrorIs(err, types.ErrUnauthorized)
		})
	}

	// State is unchanged by the rejected calls
	pools, err := s.Keeper.GetAllPools(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(pools, 1)
	config, err := s.Keeper.GetConfig(s.Ctx)
	s.Require().NoError(err)
	s.Require().Equal(s.Admin, config.AdminAddress)
}

func (s *KeeperTestSuite) TestAddPool() {
	s.PoolManager.SetPool(types.NewStableswapPool(1, sdkmath.NewInt(100), stAtom, atom))

	resp, err := s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteAddPool(1, stAtom, types.AssetOrderingStTokenFirst))
	s.Require().NoError(err)
	s.requireAttributes(resp, map[string]string{
		types.AttributeKeyAction:            types.TypeMsgAddPool,
		types.AttributeKeyPoolID:            "1",
		types.AttributeKeyPoolStTokenDenom:  stAtom,
		types.AttributeKeyPoolAssetOrdering: "st_token_first",
	})
	s.Require().Empty(resp.Messages)

	pool, err := s.Keeper.GetPool(s.Ctx, 1)
	s.Require().NoError(err)
	s.Require().Equal(types.Pool{
		PoolId:        1,
		StTokenDenom:  stAtom,
		AssetOrdering: types.AssetOrderingStTokenFirst,
		LastUpdated:   0,
	}, pool)
}

func (s *KeeperTestSuite) TestAddPoolFailures() {
	s.addPool(1, [2]string{stAtom, atom}, stAtom, types.AssetOrderingStTokenFirst, "1.2")

	s.PoolManager.SetPool(types.NewStableswapPool(2, sdkmath.NewInt(100), osmo, stOsmo))
	s.PoolManager.SetPool(types.NewStableswapPool(3, sdkmath.NewInt(100), stOsmo, osmo, atom))
	s.PoolManager.SetPoolAt(4, types.NewStableswapPool(5, sdkmath.NewInt(100), stOsmo, osmo))

	tests := []struct {
		name    string
		msg     types.ExecuteMsg
		ammErr  error
		wantErr error
	}{
		{
			name:    "already registered",
			msg:     types.NewExecuteAddPool(1, stAtom, types.AssetOrderingStTokenFirst),
			wantErr: types.ErrPoolAlreadyExists,
		},
		{
			name:    "already registered takes precedence over AMM errors",
			msg:     types.NewExecuteAddPool(1, stAtom, types.AssetOrderingStTokenFirst),
			ammErr:  errAMMUnavailable,
			wantErr: types.ErrPoolAlreadyExists,
		},
		{
			name:    "not on osmosis",
			msg:     types.NewExecuteAddPool(99, stOsmo, types.AssetOrderingStTokenFirst),
			wantErr: types.ErrPoolNotFoundOsmosis,
		},
		{
			name:    "AMM query error is propagated",
			msg:     types.NewExecuteAddPool(2, stOsmo, types.AssetOrderingNativeTokenFirst),
			ammErr:  errAMMUnavailable,
			wantErr: errAMMUnavailable,
		},
		{
			name:    "ordering mismatch",
			msg:     types.NewExecuteAddPool(2, stOsmo, types.AssetOrderingStTokenFirst),
			wantErr: types.ErrInvalidPoolAssetOrdering,
		},
		{
			name:    "denom not in pool",
			msg:     types.NewExecuteAddPool(2, "stujuno", types.AssetOrderingNativeTokenFirst),
			wantErr: types.ErrInvalidPoolAssetOrdering,
		},
		{
			name:    "three assets",
			msg:     types.NewExecuteAddPool(3, stOsmo, types.AssetOrderingStTokenFirst),
			wantErr: types.ErrInvalidNumberOfPoolAssets,
		},
		{
			name:    "AMM returns a different pool",
			msg:     types.NewExecuteAddPool(4, stOsmo, types.AssetOrderingStTokenFirst),
			wantErr: types.ErrPoolNotFoundOsmosis,
		},
		{
			name:    "invalid ordering",
			msg:     types.NewExecuteAddPool(2, stOsmo, types.AssetOrdering(0)),
			wantErr: types.ErrInvalidAssetOrdering,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.PoolManager.SetError(tt.ammErr)
			defer s.PoolManager.SetError(nil)

			_, err := s.Keeper.Execute(s.Ctx, s.Admin, tt.msg)
			s.Require().ErrorIs(err, tt.wantErr)
		})
	}

	pools, err := s.Keeper.GetAllPools(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(pools, 1)
}

func (s *KeeperTestSuite) TestAddPoolNativeTokenFirst() {
	s.PoolManager.SetPool(types.NewStableswapPool(2, sdkmath.NewInt(100), osmo, stOsmo))

	_, err := s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteAddPool(2, stOsmo, types.AssetOrderingNativeTokenFirst))
	s.Require().NoError(err)

	pool, err := s.Keeper.GetPool(s.Ctx, 2)
	s.Require().NoError(err)
	s.Require().Equal(types.AssetOrderingNativeTokenFirst, pool.AssetOrdering)
}

func (s *KeeperTestSuite) TestRemovePool() {
	s.addPool(1, [2]string{stAtom, atom}, stAtom, types.AssetOrderingStTokenFirst, "1.2")
	s.addPool(2, [2]string{osmo, stOsmo}, stOsmo, types.AssetOrderingNativeTokenFirst, "1.1")

	resp, err := s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteRemovePool(1))
	s.Require().NoError(err)
	s.requireAttributes(resp, map[string]string{
		types.AttributeKeyAction: types.TypeMsgRemovePool,
		types.AttributeKeyPoolID: "1",
	})

	_, err = s.Keeper.GetPool(s.Ctx, 1)
	s.Require().ErrorIs(err, types.ErrPoolNotFound)

	pools, err := s.Keeper.GetAllPools(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(pools, 1)
	s.Require().Equal(uint64(2), pools[0].PoolId)

	// Removing again fails and a removed pool can no longer be refreshed
	_, err = s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteRemovePool(1))
	s.Require().ErrorIs(err, types.ErrPoolNotFound)
	_, err = s.Keeper.Execute(s.Ctx, keepertest.TestAddress("anyone"), types.NewExecuteUpdateScalingFactor(1))
	s.Require().ErrorIs(err, types.ErrPoolNotFound)
}

func (s *KeeperTestSuite) TestRemoveAndReAddPool() {
	s.addPool(1, [2]string{stAtom, atom}, stAtom, types.AssetOrderingStTokenFirst, "1.2")
	_, err := s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteUpdateScalingFactor(1))
	s.Require().NoError(err)

	_, err = s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteRemovePool(1))
	s.Require().NoError(err)
	_, err = s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteAddPool(1, stAtom, types.AssetOrderingStTokenFirst))
	s.Require().NoError(err)

	// A re-added pool starts from a fresh record
	pool, err := s.Keeper.GetPool(s.Ctx, 1)
	s.Require().NoError(err)
	s.Require().Zero(pool.LastUpdated)
}

func (s *KeeperTestSuite) TestUpdateScalingFactor() {
	tests := []struct {
		name     string
		poolID   uint64
		denoms   [2]string
		stToken  string
		ordering types.AssetOrdering
		rate     string
		factors  []uint64
		rateAttr string
	}{
		{
			name:     "native token first",
			poolID:   1,
			denoms:   [2]string{atom, stAtom},
			stToken:  stAtom,
			ordering: types.AssetOrderingNativeTokenFirst,
			rate:     "1.2",
			factors:  []uint64{120_000, 100_000},
			rateAttr: "1.2",
		},
		{
			name:     "st token first",
			poolID:   2,
			denoms:   [2]string{stOsmo, osmo},
			stToken:  stOsmo,
			ordering: types.AssetOrderingStTokenFirst,
			rate:     "1.2345",
			factors:  []uint64{100_000, 123_450},
			rateAttr: "1.2345",
		},
		{
			name:     "floored",
			poolID:   3,
			denoms:   [2]string{"stujuno", "ujuno"},
			stToken:  "stujuno",
			ordering: types.AssetOrderingStTokenFirst,
			rate:     "1.123456789",
			factors:  []uint64{100_000, 112_345},
			rateAttr: "1.123456789",
		},
		{
			name:     "integer rate",
			poolID:   4,
			denoms:   [2]string{"ustars", "stustars"},
			stToken:  "stustars",
			ordering: types.AssetOrderingNativeTokenFirst,
			rate:     "1",
			factors:  []uint64{100_000, 100_000},
			rateAttr: "1",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.addPool(tt.poolID, tt.denoms, tt.stToken, tt.ordering, tt.rate)

			ctx := s.freshEvents()
			resp, err := s.Keeper.Execute(ctx, keepertest.TestAddress("anyone"), types.NewExecuteUpdateScalingFactor(tt.poolID))
			s.Require().NoError(err)

			s.requireAttributes(resp, map[string]string{
				types.AttributeKeyAction:         types.TypeMsgUpdateScalingFactor,
				types.AttributeKeyPoolID:         strconv.FormatUint(tt.poolID, 10),
				types.AttributeKeyRedemptionRate: tt.rateAttr,
				types.AttributeKeyScalingFactors: types.FormatScalingFactors(tt.factors),
			})

			s.Require().Len(resp.Messages, 1)
			s.Require().Equal(types.MsgStableSwapAdjustScalingFactors{
				Sender:         s.Contract,
				PoolId:         tt.poolID,
				ScalingFactors: tt.factors,
			}, resp.Messages[0])

			events := ctx.EventManager().Events()
			s.Require().Len(events, 1)
			s.Require().Equal(types.EventTypeContract, events[0].Type)

			expected := types.NewPool(tt.poolID, tt.stToken, tt.ordering)
			expected.LastUpdated = uint64(keepertest.BlockTime.Unix())
			pool, err := s.Keeper.GetPool(s.Ctx, tt.poolID)
			s.Require().NoError(err)
			s.Require().Equal(expected, pool)
		})
	}
}

func (s *KeeperTestSuite) TestZeroPoolIDIsNotFound() {
	for _, sender := range []string{s.Admin, keepertest.TestAddress("anyone")} {
		_, err := s.Keeper.Execute(s.Ctx, sender, types.NewExecuteUpdateScalingFactor(0))
		s.Require().ErrorIs(err, types.ErrPoolNotFound)
	}

	_, err := s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteRemovePool(0))
	s.Require().ErrorIs(err, types.ErrPoolNotFound)
}

func (s *KeeperTestSuite) TestUpdateScalingFactorAttributeFormat() {
	s.addPool(1, [2]string{atom, stAtom}, stAtom, types.AssetOrderingNativeTokenFirst, "1.2")

	resp, err := s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteUpdateScalingFactor(1))
	s.Require().NoError(err)

	factors, _ := resp.Attribute(types.AttributeKeyScalingFactors)
	s.Require().Equal("[120000, 100000]", factors)
}

func (s *KeeperTestSuite) TestUpdateScalingFactorUsesConfiguredOracle() {
	s.addPool(1, [2]string{stAtom, atom}, stAtom, types.AssetOrderingStTokenFirst, "1.2")

	newOracle := keepertest.TestAddress("new-oracle")
	_, err := s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteUpdateConfig(s.Admin, newOracle))
	s.Require().NoError(err)

	_, err = s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteUpdateScalingFactor(1))
	s.Require().NoError(err)
	s.Require().Equal(newOracle, s.Oracle.LastOracleAddress)
}

func (s *KeeperTestSuite) TestUpdateScalingFactorOracleFailure() {
	s.addPool(1, [2]string{stAtom, atom}, stAtom, types.AssetOrderingStTokenFirst, "1.2")
	s.Oracle.SetError(errors.New("oracle offline"))

	resp, err := s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteUpdateScalingFactor(1))
	s.Require().ErrorIs(err, types.ErrUnableToQueryRedemptionRate)
	s.Require().Contains(err.Error(), stAtom)
	s.Require().Nil(resp)

	pool, err := s.Keeper.GetPool(s.Ctx, 1)
	s.Require().NoError(err)
	s.Require().Zero(pool.LastUpdated)
}

func (s *KeeperTestSuite) TestUpdateScalingFactorOverflow() {
	s.addPool(1, [2]string{stAtom, atom}, stAtom, types.AssetOrderingStTokenFirst, "1000000000000000")

	_, err := s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteUpdateScalingFactor(1))
	s.Require().ErrorIs(err, types.ErrScalingFactorOverflow)

	pool, err := s.Keeper.GetPool(s.Ctx, 1)
	s.Require().NoError(err)
	s.Require().Zero(pool.LastUpdated)
}

func (s *KeeperTestSuite) TestUpdateScalingFactorDoesNotCallAMM() {
	s.addPool(1, [2]string{stAtom, atom}, stAtom, types.AssetOrderingStTokenFirst, "1.2")
	s.PoolManager.SetError(errAMMUnavailable)

	_, err := s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteUpdateScalingFactor(1))
	s.Require().NoError(err)
}

func (s *KeeperTestSuite) TestUpdateScalingFactorLastUpdatedNeverRegresses() {
	s.addPool(1, [2]string{stAtom, atom}, stAtom, types.AssetOrderingStTokenFirst, "1.2")

	later := s.Ctx.WithBlockTime(keepertest.BlockTime.Add(time.Hour))
	_, err := s.Keeper.Execute(later, s.Admin, types.NewExecuteUpdateScalingFactor(1))
	s.Require().NoError(err)

	_, err = s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteUpdateScalingFactor(1))
	s.Require().NoError(err)

	pool, err := s.Keeper.GetPool(s.Ctx, 1)
	s.Require().NoError(err)
	s.Require().Equal(uint64(keepertest.BlockTime.Add(time.Hour).Unix()), pool.LastUpdated)
}

func (s *KeeperTestSuite) TestRefreshFollowsRateChanges() {
	s.addPool(1, [2]string{atom, stAtom}, stAtom, types.AssetOrderingNativeTokenFirst, "1.2")

	resp, err := s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteUpdateScalingFactor(1))
	s.Require().NoError(err)
	s.Require().Equal([]uint64{120_000, 100_000}, resp.Messages[0].ScalingFactors)

	s.Oracle.SetRedemptionRate(stAtom, sdkmath.LegacyMustNewDecFromStr("1.25"))
	resp, err = s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteUpdateScalingFactor(1))
	s.Require().NoError(err)
	s.Require().Equal([]uint64{125_000, 100_000}, resp.Messages[0].ScalingFactors)
}

func (s *KeeperTestSuite) TestSudoAdjustScalingFactors() {
	s.PoolManager.SetError(errAMMUnavailable)
	s.Oracle.SetError(errors.New("oracle offline"))

	// Pool 7 is not registered: sudo bypasses the registry and the oracle
	resp, err := s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteSudoAdjustScalingFactors(7, []uint64{100_000, 110_000}))
	s.Require().NoError(err)
	s.requireAttributes(resp, map[string]string{
		types.AttributeKeyAction:         types.TypeMsgSudoAdjustScalingFactors,
		types.AttributeKeyPoolID:         "7",
		types.AttributeKeyScalingFactors: "[100000,110000]",
	})
	s.Require().Equal([]types.MsgStableSwapAdjustScalingFactors{{
		Sender:         s.Contract,
		PoolId:         7,
		ScalingFactors: []uint64{100_000, 110_000},
	}}, resp.Messages)
	s.Require().Zero(s.Oracle.Calls)
	s.Require().Zero(s.PoolManager.Calls)

	_, err = s.Keeper.GetPool(s.Ctx, 7)
	s.Require().ErrorIs(err, types.ErrPoolNotFound)
}

func (s *KeeperTestSuite) TestSudoAdjustScalingFactorsRequiresTwoFactors() {
	for _, factors := range [][]uint64{nil, {1}, {1, 2, 3}} {
		_, err := s.Keeper.Execute(s.Ctx, s.Admin, types.NewExecuteSudoAdjustScalingFactors(1, factors))
		s.Require().ErrorIs(err, types.ErrInvalidScalingFactors)
	}
}

func (s *KeeperTestSuite) TestFailedExecuteEmitsNoEvents() {
	ctx := s.freshEvents()

	_, err := s.Keeper.Execute(ctx, keepertest.TestAddress("stranger"), types.NewExecuteRemovePool(1))
	s.Require().ErrorIs(err, types.ErrUnauthorized)
	s.Require().Empty(ctx.EventManager().Events())
}

func (s *KeeperTestSuite) TestExecuteJSON() {
	s.PoolManager.SetPool(types.NewStableswapPool(1, sdkmath.NewInt(100), stAtom, atom))

	resp, err := s.Keeper.ExecuteJSON(s.Ctx, s.Admin, []byte(
		`{"add_pool":{"pool_id":1,"sttoken_denom":"stuatom","asset_ordering":"st_token_first"}}`,
	))
	s.Require().NoError(err)
	action, _ := resp.Attribute(types.AttributeKeyAction)
	s.Require().Equal(types.TypeMsgAddPool, action)

	_, err = s.Keeper.ExecuteJSON(s.Ctx, s.Admin, []byte(`{"add_pool":`))
	s.Require().ErrorIs(err, types.ErrInvalidRequest)

	_, err = s.Keeper.ExecuteJSON(s.Ctx, s.Admin, []byte(`{}`))
	s.Require().ErrorIs(err, types.ErrInvalidRequest)
}
