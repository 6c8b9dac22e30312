package keeper_test

import (
	"encoding/json"

	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

func (s *KeeperTestSuite) TestQueries() {
	s.addPool(2, [2]string{osmo, stOsmo}, stOsmo, types.AssetOrderingNativeTokenFirst, "1.1")
	s.addPool(1, [2]string{stAtom, atom}, stAtom, types.AssetOrderingStTokenFirst, "1.2")

	config, err := s.Keeper.QueryConfig(s.Ctx)
	s.Require().NoError(err)
	s.Require().Equal(types.NewConfig(s.Admin, s.OracleAddr), config)

	pool, err := s.Keeper.QueryPool(s.Ctx, 2)
	s.Require().NoError(err)
	s.Require().Equal(types.NewPool(2, stOsmo, types.AssetOrderingNativeTokenFirst), pool)

	_, err = s.Keeper.QueryPool(s.Ctx, 3)
	s.Require().ErrorIs(err, types.ErrPoolNotFound)

	all, err := s.Keeper.QueryAllPools(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(all.Pools, 2)
	s.Require().Equal(uint64(1), all.Pools[0].PoolId)
	s.Require().Equal(uint64(2), all.Pools[1].PoolId)
}

func (s *KeeperTestSuite) TestQueryJSON() {
	s.addPool(1, [2]string{stAtom, atom}, stAtom, types.AssetOrderingStTokenFirst, "1.2")

	bz, err := s.Keeper.QueryJSON(s.Ctx, []byte(`{"pool":{"pool_id":1}}`))
	s.Require().NoError(err)
	s.Require().JSONEq(`{"pool_id":1,"sttoken_denom":"stuatom","asset_ordering":"st_token_first","last_updated":0}`, string(bz))

	bz, err = s.Keeper.QueryJSON(s.Ctx, []byte(`{"config":{}}`))
	s.Require().NoError(err)
	var config types.Config
	s.Require().NoError(json.Unmarshal(bz, &config))
	s.Require().Equal(s.Admin, config.AdminAddress)

	bz, err = s.Keeper.QueryJSON(s.Ctx, []byte(`{"all_pools":{}}`))
	s.Require().NoError(err)
	var pools types.Pools
	s.Require().NoError(json.Unmarshal(bz, &pools))
	s.Require().Len(pools.Pools, 1)

	_, err = s.Keeper.QueryJSON(s.Ctx, []byte(`{"pool":{"pool_id":9}}`))
	s.Require().ErrorIs(err, types.ErrPoolNotFound)

	_, err = s.Keeper.QueryJSON(s.Ctx, []byte(`{"config":{},"all_pools":{}}`))
	s.Require().ErrorIs(err, types.ErrInvalidRequest)
}

func (s *KeeperTestSuite) TestQueryAllPoolsEmpty() {
	bz, err := s.Keeper.QueryJSON(s.Ctx, []byte(`{"all_pools":{}}`))
	s.Require().NoError(err)
	s.Require().JSONEq(`{"pools":[]}`, string(bz))
}
