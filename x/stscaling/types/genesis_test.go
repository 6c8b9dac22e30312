package types_test

import (
	"testing"

	"github.com/cosmos/cosmos-sdk/codec/address"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

func TestGenesisStateValidate(t *testing.T) {
	ac := address.NewBech32Codec("osmo")
	admin := sdk.MustBech32ifyAddressBytes("osmo", []byte("admin_______________"))
	oracle := sdk.MustBech32ifyAddressBytes("osmo", []byte("oracle______________"))
	config := types.NewConfig(admin, oracle)

	tests := []struct {
		name    string
		genesis *types.GenesisState
		wantErr error
	}{
		{
			name:    "valid",
			genesis: types.NewGenesisState(config, []types.Pool{types.NewPool(1, "stuosmo", types.AssetOrderingStTokenFirst)}),
		},
		{
			name:    "bad admin",
			genesis: types.NewGenesisState(types.NewConfig("cosmos1xyz", oracle), nil),
			wantErr: types.ErrInvalidAddress,
		},
		{
			name: "duplicate pool",
			genesis: types.NewGenesisState(config, []types.Pool{
				types.NewPool(1, "stuosmo", types.AssetOrderingStTokenFirst),
				types.NewPool(1, "stuatom", types.AssetOrderingNativeTokenFirst),
			}),
			wantErr: types.ErrPoolAlreadyExists,
		},
		{
			name:    "zero pool id",
			genesis: types.NewGenesisState(config, []types.Pool{types.NewPool(0, "stuosmo", types.AssetOrderingStTokenFirst)}),
			wantErr: types.ErrInvalidPoolID,
		},
		{
			name:    "empty denom",
			genesis: types.NewGenesisState(config, []types.Pool{types.NewPool(1, "", types.AssetOrderingStTokenFirst)}),
			wantErr: types.ErrInvalidDenom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.genesis.Validate(ac)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
