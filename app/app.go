// Package app provides the stscaling runtime: a persistent multistore on cosmos-db,
// the stscaling keeper, and the per-invocation block context every contract call
// runs in.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/Stride-Labs/st-scaling-factor/app/telemetry"
	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/keeper"
	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

const (
	// AppName is the name of the runtime and its database
	AppName = "stscaling"

	// DefaultChainID is used when no chain id is configured
	DefaultChainID = "osmosis-1"
)

// Options configure a new App
type Options struct {
	// ChainID is set on every block header
	ChainID string
	// ContractAddress is the sender of emitted adjust-scaling-factors instructions
	ContractAddress string
	// Oracle and PoolManager are the external collaborators
	Oracle      types.OracleQuerier
	PoolManager types.PoolManagerQuerier
	// Clock supplies block time; defaults to time.Now
	Clock func() time.Time
}

// Validate checks the options needed to build a keeper
func (o Options) Validate() error {
	if o.Oracle == nil {
		return fmt.Errorf("oracle querier is required")
	}
	if o.PoolManager == nil {
		return fmt.Errorf("pool manager querier is required")
	}
	return types.ValidateAddress(address.NewBech32Codec(types.Bech32PrefixAccAddr), "contract_address", o.ContractAddress)
}

// App owns the store and keeper. Calls are serialized: execute and instantiate take
// the write lock, queries the read lock.
type App struct {
	mu sync.RWMutex

	logger      log.Logger
	db          dbm.DB
	cms         storetypes.CommitMultiStore
	storeKey    *storetypes.KVStoreKey
	keeper      keeper.Keeper
	chainID     string
	clock       func() time.Time
	instruments *telemetry.Instruments
}

// New opens (or creates) the database under home/data using backend
func New(logger log.Logger, home string, backend dbm.BackendType, opts Options) (*App, error) {
	db, err := dbm.NewDB(AppName, backend, filepath.Join(home, "data"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	app, err := NewWithDB(logger, db, opts)
	if err != nil {
		db.Close()
		return nil, err
	}
	return app, nil
}

// NewWithDB builds an App on an already opened database
func NewWithDB(logger log.Logger, db dbm.DB, opts Options) (*App, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app options: %w", err)
	}
	if opts.ChainID == "" {
		opts.ChainID = DefaultChainID
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	cms.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, nil)
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	instruments, err := telemetry.NewInstruments()
	if err != nil {
		return nil, fmt.Errorf("failed to create telemetry instruments: %w", err)
	}

	k := keeper.NewKeeper(
		runtime.NewKVStoreService(storeKey),
		address.NewBech32Codec(types.Bech32PrefixAccAddr),
		opts.Oracle,
		opts.PoolManager,
		opts.ContractAddress,
	)

	return &App{
		logger:      logger,
		db:          db,
		cms:         cms,
		storeKey:    storeKey,
		keeper:      k,
		chainID:     opts.ChainID,
		clock:       opts.Clock,
		instruments: instruments,
	}, nil
}

// Keeper returns the stscaling keeper
func (app *App) Keeper() keeper.Keeper {
	return app.keeper
}

// Logger returns the app logger
func (app *App) Logger() log.Logger {
	return app.logger
}

// LastHeight returns the height of the last committed state
func (app *App) LastHeight() int64 {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cms.LastCommitID().Version
}

// Close closes the underlying database
func (app *App) Close() error {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.db.Close()
}

// newBlockContext returns a context for the next block on top of ms
func (app *App) newBlockContext(ctx context.Context, ms storetypes.MultiStore) sdk.Context {
	header := cmtproto.Header{
		ChainID: app.chainID,
		Height:  app.cms.LastCommitID().Version + 1,
		Time:    app.clock().UTC(),
	}
	return sdk.NewContext(ms, header, false, app.logger).WithContext(ctx)
}

// deliver runs fn in a block context and commits the store when fn succeeds
func (app *App) deliver(
	ctx context.Context,
	entryPoint, action string,
	fn func(sdkCtx sdk.Context) (*types.Response, error),
) (*types.Response, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	start := time.Now()
	height := app.cms.LastCommitID().Version + 1
	ctx, span := telemetry.StartContractSpan(ctx, entryPoint, action, height)

	resp, err := fn(app.newBlockContext(ctx, app.cms))
	if err == nil {
		commitID := app.cms.Commit()
		app.logger.Debug("committed", "height", commitID.Version, "action", action)
	}

	telemetry.EndSpan(span, err)
	app.instruments.Record(ctx, entryPoint, action, time.Since(start), err)

	return resp, err
}

// Instantiate stores the initial config
func (app *App) Instantiate(ctx context.Context, sender string, msg types.InstantiateMsg) (*types.Response, error) {
	return app.deliver(ctx, "instantiate", types.ActionInstantiate, func(sdkCtx sdk.Context) (*types.Response, error) {
		return app.keeper.Instantiate(sdkCtx, sender, msg)
	})
}

// Execute runs an execute message as sender
func (app *App) Execute(ctx context.Context, sender string, msg types.ExecuteMsg) (*types.Response, error) {
	return app.deliver(ctx, "execute", msg.Type(), func(sdkCtx sdk.Context) (*types.Response, error) {
		return app.keeper.Execute(sdkCtx, sender, msg)
	})
}

// Query answers a query against the last committed state
func (app *App) Query(ctx context.Context, msg types.QueryMsg) (any, error) {
	app.mu.RLock()
	defer app.mu.RUnlock()

	ctx, span := telemetry.StartContractSpan(ctx, "query", queryName(msg), app.cms.LastCommitID().Version)
	resp, err := app.keeper.Query(app.newBlockContext(ctx, app.cms.CacheMultiStore()), msg)
	telemetry.EndSpan(span, err)

	return resp, err
}

// QueryJSON answers a JSON encoded query with a JSON encoded response
func (app *App) QueryJSON(ctx context.Context, bz []byte) ([]byte, error) {
	app.mu.RLock()
	defer app.mu.RUnlock()

	ctx, span := telemetry.StartContractSpan(ctx, "query", "json", app.cms.LastCommitID().Version)
	resp, err := app.keeper.QueryJSON(app.newBlockContext(ctx, app.cms.CacheMultiStore()), bz)
	telemetry.EndSpan(span, err)

	return resp, err
}

func queryName(msg types.QueryMsg) string {
	switch {
	case msg.Config != nil:
		return "config"
	case msg.Pool != nil:
		return "pool"
	case msg.AllPools != nil:
		return "all_pools"
	default:
		return ""
	}
}

// ExecuteJSON runs a JSON execute message such as {"add_pool":{...}} as sender.
// The variant is unknown until the keeper decodes it, so it is recorded as "json".
func (app *App) ExecuteJSON(ctx context.Context, sender string, bz []byte) (*types.Response, error) {
	return app.deliver(ctx, "execute", "json", func(sdkCtx sdk.Context) (*types.Response, error) {
		return app.keeper.ExecuteJSON(sdkCtx, sender, bz)
	})
}

// Instantiated reports whether the contract config has been committed
func (app *App) Instantiated(ctx context.Context) (bool, error) {
	app.mu.RLock()
	defer app.mu.RUnlock()

	return app.keeper.HasConfig(app.newBlockContext(ctx, app.cms.CacheMultiStore()))
}
