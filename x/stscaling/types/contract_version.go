package types

// ContractVersionInfo identifies the code that last wrote the module state.
type ContractVersionInfo struct {
	Contract string `json:"contract"`
	Version  string `json:"version"`
}

// CurrentContractVersion returns the version record written at instantiation.
func CurrentContractVersion() ContractVersionInfo {
	return ContractVersionInfo{Contract: ContractName, Version: ContractVersion}
}
