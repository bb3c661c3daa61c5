package abcd

// State storages carried between months [mm]
type State struct {
	S float64 // soil moisture
	G float64 // groundwater
	A float64 // frozen (snow) storage
}
