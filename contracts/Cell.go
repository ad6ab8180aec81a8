package contracts

// Cell pairs the raw value of a formula cell with its evaluated
// result, addressed by its A1-style key.
type Cell struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Result string `json:"result"`
}
