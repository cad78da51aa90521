package contracts

// ITokenEstimator measures text in approximate model tokens and cuts text down to a budget.
type ITokenEstimator interface {
	Estimate(text string) int
	Truncate(text string, maxTokens int) string
	MarkerTokens() int
}
