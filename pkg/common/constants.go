package common

const (
	RedisStreamFilingAnalysis = "filing.analysis"

	RedisStreamGroup    = "analyzer-group"
	RedisStreamConsumer = "analyzer-consumer"
)
