package bus

import "context"

// Topic and consumer-group names for the pipeline. All topics are keyed by
// bill id so every message for one bill lands on the same partition.
const (
	TopicTasks     = "tasks.questions"
	TopicFacts     = "facts.raw"
	TopicSummaries = "summaries.q"

	GroupFetcher    = "fetcher"
	GroupSummarizer = "summarizer"
	GroupAssembler  = "assembler"
)

// Message is one consumed record. Topic, partition and offset travel with it
// so the offset can be committed after processing succeeds.
type Message struct {
	Topic     string
	Key       []byte
	Value     []byte
	Partition int
	Offset    int64
}

// Consumer reads one message at a time. Offsets advance only through an
// explicit Commit, so anything fetched but not committed is redelivered
// after a restart or rebalance.
type Consumer interface {
	Fetch(ctx context.Context) (Message, error)
	Commit(ctx context.Context, msg Message) error
	Close() error
}

// Producer publishes one keyed message and returns after the broker
// acknowledges it.
type Producer interface {
	Publish(ctx context.Context, key, value []byte) error
	Close() error
}
