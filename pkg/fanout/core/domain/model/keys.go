package model

// Recognized property keys. Lookup through PropertyBag is case-insensitive,
// so these spellings are canonical but not mandatory for callers.
const (
	// KeyAutoBatch enables evaluation; false means always pass through.
	KeyAutoBatch = "autoBatch"
	// KeyBatchSize is the split threshold and the chunk size.
	KeyBatchSize = "batchSize"
	// KeyBatchQueue is the connection/queue assigned to every child and the batch.
	KeyBatchQueue = "batchQueue"
	// KeyBatchItemsKey names the property holding the keyed collection to split.
	KeyBatchItemsKey = "batchItemsKey"
	// KeyBatchIDKey, if set, names the child property receiving the chunk's key list.
	KeyBatchIDKey = "batchIdKey"
	// KeyBatchMaxAttempts is applied to the batch and its children.
	KeyBatchMaxAttempts = "batchMaxAttempts"
	// KeyBatchBackoff is the retry delay in seconds, applied by the engine.
	KeyBatchBackoff = "batchBackoff"
	// KeyBatchTimeout is the per-job timeout in seconds.
	KeyBatchTimeout = "batchTimeout"
	// KeyBatchAllowFailures controls whether one failing child aborts the batch.
	KeyBatchAllowFailures = "batchAllowFailures"
	// KeyBatchFinally is the job/list/descriptor appended after the existing chain.
	KeyBatchFinally = "batchFinally"
	// KeyBatchCarryover is the explicit allow-list of properties passed to children.
	KeyBatchCarryover = "batchCarryover"

	// KeyIsBatchChild marks a generated child descriptor.
	KeyIsBatchChild = "isBatchChild"
	// KeyBatchIndex is the child's 1-based position in the batch.
	KeyBatchIndex = "batchIndex"
	// KeyBatchTotal is the number of children in the batch.
	KeyBatchTotal = "batchTotal"

	// KeyLogID is never carried over to children.
	KeyLogID = "logID"

	// DefaultItemsKey is the items property used when batchItemsKey is absent.
	DefaultItemsKey = "items"
)
