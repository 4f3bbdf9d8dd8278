package model

// JobDescriptor is a fully-specified, engine-agnostic description of one
// dispatchable unit of work. How (or whether) it is scheduled is entirely the
// concern of the job-execution engine it is eventually handed to.
type JobDescriptor struct {
	// Mapping identifies the job type to instantiate on the engine side.
	Mapping string `json:"mapping"`
	// Properties is the job's configuration.
	Properties *PropertyBag `json:"properties"`
	// Chain is the ordered list of jobs to run after this job completes.
	Chain []*JobDescriptor `json:"chain,omitempty"`
	// Queue and Connection select where the engine places the job.
	Queue      string `json:"queue"`
	Connection string `json:"connection"`
	// BackoffSeconds is the delay between retry attempts, applied by the engine.
	BackoffSeconds int `json:"backoffSeconds"`
	// TimeoutSeconds bounds a single execution attempt.
	TimeoutSeconds int `json:"timeoutSeconds"`
	// MaxAttempts is the total number of attempts the engine may make.
	MaxAttempts int `json:"maxAttempts"`
}

// NewJobDescriptor creates a JobDescriptor for the given job type. Queue and
// connection start at "default"; a single attempt with no backoff.
func NewJobDescriptor(mapping string, properties *PropertyBag) *JobDescriptor {
	if properties == nil {
		properties = NewPropertyBag()
	}
	return &JobDescriptor{
		Mapping:     mapping,
		Properties:  properties,
		Queue:       "default",
		Connection:  "default",
		MaxAttempts: 1,
	}
}

// OnQueue sets the queue and returns the descriptor.
func (d *JobDescriptor) OnQueue(queue string) *JobDescriptor {
	d.Queue = queue
	return d
}

// OnConnection sets the connection and returns the descriptor.
func (d *JobDescriptor) OnConnection(connection string) *JobDescriptor {
	d.Connection = connection
	return d
}

// WithBackoff sets the retry backoff in seconds and returns the descriptor.
func (d *JobDescriptor) WithBackoff(seconds int) *JobDescriptor {
	d.BackoffSeconds = seconds
	return d
}

// WithTimeout sets the per-attempt timeout in seconds and returns the descriptor.
func (d *JobDescriptor) WithTimeout(seconds int) *JobDescriptor {
	d.TimeoutSeconds = seconds
	return d
}

// WithMaxAttempts sets the attempt limit and returns the descriptor.
func (d *JobDescriptor) WithMaxAttempts(attempts int) *JobDescriptor {
	d.MaxAttempts = attempts
	return d
}

// Chained appends jobs to this descriptor's chain and returns the descriptor.
func (d *JobDescriptor) Chained(jobs ...*JobDescriptor) *JobDescriptor {
	d.Chain = append(d.Chain, jobs...)
	return d
}

// Clone returns a deep copy of the descriptor: properties and chain are copied
// so the clone shares no mutable structure with the original.
func (d *JobDescriptor) Clone() *JobDescriptor {
	clone := *d
	if d.Properties != nil {
		clone.Properties = d.Properties.Clone()
	}
	if len(d.Chain) > 0 {
		clone.Chain = make([]*JobDescriptor, len(d.Chain))
		for i, c := range d.Chain {
			clone.Chain[i] = c.Clone()
		}
	}
	return &clone
}

// ComposeChain folds an ordered list of descriptors into a single descriptor:
// the first element becomes the head and the rest are appended to its chain.
// A nil or empty input yields nil; a single element is returned as-is.
func ComposeChain(jobs []*JobDescriptor) *JobDescriptor {
	switch len(jobs) {
	case 0:
		return nil
	case 1:
		return jobs[0]
	default:
		head := jobs[0].Clone()
		head.Chain = append(head.Chain, jobs[1:]...)
		return head
	}
}

// BatchSubmission is the single artifact the batching engine produces.
// Ownership transfers to the caller, who submits it to the external
// job-execution engine and receives an opaque receipt.
type BatchSubmission struct {
	// Name labels the batch after its originating job type.
	Name string `json:"name"`
	// Jobs holds one child descriptor per chunk, in chunk order.
	Jobs []*JobDescriptor `json:"jobs"`
	// Queue and Connection apply to the batch and every child.
	Queue      string `json:"queue"`
	Connection string `json:"connection"`
	// Retry and timeout policy shared by the batch.
	MaxAttempts    int `json:"maxAttempts"`
	BackoffSeconds int `json:"backoffSeconds"`
	TimeoutSeconds int `json:"timeoutSeconds"`
	// AllowFailures controls whether one failing child aborts the batch.
	AllowFailures bool `json:"allowFailures"`
	// Finally is the step to run after all children complete.
	Finally *JobDescriptor `json:"finally,omitempty"`
}
