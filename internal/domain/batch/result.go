package batch

// Op names one of the independent writes issued per indexed document.
type Op string

// Write operations fanned out per document.
const (
	OpUpsert         Op = "upsert"
	OpSuggestCompany Op = "suggest_company"
	OpSuggestProduct Op = "suggest_product"
)

// ItemStatus is the processing outcome of a single operation.
type ItemStatus string

// Operation status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Result is the outcome of one operation on one document.
type Result struct {
	docID  int
	op     Op
	status ItemStatus
	err    error
}

// NewOK creates a successful result.
func NewOK(docID int, op Op) Result { return Result{docID: docID, op: op, status: StatusOK} }

// NewError creates a failed result.
func NewError(docID int, op Op, err error) Result {
	return Result{docID: docID, op: op, status: StatusError, err: err}
}

// DocID returns the document the operation wrote.
func (r Result) DocID() int { return r.docID }

// Op returns the operation name.
func (r Result) Op() Op { return r.op }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// Summary aggregates the outcomes of a batch. Results are in completion order.
type Summary struct {
	Documents int
	Results   []Result
}

// Succeeded counts successful operations.
func (s Summary) Succeeded() int { return s.count(StatusOK) }

// Failed counts failed operations.
func (s Summary) Failed() int { return s.count(StatusError) }

// Errors returns the failed results.
func (s Summary) Errors() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.status == StatusError {
			out = append(out, r)
		}
	}
	return out
}

func (s Summary) count(st ItemStatus) int {
	n := 0
	for _, r := range s.Results {
		if r.status == st {
			n++
		}
	}
	return n
}
