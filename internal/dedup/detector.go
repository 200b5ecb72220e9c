package dedup

import (
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/limitless-llc/checkout-relay/internal/models"
)

// Detector flags probable duplicate order submissions, the usual cause being
// a double-clicked checkout button. It is advisory only: callers log repeats
// but the submission still goes through, since a false positive must never
// drop an order.
type Detector struct {
	filter *bloom.BloomFilter
	mu     sync.Mutex
}

// NewDetector sizes the filter for the expected volume of a small storefront.
func NewDetector() *Detector {
	return &Detector{
		filter: bloom.NewWithEstimates(100_000, 0.01),
	}
}

// Seen records the fingerprint and reports whether it was already present.
func (d *Detector) Seen(fingerprint string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.filter.TestAndAddString(fingerprint)
}

// Stats returns filter statistics for monitoring.
func (d *Detector) Stats() map[string]interface{} {
	d.mu.Lock()
	defer d.mu.Unlock()

	return map[string]interface{}{
		"approximate_entries": d.filter.ApproximatedSize(),
		"capacity":            d.filter.Cap(),
	}
}

// Fingerprint derives a stable digest of the order content: subject plus
// every line item's identifying fields. Customer data is left out so a
// corrected resubmission with fixed contact details still counts as the same
// order.
func Fingerprint(sub models.OrderSubmission) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s\x00", sub.Subject)
	for _, item := range sub.Items {
		fmt.Fprintf(h, "%s\x00%s\x00%d\x00%.2f\x00%.2f\x1e",
			item.PartNumber, item.Description, item.Quantity,
			float64(item.Price), float64(item.CoreCharge))
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
