package test

import (
	"fmt"

	config "github.com/tigerroll/fanout/pkg/fanout/core/config"
	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
)

// NewTestProperties creates a PropertyBag for testing, preserving the
// insertion order of the supplied key/value pairs.
func NewTestProperties(pairs ...interface{}) *model.PropertyBag {
	props := model.NewPropertyBag()
	for i := 0; i+1 < len(pairs); i += 2 {
		props.Set(pairs[i].(string), pairs[i+1])
	}
	return props
}

// NewTestItems creates an ItemCollection with n sequential entries
// ("item-0".."item-n-1").
func NewTestItems(n int) *model.ItemCollection {
	items := model.NewItemCollection()
	for i := 0; i < n; i++ {
		items.Put(fmt.Sprintf("item-%d", i), i)
	}
	return items
}

// NewTestBatchDefaults creates BatchDefaults for testing with the given size
// threshold and "default" placement.
func NewTestBatchDefaults(size int) config.BatchDefaults {
	return config.BatchDefaults{
		Size:           size,
		Queue:          "default",
		Connection:     "default",
		MaxAttempts:    1,
		BackoffSeconds: 0,
		TimeoutSeconds: 3600,
	}
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
