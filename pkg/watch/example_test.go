package watch_test

import (
	"errors"
	"fmt"

	"github.com/dshills/alma/pkg/watch"
)

// ExampleVar demonstrates the basic track/inspect/rollback cycle.
func ExampleVar() {
	score := watch.New("score", 0)

	_ = score.Set(10)
	_ = score.Set(20)
	_ = score.SetLabeled(30, "final round")

	fmt.Println("current:", score.Get())
	fmt.Println("records:", score.Len())

	// Roll back to the value recorded at index 1; the rollback is itself
	// recorded, so the audit trail keeps growing.
	_ = score.Rollback(1)
	fmt.Println("after rollback:", score.Get())
	fmt.Println("records:", score.Len())

	// Output:
	// current: 30
	// records: 4
	// after rollback: 10
	// records: 5
}

// ExampleVar_validators demonstrates rejecting mutations with a validator.
func ExampleVar_validators() {
	nonNegative := watch.ValidatorFunc(func(value interface{}) error {
		if value.(int) < 0 {
			return errors.New("must be non-negative")
		}
		return nil
	})

	balance := watch.New("balance", 100, watch.WithValidators(nonNegative))

	if err := balance.Set(-50); err != nil {
		fmt.Println("rejected:", errors.Unwrap(err))
	}
	fmt.Println("balance:", balance.Get())

	// Output:
	// rejected: must be non-negative
	// balance: 100
}
