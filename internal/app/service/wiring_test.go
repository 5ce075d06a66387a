// internal/app/service/wiring_test.go

package service_test

import (
	"github.com/habitstack/habitstack/internal/app/service"
	bundlestore "github.com/habitstack/habitstack/internal/app/store/bundles"
	completionstore "github.com/habitstack/habitstack/internal/app/store/completions"
	habitstore "github.com/habitstack/habitstack/internal/app/store/habits"
	userstore "github.com/habitstack/habitstack/internal/app/store/users"
)

// The Mongo stores must satisfy the service interfaces they are wired to in
// bootstrap; a signature drift here breaks the binary, not just a test.
var (
	_ service.HabitStore      = (*habitstore.Store)(nil)
	_ service.BundleStore     = (*bundlestore.Store)(nil)
	_ service.UserStore       = (*userstore.Store)(nil)
	_ service.CompletionStore = (*completionstore.Store)(nil)
)
