// Package fluent provides fluent assertions that run under one of three
// failure policies.
//
// Package-level entry points such as That and ThatString are strict: a failed
// check panics with a *failure.AssertionError. Pair them with
// defer Recover(t) to report the panic through the test runner.
//
// Containers bind every wrapper they hand out to one policy:
//
//	soft := fluent.NewSoft(t)
//	soft.ThatInt(2).IsEqualTo(3)
//	soft.ThatString("ab").IsEqualTo("ba")
//	soft.AssertAll() // one failure listing both
//
// NewAssumptions converts the first failed check into a skip, and New
// reports failures through t.Errorf and t.FailNow.
//
// Navigations such as Extracting, Size or AsString return a wrapper over a
// derived value that stays under the same policy and keeps the description,
// overriding message, representation and comparator set so far.
package fluent
