// Package failure defines the signals an assertion can raise and how a
// recovered panic is classified.
//
// Three kinds of value travel through a panic raised by an assertion:
//
//   - *AssertionError and *MultipleFailuresError: a check did not hold. Both
//     unwrap to ErrAssertionFailed. These are the only values a soft container
//     collects or an assumption container converts.
//   - *AssumptionError: a precondition was not met and the test should be
//     skipped. It unwraps to ErrAssumptionNotMet.
//   - *ConfigurationError: the library was misused. Always fatal.
//
// Any other recovered value is an unexpected fault and is re-raised untouched.
//
// The skip-signal catalog (RegisterSkipTarget, PreferSkipSignal, SkipSignal)
// decides which value an assumption failure is converted into.
package failure
