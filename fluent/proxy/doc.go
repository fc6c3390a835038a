// Package proxy routes the checks of assertion wrappers through a failure
// policy.
//
// A wrapper is a pointer to a struct embedding a Core. Every check method of
// a wrapper calls Interceptor.Invoke and every method returning another
// wrapper calls Interceptor.Navigate. With a nil interceptor the wrapper is
// strict and the body runs directly.
//
// Three pieces cooperate:
//
//   - Registry maps each concrete wrapper type to the recipe that rebuilds it
//     (base type, constructor arguments, constructor). A wrapper type missing
//     from the registry is a configuration error, never a silent pass-through.
//   - Cache builds, once per base type, the AugmentedType descriptor listing
//     which methods are intercepted and what each returns.
//   - Interceptor runs a check, classifies how it ended and applies its
//     policy. A wrapper returned by a check is rebuilt under the same
//     interceptor with the caller's display state.
package proxy
